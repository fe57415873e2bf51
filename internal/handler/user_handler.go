package handler

import (
	"github.com/gofiber/fiber/v3"

	"video-recommendation-service/internal/models"
	"video-recommendation-service/internal/service"
)

// UserHandler handles HTTP requests for users.
type UserHandler struct {
	svc          *service.UserService
	interactions *service.InteractionService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(svc *service.UserService, interactions *service.InteractionService) *UserHandler {
	return &UserHandler{svc: svc, interactions: interactions}
}

// CreateUser creates a new user.
func (h *UserHandler) CreateUser(c fiber.Ctx) error {
	var req models.CreateUserRequest
	if err := c.Bind().JSON(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "invalid request body", Kind: models.KindValidation,
		})
	}

	user, err := h.svc.CreateUser(req)
	if err != nil {
		return respondError(c, err, "failed to create user")
	}

	return c.Status(fiber.StatusCreated).JSON(user)
}

// GetUser returns a user by ID.
func (h *UserHandler) GetUser(c fiber.Ctx) error {
	user, err := h.svc.GetUser(c.Params("id"))
	if err != nil {
		return respondError(c, err, "failed to retrieve user")
	}
	return c.JSON(user)
}

// UpdateUser changes user fields.
func (h *UserHandler) UpdateUser(c fiber.Ctx) error {
	var req models.UpdateUserRequest
	if err := c.Bind().JSON(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "invalid request body", Kind: models.KindValidation,
		})
	}

	user, err := h.svc.UpdateUser(c.Params("id"), req)
	if err != nil {
		return respondError(c, err, "failed to update user")
	}
	return c.JSON(user)
}

// GetInteractions returns a user's interactions, oldest first.
func (h *UserHandler) GetInteractions(c fiber.Ctx) error {
	userID := c.Params("id")

	interactions, err := h.interactions.ListForUser(userID)
	if err != nil {
		return respondError(c, err, "failed to retrieve interactions")
	}

	return c.JSON(fiber.Map{
		"user_id":      userID,
		"interactions": interactions,
	})
}
