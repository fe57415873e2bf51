package service

import (
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"video-recommendation-service/internal/models"
)

// UserService handles user operations.
type UserService struct {
	users UserStore
}

// NewUserService creates a new UserService.
func NewUserService(users UserStore) *UserService {
	return &UserService{users: users}
}

// CreateUser creates a user, assigning an ID when the client supplied none.
func (s *UserService) CreateUser(req models.CreateUserRequest) (*models.User, error) {
	u := &models.User{
		ID:        req.ID,
		Name:      req.Name,
		Interests: req.Interests,
		Mood:      req.Mood,
	}
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.Interests == nil {
		u.Interests = []string{}
	}

	if err := s.users.Create(u); err != nil {
		return nil, err
	}
	return u, nil
}

// GetUser returns a user by ID.
func (s *UserService) GetUser(id string) (*models.User, error) {
	u, err := s.users.Get(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.NotFound("user %q not found", id)
		}
		return nil, err
	}
	return u, nil
}

// UpdateUser changes user fields.
func (s *UserService) UpdateUser(id string, req models.UpdateUserRequest) (*models.User, error) {
	u, err := s.users.Update(id, req)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.NotFound("user %q not found", id)
		}
		return nil, err
	}
	return u, nil
}
