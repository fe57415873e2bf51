package service

import (
	"context"
	"database/sql"
	"errors"
	"math"
	"time"

	"github.com/redis/go-redis/v9"

	"video-recommendation-service/internal/engine"
	"video-recommendation-service/internal/models"
)

// InteractionService validates and appends interactions.
type InteractionService struct {
	interactions InteractionStore
	users        UserStore
	videos       VideoStore
	cfg          engine.Config
	cache        *recCache
}

// NewInteractionService creates a new InteractionService.
func NewInteractionService(interactions InteractionStore, users UserStore, videos VideoStore, cfg engine.Config, rdb *redis.Client) *InteractionService {
	return &InteractionService{
		interactions: interactions,
		users:        users,
		videos:       videos,
		cfg:          cfg,
		cache:        newRecCache(rdb),
	}
}

// Record validates and appends an interaction. The referenced user and
// video must exist and the weight must be within the configured bound.
func (s *InteractionService) Record(ctx context.Context, req models.CreateInteractionRequest) (*models.Interaction, error) {
	if !models.ValidInteractionTypes[req.Type] {
		return nil, models.Validation("invalid interaction type %q", req.Type)
	}
	if math.Abs(req.Weight) > s.cfg.MaxAbsWeight {
		return nil, models.Validation("weight %.2f outside allowed bound %.2f", req.Weight, s.cfg.MaxAbsWeight)
	}

	if _, err := s.users.Get(req.UserID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.NotFound("user %q not found", req.UserID)
		}
		return nil, err
	}
	if _, err := s.videos.Get(req.VideoID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.NotFound("video %q not found", req.VideoID)
		}
		return nil, err
	}

	createdAt := time.Now().UTC()
	if req.Timestamp != "" {
		ts, err := time.Parse(time.RFC3339, req.Timestamp)
		if err != nil {
			return nil, models.Validation("invalid timestamp %q, want RFC3339", req.Timestamp)
		}
		createdAt = ts.UTC()
	}

	inter := &models.Interaction{
		UserID:    req.UserID,
		VideoID:   req.VideoID,
		Type:      req.Type,
		Weight:    req.Weight,
		CreatedAt: createdAt,
	}
	if err := s.interactions.Create(inter); err != nil {
		return nil, err
	}

	s.cache.InvalidateUser(ctx, req.UserID)
	return inter, nil
}

// ListForUser returns a user's interactions in timestamp order, oldest
// first. Each call re-reads current state.
func (s *InteractionService) ListForUser(userID string) ([]models.Interaction, error) {
	if _, err := s.users.Get(userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.NotFound("user %q not found", userID)
		}
		return nil, err
	}

	interactions, err := s.interactions.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	if interactions == nil {
		interactions = []models.Interaction{}
	}
	return interactions, nil
}
