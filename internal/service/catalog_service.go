package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"video-recommendation-service/internal/models"
	"video-recommendation-service/internal/provider"
)

// CatalogService handles video catalog operations.
type CatalogService struct {
	videos   VideoStore
	provider *provider.Client
	cache    *recCache
}

// NewCatalogService creates a new CatalogService. The provider client and
// Redis client may be nil; sync and caching degrade gracefully.
func NewCatalogService(videos VideoStore, prov *provider.Client, rdb *redis.Client) *CatalogService {
	return &CatalogService{videos: videos, provider: prov, cache: newRecCache(rdb)}
}

// CreateVideo creates a video, assigning an ID when the client supplied none.
func (s *CatalogService) CreateVideo(req models.CreateVideoRequest) (*models.Video, error) {
	if req.Title == "" {
		return nil, models.Validation("title is required")
	}

	v := &models.Video{
		ID:          req.ID,
		Title:       req.Title,
		Description: req.Description,
		Tags:        req.Tags,
		Mood:        req.Mood,
		CreatorID:   req.CreatorID,
	}
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	if v.Tags == nil {
		v.Tags = []string{}
	}

	if err := s.videos.Create(v); err != nil {
		return nil, err
	}
	return v, nil
}

// GetVideo returns a video by ID.
func (s *CatalogService) GetVideo(id string) (*models.Video, error) {
	v, err := s.videos.Get(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.NotFound("video %q not found", id)
		}
		return nil, err
	}
	return v, nil
}

// ListVideos returns a filtered, paginated catalog listing.
func (s *CatalogService) ListVideos(params models.VideoListParams) (*models.VideoListResponse, error) {
	params.Validate()
	return s.videos.List(params)
}

// UpdateVideo changes video metadata.
func (s *CatalogService) UpdateVideo(ctx context.Context, id string, req models.UpdateVideoRequest) (*models.Video, error) {
	if req.Title != nil && *req.Title == "" {
		return nil, models.Validation("title cannot be empty")
	}
	v, err := s.videos.Update(id, req)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.NotFound("video %q not found", id)
		}
		return nil, err
	}
	s.cache.InvalidateAll(ctx)
	return v, nil
}

// DeleteVideo soft-deletes a video. The video never surfaces in
// recommendations again, even for users whose interactions reference it.
func (s *CatalogService) DeleteVideo(ctx context.Context, id string) error {
	if err := s.videos.SoftDelete(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.NotFound("video %q not found", id)
		}
		return err
	}
	s.cache.InvalidateAll(ctx)
	return nil
}

// Meta returns the catalog tag and mood vocabulary.
func (s *CatalogService) Meta() (*models.CatalogMeta, error) {
	return s.videos.Meta()
}

// Seed inserts the sample catalog, skipping videos that already exist.
func (s *CatalogService) Seed() (int, error) {
	added := 0
	for _, req := range sampleVideos {
		if _, err := s.CreateVideo(req); err != nil {
			if kind, ok := models.ErrKind(err); ok && kind == models.KindConflict {
				continue
			}
			return added, err
		}
		added++
	}
	return added, nil
}

// SyncFromProvider pulls videos from the upstream content provider and adds
// the ones not yet in the catalog.
func (s *CatalogService) SyncFromProvider(ctx context.Context) (fetched, added int, err error) {
	if s.provider == nil {
		return 0, 0, fmt.Errorf("no content provider configured")
	}

	items, err := s.provider.FetchVideos(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("fetch from provider: %w", err)
	}

	for _, item := range items {
		if item.ID == "" || item.Title == "" {
			continue
		}
		req := models.CreateVideoRequest{
			ID:          item.ID,
			Title:       item.Title,
			Description: item.Description,
			Tags:        item.Tags,
			Mood:        item.Mood,
			CreatorID:   item.CreatorID,
		}
		if _, err := s.CreateVideo(req); err != nil {
			if kind, ok := models.ErrKind(err); ok && kind == models.KindConflict {
				continue
			}
			slog.Warn("failed to store synced video", "video_id", item.ID, "error", err)
			continue
		}
		added++
	}

	return len(items), added, nil
}

var sampleVideos = []models.CreateVideoRequest{
	{ID: "adv_1", Title: "Mountain Trek", Description: "Adventure in the Alps", Tags: []string{"adventure", "travel", "nature"}, Mood: "adventurous"},
	{ID: "adv_2", Title: "River Rafting", Description: "Whitewater thrills", Tags: []string{"adventure", "water"}, Mood: "adventurous"},
	{ID: "rom_1", Title: "Paris Love Story", Description: "Romance in Paris", Tags: []string{"romance", "drama"}, Mood: "romance"},
	{ID: "rom_2", Title: "Sunset Date", Description: "Beach romance", Tags: []string{"romance", "beach"}, Mood: "romance"},
	{ID: "edu_1", Title: "ML Basics", Description: "Intro to Machine Learning", Tags: []string{"ml", "education", "ai"}, Mood: "focused"},
	{ID: "edu_2", Title: "Algebra Refresher", Description: "Learn algebra", Tags: []string{"math", "education"}, Mood: "focused"},
	{ID: "fun_1", Title: "Comedy Skit", Description: "Laughs guaranteed", Tags: []string{"comedy", "fun"}, Mood: "cheerful"},
	{ID: "fun_2", Title: "Pranks", Description: "Harmless pranks", Tags: []string{"fun", "viral"}, Mood: "cheerful"},
	{ID: "fit_1", Title: "HIIT Workout", Description: "Quick cardio", Tags: []string{"fitness", "health"}, Mood: "energetic"},
	{ID: "calm_1", Title: "Ocean Waves", Description: "Relaxing sounds", Tags: []string{"relax", "nature"}, Mood: "calm"},
}
