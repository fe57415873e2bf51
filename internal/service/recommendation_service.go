package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"video-recommendation-service/internal/engine"
	"video-recommendation-service/internal/models"
)

const (
	// DefaultLimit is the number of recommendations returned when the
	// client does not ask for a specific amount.
	DefaultLimit = 10
	// MaxLimit caps how many recommendations a single request may ask for.
	MaxLimit = 100
)

// RecommendationService produces ranked video recommendations.
type RecommendationService struct {
	users        UserStore
	videos       VideoStore
	interactions InteractionStore
	cfg          engine.Config
	cache        *recCache
	snapshots    *affinitySnapshots

	// now is the clock; replaced in tests for deterministic decay.
	now func() time.Time
}

// NewRecommendationService creates a new RecommendationService. The Redis
// client may be nil; responses are then computed on every request.
func NewRecommendationService(users UserStore, videos VideoStore, interactions InteractionStore, cfg engine.Config, rdb *redis.Client) *RecommendationService {
	return &RecommendationService{
		users:        users,
		videos:       videos,
		interactions: interactions,
		cfg:          cfg,
		cache:        newRecCache(rdb),
		snapshots:    newAffinitySnapshots(),
		now:          time.Now,
	}
}

// Recommend returns up to limit ranked videos the user has not recently
// seen. An unknown user is a not-found error; an empty catalog yields an
// empty list.
func (s *RecommendationService) Recommend(ctx context.Context, userID string, limit int) (*models.RecommendationResponse, error) {
	if limit <= 0 {
		limit = DefaultLimit
	} else if limit > MaxLimit {
		limit = MaxLimit
	}

	user, err := s.users.Get(userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.NotFound("user %q not found", userID)
		}
		return nil, err
	}

	if cached, ok := s.cache.Get(ctx, userID, limit); ok {
		slog.Debug("recommendations cache hit", "user_id", userID)
		return cached, nil
	}

	now := s.now().UTC()
	windowStart := now.Add(-s.cfg.RecencyWindow)

	videos, err := s.videos.ListActive()
	if err != nil {
		return nil, err
	}
	videosByID := make(map[string]models.Video, len(videos))
	for _, v := range videos {
		videosByID[v.ID] = v
	}

	aff, err := s.affinityFor(user, videosByID, now)
	if err != nil {
		return nil, err
	}

	seen, err := s.interactions.SeenVideoIDs(userID, windowStart)
	if err != nil {
		// Degraded mode: recommend without exclusion rather than fail.
		slog.Warn("seen-video lookup failed, skipping exclusion", "user_id", userID, "error", err)
		seen = map[string]bool{}
	}

	candidates := make([]models.Video, 0, len(videos))
	for _, v := range videos {
		if !seen[v.ID] {
			candidates = append(candidates, v)
		}
	}

	var popularity map[string]int
	if aff.Empty() {
		popularity, err = s.interactions.PopularityCounts(windowStart)
		if err != nil {
			slog.Warn("popularity lookup failed, falling back to recency order", "error", err)
			popularity = nil
		}
	}

	ranked := engine.NormalizePercent(engine.Rank(s.cfg, aff, candidates, popularity))
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	recs := make([]models.RecommendedVideo, 0, len(ranked))
	for _, sv := range ranked {
		recs = append(recs, models.RecommendedVideo{
			ID:        sv.Video.ID,
			Title:     sv.Video.Title,
			Tags:      sv.Video.Tags,
			Mood:      sv.Video.Mood,
			CreatorID: sv.Video.CreatorID,
			Score:     math.Round(sv.Score*10) / 10,
		})
	}

	resp := &models.RecommendationResponse{
		UserID:          userID,
		Recommendations: recs,
		GeneratedAt:     now.Format(time.RFC3339),
	}
	s.cache.Set(ctx, userID, limit, resp)

	return resp, nil
}

// affinityFor computes the user's current affinity, falling back to the
// last good snapshot when the interaction log is unavailable.
func (s *RecommendationService) affinityFor(user *models.User, videosByID map[string]models.Video, now time.Time) (engine.Affinity, error) {
	interactions, err := s.interactions.ListByUser(user.ID)
	if err != nil {
		if snap, ok := s.snapshots.Get(user.ID); ok {
			slog.Warn("interaction log unavailable, serving stale affinity", "user_id", user.ID, "error", err)
			return snap, nil
		}
		return engine.Affinity{}, err
	}

	aff := engine.ComputeAffinity(s.cfg, interactions, videosByID, now)
	if aff.Empty() && len(user.Interests) > 0 {
		aff = engine.SeedFromInterests(user.Interests)
	}
	s.snapshots.Set(user.ID, aff)
	return aff, nil
}

// RefreshUser recomputes and stores the affinity snapshot for one user.
func (s *RecommendationService) RefreshUser(userID string) error {
	user, err := s.users.Get(userID)
	if err != nil {
		return err
	}

	videos, err := s.videos.ListActive()
	if err != nil {
		return err
	}
	videosByID := make(map[string]models.Video, len(videos))
	for _, v := range videos {
		videosByID[v.ID] = v
	}

	interactions, err := s.interactions.ListByUser(userID)
	if err != nil {
		return err
	}

	aff := engine.ComputeAffinity(s.cfg, interactions, videosByID, s.now().UTC())
	if aff.Empty() && len(user.Interests) > 0 {
		aff = engine.SeedFromInterests(user.Interests)
	}
	s.snapshots.Set(userID, aff)
	return nil
}

// ActiveUserIDs returns the users with interactions inside the recency
// window, the refresh set for the background refresher.
func (s *RecommendationService) ActiveUserIDs() ([]string, error) {
	return s.interactions.ActiveUserIDs(s.now().UTC().Add(-s.cfg.RecencyWindow))
}

// affinitySnapshots holds the last successfully computed affinity per user.
// Reads tolerate staleness bounded by the refresh interval; no caller ever
// blocks on a recomputation.
type affinitySnapshots struct {
	mu     sync.RWMutex
	byUser map[string]engine.Affinity
}

func newAffinitySnapshots() *affinitySnapshots {
	return &affinitySnapshots{byUser: make(map[string]engine.Affinity)}
}

func (s *affinitySnapshots) Get(userID string) (engine.Affinity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	aff, ok := s.byUser[userID]
	return aff, ok
}

func (s *affinitySnapshots) Set(userID string, aff engine.Affinity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byUser[userID] = aff
}
