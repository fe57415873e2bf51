package service

import (
	"context"
	"log/slog"
	"time"
)

const (
	refreshBaseBackoff = time.Second
	refreshMaxBackoff  = 30 * time.Second
	refreshMaxRetries  = 5
)

// AffinityRefresher recomputes affinity snapshots for recently active users
// in the background. Storage failures are retried with exponential backoff;
// recommendation requests keep serving the last good snapshot meanwhile.
type AffinityRefresher struct {
	rec      *RecommendationService
	interval time.Duration
}

// NewAffinityRefresher creates a new AffinityRefresher.
func NewAffinityRefresher(rec *RecommendationService, interval time.Duration) *AffinityRefresher {
	return &AffinityRefresher{rec: rec, interval: interval}
}

// Run refreshes snapshots every interval until the context is cancelled.
func (r *AffinityRefresher) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	slog.Info("affinity refresher started", "interval", r.interval)
	for {
		select {
		case <-ctx.Done():
			slog.Info("affinity refresher stopped")
			return
		case <-ticker.C:
			r.refreshAll(ctx)
		}
	}
}

func (r *AffinityRefresher) refreshAll(ctx context.Context) {
	userIDs, err := r.rec.ActiveUserIDs()
	if err != nil {
		slog.Warn("could not list active users for refresh", "error", err)
		return
	}

	for _, userID := range userIDs {
		if err := r.refreshWithRetry(ctx, userID); err != nil {
			slog.Error("affinity refresh failed", "user_id", userID, "error", err)
		}
	}
}

func (r *AffinityRefresher) refreshWithRetry(ctx context.Context, userID string) error {
	backoff := refreshBaseBackoff
	var err error
	for attempt := 0; attempt < refreshMaxRetries; attempt++ {
		if err = r.rec.RefreshUser(userID); err == nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
		if backoff > refreshMaxBackoff {
			backoff = refreshMaxBackoff
		}
	}
	return err
}
