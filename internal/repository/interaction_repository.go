package repository

import (
	"database/sql"
	"fmt"
	"time"

	"video-recommendation-service/internal/models"
)

// InteractionRepository handles database operations for the append-only
// interaction log.
type InteractionRepository struct {
	db *sql.DB
}

// NewInteractionRepository creates a new InteractionRepository.
func NewInteractionRepository(db *sql.DB) *InteractionRepository {
	return &InteractionRepository{db: db}
}

// Create appends an interaction.
func (r *InteractionRepository) Create(i *models.Interaction) error {
	err := r.db.QueryRow(`
		INSERT INTO interactions (user_id, video_id, interaction_type, weight, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, i.UserID, i.VideoID, i.Type, i.Weight, i.CreatedAt).Scan(&i.ID)
	if err != nil {
		return fmt.Errorf("failed to create interaction: %w", err)
	}
	return nil
}

// ListByUser returns all interactions for a user, oldest first.
func (r *InteractionRepository) ListByUser(userID string) ([]models.Interaction, error) {
	rows, err := r.db.Query(`
		SELECT id, user_id, video_id, interaction_type, weight, created_at
		FROM interactions
		WHERE user_id = $1
		ORDER BY created_at ASC, id ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query interactions: %w", err)
	}
	defer rows.Close()

	var interactions []models.Interaction
	for rows.Next() {
		var i models.Interaction
		if err := rows.Scan(&i.ID, &i.UserID, &i.VideoID, &i.Type, &i.Weight, &i.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		interactions = append(interactions, i)
	}
	return interactions, rows.Err()
}

// SeenVideoIDs returns the videos a user has viewed, liked, or shared since
// the given time. Skips do not mark a video as seen.
func (r *InteractionRepository) SeenVideoIDs(userID string, since time.Time) (map[string]bool, error) {
	rows, err := r.db.Query(`
		SELECT DISTINCT video_id FROM interactions
		WHERE user_id = $1
		  AND created_at >= $2
		  AND interaction_type IN ('view', 'like', 'share')
	`, userID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to query seen videos: %w", err)
	}
	defer rows.Close()

	seen := make(map[string]bool)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		seen[id] = true
	}
	return seen, rows.Err()
}

// PopularityCounts returns per-video interaction counts across all users
// since the given time.
func (r *InteractionRepository) PopularityCounts(since time.Time) (map[string]int, error) {
	rows, err := r.db.Query(`
		SELECT video_id, COUNT(*) FROM interactions
		WHERE created_at >= $1
		GROUP BY video_id
	`, since)
	if err != nil {
		return nil, fmt.Errorf("failed to query popularity counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var id string
		var n int
		if err := rows.Scan(&id, &n); err != nil {
			return nil, err
		}
		counts[id] = n
	}
	return counts, rows.Err()
}

// ActiveUserIDs returns the users with at least one interaction since the
// given time.
func (r *InteractionRepository) ActiveUserIDs(since time.Time) ([]string, error) {
	rows, err := r.db.Query(`
		SELECT DISTINCT user_id FROM interactions WHERE created_at >= $1
	`, since)
	if err != nil {
		return nil, fmt.Errorf("failed to query active users: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Count returns the number of recorded interactions.
func (r *InteractionRepository) Count() (int, error) {
	var n int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM interactions`).Scan(&n)
	return n, err
}
