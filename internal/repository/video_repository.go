package repository

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"video-recommendation-service/internal/models"
)

// VideoRepository handles database operations for the video catalog.
type VideoRepository struct {
	db *sql.DB
}

// NewVideoRepository creates a new VideoRepository.
func NewVideoRepository(db *sql.DB) *VideoRepository {
	return &VideoRepository{db: db}
}

// Create inserts a new video.
func (r *VideoRepository) Create(v *models.Video) error {
	err := r.db.QueryRow(`
		INSERT INTO videos (id, title, description, tags, mood, creator_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`, v.ID, v.Title, v.Description, pq.Array(v.Tags), v.Mood, v.CreatorID,
	).Scan(&v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return models.Conflict("video %q already exists", v.ID)
		}
		return fmt.Errorf("failed to create video: %w", err)
	}
	return nil
}

// Get returns a video by ID. Soft-deleted videos are treated as absent.
func (r *VideoRepository) Get(id string) (*models.Video, error) {
	var v models.Video
	err := r.db.QueryRow(`
		SELECT id, title, description, tags, mood, creator_id, created_at, updated_at
		FROM videos WHERE id = $1 AND deleted_at IS NULL
	`, id).Scan(&v.ID, &v.Title, &v.Description, pq.Array(&v.Tags),
		&v.Mood, &v.CreatorID, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// List returns a paginated list of videos matching the given filters.
func (r *VideoRepository) List(params models.VideoListParams) (*models.VideoListResponse, error) {
	conditions := []string{"deleted_at IS NULL"}
	args := []interface{}{}
	argIdx := 1

	if params.Tag != "" {
		conditions = append(conditions, fmt.Sprintf("$%d = ANY(tags)", argIdx))
		args = append(args, params.Tag)
		argIdx++
	}
	if params.Mood != "" {
		conditions = append(conditions, fmt.Sprintf("LOWER(mood) = LOWER($%d)", argIdx))
		args = append(args, params.Mood)
		argIdx++
	}

	whereClause := strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM videos WHERE %s", whereClause)
	var totalResults int
	if err := r.db.QueryRow(countQuery, args...).Scan(&totalResults); err != nil {
		return nil, fmt.Errorf("count query failed: %w", err)
	}

	offset := (params.Page - 1) * params.PageSize
	query := fmt.Sprintf(`
		SELECT id, title, description, tags, mood, creator_id, created_at, updated_at
		FROM videos WHERE %s
		ORDER BY created_at DESC, id ASC
		LIMIT $%d OFFSET $%d
	`, whereClause, argIdx, argIdx+1)
	args = append(args, params.PageSize, offset)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list query failed: %w", err)
	}
	defer rows.Close()

	videos := []models.Video{}
	for rows.Next() {
		var v models.Video
		if err := rows.Scan(&v.ID, &v.Title, &v.Description, pq.Array(&v.Tags),
			&v.Mood, &v.CreatorID, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		videos = append(videos, v)
	}

	return &models.VideoListResponse{
		Page:         params.Page,
		PageSize:     params.PageSize,
		TotalResults: totalResults,
		Data:         videos,
	}, nil
}

// ListActive returns all non-deleted videos, the candidate pool for ranking.
func (r *VideoRepository) ListActive() ([]models.Video, error) {
	rows, err := r.db.Query(`
		SELECT id, title, description, tags, mood, creator_id, created_at, updated_at
		FROM videos WHERE deleted_at IS NULL
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query videos: %w", err)
	}
	defer rows.Close()

	var videos []models.Video
	for rows.Next() {
		var v models.Video
		if err := rows.Scan(&v.ID, &v.Title, &v.Description, pq.Array(&v.Tags),
			&v.Mood, &v.CreatorID, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		videos = append(videos, v)
	}
	return videos, rows.Err()
}

// Update changes video metadata. Nil request fields are left untouched.
func (r *VideoRepository) Update(id string, req models.UpdateVideoRequest) (*models.Video, error) {
	sets := []string{"updated_at = NOW()"}
	args := []interface{}{}
	argIdx := 1

	if req.Title != nil {
		sets = append(sets, fmt.Sprintf("title = $%d", argIdx))
		args = append(args, *req.Title)
		argIdx++
	}
	if req.Description != nil {
		sets = append(sets, fmt.Sprintf("description = $%d", argIdx))
		args = append(args, *req.Description)
		argIdx++
	}
	if req.Tags != nil {
		sets = append(sets, fmt.Sprintf("tags = $%d", argIdx))
		args = append(args, pq.Array(*req.Tags))
		argIdx++
	}
	if req.Mood != nil {
		sets = append(sets, fmt.Sprintf("mood = $%d", argIdx))
		args = append(args, *req.Mood)
		argIdx++
	}

	query := fmt.Sprintf(`
		UPDATE videos SET %s
		WHERE id = $%d AND deleted_at IS NULL
		RETURNING id, title, description, tags, mood, creator_id, created_at, updated_at
	`, strings.Join(sets, ", "), argIdx)
	args = append(args, id)

	var v models.Video
	err := r.db.QueryRow(query, args...).Scan(&v.ID, &v.Title, &v.Description,
		pq.Array(&v.Tags), &v.Mood, &v.CreatorID, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// SoftDelete marks a video as deleted. Past interactions keep referencing it
// but it is excluded from reads and ranking from this point on.
func (r *VideoRepository) SoftDelete(id string) error {
	res, err := r.db.Exec(`
		UPDATE videos SET deleted_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`, id)
	if err != nil {
		return fmt.Errorf("failed to delete video: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Meta returns the distinct tag and mood vocabulary of the active catalog.
func (r *VideoRepository) Meta() (*models.CatalogMeta, error) {
	meta := &models.CatalogMeta{Tags: []string{}, Moods: []string{}}

	rows, err := r.db.Query(`
		SELECT DISTINCT LOWER(UNNEST(tags)) AS tag FROM videos
		WHERE deleted_at IS NULL ORDER BY tag
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query tags: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var tag string
		if err := rows.Scan(&tag); err != nil {
			return nil, err
		}
		meta.Tags = append(meta.Tags, tag)
	}

	moodRows, err := r.db.Query(`
		SELECT DISTINCT LOWER(mood) FROM videos
		WHERE deleted_at IS NULL AND mood <> '' ORDER BY 1
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query moods: %w", err)
	}
	defer moodRows.Close()
	for moodRows.Next() {
		var mood string
		if err := moodRows.Scan(&mood); err != nil {
			return nil, err
		}
		meta.Moods = append(meta.Moods, mood)
	}

	return meta, nil
}

// Count returns the number of active videos.
func (r *VideoRepository) Count() (int, error) {
	var n int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM videos WHERE deleted_at IS NULL`).Scan(&n)
	return n, err
}
