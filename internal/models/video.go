package models

import "time"

// Video represents a video stored in the catalog.
type Video struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Tags        []string  `json:"tags"`
	Mood        string    `json:"mood,omitempty"`
	CreatorID   string    `json:"creator_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateVideoRequest is the request body for creating a video.
// ID is optional; one is assigned when absent.
type CreateVideoRequest struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Mood        string   `json:"mood"`
	CreatorID   string   `json:"creator_id"`
}

// UpdateVideoRequest is the request body for updating video metadata.
// Nil fields are left untouched.
type UpdateVideoRequest struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Tags        *[]string `json:"tags"`
	Mood        *string   `json:"mood"`
}

// VideoListParams holds query parameters for video listing.
type VideoListParams struct {
	Tag      string `query:"tag"`
	Mood     string `query:"mood"`
	Page     int    `query:"page"`
	PageSize int    `query:"page_size"`
}

// Validate sets defaults and clamps pagination parameters.
func (p *VideoListParams) Validate() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 || p.PageSize > 100 {
		p.PageSize = 20
	}
}

// VideoListResponse is the paginated video listing response.
type VideoListResponse struct {
	Page         int     `json:"page"`
	PageSize     int     `json:"page_size"`
	TotalResults int     `json:"total_results"`
	Data         []Video `json:"data"`
}

// CatalogMeta is the distinct tag and mood vocabulary of the catalog.
type CatalogMeta struct {
	Tags  []string `json:"tags"`
	Moods []string `json:"moods"`
}
