package service

import (
	"time"

	"video-recommendation-service/internal/models"
)

// VideoStore is the catalog storage the services depend on.
type VideoStore interface {
	Create(v *models.Video) error
	Get(id string) (*models.Video, error)
	List(params models.VideoListParams) (*models.VideoListResponse, error)
	ListActive() ([]models.Video, error)
	Update(id string, req models.UpdateVideoRequest) (*models.Video, error)
	SoftDelete(id string) error
	Meta() (*models.CatalogMeta, error)
	Count() (int, error)
}

// UserStore is the user storage the services depend on.
type UserStore interface {
	Create(u *models.User) error
	Get(id string) (*models.User, error)
	Update(id string, req models.UpdateUserRequest) (*models.User, error)
	Count() (int, error)
}

// InteractionStore is the append-only interaction log the services depend on.
type InteractionStore interface {
	Create(i *models.Interaction) error
	ListByUser(userID string) ([]models.Interaction, error)
	SeenVideoIDs(userID string, since time.Time) (map[string]bool, error)
	PopularityCounts(since time.Time) (map[string]int, error)
	ActiveUserIDs(since time.Time) ([]string, error)
	Count() (int, error)
}
