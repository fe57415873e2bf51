package models

import "time"

// Interaction types.
const (
	InteractionView  = "view"
	InteractionLike  = "like"
	InteractionShare = "share"
	InteractionSkip  = "skip"
)

// ValidInteractionTypes are the accepted interaction type values.
var ValidInteractionTypes = map[string]bool{
	InteractionView:  true,
	InteractionLike:  true,
	InteractionShare: true,
	InteractionSkip:  true,
}

// Interaction records user activity with a video. Immutable once recorded.
type Interaction struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"user_id"`
	VideoID   string    `json:"video_id"`
	Type      string    `json:"type"`
	Weight    float64   `json:"weight"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateInteractionRequest is the request body for recording an interaction.
// Weight is optional; zero means the default weight for the type applies.
// Timestamp is optional (RFC3339) and defaults to the time of recording.
type CreateInteractionRequest struct {
	UserID    string  `json:"user_id"`
	VideoID   string  `json:"video_id"`
	Type      string  `json:"type"`
	Weight    float64 `json:"weight"`
	Timestamp string  `json:"timestamp"`
}
