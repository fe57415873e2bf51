package models

// RecommendedVideo is a single ranked entry in a recommendation response.
// Score is normalized to 0..100 against the best candidate of the request.
type RecommendedVideo struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Tags      []string `json:"tags"`
	Mood      string   `json:"mood,omitempty"`
	CreatorID string   `json:"creator_id,omitempty"`
	Score     float64  `json:"score"`
}

// RecommendationResponse is the recommendation endpoint response.
type RecommendationResponse struct {
	UserID          string             `json:"user_id"`
	Recommendations []RecommendedVideo `json:"recommendations"`
	GeneratedAt     string             `json:"generated_at"`
}
