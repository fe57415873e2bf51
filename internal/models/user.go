package models

import "time"

// User represents a registered user. Affinity is derived from interactions,
// never stored on the user; interests only seed cold-start recommendations.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name,omitempty"`
	Interests []string  `json:"interests"`
	Mood      string    `json:"mood,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateUserRequest is the request body for creating a user.
// All fields are optional; an ID is assigned when absent.
type CreateUserRequest struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Interests []string `json:"interests"`
	Mood      string   `json:"mood"`
}

// UpdateUserRequest is the request body for updating a user.
// Nil fields are left untouched.
type UpdateUserRequest struct {
	Name      *string   `json:"name"`
	Interests *[]string `json:"interests"`
	Mood      *string   `json:"mood"`
}
