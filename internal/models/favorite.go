package models

import "time"

// Favorite links a user to a saved listing. Favorites referencing a deleted
// listing are cleaned up best-effort.
type Favorite struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	PropertyID string    `json:"property_id"`
	CreatedAt  time.Time `json:"created_at"`
}
