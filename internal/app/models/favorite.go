package models

import "time"

// Favorite marks a trip a user has bookmarked
type Favorite struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"user_id" db:"user_id"`
	TripID    int64     `json:"trip_id" db:"trip_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	Trip *TripSummary `json:"trip,omitempty"`
}
