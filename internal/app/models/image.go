package models

import "time"

// Image is a stored image attached to a trip or a user profile
type Image struct {
	ID          int64     `json:"id" db:"id"`
	Description *string   `json:"description,omitempty" db:"description"`
	URL         string    `json:"url" db:"url"`
	TripID      *int64    `json:"trip_id,omitempty" db:"trip_id"`
	UserID      *int64    `json:"user_id,omitempty" db:"user_id"`
	MainImg     bool      `json:"main_img" db:"main_img"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
