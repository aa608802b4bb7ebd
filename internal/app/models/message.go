package models

import "time"

// Message is a direct message between two users, optionally tied to a trip
type Message struct {
	ID         int64     `json:"id" db:"id"`
	Message    string    `json:"message" db:"message"`
	SenderID   int64     `json:"sender_id" db:"sender_id"`
	ReceiverID int64     `json:"receiver_id" db:"receiver_id"`
	TripID     *int64    `json:"trip_id,omitempty" db:"trip_id"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`

	// Joined fields for enriched listings
	Sender   *UserSummary `json:"sender,omitempty"`
	Receiver *UserSummary `json:"receiver,omitempty"`
	Trip     *TripSummary `json:"trip,omitempty"`
}

// UserSummary is the minimal public view of a user embedded in listings
type UserSummary struct {
	ID       int64   `json:"id"`
	Username string  `json:"username"`
	Email    string  `json:"email"`
	Image    *string `json:"image,omitempty"`
}

// TripSummary is the minimal view of a trip embedded in listings
type TripSummary struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Origin      string    `json:"origin"`
	Destination string    `json:"destination"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
}
