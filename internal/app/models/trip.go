package models

import "time"

// Trip lifecycle states. These are informational tags on the trip record,
// the participation workflow does not gate on them.
const (
	TripStatusPlanned   = "planned"
	TripStatusActive    = "active"
	TripStatusCompleted = "completed"
	TripStatusCancelled = "cancelled"
)

// Trip represents a shared trip created by a user. MinParticipants is the
// capacity field: the maximum number of accepted non-creator participants.
// The historical name is kept because the column name is part of the API.
type Trip struct {
	ID              int64     `json:"id" db:"id"`
	Origin          string    `json:"origin" db:"origin"`
	Destination     string    `json:"destination" db:"destination"`
	Title           string    `json:"title" db:"title"`
	Description     *string   `json:"description,omitempty" db:"description"`
	CreatorID       int64     `json:"creator_id" db:"creator_id"`
	StartDate       time.Time `json:"start_date" db:"start_date"`
	EndDate         time.Time `json:"end_date" db:"end_date"`
	EstimatedCost   *float64  `json:"estimated_cost,omitempty" db:"estimated_cost"`
	MinParticipants int       `json:"min_participants" db:"min_participants"`
	Transport       *string   `json:"transport,omitempty" db:"transport"`
	Accommodation   *string   `json:"accommodation,omitempty" db:"accommodation"`
	Itinerary       *string   `json:"itinerary,omitempty" db:"itinerary"`
	Status          string    `json:"status" db:"status"`
	Latitude        *float64  `json:"latitude,omitempty" db:"latitude"`
	Longitude       *float64  `json:"longitude,omitempty" db:"longitude"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}

// TripCapacity is the capacity oracle read: trip capacity, its creator and
// the number of accepted non-creator participants, observed at one instant.
type TripCapacity struct {
	TripID        int64
	Capacity      int
	CreatorID     int64
	AcceptedCount int
}

// HasRoom reports whether another participant can still be accepted
func (c TripCapacity) HasRoom() bool {
	return c.AcceptedCount < c.Capacity
}

// CurrentParticipants is the accepted headcount including the creator
func (c TripCapacity) CurrentParticipants() int {
	return c.AcceptedCount + 1
}
