package dto

import (
	"time"

	"github.com/traveltogether/api/internal/app/models"
)

// DateOnly is the wire format for trip dates
const DateOnly = "2006-01-02"

// CreateTripRequest is the payload for creating a trip
type CreateTripRequest struct {
	Origin          string   `json:"origin" binding:"required"`
	Destination     string   `json:"destination" binding:"required"`
	Title           string   `json:"title" binding:"required"`
	Description     *string  `json:"description"`
	StartDate       string   `json:"start_date" binding:"required,daterange"`
	EndDate         string   `json:"end_date" binding:"required,daterange"`
	EstimatedCost   *float64 `json:"estimated_cost"`
	MinParticipants int      `json:"min_participants" binding:"required,min=1"`
	Transport       *string  `json:"transport"`
	Accommodation   *string  `json:"accommodation"`
	Itinerary       *string  `json:"itinerary"`
	Status          *string  `json:"status" binding:"omitempty,oneof=planned active completed cancelled"`
	Latitude        *float64 `json:"latitude"`
	Longitude       *float64 `json:"longitude"`
}

// ParseDates returns the parsed start/end dates of the request
func (r *CreateTripRequest) ParseDates() (start, end time.Time, err error) {
	start, err = time.Parse(DateOnly, r.StartDate)
	if err != nil {
		return start, end, err
	}
	end, err = time.Parse(DateOnly, r.EndDate)
	return start, end, err
}

// UpdateTripRequest is the payload for updating a trip. Nil fields are
// left untouched; creator_id is never updatable.
type UpdateTripRequest struct {
	Origin          *string  `json:"origin"`
	Destination     *string  `json:"destination"`
	Title           *string  `json:"title"`
	Description     *string  `json:"description"`
	StartDate       *string  `json:"start_date" binding:"omitempty,daterange"`
	EndDate         *string  `json:"end_date" binding:"omitempty,daterange"`
	EstimatedCost   *float64 `json:"estimated_cost"`
	MinParticipants *int     `json:"min_participants" binding:"omitempty,min=1"`
	Transport       *string  `json:"transport"`
	Accommodation   *string  `json:"accommodation"`
	Itinerary       *string  `json:"itinerary"`
	Status          *string  `json:"status" binding:"omitempty,oneof=planned active completed cancelled"`
	Latitude        *float64 `json:"latitude"`
	Longitude       *float64 `json:"longitude"`
}

// TripSearchFilter carries the supported trip listing filters
type TripSearchFilter struct {
	CreatorID   *int64
	Status      *string
	Destination *string
	Page        int
	PerPage     int
}

// TripDetailResponse is a trip enriched with its accepted headcount
type TripDetailResponse struct {
	models.Trip
	CurrentParticipants int `json:"current_participants"`
}

// TripWithParticipants is a created trip together with all its
// participation rows, for the creator's dashboard listing.
type TripWithParticipants struct {
	models.Trip
	Participants []models.ParticipantProfile `json:"participants"`
}
