package models

import "time"

// ParticipationStatus is the lifecycle state of a join request
type ParticipationStatus string

const (
	ParticipationPending   ParticipationStatus = "pending"
	ParticipationAccepted  ParticipationStatus = "accepted"
	ParticipationRejected  ParticipationStatus = "rejected"
	ParticipationCancelled ParticipationStatus = "cancelled"
)

// IsValid reports whether s is a known status value
func (s ParticipationStatus) IsValid() bool {
	switch s {
	case ParticipationPending, ParticipationAccepted, ParticipationRejected, ParticipationCancelled:
		return true
	}
	return false
}

// IsActive reports whether the participation still occupies the
// (trip, user) slot. Rejected and cancelled rows are terminal history.
func (s ParticipationStatus) IsActive() bool {
	return s == ParticipationPending || s == ParticipationAccepted
}

// IsTerminal reports whether no further transition is allowed
func (s ParticipationStatus) IsTerminal() bool {
	return s == ParticipationRejected || s == ParticipationCancelled
}

// CanTransitionTo reports whether the state machine allows moving from s to
// next. pending -> accepted/rejected/cancelled, accepted -> cancelled.
func (s ParticipationStatus) CanTransitionTo(next ParticipationStatus) bool {
	if s.IsTerminal() {
		return false
	}
	if s == ParticipationAccepted {
		return next == ParticipationCancelled
	}
	return next == ParticipationAccepted || next == ParticipationRejected || next == ParticipationCancelled
}

// Participation represents a user's join request on a trip
type Participation struct {
	ID           int64               `json:"id" db:"id"`
	TripID       int64               `json:"trip_id" db:"trip_id"`
	UserID       int64               `json:"user_id" db:"user_id"`
	Status       ParticipationStatus `json:"status" db:"status"`
	RequestDate  time.Time           `json:"request_date" db:"request_date"`
	ResponseDate *time.Time          `json:"response_date,omitempty" db:"response_date"`
}

// ParticipantProfile is a participation row enriched with the requesting
// user's public profile and average rating, for trip participant listings.
type ParticipantProfile struct {
	Participation
	Username  string   `json:"username"`
	Email     string   `json:"email"`
	Image     *string  `json:"image,omitempty"`
	AvgRating *float64 `json:"avg_rating,omitempty"`
}

// UserParticipation is a participation row enriched with the trip and the
// trip creator's profile, for "my participations" listings.
type UserParticipation struct {
	Participation
	Trip            Trip     `json:"trip"`
	CreatorUsername string   `json:"creator_username"`
	CreatorImage    *string  `json:"creator_image,omitempty"`
	CreatorRating   *float64 `json:"creator_avg_rating,omitempty"`
}
