package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParticipationStatusIsValid(t *testing.T) {
	assert.True(t, ParticipationPending.IsValid())
	assert.True(t, ParticipationAccepted.IsValid())
	assert.True(t, ParticipationRejected.IsValid())
	assert.True(t, ParticipationCancelled.IsValid())
	assert.False(t, ParticipationStatus("approved").IsValid())
	assert.False(t, ParticipationStatus("").IsValid())
}

func TestParticipationStatusIsActive(t *testing.T) {
	assert.True(t, ParticipationPending.IsActive())
	assert.True(t, ParticipationAccepted.IsActive())
	assert.False(t, ParticipationRejected.IsActive())
	assert.False(t, ParticipationCancelled.IsActive())
}

func TestParticipationStatusTransitions(t *testing.T) {
	tests := []struct {
		name    string
		from    ParticipationStatus
		to      ParticipationStatus
		allowed bool
	}{
		{"pending to accepted", ParticipationPending, ParticipationAccepted, true},
		{"pending to rejected", ParticipationPending, ParticipationRejected, true},
		{"pending to cancelled", ParticipationPending, ParticipationCancelled, true},
		{"accepted to cancelled", ParticipationAccepted, ParticipationCancelled, true},
		{"accepted to rejected", ParticipationAccepted, ParticipationRejected, false},
		{"accepted to pending", ParticipationAccepted, ParticipationPending, false},
		{"rejected is terminal", ParticipationRejected, ParticipationAccepted, false},
		{"cancelled is terminal", ParticipationCancelled, ParticipationAccepted, false},
		{"rejected to cancelled", ParticipationRejected, ParticipationCancelled, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestTripCapacityHasRoom(t *testing.T) {
	assert.True(t, TripCapacity{Capacity: 2, AcceptedCount: 0}.HasRoom())
	assert.True(t, TripCapacity{Capacity: 2, AcceptedCount: 1}.HasRoom())
	assert.False(t, TripCapacity{Capacity: 2, AcceptedCount: 2}.HasRoom())
	assert.False(t, TripCapacity{Capacity: 1, AcceptedCount: 1}.HasRoom())
}

func TestTripCapacityCurrentParticipants(t *testing.T) {
	// The creator always counts toward the displayed headcount
	assert.Equal(t, 1, TripCapacity{Capacity: 3, AcceptedCount: 0}.CurrentParticipants())
	assert.Equal(t, 3, TripCapacity{Capacity: 3, AcceptedCount: 2}.CurrentParticipants())
}
