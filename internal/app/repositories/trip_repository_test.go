package repositories_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/traveltogether/api/internal/app/models"
	"github.com/traveltogether/api/internal/app/repositories"
	"github.com/traveltogether/api/internal/pkg/apperrors"
)

func TestTripRepoCreateMaterializesCreatorRow(t *testing.T) {
	database := newTestDB(t)
	ctx := context.Background()

	creator := createUser(t, database, "creator")
	trip := createTrip(t, database, creator.ID, date(2026, time.June, 1), date(2026, time.June, 10), 2)

	row, err := repositories.NewParticipationRepository(database).
		GetActiveByTripAndUser(ctx, trip.ID, creator.ID)

	require.NoError(t, err)
	require.NotNil(t, row, "creator should hold an accepted participation from creation")
	assert.Equal(t, models.ParticipationAccepted, row.Status)
}

func TestTripRepoCreateRejectsOverlap(t *testing.T) {
	database := newTestDB(t)

	creator := createUser(t, database, "creator")
	first := createTrip(t, database, creator.ID, date(2026, time.June, 1), date(2026, time.June, 10), 2)

	_, err := repositories.NewTripRepository(database).Create(context.Background(), &models.Trip{
		Origin:          "Faro",
		Destination:     "Madrid",
		Title:           "Overlapping trip",
		CreatorID:       creator.ID,
		StartDate:       date(2026, time.June, 8),
		EndDate:         date(2026, time.June, 15),
		MinParticipants: 2,
		Status:          models.TripStatusPlanned,
	})

	var conflict *apperrors.DateConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, first.ID, conflict.TripID)
}

func TestFindDateConflictInclusiveBounds(t *testing.T) {
	database := newTestDB(t)
	ctx := context.Background()
	trips := repositories.NewTripRepository(database)

	creator := createUser(t, database, "creator")
	trip := createTrip(t, database, creator.ID, date(2026, time.June, 1), date(2026, time.June, 10), 2)

	// Ranges sharing a single boundary day overlap
	conflictID, err := trips.FindDateConflict(ctx, creator.ID,
		date(2026, time.June, 10), date(2026, time.June, 20), nil)
	require.NoError(t, err)
	assert.Equal(t, trip.ID, conflictID)

	conflictID, err = trips.FindDateConflict(ctx, creator.ID,
		date(2026, time.May, 20), date(2026, time.June, 1), nil)
	require.NoError(t, err)
	assert.Equal(t, trip.ID, conflictID)

	// The day after the trip ends is free
	conflictID, err = trips.FindDateConflict(ctx, creator.ID,
		date(2026, time.June, 11), date(2026, time.June, 20), nil)
	require.NoError(t, err)
	assert.Zero(t, conflictID)
}

func TestFindDateConflictExcludesTrip(t *testing.T) {
	database := newTestDB(t)
	trips := repositories.NewTripRepository(database)

	creator := createUser(t, database, "creator")
	trip := createTrip(t, database, creator.ID, date(2026, time.June, 1), date(2026, time.June, 10), 2)

	// A trip being edited must not conflict with itself
	conflictID, err := trips.FindDateConflict(context.Background(), creator.ID,
		date(2026, time.June, 5), date(2026, time.June, 12), &trip.ID)
	require.NoError(t, err)
	assert.Zero(t, conflictID)
}

func TestFindDateConflictOnlyAcceptedBlocks(t *testing.T) {
	database := newTestDB(t)
	ctx := context.Background()
	trips := repositories.NewTripRepository(database)
	participations := repositories.NewParticipationRepository(database)

	creator := createUser(t, database, "creator")
	joiner := createUser(t, database, "joiner")
	trip := createTrip(t, database, creator.ID, date(2026, time.June, 1), date(2026, time.June, 10), 2)

	p, err := participations.CreatePending(ctx, trip.ID, joiner.ID)
	require.NoError(t, err)

	// A pending request is not a commitment
	conflictID, err := trips.FindDateConflict(ctx, joiner.ID,
		date(2026, time.June, 5), date(2026, time.June, 12), nil)
	require.NoError(t, err)
	assert.Zero(t, conflictID)

	_, err = participations.Accept(ctx, p.ID)
	require.NoError(t, err)

	conflictID, err = trips.FindDateConflict(ctx, joiner.ID,
		date(2026, time.June, 5), date(2026, time.June, 12), nil)
	require.NoError(t, err)
	assert.Equal(t, trip.ID, conflictID)
}
