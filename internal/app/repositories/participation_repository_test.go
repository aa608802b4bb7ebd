package repositories_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/traveltogether/api/internal/app/models"
	"github.com/traveltogether/api/internal/app/repositories"
	"github.com/traveltogether/api/internal/db"
	"github.com/traveltogether/api/internal/pkg/apperrors"
)

// participationHarness seeds one creator with a trip plus a prospective
// joiner, the minimal cast for exercising the join-request guards.
type participationHarness struct {
	db      *db.PostgresDB
	repo    repositories.ParticipationRepository
	creator *models.User
	joiner  *models.User
	trip    *models.Trip
}

func newParticipationHarness(t *testing.T, capacity int) *participationHarness {
	t.Helper()
	database := newTestDB(t)

	creator := createUser(t, database, "creator")
	joiner := createUser(t, database, "joiner")
	trip := createTrip(t, database, creator.ID, date(2026, time.June, 1), date(2026, time.June, 10), capacity)

	return &participationHarness{
		db:      database,
		repo:    repositories.NewParticipationRepository(database),
		creator: creator,
		joiner:  joiner,
		trip:    trip,
	}
}

func TestParticipationRepoCreatePending(t *testing.T) {
	h := newParticipationHarness(t, 2)
	ctx := context.Background()

	created, err := h.repo.CreatePending(ctx, h.trip.ID, h.joiner.ID)

	require.NoError(t, err)
	assert.Equal(t, models.ParticipationPending, created.Status)
	assert.Equal(t, h.trip.ID, created.TripID)
	assert.Equal(t, h.joiner.ID, created.UserID)
	assert.False(t, created.RequestDate.IsZero())
	assert.Nil(t, created.ResponseDate)
}

func TestParticipationRepoCreatePendingOwnTrip(t *testing.T) {
	h := newParticipationHarness(t, 2)

	_, err := h.repo.CreatePending(context.Background(), h.trip.ID, h.creator.ID)

	assert.ErrorIs(t, err, apperrors.ErrOwnTrip)
}

func TestParticipationRepoCreatePendingMissingTrip(t *testing.T) {
	h := newParticipationHarness(t, 2)

	_, err := h.repo.CreatePending(context.Background(), h.trip.ID+999, h.joiner.ID)

	assert.ErrorIs(t, err, apperrors.ErrTripNotFound)
}

func TestParticipationRepoCreatePendingDuplicate(t *testing.T) {
	h := newParticipationHarness(t, 2)
	ctx := context.Background()

	_, err := h.repo.CreatePending(ctx, h.trip.ID, h.joiner.ID)
	require.NoError(t, err)

	// A second request while the first is still pending
	_, err = h.repo.CreatePending(ctx, h.trip.ID, h.joiner.ID)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyPending)
}

func TestParticipationRepoCreatePendingAlreadyAccepted(t *testing.T) {
	h := newParticipationHarness(t, 2)
	ctx := context.Background()

	p, err := h.repo.CreatePending(ctx, h.trip.ID, h.joiner.ID)
	require.NoError(t, err)
	_, err = h.repo.Accept(ctx, p.ID)
	require.NoError(t, err)

	_, err = h.repo.CreatePending(ctx, h.trip.ID, h.joiner.ID)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyAccepted)
}

func TestParticipationRepoRejoinAfterCancel(t *testing.T) {
	h := newParticipationHarness(t, 2)
	ctx := context.Background()

	p, err := h.repo.CreatePending(ctx, h.trip.ID, h.joiner.ID)
	require.NoError(t, err)
	_, err = h.repo.UpdateStatus(ctx, p.ID, models.ParticipationCancelled)
	require.NoError(t, err)

	// The cancelled row stays behind but no longer blocks a fresh request
	again, err := h.repo.CreatePending(ctx, h.trip.ID, h.joiner.ID)
	require.NoError(t, err)
	assert.NotEqual(t, p.ID, again.ID)
	assert.Equal(t, models.ParticipationPending, again.Status)
}

func TestParticipationRepoCreatePendingTripFull(t *testing.T) {
	h := newParticipationHarness(t, 1)
	ctx := context.Background()

	p, err := h.repo.CreatePending(ctx, h.trip.ID, h.joiner.ID)
	require.NoError(t, err)
	_, err = h.repo.Accept(ctx, p.ID)
	require.NoError(t, err)

	// Capacity 1 means one accepted non-creator participant; the creator's
	// own materialized row must not count against it.
	latecomer := createUser(t, h.db, "latecomer")
	_, err = h.repo.CreatePending(ctx, h.trip.ID, latecomer.ID)
	assert.ErrorIs(t, err, apperrors.ErrTripFull)
}

func TestParticipationRepoAccept(t *testing.T) {
	h := newParticipationHarness(t, 2)
	ctx := context.Background()

	p, err := h.repo.CreatePending(ctx, h.trip.ID, h.joiner.ID)
	require.NoError(t, err)

	accepted, err := h.repo.Accept(ctx, p.ID)

	require.NoError(t, err)
	assert.Equal(t, models.ParticipationAccepted, accepted.Status)
	require.NotNil(t, accepted.ResponseDate)
}

func TestParticipationRepoAcceptRechecksCapacity(t *testing.T) {
	h := newParticipationHarness(t, 1)
	ctx := context.Background()

	first, err := h.repo.CreatePending(ctx, h.trip.ID, h.joiner.ID)
	require.NoError(t, err)
	second, err := h.repo.CreatePending(ctx, h.trip.ID, createUser(t, h.db, "second").ID)
	require.NoError(t, err)

	_, err = h.repo.Accept(ctx, first.ID)
	require.NoError(t, err)

	// The second pending request passed the capacity gate at creation but
	// must fail it again at accept time.
	_, err = h.repo.Accept(ctx, second.ID)
	assert.ErrorIs(t, err, apperrors.ErrTripFull)
}

func TestParticipationRepoAcceptTerminalGuard(t *testing.T) {
	h := newParticipationHarness(t, 2)
	ctx := context.Background()

	p, err := h.repo.CreatePending(ctx, h.trip.ID, h.joiner.ID)
	require.NoError(t, err)
	_, err = h.repo.UpdateStatus(ctx, p.ID, models.ParticipationRejected)
	require.NoError(t, err)

	_, err = h.repo.Accept(ctx, p.ID)
	assert.ErrorIs(t, err, apperrors.ErrTerminalStatus)
}

func TestParticipationRepoAcceptDateConflict(t *testing.T) {
	h := newParticipationHarness(t, 2)
	ctx := context.Background()

	// The joiner is already committed to an overlapping trip of their own
	overlapping := createTrip(t, h.db, h.joiner.ID,
		date(2026, time.June, 5), date(2026, time.June, 12), 2)

	p, err := h.repo.CreatePending(ctx, h.trip.ID, h.joiner.ID)
	require.NoError(t, err)

	_, err = h.repo.Accept(ctx, p.ID)

	var conflict *apperrors.DateConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, overlapping.ID, conflict.TripID)
}
