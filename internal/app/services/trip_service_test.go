package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/traveltogether/api/internal/app/models"
	"github.com/traveltogether/api/internal/app/models/dto"
	"github.com/traveltogether/api/internal/pkg/apperrors"
)

func newTripFixture(t *testing.T) (*TripService, *mockTripRepo, *mockParticipationRepo) {
	t.Helper()
	tripRepo := &mockTripRepo{}
	participationRepo := &mockParticipationRepo{}
	return NewTripService(tripRepo, participationRepo), tripRepo, participationRepo
}

func TestCreateTripParsesDatesAndDelegates(t *testing.T) {
	svc, tripRepo, _ := newTripFixture(t)

	req := &dto.CreateTripRequest{
		Origin:          "Porto",
		Destination:     "Lisbon",
		Title:           "Lisbon in May",
		StartDate:       "2026-05-01",
		EndDate:         "2026-05-10",
		MinParticipants: 2,
	}

	tripRepo.On("Create", mock.Anything, mock.MatchedBy(func(trip *models.Trip) bool {
		return trip.CreatorID == creatorID &&
			trip.StartDate.Equal(time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)) &&
			trip.EndDate.Equal(time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC)) &&
			trip.Status == models.TripStatusPlanned
	})).Return(testTrip(), nil)

	trip, err := svc.Create(context.Background(), creatorID, req)

	require.NoError(t, err)
	assert.Equal(t, tripID, trip.ID)
	tripRepo.AssertExpectations(t)
}

func TestCreateTripRejectsBadDates(t *testing.T) {
	svc, tripRepo, _ := newTripFixture(t)

	tests := []struct {
		name       string
		start, end string
	}{
		{"malformed start", "05/01/2026", "2026-05-10"},
		{"malformed end", "2026-05-01", "next friday"},
		{"end before start", "2026-05-10", "2026-05-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := &dto.CreateTripRequest{
				Origin: "a", Destination: "b", Title: "c",
				StartDate: tt.start, EndDate: tt.end, MinParticipants: 1,
			}

			_, err := svc.Create(context.Background(), creatorID, req)

			assert.ErrorIs(t, err, apperrors.ErrBadRequest)
		})
	}

	tripRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateTripPropagatesDateConflict(t *testing.T) {
	svc, tripRepo, _ := newTripFixture(t)

	conflictErr := apperrors.NewDateConflictError(42)
	tripRepo.On("Create", mock.Anything, mock.Anything).Return(nil, conflictErr)

	req := &dto.CreateTripRequest{
		Origin: "a", Destination: "b", Title: "c",
		StartDate: "2026-05-01", EndDate: "2026-05-10", MinParticipants: 1,
	}

	_, err := svc.Create(context.Background(), creatorID, req)

	assert.ErrorIs(t, err, apperrors.ErrConflict)
	var dateConflict *apperrors.DateConflictError
	require.ErrorAs(t, err, &dateConflict)
	assert.Equal(t, int64(42), dateConflict.TripID)
}

func TestGetByIDIncludesHeadcount(t *testing.T) {
	svc, tripRepo, _ := newTripFixture(t)

	tripRepo.On("GetByID", mock.Anything, tripID).Return(testTrip(), nil)
	tripRepo.On("GetCapacityAndCount", mock.Anything, tripID).Return(&models.TripCapacity{
		TripID: tripID, Capacity: 2, CreatorID: creatorID, AcceptedCount: 1,
	}, nil)

	detail, err := svc.GetByID(context.Background(), tripID)

	require.NoError(t, err)
	// accepted participant plus the creator
	assert.Equal(t, 2, detail.CurrentParticipants)
}

func TestUpdateTripOnlyCreatorMayUpdate(t *testing.T) {
	svc, tripRepo, _ := newTripFixture(t)
	tripRepo.On("GetByID", mock.Anything, tripID).Return(testTrip(), nil)

	_, err := svc.Update(context.Background(), strangerID, tripID, &dto.UpdateTripRequest{})

	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	tripRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdateTripAppliesPartialFields(t *testing.T) {
	svc, tripRepo, _ := newTripFixture(t)

	newTitle := "Lisbon in June"
	newStart := "2026-06-01"
	newEnd := "2026-06-10"

	tripRepo.On("GetByID", mock.Anything, tripID).Return(testTrip(), nil)
	tripRepo.On("Update", mock.Anything, mock.MatchedBy(func(trip *models.Trip) bool {
		return trip.Title == newTitle &&
			trip.StartDate.Equal(time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)) &&
			trip.Origin == "Porto" // untouched field survives
	})).Return(testTrip(), nil)

	_, err := svc.Update(context.Background(), creatorID, tripID, &dto.UpdateTripRequest{
		Title:     &newTitle,
		StartDate: &newStart,
		EndDate:   &newEnd,
	})

	require.NoError(t, err)
	tripRepo.AssertExpectations(t)
}

func TestDeleteTripOnlyCreatorMayDelete(t *testing.T) {
	svc, tripRepo, _ := newTripFixture(t)
	tripRepo.On("GetByID", mock.Anything, tripID).Return(testTrip(), nil)

	err := svc.Delete(context.Background(), strangerID, tripID)

	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	tripRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestDeleteTripByCreator(t *testing.T) {
	svc, tripRepo, _ := newTripFixture(t)
	tripRepo.On("GetByID", mock.Anything, tripID).Return(testTrip(), nil)
	tripRepo.On("Delete", mock.Anything, tripID).Return(true, nil)

	err := svc.Delete(context.Background(), creatorID, tripID)

	require.NoError(t, err)
}

func TestListByCreatorAttachesParticipants(t *testing.T) {
	svc, tripRepo, participationRepo := newTripFixture(t)

	tripRepo.On("ListByCreator", mock.Anything, creatorID).Return([]*models.Trip{testTrip()}, nil)
	participationRepo.On("ListByTrip", mock.Anything, tripID).Return([]models.ParticipantProfile{
		{Participation: models.Participation{UserID: requesterID, Status: models.ParticipationAccepted}},
	}, nil)

	trips, err := svc.ListByCreator(context.Background(), creatorID)

	require.NoError(t, err)
	require.Len(t, trips, 1)
	assert.Len(t, trips[0].Participants, 1)
}
