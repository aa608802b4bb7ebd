package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/traveltogether/api/internal/app/models"
	"github.com/traveltogether/api/internal/pkg/apperrors"
)

const (
	creatorID   = int64(1)
	requesterID = int64(2)
	strangerID  = int64(3)
	tripID      = int64(10)
)

func newParticipationFixture(t *testing.T) (*ParticipationService, *mockParticipationRepo, *mockTripRepo, *mockNotificationRepo) {
	t.Helper()
	participationRepo := &mockParticipationRepo{}
	tripRepo := &mockTripRepo{}
	notificationRepo := &mockNotificationRepo{}
	svc := NewParticipationService(participationRepo, tripRepo, NewNotificationService(notificationRepo))
	return svc, participationRepo, tripRepo, notificationRepo
}

func testTrip() *models.Trip {
	return &models.Trip{
		ID:              tripID,
		Origin:          "Porto",
		Destination:     "Lisbon",
		Title:           "Lisbon in May",
		CreatorID:       creatorID,
		StartDate:       time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
		EndDate:         time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC),
		MinParticipants: 2,
	}
}

func pendingParticipation() *models.Participation {
	return &models.Participation{
		ID:     100,
		TripID: tripID,
		UserID: requesterID,
		Status: models.ParticipationPending,
	}
}

func TestRequestJoinFilesPendingAndNotifiesCreator(t *testing.T) {
	svc, participationRepo, tripRepo, notificationRepo := newParticipationFixture(t)

	participationRepo.On("CreatePending", mock.Anything, tripID, requesterID).
		Return(pendingParticipation(), nil)
	tripRepo.On("GetByID", mock.Anything, tripID).Return(testTrip(), nil)
	notificationRepo.On("Create", mock.Anything, mock.MatchedBy(func(n *models.Notification) bool {
		return n.ReceiverID == creatorID && n.Type == models.NotificationTypeJoinRequest
	})).Return(&models.Notification{}, nil)

	participation, err := svc.RequestJoin(context.Background(), requesterID, tripID)

	require.NoError(t, err)
	assert.Equal(t, models.ParticipationPending, participation.Status)
	participationRepo.AssertExpectations(t)
	notificationRepo.AssertExpectations(t)
}

func TestRequestJoinPropagatesGuardErrors(t *testing.T) {
	for _, guardErr := range []error{
		apperrors.ErrTripFull,
		apperrors.ErrOwnTrip,
		apperrors.ErrAlreadyPending,
		apperrors.ErrAlreadyAccepted,
		apperrors.ErrTripNotFound,
	} {
		t.Run(guardErr.Error(), func(t *testing.T) {
			svc, participationRepo, _, _ := newParticipationFixture(t)
			participationRepo.On("CreatePending", mock.Anything, tripID, requesterID).
				Return(nil, guardErr)

			_, err := svc.RequestJoin(context.Background(), requesterID, tripID)

			assert.ErrorIs(t, err, guardErr)
		})
	}
}

func TestRequestJoinSurvivesNotificationFailure(t *testing.T) {
	svc, participationRepo, tripRepo, notificationRepo := newParticipationFixture(t)

	participationRepo.On("CreatePending", mock.Anything, tripID, requesterID).
		Return(pendingParticipation(), nil)
	tripRepo.On("GetByID", mock.Anything, tripID).Return(testTrip(), nil)
	notificationRepo.On("Create", mock.Anything, mock.Anything).
		Return(nil, errors.New("insert failed"))

	participation, err := svc.RequestJoin(context.Background(), requesterID, tripID)

	require.NoError(t, err)
	assert.NotNil(t, participation)
}

func TestUpdateStatusCreatorAccepts(t *testing.T) {
	svc, participationRepo, tripRepo, notificationRepo := newParticipationFixture(t)

	accepted := pendingParticipation()
	accepted.Status = models.ParticipationAccepted

	participationRepo.On("GetByID", mock.Anything, int64(100)).Return(pendingParticipation(), nil)
	tripRepo.On("GetByID", mock.Anything, tripID).Return(testTrip(), nil)
	participationRepo.On("Accept", mock.Anything, int64(100)).Return(accepted, nil)
	notificationRepo.On("Create", mock.Anything, mock.MatchedBy(func(n *models.Notification) bool {
		return n.ReceiverID == requesterID && n.Type == models.NotificationTypeAccepted
	})).Return(&models.Notification{}, nil)

	result, err := svc.UpdateStatus(context.Background(), creatorID, 100, models.ParticipationAccepted)

	require.NoError(t, err)
	assert.Equal(t, models.ParticipationAccepted, result.Status)
	participationRepo.AssertExpectations(t)
}

func TestUpdateStatusOnlyCreatorMayAcceptOrReject(t *testing.T) {
	for _, status := range []models.ParticipationStatus{
		models.ParticipationAccepted,
		models.ParticipationRejected,
	} {
		t.Run(string(status), func(t *testing.T) {
			svc, participationRepo, tripRepo, _ := newParticipationFixture(t)
			participationRepo.On("GetByID", mock.Anything, int64(100)).Return(pendingParticipation(), nil)
			tripRepo.On("GetByID", mock.Anything, tripID).Return(testTrip(), nil)

			_, err := svc.UpdateStatus(context.Background(), strangerID, 100, status)
			assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

			// The requester cannot respond to their own request either
			_, err = svc.UpdateStatus(context.Background(), requesterID, 100, status)
			assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
		})
	}
}

func TestUpdateStatusStrangerMayNotCancel(t *testing.T) {
	svc, participationRepo, tripRepo, _ := newParticipationFixture(t)
	participationRepo.On("GetByID", mock.Anything, int64(100)).Return(pendingParticipation(), nil)
	tripRepo.On("GetByID", mock.Anything, tripID).Return(testTrip(), nil)

	_, err := svc.UpdateStatus(context.Background(), strangerID, 100, models.ParticipationCancelled)

	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	participationRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateStatusCreatorCancels(t *testing.T) {
	svc, participationRepo, tripRepo, notificationRepo := newParticipationFixture(t)

	cancelled := pendingParticipation()
	cancelled.Status = models.ParticipationCancelled

	participationRepo.On("GetByID", mock.Anything, int64(100)).Return(pendingParticipation(), nil)
	tripRepo.On("GetByID", mock.Anything, tripID).Return(testTrip(), nil)
	participationRepo.On("UpdateStatus", mock.Anything, int64(100), models.ParticipationCancelled).
		Return(cancelled, nil)
	notificationRepo.On("Create", mock.Anything, mock.MatchedBy(func(n *models.Notification) bool {
		return n.ReceiverID == requesterID && n.Type == models.NotificationTypeCancelled
	})).Return(&models.Notification{}, nil)

	result, err := svc.UpdateStatus(context.Background(), creatorID, 100, models.ParticipationCancelled)

	require.NoError(t, err)
	assert.Equal(t, models.ParticipationCancelled, result.Status)
	notificationRepo.AssertExpectations(t)
}

func TestUpdateStatusRequesterCancels(t *testing.T) {
	svc, participationRepo, tripRepo, notificationRepo := newParticipationFixture(t)

	cancelled := pendingParticipation()
	cancelled.Status = models.ParticipationCancelled

	participationRepo.On("GetByID", mock.Anything, int64(100)).Return(pendingParticipation(), nil)
	tripRepo.On("GetByID", mock.Anything, tripID).Return(testTrip(), nil)
	participationRepo.On("UpdateStatus", mock.Anything, int64(100), models.ParticipationCancelled).
		Return(cancelled, nil)
	notificationRepo.On("Create", mock.Anything, mock.MatchedBy(func(n *models.Notification) bool {
		return n.ReceiverID == creatorID && n.Type == models.NotificationTypeCancelled
	})).Return(&models.Notification{}, nil)

	result, err := svc.UpdateStatus(context.Background(), requesterID, 100, models.ParticipationCancelled)

	require.NoError(t, err)
	assert.Equal(t, models.ParticipationCancelled, result.Status)
}

func TestUpdateStatusAcceptedCanStillBeCancelled(t *testing.T) {
	svc, participationRepo, tripRepo, notificationRepo := newParticipationFixture(t)

	accepted := pendingParticipation()
	accepted.Status = models.ParticipationAccepted
	cancelled := pendingParticipation()
	cancelled.Status = models.ParticipationCancelled

	participationRepo.On("GetByID", mock.Anything, int64(100)).Return(accepted, nil)
	tripRepo.On("GetByID", mock.Anything, tripID).Return(testTrip(), nil)
	participationRepo.On("UpdateStatus", mock.Anything, int64(100), models.ParticipationCancelled).
		Return(cancelled, nil)
	notificationRepo.On("Create", mock.Anything, mock.Anything).Return(&models.Notification{}, nil)

	result, err := svc.UpdateStatus(context.Background(), requesterID, 100, models.ParticipationCancelled)

	require.NoError(t, err)
	assert.Equal(t, models.ParticipationCancelled, result.Status)
}

func TestUpdateStatusIdempotentNoOp(t *testing.T) {
	svc, participationRepo, tripRepo, _ := newParticipationFixture(t)

	accepted := pendingParticipation()
	accepted.Status = models.ParticipationAccepted

	participationRepo.On("GetByID", mock.Anything, int64(100)).Return(accepted, nil)
	tripRepo.On("GetByID", mock.Anything, tripID).Return(testTrip(), nil)

	result, err := svc.UpdateStatus(context.Background(), creatorID, 100, models.ParticipationAccepted)

	require.NoError(t, err)
	assert.Equal(t, models.ParticipationAccepted, result.Status)
	participationRepo.AssertNotCalled(t, "Accept", mock.Anything, mock.Anything)
	participationRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateStatusTerminalStatesAreImmutable(t *testing.T) {
	for _, terminal := range []models.ParticipationStatus{
		models.ParticipationRejected,
		models.ParticipationCancelled,
	} {
		t.Run(string(terminal), func(t *testing.T) {
			svc, participationRepo, tripRepo, _ := newParticipationFixture(t)

			p := pendingParticipation()
			p.Status = terminal
			participationRepo.On("GetByID", mock.Anything, int64(100)).Return(p, nil)
			tripRepo.On("GetByID", mock.Anything, tripID).Return(testTrip(), nil)

			_, err := svc.UpdateStatus(context.Background(), creatorID, 100, models.ParticipationAccepted)

			assert.ErrorIs(t, err, apperrors.ErrTerminalStatus)
		})
	}
}

func TestUpdateStatusRejectsInvalidValues(t *testing.T) {
	svc, _, _, _ := newParticipationFixture(t)

	_, err := svc.UpdateStatus(context.Background(), creatorID, 100, models.ParticipationStatus("approved"))
	assert.ErrorIs(t, err, apperrors.ErrInvalidStatus)

	// Moving back to pending is never allowed
	_, err = svc.UpdateStatus(context.Background(), creatorID, 100, models.ParticipationPending)
	assert.ErrorIs(t, err, apperrors.ErrInvalidStatus)
}

func TestUpdateStatusPropagatesCapacityAndDateConflicts(t *testing.T) {
	tests := []struct {
		name     string
		repoErr  error
		matchErr error
	}{
		{"trip filled meanwhile", apperrors.ErrTripFull, apperrors.ErrTripFull},
		{"date conflict for subject", apperrors.NewDateConflictError(42), apperrors.ErrConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, participationRepo, tripRepo, _ := newParticipationFixture(t)

			participationRepo.On("GetByID", mock.Anything, int64(100)).Return(pendingParticipation(), nil)
			tripRepo.On("GetByID", mock.Anything, tripID).Return(testTrip(), nil)
			participationRepo.On("Accept", mock.Anything, int64(100)).Return(nil, tt.repoErr)

			_, err := svc.UpdateStatus(context.Background(), creatorID, 100, models.ParticipationAccepted)

			assert.ErrorIs(t, err, tt.matchErr)
		})
	}
}

func TestListByTripCreatorSeesEverything(t *testing.T) {
	svc, participationRepo, tripRepo, _ := newParticipationFixture(t)

	all := []models.ParticipantProfile{
		{Participation: models.Participation{UserID: requesterID, Status: models.ParticipationPending}},
		{Participation: models.Participation{UserID: strangerID, Status: models.ParticipationAccepted}},
		{Participation: models.Participation{UserID: 4, Status: models.ParticipationRejected}},
	}
	tripRepo.On("GetByID", mock.Anything, tripID).Return(testTrip(), nil)
	participationRepo.On("ListByTrip", mock.Anything, tripID).Return(all, nil)

	result, err := svc.ListByTrip(context.Background(), creatorID, tripID)

	require.NoError(t, err)
	assert.Len(t, result, 3)
}

func TestListByTripNonCreatorSeesAcceptedAndOwnRows(t *testing.T) {
	svc, participationRepo, tripRepo, _ := newParticipationFixture(t)

	all := []models.ParticipantProfile{
		{Participation: models.Participation{UserID: requesterID, Status: models.ParticipationPending}},
		{Participation: models.Participation{UserID: strangerID, Status: models.ParticipationAccepted}},
		{Participation: models.Participation{UserID: 4, Status: models.ParticipationPending}},
	}
	tripRepo.On("GetByID", mock.Anything, tripID).Return(testTrip(), nil)
	participationRepo.On("ListByTrip", mock.Anything, tripID).Return(all, nil)

	result, err := svc.ListByTrip(context.Background(), requesterID, tripID)

	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, requesterID, result[0].UserID)
	assert.Equal(t, strangerID, result[1].UserID)
}

func TestDeleteStrangerForbidden(t *testing.T) {
	svc, participationRepo, tripRepo, _ := newParticipationFixture(t)
	participationRepo.On("GetByID", mock.Anything, int64(100)).Return(pendingParticipation(), nil)
	tripRepo.On("GetByID", mock.Anything, tripID).Return(testTrip(), nil)

	_, err := svc.Delete(context.Background(), strangerID, 100)

	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	participationRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestDeleteByTripCreator(t *testing.T) {
	svc, participationRepo, tripRepo, _ := newParticipationFixture(t)
	participationRepo.On("GetByID", mock.Anything, int64(100)).Return(pendingParticipation(), nil)
	tripRepo.On("GetByID", mock.Anything, tripID).Return(testTrip(), nil)
	participationRepo.On("Delete", mock.Anything, int64(100)).Return(true, nil)

	deleted, err := svc.Delete(context.Background(), creatorID, 100)

	require.NoError(t, err)
	assert.Equal(t, requesterID, deleted.UserID)
}

func TestDeleteRemovesOwnParticipation(t *testing.T) {
	svc, participationRepo, _, _ := newParticipationFixture(t)
	participationRepo.On("GetByID", mock.Anything, int64(100)).Return(pendingParticipation(), nil)
	participationRepo.On("Delete", mock.Anything, int64(100)).Return(true, nil)

	deleted, err := svc.Delete(context.Background(), requesterID, 100)

	require.NoError(t, err)
	assert.Equal(t, tripID, deleted.TripID)
	assert.Equal(t, requesterID, deleted.UserID)
}
