package services

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/traveltogether/api/internal/app/models"
	"github.com/traveltogether/api/internal/app/models/dto"
)

type mockParticipationRepo struct {
	mock.Mock
}

func (m *mockParticipationRepo) CreatePending(ctx context.Context, tripID, userID int64) (*models.Participation, error) {
	args := m.Called(ctx, tripID, userID)
	if p := args.Get(0); p != nil {
		return p.(*models.Participation), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockParticipationRepo) GetByID(ctx context.Context, id int64) (*models.Participation, error) {
	args := m.Called(ctx, id)
	if p := args.Get(0); p != nil {
		return p.(*models.Participation), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockParticipationRepo) GetActiveByTripAndUser(ctx context.Context, tripID, userID int64) (*models.Participation, error) {
	args := m.Called(ctx, tripID, userID)
	if p := args.Get(0); p != nil {
		return p.(*models.Participation), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockParticipationRepo) ListByTrip(ctx context.Context, tripID int64) ([]models.ParticipantProfile, error) {
	args := m.Called(ctx, tripID)
	if p := args.Get(0); p != nil {
		return p.([]models.ParticipantProfile), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockParticipationRepo) ListByUserWithTrips(ctx context.Context, userID int64) ([]models.UserParticipation, error) {
	args := m.Called(ctx, userID)
	if p := args.Get(0); p != nil {
		return p.([]models.UserParticipation), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockParticipationRepo) ListPendingForCreator(ctx context.Context, creatorID int64) ([]models.UserParticipation, error) {
	args := m.Called(ctx, creatorID)
	if p := args.Get(0); p != nil {
		return p.([]models.UserParticipation), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockParticipationRepo) Accept(ctx context.Context, id int64) (*models.Participation, error) {
	args := m.Called(ctx, id)
	if p := args.Get(0); p != nil {
		return p.(*models.Participation), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockParticipationRepo) UpdateStatus(ctx context.Context, id int64, status models.ParticipationStatus) (*models.Participation, error) {
	args := m.Called(ctx, id, status)
	if p := args.Get(0); p != nil {
		return p.(*models.Participation), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockParticipationRepo) Delete(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type mockTripRepo struct {
	mock.Mock
}

func (m *mockTripRepo) Create(ctx context.Context, trip *models.Trip) (*models.Trip, error) {
	args := m.Called(ctx, trip)
	if t := args.Get(0); t != nil {
		return t.(*models.Trip), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockTripRepo) GetByID(ctx context.Context, id int64) (*models.Trip, error) {
	args := m.Called(ctx, id)
	if t := args.Get(0); t != nil {
		return t.(*models.Trip), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockTripRepo) Search(ctx context.Context, filter *dto.TripSearchFilter) ([]*models.Trip, int64, error) {
	args := m.Called(ctx, filter)
	if t := args.Get(0); t != nil {
		return t.([]*models.Trip), args.Get(1).(int64), args.Error(2)
	}
	return nil, 0, args.Error(2)
}

func (m *mockTripRepo) Update(ctx context.Context, trip *models.Trip) (*models.Trip, error) {
	args := m.Called(ctx, trip)
	if t := args.Get(0); t != nil {
		return t.(*models.Trip), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockTripRepo) Delete(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockTripRepo) ListByCreator(ctx context.Context, creatorID int64) ([]*models.Trip, error) {
	args := m.Called(ctx, creatorID)
	if t := args.Get(0); t != nil {
		return t.([]*models.Trip), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockTripRepo) GetCapacityAndCount(ctx context.Context, tripID int64) (*models.TripCapacity, error) {
	args := m.Called(ctx, tripID)
	if c := args.Get(0); c != nil {
		return c.(*models.TripCapacity), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockTripRepo) IsCreator(ctx context.Context, tripID, userID int64) (bool, error) {
	args := m.Called(ctx, tripID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *mockTripRepo) FindDateConflict(ctx context.Context, userID int64, start, end time.Time, excludeTripID *int64) (int64, error) {
	args := m.Called(ctx, userID, start, end, excludeTripID)
	return args.Get(0).(int64), args.Error(1)
}

type mockNotificationRepo struct {
	mock.Mock
}

func (m *mockNotificationRepo) Create(ctx context.Context, notification *models.Notification) (*models.Notification, error) {
	args := m.Called(ctx, notification)
	if n := args.Get(0); n != nil {
		return n.(*models.Notification), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockNotificationRepo) GetByID(ctx context.Context, id int64) (*models.Notification, error) {
	args := m.Called(ctx, id)
	if n := args.Get(0); n != nil {
		return n.(*models.Notification), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockNotificationRepo) ListByReceiver(ctx context.Context, receiverID int64, filter *dto.NotificationFilter) ([]models.Notification, int64, error) {
	args := m.Called(ctx, receiverID, filter)
	if n := args.Get(0); n != nil {
		return n.([]models.Notification), args.Get(1).(int64), args.Error(2)
	}
	return nil, 0, args.Error(2)
}

func (m *mockNotificationRepo) CountUnread(ctx context.Context, receiverID int64) (int64, error) {
	args := m.Called(ctx, receiverID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockNotificationRepo) MarkRead(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockNotificationRepo) MarkAllRead(ctx context.Context, receiverID int64) (int64, error) {
	args := m.Called(ctx, receiverID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockNotificationRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}
