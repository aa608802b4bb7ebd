package services

import (
	"context"

	"github.com/traveltogether/api/internal/app/models"
	"github.com/traveltogether/api/internal/app/models/dto"
	"github.com/traveltogether/api/internal/app/repositories"
	"github.com/traveltogether/api/internal/pkg/apperrors"
	"github.com/traveltogether/api/internal/pkg/logger"
)

// NotificationService manages in-app notifications
type NotificationService struct {
	notificationRepo repositories.NotificationRepository
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(notificationRepo repositories.NotificationRepository) *NotificationService {
	return &NotificationService{notificationRepo: notificationRepo}
}

// NotifyParticipation stores a participation workflow notification on a
// best-effort basis. Failures are logged and swallowed so they never break
// the operation that triggered them.
func (s *NotificationService) NotifyParticipation(ctx context.Context, notification *models.Notification) {
	if _, err := s.notificationRepo.Create(ctx, notification); err != nil {
		logger.Warn().Err(err).
			Str("type", notification.Type).
			Int64("receiverID", notification.ReceiverID).
			Msg("Failed to store notification")
	}
}

// Create stores a notification addressed by senderID to the receiver in req
func (s *NotificationService) Create(ctx context.Context, senderID int64, req *dto.CreateNotificationRequest) (*models.Notification, error) {
	notificationType := req.Type
	if notificationType == "" {
		notificationType = models.NotificationTypeGeneric
	}

	return s.notificationRepo.Create(ctx, &models.Notification{
		Title:      req.Title,
		Message:    req.Message,
		Type:       notificationType,
		SenderID:   &senderID,
		ReceiverID: req.ReceiverID,
	})
}

// List retrieves the acting user's notifications with pagination
func (s *NotificationService) List(ctx context.Context, userID int64, filter *dto.NotificationFilter) ([]models.Notification, int64, error) {
	return s.notificationRepo.ListByReceiver(ctx, userID, filter)
}

// CountUnread returns the acting user's unread notification count
func (s *NotificationService) CountUnread(ctx context.Context, userID int64) (int64, error) {
	return s.notificationRepo.CountUnread(ctx, userID)
}

// MarkRead marks one of the acting user's notifications as read
func (s *NotificationService) MarkRead(ctx context.Context, userID, notificationID int64) error {
	notification, err := s.notificationRepo.GetByID(ctx, notificationID)
	if err != nil {
		return err
	}
	if notification.ReceiverID != userID {
		return apperrors.NewForbiddenError("notification belongs to another user")
	}
	return s.notificationRepo.MarkRead(ctx, notificationID)
}

// MarkAllRead marks all of the acting user's notifications as read
func (s *NotificationService) MarkAllRead(ctx context.Context, userID int64) (int64, error) {
	return s.notificationRepo.MarkAllRead(ctx, userID)
}

// Delete removes one of the acting user's notifications
func (s *NotificationService) Delete(ctx context.Context, userID, notificationID int64) error {
	notification, err := s.notificationRepo.GetByID(ctx, notificationID)
	if err != nil {
		return err
	}
	if notification.ReceiverID != userID {
		return apperrors.NewForbiddenError("notification belongs to another user")
	}
	return s.notificationRepo.Delete(ctx, notificationID)
}
