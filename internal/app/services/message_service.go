package services

import (
	"context"
	"fmt"

	"github.com/traveltogether/api/internal/app/models"
	"github.com/traveltogether/api/internal/app/models/dto"
	"github.com/traveltogether/api/internal/app/repositories"
	"github.com/traveltogether/api/internal/pkg/apperrors"
)

// MessageService manages direct messages between users
type MessageService struct {
	messageRepo repositories.MessageRepository
	userRepo    repositories.UserRepository
	notifier    *NotificationService
}

// NewMessageService creates a new MessageService
func NewMessageService(messageRepo repositories.MessageRepository, userRepo repositories.UserRepository, notifier *NotificationService) *MessageService {
	return &MessageService{messageRepo: messageRepo, userRepo: userRepo, notifier: notifier}
}

// Send stores a message and notifies the receiver
func (s *MessageService) Send(ctx context.Context, senderID int64, req *dto.CreateMessageRequest) (*models.Message, error) {
	if senderID == req.ReceiverID {
		return nil, apperrors.NewBadRequestError("cannot send a message to yourself")
	}

	message, err := s.messageRepo.Create(ctx, &models.Message{
		Message:    req.Message,
		SenderID:   senderID,
		ReceiverID: req.ReceiverID,
		TripID:     req.TripID,
	})
	if err != nil {
		return nil, err
	}

	sender, err := s.userRepo.GetByID(ctx, senderID)
	senderName := "Someone"
	if err == nil {
		senderName = sender.Username
	}
	s.notifier.NotifyParticipation(ctx, &models.Notification{
		Title:      "New message",
		Message:    fmt.Sprintf("%s sent you a message", senderName),
		Type:       models.NotificationTypeMessage,
		SenderID:   &senderID,
		ReceiverID: req.ReceiverID,
	})

	return message, nil
}

// List retrieves messages the acting user sent or received, optionally
// narrowed by trip. The filter is forced onto the acting user so nobody can
// read third-party threads.
func (s *MessageService) List(ctx context.Context, userID int64, filter *dto.MessageFilter) ([]models.Message, int64, error) {
	if filter.SenderID == nil && filter.ReceiverID == nil {
		filter.SenderID = &userID
	}
	if filter.SenderID != nil && *filter.SenderID != userID {
		filter.ReceiverID = &userID
	}
	if filter.ReceiverID != nil && *filter.ReceiverID != userID && (filter.SenderID == nil || *filter.SenderID != userID) {
		filter.SenderID = &userID
	}
	return s.messageRepo.List(ctx, filter)
}

// Conversation retrieves the full two-way thread between the acting user
// and another user.
func (s *MessageService) Conversation(ctx context.Context, userID, otherID int64) ([]models.Message, error) {
	return s.messageRepo.ListConversation(ctx, userID, otherID)
}

// GetByID returns a single message. Only its sender or receiver may read it.
func (s *MessageService) GetByID(ctx context.Context, actorID, messageID int64) (*models.Message, error) {
	message, err := s.messageRepo.GetByID(ctx, messageID)
	if err != nil {
		return nil, err
	}
	if message.SenderID != actorID && message.ReceiverID != actorID {
		return nil, apperrors.NewForbiddenError("message belongs to another conversation")
	}
	return message, nil
}

// Update edits a message's text. Only the sender may edit.
func (s *MessageService) Update(ctx context.Context, actorID, messageID int64, text string) (*models.Message, error) {
	message, err := s.messageRepo.GetByID(ctx, messageID)
	if err != nil {
		return nil, err
	}
	if message.SenderID != actorID {
		return nil, apperrors.NewForbiddenError("only the sender can edit a message")
	}
	return s.messageRepo.Update(ctx, messageID, text)
}

// Delete removes a message. Only the sender may delete.
func (s *MessageService) Delete(ctx context.Context, actorID, messageID int64) error {
	message, err := s.messageRepo.GetByID(ctx, messageID)
	if err != nil {
		return err
	}
	if message.SenderID != actorID {
		return apperrors.NewForbiddenError("only the sender can delete a message")
	}
	return s.messageRepo.Delete(ctx, messageID)
}
