package services

import (
	"context"
	"fmt"

	"github.com/traveltogether/api/internal/app/models"
	"github.com/traveltogether/api/internal/app/repositories"
	"github.com/traveltogether/api/internal/pkg/apperrors"
	"github.com/traveltogether/api/internal/pkg/logger"
)

// ParticipationService drives the join-request lifecycle. All capacity and
// duplicate checks live in the repository's guarded writes; this layer owns
// authorization, the status state machine and the notification side effects.
type ParticipationService struct {
	participationRepo repositories.ParticipationRepository
	tripRepo          repositories.TripRepository
	notifier          *NotificationService
}

// NewParticipationService creates a new ParticipationService
func NewParticipationService(
	participationRepo repositories.ParticipationRepository,
	tripRepo repositories.TripRepository,
	notifier *NotificationService,
) *ParticipationService {
	return &ParticipationService{
		participationRepo: participationRepo,
		tripRepo:          tripRepo,
		notifier:          notifier,
	}
}

// RequestJoin files a pending join request for userID on tripID and notifies
// the trip creator. The notification is best effort: a failed insert is
// logged, never surfaced.
func (s *ParticipationService) RequestJoin(ctx context.Context, userID, tripID int64) (*models.Participation, error) {
	participation, err := s.participationRepo.CreatePending(ctx, tripID, userID)
	if err != nil {
		return nil, err
	}

	trip, err := s.tripRepo.GetByID(ctx, tripID)
	if err != nil {
		logger.Warn().Err(err).Int64("tripID", tripID).Msg("Could not load trip for join notification")
		return participation, nil
	}

	s.notifier.NotifyParticipation(ctx, &models.Notification{
		Title:      "New join request",
		Message:    fmt.Sprintf("A traveler wants to join your trip %q", trip.Title),
		Type:       models.NotificationTypeJoinRequest,
		SenderID:   &userID,
		ReceiverID: trip.CreatorID,
	})

	return participation, nil
}

// UpdateStatus applies a status transition to a participation on behalf of
// actorID. The trip creator may accept or reject pending requests; the
// requester may cancel their own pending or accepted participation.
// Re-submitting the current status is an idempotent no-op.
func (s *ParticipationService) UpdateStatus(ctx context.Context, actorID, participationID int64, newStatus models.ParticipationStatus) (*models.Participation, error) {
	if !newStatus.IsValid() || newStatus == models.ParticipationPending {
		return nil, apperrors.ErrInvalidStatus
	}

	participation, err := s.participationRepo.GetByID(ctx, participationID)
	if err != nil {
		return nil, err
	}

	trip, err := s.tripRepo.GetByID(ctx, participation.TripID)
	if err != nil {
		return nil, err
	}

	if err := authorizeTransition(actorID, participation, trip, newStatus); err != nil {
		return nil, err
	}

	if participation.Status == newStatus {
		return participation, nil
	}
	if !participation.Status.CanTransitionTo(newStatus) {
		if participation.Status.IsTerminal() {
			return nil, apperrors.ErrTerminalStatus
		}
		return nil, apperrors.ErrInvalidStatus
	}

	var updated *models.Participation
	if newStatus == models.ParticipationAccepted {
		updated, err = s.participationRepo.Accept(ctx, participationID)
	} else {
		updated, err = s.participationRepo.UpdateStatus(ctx, participationID, newStatus)
	}
	if err != nil {
		return nil, err
	}

	s.notifyTransition(ctx, actorID, updated, trip)

	return updated, nil
}

// authorizeTransition enforces who may move a participation where: accept
// and reject belong to the trip creator, cancel belongs to the requester or
// the trip creator.
func authorizeTransition(actorID int64, p *models.Participation, trip *models.Trip, newStatus models.ParticipationStatus) error {
	switch newStatus {
	case models.ParticipationAccepted, models.ParticipationRejected:
		if actorID != trip.CreatorID {
			return apperrors.NewForbiddenError("only the trip creator can respond to join requests")
		}
	case models.ParticipationCancelled:
		if actorID != p.UserID && actorID != trip.CreatorID {
			return apperrors.NewForbiddenError("only the requester or the trip creator can cancel a participation")
		}
	}
	return nil
}

func (s *ParticipationService) notifyTransition(ctx context.Context, actorID int64, p *models.Participation, trip *models.Trip) {
	var notification *models.Notification

	switch p.Status {
	case models.ParticipationAccepted:
		notification = &models.Notification{
			Title:      "Join request accepted",
			Message:    fmt.Sprintf("You are in! Your request to join %q was accepted", trip.Title),
			Type:       models.NotificationTypeAccepted,
			SenderID:   &actorID,
			ReceiverID: p.UserID,
		}
	case models.ParticipationRejected:
		notification = &models.Notification{
			Title:      "Join request declined",
			Message:    fmt.Sprintf("Your request to join %q was declined", trip.Title),
			Type:       models.NotificationTypeRejected,
			SenderID:   &actorID,
			ReceiverID: p.UserID,
		}
	case models.ParticipationCancelled:
		// Cancellation notifies the counterparty of whoever acted
		receiverID := trip.CreatorID
		message := fmt.Sprintf("A traveler withdrew from your trip %q", trip.Title)
		if actorID == trip.CreatorID {
			receiverID = p.UserID
			message = fmt.Sprintf("Your participation in %q was cancelled", trip.Title)
		}
		notification = &models.Notification{
			Title:      "Participation cancelled",
			Message:    message,
			Type:       models.NotificationTypeCancelled,
			SenderID:   &actorID,
			ReceiverID: receiverID,
		}
	}

	if notification != nil {
		s.notifier.NotifyParticipation(ctx, notification)
	}
}

// GetByID retrieves a single participation
func (s *ParticipationService) GetByID(ctx context.Context, id int64) (*models.Participation, error) {
	return s.participationRepo.GetByID(ctx, id)
}

// ListByTrip lists all participations of a trip with requester profiles.
// Only the trip creator sees the full list including pending requests.
func (s *ParticipationService) ListByTrip(ctx context.Context, actorID, tripID int64) ([]models.ParticipantProfile, error) {
	trip, err := s.tripRepo.GetByID(ctx, tripID)
	if err != nil {
		return nil, err
	}

	participants, err := s.participationRepo.ListByTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}

	if actorID == trip.CreatorID {
		return participants, nil
	}

	visible := participants[:0]
	for _, p := range participants {
		if p.Status == models.ParticipationAccepted || p.UserID == actorID {
			visible = append(visible, p)
		}
	}
	return visible, nil
}

// ListMine lists the acting user's participations with trip details
func (s *ParticipationService) ListMine(ctx context.Context, userID int64) ([]models.UserParticipation, error) {
	return s.participationRepo.ListByUserWithTrips(ctx, userID)
}

// ListPendingRequests lists pending join requests across the trips created
// by the acting user.
func (s *ParticipationService) ListPendingRequests(ctx context.Context, creatorID int64) ([]models.UserParticipation, error) {
	return s.participationRepo.ListPendingForCreator(ctx, creatorID)
}

// Delete removes a participation row entirely. Only the requester may
// delete their own participation.
func (s *ParticipationService) Delete(ctx context.Context, actorID, participationID int64) (*models.Participation, error) {
	participation, err := s.participationRepo.GetByID(ctx, participationID)
	if err != nil {
		return nil, err
	}

	if participation.UserID != actorID {
		trip, err := s.tripRepo.GetByID(ctx, participation.TripID)
		if err != nil {
			return nil, err
		}
		if trip.CreatorID != actorID {
			return nil, apperrors.NewForbiddenError("only the requester or the trip creator can delete a participation")
		}
	}

	deleted, err := s.participationRepo.Delete(ctx, participationID)
	if err != nil {
		return nil, err
	}
	if !deleted {
		return nil, apperrors.ErrParticipationNotFound
	}

	return participation, nil
}
