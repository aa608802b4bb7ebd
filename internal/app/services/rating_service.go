package services

import (
	"context"

	"github.com/traveltogether/api/internal/app/models"
	"github.com/traveltogether/api/internal/app/models/dto"
	"github.com/traveltogether/api/internal/app/repositories"
	"github.com/traveltogether/api/internal/pkg/apperrors"
)

// RatingService manages post-trip ratings between travelers
type RatingService struct {
	ratingRepo        repositories.RatingRepository
	participationRepo repositories.ParticipationRepository
	tripRepo          repositories.TripRepository
}

// NewRatingService creates a new RatingService
func NewRatingService(ratingRepo repositories.RatingRepository, participationRepo repositories.ParticipationRepository, tripRepo repositories.TripRepository) *RatingService {
	return &RatingService{ratingRepo: ratingRepo, participationRepo: participationRepo, tripRepo: tripRepo}
}

// Create stores a rating. Author and subject must both be on the trip,
// either as creator or as accepted participant, and self-rating is rejected.
func (s *RatingService) Create(ctx context.Context, authorID int64, req *dto.CreateRatingRequest) (*models.Rating, error) {
	if authorID == req.RatedUserID {
		return nil, apperrors.NewBadRequestError("you cannot rate yourself")
	}

	trip, err := s.tripRepo.GetByID(ctx, req.TripID)
	if err != nil {
		return nil, err
	}

	for _, userID := range []int64{authorID, req.RatedUserID} {
		onTrip, err := s.isOnTrip(ctx, trip, userID)
		if err != nil {
			return nil, err
		}
		if !onTrip {
			return nil, apperrors.NewBadRequestError("both users must be participants of the trip")
		}
	}

	return s.ratingRepo.Create(ctx, &models.Rating{
		TripID:      req.TripID,
		AuthorID:    authorID,
		RatedUserID: req.RatedUserID,
		Score:       req.Score,
		Comment:     req.Comment,
	})
}

func (s *RatingService) isOnTrip(ctx context.Context, trip *models.Trip, userID int64) (bool, error) {
	if trip.CreatorID == userID {
		return true, nil
	}
	participation, err := s.participationRepo.GetActiveByTripAndUser(ctx, trip.ID, userID)
	if err != nil {
		return false, err
	}
	return participation != nil && participation.Status == models.ParticipationAccepted, nil
}

// List retrieves ratings matching the filter
func (s *RatingService) List(ctx context.Context, filter *dto.RatingFilter) ([]models.Rating, int64, error) {
	return s.ratingRepo.List(ctx, filter)
}

// Update edits a rating. Only the author may edit.
func (s *RatingService) Update(ctx context.Context, actorID, ratingID int64, req *dto.UpdateRatingRequest) (*models.Rating, error) {
	rating, err := s.ratingRepo.GetByID(ctx, ratingID)
	if err != nil {
		return nil, err
	}
	if rating.AuthorID != actorID {
		return nil, apperrors.NewForbiddenError("only the author can edit a rating")
	}
	return s.ratingRepo.Update(ctx, ratingID, req.Score, req.Comment)
}

// Delete removes a rating. Only the author may delete.
func (s *RatingService) Delete(ctx context.Context, actorID, ratingID int64) error {
	rating, err := s.ratingRepo.GetByID(ctx, ratingID)
	if err != nil {
		return err
	}
	if rating.AuthorID != actorID {
		return apperrors.NewForbiddenError("only the author can delete a rating")
	}
	return s.ratingRepo.Delete(ctx, ratingID)
}
