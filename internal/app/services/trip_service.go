package services

import (
	"context"
	"time"

	"github.com/traveltogether/api/internal/app/models"
	"github.com/traveltogether/api/internal/app/models/dto"
	"github.com/traveltogether/api/internal/app/repositories"
	"github.com/traveltogether/api/internal/pkg/apperrors"
)

// TripService manages trips. Creation and date updates delegate the
// overlap invariant to the repository's guarded writes.
type TripService struct {
	tripRepo          repositories.TripRepository
	participationRepo repositories.ParticipationRepository
}

// NewTripService creates a new TripService
func NewTripService(tripRepo repositories.TripRepository, participationRepo repositories.ParticipationRepository) *TripService {
	return &TripService{tripRepo: tripRepo, participationRepo: participationRepo}
}

// Create creates a trip owned by creatorID. The creator's own accepted
// participation row is materialized by the repository in the same
// transaction.
func (s *TripService) Create(ctx context.Context, creatorID int64, req *dto.CreateTripRequest) (*models.Trip, error) {
	start, end, err := req.ParseDates()
	if err != nil {
		return nil, apperrors.NewBadRequestError("dates must use the YYYY-MM-DD format")
	}
	if end.Before(start) {
		return nil, apperrors.NewBadRequestError("end_date must not be before start_date")
	}

	status := models.TripStatusPlanned
	if req.Status != nil {
		status = *req.Status
	}

	trip := &models.Trip{
		Origin:          req.Origin,
		Destination:     req.Destination,
		Title:           req.Title,
		Description:     req.Description,
		CreatorID:       creatorID,
		StartDate:       start,
		EndDate:         end,
		EstimatedCost:   req.EstimatedCost,
		MinParticipants: req.MinParticipants,
		Transport:       req.Transport,
		Accommodation:   req.Accommodation,
		Itinerary:       req.Itinerary,
		Status:          status,
		Latitude:        req.Latitude,
		Longitude:       req.Longitude,
	}

	return s.tripRepo.Create(ctx, trip)
}

// GetByID retrieves a trip together with its accepted headcount
func (s *TripService) GetByID(ctx context.Context, id int64) (*dto.TripDetailResponse, error) {
	trip, err := s.tripRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	capacity, err := s.tripRepo.GetCapacityAndCount(ctx, id)
	if err != nil {
		return nil, err
	}

	return &dto.TripDetailResponse{
		Trip:                *trip,
		CurrentParticipants: capacity.CurrentParticipants(),
	}, nil
}

// Search retrieves trips matching the filter with pagination
func (s *TripService) Search(ctx context.Context, filter *dto.TripSearchFilter) ([]*models.Trip, int64, error) {
	return s.tripRepo.Search(ctx, filter)
}

// ListByCreator retrieves the trips created by a user, each with its
// participation rows.
func (s *TripService) ListByCreator(ctx context.Context, creatorID int64) ([]dto.TripWithParticipants, error) {
	trips, err := s.tripRepo.ListByCreator(ctx, creatorID)
	if err != nil {
		return nil, err
	}

	result := make([]dto.TripWithParticipants, 0, len(trips))
	for _, trip := range trips {
		participants, err := s.participationRepo.ListByTrip(ctx, trip.ID)
		if err != nil {
			return nil, err
		}
		result = append(result, dto.TripWithParticipants{Trip: *trip, Participants: participants})
	}

	return result, nil
}

// Update applies a partial update to a trip. Only the creator may update,
// and date changes re-run the overlap check against their other trips.
func (s *TripService) Update(ctx context.Context, actorID, tripID int64, req *dto.UpdateTripRequest) (*models.Trip, error) {
	trip, err := s.tripRepo.GetByID(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if trip.CreatorID != actorID {
		return nil, apperrors.NewForbiddenError("only the trip creator can update the trip")
	}

	if err := applyTripUpdate(trip, req); err != nil {
		return nil, err
	}
	if trip.EndDate.Before(trip.StartDate) {
		return nil, apperrors.NewBadRequestError("end_date must not be before start_date")
	}

	return s.tripRepo.Update(ctx, trip)
}

func applyTripUpdate(trip *models.Trip, req *dto.UpdateTripRequest) error {
	if req.Origin != nil {
		trip.Origin = *req.Origin
	}
	if req.Destination != nil {
		trip.Destination = *req.Destination
	}
	if req.Title != nil {
		trip.Title = *req.Title
	}
	if req.Description != nil {
		trip.Description = req.Description
	}
	if req.StartDate != nil {
		start, err := time.Parse(dto.DateOnly, *req.StartDate)
		if err != nil {
			return apperrors.NewBadRequestError("dates must use the YYYY-MM-DD format")
		}
		trip.StartDate = start
	}
	if req.EndDate != nil {
		end, err := time.Parse(dto.DateOnly, *req.EndDate)
		if err != nil {
			return apperrors.NewBadRequestError("dates must use the YYYY-MM-DD format")
		}
		trip.EndDate = end
	}
	if req.EstimatedCost != nil {
		trip.EstimatedCost = req.EstimatedCost
	}
	if req.MinParticipants != nil {
		trip.MinParticipants = *req.MinParticipants
	}
	if req.Transport != nil {
		trip.Transport = req.Transport
	}
	if req.Accommodation != nil {
		trip.Accommodation = req.Accommodation
	}
	if req.Itinerary != nil {
		trip.Itinerary = req.Itinerary
	}
	if req.Status != nil {
		trip.Status = *req.Status
	}
	if req.Latitude != nil {
		trip.Latitude = req.Latitude
	}
	if req.Longitude != nil {
		trip.Longitude = req.Longitude
	}
	return nil
}

// Delete removes a trip. Only the creator may delete; participations,
// favorites, messages and images fall away through cascades.
func (s *TripService) Delete(ctx context.Context, actorID, tripID int64) error {
	trip, err := s.tripRepo.GetByID(ctx, tripID)
	if err != nil {
		return err
	}
	if trip.CreatorID != actorID {
		return apperrors.NewForbiddenError("only the trip creator can delete the trip")
	}

	deleted, err := s.tripRepo.Delete(ctx, tripID)
	if err != nil {
		return err
	}
	if !deleted {
		return apperrors.ErrTripNotFound
	}
	return nil
}
