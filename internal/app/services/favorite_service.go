package services

import (
	"context"

	"github.com/traveltogether/api/internal/app/models"
	"github.com/traveltogether/api/internal/app/repositories"
)

// FavoriteService manages trip bookmarks
type FavoriteService struct {
	favoriteRepo repositories.FavoriteRepository
	tripRepo     repositories.TripRepository
}

// NewFavoriteService creates a new FavoriteService
func NewFavoriteService(favoriteRepo repositories.FavoriteRepository, tripRepo repositories.TripRepository) *FavoriteService {
	return &FavoriteService{favoriteRepo: favoriteRepo, tripRepo: tripRepo}
}

// Add bookmarks a trip for the acting user
func (s *FavoriteService) Add(ctx context.Context, userID, tripID int64) (*models.Favorite, error) {
	if _, err := s.tripRepo.GetByID(ctx, tripID); err != nil {
		return nil, err
	}
	return s.favoriteRepo.Create(ctx, userID, tripID)
}

// List retrieves the acting user's bookmarked trips
func (s *FavoriteService) List(ctx context.Context, userID int64) ([]models.Favorite, error) {
	return s.favoriteRepo.ListByUser(ctx, userID)
}

// Remove deletes a bookmark of the acting user
func (s *FavoriteService) Remove(ctx context.Context, userID, tripID int64) error {
	return s.favoriteRepo.Delete(ctx, userID, tripID)
}

// IsFavorite reports whether the acting user bookmarked the trip
func (s *FavoriteService) IsFavorite(ctx context.Context, userID, tripID int64) (bool, error) {
	return s.favoriteRepo.Exists(ctx, userID, tripID)
}
