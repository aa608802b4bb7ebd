package services

import (
	"context"
	"mime/multipart"

	"github.com/traveltogether/api/internal/app/models"
	"github.com/traveltogether/api/internal/app/models/dto"
	"github.com/traveltogether/api/internal/app/repositories"
	"github.com/traveltogether/api/internal/pkg/apperrors"
	"github.com/traveltogether/api/internal/pkg/filestorage"
)

// ImageService manages uploaded images and their metadata
type ImageService struct {
	imageRepo repositories.ImageRepository
	tripRepo  repositories.TripRepository
	userRepo  repositories.UserRepository
	storage   *filestorage.Storage
}

// NewImageService creates a new ImageService
func NewImageService(imageRepo repositories.ImageRepository, tripRepo repositories.TripRepository, userRepo repositories.UserRepository, storage *filestorage.Storage) *ImageService {
	return &ImageService{imageRepo: imageRepo, tripRepo: tripRepo, userRepo: userRepo, storage: storage}
}

// Upload stores the file and its metadata. A trip image may only be
// uploaded by the trip creator; a profile image only by the profile owner.
func (s *ImageService) Upload(ctx context.Context, actorID int64, fileHeader *multipart.FileHeader, form *dto.UploadImageForm) (*models.Image, error) {
	if form.TripID == nil && form.UserID == nil {
		return nil, apperrors.NewBadRequestError("image must reference a trip or a user")
	}

	if form.TripID != nil {
		isCreator, err := s.tripRepo.IsCreator(ctx, *form.TripID, actorID)
		if err != nil {
			return nil, err
		}
		if !isCreator {
			return nil, apperrors.NewForbiddenError("only the trip creator can upload trip images")
		}
	}
	if form.UserID != nil && *form.UserID != actorID {
		return nil, apperrors.NewForbiddenError("you can only upload images to your own profile")
	}

	url, err := s.storage.Save(fileHeader)
	if err != nil {
		return nil, err
	}

	image, err := s.imageRepo.Create(ctx, &models.Image{
		Description: form.Description,
		URL:         url,
		TripID:      form.TripID,
		UserID:      form.UserID,
		MainImg:     form.MainImg,
	})
	if err != nil {
		s.storage.Delete(url)
		return nil, err
	}

	if form.UserID != nil {
		if err := s.userRepo.SetImage(ctx, *form.UserID, &url); err != nil {
			return nil, err
		}
	}

	return image, nil
}

// GetByID retrieves one image's metadata
func (s *ImageService) GetByID(ctx context.Context, imageID int64) (*models.Image, error) {
	return s.imageRepo.GetByID(ctx, imageID)
}

// ListByTrip retrieves a trip's images
func (s *ImageService) ListByTrip(ctx context.Context, tripID int64) ([]models.Image, error) {
	return s.imageRepo.ListByTrip(ctx, tripID)
}

// ListByUser retrieves a user's profile images
func (s *ImageService) ListByUser(ctx context.Context, userID int64) ([]models.Image, error) {
	return s.imageRepo.ListByUser(ctx, userID)
}

// SetMain promotes a trip image to main. Only the trip creator may do this.
func (s *ImageService) SetMain(ctx context.Context, actorID, imageID int64) error {
	image, err := s.imageRepo.GetByID(ctx, imageID)
	if err != nil {
		return err
	}
	if image.TripID == nil {
		return apperrors.NewBadRequestError("image is not attached to a trip")
	}

	isCreator, err := s.tripRepo.IsCreator(ctx, *image.TripID, actorID)
	if err != nil {
		return err
	}
	if !isCreator {
		return apperrors.NewForbiddenError("only the trip creator can change the main image")
	}

	return s.imageRepo.SetMain(ctx, imageID, *image.TripID)
}

// Delete removes an image and its stored file. Trip images may be deleted
// by the trip creator, profile images by their owner.
func (s *ImageService) Delete(ctx context.Context, actorID, imageID int64) error {
	image, err := s.imageRepo.GetByID(ctx, imageID)
	if err != nil {
		return err
	}

	switch {
	case image.TripID != nil:
		isCreator, err := s.tripRepo.IsCreator(ctx, *image.TripID, actorID)
		if err != nil {
			return err
		}
		if !isCreator {
			return apperrors.NewForbiddenError("only the trip creator can delete trip images")
		}
	case image.UserID != nil:
		if *image.UserID != actorID {
			return apperrors.NewForbiddenError("you can only delete your own images")
		}
	}

	deleted, err := s.imageRepo.Delete(ctx, imageID)
	if err != nil {
		return err
	}

	s.storage.Delete(deleted.URL)

	if deleted.UserID != nil {
		if err := s.userRepo.SetImage(ctx, *deleted.UserID, nil); err != nil {
			return err
		}
	}

	return nil
}
