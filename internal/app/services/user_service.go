package services

import (
	"context"

	"github.com/traveltogether/api/internal/app/models"
	"github.com/traveltogether/api/internal/app/models/dto"
	"github.com/traveltogether/api/internal/app/repositories"
	"github.com/traveltogether/api/internal/pkg/apperrors"
	"github.com/traveltogether/api/internal/pkg/auth"
)

// UserProfile is a user together with their average received rating
type UserProfile struct {
	models.User
	AvgRating *float64 `json:"avg_rating,omitempty"`
}

// UserService manages user profiles
type UserService struct {
	userRepo repositories.UserRepository
}

// NewUserService creates a new UserService
func NewUserService(userRepo repositories.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// GetProfile retrieves a user's public profile with their average rating
func (s *UserService) GetProfile(ctx context.Context, id int64) (*UserProfile, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	avg, err := s.userRepo.GetAverageRating(ctx, id)
	if err != nil {
		return nil, err
	}

	user.Password = ""
	return &UserProfile{User: *user, AvgRating: avg}, nil
}

// Update applies a partial profile update on behalf of the user themselves
func (s *UserService) Update(ctx context.Context, actorID, userID int64, req *dto.UpdateUserRequest) (*models.User, error) {
	if actorID != userID {
		return nil, apperrors.NewForbiddenError("you can only update your own profile")
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Username != nil {
		user.Username = *req.Username
	}
	if req.Phone != nil {
		user.Phone = req.Phone
	}
	if req.Bio != nil {
		user.Bio = req.Bio
	}
	if req.Interests != nil {
		user.Interests = req.Interests
	}

	updated, err := s.userRepo.Update(ctx, user)
	if err != nil {
		return nil, err
	}

	updated.Password = ""
	return updated, nil
}

// ChangePassword verifies the current password before storing a new hash
func (s *UserService) ChangePassword(ctx context.Context, userID int64, currentPassword, newPassword string) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if !auth.CheckPassword(user.Password, currentPassword) {
		return apperrors.ErrInvalidCredentials
	}

	hashed, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}

	return s.userRepo.UpdatePassword(ctx, userID, hashed)
}

// Delete removes the acting user's own account
func (s *UserService) Delete(ctx context.Context, actorID, userID int64) error {
	if actorID != userID {
		return apperrors.NewForbiddenError("you can only delete your own account")
	}
	return s.userRepo.Delete(ctx, userID)
}
