package services

import (
	"github.com/traveltogether/api/internal/app/repositories"
	"github.com/traveltogether/api/internal/pkg/auth"
	"github.com/traveltogether/api/internal/pkg/filestorage"
)

// Services holds all the service instances
type Services struct {
	AuthService          *AuthService
	UserService          *UserService
	TripService          *TripService
	ParticipationService *ParticipationService
	MessageService       *MessageService
	RatingService        *RatingService
	NotificationService  *NotificationService
	ImageService         *ImageService
	FavoriteService      *FavoriteService
}

// NewServices initializes all services
func NewServices(repos *repositories.Repositories, jwtService *auth.JWTService, storage *filestorage.Storage) *Services {
	notificationService := NewNotificationService(repos.NotificationRepository)

	return &Services{
		AuthService:          NewAuthService(repos.UserRepository, jwtService),
		UserService:          NewUserService(repos.UserRepository),
		TripService:          NewTripService(repos.TripRepository, repos.ParticipationRepository),
		ParticipationService: NewParticipationService(repos.ParticipationRepository, repos.TripRepository, notificationService),
		MessageService:       NewMessageService(repos.MessageRepository, repos.UserRepository, notificationService),
		RatingService:        NewRatingService(repos.RatingRepository, repos.ParticipationRepository, repos.TripRepository),
		NotificationService:  notificationService,
		ImageService:         NewImageService(repos.ImageRepository, repos.TripRepository, repos.UserRepository, storage),
		FavoriteService:      NewFavoriteService(repos.FavoriteRepository, repos.TripRepository),
	}
}
