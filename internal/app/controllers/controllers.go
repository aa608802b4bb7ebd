package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/traveltogether/api/internal/app/models/dto"
	"github.com/traveltogether/api/internal/app/services"
	"github.com/traveltogether/api/internal/middleware"
)

// Controllers holds all the controller instances
type Controllers struct {
	AuthController          *AuthController
	UserController          *UserController
	TripController          *TripController
	ParticipationController *ParticipationController
	MessageController       *MessageController
	RatingController        *RatingController
	NotificationController  *NotificationController
	ImageController         *ImageController
	FavoriteController      *FavoriteController
}

// NewControllers initializes all controllers
func NewControllers(svcs *services.Services) *Controllers {
	return &Controllers{
		AuthController:          NewAuthController(svcs.AuthService),
		UserController:          NewUserController(svcs.UserService),
		TripController:          NewTripController(svcs.TripService),
		ParticipationController: NewParticipationController(svcs.ParticipationService),
		MessageController:       NewMessageController(svcs.MessageService),
		RatingController:        NewRatingController(svcs.RatingService),
		NotificationController:  NewNotificationController(svcs.NotificationService),
		ImageController:         NewImageController(svcs.ImageService),
		FavoriteController:      NewFavoriteController(svcs.FavoriteService),
	}
}

// currentUserID reads the authenticated user from the request context. The
// auth middleware guarantees it is present on protected routes.
func currentUserID(c *gin.Context) (int64, bool) {
	id, ok := middleware.CurrentUserID(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized,
			dto.NewErrorResponse(dto.ErrorCodeUnauthorized, "Authentication required"))
	}
	return id, ok
}

// pathID parses a numeric path parameter, responding with 400 on garbage
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest,
			dto.NewErrorResponse(dto.ErrorCodeValidationFailed, "invalid "+name+" parameter"))
		return 0, false
	}
	return id, true
}
