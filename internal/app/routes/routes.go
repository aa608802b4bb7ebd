package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/traveltogether/api/internal/app/controllers"
	"github.com/traveltogether/api/internal/app/models/dto"
	"github.com/traveltogether/api/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	ctrls *controllers.Controllers,
	authMiddleware *middleware.AuthMiddleware,
) {
	v1 := router.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	{
		auth.POST("/register", ctrls.AuthController.Register)
		auth.POST("/login", ctrls.AuthController.Login)
	}

	// Everything else requires a valid token
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())

	users := authenticated.Group("/users")
	{
		users.GET("/me", ctrls.UserController.GetMe)
		users.PUT("/password", ctrls.UserController.ChangePassword)
		users.GET("/:id", ctrls.UserController.GetProfile)
		users.PUT("/:id", ctrls.UserController.Update)
		users.DELETE("/:id", ctrls.UserController.Delete)
	}

	trips := authenticated.Group("/trips")
	{
		trips.POST("", ctrls.TripController.Create)
		trips.GET("", ctrls.TripController.Search)
		trips.GET("/user/:userId", ctrls.TripController.ListByCreator)
		trips.GET("/:id", ctrls.TripController.GetByID)
		trips.PUT("/:id", ctrls.TripController.Update)
		trips.DELETE("/:id", ctrls.TripController.Delete)
	}

	participations := authenticated.Group("/participations")
	{
		participations.POST("", ctrls.ParticipationController.Create)
		participations.GET("/user", ctrls.ParticipationController.ListMine)
		participations.GET("/requests", ctrls.ParticipationController.ListRequests)
		participations.GET("/trip/:tripId", ctrls.ParticipationController.ListByTrip)
		participations.PUT("/status/:participationId", ctrls.ParticipationController.UpdateStatus)
		participations.DELETE("/:participationId", ctrls.ParticipationController.Delete)
	}

	messages := authenticated.Group("/messages")
	{
		messages.POST("", ctrls.MessageController.Send)
		messages.GET("", ctrls.MessageController.List)
		messages.GET("/conversation/:userId", ctrls.MessageController.Conversation)
		messages.GET("/:id", ctrls.MessageController.GetByID)
		messages.PUT("/:id", ctrls.MessageController.Update)
		messages.DELETE("/:id", ctrls.MessageController.Delete)
	}

	ratings := authenticated.Group("/ratings")
	{
		ratings.POST("", ctrls.RatingController.Create)
		ratings.GET("", ctrls.RatingController.List)
		ratings.PUT("/:id", ctrls.RatingController.Update)
		ratings.DELETE("/:id", ctrls.RatingController.Delete)
	}

	notifications := authenticated.Group("/notifications")
	{
		notifications.POST("", ctrls.NotificationController.Create)
		notifications.GET("", ctrls.NotificationController.List)
		notifications.GET("/unread-count", ctrls.NotificationController.UnreadCount)
		notifications.PUT("/read-all", ctrls.NotificationController.MarkAllRead)
		notifications.PUT("/:id/read", ctrls.NotificationController.MarkRead)
		notifications.DELETE("/:id", ctrls.NotificationController.Delete)
	}

	images := authenticated.Group("/images")
	{
		images.POST("", ctrls.ImageController.Upload)
		images.GET("/trip/:tripId", ctrls.ImageController.ListByTrip)
		images.GET("/user/:userId", ctrls.ImageController.ListByUser)
		images.GET("/:id", ctrls.ImageController.GetByID)
		images.PUT("/:id/main", ctrls.ImageController.SetMain)
		images.DELETE("/:id", ctrls.ImageController.Delete)
	}

	favorites := authenticated.Group("/favorites")
	{
		favorites.POST("", ctrls.FavoriteController.Add)
		favorites.GET("", ctrls.FavoriteController.List)
		favorites.GET("/:tripId", ctrls.FavoriteController.Check)
		favorites.DELETE("/:tripId", ctrls.FavoriteController.Remove)
	}

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.APIResponse{
			Data: gin.H{"status": "ok"},
		})
	})
}
