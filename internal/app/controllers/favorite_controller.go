package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/traveltogether/api/internal/app/models/dto"
	"github.com/traveltogether/api/internal/app/services"
	"github.com/traveltogether/api/internal/middleware"
)

// FavoriteController handles trip bookmark endpoints
type FavoriteController struct {
	favoriteService *services.FavoriteService
}

// NewFavoriteController creates a new FavoriteController
func NewFavoriteController(favoriteService *services.FavoriteService) *FavoriteController {
	return &FavoriteController{favoriteService: favoriteService}
}

// Add handles bookmarking a trip
// @Summary Bookmark a trip
// @Tags favorites
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateFavoriteRequest true "Trip to bookmark"
// @Success 201 {object} dto.APIResponse{data=models.Favorite} "Trip bookmarked"
// @Failure 404 {object} dto.ErrorResponse "Trip not found"
// @Failure 409 {object} dto.ErrorResponse "Already bookmarked"
// @Router /favorites [post]
func (c *FavoriteController) Add(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req dto.CreateFavoriteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest,
			dto.NewErrorResponse(dto.ErrorCodeValidationFailed, err.Error()))
		return
	}

	favorite, err := c.favoriteService.Add(ctx, userID, req.TripID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse("trip bookmarked", favorite))
}

// List handles listing the authenticated user's bookmarks
// @Summary List own bookmarks
// @Tags favorites
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ListResponse "Favorites retrieved"
// @Router /favorites [get]
func (c *FavoriteController) List(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	favorites, err := c.favoriteService.List(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewListResponse("favorites retrieved", favorites))
}

// Check handles the "is this trip bookmarked" probe
// @Summary Check a bookmark
// @Tags favorites
// @Produce json
// @Security BearerAuth
// @Param tripId path int true "Trip ID"
// @Success 200 {object} dto.APIResponse "Bookmark state retrieved"
// @Router /favorites/{tripId} [get]
func (c *FavoriteController) Check(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	tripID, ok := pathID(ctx, "tripId")
	if !ok {
		return
	}

	isFavorite, err := c.favoriteService.IsFavorite(ctx, userID, tripID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("bookmark state retrieved", gin.H{"is_favorite": isFavorite}))
}

// Remove handles removing a bookmark
// @Summary Remove a bookmark
// @Tags favorites
// @Produce json
// @Security BearerAuth
// @Param tripId path int true "Trip ID"
// @Success 200 {object} dto.APIResponse "Bookmark removed"
// @Failure 404 {object} dto.ErrorResponse "Bookmark not found"
// @Router /favorites/{tripId} [delete]
func (c *FavoriteController) Remove(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	tripID, ok := pathID(ctx, "tripId")
	if !ok {
		return
	}

	if err := c.favoriteService.Remove(ctx, userID, tripID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("bookmark removed", nil))
}
