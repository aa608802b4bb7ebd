package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/traveltogether/api/internal/app/models/dto"
	"github.com/traveltogether/api/internal/app/services"
	"github.com/traveltogether/api/internal/middleware"
	"github.com/traveltogether/api/internal/pkg/helpers"
)

// RatingController handles rating endpoints
type RatingController struct {
	ratingService *services.RatingService
}

// NewRatingController creates a new RatingController
func NewRatingController(ratingService *services.RatingService) *RatingController {
	return &RatingController{ratingService: ratingService}
}

// Create handles creating a rating
// @Summary Rate a fellow traveler
// @Description Stores a rating. Both users must be on the trip, and each pair can be rated once per trip.
// @Tags ratings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateRatingRequest true "Rating payload"
// @Success 201 {object} dto.APIResponse{data=models.Rating} "Rating created"
// @Failure 400 {object} dto.ErrorResponse "Users not on the trip or self-rating"
// @Failure 409 {object} dto.ErrorResponse "Already rated"
// @Router /ratings [post]
func (c *RatingController) Create(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req dto.CreateRatingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest,
			dto.NewErrorResponse(dto.ErrorCodeValidationFailed, err.Error()))
		return
	}

	rating, err := c.ratingService.Create(ctx, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse("rating created", rating))
}

// List handles listing ratings with filters
// @Summary List ratings
// @Tags ratings
// @Produce json
// @Security BearerAuth
// @Param trip_id query int false "Filter by trip"
// @Param rated_user_id query int false "Filter by rated user"
// @Param author_id query int false "Filter by author"
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Page size" default(10)
// @Success 200 {object} dto.ListResponse "Ratings retrieved"
// @Router /ratings [get]
func (c *RatingController) List(ctx *gin.Context) {
	page, perPage := helpers.ParsePaginationParams(ctx)
	filter := &dto.RatingFilter{Page: page, PerPage: perPage}

	for name, target := range map[string]**int64{
		"trip_id":       &filter.TripID,
		"rated_user_id": &filter.RatedUserID,
		"author_id":     &filter.AuthorID,
	} {
		if raw := ctx.Query(name); raw != "" {
			if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
				*target = &id
			}
		}
	}

	ratings, total, err := c.ratingService.List(ctx, filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewListResponse("ratings retrieved", dto.PaginatedResponse{
		PaginationInfo: helpers.NewPaginationInfo(total, page, perPage),
		Results:        ratings,
	}))
}

// Update handles editing a rating
// @Summary Edit a rating
// @Tags ratings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Rating ID"
// @Param request body dto.UpdateRatingRequest true "New score and comment"
// @Success 200 {object} dto.APIResponse{data=models.Rating} "Rating updated"
// @Failure 403 {object} dto.ErrorResponse "Not the author"
// @Router /ratings/{id} [put]
func (c *RatingController) Update(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	ratingID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateRatingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest,
			dto.NewErrorResponse(dto.ErrorCodeValidationFailed, err.Error()))
		return
	}

	rating, err := c.ratingService.Update(ctx, userID, ratingID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("rating updated", rating))
}

// Delete handles deleting a rating
// @Summary Delete a rating
// @Tags ratings
// @Produce json
// @Security BearerAuth
// @Param id path int true "Rating ID"
// @Success 200 {object} dto.APIResponse "Rating deleted"
// @Failure 403 {object} dto.ErrorResponse "Not the author"
// @Router /ratings/{id} [delete]
func (c *RatingController) Delete(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	ratingID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.ratingService.Delete(ctx, userID, ratingID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("rating deleted", nil))
}
