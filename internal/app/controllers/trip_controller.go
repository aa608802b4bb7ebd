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

// TripController handles trip endpoints
type TripController struct {
	tripService *services.TripService
}

// NewTripController creates a new TripController
func NewTripController(tripService *services.TripService) *TripController {
	return &TripController{tripService: tripService}
}

// Create handles trip creation
// @Summary Create a trip
// @Description Creates a trip owned by the authenticated user. The creator is materialized as an accepted participant.
// @Tags trips
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateTripRequest true "Trip payload"
// @Success 201 {object} dto.APIResponse{data=models.Trip} "Trip created"
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 409 {object} dto.ErrorResponse "Date overlap with an existing commitment"
// @Router /trips [post]
func (c *TripController) Create(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req dto.CreateTripRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest,
			dto.NewErrorResponse(dto.ErrorCodeValidationFailed, err.Error()))
		return
	}

	trip, err := c.tripService.Create(ctx, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse("trip created", trip))
}

// Search handles trip listing with filters
// @Summary Search trips
// @Tags trips
// @Produce json
// @Security BearerAuth
// @Param creator_id query int false "Filter by creator"
// @Param status query string false "Filter by trip status"
// @Param destination query string false "Filter by destination substring"
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Page size" default(10)
// @Success 200 {object} dto.ListResponse "Trips retrieved"
// @Router /trips [get]
func (c *TripController) Search(ctx *gin.Context) {
	page, perPage := helpers.ParsePaginationParams(ctx)
	filter := &dto.TripSearchFilter{Page: page, PerPage: perPage}

	if creatorStr := ctx.Query("creator_id"); creatorStr != "" {
		if creatorID, err := strconv.ParseInt(creatorStr, 10, 64); err == nil {
			filter.CreatorID = &creatorID
		}
	}
	if status := ctx.Query("status"); status != "" {
		filter.Status = &status
	}
	if destination := ctx.Query("destination"); destination != "" {
		filter.Destination = &destination
	}

	trips, total, err := c.tripService.Search(ctx, filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewListResponse("trips retrieved", dto.PaginatedResponse{
		PaginationInfo: helpers.NewPaginationInfo(total, page, perPage),
		Results:        trips,
	}))
}

// GetByID handles retrieving a single trip
// @Summary Get a trip
// @Description Returns the trip with its current accepted headcount
// @Tags trips
// @Produce json
// @Security BearerAuth
// @Param id path int true "Trip ID"
// @Success 200 {object} dto.APIResponse{data=dto.TripDetailResponse} "Trip retrieved"
// @Failure 404 {object} dto.ErrorResponse "Trip not found"
// @Router /trips/{id} [get]
func (c *TripController) GetByID(ctx *gin.Context) {
	tripID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	trip, err := c.tripService.GetByID(ctx, tripID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("trip retrieved", trip))
}

// ListByCreator handles listing a user's created trips with participants
// @Summary List trips created by a user
// @Tags trips
// @Produce json
// @Security BearerAuth
// @Param userId path int true "User ID"
// @Success 200 {object} dto.ListResponse "Trips retrieved"
// @Router /trips/user/{userId} [get]
func (c *TripController) ListByCreator(ctx *gin.Context) {
	creatorID, ok := pathID(ctx, "userId")
	if !ok {
		return
	}

	trips, err := c.tripService.ListByCreator(ctx, creatorID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewListResponse("trips retrieved", trips))
}

// Update handles partial trip updates
// @Summary Update a trip
// @Description Applies a partial update. Only the creator may update; date changes re-run the overlap check.
// @Tags trips
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Trip ID"
// @Param request body dto.UpdateTripRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=models.Trip} "Trip updated"
// @Failure 403 {object} dto.ErrorResponse "Not the creator"
// @Failure 404 {object} dto.ErrorResponse "Trip not found"
// @Failure 409 {object} dto.ErrorResponse "Date overlap with an existing commitment"
// @Router /trips/{id} [put]
func (c *TripController) Update(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	tripID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateTripRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest,
			dto.NewErrorResponse(dto.ErrorCodeValidationFailed, err.Error()))
		return
	}

	trip, err := c.tripService.Update(ctx, userID, tripID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("trip updated", trip))
}

// Delete handles trip deletion
// @Summary Delete a trip
// @Tags trips
// @Produce json
// @Security BearerAuth
// @Param id path int true "Trip ID"
// @Success 200 {object} dto.APIResponse "Trip deleted"
// @Failure 403 {object} dto.ErrorResponse "Not the creator"
// @Failure 404 {object} dto.ErrorResponse "Trip not found"
// @Router /trips/{id} [delete]
func (c *TripController) Delete(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	tripID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.tripService.Delete(ctx, userID, tripID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("trip deleted", nil))
}
