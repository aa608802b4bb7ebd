package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/traveltogether/api/internal/app/models"
	"github.com/traveltogether/api/internal/app/models/dto"
	"github.com/traveltogether/api/internal/app/services"
	"github.com/traveltogether/api/internal/middleware"
)

// ParticipationController handles the join-request lifecycle endpoints
type ParticipationController struct {
	participationService *services.ParticipationService
}

// NewParticipationController creates a new ParticipationController
func NewParticipationController(participationService *services.ParticipationService) *ParticipationController {
	return &ParticipationController{participationService: participationService}
}

// Create handles a new join request
// @Summary Request to join a trip
// @Description Files a pending join request for the authenticated user
// @Tags participations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateParticipationRequest true "Join request payload"
// @Success 201 {object} dto.APIResponse{data=models.Participation} "Join request filed"
// @Failure 400 {object} dto.ErrorResponse "Own trip or invalid payload"
// @Failure 404 {object} dto.ErrorResponse "Trip not found"
// @Failure 409 {object} dto.ErrorResponse "Trip full or request already active"
// @Router /participations [post]
func (c *ParticipationController) Create(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req dto.CreateParticipationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest,
			dto.NewErrorResponse(dto.ErrorCodeValidationFailed, err.Error()))
		return
	}

	participation, err := c.participationService.RequestJoin(ctx, userID, req.TripID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse("join request filed", participation))
}

// UpdateStatus handles accept/reject/cancel transitions
// @Summary Update a participation status
// @Description Accept or reject as the trip creator, cancel as the requester. Re-submitting the current status is a no-op.
// @Tags participations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param participationId path int true "Participation ID"
// @Param request body dto.UpdateParticipationStatusRequest true "New status"
// @Success 200 {object} dto.APIResponse{data=models.Participation} "Status updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid status value"
// @Failure 403 {object} dto.ErrorResponse "Not allowed for this actor"
// @Failure 404 {object} dto.ErrorResponse "Participation not found"
// @Failure 409 {object} dto.ErrorResponse "Terminal status, trip full or date conflict"
// @Router /participations/status/{participationId} [put]
func (c *ParticipationController) UpdateStatus(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	participationID, ok := pathID(ctx, "participationId")
	if !ok {
		return
	}

	var req dto.UpdateParticipationStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest,
			dto.NewErrorResponse(dto.ErrorCodeValidationFailed, err.Error()))
		return
	}

	participation, err := c.participationService.UpdateStatus(ctx, userID, participationID,
		models.ParticipationStatus(req.NewStatus))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("participation updated", participation))
}

// ListByTrip lists the participations of a trip
// @Summary List trip participations
// @Description Lists participations of a trip. The creator sees all rows, others see accepted rows and their own.
// @Tags participations
// @Produce json
// @Security BearerAuth
// @Param tripId path int true "Trip ID"
// @Success 200 {object} dto.ListResponse "Participations retrieved"
// @Failure 404 {object} dto.ErrorResponse "Trip not found"
// @Router /participations/trip/{tripId} [get]
func (c *ParticipationController) ListByTrip(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	tripID, ok := pathID(ctx, "tripId")
	if !ok {
		return
	}

	participants, err := c.participationService.ListByTrip(ctx, userID, tripID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewListResponse("participations retrieved", participants))
}

// ListMine lists the authenticated user's participations
// @Summary List own participations
// @Tags participations
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ListResponse "Participations retrieved"
// @Router /participations/user [get]
func (c *ParticipationController) ListMine(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	participations, err := c.participationService.ListMine(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewListResponse("participations retrieved", participations))
}

// ListRequests lists pending join requests on the user's own trips
// @Summary List incoming join requests
// @Tags participations
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ListResponse "Pending requests retrieved"
// @Router /participations/requests [get]
func (c *ParticipationController) ListRequests(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	requests, err := c.participationService.ListPendingRequests(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewListResponse("pending requests retrieved", requests))
}

// Delete removes a participation row
// @Summary Delete a participation
// @Description Removes the row entirely. Only the requester may delete their own participation.
// @Tags participations
// @Produce json
// @Security BearerAuth
// @Param participationId path int true "Participation ID"
// @Success 200 {object} dto.APIResponse{data=dto.DeleteParticipationResponse} "Participation deleted"
// @Failure 403 {object} dto.ErrorResponse "Not the requester"
// @Failure 404 {object} dto.ErrorResponse "Participation not found"
// @Router /participations/{participationId} [delete]
func (c *ParticipationController) Delete(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	participationID, ok := pathID(ctx, "participationId")
	if !ok {
		return
	}

	deleted, err := c.participationService.Delete(ctx, userID, participationID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("participation deleted", dto.DeleteParticipationResponse{
		UserID:          deleted.UserID,
		TripID:          deleted.TripID,
		ParticipationID: deleted.ID,
	}))
}
