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

// MessageController handles direct message endpoints
type MessageController struct {
	messageService *services.MessageService
}

// NewMessageController creates a new MessageController
func NewMessageController(messageService *services.MessageService) *MessageController {
	return &MessageController{messageService: messageService}
}

// Send handles sending a message
// @Summary Send a message
// @Tags messages
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateMessageRequest true "Message payload"
// @Success 201 {object} dto.APIResponse{data=models.Message} "Message sent"
// @Failure 400 {object} dto.ErrorResponse "Invalid payload"
// @Router /messages [post]
func (c *MessageController) Send(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req dto.CreateMessageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest,
			dto.NewErrorResponse(dto.ErrorCodeValidationFailed, err.Error()))
		return
	}

	message, err := c.messageService.Send(ctx, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse("message sent", message))
}

// List handles listing the authenticated user's messages
// @Summary List own messages
// @Tags messages
// @Produce json
// @Security BearerAuth
// @Param trip_id query int false "Filter by trip"
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Page size" default(10)
// @Success 200 {object} dto.ListResponse "Messages retrieved"
// @Router /messages [get]
func (c *MessageController) List(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	page, perPage := helpers.ParsePaginationParams(ctx)
	filter := &dto.MessageFilter{Page: page, PerPage: perPage}
	if tripStr := ctx.Query("trip_id"); tripStr != "" {
		if tripID, err := strconv.ParseInt(tripStr, 10, 64); err == nil {
			filter.TripID = &tripID
		}
	}

	messages, total, err := c.messageService.List(ctx, userID, filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewListResponse("messages retrieved", dto.PaginatedResponse{
		PaginationInfo: helpers.NewPaginationInfo(total, page, perPage),
		Results:        messages,
	}))
}

// Conversation handles listing the thread with another user
// @Summary Get a conversation
// @Tags messages
// @Produce json
// @Security BearerAuth
// @Param userId path int true "Other user ID"
// @Success 200 {object} dto.ListResponse "Conversation retrieved"
// @Router /messages/conversation/{userId} [get]
func (c *MessageController) Conversation(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	otherID, ok := pathID(ctx, "userId")
	if !ok {
		return
	}

	messages, err := c.messageService.Conversation(ctx, userID, otherID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewListResponse("conversation retrieved", messages))
}

// GetByID handles retrieving a single message
// @Summary Get a message
// @Tags messages
// @Produce json
// @Security BearerAuth
// @Param id path int true "Message ID"
// @Success 200 {object} dto.APIResponse{data=models.Message} "Message retrieved"
// @Failure 403 {object} dto.ErrorResponse "Not a participant of the conversation"
// @Failure 404 {object} dto.ErrorResponse "Message not found"
// @Router /messages/{id} [get]
func (c *MessageController) GetByID(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	messageID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	message, err := c.messageService.GetByID(ctx, userID, messageID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("message retrieved", message))
}

// Update handles editing a message
// @Summary Edit a message
// @Tags messages
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Message ID"
// @Param request body dto.UpdateMessageRequest true "New text"
// @Success 200 {object} dto.APIResponse{data=models.Message} "Message updated"
// @Failure 403 {object} dto.ErrorResponse "Not the sender"
// @Router /messages/{id} [put]
func (c *MessageController) Update(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	messageID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateMessageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest,
			dto.NewErrorResponse(dto.ErrorCodeValidationFailed, err.Error()))
		return
	}

	message, err := c.messageService.Update(ctx, userID, messageID, req.Message)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("message updated", message))
}

// Delete handles deleting a message
// @Summary Delete a message
// @Tags messages
// @Produce json
// @Security BearerAuth
// @Param id path int true "Message ID"
// @Success 200 {object} dto.APIResponse "Message deleted"
// @Failure 403 {object} dto.ErrorResponse "Not the sender"
// @Router /messages/{id} [delete]
func (c *MessageController) Delete(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	messageID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.messageService.Delete(ctx, userID, messageID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("message deleted", nil))
}
