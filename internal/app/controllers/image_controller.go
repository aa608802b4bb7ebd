package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/traveltogether/api/internal/app/models/dto"
	"github.com/traveltogether/api/internal/app/services"
	"github.com/traveltogether/api/internal/middleware"
)

// ImageController handles image upload and metadata endpoints
type ImageController struct {
	imageService *services.ImageService
}

// NewImageController creates a new ImageController
func NewImageController(imageService *services.ImageService) *ImageController {
	return &ImageController{imageService: imageService}
}

// Upload handles a multipart image upload
// @Summary Upload an image
// @Description Stores an image for a trip or a user profile
// @Tags images
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Image file"
// @Param trip_id formData int false "Attach to this trip"
// @Param user_id formData int false "Attach to this profile"
// @Param description formData string false "Image description"
// @Param main_img formData bool false "Set as the trip's main image"
// @Success 201 {object} dto.APIResponse{data=models.Image} "Image uploaded"
// @Failure 400 {object} dto.ErrorResponse "Missing file or unsupported type"
// @Failure 403 {object} dto.ErrorResponse "Not the owner"
// @Router /images [post]
func (c *ImageController) Upload(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var form dto.UploadImageForm
	if err := ctx.ShouldBind(&form); err != nil {
		ctx.JSON(http.StatusBadRequest,
			dto.NewErrorResponse(dto.ErrorCodeValidationFailed, err.Error()))
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		ctx.JSON(http.StatusBadRequest,
			dto.NewErrorResponse(dto.ErrorCodeValidationFailed, "file is required"))
		return
	}

	image, err := c.imageService.Upload(ctx, userID, fileHeader, &form)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse("image uploaded", image))
}

// GetByID handles retrieving one image's metadata
// @Summary Get an image
// @Tags images
// @Produce json
// @Security BearerAuth
// @Param id path int true "Image ID"
// @Success 200 {object} dto.APIResponse{data=models.Image} "Image retrieved"
// @Failure 404 {object} dto.ErrorResponse "Image not found"
// @Router /images/{id} [get]
func (c *ImageController) GetByID(ctx *gin.Context) {
	imageID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	image, err := c.imageService.GetByID(ctx, imageID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("image retrieved", image))
}

// ListByTrip handles listing a trip's images
// @Summary List trip images
// @Tags images
// @Produce json
// @Security BearerAuth
// @Param tripId path int true "Trip ID"
// @Success 200 {object} dto.ListResponse "Images retrieved"
// @Router /images/trip/{tripId} [get]
func (c *ImageController) ListByTrip(ctx *gin.Context) {
	tripID, ok := pathID(ctx, "tripId")
	if !ok {
		return
	}

	images, err := c.imageService.ListByTrip(ctx, tripID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewListResponse("images retrieved", images))
}

// ListByUser handles listing a user's profile images
// @Summary List user images
// @Tags images
// @Produce json
// @Security BearerAuth
// @Param userId path int true "User ID"
// @Success 200 {object} dto.ListResponse "Images retrieved"
// @Router /images/user/{userId} [get]
func (c *ImageController) ListByUser(ctx *gin.Context) {
	userID, ok := pathID(ctx, "userId")
	if !ok {
		return
	}

	images, err := c.imageService.ListByUser(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewListResponse("images retrieved", images))
}

// SetMain handles promoting a trip image to main
// @Summary Set a trip's main image
// @Tags images
// @Produce json
// @Security BearerAuth
// @Param id path int true "Image ID"
// @Success 200 {object} dto.APIResponse "Main image updated"
// @Failure 403 {object} dto.ErrorResponse "Not the trip creator"
// @Router /images/{id}/main [put]
func (c *ImageController) SetMain(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	imageID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.imageService.SetMain(ctx, userID, imageID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("main image updated", nil))
}

// Delete handles deleting an image
// @Summary Delete an image
// @Tags images
// @Produce json
// @Security BearerAuth
// @Param id path int true "Image ID"
// @Success 200 {object} dto.APIResponse "Image deleted"
// @Failure 403 {object} dto.ErrorResponse "Not the owner"
// @Router /images/{id} [delete]
func (c *ImageController) Delete(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	imageID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.imageService.Delete(ctx, userID, imageID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("image deleted", nil))
}
