package dto

// UploadImageForm is the multipart form accompanying an image upload
type UploadImageForm struct {
	Description *string `form:"description"`
	TripID      *int64  `form:"trip_id"`
	UserID      *int64  `form:"user_id"`
	MainImg     bool    `form:"main_img"`
}
