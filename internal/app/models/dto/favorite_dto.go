package dto

// CreateFavoriteRequest is the payload for bookmarking a trip
type CreateFavoriteRequest struct {
	TripID int64 `json:"trip_id" binding:"required"`
}
