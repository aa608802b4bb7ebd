package dto

// CreateRatingRequest is the payload for rating a user after a trip
type CreateRatingRequest struct {
	TripID      int64   `json:"trip_id" binding:"required"`
	RatedUserID int64   `json:"rated_user_id" binding:"required"`
	Score       int     `json:"score" binding:"required,min=1,max=5"`
	Comment     *string `json:"comment"`
}

// UpdateRatingRequest is the payload for editing a rating
type UpdateRatingRequest struct {
	Score   int     `json:"score" binding:"required,min=1,max=5"`
	Comment *string `json:"comment"`
}

// RatingFilter carries the supported rating listing filters
type RatingFilter struct {
	TripID      *int64
	RatedUserID *int64
	AuthorID    *int64
	Page        int
	PerPage     int
}
