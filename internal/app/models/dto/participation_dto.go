package dto

// CreateParticipationRequest is the payload for a join request
type CreateParticipationRequest struct {
	TripID int64 `json:"tripId" binding:"required"`
}

// UpdateParticipationStatusRequest is the payload for accept/reject/cancel
type UpdateParticipationStatusRequest struct {
	NewStatus string `json:"newStatus" binding:"required"`
}

// DeleteParticipationResponse echoes the identifiers of the removed row
type DeleteParticipationResponse struct {
	UserID          int64 `json:"userId"`
	TripID          int64 `json:"tripId"`
	ParticipationID int64 `json:"participationId"`
}
