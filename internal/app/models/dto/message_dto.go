package dto

// CreateMessageRequest is the payload for sending a message
type CreateMessageRequest struct {
	Message    string `json:"message" binding:"required"`
	ReceiverID int64  `json:"receiver_id" binding:"required"`
	TripID     *int64 `json:"trip_id"`
}

// UpdateMessageRequest is the payload for editing a sent message
type UpdateMessageRequest struct {
	Message string `json:"message" binding:"required"`
}

// MessageFilter carries the supported message listing filters
type MessageFilter struct {
	SenderID   *int64
	ReceiverID *int64
	TripID     *int64
	Page       int
	PerPage    int
}
