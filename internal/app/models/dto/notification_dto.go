package dto

// CreateNotificationRequest is the payload for creating a notification
type CreateNotificationRequest struct {
	Title      string `json:"title" binding:"required"`
	Message    string `json:"message" binding:"required"`
	Type       string `json:"type"`
	ReceiverID int64  `json:"receiver_id" binding:"required"`
}

// NotificationFilter carries the supported notification listing filters
type NotificationFilter struct {
	OnlyUnread bool
	Page       int
	PerPage    int
}
