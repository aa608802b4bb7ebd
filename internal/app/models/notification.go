package models

import "time"

// Notification types used by the participation workflow
const (
	NotificationTypeJoinRequest = "join_request"
	NotificationTypeAccepted    = "participation_accepted"
	NotificationTypeRejected    = "participation_rejected"
	NotificationTypeCancelled   = "participation_cancelled"
	NotificationTypeMessage     = "message"
	NotificationTypeGeneric     = "generic"
)

// Notification is a stored in-app notification for a user
type Notification struct {
	ID         int64     `json:"id" db:"id"`
	Title      string    `json:"title" db:"title"`
	Message    string    `json:"message" db:"message"`
	Type       string    `json:"type" db:"type"`
	IsRead     bool      `json:"is_read" db:"is_read"`
	SenderID   *int64    `json:"sender_id,omitempty" db:"sender_id"`
	ReceiverID int64     `json:"receiver_id" db:"receiver_id"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}
