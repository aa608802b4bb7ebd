package models

import "time"

// Rating is a post-trip score one user gives another
type Rating struct {
	ID          int64     `json:"id" db:"id"`
	TripID      int64     `json:"trip_id" db:"trip_id"`
	AuthorID    int64     `json:"author_id" db:"author_id"`
	RatedUserID int64     `json:"rated_user_id" db:"rated_user_id"`
	Score       int       `json:"score" db:"score"`
	Comment     *string   `json:"comment,omitempty" db:"comment"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
