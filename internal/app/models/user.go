package models

import "time"

// User represents a registered user of the platform
type User struct {
	ID        int64     `json:"id" db:"id"`
	Username  string    `json:"username" db:"username"`
	Email     string    `json:"email" db:"email"`
	Password  string    `json:"-" db:"password"`
	Image     *string   `json:"image,omitempty" db:"image"`
	Phone     *string   `json:"phone,omitempty" db:"phone"`
	Bio       *string   `json:"bio,omitempty" db:"bio"`
	Interests *string   `json:"interests,omitempty" db:"interests"`
	Role      string    `json:"role" db:"role"`
	IsActive  bool      `json:"is_active" db:"is_active"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// User roles
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)
