package dto

import "github.com/traveltogether/api/internal/app/models"

// RegisterRequest is the payload for user registration
type RegisterRequest struct {
	Username  string  `json:"username" binding:"required,min=3,max=50"`
	Email     string  `json:"email" binding:"required,email"`
	Password  string  `json:"password" binding:"required,min=8"`
	Image     *string `json:"image"`
	Phone     *string `json:"phone"`
	Bio       *string `json:"bio"`
	Interests *string `json:"interests"`
}

// LoginRequest is the payload for user login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued token together with the user profile
type LoginResponse struct {
	Message   string       `json:"message"`
	Token     string       `json:"token"`
	ExpiresIn int          `json:"expires_in"`
	User      *models.User `json:"user"`
}

// ChangePasswordRequest is the payload for changing the own password
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}

// UpdateUserRequest is the payload for updating a user profile
type UpdateUserRequest struct {
	Username  *string `json:"username" binding:"omitempty,min=3,max=50"`
	Email     *string `json:"email" binding:"omitempty,email"`
	Image     *string `json:"image"`
	Phone     *string `json:"phone"`
	Bio       *string `json:"bio"`
	Interests *string `json:"interests"`
	IsActive  *bool   `json:"is_active"`
}
