package apperrors

import (
	"errors"
	"fmt"
)

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")
	ErrConflict              = errors.New("conflict")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrInvalidFormat      = errors.New("invalid token format")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")
)

// User errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email or username already registered")
)

// Trip errors
var (
	ErrTripNotFound = errors.New("trip not found")
)

// Participation errors
var (
	ErrParticipationNotFound = errors.New("participation not found")
	ErrTripFull              = errors.New("trip is full")
	ErrAlreadyAccepted       = errors.New("already joined this trip")
	ErrAlreadyPending        = errors.New("join request already pending")
	ErrOwnTrip               = errors.New("cannot join own trip")
	ErrTerminalStatus        = errors.New("participation is in a terminal status")
	ErrInvalidStatus         = errors.New("invalid participation status")
)

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Code    string
}

// Error implements the error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with an underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewConflictError creates a new custom error for conflict situations with a message
func NewConflictError(message string) error {
	return &CustomError{
		Err:     ErrConflict,
		Message: message,
	}
}

// NewForbiddenError creates a new custom error for permission denied with a message
func NewForbiddenError(message string) error {
	return &CustomError{
		Err:     ErrPermissionDenied,
		Message: message,
	}
}

// NewBadRequestError creates a new custom error for bad request with a message
func NewBadRequestError(message string) error {
	return &CustomError{
		Err:     ErrBadRequest,
		Message: message,
	}
}

// DateConflictError reports a date-range overlap against an existing trip.
// The conflicting trip id is surfaced to the client.
type DateConflictError struct {
	TripID int64
}

// Error implements the error interface
func (e *DateConflictError) Error() string {
	return fmt.Sprintf("trip dates overlap with trip %d", e.TripID)
}

// Unwrap makes the error match ErrConflict in errors.Is checks
func (e *DateConflictError) Unwrap() error {
	return ErrConflict
}

// NewDateConflictError creates a DateConflictError for the given trip
func NewDateConflictError(tripID int64) error {
	return &DateConflictError{TripID: tripID}
}
