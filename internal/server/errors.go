// Package server provides the HTTP REST API for the career intelligence
// service.
package server

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/careerlens/careerlens/internal/types"
)

// ErrEmailAlreadyExists indicates email is already registered
type ErrEmailAlreadyExists struct {
	Email string
}

func (e *ErrEmailAlreadyExists) Error() string {
	return fmt.Sprintf("email already registered: %s", e.Email)
}

// ErrInvalidCredentials indicates invalid login credentials
type ErrInvalidCredentials struct{}

func (e *ErrInvalidCredentials) Error() string {
	return "invalid email or password"
}

// ErrUserNotFound indicates user was not found
type ErrUserNotFound struct {
	UserID uuid.UUID
}

func (e *ErrUserNotFound) Error() string {
	return fmt.Sprintf("user not found: %s", e.UserID)
}

// ErrPasswordMismatch indicates current password is incorrect
type ErrPasswordMismatch struct{}

func (e *ErrPasswordMismatch) Error() string {
	return "current password is incorrect"
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrRecalibrationLocked indicates a new assessment was submitted before the
// plan's recalibration window opened.
type ErrRecalibrationLocked struct {
	Status types.RecalibrationStatus
}

func (e *ErrRecalibrationLocked) Error() string {
	return fmt.Sprintf("recalibration locked: %s (%d days remaining)", e.Status.Reason, e.Status.RemainingDays)
}

// ErrNoAssessment indicates the user has not completed an assessment yet.
type ErrNoAssessment struct{}

func (e *ErrNoAssessment) Error() string {
	return "no assessment on record"
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	switch err.(type) {
	case *ErrEmailAlreadyExists, *ErrRecalibrationLocked:
		return http.StatusConflict
	case *ErrInvalidCredentials, *ErrPasswordMismatch:
		return http.StatusUnauthorized
	case *ErrUserNotFound, *ErrNoAssessment:
		return http.StatusNotFound
	case *ErrValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
