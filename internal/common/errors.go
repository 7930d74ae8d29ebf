package common

import "errors"

// Business logic errors
var (
	// General errors
	ErrNotFound  = errors.New("resource not found")
	ErrForbidden = errors.New("forbidden")

	// Entry errors
	ErrEntryNotFound = errors.New("entry not found")
	ErrKindMismatch  = errors.New("entry kind mismatch")
	ErrForeignEntry  = errors.New("entry does not belong to owner")

	// Auth errors
	ErrUnauthorized = errors.New("unauthorized")

	// Validation errors
	ErrInvalidInput = errors.New("invalid input")
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("expired token")
)
