package domain

import "errors"

// Error taxonomy shared by services and the HTTP layer.
var (
	ErrUnauthorized           = errors.New("unauthorized")
	ErrForbidden              = errors.New("forbidden")
	ErrInvalidCredentials     = errors.New("invalid username or password")
	ErrInvalidCurrentPassword = errors.New("current password is incorrect")
	ErrWeakPassword           = errors.New("password must be at least 5 characters")
	ErrNotFound               = errors.New("not found")
	ErrValidation             = errors.New("validation failed")
	ErrConflict               = errors.New("already exists")
	ErrPasswordChangeRequired = errors.New("password change required")
)
