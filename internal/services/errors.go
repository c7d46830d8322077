package services

import "errors"

var (
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailExists        = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrProfileExists   = errors.New("profile already exists")
	ErrProfileNotFound = errors.New("profile not found")

	ErrDoubtNotFound       = errors.New("doubt not found")
	ErrDoubtFieldsRequired = errors.New("title and question are required")
	ErrMessageRequired     = errors.New("message is required")
)
