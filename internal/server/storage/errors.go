package storage

import "errors"

// Common storage errors
var (
	// ErrUserNotFound indicates that user was not found in storage
	ErrUserNotFound = errors.New("user not found")

	// ErrUserAlreadyExists indicates that user with this username already exists
	ErrUserAlreadyExists = errors.New("user already exists")

	// ErrRateNotFound indicates that rate record was not found
	ErrRateNotFound = errors.New("rate not found")

	// ErrRateAlreadyExists indicates that a rate for this operation ID already exists
	ErrRateAlreadyExists = errors.New("rate already exists")
)
