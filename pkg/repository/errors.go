package repository

import "github.com/m-mizutani/goerr/v2"

var (
	// ErrNotFound is returned when a requested scan record does not exist.
	ErrNotFound = goerr.New("not found")
	// ErrInvalidInput is returned when a record or key fails validation before storage.
	ErrInvalidInput = goerr.New("invalid input")
)
