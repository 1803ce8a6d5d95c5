package todo

import "errors"

var (
	// ErrNotFound indicates no todo exists with the given ID.
	ErrNotFound = errors.New("todo not found")
	// ErrValidation indicates a required field is missing or malformed.
	ErrValidation = errors.New("validation failed")
)
