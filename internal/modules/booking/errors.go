package booking

import "errors"

var (
	ErrNotFound          = errors.New("booking not found")
	ErrInvalidTransition = errors.New("booking status transition not allowed")
	ErrValidation        = errors.New("validation error")
)
