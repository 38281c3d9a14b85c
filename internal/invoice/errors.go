package invoice

import "errors"

var (
	// ErrValidation marks bad or missing input to invoice issuing.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound marks a payment, subscription or player that cannot be resolved.
	ErrNotFound = errors.New("not found")
)
