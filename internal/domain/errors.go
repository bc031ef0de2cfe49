package domain

import "errors"

// ErrValidation is the base error every entity validation failure wraps.
// Callers can match the whole category with errors.Is(err, ErrValidation)
// or a specific failure with its own sentinel.
var ErrValidation = errors.New("validation failed")
