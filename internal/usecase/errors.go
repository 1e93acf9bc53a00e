package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNoData                = errors.New("no data available")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
	ErrValidationFailed      = errors.New("published relations failed validation")
)
