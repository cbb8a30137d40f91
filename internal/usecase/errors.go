package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDependencyUnavailable = errors.New("dependency unavailable")

	// ErrSourceUnavailable marks a page that answered with a non-200 status.
	ErrSourceUnavailable = errors.New("source unavailable")
	// ErrStructuralMismatch marks a page without the expected info card or roster.
	ErrStructuralMismatch = errors.New("structural mismatch")
)
