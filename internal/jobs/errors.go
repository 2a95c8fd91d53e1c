package jobs

import "errors"

var (
	ErrNotFound     = errors.New("job not found")
	ErrForbidden    = errors.New("job belongs to another user")
	ErrInvalidInput = errors.New("invalid input")
)
