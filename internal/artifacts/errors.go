package artifacts

import "errors"

var (
	ErrNotFound     = errors.New("artifact not found")
	ErrForbidden    = errors.New("artifact belongs to another user")
	ErrInvalidInput = errors.New("invalid input")
)
