package llm

import (
	"errors"
	"fmt"
)

// ErrorKind classifies generation failures so retry logic can branch on an
// explicit tag instead of sniffing error strings or status codes.
type ErrorKind string

const (
	// KindConfiguration marks deployment-time problems: missing credential,
	// unsupported or unimplemented provider selection. Never retried.
	KindConfiguration ErrorKind = "configuration"
	// KindTimeout marks an aborted or deadline-exceeded call.
	KindTimeout ErrorKind = "timeout"
	// KindTransient marks failures likely to succeed on retry: network
	// errors, 5xx responses, provider-side rate limiting.
	KindTransient ErrorKind = "transient"
	// KindNonRetryable marks failures that retrying cannot fix (other 4xx).
	KindNonRetryable ErrorKind = "non_retryable"
)

// Error is the typed failure returned by providers and the gateway.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		if e.Message != "" {
			return fmt.Sprintf("llm %s: %s: %v", e.Kind, e.Message, e.Err)
		}
		return fmt.Sprintf("llm %s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("llm %s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf extracts the error kind, defaulting to KindTransient for untyped
// errors so unknown failures still get the retry budget.
func KindOf(err error) ErrorKind {
	var typed *Error
	if errors.As(err, &typed) {
		return typed.Kind
	}
	return KindTransient
}

// Retryable reports whether the failure class is worth another attempt.
func Retryable(err error) bool {
	switch KindOf(err) {
	case KindTimeout, KindTransient:
		return true
	default:
		return false
	}
}
