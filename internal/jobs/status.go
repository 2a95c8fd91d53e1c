package jobs

import (
	"errors"
	"strings"
)

// Status tracks where an application sits in the pipeline.
type Status string

const (
	StatusSaved        Status = "saved"
	StatusApplied      Status = "applied"
	StatusInterviewing Status = "interviewing"
	StatusOffer        Status = "offer"
	StatusRejected     Status = "rejected"
	StatusWithdrawn    Status = "withdrawn"
)

// ParseStatus normalizes and validates a status string.
func ParseStatus(raw string) (Status, error) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	if normalized == "" {
		return "", errors.New("job status is required")
	}
	switch Status(normalized) {
	case StatusSaved, StatusApplied, StatusInterviewing, StatusOffer, StatusRejected, StatusWithdrawn:
		return Status(normalized), nil
	default:
		return "", errors.New("job status is invalid")
	}
}
