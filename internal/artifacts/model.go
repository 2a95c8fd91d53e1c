package artifacts

import (
	"encoding/json"
	"time"
)

// Artifact is a persisted record of one AI-generation call's output, tagged
// by kind and optionally linked to a job posting. Content is opaque: its
// shape is defined by the calling handler's prompt contract.
type Artifact struct {
	ID        string
	UserID    string
	Kind      Kind
	JobID     *string
	Content   json.RawMessage
	Metadata  map[string]any
	CreatedAt time.Time
	UpdatedAt time.Time
}
