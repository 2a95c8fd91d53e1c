package artifacts

import "context"

// ListFilter narrows ListByUser results. Zero fields are ignored.
type ListFilter struct {
	Kind   Kind
	JobID  string
	Limit  int
	Offset int
}

// Repo defines persistence operations for generation artifacts.
type Repo interface {
	Create(ctx context.Context, artifact Artifact) error
	GetByID(ctx context.Context, userID, artifactID string) (Artifact, error)
	ListByUser(ctx context.Context, userID string, filter ListFilter) ([]Artifact, error)
	Delete(ctx context.Context, userID, artifactID string) error
}
