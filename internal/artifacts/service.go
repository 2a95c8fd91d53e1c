package artifacts

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Service contains business logic for artifacts.
type Service struct {
	Repo Repo
}

// CreateInput carries the fields for persisting a generation result.
type CreateInput struct {
	UserID   string
	Kind     Kind
	JobID    *string
	Content  json.RawMessage
	Metadata map[string]any
}

// Create persists a new artifact. Content is stored untouched.
func (s *Service) Create(ctx context.Context, input CreateInput) (Artifact, error) {
	if input.UserID == "" || input.Kind == "" || len(input.Content) == 0 {
		return Artifact{}, ErrInvalidInput
	}
	now := time.Now().UTC()
	artifact := Artifact{
		ID:        uuid.NewString(),
		UserID:    input.UserID,
		Kind:      input.Kind,
		JobID:     input.JobID,
		Content:   input.Content,
		Metadata:  input.Metadata,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Repo.Create(ctx, artifact); err != nil {
		return Artifact{}, err
	}
	return artifact, nil
}

// Get returns an artifact by ID for a user.
func (s *Service) Get(ctx context.Context, userID, artifactID string) (Artifact, error) {
	if userID == "" || artifactID == "" {
		return Artifact{}, ErrInvalidInput
	}
	return s.Repo.GetByID(ctx, userID, artifactID)
}

// List returns a user's artifacts, newest first.
func (s *Service) List(ctx context.Context, userID string, filter ListFilter) ([]Artifact, error) {
	if userID == "" {
		return nil, ErrInvalidInput
	}
	return s.Repo.ListByUser(ctx, userID, filter)
}

// Delete removes an artifact owned by the user.
func (s *Service) Delete(ctx context.Context, userID, artifactID string) error {
	if userID == "" || artifactID == "" {
		return ErrInvalidInput
	}
	return s.Repo.Delete(ctx, userID, artifactID)
}
