package artifacts

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo stores artifacts in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu   sync.RWMutex
	byID map[string]Artifact
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byID: make(map[string]Artifact)}
}

// Create stores the artifact.
func (r *MemoryRepo) Create(ctx context.Context, artifact Artifact) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[artifact.ID] = artifact
	return nil
}

// GetByID returns an artifact by ID for a user.
func (r *MemoryRepo) GetByID(ctx context.Context, userID, artifactID string) (Artifact, error) {
	if err := ctx.Err(); err != nil {
		return Artifact{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	artifact, ok := r.byID[artifactID]
	if !ok {
		return Artifact{}, ErrNotFound
	}
	if artifact.UserID != userID {
		return Artifact{}, ErrForbidden
	}
	return artifact, nil
}

// ListByUser returns a user's artifacts, newest first, honoring the filter.
func (r *MemoryRepo) ListByUser(ctx context.Context, userID string, filter ListFilter) ([]Artifact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	r.mu.RLock()
	var matched []Artifact
	for _, artifact := range r.byID {
		if artifact.UserID != userID {
			continue
		}
		if filter.Kind != "" && artifact.Kind != filter.Kind {
			continue
		}
		if filter.JobID != "" && (artifact.JobID == nil || *artifact.JobID != filter.JobID) {
			continue
		}
		matched = append(matched, artifact)
	}
	r.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	if offset >= len(matched) {
		return []Artifact{}, nil
	}
	end := len(matched)
	if offset+limit < end {
		end = offset + limit
	}
	return matched[offset:end], nil
}

// Delete removes an artifact owned by the user.
func (r *MemoryRepo) Delete(ctx context.Context, userID, artifactID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	artifact, ok := r.byID[artifactID]
	if !ok || artifact.UserID != userID {
		return ErrNotFound
	}
	delete(r.byID, artifactID)
	return nil
}

var _ Repo = (*MemoryRepo)(nil)
