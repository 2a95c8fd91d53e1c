package artifacts

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts an artifact.
func (r *PGRepo) Create(ctx context.Context, artifact Artifact) error {
	metadata, err := marshalMetadata(artifact.Metadata)
	if err != nil {
		return err
	}
	const query = `
INSERT INTO artifacts (
    id, user_id, kind, job_id, content, metadata, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err = r.DB.ExecContext(ctx, query,
		artifact.ID,
		artifact.UserID,
		string(artifact.Kind),
		artifact.JobID,
		[]byte(artifact.Content),
		metadata,
		artifact.CreatedAt,
		artifact.UpdatedAt,
	)
	return err
}

// GetByID returns an artifact by ID for a user.
func (r *PGRepo) GetByID(ctx context.Context, userID, artifactID string) (Artifact, error) {
	const query = `
SELECT id, user_id, kind, job_id, content, metadata, created_at, updated_at
FROM artifacts
WHERE id = $1
LIMIT 1`
	artifact, err := scanArtifact(r.DB.QueryRowContext(ctx, query, artifactID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Artifact{}, ErrNotFound
		}
		return Artifact{}, err
	}
	if artifact.UserID != userID {
		return Artifact{}, ErrForbidden
	}
	return artifact, nil
}

// ListByUser lists artifacts ordered newest-first.
func (r *PGRepo) ListByUser(ctx context.Context, userID string, filter ListFilter) ([]Artifact, error) {
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

	query := `
SELECT id, user_id, kind, job_id, content, metadata, created_at, updated_at
FROM artifacts
WHERE user_id = $1`
	args := []any{userID}
	if filter.Kind != "" {
		args = append(args, string(filter.Kind))
		query += fmt.Sprintf(" AND kind = $%d", len(args))
	}
	if filter.JobID != "" {
		args = append(args, filter.JobID)
		query += fmt.Sprintf(" AND job_id = $%d", len(args))
	}
	args = append(args, limit, offset)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Artifact
	for rows.Next() {
		artifact, err := scanArtifact(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, artifact)
	}
	return out, rows.Err()
}

// Delete removes an artifact owned by the user.
func (r *PGRepo) Delete(ctx context.Context, userID, artifactID string) error {
	const query = `DELETE FROM artifacts WHERE id = $1 AND user_id = $2`
	res, err := r.DB.ExecContext(ctx, query, artifactID, userID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanArtifact(row rowScanner) (Artifact, error) {
	var (
		artifact Artifact
		kind     string
		content  []byte
		metadata []byte
	)
	err := row.Scan(
		&artifact.ID,
		&artifact.UserID,
		&kind,
		&artifact.JobID,
		&content,
		&metadata,
		&artifact.CreatedAt,
		&artifact.UpdatedAt,
	)
	if err != nil {
		return Artifact{}, err
	}
	artifact.Kind = Kind(kind)
	artifact.Content = json.RawMessage(content)
	if len(metadata) > 0 {
		if err := json.Unmarshal(metadata, &artifact.Metadata); err != nil {
			return Artifact{}, fmt.Errorf("decode artifact metadata: %w", err)
		}
	}
	return artifact, nil
}

func marshalMetadata(metadata map[string]any) ([]byte, error) {
	if metadata == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(metadata)
}

var _ Repo = (*PGRepo)(nil)
