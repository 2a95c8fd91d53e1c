package artifacts

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoCreateStoresContentAndMetadata(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	jobID := "job-1"
	now := time.Now().UTC()
	artifact := Artifact{
		ID:        "artifact-1",
		UserID:    "user-1",
		Kind:      KindCoverLetter,
		JobID:     &jobID,
		Content:   json.RawMessage(`{"sections":{"opening":"hi"}}`),
		Metadata:  map[string]any{"model": "gpt-4o-mini"},
		CreatedAt: now,
		UpdatedAt: now,
	}

	mock.ExpectExec("INSERT INTO artifacts").
		WithArgs(
			artifact.ID,
			artifact.UserID,
			"cover_letter",
			sqlmock.AnyArg(), // job_id pointer

			[]byte(artifact.Content),
			sqlmock.AnyArg(), // metadata json
			artifact.CreatedAt,
			artifact.UpdatedAt,
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), artifact); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByIDEnforcesOwner(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{"id", "user_id", "kind", "job_id", "content", "metadata", "created_at", "updated_at"}).
		AddRow("artifact-1", "user-1", "resume", nil, []byte(`{"bullets":[]}`), []byte(`{}`), now, now)
	mock.ExpectQuery("SELECT id, user_id, kind, job_id, content, metadata, created_at, updated_at").
		WithArgs("artifact-1").
		WillReturnRows(rows)

	if _, err := repo.GetByID(context.Background(), "user-2", "artifact-1"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoDeleteMissingReturnsNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	mock.ExpectExec("DELETE FROM artifacts").
		WithArgs("missing", "user-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Delete(context.Background(), "user-1", "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
