package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoCreateBindsAllColumns(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	now := time.Now().UTC()
	job := Job{
		ID:        "job-1",
		UserID:    "user-1",
		Company:   "Acme",
		Title:     "Backend Engineer",
		Status:    StatusSaved,
		CreatedAt: now,
		UpdatedAt: now,
	}

	mock.ExpectExec("INSERT INTO jobs").
		WithArgs(
			job.ID,
			job.UserID,
			job.Company,
			job.Title,
			job.Description,
			job.URL,
			job.Location,
			sqlmock.AnyArg(), // salary_min pointer
			sqlmock.AnyArg(), // salary_max pointer
			"saved",
			job.Notes,
			sqlmock.AnyArg(), // applied_at pointer
			job.CreatedAt,
			job.UpdatedAt,
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), job); err != nil {
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
	rows := sqlmock.NewRows([]string{
		"id", "user_id", "company", "title", "description", "url", "location",
		"salary_min", "salary_max", "status", "notes", "applied_at", "created_at", "updated_at",
	}).AddRow("job-1", "user-1", "Acme", "Backend Engineer", "", "", "", nil, nil, "saved", "", nil, now, now)
	mock.ExpectQuery("SELECT id, user_id, company, title").
		WithArgs("job-1").
		WillReturnRows(rows)

	if _, err := repo.GetByID(context.Background(), "user-2", "job-1"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoUpdateMissingReturnsNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	mock.ExpectExec("UPDATE jobs SET").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.Update(context.Background(), Job{ID: "missing", UserID: "user-1", Status: StatusSaved})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoListFiltersByStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{
		"id", "user_id", "company", "title", "description", "url", "location",
		"salary_min", "salary_max", "status", "notes", "applied_at", "created_at", "updated_at",
	}).AddRow("job-1", "user-1", "Acme", "Backend Engineer", "", "", "", nil, nil, "applied", "", nil, now, now)
	mock.ExpectQuery("SELECT id, user_id, company, title").
		WithArgs("user-1", "applied", 20, 0).
		WillReturnRows(rows)

	jobs, err := repo.ListByUser(context.Background(), "user-1", StatusApplied, 20, 0)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(jobs) != 1 || jobs[0].Status != StatusApplied {
		t.Fatalf("expected one applied job, got %+v", jobs)
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
	mock.ExpectExec("DELETE FROM jobs").
		WithArgs("missing", "user-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Delete(context.Background(), "user-1", "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
