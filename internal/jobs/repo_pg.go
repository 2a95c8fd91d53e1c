package jobs

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const jobColumns = `id, user_id, company, title, description, url, location, salary_min, salary_max, status, notes, applied_at, created_at, updated_at`

// Create inserts a job.
func (r *PGRepo) Create(ctx context.Context, job Job) error {
	const query = `
INSERT INTO jobs (
    id, user_id, company, title, description, url, location, salary_min, salary_max, status, notes, applied_at, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.DB.ExecContext(ctx, query,
		job.ID,
		job.UserID,
		job.Company,
		job.Title,
		job.Description,
		job.URL,
		job.Location,
		job.SalaryMin,
		job.SalaryMax,
		string(job.Status),
		job.Notes,
		job.AppliedAt,
		job.CreatedAt,
		job.UpdatedAt,
	)
	return err
}

// Update rewrites a job's mutable fields for its owner.
func (r *PGRepo) Update(ctx context.Context, job Job) error {
	const query = `
UPDATE jobs SET
    company = $1, title = $2, description = $3, url = $4, location = $5,
    salary_min = $6, salary_max = $7, status = $8, notes = $9, applied_at = $10, updated_at = $11
WHERE id = $12 AND user_id = $13`
	res, err := r.DB.ExecContext(ctx, query,
		job.Company,
		job.Title,
		job.Description,
		job.URL,
		job.Location,
		job.SalaryMin,
		job.SalaryMax,
		string(job.Status),
		job.Notes,
		job.AppliedAt,
		job.UpdatedAt,
		job.ID,
		job.UserID,
	)
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

// GetByID returns a job by ID for a user.
func (r *PGRepo) GetByID(ctx context.Context, userID, jobID string) (Job, error) {
	const query = `
SELECT ` + jobColumns + `
FROM jobs
WHERE id = $1
LIMIT 1`
	job, err := scanJob(r.DB.QueryRowContext(ctx, query, jobID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Job{}, ErrNotFound
		}
		return Job{}, err
	}
	if job.UserID != userID {
		return Job{}, ErrForbidden
	}
	return job, nil
}

// ListByUser lists jobs ordered newest-first, optionally by status.
func (r *PGRepo) ListByUser(ctx context.Context, userID string, status Status, limit, offset int) ([]Job, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	var (
		rows *sql.Rows
		err  error
	)
	if status != "" {
		const query = `
SELECT ` + jobColumns + `
FROM jobs
WHERE user_id = $1 AND status = $2
ORDER BY created_at DESC
LIMIT $3 OFFSET $4`
		rows, err = r.DB.QueryContext(ctx, query, userID, string(status), limit, offset)
	} else {
		const query = `
SELECT ` + jobColumns + `
FROM jobs
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`
		rows, err = r.DB.QueryContext(ctx, query, userID, limit, offset)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, job)
	}
	return out, rows.Err()
}

// Delete removes a job owned by the user.
func (r *PGRepo) Delete(ctx context.Context, userID, jobID string) error {
	const query = `DELETE FROM jobs WHERE id = $1 AND user_id = $2`
	res, err := r.DB.ExecContext(ctx, query, jobID, userID)
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

func scanJob(row rowScanner) (Job, error) {
	var (
		job    Job
		status string
	)
	err := row.Scan(
		&job.ID,
		&job.UserID,
		&job.Company,
		&job.Title,
		&job.Description,
		&job.URL,
		&job.Location,
		&job.SalaryMin,
		&job.SalaryMax,
		&status,
		&job.Notes,
		&job.AppliedAt,
		&job.CreatedAt,
		&job.UpdatedAt,
	)
	if err != nil {
		return Job{}, err
	}
	job.Status = Status(status)
	return job, nil
}

var _ Repo = (*PGRepo)(nil)
