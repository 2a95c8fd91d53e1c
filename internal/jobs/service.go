package jobs

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Service holds job business logic over a Repo.
type Service struct {
	Repo Repo
}

// NewService constructs a Service.
func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// CreateInput carries fields for creating a job.
type CreateInput struct {
	UserID      string
	Company     string
	Title       string
	Description string
	URL         string
	Location    string
	SalaryMin   *int
	SalaryMax   *int
	Status      string
	Notes       string
	AppliedAt   *time.Time
}

// UpdateInput carries optional fields for a partial update. Nil means
// "leave unchanged".
type UpdateInput struct {
	Company     *string
	Title       *string
	Description *string
	URL         *string
	Location    *string
	SalaryMin   *int
	SalaryMax   *int
	Status      *string
	Notes       *string
	AppliedAt   *time.Time
}

// Create validates input and stores a new job.
func (s *Service) Create(ctx context.Context, in CreateInput) (Job, error) {
	company := strings.TrimSpace(in.Company)
	title := strings.TrimSpace(in.Title)
	if company == "" {
		return Job{}, fmt.Errorf("%w: company is required", ErrInvalidInput)
	}
	if title == "" {
		return Job{}, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}

	status := StatusSaved
	if strings.TrimSpace(in.Status) != "" {
		parsed, err := ParseStatus(in.Status)
		if err != nil {
			return Job{}, fmt.Errorf("%w: %s", ErrInvalidInput, err.Error())
		}
		status = parsed
	}
	if err := validateSalary(in.SalaryMin, in.SalaryMax); err != nil {
		return Job{}, err
	}

	now := time.Now().UTC()
	job := Job{
		ID:          uuid.NewString(),
		UserID:      in.UserID,
		Company:     company,
		Title:       title,
		Description: strings.TrimSpace(in.Description),
		URL:         strings.TrimSpace(in.URL),
		Location:    strings.TrimSpace(in.Location),
		SalaryMin:   in.SalaryMin,
		SalaryMax:   in.SalaryMax,
		Status:      status,
		Notes:       in.Notes,
		AppliedAt:   in.AppliedAt,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if job.AppliedAt == nil && status != StatusSaved {
		job.AppliedAt = &now
	}
	if err := s.Repo.Create(ctx, job); err != nil {
		return Job{}, err
	}
	return job, nil
}

// Update applies a partial update to a job owned by the user.
func (s *Service) Update(ctx context.Context, userID, jobID string, in UpdateInput) (Job, error) {
	job, err := s.Repo.GetByID(ctx, userID, jobID)
	if err != nil {
		return Job{}, err
	}

	if in.Company != nil {
		company := strings.TrimSpace(*in.Company)
		if company == "" {
			return Job{}, fmt.Errorf("%w: company cannot be empty", ErrInvalidInput)
		}
		job.Company = company
	}
	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return Job{}, fmt.Errorf("%w: title cannot be empty", ErrInvalidInput)
		}
		job.Title = title
	}
	if in.Description != nil {
		job.Description = strings.TrimSpace(*in.Description)
	}
	if in.URL != nil {
		job.URL = strings.TrimSpace(*in.URL)
	}
	if in.Location != nil {
		job.Location = strings.TrimSpace(*in.Location)
	}
	if in.SalaryMin != nil {
		job.SalaryMin = in.SalaryMin
	}
	if in.SalaryMax != nil {
		job.SalaryMax = in.SalaryMax
	}
	if err := validateSalary(job.SalaryMin, job.SalaryMax); err != nil {
		return Job{}, err
	}
	if in.Status != nil {
		status, err := ParseStatus(*in.Status)
		if err != nil {
			return Job{}, fmt.Errorf("%w: %s", ErrInvalidInput, err.Error())
		}
		// First transition out of "saved" stamps the application time.
		if job.Status == StatusSaved && status != StatusSaved && job.AppliedAt == nil && in.AppliedAt == nil {
			now := time.Now().UTC()
			job.AppliedAt = &now
		}
		job.Status = status
	}
	if in.AppliedAt != nil {
		job.AppliedAt = in.AppliedAt
	}
	job.UpdatedAt = time.Now().UTC()

	if err := s.Repo.Update(ctx, job); err != nil {
		return Job{}, err
	}
	return job, nil
}

// Get fetches one job owned by the user.
func (s *Service) Get(ctx context.Context, userID, jobID string) (Job, error) {
	if strings.TrimSpace(jobID) == "" {
		return Job{}, fmt.Errorf("%w: job id is required", ErrInvalidInput)
	}
	return s.Repo.GetByID(ctx, userID, jobID)
}

// List returns a user's jobs, optionally filtered by status.
func (s *Service) List(ctx context.Context, userID, rawStatus string, limit, offset int) ([]Job, error) {
	var status Status
	if strings.TrimSpace(rawStatus) != "" {
		parsed, err := ParseStatus(rawStatus)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidInput, err.Error())
		}
		status = parsed
	}
	return s.Repo.ListByUser(ctx, userID, status, limit, offset)
}

// Delete removes a job owned by the user.
func (s *Service) Delete(ctx context.Context, userID, jobID string) error {
	if strings.TrimSpace(jobID) == "" {
		return fmt.Errorf("%w: job id is required", ErrInvalidInput)
	}
	return s.Repo.Delete(ctx, userID, jobID)
}

func validateSalary(min, max *int) error {
	if min != nil && *min < 0 {
		return fmt.Errorf("%w: salaryMin cannot be negative", ErrInvalidInput)
	}
	if max != nil && *max < 0 {
		return fmt.Errorf("%w: salaryMax cannot be negative", ErrInvalidInput)
	}
	if min != nil && max != nil && *min > *max {
		return fmt.Errorf("%w: salaryMin cannot exceed salaryMax", ErrInvalidInput)
	}
	return nil
}
