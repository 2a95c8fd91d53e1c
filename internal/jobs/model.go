package jobs

import "time"

// Job represents one tracked job posting / application.
type Job struct {
	ID          string
	UserID      string
	Company     string
	Title       string
	Description string
	URL         string
	Location    string
	SalaryMin   *int
	SalaryMax   *int
	Status      Status
	Notes       string
	AppliedAt   *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
