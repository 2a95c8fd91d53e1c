package analytics

import (
	"context"
	"time"

	"jobtrack-backend/internal/jobs"
)

// Summary aggregates a user's application pipeline.
type Summary struct {
	TotalJobs           int              `json:"totalJobs"`
	StatusCounts        map[string]int   `json:"statusCounts"`
	ResponseRate        float64          `json:"responseRate"`
	ApplicationsPerWeek []WeekBucket     `json:"applicationsPerWeek"`
	AvgSalaryByStatus   map[string]int   `json:"avgSalaryByStatus"`
}

// WeekBucket counts applications submitted in one ISO week.
type WeekBucket struct {
	WeekStart time.Time `json:"weekStart"`
	Count     int       `json:"count"`
}

const weekBuckets = 12

// Service computes analytics over the jobs repo.
type Service struct {
	Jobs jobs.Repo
}

// NewService constructs a Service.
func NewService(jobsRepo jobs.Repo) *Service {
	return &Service{Jobs: jobsRepo}
}

// Summarize builds the full summary for a user in a single pass over
// their jobs.
func (s *Service) Summarize(ctx context.Context, userID string) (Summary, error) {
	all, err := s.Jobs.ListByUser(ctx, userID, "", 100, 0)
	if err != nil {
		return Summary{}, err
	}
	// Page through the rest; the repo caps page size at 100.
	for len(all)%100 == 0 && len(all) > 0 {
		page, err := s.Jobs.ListByUser(ctx, userID, "", 100, len(all))
		if err != nil {
			return Summary{}, err
		}
		if len(page) == 0 {
			break
		}
		all = append(all, page...)
	}

	summary := Summary{
		StatusCounts:      make(map[string]int),
		AvgSalaryByStatus: make(map[string]int),
	}
	summary.TotalJobs = len(all)

	now := time.Now().UTC()
	weekStart := startOfWeek(now)
	buckets := make([]WeekBucket, weekBuckets)
	for i := range buckets {
		buckets[i].WeekStart = weekStart.AddDate(0, 0, -7*(weekBuckets-1-i))
	}

	salarySums := make(map[string]int)
	salaryCounts := make(map[string]int)
	applied := 0
	responded := 0

	for _, job := range all {
		status := string(job.Status)
		summary.StatusCounts[status]++

		if job.Status != jobs.StatusSaved {
			applied++
		}
		switch job.Status {
		case jobs.StatusInterviewing, jobs.StatusOffer, jobs.StatusRejected:
			responded++
		}

		if salary := postedSalary(job); salary > 0 {
			salarySums[status] += salary
			salaryCounts[status]++
		}

		if job.AppliedAt != nil {
			offset := int(weekStart.Sub(startOfWeek(job.AppliedAt.UTC())).Hours() / (24 * 7))
			if offset >= 0 && offset < weekBuckets {
				buckets[weekBuckets-1-offset].Count++
			}
		}
	}

	if applied > 0 {
		summary.ResponseRate = float64(responded) / float64(applied)
	}
	for status, sum := range salarySums {
		summary.AvgSalaryByStatus[status] = sum / salaryCounts[status]
	}
	summary.ApplicationsPerWeek = buckets
	return summary, nil
}

// postedSalary collapses a posting's salary range to its midpoint.
func postedSalary(job jobs.Job) int {
	switch {
	case job.SalaryMin != nil && job.SalaryMax != nil:
		return (*job.SalaryMin + *job.SalaryMax) / 2
	case job.SalaryMin != nil:
		return *job.SalaryMin
	case job.SalaryMax != nil:
		return *job.SalaryMax
	default:
		return 0
	}
}

func startOfWeek(t time.Time) time.Time {
	t = t.Truncate(24 * time.Hour)
	weekday := int(t.Weekday())
	// Weeks start Monday.
	if weekday == 0 {
		weekday = 7
	}
	return t.AddDate(0, 0, -(weekday - 1))
}
