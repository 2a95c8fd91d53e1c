package analytics

import (
	"context"
	"testing"
	"time"

	"jobtrack-backend/internal/jobs"
)

func seedJob(t *testing.T, repo jobs.Repo, userID string, status jobs.Status, salaryMin, salaryMax *int, appliedAt *time.Time) {
	t.Helper()
	svc := jobs.NewService(repo)
	job, err := svc.Create(context.Background(), jobs.CreateInput{
		UserID:    userID,
		Company:   "Acme",
		Title:     "Backend Engineer",
		Status:    string(status),
		SalaryMin: salaryMin,
		SalaryMax: salaryMax,
		AppliedAt: appliedAt,
	})
	if err != nil {
		t.Fatalf("seed job: %v", err)
	}
	_ = job
}

func intPtr(v int) *int { return &v }

func TestSummarizeEmptyPipeline(t *testing.T) {
	svc := NewService(jobs.NewMemoryRepo())

	summary, err := svc.Summarize(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.TotalJobs != 0 {
		t.Fatalf("expected 0 jobs, got %d", summary.TotalJobs)
	}
	if summary.ResponseRate != 0 {
		t.Fatalf("expected response rate 0, got %f", summary.ResponseRate)
	}
	if len(summary.ApplicationsPerWeek) != weekBuckets {
		t.Fatalf("expected %d week buckets, got %d", weekBuckets, len(summary.ApplicationsPerWeek))
	}
}

func TestSummarizeStatusFunnelAndResponseRate(t *testing.T) {
	repo := jobs.NewMemoryRepo()
	svc := NewService(repo)

	now := time.Now().UTC()
	seedJob(t, repo, "user-1", jobs.StatusSaved, nil, nil, nil)
	seedJob(t, repo, "user-1", jobs.StatusApplied, nil, nil, &now)
	seedJob(t, repo, "user-1", jobs.StatusApplied, nil, nil, &now)
	seedJob(t, repo, "user-1", jobs.StatusInterviewing, nil, nil, &now)
	seedJob(t, repo, "user-1", jobs.StatusRejected, nil, nil, &now)

	summary, err := svc.Summarize(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.TotalJobs != 5 {
		t.Fatalf("expected 5 jobs, got %d", summary.TotalJobs)
	}
	if summary.StatusCounts["applied"] != 2 {
		t.Fatalf("expected 2 applied, got %d", summary.StatusCounts["applied"])
	}
	// 4 applications, 2 with a response (interviewing, rejected).
	if summary.ResponseRate != 0.5 {
		t.Fatalf("expected response rate 0.5, got %f", summary.ResponseRate)
	}
}

func TestSummarizeAvgSalaryByStatus(t *testing.T) {
	repo := jobs.NewMemoryRepo()
	svc := NewService(repo)

	seedJob(t, repo, "user-1", jobs.StatusSaved, intPtr(100000), intPtr(140000), nil)
	seedJob(t, repo, "user-1", jobs.StatusSaved, intPtr(80000), nil, nil)
	seedJob(t, repo, "user-1", jobs.StatusSaved, nil, nil, nil)

	summary, err := svc.Summarize(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Midpoint 120000 and floor 80000 average to 100000; the job with no
	// posted salary is excluded.
	if got := summary.AvgSalaryByStatus["saved"]; got != 100000 {
		t.Fatalf("expected avg salary 100000, got %d", got)
	}
}

func TestSummarizeWeeklyBuckets(t *testing.T) {
	repo := jobs.NewMemoryRepo()
	svc := NewService(repo)

	now := time.Now().UTC()
	lastWeek := now.AddDate(0, 0, -7)
	ancient := now.AddDate(-1, 0, 0)
	seedJob(t, repo, "user-1", jobs.StatusApplied, nil, nil, &now)
	seedJob(t, repo, "user-1", jobs.StatusApplied, nil, nil, &lastWeek)
	seedJob(t, repo, "user-1", jobs.StatusApplied, nil, nil, &ancient)

	summary, err := svc.Summarize(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	total := 0
	for _, bucket := range summary.ApplicationsPerWeek {
		total += bucket.Count
	}
	// The year-old application falls outside the tracked window.
	if total != 2 {
		t.Fatalf("expected 2 applications inside the window, got %d", total)
	}
	if summary.ApplicationsPerWeek[weekBuckets-1].Count != 1 {
		t.Fatalf("expected current week count 1, got %d", summary.ApplicationsPerWeek[weekBuckets-1].Count)
	}
}

func TestSummarizeScopedToUser(t *testing.T) {
	repo := jobs.NewMemoryRepo()
	svc := NewService(repo)

	seedJob(t, repo, "user-1", jobs.StatusApplied, nil, nil, nil)
	seedJob(t, repo, "user-2", jobs.StatusApplied, nil, nil, nil)

	summary, err := svc.Summarize(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.TotalJobs != 1 {
		t.Fatalf("expected only user-1 jobs, got %d", summary.TotalJobs)
	}
}
