package generate

import (
	"fmt"
	"strings"
)

// Each endpoint binds its own request struct and runs an explicit validator
// before anything touches the quota or the provider. Validation failures are
// terminal; nothing downstream sees a partially valid request.

// ErrValidation wraps all request validation failures.
type validationError struct {
	msg string
}

func (e *validationError) Error() string { return e.msg }

func invalidf(format string, args ...any) error {
	return &validationError{msg: fmt.Sprintf(format, args...)}
}

// ResumeRequest asks for tailored resume bullet points.
type ResumeRequest struct {
	JobID      string   `json:"jobId"`
	ResumeText string   `json:"resumeText"`
	Highlights []string `json:"highlights"`
}

func (r *ResumeRequest) Validate() error {
	r.ResumeText = strings.TrimSpace(r.ResumeText)
	r.JobID = strings.TrimSpace(r.JobID)
	if r.ResumeText == "" {
		return invalidf("resumeText is required")
	}
	if len(r.ResumeText) > maxInputChars {
		return invalidf("resumeText exceeds %d characters", maxInputChars)
	}
	return nil
}

// CoverLetterRequest asks for a cover letter for a stored job.
type CoverLetterRequest struct {
	JobID      string `json:"jobId"`
	ResumeText string `json:"resumeText"`
	Tone       string `json:"tone"`
}

func (r *CoverLetterRequest) Validate() error {
	r.JobID = strings.TrimSpace(r.JobID)
	r.ResumeText = strings.TrimSpace(r.ResumeText)
	r.Tone = strings.ToLower(strings.TrimSpace(r.Tone))
	if r.JobID == "" {
		return invalidf("jobId is required")
	}
	if len(r.ResumeText) > maxInputChars {
		return invalidf("resumeText exceeds %d characters", maxInputChars)
	}
	switch r.Tone {
	case "", "professional", "conversational", "enthusiastic":
	default:
		return invalidf("tone must be one of professional, conversational, enthusiastic")
	}
	return nil
}

// SkillsRequest asks for skill-gap suggestions against a stored job.
type SkillsRequest struct {
	JobID  string   `json:"jobId"`
	Skills []string `json:"skills"`
}

func (r *SkillsRequest) Validate() error {
	r.JobID = strings.TrimSpace(r.JobID)
	if r.JobID == "" {
		return invalidf("jobId is required")
	}
	cleaned := r.Skills[:0]
	for _, s := range r.Skills {
		s = strings.TrimSpace(s)
		if s != "" {
			cleaned = append(cleaned, s)
		}
	}
	r.Skills = cleaned
	if len(r.Skills) == 0 {
		return invalidf("skills must contain at least one entry")
	}
	if len(r.Skills) > 100 {
		return invalidf("skills must not exceed 100 entries")
	}
	return nil
}

// CompanyResearchRequest asks for a research brief on a company.
type CompanyResearchRequest struct {
	JobID   string `json:"jobId"`
	Company string `json:"company"`
}

func (r *CompanyResearchRequest) Validate() error {
	r.JobID = strings.TrimSpace(r.JobID)
	r.Company = strings.TrimSpace(r.Company)
	if r.JobID == "" && r.Company == "" {
		return invalidf("jobId or company is required")
	}
	return nil
}

// MatchRequest asks for a fit score between a resume and a stored job.
type MatchRequest struct {
	JobID      string `json:"jobId"`
	ResumeText string `json:"resumeText"`
}

func (r *MatchRequest) Validate() error {
	r.JobID = strings.TrimSpace(r.JobID)
	r.ResumeText = strings.TrimSpace(r.ResumeText)
	if r.JobID == "" {
		return invalidf("jobId is required")
	}
	if r.ResumeText == "" {
		return invalidf("resumeText is required")
	}
	if len(r.ResumeText) > maxInputChars {
		return invalidf("resumeText exceeds %d characters", maxInputChars)
	}
	return nil
}

const maxInputChars = 40000
