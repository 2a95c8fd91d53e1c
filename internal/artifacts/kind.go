package artifacts

import (
	"errors"
	"strings"
)

// Kind classifies what a generation artifact represents.
type Kind string

const (
	KindResume             Kind = "resume"
	KindCoverLetter        Kind = "cover_letter"
	KindSkillsOptimization Kind = "skills_optimization"
	KindCompanyResearch    Kind = "company_research"
	KindMatch              Kind = "match"
)

// ParseKind normalizes and validates a kind string.
func ParseKind(raw string) (Kind, error) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	if normalized == "" {
		return "", errors.New("artifact kind is required")
	}
	switch Kind(normalized) {
	case KindResume, KindCoverLetter, KindSkillsOptimization, KindCompanyResearch, KindMatch:
		return Kind(normalized), nil
	default:
		return "", errors.New("artifact kind is invalid")
	}
}
