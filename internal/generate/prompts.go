package generate

import (
	"fmt"
	"strings"

	"jobtrack-backend/internal/jobs"
)

// Prompts ask for JSON so responses can be persisted and rendered as
// structured artifacts rather than free text.

func resumePrompt(req ResumeRequest, job *jobs.Job) string {
	var b strings.Builder
	b.WriteString("You are an expert resume writer. Rewrite the candidate's resume content as concise, achievement-oriented bullet points.\n")
	b.WriteString("Respond with JSON only, shaped as {\"bullets\": [\"...\"], \"summary\": \"...\"}.\n\n")
	writeJobContext(&b, job)
	if len(req.Highlights) > 0 {
		fmt.Fprintf(&b, "Emphasize these highlights: %s\n", strings.Join(req.Highlights, "; "))
	}
	fmt.Fprintf(&b, "\nResume content:\n%s\n", req.ResumeText)
	return b.String()
}

func coverLetterPrompt(req CoverLetterRequest, job *jobs.Job) string {
	tone := req.Tone
	if tone == "" {
		tone = "professional"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "You are an expert career coach. Write a %s cover letter for the position below.\n", tone)
	b.WriteString("Respond with JSON only, shaped as {\"sections\": {\"opening\": \"...\", \"body\": \"...\", \"closing\": \"...\"}}.\n\n")
	writeJobContext(&b, job)
	if req.ResumeText != "" {
		fmt.Fprintf(&b, "\nCandidate background:\n%s\n", req.ResumeText)
	}
	return b.String()
}

func skillsPrompt(req SkillsRequest, job *jobs.Job) string {
	var b strings.Builder
	b.WriteString("You are a technical recruiter. Compare the candidate's skills against the job below and suggest improvements.\n")
	b.WriteString("Respond with JSON only, shaped as {\"matched\": [\"...\"], \"missing\": [\"...\"], \"suggestions\": [\"...\"]}.\n\n")
	writeJobContext(&b, job)
	fmt.Fprintf(&b, "\nCandidate skills: %s\n", strings.Join(req.Skills, ", "))
	return b.String()
}

func companyResearchPrompt(req CompanyResearchRequest, job *jobs.Job) string {
	company := req.Company
	if company == "" && job != nil {
		company = job.Company
	}
	var b strings.Builder
	fmt.Fprintf(&b, "You are a career research assistant. Produce an interview-prep brief on %s.\n", company)
	b.WriteString("Respond with JSON only, shaped as {\"overview\": \"...\", \"culture\": \"...\", \"recentNews\": [\"...\"], \"questionsToAsk\": [\"...\"]}.\n\n")
	writeJobContext(&b, job)
	return b.String()
}

func matchPrompt(req MatchRequest, job *jobs.Job) string {
	var b strings.Builder
	b.WriteString("You are a hiring analyst. Score how well the candidate's resume fits the job below.\n")
	b.WriteString("Respond with JSON only, shaped as {\"score\": 0-100, \"strengths\": [\"...\"], \"gaps\": [\"...\"], \"verdict\": \"...\"}.\n\n")
	writeJobContext(&b, job)
	fmt.Fprintf(&b, "\nResume:\n%s\n", req.ResumeText)
	return b.String()
}

func writeJobContext(b *strings.Builder, job *jobs.Job) {
	if job == nil {
		return
	}
	fmt.Fprintf(b, "Job: %s at %s\n", job.Title, job.Company)
	if job.Location != "" {
		fmt.Fprintf(b, "Location: %s\n", job.Location)
	}
	if job.Description != "" {
		fmt.Fprintf(b, "Description:\n%s\n", job.Description)
	}
}
