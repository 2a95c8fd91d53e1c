package mock

import (
	"context"
	"encoding/json"

	"jobtrack-backend/internal/llm"
)

// Client returns deterministic canned payloads keyed by request kind. It is
// used for tests and offline development: no network call, no failure path.
type Client struct{}

// New constructs a mock client.
func New() *Client {
	return &Client{}
}

var canned = map[string]string{
	"resume": `{
  "summary": "Results-driven software engineer with experience shipping production web services.",
  "bullets": [
    "Led migration of a monolithic API to modular services, cutting deploy time by 60%",
    "Designed and shipped customer-facing analytics dashboards used by 10k monthly users",
    "Mentored three junior engineers through onboarding and first production launches"
  ]
}`,
	"cover_letter": `{
  "sections": {
    "opening": "I am excited to apply for this role; the team's focus on pragmatic engineering matches how I like to work.",
    "body": "In my current position I own the full lifecycle of user-facing features, from design discussions through rollout and monitoring.",
    "closing": "I would welcome the chance to talk about how my background fits the team's roadmap."
  }
}`,
	"skills_optimization": `{
  "skills": {
    "add": ["Kubernetes", "Terraform"],
    "emphasize": ["Go", "PostgreSQL", "distributed systems"],
    "remove": ["jQuery"]
  }
}`,
	"company_research": `{
  "company": {
    "overview": "Mid-size product company with an engineering-led culture and a remote-friendly policy.",
    "culture": "Values written communication, small autonomous teams, and weekly demos.",
    "talking_points": [
      "Recent launch of their self-serve tier",
      "Public engineering blog posts on reliability practices"
    ]
  }
}`,
	"match": `{
  "score": 82,
  "strengths": ["Backend experience matches the core stack", "Prior work in the same industry"],
  "gaps": ["No production Kafka experience listed"]
}`,
}

const fallback = `{
  "summary": "Generated content is unavailable in offline mode; this is a deterministic placeholder."
}`

// Generate returns the canned payload for the request kind, or a generic
// fallback shape for unknown kinds. Output never depends on the prompt.
func (c *Client) Generate(ctx context.Context, req llm.GenerateRequest) (llm.Result, error) {
	if err := ctx.Err(); err != nil {
		return llm.Result{}, &llm.Error{Kind: llm.KindTimeout, Message: "request aborted", Err: err}
	}

	payload, ok := canned[req.Kind]
	if !ok {
		payload = fallback
	}

	return llm.Result{
		Text: payload,
		JSON: json.RawMessage(payload),
		Raw:  payload,
		Tokens: &llm.TokenUsage{
			PromptTokens:     len(req.Prompt) / 4,
			CompletionTokens: len(payload) / 4,
			TotalTokens:      len(req.Prompt)/4 + len(payload)/4,
		},
		Meta: map[string]string{"provider": "mock"},
	}, nil
}

var _ llm.Client = (*Client)(nil)
