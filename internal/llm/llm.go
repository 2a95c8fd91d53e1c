package llm

import (
	"context"
	"encoding/json"
)

// Client abstracts text-generation providers behind one call.
type Client interface {
	Generate(ctx context.Context, req GenerateRequest) (Result, error)
}

// GenerateRequest captures the inputs for one generation call. Kind is an
// opaque tag chosen by the caller; providers may key canned behavior on it
// but never interpret it otherwise.
type GenerateRequest struct {
	Kind        string
	Prompt      string
	Model       string
	Temperature *float32
	MaxTokens   int
}

// TokenUsage reports provider-side token accounting when available.
type TokenUsage struct {
	PromptTokens     int `json:"promptTokens"`
	CompletionTokens int `json:"completionTokens"`
	TotalTokens      int `json:"totalTokens"`
}

// Result is the normalized output of a generation call. Text is the
// newline-join of all returned candidate contents; JSON is set when Text
// parses as JSON. Content is a pass-through payload and is never inspected
// beyond validity.
type Result struct {
	Text   string
	JSON   json.RawMessage
	Raw    string
	Tokens *TokenUsage
	Meta   map[string]string
}

// PlaceholderClient fills the alternate provider slot. It is an extension
// point only; every call fails with a configuration error.
type PlaceholderClient struct {
	Provider string
}

// Generate always fails; the alternate provider has no working integration.
func (p PlaceholderClient) Generate(ctx context.Context, req GenerateRequest) (Result, error) {
	_ = ctx
	_ = req
	name := p.Provider
	if name == "" {
		name = "alternate"
	}
	return Result{}, &Error{Kind: KindConfiguration, Message: name + " provider is not implemented"}
}

var _ Client = PlaceholderClient{}
