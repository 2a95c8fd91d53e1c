package openai

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"jobtrack-backend/internal/llm"
)

const (
	defaultTemperature = float32(0.7)
	defaultMaxTokens   = 2048
)

// Client implements llm.Client using OpenAI chat completions.
type Client struct {
	client *openai.Client
	model  string
}

// NewClient constructs an OpenAI-backed client.
func NewClient(apiKey, model string) (*Client, error) {
	return NewClientWithBaseURL(apiKey, model, "")
}

// NewClientWithBaseURL constructs a client pointed at an alternate API
// endpoint. Used by tests and OpenAI-compatible gateways.
func NewClientWithBaseURL(apiKey, model, baseURL string) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, &llm.Error{Kind: llm.KindConfiguration, Message: "OPENAI_API_KEY is required"}
	}
	if strings.TrimSpace(model) == "" {
		return nil, &llm.Error{Kind: llm.KindConfiguration, Message: "LLM_MODEL is required"}
	}
	cfg := openai.DefaultConfig(apiKey)
	if strings.TrimSpace(baseURL) != "" {
		cfg.BaseURL = baseURL
	}
	return &Client{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}, nil
}

// Generate performs one chat completion call and normalizes the response.
// The per-attempt timeout and retries live in the gateway, not here.
func (c *Client) Generate(ctx context.Context, req llm.GenerateRequest) (llm.Result, error) {
	model := strings.TrimSpace(req.Model)
	if model == "" {
		model = c.model
	}
	temperature := defaultTemperature
	if req.Temperature != nil {
		temperature = *req.Temperature
	}
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: req.Prompt},
		},
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return llm.Result{}, classify(err)
	}
	if len(resp.Choices) == 0 {
		return llm.Result{}, &llm.Error{Kind: llm.KindTransient, Message: "response missing choices"}
	}

	var parts []string
	for _, choice := range resp.Choices {
		if content := strings.TrimSpace(choice.Message.Content); content != "" {
			parts = append(parts, content)
		}
	}
	text := strings.Join(parts, "\n")
	if text == "" {
		return llm.Result{}, &llm.Error{Kind: llm.KindTransient, Message: "response empty content"}
	}

	result := llm.Result{
		Text: text,
		Raw:  text,
		Meta: map[string]string{
			"provider": "openai",
			"model":    resp.Model,
			"id":       resp.ID,
		},
	}
	if json.Valid([]byte(text)) {
		result.JSON = json.RawMessage(text)
	}
	if resp.Usage.TotalTokens > 0 {
		result.Tokens = &llm.TokenUsage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		}
	}
	return result, nil
}

// classify maps transport and API failures onto the typed error taxonomy.
// 429 counts as transient: provider-side rate limiting clears on retry.
func classify(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return &llm.Error{Kind: llm.KindTimeout, Message: "request aborted", Err: err}
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &llm.Error{Kind: llm.KindTimeout, Message: "network timeout", Err: err}
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.HTTPStatusCode >= 500:
			return &llm.Error{Kind: llm.KindTransient, Message: "server error", Err: err}
		case apiErr.HTTPStatusCode == 429:
			return &llm.Error{Kind: llm.KindTransient, Message: "rate limited by provider", Err: err}
		case apiErr.HTTPStatusCode >= 400:
			return &llm.Error{Kind: llm.KindNonRetryable, Message: "request rejected", Err: err}
		}
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		if reqErr.HTTPStatusCode >= 400 && reqErr.HTTPStatusCode < 500 && reqErr.HTTPStatusCode != 429 {
			return &llm.Error{Kind: llm.KindNonRetryable, Message: "request rejected", Err: err}
		}
		return &llm.Error{Kind: llm.KindTransient, Message: "request failed", Err: err}
	}

	// Missing HTTP status implies a network-layer failure.
	return &llm.Error{Kind: llm.KindTransient, Message: "network failure", Err: err}
}

var _ llm.Client = (*Client)(nil)
