package llm

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"jobtrack-backend/internal/shared/telemetry"
)

// Named retry policy defaults. Callers override them via config; the
// constants exist so the chosen budgets are visible in one place.
const (
	DefaultMaxRetries = 2
	DefaultBaseDelay  = 300 * time.Millisecond
	DefaultMaxDelay   = 10 * time.Second
	DefaultTimeout    = 30 * time.Second
)

// RetryPolicy bounds the gateway's retry loop. Zero durations fall back to
// the package defaults. MaxRetries is taken literally: 0 means a single
// attempt with no retries; only a negative value falls back to
// DefaultMaxRetries.
type RetryPolicy struct {
	MaxRetries int
	BaseDelay  time.Duration
	MaxDelay   time.Duration
	Timeout    time.Duration
}

func (p RetryPolicy) normalized() RetryPolicy {
	if p.MaxRetries < 0 {
		p.MaxRetries = DefaultMaxRetries
	}
	if p.BaseDelay <= 0 {
		p.BaseDelay = DefaultBaseDelay
	}
	if p.MaxDelay <= 0 {
		p.MaxDelay = DefaultMaxDelay
	}
	if p.Timeout <= 0 {
		p.Timeout = DefaultTimeout
	}
	return p
}

// Gateway composes a per-attempt timeout and retry-with-backoff around a
// provider client. Route handlers call through it instead of a provider
// directly. Construct one per configuration; there is no package singleton.
type Gateway struct {
	client Client
	policy RetryPolicy
}

// NewGateway wraps the given client with the policy.
func NewGateway(client Client, policy RetryPolicy) *Gateway {
	return &Gateway{
		client: client,
		policy: policy.normalized(),
	}
}

// Generate runs one generation call with up to MaxRetries internal retries
// on timeout/transient failures. Configuration and non-retryable failures
// propagate immediately. Retries are invisible to the caller except as
// latency.
func (g *Gateway) Generate(ctx context.Context, req GenerateRequest) (Result, error) {
	var lastErr error
	attempts := g.policy.MaxRetries + 1

	for attempt := 1; attempt <= attempts; attempt++ {
		callCtx, cancel := context.WithTimeout(ctx, g.policy.Timeout)
		res, err := g.client.Generate(callCtx, req)
		cancel()
		if err == nil {
			return res, nil
		}
		var typed *Error
		if !errors.As(err, &typed) && errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
			err = &Error{Kind: KindTimeout, Message: "generation call timed out", Err: err}
		}
		lastErr = err
		if !Retryable(err) || attempt == attempts {
			break
		}

		delay := backoffDelay(g.policy, attempt)
		telemetry.Warn("llm.retry", map[string]any{
			"kind":     req.Kind,
			"attempt":  attempt,
			"delay_ms": delay.Milliseconds(),
			"error":    err.Error(),
		})
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return Result{}, &Error{Kind: KindTimeout, Message: "canceled while waiting to retry", Err: ctx.Err()}
		}
	}

	return Result{}, lastErr
}

// backoffDelay doubles the base delay per attempt with full jitter, capped
// at MaxDelay to avoid thundering-herd retries against the provider.
func backoffDelay(p RetryPolicy, attempt int) time.Duration {
	delay := p.BaseDelay << (attempt - 1)
	if delay > p.MaxDelay || delay <= 0 {
		delay = p.MaxDelay
	}
	jitter := time.Duration(rand.Int63n(int64(delay) + 1))
	delay += jitter
	if delay > p.MaxDelay {
		delay = p.MaxDelay
	}
	return delay
}
