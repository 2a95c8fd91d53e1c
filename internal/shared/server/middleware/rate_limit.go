package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"jobtrack-backend/internal/ratelimit"
)

const defaultRateLimitGroup = "DEFAULT"

// RateLimitRule bounds calls per trailing window for one group.
type RateLimitRule struct {
	MaxCalls int
	Window   time.Duration
}

// RateLimitConfig wires a limiter and per-group rules into the middleware.
type RateLimitConfig struct {
	Rules        map[string]RateLimitRule
	DefaultGroup string
	GroupFor     func(*gin.Context) string
	Limiter      *ratelimit.Limiter
}

// RateLimit rejects requests exceeding the matched group's rule with a 429
// and a Retry-After header. Requests without a matching rule pass through.
func RateLimit(cfg RateLimitConfig) gin.HandlerFunc {
	if cfg.Limiter == nil {
		cfg.Limiter = ratelimit.New(nil)
	}
	if cfg.DefaultGroup == "" {
		cfg.DefaultGroup = defaultRateLimitGroup
	}
	return func(c *gin.Context) {
		group := cfg.DefaultGroup
		if cfg.GroupFor != nil {
			if g := strings.TrimSpace(cfg.GroupFor(c)); g != "" {
				group = g
			}
		}
		rule, ok := cfg.Rules[group]
		if !ok {
			c.Next()
			return
		}
		principal := strings.TrimSpace(UserIDFromContext(c))
		if principal == "" {
			principal = strings.TrimSpace(c.ClientIP())
		}
		key := group + ":" + principal
		decision := cfg.Limiter.Check(key, rule.MaxCalls, rule.Window)
		if decision.OK {
			c.Next()
			return
		}
		retryAfterSec := decision.RetryAfterSeconds()
		if retryAfterSec <= 0 {
			retryAfterSec = 1
		}
		c.Header("Retry-After", strconv.Itoa(retryAfterSec))
		c.JSON(http.StatusTooManyRequests, gin.H{
			"error":         "rate_limited",
			"retryAfterSec": retryAfterSec,
		})
		c.Abort()
	}
}
