package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"jobtrack-backend/internal/analytics"
	"jobtrack-backend/internal/artifacts"
	"jobtrack-backend/internal/generate"
	"jobtrack-backend/internal/jobs"
	"jobtrack-backend/internal/ratelimit"
	"jobtrack-backend/internal/shared/config"
	"jobtrack-backend/internal/shared/server/middleware"
	"jobtrack-backend/internal/shared/server/respond"
	"jobtrack-backend/internal/usage"
)

// Rate-limit groups. Generation endpoints get a stricter budget than the
// rest of the API.
const (
	rateGroupDefault  = "DEFAULT"
	rateGroupGenerate = "GENERATE"
)

// RouterDeps carries everything the router needs; bootstrap builds it.
type RouterDeps struct {
	Config           config.Config
	JobsHandler      *jobs.Handler
	ArtifactsHandler *artifacts.Handler
	GenerateHandler  *generate.Handler
	UsageHandler     *usage.Handler
	AnalyticsHandler *analytics.Handler
	Limiter          *ratelimit.Limiter
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	cfg := deps.Config
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
	)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	limiter := deps.Limiter
	if limiter == nil {
		limiter = ratelimit.New(nil)
	}
	rateCfg := middleware.RateLimitConfig{
		Rules: map[string]middleware.RateLimitRule{
			rateGroupDefault: {
				MaxCalls: 120,
				Window:   time.Minute,
			},
			rateGroupGenerate: {
				MaxCalls: cfg.GenerateRateMax,
				Window:   time.Duration(cfg.GenerateRateWinMS) * time.Millisecond,
			},
		},
		DefaultGroup: rateGroupDefault,
		GroupFor:     rateGroupFor,
		Limiter:      limiter,
	}

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})

	authed := api.Group("", middleware.Identity(), middleware.RateLimit(rateCfg))
	if deps.JobsHandler != nil {
		deps.JobsHandler.RegisterRoutes(authed)
	}
	if deps.ArtifactsHandler != nil {
		deps.ArtifactsHandler.RegisterRoutes(authed)
	}
	if deps.GenerateHandler != nil {
		deps.GenerateHandler.RegisterRoutes(authed)
	}
	if deps.UsageHandler != nil {
		deps.UsageHandler.RegisterRoutes(authed)
	}
	if deps.AnalyticsHandler != nil {
		deps.AnalyticsHandler.RegisterRoutes(authed)
	}
	if cfg.Env == "dev" && deps.UsageHandler != nil {
		dev := authed.Group("/dev")
		deps.UsageHandler.RegisterDevRoutes(dev)
	}

	return r
}

func rateGroupFor(c *gin.Context) string {
	if strings.HasPrefix(c.Request.URL.Path, "/api/v1/generate/") {
		return rateGroupGenerate
	}
	return rateGroupDefault
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
