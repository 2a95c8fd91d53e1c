// Package bootstrap builds shared dependencies and wires them into the
// router. cmd binaries stay thin by calling Build.
package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"jobtrack-backend/internal/analytics"
	"jobtrack-backend/internal/artifacts"
	"jobtrack-backend/internal/generate"
	"jobtrack-backend/internal/jobs"
	"jobtrack-backend/internal/llm"
	"jobtrack-backend/internal/llm/mock"
	openaiclient "jobtrack-backend/internal/llm/openai"
	"jobtrack-backend/internal/ratelimit"
	"jobtrack-backend/internal/shared/config"
	"jobtrack-backend/internal/shared/server"
	"jobtrack-backend/internal/shared/storage/db"
	"jobtrack-backend/internal/shared/telemetry"
	"jobtrack-backend/internal/usage"
)

// App holds shared dependencies.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB

	JobsRepo      jobs.Repo
	ArtifactsRepo artifacts.Repo

	JobsService      *jobs.Service
	ArtifactsService *artifacts.Service
	UsageService     *usage.Service
	AnalyticsService *analytics.Service
	Gateway          *llm.Gateway

	JobsHandler      *jobs.Handler
	ArtifactsHandler *artifacts.Handler
	GenerateHandler  *generate.Handler
	UsageHandler     *usage.Handler
	AnalyticsHandler *analytics.Handler
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
	}
	if err := buildServices(app); err != nil {
		return nil, err
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:           app.Config,
		JobsHandler:      app.JobsHandler,
		ArtifactsHandler: app.ArtifactsHandler,
		GenerateHandler:  app.GenerateHandler,
		UsageHandler:     app.UsageHandler,
		AnalyticsHandler: app.AnalyticsHandler,
		Limiter:          ratelimit.New(nil),
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.memory_repos", map[string]any{
				"reason": "DATABASE_URL empty",
			})
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.memory_repos", map[string]any{
				"reason": "database connect failed",
				"error":  err.Error(),
			})
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		sqlDB.Close()
		if isDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.memory_repos", map[string]any{
				"reason": "migrations failed",
				"error":  err.Error(),
			})
			return nil, nil
		}
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return sqlDB, nil
}

func buildServices(app *App) error {
	if app.DB != nil {
		app.JobsRepo = &jobs.PGRepo{DB: app.DB}
		app.ArtifactsRepo = &artifacts.PGRepo{DB: app.DB}
		app.UsageService = usage.NewPostgresService(usage.NewPGStore(app.DB))
	} else {
		app.JobsRepo = jobs.NewMemoryRepo()
		app.ArtifactsRepo = artifacts.NewMemoryRepo()
		app.UsageService = usage.NewService()
	}

	app.JobsService = jobs.NewService(app.JobsRepo)
	app.ArtifactsService = &artifacts.Service{Repo: app.ArtifactsRepo}
	app.AnalyticsService = analytics.NewService(app.JobsRepo)

	client, err := buildLLMClient(app.Config)
	if err != nil {
		return err
	}
	app.Gateway = llm.NewGateway(client, llm.RetryPolicy{
		MaxRetries: app.Config.LLMMaxRetries,
		Timeout:    time.Duration(app.Config.LLMTimeoutSeconds) * time.Second,
	})

	app.JobsHandler = jobs.NewHandler(app.JobsService)
	app.ArtifactsHandler = artifacts.NewHandler(app.ArtifactsService)
	app.GenerateHandler = generate.NewHandler(app.Gateway, app.JobsService, app.ArtifactsService, app.UsageService, app.Config.LLMModel)
	app.UsageHandler = usage.NewHandler(app.UsageService)
	app.AnalyticsHandler = analytics.NewHandler(app.AnalyticsService, app.Gateway, app.Config.LLMModel)
	return nil
}

// buildLLMClient picks the provider. FAKE_AI forces the mock regardless of
// LLM_PROVIDER so local development never needs credentials.
func buildLLMClient(cfg config.Config) (llm.Client, error) {
	if cfg.FakeAI {
		return mock.New(), nil
	}
	switch cfg.LLMProvider {
	case "mock":
		return mock.New(), nil
	case "anthropic":
		return llm.PlaceholderClient{Provider: "anthropic"}, nil
	default:
		client, err := openaiclient.NewClient(cfg.OpenAIAPIKey, cfg.LLMModel)
		if err != nil {
			if isDevLike(cfg.Env) {
				telemetry.Warn("bootstrap.fake_ai_fallback", map[string]any{
					"error": err.Error(),
				})
				return mock.New(), nil
			}
			return nil, err
		}
		return client, nil
	}
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
