package generate

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"jobtrack-backend/internal/artifacts"
	"jobtrack-backend/internal/jobs"
	"jobtrack-backend/internal/llm"
	"jobtrack-backend/internal/shared/metrics"
	"jobtrack-backend/internal/shared/server/middleware"
	"jobtrack-backend/internal/shared/server/respond"
	"jobtrack-backend/internal/shared/telemetry"
	"jobtrack-backend/internal/shared/util"
	"jobtrack-backend/internal/usage"
)

// Handler owns the AI generation endpoints. Every route follows the same
// shape: validate, check quota, build a prompt, call the gateway, persist
// the artifact.
type Handler struct {
	Gateway   *llm.Gateway
	Jobs      *jobs.Service
	Artifacts *artifacts.Service
	Usage     *usage.Service
	Model     string
}

// NewHandler constructs a Handler.
func NewHandler(gateway *llm.Gateway, jobsSvc *jobs.Service, artifactsSvc *artifacts.Service, usageSvc *usage.Service, model string) *Handler {
	return &Handler{
		Gateway:   gateway,
		Jobs:      jobsSvc,
		Artifacts: artifactsSvc,
		Usage:     usageSvc,
		Model:     model,
	}
}

// RegisterRoutes attaches generation routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/generate/resume", h.resume)
	rg.POST("/generate/cover-letter", h.coverLetter)
	rg.POST("/generate/skills", h.skills)
	rg.POST("/generate/company-research", h.companyResearch)
	rg.POST("/generate/match", h.match)
}

func (h *Handler) resume(c *gin.Context) {
	var req ResumeRequest
	if !bindAndValidate(c, &req) {
		return
	}
	job, ok := h.optionalJob(c, req.JobID)
	if !ok {
		return
	}
	h.run(c, artifacts.KindResume, job, resumePrompt(req, job))
}

func (h *Handler) coverLetter(c *gin.Context) {
	var req CoverLetterRequest
	if !bindAndValidate(c, &req) {
		return
	}
	job, ok := h.requiredJob(c, req.JobID)
	if !ok {
		return
	}
	h.run(c, artifacts.KindCoverLetter, job, coverLetterPrompt(req, job))
}

func (h *Handler) skills(c *gin.Context) {
	var req SkillsRequest
	if !bindAndValidate(c, &req) {
		return
	}
	job, ok := h.requiredJob(c, req.JobID)
	if !ok {
		return
	}
	h.run(c, artifacts.KindSkillsOptimization, job, skillsPrompt(req, job))
}

func (h *Handler) companyResearch(c *gin.Context) {
	var req CompanyResearchRequest
	if !bindAndValidate(c, &req) {
		return
	}
	job, ok := h.optionalJob(c, req.JobID)
	if !ok {
		return
	}
	h.run(c, artifacts.KindCompanyResearch, job, companyResearchPrompt(req, job))
}

func (h *Handler) match(c *gin.Context) {
	var req MatchRequest
	if !bindAndValidate(c, &req) {
		return
	}
	job, ok := h.requiredJob(c, req.JobID)
	if !ok {
		return
	}
	h.run(c, artifacts.KindMatch, job, matchPrompt(req, job))
}

type validatable interface {
	Validate() error
}

func bindAndValidate(c *gin.Context, req validatable) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid JSON body", nil)
		return false
	}
	if err := req.Validate(); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		return false
	}
	return true
}

// requiredJob loads the job referenced by the request, writing the error
// response itself when the lookup fails.
func (h *Handler) requiredJob(c *gin.Context, jobID string) (*jobs.Job, bool) {
	userID := middleware.UserIDFromContext(c)
	job, err := h.Jobs.Get(c.Request.Context(), userID, jobID)
	if err != nil {
		switch {
		case errors.Is(err, jobs.ErrNotFound), errors.Is(err, jobs.ErrForbidden):
			respond.Error(c, http.StatusNotFound, "not_found", "job not found", nil)
		case errors.Is(err, jobs.ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch job", nil)
		}
		return nil, false
	}
	return &job, true
}

func (h *Handler) optionalJob(c *gin.Context, jobID string) (*jobs.Job, bool) {
	if jobID == "" {
		return nil, true
	}
	return h.requiredJob(c, jobID)
}

func (h *Handler) run(c *gin.Context, kind artifacts.Kind, job *jobs.Job, prompt string) {
	userID := middleware.UserIDFromContext(c)
	ctx := c.Request.Context()

	ok, u, err := h.Usage.CanConsume(ctx, userID, 1)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to check usage", nil)
		return
	}
	if !ok {
		respond.Error(c, http.StatusTooManyRequests, "quota_exceeded", "monthly generation quota exhausted", map[string]any{
			"limit":    u.Limit,
			"used":     u.Used,
			"resetsAt": u.ResetsAt,
		})
		return
	}

	start := time.Now()
	result, err := h.Gateway.Generate(ctx, llm.GenerateRequest{
		Kind:   string(kind),
		Prompt: prompt,
		Model:  h.Model,
	})
	elapsed := time.Since(start)
	if err != nil {
		metrics.ObserveGeneration(string(kind), "error", elapsed.Seconds())
		h.writeGenerationError(c, kind, err)
		return
	}
	metrics.ObserveGeneration(string(kind), "ok", elapsed.Seconds())
	if result.Tokens != nil {
		metrics.AddTokens(string(kind), result.Tokens.PromptTokens, result.Tokens.CompletionTokens)
	}

	if _, err := h.Usage.Consume(ctx, userID, 1); err != nil {
		if errors.Is(err, usage.ErrLimitReached) {
			respond.Error(c, http.StatusTooManyRequests, "quota_exceeded", "monthly generation quota exhausted", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to record usage", nil)
		return
	}

	content := result.JSON
	if len(content) == 0 {
		content, _ = json.Marshal(gin.H{"text": result.Text})
	}

	metadata := map[string]any{
		"promptHash": util.HashPrompt(prompt),
		"durationMs": elapsed.Milliseconds(),
	}
	for k, v := range result.Meta {
		metadata[k] = v
	}
	if result.Tokens != nil {
		metadata["tokens"] = result.Tokens
	}

	var jobID *string
	if job != nil {
		jobID = &job.ID
		c.Set("jobId", job.ID)
	}
	artifact, err := h.Artifacts.Create(ctx, artifacts.CreateInput{
		UserID:   userID,
		Kind:     kind,
		JobID:    jobID,
		Content:  content,
		Metadata: metadata,
	})
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to persist artifact", nil)
		return
	}
	c.Set("artifactId", artifact.ID)

	respond.Created(c, artifacts.ToResponse(artifact))
}

func (h *Handler) writeGenerationError(c *gin.Context, kind artifacts.Kind, err error) {
	errKind := llm.KindOf(err)
	telemetry.Error("generate.failed", map[string]any{
		"kind":       string(kind),
		"error_kind": string(errKind),
		"error":      err.Error(),
	})
	switch errKind {
	case llm.KindConfiguration:
		respond.Error(c, http.StatusInternalServerError, "configuration_error", "generation provider is not configured", nil)
	default:
		respond.Error(c, http.StatusBadGateway, "upstream_error", "generation provider failed", nil)
	}
}
