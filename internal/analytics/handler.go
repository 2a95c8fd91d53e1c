package analytics

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"jobtrack-backend/internal/llm"
	"jobtrack-backend/internal/shared/server/middleware"
	"jobtrack-backend/internal/shared/server/respond"
	"jobtrack-backend/internal/shared/telemetry"
)

// Handler exposes analytics endpoints.
type Handler struct {
	Svc     *Service
	Gateway *llm.Gateway
	Model   string
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, gateway *llm.Gateway, model string) *Handler {
	return &Handler{Svc: svc, Gateway: gateway, Model: model}
}

// RegisterRoutes attaches analytics routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/analytics/summary", h.summary)
	rg.POST("/analytics/insights", h.insights)
}

func (h *Handler) summary(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	summary, err := h.Svc.Summarize(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to compute analytics", nil)
		return
	}
	respond.JSON(c, http.StatusOK, summary)
}

// insights feeds the computed aggregates through the generation gateway and
// returns the advice directly; nothing is persisted.
func (h *Handler) insights(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	ctx := c.Request.Context()

	summary, err := h.Svc.Summarize(ctx, userID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to compute analytics", nil)
		return
	}
	if summary.TotalJobs == 0 {
		respond.Error(c, http.StatusBadRequest, "validation_error", "no tracked jobs to analyze", nil)
		return
	}

	result, err := h.Gateway.Generate(ctx, llm.GenerateRequest{
		Kind:   "insights",
		Prompt: insightsPrompt(summary),
		Model:  h.Model,
	})
	if err != nil {
		telemetry.Error("analytics.insights_failed", map[string]any{
			"error_kind": string(llm.KindOf(err)),
			"error":      err.Error(),
		})
		if llm.KindOf(err) == llm.KindConfiguration {
			respond.Error(c, http.StatusInternalServerError, "configuration_error", "generation provider is not configured", nil)
			return
		}
		respond.Error(c, http.StatusBadGateway, "upstream_error", "generation provider failed", nil)
		return
	}

	var insights any
	if len(result.JSON) > 0 {
		insights = json.RawMessage(result.JSON)
	} else {
		insights = gin.H{"text": result.Text}
	}
	respond.JSON(c, http.StatusOK, gin.H{
		"summary":  summary,
		"insights": insights,
	})
}

func insightsPrompt(summary Summary) string {
	var b strings.Builder
	b.WriteString("You are a job-search coach. Given the pipeline statistics below, point out patterns and suggest concrete next steps.\n")
	b.WriteString("Respond with JSON only, shaped as {\"observations\": [\"...\"], \"recommendations\": [\"...\"]}.\n\n")
	fmt.Fprintf(&b, "Total tracked jobs: %d\n", summary.TotalJobs)
	fmt.Fprintf(&b, "Status counts: %v\n", summary.StatusCounts)
	fmt.Fprintf(&b, "Response rate: %.2f\n", summary.ResponseRate)
	return b.String()
}
