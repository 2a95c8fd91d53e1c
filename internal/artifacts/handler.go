package artifacts

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"jobtrack-backend/internal/shared/server/middleware"
	"jobtrack-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches artifact routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/artifacts", h.list)
	rg.GET("/artifacts/:id", h.get)
	rg.DELETE("/artifacts/:id", h.delete)
}

type artifactResponse struct {
	ID        string         `json:"id"`
	Kind      string         `json:"kind"`
	JobID     *string        `json:"jobId,omitempty"`
	Content   any            `json:"content"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// ToResponse shapes an artifact for JSON output.
func ToResponse(artifact Artifact) any {
	return artifactResponse{
		ID:        artifact.ID,
		Kind:      string(artifact.Kind),
		JobID:     artifact.JobID,
		Content:   artifact.Content,
		Metadata:  artifact.Metadata,
		CreatedAt: artifact.CreatedAt,
		UpdatedAt: artifact.UpdatedAt,
	}
}

func (h *Handler) list(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	filter := ListFilter{
		JobID:  strings.TrimSpace(c.Query("jobId")),
		Limit:  queryInt(c, "limit", 20),
		Offset: queryInt(c, "offset", 0),
	}
	if raw := strings.TrimSpace(c.Query("kind")); raw != "" {
		kind, err := ParseKind(raw)
		if err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
			return
		}
		filter.Kind = kind
	}

	items, err := h.Svc.List(c.Request.Context(), userID, filter)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list artifacts", nil)
		return
	}

	out := make([]any, 0, len(items))
	for _, item := range items {
		out = append(out, ToResponse(item))
	}
	respond.JSON(c, http.StatusOK, gin.H{"artifacts": out})
}

func (h *Handler) get(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	artifactID := c.Param("id")

	artifact, err := h.Svc.Get(c.Request.Context(), userID, artifactID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound), errors.Is(err, ErrForbidden):
			respond.Error(c, http.StatusNotFound, "not_found", "artifact not found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch artifact", nil)
		}
		return
	}
	c.Set("artifactId", artifact.ID)
	respond.JSON(c, http.StatusOK, ToResponse(artifact))
}

func (h *Handler) delete(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	artifactID := c.Param("id")

	if err := h.Svc.Delete(c.Request.Context(), userID, artifactID); err != nil {
		switch {
		case errors.Is(err, ErrNotFound), errors.Is(err, ErrForbidden):
			respond.Error(c, http.StatusNotFound, "not_found", "artifact not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to delete artifact", nil)
		}
		return
	}
	c.Status(http.StatusNoContent)
}

func queryInt(c *gin.Context, key string, def int) int {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return def
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return val
}
