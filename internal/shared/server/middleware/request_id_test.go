package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestRequestIDEchoesInboundHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestID())
	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, RequestIDFromContext(c))
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-Id", "upstream-123")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Body.String() != "upstream-123" {
		t.Fatalf("expected inbound request id to be reused, got %q", rec.Body.String())
	}
	if rec.Header().Get("X-Request-Id") != "upstream-123" {
		t.Fatalf("expected response header to echo the id")
	}
}

func TestRequestIDDiscardsOversizedHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestID())
	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, RequestIDFromContext(c))
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-Id", strings.Repeat("x", requestIDMaxLen+1))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	got := rec.Body.String()
	if got == "" {
		t.Fatal("expected a generated request id")
	}
	if strings.Contains(got, "xxx") {
		t.Fatalf("oversized inbound id must be replaced, got %q", got)
	}
}
