package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const readinessTimeout = 2 * time.Second

// Pinger is whatever storage backend the service runs on.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	storage Pinger
}

func NewHealthHandler(storage Pinger) *HealthHandler {
	return &HealthHandler{storage: storage}
}

type healthReport struct {
	Status    string `json:"status"`
	Storage   string `json:"storage,omitempty"`
	LatencyMS int64  `json:"latency_ms,omitempty"`
	Error     string `json:"error,omitempty"`
}

// Liveness never touches storage: a slow database must not get the process restarted.
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, healthReport{Status: "alive"})
}

// Readiness reports 503 until storage answers within readinessTimeout.
func (h *HealthHandler) Readiness(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), readinessTimeout)
	defer cancel()

	start := time.Now()
	err := h.storage.Ping(ctx)
	report := healthReport{Status: "ready", Storage: "ok", LatencyMS: time.Since(start).Milliseconds()}
	if err != nil {
		report.Status, report.Storage, report.Error = "unavailable", "down", err.Error()
		c.JSON(http.StatusServiceUnavailable, report)
		return
	}
	c.JSON(http.StatusOK, report)
}
