package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/saferoute/saferoute/internal/api/models"
	"github.com/saferoute/saferoute/internal/api/response"
)

// ReadyCheck probes one dependency for the readiness endpoint.
type ReadyCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

// OpsHandler handles operational endpoints.
type OpsHandler struct {
	version   string
	buildTime string
	checks    []ReadyCheck
}

// NewOpsHandler creates a new OpsHandler.
func NewOpsHandler(version, buildTime string, checks ...ReadyCheck) *OpsHandler {
	return &OpsHandler{
		version:   version,
		buildTime: buildTime,
		checks:    checks,
	}
}

// HealthCheck handles GET /v1/ops/health - liveness check.
func (h *OpsHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	health := models.Health{
		Status: models.HealthStatusOK,
		Time:   time.Now().UTC(),
		Details: map[string]interface{}{
			"version":   h.version,
			"buildTime": h.buildTime,
		},
	}
	response.JSON(w, r, http.StatusOK, health)
}

// ReadinessCheck handles GET /v1/ops/ready - readiness check. It runs every
// registered dependency probe and reports 503 if any of them fail.
func (h *OpsHandler) ReadinessCheck(w http.ResponseWriter, r *http.Request) {
	readiness := models.Readiness{
		Status: models.HealthStatusOK,
		Time:   time.Now().UTC(),
	}

	status := http.StatusOK
	for _, c := range h.checks {
		result := models.ReadinessCheck{Name: c.Name, Status: models.HealthStatusOK}
		if err := c.Check(r.Context()); err != nil {
			result.Status = models.HealthStatusDown
			result.Detail = err.Error()
			readiness.Status = models.HealthStatusDown
			status = http.StatusServiceUnavailable
		}
		readiness.Checks = append(readiness.Checks, result)
	}

	response.JSON(w, r, status, readiness)
}
