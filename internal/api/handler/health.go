package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/storefront/commerce-api/internal/api/response"
)

const (
	readinessTimeout = 3 * time.Second
	msgUnavailable   = "Service unavailable"
)

// HealthHandler handles GET /health, the liveness probe.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// Liveness godoc
//
// @Summary  Liveness probe
// @Tags     health
// @Produce  json
// @Success  200  {object}  response.Envelope{object=map[string]string}
// @Router   /health [get]
func (h *HealthHandler) Liveness(c echo.Context) error {
	return response.Success(c, http.StatusOK, "OK", map[string]string{
		"status": "ok",
	})
}

// Check is a named dependency probe.
type Check struct {
	Name string
	Ping func(context.Context) error
}

// ReadinessHandler handles GET /health/ready.
// Every configured dependency must answer before the service reports ready.
type ReadinessHandler struct {
	checks []Check
}

func NewReadinessHandler(checks ...Check) *ReadinessHandler {
	return &ReadinessHandler{checks: checks}
}

type dependencyStatus struct {
	Status string `json:"status"`
}

type readinessResponse struct {
	Status       string                      `json:"status"`
	Dependencies map[string]dependencyStatus `json:"dependencies"`
}

// Readiness godoc
//
// @Summary  Readiness probe
// @Tags     health
// @Produce  json
// @Success  200  {object}  response.Envelope{object=readinessResponse}
// @Failure  503  {object}  response.Envelope
// @Router   /health/ready [get]
func (h *ReadinessHandler) Readiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), readinessTimeout)
	defer cancel()

	deps := make(map[string]dependencyStatus, len(h.checks))
	var failures []string

	for _, check := range h.checks {
		if err := check.Ping(ctx); err != nil {
			failures = append(failures, check.Name+": "+err.Error())
			continue
		}
		deps[check.Name] = dependencyStatus{Status: "ok"}
	}

	// Failure envelopes carry no object, so the reasons name each dependency.
	if len(failures) > 0 {
		e := response.NewError(http.StatusServiceUnavailable, msgUnavailable, failures...)
		return c.JSON(e.Status, e.Envelope())
	}

	return response.Success(c, http.StatusOK, "Ready", readinessResponse{
		Status:       "ok",
		Dependencies: deps,
	})
}
