package health

import (
	"errors"
	"net/http"
	"sync/atomic"

	commonhttp "github.com/sovr-labs/go-fp-clearing/internal/common/http"

	"github.com/labstack/echo/v4"
)

type healthHandler struct{}

// New health handler will initialize the health/ resources endpoint
func New(app *echo.Group) {
	hh := healthHandler{}
	health := app.Group("/health")
	health.GET("", hh.healthCheck)
}

type (
	DoHealthCheckLivenessResponse struct {
		Kind   string `json:"kind" example:"health"`
		Status string `json:"status" example:"server is up and running"`
	}
)

// healthCheck godoc
// @Summary 	Get the status of server
// @Description	Get the status of server
// @Tags		Health
// @Produce		json
// @Success 200 {object} DoHealthCheckLivenessResponse "server is up"
// @Router /health [get]
func (hh healthHandler) healthCheck(c echo.Context) error {
	return commonhttp.RestSuccessResponse(c, http.StatusOK, DoHealthCheckLivenessResponse{
		Kind:   "health",
		Status: "server is up and running",
	})
}

var ErrShuttingDown = errors.New("server is shutting down")

// HealthCheck is the readiness probe of a worker process. It starts ready and
// reports 503 once Shutdown is called so the orchestrator stops routing to it
// while in-flight messages drain.
type HealthCheck struct {
	down atomic.Bool
}

func NewHealthCheck() *HealthCheck {
	return &HealthCheck{}
}

func (h *HealthCheck) Route(group *echo.Group) {
	group.GET("", h.check)
}

func (h *HealthCheck) Shutdown() {
	h.down.Store(true)
}

func (h *HealthCheck) check(c echo.Context) error {
	if h.down.Load() {
		return commonhttp.RestErrorResponse(c, http.StatusServiceUnavailable, ErrShuttingDown)
	}
	return commonhttp.RestSuccessResponse(c, http.StatusOK, DoHealthCheckLivenessResponse{
		Kind:   "health",
		Status: "server is up and running",
	})
}
