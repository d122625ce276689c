package handlers

import (
	"net/http"

	"budget-explorer/internal/dto"
	"budget-explorer/internal/errors"
	"budget-explorer/internal/repositories"

	"github.com/labstack/echo/v4"
)

// HealthCheckHandler handles the health check endpoint
type HealthCheckHandler struct {
	repo repositories.SnapshotRepositoryInterface
}

// NewHealthCheckHandler creates a new health check handler
func NewHealthCheckHandler(repo repositories.SnapshotRepositoryInterface) *HealthCheckHandler {
	return &HealthCheckHandler{repo: repo}
}

// HealthCheck reports liveness. The service is healthy when at least one
// snapshot year is loaded.
//
// Method: GET /health
func (h *HealthCheckHandler) HealthCheck(c echo.Context) error {
	years := h.repo.Years()
	if len(years) == 0 {
		return SendError(c, errors.SystemServiceUnavailable,
			errors.WithDetails("no snapshot data loaded"))
	}

	return c.JSON(http.StatusOK, dto.HealthResponse{
		Status: "healthy",
		Years:  len(years),
	})
}
