package handlers

import (
	"log/slog"
	"net/http"

	"budget-explorer/internal/dto"
	"budget-explorer/internal/repositories"
	"budget-explorer/internal/services"

	"github.com/labstack/echo/v4"
)

// AdminHandler exposes operational endpoints
type AdminHandler struct {
	repo    repositories.SnapshotRepositoryInterface
	metrics services.MetricsRecorderInterface
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(repo repositories.SnapshotRepositoryInterface, metrics services.MetricsRecorderInterface) *AdminHandler {
	return &AdminHandler{repo: repo, metrics: metrics}
}

// ClearCache drops every cached snapshot and loads the data files again.
// The snapshot cache has no automatic invalidation; this endpoint is the
// only way to pick up files the pipeline rewrote.
//
// Method: POST /api/v1/admin/cache/clear
//
// Success Response: 200 OK
//   - message, years now loaded
//
// Error Responses:
//   - 500: Reload failed; the cache stays empty until the next successful
//     reload, and the health check reports the service degraded
func (h *AdminHandler) ClearCache(c echo.Context) error {
	h.repo.Clear()
	if err := h.repo.Reload(); err != nil {
		slog.Error("snapshot cache reload failed", "error", err.Error())
		return SendSystemError(c, err)
	}

	h.metrics.IncrementCounter("snapshot.reloaded", nil)

	years := h.repo.Years()
	slog.Info("snapshot cache reloaded", "years", len(years))

	return c.JSON(http.StatusOK, SuccessResponse{
		Data: dto.CacheClearResponse{
			Message: "snapshot cache reloaded",
			Years:   years,
		},
	})
}
