package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"budget-explorer/internal/dto"
	apierrors "budget-explorer/internal/errors"
	"budget-explorer/internal/repositories"
	"budget-explorer/internal/services"

	"github.com/labstack/echo/v4"
)

// SnapshotHandler serves the precomputed per-year budget snapshots
type SnapshotHandler struct {
	repo    repositories.SnapshotRepositoryInterface
	metrics services.MetricsRecorderInterface
}

// NewSnapshotHandler creates a new snapshot handler
func NewSnapshotHandler(repo repositories.SnapshotRepositoryInterface, metrics services.MetricsRecorderInterface) *SnapshotHandler {
	return &SnapshotHandler{repo: repo, metrics: metrics}
}

// GetYears lists the budget years available for exploration
//
// Method: GET /api/v1/years
//
// Success Response: 200 OK
//   - years: Array of integers, newest first
func (h *SnapshotHandler) GetYears(c echo.Context) error {
	return c.JSON(http.StatusOK, SuccessResponse{
		Data: dto.YearsResponse{Years: h.repo.Years()},
	})
}

// GetSankey returns the flow diagram data for one budget year
//
// Method: GET /api/v1/sankey/:year
//
// Path parameters:
//   - year: Integer budget year
//
// Success Response: 200 OK
//   - year, totals, nodes, links
//
// Error Responses:
//   - 400: Invalid year format
//   - 404: No snapshot for that year
func (h *SnapshotHandler) GetSankey(c echo.Context) error {
	year, err := parseYearParam(c)
	if err != nil {
		return SendError(c, apierrors.ValidationInvalidYear, apierrors.WithDetails(err.Error()))
	}

	snapshot, err := h.repo.GetSnapshot(year)
	if err != nil {
		if errors.Is(err, repositories.ErrSnapshotNotFound) {
			h.metrics.IncrementCounter("snapshot.cache.miss", nil)
			return SendError(c, apierrors.SnapshotNotFound)
		}
		return SendSystemError(c, err)
	}
	h.metrics.IncrementCounter("snapshot.cache.hit", nil)

	return c.JSON(http.StatusOK, SuccessResponse{
		Data: dto.SankeyResponse{
			Year:   snapshot.Year,
			Totals: snapshot.Totals,
			Nodes:  snapshot.Nodes,
			Links:  snapshot.Links,
		},
	})
}

// GetBalanceSheet returns the flow diagram data for one balance-sheet year
//
// Method: GET /api/v1/bilan/:year
//
// Path parameters:
//   - year: Integer fiscal year
//
// Success Response: 200 OK
//   - year, totals, nodes, links
//
// Error Responses:
//   - 400: Invalid year format
//   - 404: No balance sheet for that year
func (h *SnapshotHandler) GetBalanceSheet(c echo.Context) error {
	year, err := parseYearParam(c)
	if err != nil {
		return SendError(c, apierrors.ValidationInvalidYear, apierrors.WithDetails(err.Error()))
	}

	bilan, err := h.repo.GetBalanceSheet(year)
	if err != nil {
		if errors.Is(err, repositories.ErrSnapshotNotFound) {
			h.metrics.IncrementCounter("snapshot.cache.miss", nil)
			return SendError(c, apierrors.SnapshotNotFound)
		}
		return SendSystemError(c, err)
	}
	h.metrics.IncrementCounter("snapshot.cache.hit", nil)

	return c.JSON(http.StatusOK, SuccessResponse{
		Data: dto.SankeyResponse{
			Year:   bilan.Year,
			Totals: bilan.Totals,
			Nodes:  bilan.Nodes,
			Links:  bilan.Links,
		},
	})
}

// parseYearParam reads and validates the :year path parameter
func parseYearParam(c echo.Context) (int, error) {
	yearParam := c.Param("year")
	year, err := strconv.Atoi(yearParam)
	if err != nil {
		return 0, errors.New("year must be an integer")
	}
	if year < 1900 || year > 9999 {
		return 0, errors.New("year out of range")
	}
	return year, nil
}
