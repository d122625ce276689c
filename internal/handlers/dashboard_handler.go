package handlers

import (
	"errors"
	"net/http"
	"time"

	"budget-explorer/internal/dto"
	apierrors "budget-explorer/internal/errors"
	"budget-explorer/internal/models"
	"budget-explorer/internal/repositories"
	"budget-explorer/internal/services"

	"github.com/labstack/echo/v4"
)

// DashboardHandler serves the aggregated overview charts: the dimensional
// breakdowns and the year-over-year variation rankings
type DashboardHandler struct {
	repo       repositories.SnapshotRepositoryInterface
	aggregator services.AggregatorInterface
	ranker     services.VariationRankerInterface
	metrics    services.MetricsRecorderInterface
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(
	repo repositories.SnapshotRepositoryInterface,
	aggregator services.AggregatorInterface,
	ranker services.VariationRankerInterface,
	metrics services.MetricsRecorderInterface,
) *DashboardHandler {
	return &DashboardHandler{
		repo:       repo,
		aggregator: aggregator,
		ranker:     ranker,
		metrics:    metrics,
	}
}

// GetBreakdown aggregates the itemized records of one year along a dimension
//
// Method: GET /api/v1/breakdown/:year
//
// Path parameters:
//   - year: Integer budget year
//
// Query parameters:
//   - dimension: "thematique", "chapitre" or "arrondissement" (required)
//
// Success Response: 200 OK
//   - year, dimension, groups (ranked by total descending, with share_pct)
//
// Error Responses:
//   - 400: Invalid year or dimension
//   - 404: No records for that year
func (h *DashboardHandler) GetBreakdown(c echo.Context) error {
	year, err := parseYearParam(c)
	if err != nil {
		return SendError(c, apierrors.ValidationInvalidYear, apierrors.WithDetails(err.Error()))
	}

	var params dto.BreakdownParams
	if err := c.Bind(&params); err != nil {
		return SendError(c, apierrors.ValidationGeneral, apierrors.WithDetails("invalid query parameters"))
	}
	if err := c.Validate(&params); err != nil {
		return err
	}

	if !models.IsValidDimension(params.Dimension) {
		return SendError(c, apierrors.ValidationInvalidDimension,
			apierrors.WithDetails("dimension must be one of: thematique, chapitre, arrondissement"))
	}
	dimension := params.Dimension

	records, err := h.repo.GetRecords(year)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordsNotFound) {
			return SendError(c, apierrors.SnapshotRecordsNotFound)
		}
		return SendSystemError(c, err)
	}

	h.metrics.IncrementCounter("breakdown.requested", map[string]string{"dimension": dimension})

	start := time.Now()
	groups := h.aggregator.Aggregate(records.SeriesBy(dimension), services.KeyByName)
	h.metrics.RecordProcessingTime("breakdown.aggregation", time.Since(start))

	return c.JSON(http.StatusOK, SuccessResponse{
		Data: dto.BreakdownResponse{
			Year:      year,
			Dimension: dimension,
			Groups:    groups,
		},
	})
}

// GetVariations ranks the year-over-year changes along a dimension
//
// Method: GET /api/v1/variations
//
// Query parameters:
//   - dimension: "thematique", "chapitre" or "arrondissement" (required)
//   - start: Integer reference year (required)
//   - end: Integer comparison year (required)
//
// Success Response: 200 OK
//   - dimension, start_year, end_year, rows (largest gain first, largest
//     loss last; delta_pct is null when the starting value was not positive)
//
// Error Responses:
//   - 400: Invalid or missing parameters
//   - 404: No records for one of the years
func (h *DashboardHandler) GetVariations(c echo.Context) error {
	var params dto.VariationParams
	if err := c.Bind(&params); err != nil {
		return SendError(c, apierrors.ValidationGeneral, apierrors.WithDetails("invalid query parameters"))
	}
	if err := c.Validate(&params); err != nil {
		return err
	}

	if !models.IsValidDimension(params.Dimension) {
		return SendError(c, apierrors.ValidationInvalidDimension,
			apierrors.WithDetails("dimension must be one of: thematique, chapitre, arrondissement"))
	}

	startRecords, err := h.repo.GetRecords(params.StartYear)
	if err != nil {
		return h.handleRecordsError(c, err)
	}
	endRecords, err := h.repo.GetRecords(params.EndYear)
	if err != nil {
		return h.handleRecordsError(c, err)
	}

	h.metrics.IncrementCounter("variation.requested", nil)

	startGroups := h.aggregator.Aggregate(startRecords.SeriesBy(params.Dimension), services.KeyByName)
	endGroups := h.aggregator.Aggregate(endRecords.SeriesBy(params.Dimension), services.KeyByName)
	rows := h.ranker.Rank(startGroups, endGroups)

	return c.JSON(http.StatusOK, SuccessResponse{
		Data: dto.VariationResponse{
			Dimension: params.Dimension,
			StartYear: params.StartYear,
			EndYear:   params.EndYear,
			Rows:      rows,
		},
	})
}

func (h *DashboardHandler) handleRecordsError(c echo.Context, err error) error {
	if errors.Is(err, repositories.ErrRecordsNotFound) {
		return SendError(c, apierrors.SnapshotRecordsNotFound)
	}
	return SendSystemError(c, err)
}
