package dto

import (
	"budget-explorer/internal/models"
)

// Dashboard Request DTOs

// BreakdownParams contains the query parameters for an aggregated breakdown.
// Dimension values are checked against models.IsValidDimension by the
// handler so invalid ones get a dedicated error code.
type BreakdownParams struct {
	Dimension string `query:"dimension" validate:"required"`
}

// VariationParams contains the query parameters for a year-over-year variation ranking
type VariationParams struct {
	Dimension string `query:"dimension" validate:"required"`
	StartYear int    `query:"start" validate:"required,gte=1900,lte=9999"`
	EndYear   int    `query:"end" validate:"required,gte=1900,lte=9999"`
}

// Dashboard Response DTOs

// YearsResponse lists the snapshot years available for exploration, newest first
type YearsResponse struct {
	Years []int `json:"years"`
}

// SankeyResponse carries the flow diagram data for a single budget year
type SankeyResponse struct {
	Year   int                   `json:"year"`
	Totals models.SnapshotTotals `json:"totals"`
	Nodes  []models.SankeyNode   `json:"nodes"`
	Links  []models.SankeyLink   `json:"links"`
}

// BreakdownResponse carries the ranked groups for one dimension of one year
type BreakdownResponse struct {
	Year      int                      `json:"year"`
	Dimension string                   `json:"dimension"`
	Groups    []models.AggregatedGroup `json:"groups"`
}

// VariationResponse carries the ranked year-over-year variations for one dimension
type VariationResponse struct {
	Dimension string                `json:"dimension"`
	StartYear int                   `json:"start_year"`
	EndYear   int                   `json:"end_year"`
	Rows      []models.VariationRow `json:"rows"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status string `json:"status"`
	Years  int    `json:"years"`
}

// CacheClearResponse confirms a manual snapshot cache invalidation
type CacheClearResponse struct {
	Message string `json:"message"`
	Years   []int  `json:"years"`
}
