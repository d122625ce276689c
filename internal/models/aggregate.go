package models

import "github.com/shopspring/decimal"

// AggregatedGroup is one ranked summary row of a dimensional breakdown.
// Groups are always derived from a source series and never mutated in
// place; they are recomputed whenever the series or dimension changes.
type AggregatedGroup struct {
	Key      string          `json:"key"`
	Total    decimal.Decimal `json:"total"`
	Count    int             `json:"count"`
	SharePct float64         `json:"share_pct"`
}

// VariationRow compares one category across two reference periods.
type VariationRow struct {
	Key        string          `json:"key"`
	StartValue decimal.Decimal `json:"start_value"`
	EndValue   decimal.Decimal `json:"end_value"`
	Delta      decimal.Decimal `json:"delta"`
	// DeltaPct is nil when the start value is not strictly positive.
	// Clients render the nil case as "N/A", never as an infinity.
	DeltaPct *float64 `json:"delta_pct"`
}
