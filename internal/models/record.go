package models

import "github.com/shopspring/decimal"

// Breakdown dimensions supported by the itemized records.
const (
	DimensionThematique     = "thematique"
	DimensionChapitre       = "chapitre"
	DimensionArrondissement = "arrondissement"
)

// BudgetRecord is one itemized posting enriched by the pipeline with the
// semantic dimensions the overview charts group by.
type BudgetRecord struct {
	Name           string          `json:"name"`
	Value          decimal.Decimal `json:"value"`
	Thematique     string          `json:"thematique"`
	Chapitre       string          `json:"chapitre"`
	Arrondissement string          `json:"arrondissement"`
}

// Dimension returns the record's label for the given dimension name.
// Unknown labels fall back to "Autre" the same way the pipeline does.
func (r BudgetRecord) Dimension(name string) string {
	var v string
	switch name {
	case DimensionThematique:
		v = r.Thematique
	case DimensionChapitre:
		v = r.Chapitre
	case DimensionArrondissement:
		v = r.Arrondissement
	}
	if v == "" {
		return "Autre"
	}
	return v
}

// RecordSet is every itemized record for one period.
type RecordSet []BudgetRecord

// SeriesBy projects the records onto a series keyed by the given
// dimension, ready for aggregation.
func (rs RecordSet) SeriesBy(dimension string) Series {
	series := make(Series, 0, len(rs))
	for _, r := range rs {
		series = append(series, LabeledAmount{Name: r.Dimension(dimension), Value: r.Value})
	}
	return series
}

// IsValidDimension reports whether the given name is a known breakdown
// dimension.
func IsValidDimension(name string) bool {
	switch name {
	case DimensionThematique, DimensionChapitre, DimensionArrondissement:
		return true
	}
	return false
}
