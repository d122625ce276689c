package services

import (
	"sort"

	"budget-explorer/internal/models"

	"github.com/shopspring/decimal"
)

// KeyByName groups items by their full name.
func KeyByName(a models.LabeledAmount) string {
	return a.Name
}

// KeyByPathPrefix groups nested items under their ancestor label; flat
// items keep their own name as key.
func KeyByPathPrefix(a models.LabeledAmount) string {
	if prefix, ok := a.PathPrefix(); ok {
		return prefix
	}
	return a.Name
}

type aggregationService struct{}

// NewAggregationService creates the dimensional breakdown aggregator.
func NewAggregationService() AggregatorInterface {
	return &aggregationService{}
}

// Aggregate is a pure function: it never mutates the input series and
// recomputes every group from scratch on each call.
func (s *aggregationService) Aggregate(series models.Series, keyOf KeyFunc) []models.AggregatedGroup {
	groups := make([]models.AggregatedGroup, 0, len(series))
	if len(series) == 0 {
		return groups
	}

	index := make(map[string]int, len(series))
	for _, item := range series {
		key := keyOf(item)
		i, seen := index[key]
		if !seen {
			index[key] = len(groups)
			groups = append(groups, models.AggregatedGroup{Key: key, Total: decimal.Zero})
			i = len(groups) - 1
		}
		groups[i].Total = groups[i].Total.Add(item.Value)
		groups[i].Count++
	}

	// Stable sort keeps first-seen key order on equal totals.
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Total.GreaterThan(groups[j].Total)
	})

	sum := series.Total()
	if !sum.IsZero() {
		hundred := decimal.NewFromInt(100)
		for i := range groups {
			groups[i].SharePct = groups[i].Total.Mul(hundred).Div(sum).InexactFloat64()
		}
	}

	return groups
}
