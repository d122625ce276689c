package services

import (
	"sort"

	"budget-explorer/internal/models"

	"github.com/shopspring/decimal"
)

type prefixGrouper struct{}

// NewPrefixGrouper creates the hierarchy-prefix grouper used by overview
// lists and by drill-down level zero.
func NewPrefixGrouper() PrefixGrouperInterface {
	return &prefixGrouper{}
}

func (g *prefixGrouper) DistinctPrefixes(series models.Series) []string {
	seen := make(map[string]bool)
	prefixes := make([]string, 0)
	for _, item := range series {
		prefix, ok := item.PathPrefix()
		if !ok || seen[prefix] {
			continue
		}
		seen[prefix] = true
		prefixes = append(prefixes, prefix)
	}
	return prefixes
}

func (g *prefixGrouper) Group(series models.Series) models.Series {
	prefixes := g.DistinctPrefixes(series)

	// Grouping adds no value when nothing is nested or everything shares
	// a single ancestor.
	if len(prefixes) <= 1 {
		return series
	}

	totals := make(map[string]decimal.Decimal, len(prefixes))
	for _, p := range prefixes {
		totals[p] = decimal.Zero
	}

	// Items without a usable prefix pass through individually and keep
	// their original relative order below the ranked groups, so
	// unclassified postings stay visually distinct.
	passthrough := make(models.Series, 0)
	for _, item := range series {
		prefix, ok := item.PathPrefix()
		if !ok {
			passthrough = append(passthrough, item)
			continue
		}
		totals[prefix] = totals[prefix].Add(item.Value)
	}

	grouped := make(models.Series, 0, len(prefixes)+len(passthrough))
	for _, p := range prefixes {
		grouped = append(grouped, models.LabeledAmount{Name: p, Value: totals[p]})
	}
	sort.SliceStable(grouped, func(i, j int) bool {
		return grouped[i].Value.GreaterThan(grouped[j].Value)
	})

	return append(grouped, passthrough...)
}
