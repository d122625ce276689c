package services

import (
	"sort"

	"budget-explorer/internal/models"

	"github.com/shopspring/decimal"
)

type variationRanker struct{}

// NewVariationRanker creates the period-over-period variation ranker.
func NewVariationRanker() VariationRankerInterface {
	return &variationRanker{}
}

func (r *variationRanker) Rank(start, end []models.AggregatedGroup) []models.VariationRow {
	startVals := make(map[string]decimal.Decimal, len(start))
	endVals := make(map[string]decimal.Decimal, len(end))

	// Union of keys from both snapshots, never dropping a key that only
	// exists on one side: the missing side counts as zero.
	keys := make([]string, 0, len(start)+len(end))
	for _, g := range start {
		if _, dup := startVals[g.Key]; !dup {
			keys = append(keys, g.Key)
		}
		startVals[g.Key] = g.Total
	}
	for _, g := range end {
		if _, known := startVals[g.Key]; !known {
			if _, dup := endVals[g.Key]; !dup {
				keys = append(keys, g.Key)
			}
		}
		endVals[g.Key] = g.Total
	}

	gains := make([]models.VariationRow, 0, len(keys))
	losses := make([]models.VariationRow, 0)
	for _, key := range keys {
		row := models.VariationRow{
			Key:        key,
			StartValue: startVals[key],
			EndValue:   endVals[key],
		}
		row.Delta = row.EndValue.Sub(row.StartValue)
		if row.StartValue.IsPositive() {
			pct := row.Delta.Mul(decimal.NewFromInt(100)).Div(row.StartValue).InexactFloat64()
			row.DeltaPct = &pct
		}
		if row.Delta.IsNegative() {
			losses = append(losses, row)
		} else {
			gains = append(gains, row)
		}
	}

	// Winners then losers: largest gain first, largest loss last. Equal
	// deltas rank the smaller starting value first, so brand-new
	// categories lead their tie group.
	sort.SliceStable(gains, func(i, j int) bool {
		if !gains[i].Delta.Equal(gains[j].Delta) {
			return gains[i].Delta.GreaterThan(gains[j].Delta)
		}
		return gains[i].StartValue.LessThan(gains[j].StartValue)
	})
	sort.SliceStable(losses, func(i, j int) bool {
		if !losses[i].Delta.Equal(losses[j].Delta) {
			return losses[i].Delta.LessThan(losses[j].Delta)
		}
		return losses[i].StartValue.LessThan(losses[j].StartValue)
	})

	return append(gains, losses...)
}
