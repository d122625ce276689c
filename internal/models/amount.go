package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// PathDelimiter separates the ancestor label from the posting detail inside
// an item name, e.g. "DASCO: Cantines" belongs under "DASCO".
const PathDelimiter = ":"

// LabeledAmount is the atomic unit every aggregation operates over.
// Value is a signed amount; zero and negative values are valid (variances).
type LabeledAmount struct {
	Name  string          `json:"name"`
	Value decimal.Decimal `json:"value"`
}

// PathPrefix returns the substring preceding the first delimiter in the
// name. It returns ok=false for flat names and for names whose prefix would
// be empty (a name starting with the delimiter).
func (a LabeledAmount) PathPrefix() (prefix string, ok bool) {
	idx := strings.Index(a.Name, PathDelimiter)
	if idx <= 0 {
		return "", false
	}
	return a.Name[:idx], true
}

// ChildOf reports whether this item is nested under the given key, and if
// so returns the remainder of the name with the key and delimiter stripped.
func (a LabeledAmount) ChildOf(key string) (rest string, ok bool) {
	if key == "" {
		return "", false
	}
	marker := key + PathDelimiter
	if !strings.HasPrefix(a.Name, marker) {
		return "", false
	}
	return strings.TrimSpace(a.Name[len(marker):]), true
}

// Series is an ordered sequence of labeled amounts for one
// (entity, period, category) triple. Treated as immutable once loaded.
type Series []LabeledAmount

// Total sums every value in the series.
func (s Series) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range s {
		total = total.Add(item.Value)
	}
	return total
}

// IsEmpty reports whether the series has no items.
func (s Series) IsEmpty() bool {
	return len(s) == 0
}

// Clone returns an independent copy so callers can sort or truncate
// without mutating the loaded series.
func (s Series) Clone() Series {
	if s == nil {
		return nil
	}
	out := make(Series, len(s))
	copy(out, s)
	return out
}
