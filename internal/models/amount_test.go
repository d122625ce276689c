package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLabeledAmount_PathPrefix(t *testing.T) {
	tests := []struct {
		name       string
		itemName   string
		wantPrefix string
		wantOK     bool
	}{
		{
			name:       "nested name",
			itemName:   "DASCO: Cantines",
			wantPrefix: "DASCO",
			wantOK:     true,
		},
		{
			name:     "flat name",
			itemName: "Autre",
			wantOK:   false,
		},
		{
			name:     "name starting with delimiter yields no prefix",
			itemName: ": Cantines",
			wantOK:   false,
		},
		{
			name:       "only first delimiter counts",
			itemName:   "DASCO: Cantines: Est",
			wantPrefix: "DASCO",
			wantOK:     true,
		},
		{
			name:     "empty name",
			itemName: "",
			wantOK:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := LabeledAmount{Name: tt.itemName, Value: decimal.NewFromInt(1)}
			prefix, ok := item.PathPrefix()
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantPrefix, prefix)
		})
	}
}

func TestLabeledAmount_ChildOf(t *testing.T) {
	item := LabeledAmount{Name: "DASCO: Cantines", Value: decimal.NewFromInt(100)}

	rest, ok := item.ChildOf("DASCO")
	require.True(t, ok)
	assert.Equal(t, "Cantines", rest)

	_, ok = item.ChildOf("DJS")
	assert.False(t, ok)

	_, ok = item.ChildOf("")
	assert.False(t, ok)
}

func TestSeries_Total(t *testing.T) {
	series := Series{
		{Name: "A", Value: decimal.NewFromInt(100)},
		{Name: "B", Value: decimal.NewFromInt(-30)},
		{Name: "C", Value: decimal.Zero},
	}

	assert.True(t, series.Total().Equal(decimal.NewFromInt(70)))
	assert.True(t, Series{}.Total().IsZero())
}

func TestSeries_Clone(t *testing.T) {
	series := Series{
		{Name: "A", Value: decimal.NewFromInt(1)},
		{Name: "B", Value: decimal.NewFromInt(2)},
	}

	clone := series.Clone()
	clone[0].Name = "mutated"

	assert.Equal(t, "A", series[0].Name)
	assert.Nil(t, Series(nil).Clone())
}

func TestSeries_UnmarshalJSON(t *testing.T) {
	raw := `[{"name":"DASCO: Cantines","value":100.5},{"name":"Autre","value":-10}]`

	var series Series
	require.NoError(t, json.Unmarshal([]byte(raw), &series))
	require.Len(t, series, 2)
	assert.Equal(t, "DASCO: Cantines", series[0].Name)
	assert.True(t, series[0].Value.Equal(decimal.NewFromFloat(100.5)))
	assert.True(t, series[1].Value.IsNegative())
}
