package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBudgetSnapshot_CentralNode(t *testing.T) {
	snap := BudgetSnapshot{
		Nodes: []SankeyNode{
			{Name: "Impôts & Taxes", Category: NodeCategoryRevenue},
			{Name: "Budget Paris", Category: NodeCategoryCentral},
			{Name: "Éducation", Category: NodeCategoryExpense},
		},
	}

	assert.Equal(t, "Budget Paris", snap.CentralNode())
	assert.Empty(t, (&BudgetSnapshot{}).CentralNode())
}

func TestDrilldownData_SeriesFor(t *testing.T) {
	data := DrilldownData{
		"revenue":  {"Impôts & Taxes": {amount("Fiscalité Directe: TH", 10)}},
		"expenses": {"Éducation": {amount("DASCO: Cantines", 100)}},
	}

	// The budget export pluralizes the expense side key.
	require.Len(t, data.SeriesFor(CategoryTag(NodeCategoryExpense), "Éducation"), 1)
	require.Len(t, data.SeriesFor(CategoryTag(NodeCategoryRevenue), "Impôts & Taxes"), 1)
	assert.Nil(t, data.SeriesFor(CategoryTag(NodeCategoryExpense), "Inconnu"))
	assert.Nil(t, data.SeriesFor(CategoryTag(NodeCategoryActif), "Éducation"))
}

func TestDrilldownData_SeriesFor_BalanceSheetSides(t *testing.T) {
	data := DrilldownData{
		"actif":  {"Immobilisations (Actif)": {amount("Bâtiments scolaires", 400)}},
		"passif": {"Dettes financières (Passif)": {amount("Emprunt obligataire", 250)}},
	}

	require.Len(t, data.SeriesFor(CategoryTag(NodeCategoryActif), "Immobilisations (Actif)"), 1)
	require.Len(t, data.SeriesFor(CategoryTag(NodeCategoryPassif), "Dettes financières (Passif)"), 1)
	assert.Nil(t, data.SeriesFor(CategoryTag(NodeCategoryRevenue), "Immobilisations (Actif)"))
}

func TestBudgetSnapshot_UnmarshalPipelineExport(t *testing.T) {
	raw := `{
		"year": 2024,
		"totals": {"recettes": 1000, "depenses": 900, "solde": 100},
		"nodes": [
			{"name": "Impôts & Taxes", "category": "revenue"},
			{"name": "Budget Paris", "category": "central"},
			{"name": "Éducation", "category": "expense"}
		],
		"links": [
			{"source": "Impôts & Taxes", "target": "Budget Paris", "value": 1000},
			{"source": "Budget Paris", "target": "Éducation", "value": 900}
		],
		"drilldown": {
			"revenue": {"Impôts & Taxes": [{"name": "Fiscalité Directe: TH", "value": 1000}]},
			"expenses": {"Éducation": [{"name": "DASCO: Cantines", "value": 900}]}
		}
	}`

	var snap BudgetSnapshot
	require.NoError(t, json.Unmarshal([]byte(raw), &snap))
	assert.Equal(t, 2024, snap.Year)
	assert.Equal(t, "Budget Paris", snap.CentralNode())
	require.Len(t, snap.Links, 2)
	require.Len(t, snap.Drilldown["expenses"]["Éducation"], 1)
	assert.True(t, snap.Totals["solde"].Equal(decimal.NewFromInt(100)))

	node, ok := snap.FindNode("Éducation")
	require.True(t, ok)
	assert.Equal(t, NodeCategoryExpense, node.Category)
}

func TestBudgetSnapshot_UnmarshalBilanExport(t *testing.T) {
	raw := `{
		"year": 2023,
		"totals": {"actif_net": 42000, "passif_net": 42000, "ecart_equilibre": 0, "fonds_propres": 30000, "dette_totale": 12000},
		"nodes": [
			{"name": "Immobilisations (Actif)", "category": "actif"},
			{"name": "Patrimoine Paris", "category": "central"},
			{"name": "Fonds propres (Passif)", "category": "passif"}
		],
		"links": [
			{"source": "Immobilisations (Actif)", "target": "Patrimoine Paris", "value": 42000},
			{"source": "Patrimoine Paris", "target": "Fonds propres (Passif)", "value": 30000}
		],
		"drilldown": {
			"actif": {"Immobilisations (Actif)": [{"name": "Bâtiments scolaires", "value": 15000}]},
			"passif": {"Fonds propres (Passif)": [{"name": "Réserves", "value": 20000}]}
		}
	}`

	var snap BudgetSnapshot
	require.NoError(t, json.Unmarshal([]byte(raw), &snap))
	assert.Equal(t, 2023, snap.Year)
	assert.Equal(t, "Patrimoine Paris", snap.CentralNode())
	assert.True(t, snap.Totals["actif_net"].Equal(decimal.NewFromInt(42000)))

	node, ok := snap.FindNode("Fonds propres (Passif)")
	require.True(t, ok)
	assert.Equal(t, NodeCategoryPassif, node.Category)
	require.Len(t, snap.Drilldown.SeriesFor(CategoryTag(node.Category), node.Name), 1)
}

func TestRecordSet_SeriesBy(t *testing.T) {
	records := RecordSet{
		{Name: "Assoc A", Value: dec(100), Thematique: "Culture", Arrondissement: "75011"},
		{Name: "Assoc B", Value: dec(50), Thematique: "Sport"},
		{Name: "Assoc C", Value: dec(25)},
	}

	series := records.SeriesBy(DimensionThematique)
	require.Len(t, series, 3)
	assert.Equal(t, "Culture", series[0].Name)
	assert.Equal(t, "Autre", series[2].Name)

	byDistrict := records.SeriesBy(DimensionArrondissement)
	assert.Equal(t, "75011", byDistrict[0].Name)
	assert.Equal(t, "Autre", byDistrict[1].Name)
}

func TestIsValidDimension(t *testing.T) {
	assert.True(t, IsValidDimension(DimensionThematique))
	assert.True(t, IsValidDimension(DimensionChapitre))
	assert.True(t, IsValidDimension(DimensionArrondissement))
	assert.False(t, IsValidDimension("nature"))
	assert.False(t, IsValidDimension(""))
}
