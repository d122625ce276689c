package handlers

import (
	"sort"
	"time"

	"budget-explorer/internal/models"
	"budget-explorer/internal/repositories"

	"github.com/shopspring/decimal"
)

// fakeSnapshotRepo is an in-memory stand-in for the file-backed repository.
type fakeSnapshotRepo struct {
	snapshots map[int]*models.BudgetSnapshot
	bilans    map[int]*models.BudgetSnapshot
	records   map[int]models.RecordSet

	// onDisk stands in for the data directory: Reload copies it into the
	// live maps so tests can observe a clear-then-reload cycle.
	onDisk    map[int]*models.BudgetSnapshot
	reloadErr error
	reloads   int
	clears    int
}

func newFakeSnapshotRepo() *fakeSnapshotRepo {
	return &fakeSnapshotRepo{
		snapshots: make(map[int]*models.BudgetSnapshot),
		bilans:    make(map[int]*models.BudgetSnapshot),
		records:   make(map[int]models.RecordSet),
	}
}

func (r *fakeSnapshotRepo) GetSnapshot(year int) (*models.BudgetSnapshot, error) {
	s, ok := r.snapshots[year]
	if !ok {
		return nil, repositories.ErrSnapshotNotFound
	}
	return s, nil
}

func (r *fakeSnapshotRepo) GetBalanceSheet(year int) (*models.BudgetSnapshot, error) {
	b, ok := r.bilans[year]
	if !ok {
		return nil, repositories.ErrSnapshotNotFound
	}
	return b, nil
}

func (r *fakeSnapshotRepo) GetRecords(year int) (models.RecordSet, error) {
	rs, ok := r.records[year]
	if !ok {
		return nil, repositories.ErrRecordsNotFound
	}
	return rs, nil
}

func (r *fakeSnapshotRepo) Years() []int {
	years := make([]int, 0, len(r.snapshots))
	for y := range r.snapshots {
		years = append(years, y)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years
}

func (r *fakeSnapshotRepo) Clear() {
	r.clears++
	r.snapshots = make(map[int]*models.BudgetSnapshot)
	r.bilans = make(map[int]*models.BudgetSnapshot)
	r.records = make(map[int]models.RecordSet)
}

func (r *fakeSnapshotRepo) Reload() error {
	r.reloads++
	if r.reloadErr != nil {
		return r.reloadErr
	}
	for year, snapshot := range r.onDisk {
		r.snapshots[year] = snapshot
	}
	return nil
}

// nopMetrics records nothing; counter names are still tracked so tests can
// assert which metrics a handler touched.
type nopMetrics struct {
	counters map[string]int
}

func newNopMetrics() *nopMetrics {
	return &nopMetrics{counters: make(map[string]int)}
}

func (m *nopMetrics) IncrementCounter(name string, tags map[string]string) {
	m.counters[name]++
}

func (m *nopMetrics) RecordProcessingTime(name string, duration time.Duration) {}

func (m *nopMetrics) RecordGauge(name string, value float64, tags map[string]string) {}

func dec(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func amount(name string, v int64) models.LabeledAmount {
	return models.LabeledAmount{Name: name, Value: dec(v)}
}

// testSnapshot builds the small but fully formed snapshot fixture the
// handler suites share.
func testSnapshot(year int) *models.BudgetSnapshot {
	return &models.BudgetSnapshot{
		Year: year,
		Totals: models.SnapshotTotals{
			"recettes": dec(400),
			"depenses": dec(380),
			"solde":    dec(20),
		},
		Nodes: []models.SankeyNode{
			{Name: "Impôts locaux", Category: models.NodeCategoryRevenue},
			{Name: "Budget Paris", Category: models.NodeCategoryCentral},
			{Name: "Éducation", Category: models.NodeCategoryExpense},
			{Name: "Culture", Category: models.NodeCategoryExpense},
		},
		Links: []models.SankeyLink{
			{Source: "Impôts locaux", Target: "Budget Paris", Value: dec(400)},
			{Source: "Budget Paris", Target: "Éducation", Value: dec(180)},
			{Source: "Budget Paris", Target: "Culture", Value: dec(200)},
		},
		Drilldown: models.DrilldownData{
			"revenue": {
				"Impôts locaux": {
					amount("Taxe foncière", 250),
					amount("Taxe d'habitation", 150),
				},
			},
			"expenses": {
				"Éducation": {
					amount("DASCO: Cantines", 100),
					amount("DASCO: Périscolaire", 50),
					amount("DJS: Sport scolaire", 30),
				},
			},
		},
	}
}

// testBalanceSheet builds the balance-sheet counterpart of testSnapshot.
func testBalanceSheet(year int) *models.BudgetSnapshot {
	return &models.BudgetSnapshot{
		Year: year,
		Totals: models.SnapshotTotals{
			"actif_net":  dec(4200),
			"passif_net": dec(4200),
		},
		Nodes: []models.SankeyNode{
			{Name: "Immobilisations (Actif)", Category: models.NodeCategoryActif},
			{Name: "Patrimoine Paris", Category: models.NodeCategoryCentral},
			{Name: "Fonds propres (Passif)", Category: models.NodeCategoryPassif},
		},
		Links: []models.SankeyLink{
			{Source: "Immobilisations (Actif)", Target: "Patrimoine Paris", Value: dec(4200)},
			{Source: "Patrimoine Paris", Target: "Fonds propres (Passif)", Value: dec(3000)},
		},
		Drilldown: models.DrilldownData{
			"actif": {
				"Immobilisations (Actif)": {
					amount("Bâtiments scolaires", 2500),
					amount("Voirie", 1700),
				},
			},
			"passif": {
				"Fonds propres (Passif)": {
					amount("Réserves", 2000),
					amount("Résultat de l'exercice", 1000),
				},
			},
		},
	}
}

func testRecords() models.RecordSet {
	return models.RecordSet{
		{Name: "Subvention A", Value: dec(100), Thematique: "Culture", Chapitre: "65", Arrondissement: "75001"},
		{Name: "Subvention B", Value: dec(300), Thematique: "Sport", Chapitre: "65", Arrondissement: "75011"},
		{Name: "Subvention C", Value: dec(50), Thematique: "Culture", Chapitre: "67", Arrondissement: "75011"},
	}
}
