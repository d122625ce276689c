package models

import "github.com/shopspring/decimal"

// Node categories used by the flow diagram snapshots. "central" marks the
// single hub node every left-side flow enters and every right-side flow
// leaves. The budget view uses revenue/expense, the balance-sheet view
// actif/passif.
const (
	NodeCategoryRevenue = "revenue"
	NodeCategoryCentral = "central"
	NodeCategoryExpense = "expense"
	NodeCategoryActif   = "actif"
	NodeCategoryPassif  = "passif"
)

// SankeyNode is one node of the flow diagram.
type SankeyNode struct {
	Name     string `json:"name"`
	Category string `json:"category"`
}

// SankeyLink is one flow between two nodes.
type SankeyLink struct {
	Source string          `json:"source"`
	Target string          `json:"target"`
	Value  decimal.Decimal `json:"value"`
}

// SnapshotTotals carries the period totals precomputed by the pipeline,
// keyed as the export writes them: recettes/depenses/solde for the budget,
// actif_net/passif_net and friends for the balance sheet. Totals pass
// through to clients verbatim.
type SnapshotTotals map[string]decimal.Decimal

// DrilldownData maps each side of the diagram to its nodes' itemized
// postings. The side keys come from the export pipeline: the balance sheet
// uses the node categories themselves ("actif"/"passif"), the budget
// export writes "revenue" and the pluralized "expenses".
type DrilldownData map[string]map[string]Series

// SeriesFor returns the postings behind a node on the given side, or an
// empty series when the node has no drill-down data.
func (d DrilldownData) SeriesFor(category CategoryTag, node string) Series {
	if side, ok := d[string(category)]; ok {
		return side[node]
	}
	// The budget export stores the expense side under "expenses" while
	// its nodes carry the singular "expense" category.
	if string(category) == NodeCategoryExpense {
		return d["expenses"][node]
	}
	return nil
}

// BudgetSnapshot is one precomputed per-year flow-diagram export consumed
// by the dashboard, either the budget view or the balance-sheet view.
// Shapes follow the static JSON the pipeline writes; nothing in here is
// computed live against open-data APIs.
type BudgetSnapshot struct {
	Year      int            `json:"year"`
	Totals    SnapshotTotals `json:"totals"`
	Nodes     []SankeyNode   `json:"nodes"`
	Links     []SankeyLink   `json:"links"`
	Drilldown DrilldownData  `json:"drilldown"`
}

// CentralNode returns the name of the diagram's hub node, or "" when the
// snapshot has none.
func (s *BudgetSnapshot) CentralNode() string {
	for _, n := range s.Nodes {
		if n.Category == NodeCategoryCentral {
			return n.Name
		}
	}
	return ""
}

// FindNode returns the node with the given name.
func (s *BudgetSnapshot) FindNode(name string) (SankeyNode, bool) {
	for _, n := range s.Nodes {
		if n.Name == name {
			return n, true
		}
	}
	return SankeyNode{}, false
}
