package services

import (
	"log/slog"

	"budget-explorer/internal/models"
)

type clickRouter struct {
	drilldown DrilldownServiceInterface
}

// NewClickRouter creates the stateless translator from diagram click
// events to drill-down transitions. Everything it needs is re-derived from
// the snapshot's node and link metadata on every call.
func NewClickRouter(drilldown DrilldownServiceInterface) ClickRouterInterface {
	return &clickRouter{drilldown: drilldown}
}

func (r *clickRouter) RouteNodeClick(snapshot *models.BudgetSnapshot, nodeName string) (*DrilldownSession, bool) {
	node, ok := snapshot.FindNode(nodeName)
	if !ok {
		slog.Debug("click on unknown node ignored", "node", nodeName, "year", snapshot.Year)
		return nil, false
	}
	if node.Category == models.NodeCategoryCentral {
		return nil, false
	}

	category := models.CategoryTag(node.Category)
	series := snapshot.Drilldown.SeriesFor(category, node.Name)
	return r.drilldown.Open(node.Name, category, series)
}

func (r *clickRouter) RouteLinkClick(snapshot *models.BudgetSnapshot, source, target string) (*DrilldownSession, bool) {
	central := snapshot.CentralNode()
	if central == "" {
		return nil, false
	}

	// A link out of the central node counts as a click on its target
	// (expense or passif side); a link into it as a click on its source
	// (revenue or actif side).
	switch central {
	case source:
		return r.RouteNodeClick(snapshot, target)
	case target:
		return r.RouteNodeClick(snapshot, source)
	}

	slog.Debug("link not touching central node ignored",
		"source", source, "target", target, "central", central)
	return nil, false
}
