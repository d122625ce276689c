package services

import (
	"time"

	"budget-explorer/internal/models"

	"github.com/google/uuid"
)

// KeyFunc derives the aggregation key for one labeled amount. Keys are
// matched exactly and case-sensitively.
type KeyFunc func(models.LabeledAmount) string

// AggregatorInterface groups a series by an arbitrary dimension into ranked
// summary rows with percentage-of-total.
type AggregatorInterface interface {
	// Aggregate returns groups sorted by total descending, ties broken by
	// first-seen key order. Every share percentage is zero when the series
	// sums to zero, never NaN or an infinity.
	Aggregate(series models.Series, keyOf KeyFunc) []models.AggregatedGroup
}

// PrefixGrouperInterface collapses hierarchically named items that share a
// common ancestor label into one summary row each.
type PrefixGrouperInterface interface {
	// Group returns the series unchanged when it has at most one distinct
	// prefix. Otherwise synthetic groups sorted by accumulated value
	// descending come first, followed by unclassified items in their
	// original relative order.
	Group(series models.Series) models.Series

	// DistinctPrefixes returns the non-empty prefixes present in the
	// series, in first-seen order.
	DistinctPrefixes(series models.Series) []string
}

// VariationRankerInterface orders categories by how much their value
// changed between two reference periods.
type VariationRankerInterface interface {
	// Rank compares two aggregated snapshots over the union of their keys.
	// Gains (delta >= 0) come first sorted by delta descending, then
	// losses sorted ascending, so the largest gain leads and the largest
	// loss closes the list.
	Rank(start, end []models.AggregatedGroup) []models.VariationRow
}

// DrilldownServiceInterface manages drill-down sessions, each owning one
// navigation state machine.
type DrilldownServiceInterface interface {
	// Open starts a new session for the clicked node. It is a safe no-op
	// returning opened=false when rootItems is empty.
	Open(title string, category models.CategoryTag, rootItems models.Series) (session *DrilldownSession, opened bool)

	// Get returns the session with the given ID.
	Get(id uuid.UUID) (*DrilldownSession, error)

	// DrillInto descends into the clicked row. Clicking a leaf row leaves
	// the session unchanged.
	DrillInto(id uuid.UUID, key string) (*DrilldownSession, error)

	// JumpToBreadcrumb truncates the trail back to the given level.
	JumpToBreadcrumb(id uuid.UUID, level int) (*DrilldownSession, error)

	// Close discards the session.
	Close(id uuid.UUID) error

	// OnOpened registers a callback fired whenever a session opens.
	OnOpened(fn func(*DrilldownSession))

	// OnClosed registers a callback fired whenever a session closes.
	OnClosed(fn func(uuid.UUID))

	// ActiveSessions returns the number of open sessions.
	ActiveSessions() int
}

// ClickRouterInterface translates diagram interactions into drill-down
// transitions using only the snapshot's node and link metadata.
type ClickRouterInterface interface {
	// RouteNodeClick opens a session for a side node; clicks on the
	// central node or unknown nodes are ignored.
	RouteNodeClick(snapshot *models.BudgetSnapshot, node string) (session *DrilldownSession, opened bool)

	// RouteLinkClick treats a link touching the central node as a click on
	// its far end; links touching neither endpoint are ignored.
	RouteLinkClick(snapshot *models.BudgetSnapshot, source, target string) (session *DrilldownSession, opened bool)
}

type MetricsRecorderInterface interface {
	IncrementCounter(name string, tags map[string]string)
	RecordProcessingTime(name string, duration time.Duration)
	RecordGauge(name string, value float64, tags map[string]string)
}
