package dto

import "github.com/shopspring/decimal"

// Drill-down Request DTOs

// ClickRequest represents a normalized chart click event.
// A node click carries Node; a link click carries Source and Target.
// View selects which diagram the click came from; it defaults to budget.
type ClickRequest struct {
	Year   int    `json:"year" validate:"required,gte=1900,lte=9999"`
	View   string `json:"view,omitempty" validate:"omitempty,oneof=budget bilan"`
	Node   string `json:"node,omitempty"`
	Source string `json:"source,omitempty"`
	Target string `json:"target,omitempty"`
}

// IsNodeClick reports whether the event is a node click rather than a link click
func (r *ClickRequest) IsNodeClick() bool {
	return r.Node != ""
}

// DrillRequest represents the request payload for descending into a group
type DrillRequest struct {
	Key string `json:"key" validate:"required,min=1"`
}

// BreadcrumbRequest represents the request payload for jumping back to a breadcrumb
type BreadcrumbRequest struct {
	Level *int `json:"level" validate:"required,gte=0"`
}

// Drill-down Response DTOs

// DrilldownItem is a single row of the current drill-down level
type DrilldownItem struct {
	Name     string          `json:"name"`
	Value    decimal.Decimal `json:"value"`
	CanDrill bool            `json:"can_drill"`
}

// DrilldownSessionResponse represents the full client-facing state of a session
type DrilldownSessionResponse struct {
	SessionID        string          `json:"session_id"`
	Title            string          `json:"title"`
	Category         string          `json:"category"`
	CurrentLevel     int             `json:"current_level"`
	Breadcrumbs      []string        `json:"breadcrumbs"`
	Items            []DrilldownItem `json:"items"`
	FirstRowCanDrill bool            `json:"first_row_can_drill"`
}

// ClickResponse represents the result of routing a chart click.
// Session is nil when the click was ignored.
type ClickResponse struct {
	Opened  bool                      `json:"opened"`
	Session *DrilldownSessionResponse `json:"session,omitempty"`
}
