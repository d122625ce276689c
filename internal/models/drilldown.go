package models

// CategoryTag discriminates the two sides of a flow diagram, e.g.
// revenue/expense for the budget view or actif/passif for the balance
// sheet. The drill-down engine never interprets its value; it only carries
// the tag through so the display layer can style each side.
type CategoryTag string

// DrillLevel is one displayed step of a drill-down trail.
type DrillLevel struct {
	Title    string      `json:"title"`
	Category CategoryTag `json:"category"`
	Items    Series      `json:"items"`
	// Prefix is set on levels produced by drilling into a grouped row.
	Prefix string `json:"prefix,omitempty"`
}

// DrillDownState is the navigation state of one open drill-down view.
// It is owned by exactly one view instance and never shared; a zero value
// is the CLOSED state.
type DrillDownState struct {
	Levels       []DrillLevel `json:"levels"`
	CurrentLevel int          `json:"current_level"`
	// OriginalItems keeps the unfiltered root series so deeper levels can
	// be derived by prefix filtering.
	OriginalItems Series `json:"-"`
}

// IsOpen reports whether the state machine is in the OPEN state.
func (st *DrillDownState) IsOpen() bool {
	return st != nil && len(st.Levels) > 0
}

// Current returns the currently displayed level, or nil when CLOSED.
func (st *DrillDownState) Current() *DrillLevel {
	if !st.IsOpen() || st.CurrentLevel >= len(st.Levels) {
		return nil
	}
	return &st.Levels[st.CurrentLevel]
}

// Breadcrumbs returns the ordered titles of every level up to and
// including the current one.
func (st *DrillDownState) Breadcrumbs() []string {
	if !st.IsOpen() {
		return nil
	}
	trail := make([]string, 0, st.CurrentLevel+1)
	for i := 0; i <= st.CurrentLevel && i < len(st.Levels); i++ {
		trail = append(trail, st.Levels[i].Title)
	}
	return trail
}

// CanDrill reports whether the given row key has at least one nested
// posting in the root series.
func (st *DrillDownState) CanDrill(key string) bool {
	if !st.IsOpen() {
		return false
	}
	for _, item := range st.OriginalItems {
		if _, ok := item.ChildOf(key); ok {
			return true
		}
	}
	return false
}

// FirstRowCanDrill mirrors the historical drillability check that only
// inspects the first displayed row of the current level. It under-reports
// whenever a later row has children but the first one does not; kept as-is
// until product confirms whether that behavior is relied upon. New callers
// should use CanDrill per row instead.
func (st *DrillDownState) FirstRowCanDrill() bool {
	level := st.Current()
	if level == nil || len(level.Items) == 0 {
		return false
	}
	return st.CanDrill(level.Items[0].Name)
}
