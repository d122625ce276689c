package handlers

import (
	"errors"
	"net/http"

	"budget-explorer/internal/dto"
	apierrors "budget-explorer/internal/errors"
	"budget-explorer/internal/repositories"
	"budget-explorer/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// DrilldownHandler serves the drill-down session endpoints: routing chart
// clicks into sessions and navigating an open session
type DrilldownHandler struct {
	router    services.ClickRouterInterface
	drilldown services.DrilldownServiceInterface
	repo      repositories.SnapshotRepositoryInterface
	metrics   services.MetricsRecorderInterface
}

// NewDrilldownHandler creates a new drill-down handler
func NewDrilldownHandler(
	router services.ClickRouterInterface,
	drilldown services.DrilldownServiceInterface,
	repo repositories.SnapshotRepositoryInterface,
	metrics services.MetricsRecorderInterface,
) *DrilldownHandler {
	return &DrilldownHandler{
		router:    router,
		drilldown: drilldown,
		repo:      repo,
		metrics:   metrics,
	}
}

// Click routes a normalized chart click event
//
// Method: POST /api/v1/drilldown/click
//
// Request body:
//   - year: Integer fiscal year (required)
//   - view: "budget" (default) or "bilan"
//   - node: Clicked node name (node clicks)
//   - source, target: Link endpoints (link clicks)
//
// Success Response: 200 OK
//   - opened: Whether a session was created
//   - session: New session state, absent when the click was ignored
//
// Error Responses:
//   - 400: Invalid body, or neither node nor link endpoints given
//   - 404: No snapshot for that year
func (h *DrilldownHandler) Click(c echo.Context) error {
	var req dto.ClickRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, apierrors.ValidationGeneral, apierrors.WithDetails("invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if !req.IsNodeClick() && (req.Source == "" || req.Target == "") {
		return SendError(c, apierrors.ValidationGeneral,
			apierrors.WithDetails("either node or both source and target are required"))
	}

	lookup := h.repo.GetSnapshot
	if req.View == "bilan" {
		lookup = h.repo.GetBalanceSheet
	}
	snapshot, err := lookup(req.Year)
	if err != nil {
		if errors.Is(err, repositories.ErrSnapshotNotFound) {
			return SendError(c, apierrors.SnapshotNotFound)
		}
		return SendSystemError(c, err)
	}

	var session *services.DrilldownSession
	var opened bool
	if req.IsNodeClick() {
		session, opened = h.router.RouteNodeClick(snapshot, req.Node)
	} else {
		session, opened = h.router.RouteLinkClick(snapshot, req.Source, req.Target)
	}

	resp := dto.ClickResponse{Opened: opened}
	if opened {
		resp.Session = sessionResponse(session)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Data: resp})
}

// Drill descends into a grouped row of an open session
//
// Method: POST /api/v1/drilldown/:id/drill
//
// Request body:
//   - key: Row to descend into (required)
//
// Success Response: 200 OK with the updated session state. Drilling into a
// leaf row returns the session unchanged.
//
// Error Responses:
//   - 400: Invalid session ID or body
//   - 404: Session not found
func (h *DrilldownHandler) Drill(c echo.Context) error {
	id, err := parseSessionID(c)
	if err != nil {
		return SendError(c, apierrors.SessionInvalidID)
	}

	var req dto.DrillRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, apierrors.ValidationGeneral, apierrors.WithDetails("invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	session, err := h.drilldown.DrillInto(id, req.Key)
	if err != nil {
		return h.handleSessionError(c, err)
	}

	h.metrics.IncrementCounter("drilldown.descended", nil)

	return c.JSON(http.StatusOK, SuccessResponse{Data: sessionResponse(session)})
}

// Breadcrumb jumps back to an earlier level of an open session
//
// Method: POST /api/v1/drilldown/:id/breadcrumb
//
// Request body:
//   - level: Zero-based breadcrumb index (required)
//
// Success Response: 200 OK with the updated session state
//
// Error Responses:
//   - 400: Invalid session ID or body
//   - 404: Session not found
//   - 422: Level outside the current trail
func (h *DrilldownHandler) Breadcrumb(c echo.Context) error {
	id, err := parseSessionID(c)
	if err != nil {
		return SendError(c, apierrors.SessionInvalidID)
	}

	var req dto.BreadcrumbRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, apierrors.ValidationGeneral, apierrors.WithDetails("invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	session, err := h.drilldown.JumpToBreadcrumb(id, *req.Level)
	if err != nil {
		return h.handleSessionError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Data: sessionResponse(session)})
}

// Get returns the current state of an open session
//
// Method: GET /api/v1/drilldown/:id
//
// Success Response: 200 OK with the session state
//
// Error Responses:
//   - 400: Invalid session ID
//   - 404: Session not found
func (h *DrilldownHandler) Get(c echo.Context) error {
	id, err := parseSessionID(c)
	if err != nil {
		return SendError(c, apierrors.SessionInvalidID)
	}

	session, err := h.drilldown.Get(id)
	if err != nil {
		return h.handleSessionError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Data: sessionResponse(session)})
}

// Close discards an open session
//
// Method: DELETE /api/v1/drilldown/:id
//
// Success Response: 200 OK
//
// Error Responses:
//   - 400: Invalid session ID
//   - 404: Session not found
func (h *DrilldownHandler) Close(c echo.Context) error {
	id, err := parseSessionID(c)
	if err != nil {
		return SendError(c, apierrors.SessionInvalidID)
	}

	if err := h.drilldown.Close(id); err != nil {
		return h.handleSessionError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{
		Data:    map[string]string{"session_id": id.String()},
		Message: "drilldown session closed",
	})
}

func (h *DrilldownHandler) handleSessionError(c echo.Context, err error) error {
	if errors.Is(err, services.ErrSessionNotFound) {
		return SendError(c, apierrors.SessionNotFound)
	}
	if errors.Is(err, services.ErrInvalidBreadcrumb) {
		return SendError(c, apierrors.SessionBreadcrumbOutOfRange)
	}
	return SendSystemError(c, err)
}

// parseSessionID reads and validates the :id path parameter
func parseSessionID(c echo.Context) (uuid.UUID, error) {
	return uuid.Parse(c.Param("id"))
}

// sessionResponse maps a session to its client-facing representation,
// resolving the per-row drillability flags against the root series.
func sessionResponse(session *services.DrilldownSession) *dto.DrilldownSessionResponse {
	st := session.State
	level := st.Current()

	items := make([]dto.DrilldownItem, 0, len(level.Items))
	for _, item := range level.Items {
		items = append(items, dto.DrilldownItem{
			Name:     item.Name,
			Value:    item.Value,
			CanDrill: st.CanDrill(item.Name),
		})
	}

	return &dto.DrilldownSessionResponse{
		SessionID:        session.ID.String(),
		Title:            st.Levels[0].Title,
		Category:         string(level.Category),
		CurrentLevel:     st.CurrentLevel,
		Breadcrumbs:      st.Breadcrumbs(),
		Items:            items,
		FirstRowCanDrill: st.FirstRowCanDrill(),
	}
}
