package services

import (
	"errors"
	"log/slog"
	"sort"
	"sync"
	"time"

	"budget-explorer/internal/models"

	"github.com/google/uuid"
)

var (
	ErrSessionNotFound   = errors.New("drilldown session not found")
	ErrInvalidBreadcrumb = errors.New("breadcrumb level out of range")
)

// DrilldownSession binds one navigation state machine to one view
// instance. Sessions are never shared between views; concurrent views each
// hold their own session.
type DrilldownSession struct {
	ID        uuid.UUID
	State     *models.DrillDownState
	CreatedAt time.Time
}

type drilldownService struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*DrilldownSession
	grouper  PrefixGrouperInterface

	onOpened []func(*DrilldownSession)
	onClosed []func(uuid.UUID)
}

// NewDrilldownService creates the drill-down session manager.
func NewDrilldownService(grouper PrefixGrouperInterface) DrilldownServiceInterface {
	return &drilldownService{
		sessions: make(map[uuid.UUID]*DrilldownSession),
		grouper:  grouper,
	}
}

func (s *drilldownService) Open(title string, category models.CategoryTag, rootItems models.Series) (*DrilldownSession, bool) {
	// Opening with nothing to show degrades to a no-op rather than an
	// error: the dashboard keeps its current display.
	if rootItems.IsEmpty() {
		slog.Debug("drilldown open skipped, empty series", "node", title)
		return nil, false
	}

	// With more than one distinct prefix the root level shows grouped
	// rows; otherwise the root items verbatim. Group already handles both.
	displayItems := s.grouper.Group(rootItems)

	session := &DrilldownSession{
		ID: uuid.New(),
		State: &models.DrillDownState{
			Levels: []models.DrillLevel{{
				Title:    title,
				Category: category,
				Items:    displayItems,
			}},
			CurrentLevel:  0,
			OriginalItems: rootItems,
		},
		CreatedAt: time.Now().UTC(),
	}

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()

	slog.Info("drilldown session opened",
		"session_id", session.ID,
		"node", title,
		"category", string(category),
		"item_count", len(rootItems))

	for _, fn := range s.onOpened {
		fn(session)
	}

	return session, true
}

func (s *drilldownService) Get(id uuid.UUID) (*DrilldownSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

func (s *drilldownService) DrillInto(id uuid.UUID, key string) (*DrilldownSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	st := session.State

	subItems := make(models.Series, 0)
	for _, item := range st.OriginalItems {
		if rest, child := item.ChildOf(key); child {
			subItems = append(subItems, models.LabeledAmount{Name: rest, Value: item.Value})
		}
	}

	// Clicking a leaf row does nothing.
	if subItems.IsEmpty() {
		slog.Debug("drilldown into leaf ignored", "session_id", id, "key", key)
		return session, nil
	}

	sort.SliceStable(subItems, func(i, j int) bool {
		return subItems[i].Value.GreaterThan(subItems[j].Value)
	})

	current := st.Current()
	st.Levels = append(st.Levels[:st.CurrentLevel+1], models.DrillLevel{
		Title:    key,
		Category: current.Category,
		Items:    subItems,
		Prefix:   key,
	})
	st.CurrentLevel++

	slog.Info("drilldown descended",
		"session_id", id,
		"key", key,
		"level", st.CurrentLevel,
		"item_count", len(subItems))

	return session, nil
}

func (s *drilldownService) JumpToBreadcrumb(id uuid.UUID, level int) (*DrilldownSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	st := session.State

	if level < 0 || level > st.CurrentLevel {
		return nil, ErrInvalidBreadcrumb
	}

	// Jumping to the current level is a no-op; truncation below is then
	// the identity.
	st.Levels = st.Levels[:level+1]
	st.CurrentLevel = level

	return session, nil
}

func (s *drilldownService) Close(id uuid.UUID) error {
	s.mu.Lock()
	_, ok := s.sessions[id]
	if ok {
		delete(s.sessions, id)
	}
	s.mu.Unlock()

	if !ok {
		return ErrSessionNotFound
	}

	slog.Info("drilldown session closed", "session_id", id)
	for _, fn := range s.onClosed {
		fn(id)
	}
	return nil
}

// OnOpened and OnClosed must be called during wiring, before the service
// receives traffic; subscriber lists are not guarded.
func (s *drilldownService) OnOpened(fn func(*DrilldownSession)) {
	s.onOpened = append(s.onOpened, fn)
}

func (s *drilldownService) OnClosed(fn func(uuid.UUID)) {
	s.onClosed = append(s.onClosed, fn)
}

func (s *drilldownService) ActiveSessions() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
