// Package manager implements the list/search/paginate/mutate engine behind
// every administered resource screen. One Manager instance owns the page
// state for one resource type in one session; the five dashboards are thin
// adapters around it.
package manager

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/staff-console/internal/events"
	apperrors "github.com/spec-kit/staff-console/pkg/util/errorutil"
)

// Item constrains the managed row types. WithActive returns a copy with the
// activity flag set, which is how the optimistic toggle patches the visible
// list without server confirmation.
type Item[T any] interface {
	Key() string
	Active() bool
	WithActive(active bool) T
}

// Client is the per-resource slice of the remote API the engine drives.
type Client[T Item[T]] interface {
	List(ctx context.Context, page, perPage int, query string, filters map[string]string) (Page[T], error)
	Create(ctx context.Context, form map[string]any) (T, error)
	Update(ctx context.Context, key string, form map[string]any) (T, error)
	SetActive(ctx context.Context, key string, active bool) error
	Delete(ctx context.Context, key string) error
}

// Page is one page of a listing response.
type Page[T any] struct {
	Items   []T
	Total   int
	Page    int
	PerPage int
}

// Phase is the load state machine position.
type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseLoading    Phase = "loading"
	PhaseLoaded     Phase = "loaded"
	PhaseLoadFailed Phase = "load_failed"
)

// State is a snapshot of the visible list.
type State[T any] struct {
	Items     []T
	Total     int
	Page      int
	PerPage   int
	Query     string
	Phase     Phase
	LastError string
}

// Pages reports the page count implied by Total and PerPage, at least 1.
func (s State[T]) Pages() int {
	if s.PerPage <= 0 {
		return 1
	}
	pages := (s.Total + s.PerPage - 1) / s.PerPage
	if pages < 1 {
		pages = 1
	}
	return pages
}

// Options tunes one manager instance.
type Options struct {
	Kind       string
	SessionID  string
	PerPage    int
	Debounce   time.Duration
	Filters    map[string]string
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// Manager orchestrates one resource screen. All exported methods are safe
// for concurrent use; state commits follow a last-issued-wins discipline so
// a slow stale response never clobbers a newer one.
type Manager[T Item[T]] struct {
	client   Client[T]
	kind     string
	session  string
	perPage  int
	debounce time.Duration
	notify   events.Dispatcher
	logger   *zap.Logger

	fields []FieldSpec

	mu      sync.Mutex
	state   State[T]
	filters map[string]string
	seq     uint64
	timer   *time.Timer
	pending map[string]string // item key -> speculative op id
	modal   *Editor[T]
}

// New builds an idle manager.
func New[T Item[T]](client Client[T], fields []FieldSpec, opts Options) *Manager[T] {
	perPage := opts.PerPage
	if perPage <= 0 {
		perPage = 8
	}
	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = 250 * time.Millisecond
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	filters := make(map[string]string, len(opts.Filters))
	for k, v := range opts.Filters {
		filters[k] = v
	}
	m := &Manager[T]{
		client:   client,
		kind:     opts.Kind,
		session:  opts.SessionID,
		perPage:  perPage,
		debounce: debounce,
		notify:   opts.Dispatcher,
		logger:   logger,
		filters:  filters,
		pending:  make(map[string]string),
	}
	m.state = State[T]{Page: 1, PerPage: perPage, Phase: PhaseIdle}
	m.fields = fields
	return m
}

// State returns a copy of the current page state.
func (m *Manager[T]) State() State[T] {
	m.mu.Lock()
	defer m.mu.Unlock()
	snapshot := m.state
	snapshot.Items = append([]T(nil), m.state.Items...)
	return snapshot
}

// SetFilter sets a resource-specific list filter (only_active, date range,
// ...). It does not trigger a load by itself.
func (m *Manager[T]) SetFilter(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if value == "" {
		delete(m.filters, key)
		return
	}
	m.filters[key] = value
}

// Load fetches one page of items matching the query. A page beyond the last
// available one is corrected to the last page; the engine never leaves an
// empty page on screen while earlier pages still hold items. On failure the
// prior items stay visible, the phase moves to PhaseLoadFailed and a notice
// is published.
func (m *Manager[T]) Load(ctx context.Context, page int, query string) error {
	if page < 1 {
		page = 1
	}

	for attempt := 0; attempt < 2; attempt++ {
		m.mu.Lock()
		m.seq++
		issued := m.seq
		m.state.Phase = PhaseLoading
		m.state.Query = query
		filters := copyFilters(m.filters)
		m.mu.Unlock()

		result, err := m.client.List(ctx, page, m.perPage, query, filters)

		m.mu.Lock()
		if issued != m.seq {
			// superseded by a newer load; discard the stale result
			m.mu.Unlock()
			return nil
		}
		if err != nil {
			m.state.Phase = PhaseLoadFailed
			m.state.LastError = err.Error()
			m.mu.Unlock()
			m.publish(ctx, events.NoticeLoadFailed, "", "", err.Error())
			return err
		}

		pages := pageCount(result.Total, m.perPage)
		if result.Page >= 1 {
			page = result.Page
		}
		if len(result.Items) == 0 && result.Total > 0 && page > 1 {
			// the requested page fell off the end; retry at the last page
			page = pages
			m.mu.Unlock()
			continue
		}

		if page > pages {
			page = pages
		}
		m.state.Items = result.Items
		m.state.Total = result.Total
		m.state.Page = page
		m.state.Phase = PhaseLoaded
		m.state.LastError = ""
		// anything speculative is now reconciled against server truth
		m.pending = make(map[string]string)
		m.mu.Unlock()
		return nil
	}
	return nil
}

// Search updates the query, resets to page 1 and schedules a debounced
// load. Each call supersedes the previous timer so a burst of keystrokes
// issues exactly one request, carrying the final text.
func (m *Manager[T]) Search(ctx context.Context, text string) {
	m.mu.Lock()
	m.state.Query = text
	m.state.Page = 1
	if m.timer != nil {
		m.timer.Stop()
	}
	m.timer = time.AfterFunc(m.debounce, func() {
		if err := m.Load(ctx, 1, text); err != nil {
			m.logger.Warn("debounced search load failed",
				zap.String("resource", m.kind), zap.Error(err))
		}
	})
	m.mu.Unlock()
}

// FlushSearch fires any pending debounced search immediately. Used when the
// view needs settled results right now (and by tests).
func (m *Manager[T]) FlushSearch(ctx context.Context) {
	m.mu.Lock()
	timer := m.timer
	m.timer = nil
	query := m.state.Query
	m.mu.Unlock()
	if timer != nil && timer.Stop() {
		_ = m.Load(ctx, 1, query)
	}
}

// ToggleActive flips the item's activity flag in the visible list first,
// then confirms with the server. A rejection is published as a notice and
// forces a reconciling reload so a wrong speculative value never persists
// silently.
func (m *Manager[T]) ToggleActive(ctx context.Context, key string) error {
	opID := uuid.NewString()

	m.mu.Lock()
	idx := m.indexOf(key)
	if idx < 0 {
		m.mu.Unlock()
		return apperrors.NewNotFound(m.kind+" item", map[string]any{"key": key})
	}
	target := !m.state.Items[idx].Active()
	m.state.Items[idx] = m.state.Items[idx].WithActive(target)
	m.pending[key] = opID
	page, query := m.state.Page, m.state.Query
	m.mu.Unlock()

	err := m.client.SetActive(ctx, key, target)

	m.mu.Lock()
	if m.pending[key] == opID {
		delete(m.pending, key)
	}
	m.mu.Unlock()

	if err != nil {
		m.publish(ctx, events.NoticeToggleFailed, key, opID, err.Error())
		if loadErr := m.Load(ctx, page, query); loadErr != nil {
			m.logger.Warn("reconciling reload failed",
				zap.String("resource", m.kind), zap.Error(loadErr))
		}
		return err
	}
	return nil
}

// Remove deletes the item after explicit confirmation, then rebalances:
// deleting the last row of a page greater than 1 reloads the previous page,
// otherwise the current page reloads. The engine never renders zero rows
// while earlier pages exist and items remain.
func (m *Manager[T]) Remove(ctx context.Context, key string, confirmed bool) error {
	if !confirmed {
		return apperrors.NewValidationError("deletion requires confirmation", nil)
	}

	m.mu.Lock()
	idx := m.indexOf(key)
	if idx < 0 {
		m.mu.Unlock()
		return apperrors.NewNotFound(m.kind+" item", map[string]any{"key": key})
	}
	remaining := len(m.state.Items) - 1
	page, query := m.state.Page, m.state.Query
	m.mu.Unlock()

	if err := m.client.Delete(ctx, key); err != nil {
		return err
	}

	target := page
	if remaining == 0 {
		if page > 1 {
			target = page - 1
		} else {
			target = 1
		}
	}
	return m.Load(ctx, target, query)
}

// publish sends a notice through the dispatcher, if one is attached.
func (m *Manager[T]) publish(ctx context.Context, t events.NoticeType, key, opID, message string) {
	if m.notify == nil {
		return
	}
	_ = m.notify.Publish(ctx, events.Notice{
		ID:        uuid.NewString(),
		Type:      t,
		SessionID: m.session,
		Resource:  m.kind,
		ItemKey:   key,
		OpID:      opID,
		Message:   message,
		Timestamp: time.Now(),
	})
}

// indexOf finds an item by key; callers hold the lock.
func (m *Manager[T]) indexOf(key string) int {
	for i := range m.state.Items {
		if m.state.Items[i].Key() == key {
			return i
		}
	}
	return -1
}

func pageCount(total, perPage int) int {
	if perPage <= 0 {
		return 1
	}
	pages := (total + perPage - 1) / perPage
	if pages < 1 {
		pages = 1
	}
	return pages
}

func copyFilters(filters map[string]string) map[string]string {
	out := make(map[string]string, len(filters))
	for k, v := range filters {
		out[k] = v
	}
	return out
}
