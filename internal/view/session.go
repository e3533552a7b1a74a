// Package view holds server-side view sessions: one per UI surface showing a
// recipe list (catalog grid, detail pane). A session owns its filter state,
// debounces free-text input, recomputes its ordered view whenever the
// collection or any input changes, and lazily requests translations for
// recipes whose active-language content is absent.
package view

import (
	"context"
	"log/slog"
	"sync"

	"github.com/saborlab/sabor/internal/catalog"
	"github.com/saborlab/sabor/internal/models"
	"github.com/saborlab/sabor/internal/store"
)

// Resolver fetches missing-language content (the translation coordinator).
type Resolver interface {
	EnsureContent(ctx context.Context, recipeID string, lang models.Language) (*models.RecipeContent, error)
}

// Item is one recipe in a computed view. Translating marks the distinct
// pending state: the UI must render neither the absent slot nor the other
// language's content while a fetch is in flight.
type Item struct {
	Recipe      *models.Recipe `json:"recipe"`
	Translating bool           `json:"translating,omitempty"`
}

// Snapshot is one recomputed view.
type Snapshot struct {
	SessionID string `json:"sessionId"`
	Items     []Item `json:"items"`
}

// Session is a single observer of the catalog.
type Session struct {
	id       string
	store    *store.Store
	resolver Resolver
	logger   *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu          sync.Mutex
	query       catalog.Query
	translating map[string]bool // per-observer in-flight flags, keyed by recipe id
	out         chan Snapshot

	debouncer *catalog.Debouncer
}

func newSession(s *store.Store, resolver Resolver, lang models.Language, logger *slog.Logger) *Session {
	ctx, cancel := context.WithCancel(context.Background())
	sess := &Session{
		id:          models.NewID(),
		store:       s,
		resolver:    resolver,
		logger:      logger,
		ctx:         ctx,
		cancel:      cancel,
		query:       catalog.DefaultQuery(lang),
		translating: make(map[string]bool),
		out:         make(chan Snapshot, 16),
	}
	sess.debouncer = catalog.NewDebouncer(catalog.QueryDebounce, func(text string) {
		sess.mu.Lock()
		sess.query.Text = text
		sess.mu.Unlock()
		sess.recompute()
	})
	sess.recompute()
	return sess
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Done is closed when the session is torn down.
func (s *Session) Done() <-chan struct{} { return s.ctx.Done() }

// Events delivers recomputed snapshots. Slow consumers miss intermediate
// snapshots, never the latest state for long: every change emits.
func (s *Session) Events() <-chan Snapshot { return s.out }

// SetQuery feeds the free-text query through the 300 ms debounce: only the
// value still standing after the idle interval triggers a recompute.
func (s *Session) SetQuery(text string) {
	s.debouncer.Set(text)
}

// SetFilters toggles the two search-field flags. Takes effect immediately.
func (s *Session) SetFilters(inTitle, inIngredients bool) {
	s.mu.Lock()
	s.query.InTitle = inTitle
	s.query.InIngredients = inIngredients
	s.mu.Unlock()
	s.recompute()
}

// SetCategory selects a category filter (catalog.AllCategories clears it).
func (s *Session) SetCategory(categoryID string) {
	s.mu.Lock()
	s.query.CategoryID = categoryID
	s.mu.Unlock()
	s.recompute()
}

// SetSort selects the view ordering.
func (s *Session) SetSort(opt catalog.SortOption) {
	s.mu.Lock()
	s.query.Sort = opt
	s.mu.Unlock()
	s.recompute()
}

// SetLanguage switches the active display language, which may expose new
// content gaps and trigger translation fetches.
func (s *Session) SetLanguage(lang models.Language) {
	s.mu.Lock()
	s.query.Language = lang
	s.mu.Unlock()
	s.recompute()
}

// Snapshot recomputes and returns the current view without emitting.
func (s *Session) Snapshot() Snapshot {
	return s.compute(false)
}

// recompute derives a fresh view and emits it to the session's consumer.
func (s *Session) recompute() {
	s.compute(true)
}

func (s *Session) compute(emit bool) Snapshot {
	s.mu.Lock()
	q := s.query
	s.mu.Unlock()

	recipes := catalog.View(s.store.Recipes(), q)

	items := make([]Item, len(recipes))
	for i, r := range recipes {
		items[i] = Item{Recipe: r, Translating: s.maybeTranslate(r, q.Language)}
	}

	snap := Snapshot{SessionID: s.id, Items: items}
	if emit {
		select {
		case s.out <- snap:
		case <-s.ctx.Done():
		default:
		}
	}
	return snap
}

// maybeTranslate starts a lazy translation fetch when this session displays
// a recipe whose active-language slot is absent and no fetch is already in
// flight from this observer. Returns whether the item is in the translating
// state.
func (s *Session) maybeTranslate(r *models.Recipe, lang models.Language) bool {
	if r.Content(lang) != nil || r.Content(lang.Other()) == nil {
		return false
	}

	s.mu.Lock()
	if s.translating[r.ID] {
		s.mu.Unlock()
		return true
	}
	s.translating[r.ID] = true
	s.mu.Unlock()

	go func() {
		// The store change on success recomputes every session; a failure
		// changes nothing and the next display retries.
		_, err := s.resolver.EnsureContent(s.ctx, r.ID, lang)
		s.mu.Lock()
		delete(s.translating, r.ID)
		s.mu.Unlock()
		if err != nil && s.ctx.Err() == nil {
			s.logger.Debug("view: translation fetch failed",
				slog.String("session", s.id),
				slog.String("recipe", r.ID),
				slog.String("error", err.Error()))
		}
	}()
	return true
}

// Close tears the observer down. In-flight translation fetches issued by
// this session stop delivering to it (their results still merge into the
// collection for other observers).
func (s *Session) Close() {
	s.cancel()
	s.debouncer.Stop()
}

// Manager tracks open sessions and recomputes them on collection changes.
type Manager struct {
	store    *store.Store
	resolver Resolver
	logger   *slog.Logger

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewManager creates a session manager and subscribes it to store changes.
func NewManager(s *store.Store, resolver Resolver, logger *slog.Logger) *Manager {
	m := &Manager{
		store:    s,
		resolver: resolver,
		logger:   logger,
		sessions: make(map[string]*Session),
	}
	s.OnChange(m.recomputeAll)
	return m
}

// Open creates a session observing the catalog in lang.
func (m *Manager) Open(lang models.Language) *Session {
	sess := newSession(m.store, m.resolver, lang, m.logger)
	m.mu.Lock()
	m.sessions[sess.id] = sess
	m.mu.Unlock()
	return sess
}

// Get returns an open session by id.
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[id]
	return sess, ok
}

// Close tears down a session.
func (m *Manager) Close(id string) {
	m.mu.Lock()
	sess, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if ok {
		sess.Close()
	}
}

// CloseAll tears down every session (shutdown).
func (m *Manager) CloseAll() {
	m.mu.Lock()
	sessions := m.sessions
	m.sessions = make(map[string]*Session)
	m.mu.Unlock()
	for _, sess := range sessions {
		sess.Close()
	}
}

func (m *Manager) recomputeAll() {
	m.mu.Lock()
	sessions := make([]*Session, 0, len(m.sessions))
	for _, sess := range m.sessions {
		sessions = append(sessions, sess)
	}
	m.mu.Unlock()
	for _, sess := range sessions {
		sess.recompute()
	}
}
