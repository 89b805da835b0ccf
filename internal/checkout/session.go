package checkout

import (
	"context"
	"log/slog"
	"sync"

	"github.com/ChathuraSudaraka/WEB2-sub001/internal/auth"
	"github.com/ChathuraSudaraka/WEB2-sub001/internal/cart"
	"github.com/ChathuraSudaraka/WEB2-sub001/internal/models"
	"github.com/ChathuraSudaraka/WEB2-sub001/internal/notify"
	"github.com/google/uuid"
)

// ProfileFetcher fetches shipping prefill data for a user.
type ProfileFetcher interface {
	FetchProfile(ctx context.Context, userID int64) (*models.Profile, error)
}

// SessionStore persists live checkout sessions.
type SessionStore interface {
	Save(s *Session) error
	Get(id string) (*Session, error)
	Delete(id string) error
}

// Session binds one wizard to its per-shopper collaborators.
type Session struct {
	ID     string
	Wizard *Wizard
	Toasts *notify.Recorder
	Routes *RouteRecorder
}

// RouteRecorder captures navigation-sink calls so the presentation layer
// can relay the redirect and its state payload.
type RouteRecorder struct {
	mu    sync.Mutex
	route string
	state any
	set   bool
}

// NavigateTo records a route change, replacing any earlier one.
func (r *RouteRecorder) NavigateTo(route string, state any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.route = route
	r.state = state
	r.set = true
}

// Last returns the most recent route change, if any.
func (r *RouteRecorder) Last() (string, any, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.route, r.state, r.set
}

// Manager creates and looks up checkout sessions and kicks off the
// fire-and-forget profile prefetch.
type Manager struct {
	store    SessionStore
	orders   OrderCreator
	profiles ProfileFetcher
	log      *slog.Logger
}

// NewManager creates a session manager. profiles may be nil to disable
// prefill.
func NewManager(store SessionStore, orders OrderCreator, profiles ProfileFetcher, log *slog.Logger) *Manager {
	return &Manager{
		store:    store,
		orders:   orders,
		profiles: profiles,
		log:      log,
	}
}

// Start opens a checkout session for the user and cart items.
// Precondition failures (anonymous user, empty cart) come back as
// sentinel errors; no session is stored.
func (m *Manager) Start(ctx context.Context, user auth.UserContext, items []models.CartItem) (*Session, error) {
	toasts := notify.NewRecorder()
	routes := &RouteRecorder{}

	wizard, err := NewWizard(user, cart.New(items), m.orders, toasts, routes, m.log)
	if err != nil {
		return nil, err
	}

	s := &Session{
		ID:     uuid.New().String(),
		Wizard: wizard,
		Toasts: toasts,
		Routes: routes,
	}
	if err := m.store.Save(s); err != nil {
		return nil, err
	}

	// Races harmlessly with user edits: ApplyProfile skips dirty fields.
	if m.profiles != nil {
		go m.prefill(user.UserID, wizard)
	}

	m.log.Info("checkout session started", "session_id", s.ID, "user_id", user.UserID, "items", len(items))
	return s, nil
}

// Get looks up a live session by ID.
func (m *Manager) Get(id string) (*Session, error) {
	return m.store.Get(id)
}

// End discards a session.
func (m *Manager) End(id string) error {
	return m.store.Delete(id)
}

func (m *Manager) prefill(userID int64, w *Wizard) {
	profile, err := m.profiles.FetchProfile(context.Background(), userID)
	if err != nil {
		m.log.Warn("profile prefill failed", "user_id", userID, "error", err)
		return
	}
	w.ApplyProfile(*profile)
}
