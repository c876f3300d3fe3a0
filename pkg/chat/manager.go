package chat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/hashicorp/go-version"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	v1 "github.com/openshift/sippy-chat/pkg/apis/chatbot/v1"
	"github.com/openshift/sippy-chat/pkg/apis/cache"
)

var (
	// ErrAuthLoading is returned by Initialize while the auth collaborator is still
	// loading; the session stays uninitialized and nothing is sent.
	ErrAuthLoading = errors.New("authentication is still loading")
	// ErrAuthRequired is returned by Initialize when the user is not logged in.
	ErrAuthRequired = errors.New("authentication required")
)

const suggestionsCacheKey = "chat:suggestions"

// DefaultSuggestions are offered when the backend has never returned any.
var DefaultSuggestions = []string{
	"Show me revenue for this week",
	"What are the trending hashtags?",
	"How is engagement changing?",
}

// Manager owns the session identity and lifecycle, the suggestion list and the last
// known backend health.
type Manager struct {
	transport Transport
	auth      AuthStatus
	log       *MessageLog
	notifier  Notifier

	cache       cache.Cache
	cacheTTL    time.Duration
	defaults    []string
	greeting    string
	constraints version.Constraints
	now         func() time.Time

	mu          sync.RWMutex
	session     Session
	suggestions []string
	health      *v1.HealthResponse
}

type ManagerOption func(*Manager)

// WithNotifier sets the notification side channel. The default logs notifications.
func WithNotifier(n Notifier) ManagerOption {
	return func(m *Manager) {
		m.notifier = n
	}
}

// WithSuggestionCache keeps the last fetched suggestions so a failed fetch can fall
// back to them.
func WithSuggestionCache(c cache.Cache, ttl time.Duration) ManagerOption {
	return func(m *Manager) {
		m.cache = c
		m.cacheTTL = ttl
	}
}

func WithDefaultSuggestions(s []string) ManagerOption {
	return func(m *Manager) {
		m.defaults = s
	}
}

func WithGreeting(greeting string) ManagerOption {
	return func(m *Manager) {
		m.greeting = greeting
	}
}

// WithBackendConstraint warns when the backend reports a version outside constraints.
func WithBackendConstraint(c version.Constraints) ManagerOption {
	return func(m *Manager) {
		m.constraints = c
	}
}

func WithClock(now func() time.Time) ManagerOption {
	return func(m *Manager) {
		m.now = now
	}
}

func NewManager(transport Transport, auth AuthStatus, messages *MessageLog, opts ...ManagerOption) *Manager {
	m := &Manager{
		transport: transport,
		auth:      auth,
		log:       messages,
		notifier:  LogNotifier{},
		defaults:  DefaultSuggestions,
		greeting:  DefaultGreeting,
		now:       time.Now,
		session:   Session{Status: StatusUninitialized},
	}
	for _, opt := range opts {
		opt(m)
	}
	m.suggestions = append([]string(nil), m.defaults...)
	if m.log == nil {
		m.log = NewMessageLog(m.Greeting())
	}
	return m
}

// Session returns a copy of the current session.
func (m *Manager) Session() Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.session
}

func (m *Manager) SessionID() string {
	return m.Session().ID
}

func (m *Manager) Status() Status {
	return m.Session().Status
}

func (m *Manager) Log() *MessageLog {
	return m.log
}

func (m *Manager) Suggestions() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string(nil), m.suggestions...)
}

// Health returns the last health response, or nil if none was received.
func (m *Manager) Health() *v1.HealthResponse {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.health == nil {
		return nil
	}
	h := *m.health
	return &h
}

// Greeting builds a fresh opening message with the current suggestions.
func (m *Manager) Greeting() Message {
	return NewGreeting(m.greeting, m.Suggestions(), m.now())
}

func (m *Manager) transition(to Status, reason string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.transitionLocked(to, reason)
}

func (m *Manager) transitionLocked(to Status, reason string) error {
	from := m.session.Status
	if !canTransition(from, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	m.session.Status = to
	m.session.Reason = reason
	log.WithFields(log.Fields{"from": from, "to": to, "session": m.session.ID}).Debug("session status changed")
	return nil
}

// Initialize brings the session to Ready. It is a no-op for a session that is already
// initializing or ready. Suggestion and health failures are reported through the
// notifier and do not prevent the session from becoming ready.
func (m *Manager) Initialize(ctx context.Context) error {
	switch m.auth.AuthState(ctx) {
	case AuthLoading:
		log.Debug("auth not ready, deferring session initialization")
		return ErrAuthLoading
	case AuthUnauthenticated:
		if err := m.beginInitialize(); err != nil {
			return nil
		}
		if err := m.transition(StatusError, ReasonAuthRequired); err != nil {
			return err
		}
		m.notifier.Notify(Notification{Level: LevelError, Source: "session", Message: "Please log in to use the assistant.", Err: ErrAuthRequired})
		return ErrAuthRequired
	}

	if err := m.beginInitialize(); err != nil {
		return nil
	}

	m.mu.Lock()
	now := m.now()
	m.session.ID = NewSessionID(now)
	m.session.CreatedAt = now
	sessionID := m.session.ID
	m.mu.Unlock()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		m.RefreshSuggestions(gctx)
		return nil
	})
	g.Go(func() error {
		if _, err := m.CheckHealth(gctx); err != nil {
			m.notifier.Notify(Notification{Level: LevelWarning, Source: "health", Message: "Could not reach the assistant backend.", Err: err})
		}
		return nil
	})
	_ = g.Wait()

	if err := m.transition(StatusReady, ""); err != nil {
		return err
	}
	log.WithField("session", sessionID).Info("chat session ready")
	return nil
}

// beginInitialize moves to Initializing, or reports that there is nothing to do.
func (m *Manager) beginInitialize() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session.Status == StatusInitializing || m.session.Status == StatusReady {
		return fmt.Errorf("session already %s", m.session.Status)
	}
	return m.transitionLocked(StatusInitializing, "")
}

// RefreshSuggestions fetches the suggestion list. On failure it keeps the cached list
// if there is one, otherwise the current values, and notifies.
func (m *Manager) RefreshSuggestions(ctx context.Context) []string {
	suggestions, err := m.transport.Suggestions(ctx)
	if err == nil && len(suggestions) > 0 {
		m.setSuggestions(suggestions)
		m.cacheSuggestions(ctx, suggestions)
		return suggestions
	}
	if err != nil {
		m.notifier.Notify(Notification{Level: LevelWarning, Source: "suggestions", Message: "Could not load suggestions.", Err: err})
	}
	if cached, ok := m.cachedSuggestions(ctx); ok {
		m.setSuggestions(cached)
		return cached
	}
	return m.Suggestions()
}

func (m *Manager) setSuggestions(s []string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.suggestions = append([]string(nil), s...)
}

func (m *Manager) cacheSuggestions(ctx context.Context, s []string) {
	if m.cache == nil {
		return
	}
	b, err := json.Marshal(s)
	if err != nil {
		return
	}
	if err := m.cache.Set(ctx, suggestionsCacheKey, b, m.cacheTTL); err != nil {
		log.WithError(err).Warn("could not cache suggestions")
	}
}

func (m *Manager) cachedSuggestions(ctx context.Context) ([]string, bool) {
	if m.cache == nil {
		return nil, false
	}
	b, err := m.cache.Get(ctx, suggestionsCacheKey)
	if err != nil {
		if !errors.Is(err, cache.ErrMiss) {
			log.WithError(err).Warn("could not read cached suggestions")
		}
		return nil, false
	}
	var s []string
	if err := json.Unmarshal(b, &s); err != nil || len(s) == 0 {
		return nil, false
	}
	return s, true
}

// CheckHealth probes the backend and records the result.
func (m *Manager) CheckHealth(ctx context.Context) (*v1.HealthResponse, error) {
	health, err := m.transport.Health(ctx)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	h := *health
	m.health = &h
	m.mu.Unlock()

	if health.Status != v1.HealthHealthy {
		log.WithField("status", health.Status).Warn("chatbot backend is not healthy")
	}
	m.checkBackendVersion(health.Version)
	return health, nil
}

func (m *Manager) checkBackendVersion(raw string) {
	if m.constraints == nil || raw == "" {
		return
	}
	v, err := version.NewVersion(raw)
	if err != nil {
		log.WithError(err).WithField("version", raw).Warn("backend reported an unparseable version")
		return
	}
	if !m.constraints.Check(v) {
		m.notifier.Notify(Notification{
			Level:   LevelWarning,
			Source:  "health",
			Message: fmt.Sprintf("Backend version %s is outside the supported range %s.", v, m.constraints),
		})
	}
}

// History retrieves the server side history of the current session.
func (m *Manager) History(ctx context.Context, limit int) ([]Message, error) {
	id := m.SessionID()
	if id == "" {
		return nil, fmt.Errorf("no active session")
	}
	resp, err := m.transport.History(ctx, id, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch history for %s: %w", id, err)
	}
	now := m.now()
	messages := make([]Message, 0, len(resp.History))
	for _, entry := range resp.History {
		messages = append(messages, messageFromHistory(entry, now))
	}
	return messages, nil
}

// Clear deletes the session on the backend and, only if that succeeds, resets the log
// to a single greeting and starts a new session. On failure the log is left untouched.
func (m *Manager) Clear(ctx context.Context) error {
	session := m.Session()
	if session.ID != "" {
		if err := m.transport.DeleteSession(ctx, session.ID); err != nil {
			m.notifier.Notify(Notification{Level: LevelError, Source: "clear", Message: "Could not clear the conversation.", Err: err})
			return fmt.Errorf("failed to delete session %s: %w", session.ID, err)
		}
	}

	m.log.Reset(m.Greeting())
	log.WithField("session", session.ID).Info("chat session cleared")

	if session.Status != StatusReady {
		return nil
	}
	if err := m.transition(StatusUninitialized, ""); err != nil {
		return err
	}
	m.mu.Lock()
	m.session = Session{Status: StatusUninitialized}
	m.mu.Unlock()

	if err := m.Initialize(ctx); err != nil {
		log.WithError(err).Warn("could not start a new session after clear")
	}
	return nil
}

// Reset tears the session down locally, whatever its status.
func (m *Manager) Reset() {
	m.mu.Lock()
	m.session = Session{Status: StatusUninitialized}
	m.mu.Unlock()
	m.log.Reset(m.Greeting())
}
