package session

import (
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/slashgen-ai/slashgen/internal/event"
	"github.com/slashgen-ai/slashgen/internal/logging"
	"github.com/slashgen-ai/slashgen/pkg/types"
)

// ErrNotFound is returned by operations that require an existing session.
// Plain lookups return nil instead.
var ErrNotFound = errors.New("session not found")

// Manager is the façade over the store. It publishes lifecycle events and
// owns the periodic eviction task. Managers are explicitly constructed and
// injected; there is no process-wide instance.
type Manager struct {
	store *Store
	bus   *event.Bus
	log   zerolog.Logger

	ttl      time.Duration
	interval time.Duration

	mu     sync.Mutex
	stopCh chan struct{}
	doneCh chan struct{}
}

// NewManager creates a manager owning the given store.
func NewManager(store *Store, bus *event.Bus, cfg types.SessionConfig) *Manager {
	ttl := time.Duration(cfg.TTLHours) * time.Hour
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	interval := time.Duration(cfg.CleanupIntervalMinutes) * time.Minute
	if interval <= 0 {
		interval = time.Hour
	}

	return &Manager{
		store:    store,
		bus:      bus,
		log:      logging.Component("session"),
		ttl:      ttl,
		interval: interval,
	}
}

// Create creates a new session and publishes a session.created event.
func (m *Manager) Create(userID string, prefs types.SessionPreferences) *types.Session {
	session := m.store.Create(userID, prefs)
	m.log.Debug().Str("sessionID", session.ID).Str("userID", userID).Msg("session created")
	m.publish(event.SessionCreated, session)
	return session
}

// Get returns the session or nil. Absence is not an error here; callers that
// require an existing session use the mutating operations below.
func (m *Manager) Get(id string) *types.Session {
	return m.store.Get(id)
}

// UpdateContext shallow-merges a context update. Returns ErrNotFound when the
// id is unknown since an update explicitly requires an existing session.
func (m *Manager) UpdateContext(id string, update types.ContextUpdate) (*types.Session, error) {
	session := m.store.Update(id, update)
	if session == nil {
		return nil, ErrNotFound
	}
	m.publish(event.SessionUpdated, session)
	return session, nil
}

// AddCommandToHistory prepends a command to the session's recent history.
func (m *Manager) AddCommandToHistory(id, command string) (*types.Session, error) {
	session := m.store.AddCommand(id, command)
	if session == nil {
		return nil, ErrNotFound
	}
	m.publish(event.SessionUpdated, session)
	return session, nil
}

// Delete removes a session. Idempotent; reports whether anything was removed.
func (m *Manager) Delete(id string) bool {
	session := m.store.Get(id)
	if !m.store.Delete(id) {
		return false
	}
	m.log.Debug().Str("sessionID", id).Msg("session deleted")
	m.publish(event.SessionDeleted, session)
	return true
}

// Cleanup evicts sessions idle since before the cutoff and returns the count.
func (m *Manager) Cleanup(cutoff time.Time) int {
	removed := m.store.Cleanup(cutoff)
	if removed > 0 {
		m.log.Info().Int("removed", removed).Msg("session cleanup")
	}
	return removed
}

// Stats returns aggregate session statistics.
func (m *Manager) Stats() types.SessionStats {
	return m.store.Stats()
}

// StartCleanup launches the periodic eviction task. The task evicts sessions
// idle longer than the configured TTL. Calling StartCleanup twice is a no-op
// until StopCleanup is called.
func (m *Manager) StartCleanup() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.stopCh != nil {
		return
	}
	m.stopCh = make(chan struct{})
	m.doneCh = make(chan struct{})

	go m.cleanupLoop(m.stopCh, m.doneCh)
}

// StopCleanup stops the eviction task and waits for it to exit. Safe to call
// when the task was never started.
func (m *Manager) StopCleanup() {
	m.mu.Lock()
	stopCh, doneCh := m.stopCh, m.doneCh
	m.stopCh, m.doneCh = nil, nil
	m.mu.Unlock()

	if stopCh == nil {
		return
	}
	close(stopCh)
	<-doneCh
}

func (m *Manager) cleanupLoop(stopCh <-chan struct{}, doneCh chan<- struct{}) {
	defer close(doneCh)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			m.Cleanup(time.Now().Add(-m.ttl))
		}
	}
}

func (m *Manager) publish(t event.EventType, session *types.Session) {
	if m.bus == nil {
		return
	}
	m.bus.Publish(event.Event{Type: t, Data: event.SessionData{Info: session}})
}
