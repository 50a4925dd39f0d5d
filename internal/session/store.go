// Package session provides in-memory session state for the generation
// pipeline.
package session

import (
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/slashgen-ai/slashgen/pkg/types"
)

// maxRecentCommands caps the per-session command history.
const maxRecentCommands = 10

// Store is the in-memory session store. It owns all session records; callers
// receive copies and must route mutations through the store. All operations
// are safe for concurrent use.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*types.Session
	byUser   map[string]map[string]struct{}
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		sessions: make(map[string]*types.Session),
		byUser:   make(map[string]map[string]struct{}),
	}
}

// Create creates a new session with a generated id and empty context.
// It always succeeds.
func (s *Store) Create(userID string, prefs types.SessionPreferences) *types.Session {
	now := time.Now().UnixMilli()
	session := &types.Session{
		ID:          ulid.Make().String(),
		UserID:      userID,
		Preferences: prefs,
		Time: types.SessionTime{
			Created: now,
			Updated: now,
		},
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[session.ID] = session
	if userID != "" {
		if s.byUser[userID] == nil {
			s.byUser[userID] = make(map[string]struct{})
		}
		s.byUser[userID][session.ID] = struct{}{}
	}

	return cloneSession(session)
}

// Get returns a copy of the session, or nil when the id is unknown.
// Lookups never fail.
func (s *Store) Get(id string) *types.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil
	}
	return cloneSession(session)
}

// Update shallow-merges a context update into the session. Nil fields leave
// the stored value untouched; non-nil fields replace it. Returns the updated
// session, or nil when the id is unknown.
func (s *Store) Update(id string, update types.ContextUpdate) *types.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil
	}

	if update.ProjectPhase != nil {
		session.Context.ProjectPhase = *update.ProjectPhase
	}
	if update.TechStack != nil {
		session.Context.TechStack = append([]string(nil), (*update.TechStack)...)
	}
	if update.RecentCommands != nil {
		session.Context.RecentCommands = capCommands(append([]string(nil), (*update.RecentCommands)...))
	}
	if update.WorkingDirectory != nil {
		session.Context.WorkingDirectory = *update.WorkingDirectory
	}
	session.Time.Updated = time.Now().UnixMilli()

	return cloneSession(session)
}

// AddCommand prepends a command to the session history, truncates to the cap
// and refreshes the updated timestamp. Returns the updated session, or nil
// when the id is unknown.
func (s *Store) AddCommand(id, command string) *types.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil
	}

	session.Context.RecentCommands = capCommands(append([]string{command}, session.Context.RecentCommands...))
	session.Time.Updated = time.Now().UnixMilli()

	return cloneSession(session)
}

// Delete removes a session and its user-index entry. It is idempotent and
// reports whether a session was actually removed.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok {
		return false
	}

	delete(s.sessions, id)
	s.dropUserIndex(session.UserID, id)
	return true
}

// Cleanup deletes every session whose updated timestamp strictly precedes the
// cutoff and returns the number removed. Sessions updated exactly at the
// cutoff are retained.
func (s *Store) Cleanup(cutoff time.Time) int {
	cutoffMilli := cutoff.UnixMilli()

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, session := range s.sessions {
		if session.Time.Updated < cutoffMilli {
			delete(s.sessions, id)
			s.dropUserIndex(session.UserID, id)
			removed++
		}
	}
	return removed
}

// Stats returns aggregate counts: total sessions, sessions updated within the
// last hour, and distinct user ids.
func (s *Store) Stats() types.SessionStats {
	activeCutoff := time.Now().Add(-time.Hour).UnixMilli()

	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := types.SessionStats{
		Total:       len(s.sessions),
		UniqueUsers: len(s.byUser),
	}
	for _, session := range s.sessions {
		if session.Time.Updated >= activeCutoff {
			stats.Active++
		}
	}
	return stats
}

// dropUserIndex removes one session from the user index. Caller holds the
// write lock.
func (s *Store) dropUserIndex(userID, sessionID string) {
	if userID == "" {
		return
	}
	if ids, ok := s.byUser[userID]; ok {
		delete(ids, sessionID)
		if len(ids) == 0 {
			delete(s.byUser, userID)
		}
	}
}

// capCommands truncates a most-recent-first history to the cap.
func capCommands(commands []string) []string {
	if len(commands) > maxRecentCommands {
		return commands[:maxRecentCommands]
	}
	return commands
}

// cloneSession copies a session so callers cannot mutate store-owned state.
func cloneSession(s *types.Session) *types.Session {
	clone := *s
	clone.Preferences.TechStack = append([]string(nil), s.Preferences.TechStack...)
	clone.Context.TechStack = append([]string(nil), s.Context.TechStack...)
	clone.Context.RecentCommands = append([]string(nil), s.Context.RecentCommands...)
	return &clone
}
