// Package session holds the single source of truth for "who is logged in".
// A Store is bound to one storage key, one per browser context; mutating
// operations write through to durable storage synchronously so a concurrent
// mount never observes memory and storage out of step.
package session

import (
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	"github.com/spec-kit/staff-console/internal/domain"
	"github.com/spec-kit/staff-console/internal/storage"
)

// Store manages the authenticated identity for one context.
type Store struct {
	storage storage.Storage
	key     string
	logger  *zap.Logger

	mu      sync.RWMutex
	current *domain.Session
}

// NewStore hydrates a store from durable storage. A corrupt or unparsable
// stored value fails open to logged-out; hydration never returns an error.
func NewStore(st storage.Storage, key string, logger *zap.Logger) *Store {
	s := &Store{storage: st, key: key, logger: logger}
	if raw, ok := st.Get(key); ok {
		var sess domain.Session
		if err := json.Unmarshal([]byte(raw), &sess); err != nil || !sess.Role.Valid() {
			logger.Warn("discarding unreadable persisted session", zap.String("key", key))
			st.Remove(key)
		} else {
			s.current = &sess
		}
	}
	return s
}

// Login replaces any existing session wholesale and persists it. The role
// is normalized through the closed enum; an unrecognized role string is
// recorded as logged-out rather than stored raw.
func (s *Store) Login(identity domain.Session) {
	role, err := domain.ParseRole(string(identity.Role))
	if err != nil {
		s.logger.Warn("login with unknown role", zap.String("role", string(identity.Role)))
		s.Logout()
		return
	}
	identity.Role = role

	s.mu.Lock()
	s.current = &identity
	s.persistLocked()
	s.mu.Unlock()
}

// Update shallow-merges the patch into the current session and persists the
// result. Applied to a logged-out store it is a no-op: fabricating a partial
// session from a patch would let an unauthenticated context acquire state.
func (s *Store) Update(patch domain.SessionPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		s.logger.Warn("session update ignored while logged out")
		return
	}
	next := s.current.Apply(patch)
	s.current = &next
	s.persistLocked()
}

// Logout clears session state and removes persisted storage. Idempotent.
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return
	}
	s.current = nil
	s.storage.Remove(s.key)
}

// Current returns a copy of the active session, if any.
func (s *Store) Current() (domain.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return domain.Session{}, false
	}
	return *s.current, true
}

// persistLocked writes the in-memory session through to storage. Storage is
// best-effort and never surfaces failures here.
func (s *Store) persistLocked() {
	raw, err := json.Marshal(s.current)
	if err != nil {
		s.logger.Warn("session marshal failed", zap.Error(err))
		return
	}
	s.storage.Set(s.key, string(raw))
}
