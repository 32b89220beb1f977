package session

import (
	"sync"

	"github.com/rs/zerolog/log"
)

// Registry is the concurrent map of active sessions. Reads dominate (lookups
// and broadcast fan-out), writes are rare (create and delete), so it runs a
// reader-writer discipline.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	primary  map[string]string // human owner -> primary session id
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[string]*Session),
		primary:  make(map[string]string),
	}
}

// Put registers a session. For human sessions the previous primary for the
// same owner, if any, is evicted so each user has at most one.
func (r *Registry) Put(s *Session) (evicted *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !s.IsBot {
		if oldID, ok := r.primary[s.Owner]; ok && oldID != s.ID {
			evicted = r.sessions[oldID]
			delete(r.sessions, oldID)
		}
		r.primary[s.Owner] = s.ID
	}
	r.sessions[s.ID] = s
	if evicted != nil {
		log.Debug().Str("owner", s.Owner).Str("replaced", evicted.ID).Msg("primary session replaced")
	}
	return evicted
}

// Get looks up a session by id.
func (r *Registry) Get(id string) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	return s, ok
}

// Primary returns the human owner's primary session.
func (r *Registry) Primary(owner string) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.primary[owner]
	if !ok {
		return nil, false
	}
	s, ok := r.sessions[id]
	return s, ok
}

// FindByAPIKey resolves a bot session by its API key.
func (r *Registry) FindByAPIKey(key string) (*Session, bool) {
	if key == "" {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, s := range r.sessions {
		if s.IsBot && s.APIKey == key {
			return s, true
		}
	}
	return nil, false
}

// Delete removes a session. Idempotent.
func (r *Registry) Delete(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return
	}
	delete(r.sessions, id)
	if !s.IsBot && r.primary[s.Owner] == id {
		delete(r.primary, s.Owner)
	}
}

// List returns a consistent snapshot of active sessions for iteration; the
// broadcast loop must never observe a torn view.
func (r *Registry) List() []*Session {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		out = append(out, s)
	}
	return out
}

// Len returns the number of active sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
