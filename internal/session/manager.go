package session

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"

	"marketsim/internal/push"
)

// Manager owns session lifecycle: every live session gets a scheduler, and
// removing a session stops its scheduler. All components hang off this one
// value; there are no package-level singletons.
type Manager struct {
	registry *Registry
	hub      *push.Hub

	mu         sync.Mutex
	schedulers map[string]*Scheduler

	ctx context.Context
}

// NewManager creates a manager whose schedulers live under ctx.
func NewManager(ctx context.Context, hub *push.Hub) *Manager {
	return &Manager{
		registry:   NewRegistry(),
		hub:        hub,
		schedulers: make(map[string]*Scheduler),
		ctx:        ctx,
	}
}

// Registry exposes the session map for lookups.
func (m *Manager) Registry() *Registry {
	return m.registry
}

// Start registers a session and begins ticking it. A human owner's previous
// primary session, if any, is stopped and evicted.
func (m *Manager) Start(s *Session) {
	if evicted := m.registry.Put(s); evicted != nil {
		m.stopScheduler(evicted.ID)
	}

	sc := NewScheduler(s, m.hub)
	m.mu.Lock()
	m.schedulers[s.ID] = sc
	m.mu.Unlock()
	sc.Start(m.ctx)

	log.Info().Str("session", s.ID).Str("owner", s.Owner).Bool("bot", s.IsBot).Str("mode", string(s.Config.Mode)).Msg("session started")
}

// Stop tears down a session. Idempotent.
func (m *Manager) Stop(id string) {
	m.stopScheduler(id)
	m.registry.Delete(id)
}

func (m *Manager) stopScheduler(id string) {
	m.mu.Lock()
	sc := m.schedulers[id]
	delete(m.schedulers, id)
	m.mu.Unlock()
	if sc != nil {
		sc.Stop()
	}
}

// Shutdown stops every scheduler. Sessions stay registered so in-flight
// readers finish; the process is exiting anyway.
func (m *Manager) Shutdown() {
	m.mu.Lock()
	ids := make([]string, 0, len(m.schedulers))
	for id := range m.schedulers {
		ids = append(ids, id)
	}
	m.mu.Unlock()
	for _, id := range ids {
		m.stopScheduler(id)
	}
}
