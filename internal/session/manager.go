// Package session tracks live wizard sessions. Each session owns its own
// store instance; nothing is shared between sessions and there are no
// package-level singletons.
package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"exwiz/internal/model"
	"exwiz/internal/snapshot"
	"exwiz/internal/wizard"
)

// ErrNotFound is returned for unknown session ids.
var ErrNotFound = errors.New("session not found")

// Session binds a wizard store to an id. The store itself is synchronous
// and single-owner; the session mutex serializes concurrent HTTP callers.
type Session struct {
	ID        string
	Flow      model.Flow
	CreatedAt time.Time

	mu    sync.Mutex
	store *wizard.Store
}

// With runs fn while holding the session lock. All store access goes
// through here.
func (s *Session) With(fn func(st *wizard.Store)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.store)
}

// Manager creates and resolves sessions, and checkpoints them to the
// snapshot store when one is configured.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	storeOpts []wizard.Option
	snaps     *snapshot.Store
	now       func() time.Time
	log       *zap.Logger
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithStoreOptions sets the options applied to every session's store, such
// as the injected balance read.
func WithStoreOptions(opts ...wizard.Option) ManagerOption {
	return func(m *Manager) { m.storeOpts = opts }
}

// WithSnapshots enables checkpoint persistence.
func WithSnapshots(s *snapshot.Store) ManagerOption {
	return func(m *Manager) { m.snaps = s }
}

func WithLogger(l *zap.Logger) ManagerOption {
	return func(m *Manager) { m.log = l }
}

// NewManager creates an empty manager.
func NewManager(opts ...ManagerOption) *Manager {
	m := &Manager{
		sessions: make(map[string]*Session),
		now:      time.Now,
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Create starts a fresh session for a flow.
func (m *Manager) Create(flow model.Flow) (*Session, error) {
	st, err := wizard.New(flow, m.storeOpts...)
	if err != nil {
		return nil, err
	}

	s := &Session{
		ID:        uuid.NewString(),
		Flow:      flow,
		CreatedAt: m.now(),
		store:     st,
	}

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	m.log.Info("session created", zap.String("session", s.ID), zap.String("flow", string(flow)))
	return s, nil
}

// Resume restores a session from its persisted snapshot under its original
// id. Fails when persistence is disabled or no snapshot exists.
func (m *Manager) Resume(sessionID string) (*Session, error) {
	if m.snaps == nil {
		return nil, errors.New("session persistence is not enabled")
	}

	state, err := m.snaps.Load(sessionID)
	if err != nil {
		return nil, err
	}

	st, err := wizard.New(state.Flow, m.storeOpts...)
	if err != nil {
		return nil, err
	}
	if err := st.Restore(state); err != nil {
		return nil, fmt.Errorf("failed to restore session: %w", err)
	}

	s := &Session{
		ID:        sessionID,
		Flow:      state.Flow,
		CreatedAt: m.now(),
		store:     st,
	}

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	m.log.Info("session resumed", zap.String("session", s.ID), zap.String("flow", string(state.Flow)))
	return s, nil
}

// Get resolves a session by id.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

// Delete discards a session and its snapshot.
func (m *Manager) Delete(id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
	if m.snaps != nil {
		if err := m.snaps.Delete(id); err != nil {
			m.log.Warn("failed to delete snapshot", zap.String("session", id), zap.Error(err))
		}
	}
}

// Checkpoint persists the session's current state. A checkpoint failure is
// logged, not surfaced: persistence is best-effort and never blocks a
// wizard transition.
func (m *Manager) Checkpoint(s *Session) {
	if m.snaps == nil {
		return
	}
	var state wizard.State
	s.With(func(st *wizard.Store) { state = st.Snapshot() })
	if err := m.snaps.Save(s.ID, state); err != nil {
		m.log.Warn("failed to checkpoint session", zap.String("session", s.ID), zap.Error(err))
	}
}
