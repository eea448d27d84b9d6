package session

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cory-johannsen/apothecary/internal/game/progression"
)

// ErrSessionNotFound is returned when a session ID is not registered.
var ErrSessionNotFound = errors.New("session not found")

// Manager tracks every live session. All methods are safe for concurrent use.
type Manager struct {
	mu       sync.RWMutex
	rules    *progression.Ruleset
	logger   *zap.Logger
	sessions map[uuid.UUID]*Session
	byPlayer map[string]uuid.UUID
}

// NewManager creates an empty Manager.
//
// Precondition: rules and logger must be non-nil.
func NewManager(rules *progression.Ruleset, logger *zap.Logger) *Manager {
	if rules == nil || logger == nil {
		panic("session.NewManager: precondition violated: rules and logger must be non-nil")
	}
	return &Manager{
		rules:    rules,
		logger:   logger,
		sessions: make(map[uuid.UUID]*Session),
		byPlayer: make(map[string]uuid.UUID),
	}
}

// Create starts a new session for playerName.
//
// Precondition: playerName must be non-empty.
// Postcondition: Returns the new session, or an error if the player already
// has a live session.
func (m *Manager) Create(playerName string) (*Session, error) {
	if playerName == "" {
		return nil, fmt.Errorf("player name must be non-empty")
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if id, exists := m.byPlayer[playerName]; exists {
		return nil, fmt.Errorf("player %q already has session %s", playerName, id)
	}
	sess := New(uuid.New(), playerName, m.rules, m.logger)
	m.register(sess)
	m.logger.Info("session created",
		zap.String("session_id", sess.ID.String()),
		zap.String("player", playerName),
	)
	return sess, nil
}

// Restore registers a session rebuilt from snap.
//
// Postcondition: Returns an error if the session ID or player is already live.
func (m *Manager) Restore(snap Snapshot) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.sessions[snap.ID]; exists {
		return nil, fmt.Errorf("session %s already live", snap.ID)
	}
	if id, exists := m.byPlayer[snap.PlayerName]; exists && snap.PlayerName != "" {
		return nil, fmt.Errorf("player %q already has session %s", snap.PlayerName, id)
	}
	sess := Restore(snap, m.rules, m.logger)
	m.register(sess)
	return sess, nil
}

func (m *Manager) register(sess *Session) {
	m.sessions[sess.ID] = sess
	if sess.PlayerName != "" {
		m.byPlayer[sess.PlayerName] = sess.ID
	}
}

// Get returns the session with the given ID.
//
// Postcondition: Returns (session, true) if found, or (nil, false) otherwise.
func (m *Manager) Get(id uuid.UUID) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sess, ok := m.sessions[id]
	return sess, ok
}

// GetByPlayer returns the live session of playerName.
func (m *Manager) GetByPlayer(playerName string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.byPlayer[playerName]
	if !ok {
		return nil, false
	}
	return m.sessions[id], true
}

// Remove drops the session with the given ID.
//
// Postcondition: Returns an error wrapping ErrSessionNotFound if id is not live.
func (m *Manager) Remove(id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	sess, exists := m.sessions[id]
	if !exists {
		return fmt.Errorf("removing %s: %w", id, ErrSessionNotFound)
	}
	delete(m.sessions, id)
	if m.byPlayer[sess.PlayerName] == id {
		delete(m.byPlayer, sess.PlayerName)
	}
	return nil
}

// Snapshot returns the persisted form of session id.
func (m *Manager) Snapshot(id uuid.UUID) (Snapshot, error) {
	sess, ok := m.Get(id)
	if !ok {
		return Snapshot{}, fmt.Errorf("snapshotting %s: %w", id, ErrSessionNotFound)
	}
	return sess.Snapshot(), nil
}

// Count returns the number of live sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
