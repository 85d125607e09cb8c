package checkout

import (
	"context"
	"sync"
	"time"
)

const (
	// DefaultSessionTTL is how long an untouched session survives before it
	// is dropped as abandoned.
	DefaultSessionTTL = 2 * time.Hour

	// CleanupInterval is how often the background cleanup runs
	CleanupInterval = time.Minute
)

// Manager tracks live checkout sessions so abandoned ones are closed and
// their countdown tickers released.
type Manager struct {
	mu       sync.RWMutex
	deps     Deps
	sessions map[string]*Controller
	idleTTL  time.Duration

	stopCleanup chan struct{}
	wg          sync.WaitGroup
}

// NewManager creates a session manager and starts its cleanup loop.
func NewManager(deps Deps, idleTTL time.Duration) *Manager {
	if idleTTL <= 0 {
		idleTTL = DefaultSessionTTL
	}
	m := &Manager{
		deps:        deps,
		sessions:    make(map[string]*Controller),
		idleTTL:     idleTTL,
		stopCleanup: make(chan struct{}),
	}

	m.wg.Add(1)
	go m.cleanupLoop()

	return m
}

func (m *Manager) cleanupLoop() {
	defer m.wg.Done()

	ticker := time.NewTicker(CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.expireSessions()
		case <-m.stopCleanup:
			return
		}
	}
}

func (m *Manager) expireSessions() {
	cutoff := time.Now().Add(-m.idleTTL)

	m.mu.Lock()
	var expired []*Controller
	for id, session := range m.sessions {
		if session.IdleSince().Before(cutoff) {
			expired = append(expired, session)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()

	for _, session := range expired {
		session.Close()
	}
}

// Start opens a new session for a product and registers it.
func (m *Manager) Start(ctx context.Context, productID string) (*Controller, error) {
	session, err := StartCheckout(ctx, m.deps, productID)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.sessions[session.ID()] = session
	m.mu.Unlock()

	return session, nil
}

// Get looks a session up by id.
func (m *Manager) Get(id string) (*Controller, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	session, exists := m.sessions[id]
	if !exists {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// Remove drops a session, closing its countdown.
func (m *Manager) Remove(id string) {
	m.mu.Lock()
	session, exists := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if exists {
		session.Close()
	}
}

// Close stops the cleanup loop and every live session.
func (m *Manager) Close() {
	close(m.stopCleanup)
	m.wg.Wait()

	m.mu.Lock()
	sessions := make([]*Controller, 0, len(m.sessions))
	for _, session := range m.sessions {
		sessions = append(sessions, session)
	}
	m.sessions = make(map[string]*Controller)
	m.mu.Unlock()

	for _, session := range sessions {
		session.Close()
	}
}

// Len reports the number of live sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
