// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package browse

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/taibuivan/photodir/internal/photographer"
	"github.com/taibuivan/photodir/internal/platform/apperr"
	"github.com/taibuivan/photodir/internal/platform/constants"
	"github.com/taibuivan/photodir/pkg/uuid"
)

// ErrSessionNotFound is returned for unknown or evicted session ids.
var ErrSessionNotFound = apperr.NotFound("Session")

// ManagerConfig holds the dependencies of a [Manager].
type ManagerConfig struct {
	Source  photographer.Source
	Options Options

	// IdleTTL is how long an untouched session survives. Zero disables eviction.
	IdleTTL time.Duration

	// JanitorInterval defaults to [constants.SessionJanitorInterval].
	JanitorInterval time.Duration

	Logger *slog.Logger
}

// Manager owns the live sessions and the goroutines that feed them.
type Manager struct {
	source  photographer.Source
	options Options
	ttl     time.Duration
	logger  *slog.Logger
	now     func() time.Time

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewManager constructs a [Manager] and starts its idle janitor.
// Call [Manager.Close] to stop background work.
func NewManager(config ManagerConfig) *Manager {
	ctx, cancel := context.WithCancel(context.Background())

	manager := &Manager{
		source:   config.Source,
		options:  config.Options.withDefaults(),
		ttl:      config.IdleTTL,
		logger:   config.Logger,
		now:      time.Now,
		ctx:      ctx,
		cancel:   cancel,
		sessions: make(map[string]*Session),
	}

	if manager.ttl > 0 {
		interval := config.JanitorInterval
		if interval <= 0 {
			interval = constants.SessionJanitorInterval
		}
		manager.wg.Add(1)
		go manager.janitor(interval)
	}

	return manager
}

// Create opens a session in [PhaseLoading] and starts its single fetch.
//
// The fetch is bound to the manager's lifetime, not the caller's request.
func (manager *Manager) Create(ctx context.Context) *Session {
	session := NewSession(uuid.New(), manager.options, manager.logger)

	manager.mu.Lock()
	manager.sessions[session.ID()] = session
	manager.mu.Unlock()
	activeSessions.Inc()

	session.logger.InfoContext(ctx, "session_created")

	manager.wg.Add(1)
	go func() {
		defer manager.wg.Done()
		collection, err := manager.source.Fetch(manager.ctx)
		session.Resolve(collection, err)
	}()

	return session
}

// Get returns the session with id.
func (manager *Manager) Get(id string) (*Session, error) {
	manager.mu.RLock()
	session, ok := manager.sessions[id]
	manager.mu.RUnlock()

	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// Delete closes and forgets the session with id.
func (manager *Manager) Delete(id string) error {
	manager.mu.Lock()
	session, ok := manager.sessions[id]
	delete(manager.sessions, id)
	manager.mu.Unlock()

	if !ok {
		return ErrSessionNotFound
	}

	session.Close()
	activeSessions.Dec()
	return nil
}

// Len reports the number of live sessions.
func (manager *Manager) Len() int {
	manager.mu.RLock()
	defer manager.mu.RUnlock()
	return len(manager.sessions)
}

// EvictIdle closes every session idle for longer than the TTL and returns
// how many were evicted.
func (manager *Manager) EvictIdle() int {
	if manager.ttl <= 0 {
		return 0
	}
	cutoff := manager.now().Add(-manager.ttl)

	manager.mu.Lock()
	var idle []*Session
	for id, session := range manager.sessions {
		if session.LastActive().Before(cutoff) {
			idle = append(idle, session)
			delete(manager.sessions, id)
		}
	}
	manager.mu.Unlock()

	for _, session := range idle {
		session.Close()
		activeSessions.Dec()
		sessionEvictions.Inc()
	}

	if len(idle) > 0 {
		manager.logger.Info("sessions_evicted", slog.Int("count", len(idle)))
	}
	return len(idle)
}

func (manager *Manager) janitor(interval time.Duration) {
	defer manager.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			manager.EvictIdle()
		case <-manager.ctx.Done():
			return
		}
	}
}

// Close closes every session, then cancels in-flight fetches and stops the
// janitor. Fetches cancelled this way never reach their sessions.
func (manager *Manager) Close() {
	manager.mu.Lock()
	sessions := manager.sessions
	manager.sessions = make(map[string]*Session)
	manager.mu.Unlock()

	for _, session := range sessions {
		session.Close()
		activeSessions.Dec()
	}

	manager.cancel()
	manager.wg.Wait()
}
