package auth

import (
	"context"
	"sync"
	"time"
)

// MemoryRevoker is the in-process Revoker used when Redis is not configured.
type MemoryRevoker struct {
	mu    sync.Mutex
	until map[string]time.Time
	now   func() time.Time
}

func NewMemoryRevoker() *MemoryRevoker {
	return &MemoryRevoker{until: make(map[string]time.Time), now: time.Now}
}

func (m *MemoryRevoker) Revoke(_ context.Context, sessionID string, until time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.until[sessionID] = until
	m.gc()
	return nil
}

func (m *MemoryRevoker) IsRevoked(_ context.Context, sessionID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.until[sessionID]
	return ok, nil
}

// gc drops entries whose tokens have expired on their own.
func (m *MemoryRevoker) gc() {
	now := m.now()
	for id, t := range m.until {
		if now.After(t) {
			delete(m.until, id)
		}
	}
}
