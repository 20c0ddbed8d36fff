package cache

import (
	"context"
	"sync"
	"time"

	"github.com/sentraid/sentra/internal/pkg/clock"
)

// Memory is an in-process Cache for single-instance deployments and tests.
// Entries expire lazily: expiry is checked on read, not by a sweeper.
type Memory struct {
	mu      sync.Mutex
	entries map[string]time.Time
	clock   clock.Clocker
}

func NewMemory(clk clock.Clocker) *Memory {
	if clk == nil {
		clk = &clock.TimeClocker{}
	}

	return &Memory{
		entries: make(map[string]time.Time),
		clock:   clk,
	}
}

func (m *Memory) put(key string, ttl time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[key] = m.clock.Now().Add(ttl)
}

func (m *Memory) has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	expiresAt, ok := m.entries[key]
	if !ok {
		return false
	}
	if !m.clock.Now().Before(expiresAt) {
		delete(m.entries, key)
		return false
	}

	return true
}

func (m *Memory) delete(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.entries, key)
}

func (m *Memory) PutGrant(_ context.Context, principalID uint64, ttl time.Duration) error {
	m.put(grantKey(principalID), ttl)
	return nil
}

func (m *Memory) HasGrant(_ context.Context, principalID uint64) (bool, error) {
	return m.has(grantKey(principalID)), nil
}

func (m *Memory) DeleteGrant(_ context.Context, principalID uint64) error {
	m.delete(grantKey(principalID))
	return nil
}

func (m *Memory) RevokeSession(_ context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	m.put(revokedKey(jti), ttl)
	return nil
}

func (m *Memory) IsSessionRevoked(_ context.Context, jti string) (bool, error) {
	return m.has(revokedKey(jti)), nil
}
