package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore implements Store using in-process storage. It is a dev and test
// fallback; sessions do not survive a restart.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]*entry
	done chan struct{}
}

type entry struct {
	email      string
	expiration time.Time
}

// NewMemoryStore creates a new in-memory session store
func NewMemoryStore() *MemoryStore {
	ms := &MemoryStore{
		data: make(map[string]*entry),
		done: make(chan struct{}),
	}

	// Start cleanup goroutine
	go ms.cleanup()

	return ms
}

// Put creates or overwrites a session entry
func (m *MemoryStore) Put(ctx context.Context, refreshToken, email string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data[Key(refreshToken)] = &entry{
		email:      email,
		expiration: time.Now().Add(ttl),
	}
	return nil
}

// Get returns the email bound to a refresh token
func (m *MemoryStore) Get(ctx context.Context, refreshToken string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, exists := m.data[Key(refreshToken)]
	if !exists || time.Now().After(e.expiration) {
		return "", ErrNotFound
	}
	return e.email, nil
}

// Delete removes a session entry, reporting ErrNotFound when none existed
func (m *MemoryStore) Delete(ctx context.Context, refreshToken string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := Key(refreshToken)
	e, exists := m.data[key]
	if !exists || time.Now().After(e.expiration) {
		delete(m.data, key)
		return ErrNotFound
	}
	delete(m.data, key)
	return nil
}

// Ping always succeeds for the in-memory store
func (m *MemoryStore) Ping(ctx context.Context) error {
	return nil
}

// cleanup periodically removes expired entries
func (m *MemoryStore) cleanup() {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.mu.Lock()
			now := time.Now()
			for key, e := range m.data {
				if now.After(e.expiration) {
					delete(m.data, key)
				}
			}
			m.mu.Unlock()
		case <-m.done:
			return
		}
	}
}

// Close stops the cleanup goroutine
func (m *MemoryStore) Close() error {
	close(m.done)
	return nil
}
