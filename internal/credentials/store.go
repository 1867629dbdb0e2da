// Package credentials persists the operator's auth token and display name.
//
// Every entry carries its own lifetime, so the token and the username can
// expire independently of one another. Nothing here checks token freshness:
// an expired token is only discovered when the backend rejects a request.
package credentials

import (
	"context"
	"sync"
	"time"
)

// Entry names shared with the original browser console, so existing cookies keep working.
const (
	TokenKey    = "admin_access_token"
	UsernameKey = "admin_username"
)

// Store is a small key/value store with per-entry expiry.
type Store interface {
	// Get returns the value of name, or false when it is absent or expired.
	Get(ctx context.Context, name string) (string, bool)
	// Set stores value under name for ttl.
	Set(ctx context.Context, name, value string, ttl time.Duration) error
	// Remove deletes name; removing an absent entry is not an error.
	Remove(ctx context.Context, name string) error
}

type storeKey struct{}

// WithStore attaches the store of the current browser session or CLI profile to ctx
func WithStore(ctx context.Context, s Store) context.Context {
	return context.WithValue(ctx, storeKey{}, s)
}

// FromContext returns the store attached to ctx, or an always-empty store
func FromContext(ctx context.Context) Store {
	if s, ok := ctx.Value(storeKey{}).(Store); ok && s != nil {
		return s
	}
	return emptyStore{}
}

type emptyStore struct{}

func (emptyStore) Get(context.Context, string) (string, bool) { return "", false }

func (emptyStore) Set(context.Context, string, string, time.Duration) error { return nil }

func (emptyStore) Remove(context.Context, string) error { return nil }

// MemoryStore keeps entries in process memory
type MemoryStore struct {
	mu      sync.Mutex
	now     func() time.Time
	entries map[string]memoryEntry
}

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

// NewMemoryStore creates an empty store; now defaults to time.Now
func NewMemoryStore(now func() time.Time) *MemoryStore {
	if now == nil {
		now = time.Now
	}
	return &MemoryStore{now: now, entries: make(map[string]memoryEntry)}
}

// Get implements Store
func (m *MemoryStore) Get(_ context.Context, name string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[name]
	if !ok {
		return "", false
	}
	if !m.now().Before(e.expiresAt) {
		delete(m.entries, name)
		return "", false
	}
	return e.value, true
}

// Set implements Store
func (m *MemoryStore) Set(_ context.Context, name, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[name] = memoryEntry{value: value, expiresAt: m.now().Add(ttl)}
	return nil
}

// Remove implements Store
func (m *MemoryStore) Remove(_ context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, name)
	return nil
}
