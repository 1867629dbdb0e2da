package credentials

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/league-panel/internal/logging"
	"github.com/league-panel/internal/storage"
)

// SessionCookie names the browser cookie holding the opaque server-side session id
const SessionCookie = "console_session"

// Cache is the subset of storage.RedisCache used for server-side sessions
type Cache interface {
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
}

var _ Cache = (*storage.RedisCache)(nil)

// RedisFactory keeps credentials in Redis, keyed by a random session id cookie.
// SessionTTL bounds the id cookie and should be at least the longest entry TTL.
type RedisFactory struct {
	Cache      Cache
	Secure     bool
	SessionTTL time.Duration
}

// ForRequest implements Factory
func (f RedisFactory) ForRequest(w http.ResponseWriter, r *http.Request) Store {
	s := &RedisStore{cache: f.Cache, w: w, secure: f.Secure, sessionTTL: f.SessionTTL}
	if c, err := r.Cookie(SessionCookie); err == nil {
		if _, err := uuid.Parse(c.Value); err == nil {
			s.sid = c.Value
		}
	}
	return s
}

// RedisStore stores each entry as its own Redis key with a native TTL
type RedisStore struct {
	cache      Cache
	w          http.ResponseWriter
	secure     bool
	sessionTTL time.Duration

	mu        sync.Mutex
	sid       string
	refreshed bool
}

// SessionID returns the session id, empty until the first Set of a new session
func (s *RedisStore) SessionID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sid
}

func (s *RedisStore) key(sid, name string) string {
	return sid + ":" + name
}

// Get implements Store
func (s *RedisStore) Get(ctx context.Context, name string) (string, bool) {
	sid := s.SessionID()
	if sid == "" {
		return "", false
	}

	value, err := s.cache.Get(ctx, s.key(sid, name))
	if err != nil {
		if !errors.Is(err, storage.ErrCacheMiss) {
			logging.FromContext(ctx).Component("credentials").WithError(err).Warn("session lookup failed")
		}
		return "", false
	}
	return value, true
}

// Set implements Store. Every write also renews the id cookie so it lives as
// long as the newest entry.
func (s *RedisStore) Set(ctx context.Context, name, value string, ttl time.Duration) error {
	return s.cache.Set(ctx, s.key(s.touchSession(), name), value, ttl)
}

// Remove implements Store
func (s *RedisStore) Remove(ctx context.Context, name string) error {
	sid := s.SessionID()
	if sid == "" {
		return nil
	}
	return s.cache.Del(ctx, s.key(sid, name))
}

func (s *RedisStore) touchSession() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sid == "" {
		s.sid = uuid.NewString()
	}
	if s.w != nil && !s.refreshed {
		http.SetCookie(s.w, &http.Cookie{
			Name:     SessionCookie,
			Value:    s.sid,
			Path:     "/",
			MaxAge:   int(s.sessionTTL / time.Second),
			HttpOnly: true,
			Secure:   s.secure,
			SameSite: http.SameSiteLaxMode,
		})
		s.refreshed = true
	}
	return s.sid
}
