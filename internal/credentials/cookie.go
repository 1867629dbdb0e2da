package credentials

import (
	"context"
	"net/http"
	"net/url"
	"sync"
	"time"
)

// Factory builds the Store for one HTTP request
type Factory interface {
	ForRequest(w http.ResponseWriter, r *http.Request) Store
}

// CookieFactory keeps each credential in its own browser cookie
type CookieFactory struct {
	Secure bool
}

// ForRequest implements Factory
func (f CookieFactory) ForRequest(w http.ResponseWriter, r *http.Request) Store {
	return NewCookieStore(w, r, f.Secure)
}

// CookieStore reads credentials from the request's cookies and writes them as
// Set-Cookie headers. Writes are also kept in memory so later reads during the
// same request observe them.
type CookieStore struct {
	w      http.ResponseWriter
	r      *http.Request
	secure bool

	mu      sync.Mutex
	written map[string]*string // nil value marks a removal
}

// NewCookieStore creates a store bound to one request/response pair
func NewCookieStore(w http.ResponseWriter, r *http.Request, secure bool) *CookieStore {
	return &CookieStore{w: w, r: r, secure: secure, written: make(map[string]*string)}
}

// Get implements Store
func (c *CookieStore) Get(_ context.Context, name string) (string, bool) {
	c.mu.Lock()
	if v, ok := c.written[name]; ok {
		c.mu.Unlock()
		if v == nil {
			return "", false
		}
		return *v, true
	}
	c.mu.Unlock()

	cookie, err := c.r.Cookie(name)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	value, err := url.QueryUnescape(cookie.Value)
	if err != nil {
		return "", false
	}
	return value, true
}

// Set implements Store
func (c *CookieStore) Set(_ context.Context, name, value string, ttl time.Duration) error {
	http.SetCookie(c.w, &http.Cookie{
		Name:     name,
		Value:    url.QueryEscape(value),
		Path:     "/",
		MaxAge:   int(ttl / time.Second),
		Expires:  time.Now().Add(ttl),
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	})

	c.mu.Lock()
	c.written[name] = &value
	c.mu.Unlock()
	return nil
}

// Remove implements Store
func (c *CookieStore) Remove(_ context.Context, name string) error {
	http.SetCookie(c.w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	})

	c.mu.Lock()
	c.written[name] = nil
	c.mu.Unlock()
	return nil
}
