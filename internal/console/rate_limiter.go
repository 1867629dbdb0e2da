package console

import (
	"net"
	"net/http"
	"sync"
	"time"

	apperrors "github.com/league-panel/internal/errors"
	"golang.org/x/time/rate"
)

// LoginLimiter throttles sign-in attempts per remote IP
type LoginLimiter struct {
	limiters map[string]*rate.Limiter
	mu       sync.RWMutex

	limit rate.Limit
	burst int
}

// NewLoginLimiter allows perMinute attempts per IP with the given burst.
// A non-positive perMinute disables throttling.
func NewLoginLimiter(perMinute, burst int) *LoginLimiter {
	limit := rate.Inf
	if perMinute > 0 {
		limit = rate.Every(time.Minute / time.Duration(perMinute))
	}
	if burst <= 0 {
		burst = 1
	}
	return &LoginLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    limit,
		burst:    burst,
	}
}

// getLimiter returns the limiter for one client address
func (l *LoginLimiter) getLimiter(key string) *rate.Limiter {
	l.mu.RLock()
	limiter, exists := l.limiters[key]
	l.mu.RUnlock()

	if exists {
		return limiter
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	// Double-check in case another goroutine created it
	if limiter, exists := l.limiters[key]; exists {
		return limiter
	}

	limiter = rate.NewLimiter(l.limit, l.burst)
	l.limiters[key] = limiter

	return limiter
}

// Allow reports whether a sign-in from r may proceed now
func (l *LoginLimiter) Allow(r *http.Request) bool {
	return l.getLimiter(clientIP(r)).Allow()
}

// Middleware hands attempts over the limit to rejected instead of next
func (l *LoginLimiter) Middleware(next http.Handler, rejected func(http.ResponseWriter, *http.Request, *apperrors.CategorizedError)) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.Allow(r) {
			w.Header().Set("Retry-After", "60")
			rejected(w, r, apperrors.NewRateLimitError(60))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
