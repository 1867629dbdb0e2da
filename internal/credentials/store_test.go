package credentials

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/league-panel/internal/storage"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func TestMemoryStore_IndependentExpiry(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{t: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	store := NewMemoryStore(clock.now)

	require.NoError(t, store.Set(ctx, TokenKey, "tok", 8*time.Hour))
	require.NoError(t, store.Set(ctx, UsernameKey, "alice", 30*24*time.Hour))

	clock.advance(9 * time.Hour)

	_, ok := store.Get(ctx, TokenKey)
	assert.False(t, ok, "token expired")
	name, ok := store.Get(ctx, UsernameKey)
	assert.True(t, ok, "username remembered")
	assert.Equal(t, "alice", name)

	require.NoError(t, store.Remove(ctx, UsernameKey))
	_, ok = store.Get(ctx, UsernameKey)
	assert.False(t, ok)
	assert.NoError(t, store.Remove(ctx, "never-set"))
}

func TestFromContext(t *testing.T) {
	ctx := context.Background()
	_, ok := FromContext(ctx).Get(ctx, TokenKey)
	assert.False(t, ok)

	store := NewMemoryStore(nil)
	require.NoError(t, store.Set(ctx, TokenKey, "tok", time.Hour))
	ctx = WithStore(ctx, store)
	got, ok := FromContext(ctx).Get(ctx, TokenKey)
	assert.True(t, ok)
	assert.Equal(t, "tok", got)
}

func TestCookieStore_SetReadsBackWithinRequest(t *testing.T) {
	ctx := context.Background()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", nil)

	store := CookieFactory{Secure: true}.ForRequest(rec, req)
	require.NoError(t, store.Set(ctx, UsernameKey, "Jane Doe", 30*24*time.Hour))
	require.NoError(t, store.Set(ctx, TokenKey, "abc.def", 8*time.Hour))

	name, ok := store.Get(ctx, UsernameKey)
	assert.True(t, ok)
	assert.Equal(t, "Jane Doe", name)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 2)
	byName := map[string]*http.Cookie{}
	for _, c := range cookies {
		byName[c.Name] = c
	}
	assert.Equal(t, 30*24*3600, byName[UsernameKey].MaxAge)
	assert.Equal(t, 8*3600, byName[TokenKey].MaxAge)
	assert.True(t, byName[TokenKey].HttpOnly)
	assert.True(t, byName[TokenKey].Secure)
}

func TestCookieStore_ReadsRequestCookiesAndRemoves(t *testing.T) {
	ctx := context.Background()
	req := httptest.NewRequest(http.MethodGet, "/tokens", nil)
	req.AddCookie(&http.Cookie{Name: TokenKey, Value: "abc"})
	req.AddCookie(&http.Cookie{Name: UsernameKey, Value: "Jane+Doe"})
	rec := httptest.NewRecorder()

	store := NewCookieStore(rec, req, false)
	name, ok := store.Get(ctx, UsernameKey)
	assert.True(t, ok)
	assert.Equal(t, "Jane Doe", name)

	require.NoError(t, store.Remove(ctx, TokenKey))
	_, ok = store.Get(ctx, TokenKey)
	assert.False(t, ok, "removal is visible in the same request")

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, TokenKey, cookies[0].Name)
	assert.Equal(t, -1, cookies[0].MaxAge)
}

func setupRedis(t *testing.T) (*miniredis.Miniredis, *storage.RedisCache) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, storage.NewRedisCacheFromClient(client, "panel:credentials:")
}

func TestRedisStore_NewSessionIssuesCookie(t *testing.T) {
	mr, cache := setupRedis(t)
	ctx := context.Background()
	factory := RedisFactory{Cache: cache, SessionTTL: 30 * 24 * time.Hour}

	rec := httptest.NewRecorder()
	store := factory.ForRequest(rec, httptest.NewRequest(http.MethodPost, "/login", nil))

	_, ok := store.Get(ctx, TokenKey)
	assert.False(t, ok)

	require.NoError(t, store.Set(ctx, TokenKey, "tok", 8*time.Hour))
	require.NoError(t, store.Set(ctx, UsernameKey, "alice", 30*24*time.Hour))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1, "one session cookie regardless of entries")
	sid := cookies[0].Value
	assert.Equal(t, SessionCookie, cookies[0].Name)

	assert.Equal(t, 8*time.Hour, mr.TTL("panel:credentials:"+sid+":"+TokenKey))

	// A later request presenting the cookie sees both entries.
	next := httptest.NewRequest(http.MethodGet, "/tokens", nil)
	next.AddCookie(cookies[0])
	again := factory.ForRequest(httptest.NewRecorder(), next)
	name, ok := again.Get(ctx, UsernameKey)
	assert.True(t, ok)
	assert.Equal(t, "alice", name)

	mr.FastForward(9 * time.Hour)
	_, ok = again.Get(ctx, TokenKey)
	assert.False(t, ok, "token expires on its own")
	_, ok = again.Get(ctx, UsernameKey)
	assert.True(t, ok)

	require.NoError(t, again.Remove(ctx, UsernameKey))
	_, ok = again.Get(ctx, UsernameKey)
	assert.False(t, ok)
}

func TestRedisStore_SetRenewsSessionCookie(t *testing.T) {
	mr, cache := setupRedis(t)
	ctx := context.Background()
	factory := RedisFactory{Cache: cache, SessionTTL: 30 * 24 * time.Hour}

	first := httptest.NewRecorder()
	store := factory.ForRequest(first, httptest.NewRequest(http.MethodPost, "/login", nil))
	require.NoError(t, store.Set(ctx, UsernameKey, "alice", 30*24*time.Hour))
	issued := first.Result().Cookies()
	require.Len(t, issued, 1)

	mr.FastForward(29 * 24 * time.Hour)

	// Signing in again on day 29 keeps the session id and pushes the cookie out another 30 days.
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.AddCookie(issued[0])
	rec := httptest.NewRecorder()
	again := factory.ForRequest(rec, req)
	require.NoError(t, again.Set(ctx, TokenKey, "tok", 8*time.Hour))
	require.NoError(t, again.Set(ctx, UsernameKey, "alice", 30*24*time.Hour))

	renewed := rec.Result().Cookies()
	require.Len(t, renewed, 1, "renewed once per request")
	assert.Equal(t, issued[0].Value, renewed[0].Value)
	assert.Equal(t, 30*24*60*60, renewed[0].MaxAge)
	assert.Equal(t, 30*24*time.Hour, mr.TTL("panel:credentials:"+issued[0].Value+":"+UsernameKey))

	// Reads alone never touch the cookie.
	read := httptest.NewRecorder()
	factory.ForRequest(read, req).Get(ctx, UsernameKey)
	assert.Empty(t, read.Result().Cookies())
}

func TestRedisStore_IgnoresForgedSessionID(t *testing.T) {
	_, cache := setupRedis(t)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "*"})

	store := RedisFactory{Cache: cache}.ForRequest(httptest.NewRecorder(), req).(*RedisStore)
	assert.Empty(t, store.SessionID())
}

func TestFileStore(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "panelctl", "credentials.json")
	clock := &fakeClock{t: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}

	store := NewFileStore(path)
	store.now = clock.now

	_, ok := store.Get(ctx, TokenKey)
	assert.False(t, ok, "missing file is an empty store")

	require.NoError(t, store.Set(ctx, TokenKey, "tok", time.Hour))
	require.NoError(t, store.Set(ctx, UsernameKey, "alice", 24*time.Hour))

	// A second instance reads the same file.
	other := NewFileStore(path)
	other.now = clock.now
	got, ok := other.Get(ctx, TokenKey)
	assert.True(t, ok)
	assert.Equal(t, "tok", got)

	clock.advance(2 * time.Hour)
	_, ok = other.Get(ctx, TokenKey)
	assert.False(t, ok)
	_, ok = other.Get(ctx, UsernameKey)
	assert.True(t, ok)

	require.NoError(t, other.Remove(ctx, UsernameKey))
	_, ok = store.Get(ctx, UsernameKey)
	assert.False(t, ok)
}
