package session

import (
	"context"
	"testing"
	"time"

	"github.com/league-panel/internal/credentials"
	apperrors "github.com/league-panel/internal/errors"
	"github.com/league-panel/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAuth struct {
	resp  *models.SignInResponse
	err   error
	calls int
}

func (s *stubAuth) SignIn(_ context.Context, _, _ string) (*models.SignInResponse, error) {
	s.calls++
	return s.resp, s.err
}

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func newController(auth Authenticator) (*Controller, *credentials.MemoryStore, *clock) {
	c := &clock{t: time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)}
	store := credentials.NewMemoryStore(c.now)
	m := NewManager(auth, 8*time.Hour, 30*24*time.Hour)
	return m.Controller(store), store, c
}

func TestLogin_Success(t *testing.T) {
	auth := &stubAuth{resp: &models.SignInResponse{AccessToken: "abc", TokenType: "bearer"}}
	ctrl, store, _ := newController(auth)
	ctx := context.Background()

	require.NoError(t, ctrl.Login(ctx, "alice", "pw"))

	state := ctrl.State(ctx)
	assert.True(t, state.Authenticated)
	assert.Equal(t, "abc", state.Token)
	assert.Equal(t, "alice", state.Username)

	token, ok := store.Get(ctx, credentials.TokenKey)
	assert.True(t, ok)
	assert.Equal(t, "abc", token)
}

func TestLogin_FailureLeavesStateUntouched(t *testing.T) {
	wantErr := apperrors.NewRequestError("Invalid credentials")
	ctrl, _, _ := newController(&stubAuth{err: wantErr})
	ctx := context.Background()

	err := ctrl.Login(ctx, "alice", "wrong")
	assert.Same(t, wantErr, err, "error is returned unchanged")
	assert.False(t, ctrl.IsAuthenticated(ctx))
	assert.Empty(t, ctrl.Username(ctx))
}

func TestLogin_TokenTTL(t *testing.T) {
	tests := []struct {
		name      string
		expiresIn int64
		aliveAt   time.Duration
		deadAt    time.Duration
	}{
		{"default lifetime", 0, 7 * time.Hour, 9 * time.Hour},
		{"server lifetime", 3600, 50 * time.Minute, 61 * time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth := &stubAuth{resp: &models.SignInResponse{AccessToken: "abc", ExpiresIn: tt.expiresIn}}
			ctrl, _, c := newController(auth)
			ctx := context.Background()
			require.NoError(t, ctrl.Login(ctx, "alice", "pw"))
			start := c.t

			c.t = start.Add(tt.aliveAt)
			assert.True(t, ctrl.IsAuthenticated(ctx))

			c.t = start.Add(tt.deadAt)
			assert.False(t, ctrl.IsAuthenticated(ctx), "expired token means unauthenticated")
			assert.Equal(t, "alice", ctrl.Username(ctx), "username outlives the token")
		})
	}
}

func TestIsAuthenticated_RequiresBothEntries(t *testing.T) {
	ctrl, store, _ := newController(&stubAuth{})
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, credentials.TokenKey, "abc", time.Hour))
	assert.False(t, ctrl.IsAuthenticated(ctx), "token without username")

	require.NoError(t, store.Remove(ctx, credentials.TokenKey))
	require.NoError(t, store.Set(ctx, credentials.UsernameKey, "alice", time.Hour))
	assert.False(t, ctrl.IsAuthenticated(ctx), "username without token")

	require.NoError(t, store.Set(ctx, credentials.TokenKey, "abc", time.Hour))
	assert.True(t, ctrl.IsAuthenticated(ctx))
}

func TestLogout_ClearsWithoutNetwork(t *testing.T) {
	auth := &stubAuth{resp: &models.SignInResponse{AccessToken: "abc"}}
	ctrl, store, _ := newController(auth)
	ctx := context.Background()
	require.NoError(t, ctrl.Login(ctx, "alice", "pw"))

	require.NoError(t, ctrl.Logout(ctx))

	assert.Equal(t, 1, auth.calls, "logout makes no backend call")
	assert.False(t, ctrl.IsAuthenticated(ctx))
	_, ok := store.Get(ctx, credentials.UsernameKey)
	assert.False(t, ok)

	// Logging out twice is harmless.
	assert.NoError(t, ctrl.Logout(ctx))
}
