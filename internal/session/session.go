// Package session owns the operator's authentication state.
//
// State is never cached: every read goes back to the credential store, so a
// token that expired between two requests is noticed on the next one.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/league-panel/internal/credentials"
	"github.com/league-panel/internal/logging"
	"github.com/league-panel/internal/models"
)

// Authenticator exchanges operator credentials for an access token
type Authenticator interface {
	SignIn(ctx context.Context, username, password string) (*models.SignInResponse, error)
}

// Manager is created once per process and hands out per-store controllers
type Manager struct {
	auth        Authenticator
	tokenTTL    time.Duration
	usernameTTL time.Duration
}

// NewManager creates a Manager. tokenTTL applies when the backend does not
// report the token lifetime; usernameTTL always applies to the display name.
func NewManager(auth Authenticator, tokenTTL, usernameTTL time.Duration) *Manager {
	return &Manager{auth: auth, tokenTTL: tokenTTL, usernameTTL: usernameTTL}
}

// Controller binds the manager to one credential store
func (m *Manager) Controller(store credentials.Store) *Controller {
	return &Controller{m: m, store: store}
}

// State is a snapshot of the authentication state
type State struct {
	Authenticated bool
	Token         string
	Username      string
}

// Controller performs login and logout against one store
type Controller struct {
	m     *Manager
	store credentials.Store
}

// Login signs in and, on success, persists the token and username.
// A failed sign-in returns the backend error unchanged and leaves the store untouched.
func (c *Controller) Login(ctx context.Context, username, password string) error {
	logger := logging.FromContext(ctx).Component("session").WithField("username", username)

	resp, err := c.m.auth.SignIn(ctx, username, password)
	if err != nil {
		logger.WithError(err).Info("sign-in rejected")
		return err
	}

	ttl := c.m.tokenTTL
	if resp.ExpiresIn > 0 {
		ttl = time.Duration(resp.ExpiresIn) * time.Second
	}

	if err := c.store.Set(ctx, credentials.TokenKey, resp.AccessToken, ttl); err != nil {
		return fmt.Errorf("store token: %w", err)
	}
	if err := c.store.Set(ctx, credentials.UsernameKey, username, c.m.usernameTTL); err != nil {
		_ = c.store.Remove(ctx, credentials.TokenKey)
		return fmt.Errorf("store username: %w", err)
	}

	logger.WithField("token_ttl", ttl.String()).Info("operator signed in")
	return nil
}

// Logout forgets both entries. It never contacts the backend.
func (c *Controller) Logout(ctx context.Context) error {
	errToken := c.store.Remove(ctx, credentials.TokenKey)
	errName := c.store.Remove(ctx, credentials.UsernameKey)
	return errors.Join(errToken, errName)
}

// State reads the current state from the store
func (c *Controller) State(ctx context.Context) State {
	token, hasToken := c.store.Get(ctx, credentials.TokenKey)
	username, hasName := c.store.Get(ctx, credentials.UsernameKey)
	if !hasToken || !hasName {
		return State{}
	}
	return State{Authenticated: true, Token: token, Username: username}
}

// IsAuthenticated reports whether both the token and the username are present
func (c *Controller) IsAuthenticated(ctx context.Context) bool {
	return c.State(ctx).Authenticated
}

// Username returns the remembered display name, which may outlive the token
func (c *Controller) Username(ctx context.Context) string {
	name, _ := c.store.Get(ctx, credentials.UsernameKey)
	return name
}
