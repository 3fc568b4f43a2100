// Package session tracks the current authenticated identity. It owns the
// credential lifecycle (token set on login, cleared on logout) and notifies
// subscribers of authentication transitions so dependent state, like the
// cart, can react.
package session

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/mnorrell/shopfront/api"
	"github.com/mnorrell/shopfront/core"
)

// AuthAPI is the slice of the API client the session manager uses
type AuthAPI interface {
	Login(ctx context.Context, req api.LoginRequest) (string, error)
	Register(ctx context.Context, req api.RegisterRequest) (*api.User, error)
	Profile(ctx context.Context) (*api.User, error)
}

// Manager derives authentication state from the credential store and the
// auth endpoints. Listeners are invoked synchronously on every transition;
// in particular, logout listeners run before Logout returns.
type Manager struct {
	api    AuthAPI
	creds  core.CredentialStore
	logger core.Logger

	mu            sync.RWMutex
	authenticated bool
	user          *api.User
	sessionID     string
	listeners     []core.AuthListener
}

// NewManager creates a session manager in the unauthenticated state
func NewManager(authAPI AuthAPI, creds core.CredentialStore, logger core.Logger) *Manager {
	if logger == nil {
		logger = &core.NoOpLogger{}
	}
	return &Manager{
		api:    authAPI,
		creds:  creds,
		logger: logger,
	}
}

// Subscribe registers a listener for authentication transitions
func (m *Manager) Subscribe(listener core.AuthListener) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, listener)
}

// Authenticated reports whether a user is currently logged in
func (m *Manager) Authenticated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.authenticated
}

// User returns the current profile, or nil when unauthenticated
func (m *Manager) User() *api.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.user == nil {
		return nil
	}
	user := *m.user
	return &user
}

// SessionID returns the identifier of the current login session, empty when
// unauthenticated. It appears in log fields to correlate a user's activity.
func (m *Manager) SessionID() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sessionID
}

// Register creates a new account; it does not log the user in
func (m *Manager) Register(ctx context.Context, req api.RegisterRequest) (*api.User, error) {
	return m.api.Register(ctx, req)
}

// Login authenticates, persists the bearer token, fetches the profile, and
// notifies listeners of the transition to authenticated.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	token, err := m.api.Login(ctx, api.LoginRequest{Email: email, Password: password})
	if err != nil {
		return err
	}
	if err := m.creds.SetToken(ctx, token); err != nil {
		return err
	}

	sessionID := uuid.New().String()

	user, err := m.api.Profile(ctx)
	if err != nil {
		// The token is valid even when the profile fetch fails; stay logged
		// in with an unknown profile.
		m.logger.Warn("Profile fetch failed after login", map[string]interface{}{
			"operation":  "session_login",
			"session_id": sessionID,
			"error":      err.Error(),
		})
		user = nil
	}

	m.mu.Lock()
	m.authenticated = true
	m.user = user
	m.sessionID = sessionID
	m.mu.Unlock()

	m.logger.Info("User logged in", map[string]interface{}{
		"operation":  "session_login",
		"session_id": sessionID,
	})

	m.notify(true)
	return nil
}

// Resume restores a persisted session: when the credential store already
// holds a token (e.g. Redis across restarts), the profile is fetched and
// listeners are notified as if a login had happened.
func (m *Manager) Resume(ctx context.Context) error {
	if _, err := m.creds.Token(ctx); err != nil {
		if errors.Is(err, core.ErrNoCredential) {
			return nil
		}
		return err
	}

	sessionID := uuid.New().String()

	user, err := m.api.Profile(ctx)
	if err != nil {
		m.logger.Warn("Profile fetch failed on resume", map[string]interface{}{
			"operation":  "session_resume",
			"session_id": sessionID,
			"error":      err.Error(),
		})
		user = nil
	}

	m.mu.Lock()
	m.authenticated = true
	m.user = user
	m.sessionID = sessionID
	m.mu.Unlock()

	m.logger.Info("Session resumed", map[string]interface{}{
		"operation":  "session_resume",
		"session_id": sessionID,
	})

	m.notify(true)
	return nil
}

// Logout clears the credential and notifies listeners synchronously: by the
// time Logout returns, no subscriber still sees the previous identity's
// state.
func (m *Manager) Logout(ctx context.Context) {
	if err := m.creds.ClearToken(ctx); err != nil {
		m.logger.Error("Failed to clear credential", map[string]interface{}{
			"operation": "session_logout",
			"error":     err.Error(),
		})
	}

	m.mu.Lock()
	sessionID := m.sessionID
	m.authenticated = false
	m.user = nil
	m.sessionID = ""
	m.mu.Unlock()

	m.logger.Info("User logged out", map[string]interface{}{
		"operation":  "session_logout",
		"session_id": sessionID,
	})

	m.notify(false)
}

// notify invokes every listener outside the state lock
func (m *Manager) notify(authenticated bool) {
	m.mu.RLock()
	listeners := append([]core.AuthListener(nil), m.listeners...)
	m.mu.RUnlock()

	for _, listener := range listeners {
		listener(authenticated)
	}
}
