package core

import (
	"context"
	"sync"
)

// MemoryCredentialStore keeps the bearer token in process memory. This is the
// default store; it matches the lifetime of the client itself.
type MemoryCredentialStore struct {
	mu    sync.RWMutex
	token string
}

// NewMemoryCredentialStore creates an empty in-memory credential store
func NewMemoryCredentialStore() *MemoryCredentialStore {
	return &MemoryCredentialStore{}
}

// Token returns the stored token, or ErrNoCredential when none is set.
func (m *MemoryCredentialStore) Token(ctx context.Context) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.token == "" {
		return "", ErrNoCredential
	}
	return m.token, nil
}

// SetToken stores a bearer token
func (m *MemoryCredentialStore) SetToken(ctx context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	return nil
}

// ClearToken removes the stored token
func (m *MemoryCredentialStore) ClearToken(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	return nil
}
