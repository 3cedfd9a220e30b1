package auth

// Package auth contains simple hand-written test doubles for auth ports.
// These are lightweight and suitable for unit tests without codegen.

import (
	"context"
	"sync"

	domainauth "github.com/eduride/eduride-ui/internal/domain/auth"
	"github.com/eduride/eduride-ui/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.SessionStore  = (*MemorySessionStore)(nil)
	_ ports.Authenticator = (*MockAuthenticator)(nil)
)

// MemorySessionStore is an in-memory ports.SessionStore for tests.
type MemorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]domainauth.Session

	// Fail switches force error paths in tests.
	FailSave   error
	FailDelete error
}

// NewMemorySessionStore creates an empty in-memory store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[string]domainauth.Session)}
}

func (m *MemorySessionStore) Save(_ context.Context, sess domainauth.Session) error {
	if m.FailSave != nil {
		return m.FailSave
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[sess.ID] = sess
	return nil
}

func (m *MemorySessionStore) Get(_ context.Context, id string) (domainauth.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[id]
	if !ok {
		return domainauth.Session{}, ErrNotFound
	}
	return sess, nil
}

func (m *MemorySessionStore) Delete(_ context.Context, id string) error {
	if m.FailDelete != nil {
		return m.FailDelete
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

// Len reports the number of stored sessions.
func (m *MemorySessionStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// ErrNotFound mirrors the redis adapter's not-found error for tests.
type notFoundError struct{}

func (notFoundError) Error() string { return "session not found" }

var ErrNotFound error = notFoundError{}

// MockAuthenticator simulates the backend's credential exchange.
type MockAuthenticator struct {
	LoginFunc          func(ctx context.Context, creds ports.Credentials) (ports.LoginResult, error)
	ChangePasswordFunc func(ctx context.Context, token, oldPassword, newPassword string) error

	// Result is returned when LoginFunc is nil.
	Result ports.LoginResult
}

func (m *MockAuthenticator) Login(ctx context.Context, creds ports.Credentials) (ports.LoginResult, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, creds)
	}
	return m.Result, nil
}

func (m *MockAuthenticator) ChangePassword(ctx context.Context, token, oldPassword, newPassword string) error {
	if m.ChangePasswordFunc != nil {
		return m.ChangePasswordFunc(ctx, token, oldPassword, newPassword)
	}
	return nil
}
