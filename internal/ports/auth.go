package ports

// Package ports defines interfaces (hexagonal ports) for session, telemetry,
// and payment behavior. Implementations live in internal/adapters;
// orchestration in internal/service.

import (
	"context"

	domainauth "github.com/eduride/eduride-ui/internal/domain/auth"
)

// SessionStore persists and retrieves user sessions across page reloads.
// Delete removes the whole record: token, user profile, and role go together,
// never partially.
type SessionStore interface {
	Save(ctx context.Context, sess domainauth.Session) error
	Get(ctx context.Context, id string) (domainauth.Session, error)
	Delete(ctx context.Context, id string) error
}

// Credentials carries a login attempt to the backend.
type Credentials struct {
	Email    string
	Password string
}

// LoginResult is what the backend returns on a successful login: a bearer
// token plus the profile and (possibly role_-prefixed) role string.
type LoginResult struct {
	Token       string
	UserID      string
	DisplayName string
	Email       string
	Role        string
}

// Authenticator performs the credential exchange against the backend.
type Authenticator interface {
	Login(ctx context.Context, creds Credentials) (LoginResult, error)
	ChangePassword(ctx context.Context, token, oldPassword, newPassword string) error
}
