package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	domainauth "github.com/eduride/eduride-ui/internal/domain/auth"
	"github.com/eduride/eduride-ui/internal/ports"
)

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	Backend   ports.Authenticator
	Sessions  ports.SessionStore
	Broadcast *Broadcaster
	Telemetry ports.Recorder
	Logger    *slog.Logger
}

// AuthService orchestrates login against the backend, session persistence,
// and the process-wide logout broadcast.
type AuthService struct {
	backend   ports.Authenticator
	sessions  ports.SessionStore
	broadcast *Broadcaster
	telemetry ports.Recorder
	logger    *slog.Logger
}

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	telemetry := opts.Telemetry
	if telemetry == nil {
		telemetry = ports.NopRecorder{}
	}
	broadcast := opts.Broadcast
	if broadcast == nil {
		broadcast = NewBroadcaster()
	}
	return &AuthService{
		backend:   opts.Backend,
		sessions:  opts.Sessions,
		broadcast: broadcast,
		telemetry: telemetry,
		logger:    logger,
	}
}

// Broadcaster exposes the logout signal source for SSE subscriptions.
func (s *AuthService) Broadcaster() *Broadcaster { return s.broadcast }

// Login exchanges credentials with the backend and persists a session.
// The backend's role string is normalized once, here; an unparseable role is
// rejected as a corrupted login rather than stored.
func (s *AuthService) Login(ctx context.Context, creds ports.Credentials) (domainauth.Session, error) {
	result, err := s.backend.Login(ctx, creds)
	if err != nil {
		return domainauth.Session{}, err
	}
	if result.Token == "" {
		return domainauth.Session{}, errors.New("login response carried no token")
	}

	role, err := domainauth.ParseRole(result.Role)
	if err != nil {
		return domainauth.Session{}, fmt.Errorf("login role %q: %w", result.Role, err)
	}

	session := domainauth.Session{
		ID:          uuid.New().String(),
		Token:       result.Token,
		UserID:      result.UserID,
		DisplayName: result.DisplayName,
		Email:       result.Email,
		Role:        role,
		ExpiresAt:   tokenExpiry(result.Token),
	}

	if saveErr := s.sessions.Save(ctx, session); saveErr != nil {
		return domainauth.Session{}, fmt.Errorf("save session: %w", saveErr)
	}

	s.telemetry.Record(ctx, ports.Event{
		Level:   "INFO",
		Message: "user logged in",
		Data:    fmt.Sprintf(`{"role":%q,"user_id":%q}`, role, result.UserID),
	})
	return session, nil
}

// GetSession retrieves a session by ID. No local expiry check beyond the
// store's own TTL: a stored token is assumed valid until the backend rejects it.
func (s *AuthService) GetSession(ctx context.Context, sessionID string) (*domainauth.Session, error) {
	if sessionID == "" {
		return nil, errors.New("session ID is required")
	}

	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	return &session, nil
}

// Logout removes a session and publishes the logout signal so every mounted
// guard observes it without polling.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil // Nothing to log out
	}

	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	s.broadcast.Publish(SignalLogout)
	return nil
}

// ForceLogout is the 401 path: best-effort session cleanup plus broadcast.
// Errors are logged, not returned, since the redirect happens regardless.
func (s *AuthService) ForceLogout(ctx context.Context, sessionID string) {
	if sessionID != "" {
		if err := s.sessions.Delete(ctx, sessionID); err != nil {
			s.logger.WarnContext(ctx, "clear session after 401 failed", "error", err)
		}
	}
	s.broadcast.Publish(SignalLogout)
}

// ChangePassword forwards the password change to the backend on behalf of
// the session's user.
func (s *AuthService) ChangePassword(ctx context.Context, sess domainauth.Session, oldPassword, newPassword string) error {
	return s.backend.ChangePassword(ctx, sess.Token, oldPassword, newPassword)
}

// tokenExpiry extracts the exp claim from the backend JWT without verifying
// the signature; verification stays the backend's job. A token without a
// usable expiry yields the zero time and the session store's default TTL.
func tokenExpiry(token string) time.Time {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return time.Time{}
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}
