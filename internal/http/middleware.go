package httpx

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"runtime/debug"
	"slices"
	"strings"
	"time"

	"github.com/eduride/eduride-ui/internal/adapters/eduride"
	domainauth "github.com/eduride/eduride-ui/internal/domain/auth"
	"github.com/eduride/eduride-ui/internal/ports"
	"github.com/eduride/eduride-ui/internal/service"
)

// AuthServiceInterface defines the auth service operations the HTTP layer
// depends on.
type AuthServiceInterface interface {
	Login(ctx context.Context, creds ports.Credentials) (domainauth.Session, error)
	GetSession(ctx context.Context, sessionID string) (*domainauth.Session, error)
	Logout(ctx context.Context, sessionID string) error
	ForceLogout(ctx context.Context, sessionID string)
	ChangePassword(ctx context.Context, sess domainauth.Session, oldPassword, newPassword string) error
	Broadcaster() *service.Broadcaster
}

// Logging returns a middleware that logs HTTP requests and responses.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			const defaultHTTPStatus = 200
			ww := &respWriter{ResponseWriter: w, status: defaultHTTPStatus}
			next.ServeHTTP(ww, r)
			logger.Info("http",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.status),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}

type respWriter struct {
	http.ResponseWriter
	status int
}

func (w *respWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// Flush implements http.Flusher so SSE handlers keep streaming through the
// logging wrapper.
func (w *respWriter) Flush() {
	if flusher, ok := w.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

// Recover returns a middleware that recovers from panics and logs them.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("panic",
						slog.Any("error", err),
						slog.String("path", r.URL.Path),
						slog.String("method", r.Method),
						slog.String("stack", string(debug.Stack())))
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// RequireRoles guards a route with a role allow-list. Decision order:
//
//  1. No valid session: clear the cookie and send to the login page.
//  2. Allow-list is non-empty and the session's role is not on it: send the
//     user to their own dashboard instead of an error page.
//  3. Otherwise: attach the session (and its backend token) to the request
//     context and continue. An empty allow-list means any authenticated role.
func RequireRoles(authSvc AuthServiceInterface, allowed ...domainauth.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session := getSessionFromRequest(r, authSvc)
			if session == nil {
				redirectToLogin(w, r)
				return
			}

			if len(allowed) > 0 && !slices.Contains(allowed, session.Role) {
				// A signed-in user on the wrong page lands on their own
				// dashboard, never on the login page.
				home, ok := domainauth.DashboardPath(session.Role)
				if !ok {
					// Corrupted role in the store: treat as signed out.
					authSvc.ForceLogout(r.Context(), session.ID)
					redirectToLogin(w, r)
					return
				}
				Redirect(w, r, home)
				return
			}

			ctx := SetSessionInContext(r.Context(), session)
			ctx = eduride.WithToken(ctx, session.Token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth attaches the session to the context when present but never
// blocks the request. Used by the login page to bounce signed-in users.
func OptionalAuth(authSvc AuthServiceInterface) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if session := getSessionFromRequest(r, authSvc); session != nil {
				ctx := SetSessionInContext(r.Context(), session)
				ctx = eduride.WithToken(ctx, session.Token)
				r = r.WithContext(ctx)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// getSessionFromRequest retrieves and validates a session from the request.
func getSessionFromRequest(r *http.Request, authSvc AuthServiceInterface) *domainauth.Session {
	sessionCookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		return nil
	}

	session, err := authSvc.GetSession(r.Context(), sessionCookie.Value)
	if err != nil || session == nil || !session.Authenticated() {
		// A store record without a usable backend token cannot serve any
		// guarded page; treat it as signed out.
		return nil
	}
	return session
}

// redirectToLogin clears the session cookie and sends the browser to the
// login page with the current URL as redirect_uri.
func redirectToLogin(w http.ResponseWriter, r *http.Request) {
	clearSessionCookie(w, r)

	redirectPath := safeRedirectPath(r.URL.RequestURI())
	loginURL := "/login"
	if redirectPath != "/" && redirectPath != "" {
		loginURL += "?redirect_uri=" + url.QueryEscape(redirectPath)
	}
	Redirect(w, r, loginURL)
}

// clearSessionCookie expires the session cookie immediately. Mirrors the
// attributes used when setting it so deletion works across browsers.
func clearSessionCookie(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   isSecureRequest(r),
		MaxAge:   -1,
		Expires:  time.Unix(0, 0).UTC(),
		SameSite: http.SameSiteLaxMode,
	})
}

func isSecureRequest(r *http.Request) bool {
	return r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
}

// safeRedirectPath ensures the provided redirect is a same-origin relative
// path starting with "/" and not an absolute URL. Returns "/" when invalid.
func safeRedirectPath(candidate string) string {
	if candidate == "" {
		return "/"
	}
	u, err := url.Parse(candidate)
	if err != nil || u.IsAbs() || u.Host != "" || !strings.HasPrefix(u.Path, "/") {
		return "/"
	}
	// Double slash prefixes are scheme-relative in browsers.
	if strings.HasPrefix(u.Path, "//") {
		return "/"
	}
	return candidate
}
