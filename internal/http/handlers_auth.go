package httpx

import (
	"context"
	"net/http"
	"time"

	domainauth "github.com/eduride/eduride-ui/internal/domain/auth"
	apperrors "github.com/eduride/eduride-ui/internal/errors"
	"github.com/eduride/eduride-ui/internal/ports"
)

// loginForm is the login page's input, validated locally before any request
// leaves the browser flow.
type loginForm struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// changePasswordForm backs the change-password page.
type changePasswordForm struct {
	OldPassword     string `json:"oldPassword"     validate:"required"`
	NewPassword     string `json:"newPassword"     validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=NewPassword"`
}

func loginMeta() PageMeta {
	return PageMeta{Title: "Sign In", PageTitle: "Sign In", CurrentPage: PageLogin}
}

// LoginPage renders the login form. A signed-in user is bounced straight to
// their dashboard instead of seeing the form again.
// GET /login.
func (h *UIHandlers) LoginPage(w http.ResponseWriter, r *http.Request) {
	if session := GetSessionFromContext(r.Context()); session != nil {
		if home, ok := domainauth.DashboardPath(session.Role); ok {
			Redirect(w, r, home)
			return
		}
	}

	data := NewTemplateData(r, loginMeta()).
		With("FormData", loginForm{}).
		Build()
	h.renderPage(w, r, loginMeta(), data)
}

// Login handles the login form submission.
// POST /login.
func (h *UIHandlers) Login(w http.ResponseWriter, r *http.Request) {
	form := loginForm{
		Email:    formString(r, "email"),
		Password: r.FormValue("password"),
	}
	if fieldErrors := ValidateForm(form); len(fieldErrors) > 0 {
		data := NewTemplateData(r, loginMeta()).
			WithFieldErrors(fieldErrors).
			WithError(errMsgFixBelow).
			With("FormData", form).
			Build()
		h.renderPage(w, r, loginMeta(), data)
		return
	}

	session, err := h.Auth.Login(r.Context(), ports.Credentials{Email: form.Email, Password: form.Password})
	if err != nil {
		data := NewTemplateData(r, loginMeta()).
			WithError(apperrors.UserMessage(err, "Sign in failed. Please try again.")).
			With("FormData", loginForm{Email: form.Email}).
			Build()
		h.renderPage(w, r, loginMeta(), data)
		return
	}

	h.setSessionCookie(w, r, session)

	home, ok := domainauth.DashboardPath(session.Role)
	if !ok {
		// Should be unreachable: Login rejects unknown roles.
		home = "/"
	}
	redirect := safeRedirectPath(r.FormValue("redirect_uri"))
	if redirect == "/" {
		redirect = home
	}
	Redirect(w, r, redirect)
}

// Logout ends the session server-side, clears the cookie, and lands on the
// login page. Always succeeds from the browser's point of view.
// POST /logout.
func (h *UIHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(sessionCookieName); err == nil {
		if logoutErr := h.Auth.Logout(r.Context(), cookie.Value); logoutErr != nil {
			h.logger().WarnContext(r.Context(), "logout failed", "error", logoutErr)
			h.Auth.ForceLogout(r.Context(), cookie.Value)
		}
		h.Status.Forget(cookie.Value)
	}

	clearSessionCookie(w, r)
	Redirect(w, r, "/login")
}

func changePasswordMeta() PageMeta {
	return PageMeta{Title: "Change Password", PageTitle: "Change Password", CurrentPage: PageChangePassword}
}

// ChangePasswordPage renders the change-password form.
// GET /account/password.
func (h *UIHandlers) ChangePasswordPage(w http.ResponseWriter, r *http.Request) {
	data := NewTemplateData(r, changePasswordMeta()).Build()
	h.renderPage(w, r, changePasswordMeta(), data)
}

// ChangePassword handles the change-password submission.
// POST /account/password.
func (h *UIHandlers) ChangePassword(w http.ResponseWriter, r *http.Request) {
	session := GetSessionFromContext(r.Context())
	if session == nil {
		redirectToLogin(w, r)
		return
	}

	HandleForm(FormHandlerOpts[changePasswordForm]{
		W: w, R: r, Mode: FormModeCreate,
		Parser: func(r *http.Request) (changePasswordForm, map[string]string) {
			form := changePasswordForm{
				OldPassword:     r.FormValue("oldPassword"),
				NewPassword:     r.FormValue("newPassword"),
				ConfirmPassword: r.FormValue("confirmPassword"),
			}
			return form, ValidateForm(form)
		},
		Submit: func(ctx context.Context, _ string, form changePasswordForm) error {
			return h.Auth.ChangePassword(ctx, *session, form.OldPassword, form.NewPassword)
		},
		Renderer:       h.renderChangePasswordForm,
		SuccessURL:     mustDashboardPath(session.Role),
		SuccessMessage: "Password updated.",
		PageMeta:       changePasswordMeta(),
		Auth:           h.Auth,
	})
}

func (h *UIHandlers) renderChangePasswordForm(w http.ResponseWriter, r *http.Request, data map[string]any) {
	h.renderPage(w, r, changePasswordMeta(), data)
}

// mustDashboardPath returns the role's dashboard, falling back to root for
// a role that somehow has none.
func mustDashboardPath(role domainauth.Role) string {
	if path, ok := domainauth.DashboardPath(role); ok {
		return path
	}
	return "/"
}

// setSessionCookie writes the session cookie based on the session's expiry.
// A session without a known expiry gets a session-scoped cookie.
func (h *UIHandlers) setSessionCookie(w http.ResponseWriter, r *http.Request, s domainauth.Session) {
	cookie := &http.Cookie{
		Name:     sessionCookieName,
		Value:    s.ID,
		Path:     "/",
		HttpOnly: true,
		Secure:   isSecureRequest(r),
		SameSite: http.SameSiteLaxMode,
	}
	if !s.ExpiresAt.IsZero() {
		cookie.MaxAge = int(time.Until(s.ExpiresAt).Seconds())
	}
	http.SetCookie(w, cookie)
}
