package httpx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/eduride/eduride-ui/internal/domain/auth"
	apperrors "github.com/eduride/eduride-ui/internal/errors"
	"github.com/eduride/eduride-ui/internal/ports"
)

func postForm(target string, values url.Values) *http.Request {
	r := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return r
}

func TestLoginSuccessSetsCookieAndRedirects(t *testing.T) {
	t.Parallel()

	auth := newStubAuth()
	auth.LoginFunc = func(_ context.Context, creds ports.Credentials) (domainauth.Session, error) {
		require.Equal(t, "agency@example.com", creds.Email)
		sess := testSession(domainauth.RoleAgency)
		return *sess, nil
	}
	h := newTestHandlers(t, auth, nil, nil)

	w := doRequest(http.HandlerFunc(h.Login), postForm("/login", url.Values{
		"email":    {"agency@example.com"},
		"password": {"hunter22"},
	}))

	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/dashboard/agency", w.Header().Get("Location"))

	cookie := responseSessionCookie(t, w.Result())
	assert.Equal(t, "sess-1", cookie.Value)
	assert.True(t, cookie.HttpOnly)
}

func TestLoginHonorsSafeRedirectURI(t *testing.T) {
	t.Parallel()

	auth := newStubAuth()
	auth.LoginFunc = func(context.Context, ports.Credentials) (domainauth.Session, error) {
		return *testSession(domainauth.RoleSchool), nil
	}
	h := newTestHandlers(t, auth, nil, nil)

	w := doRequest(http.HandlerFunc(h.Login), postForm("/login", url.Values{
		"email":        {"school@example.com"},
		"password":     {"hunter22"},
		"redirect_uri": {"/students/today"},
	}))

	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/students/today", w.Header().Get("Location"))
}

func TestLoginRejectsExternalRedirectURI(t *testing.T) {
	t.Parallel()

	auth := newStubAuth()
	auth.LoginFunc = func(context.Context, ports.Credentials) (domainauth.Session, error) {
		return *testSession(domainauth.RoleSchool), nil
	}
	h := newTestHandlers(t, auth, nil, nil)

	w := doRequest(http.HandlerFunc(h.Login), postForm("/login", url.Values{
		"email":        {"school@example.com"},
		"password":     {"hunter22"},
		"redirect_uri": {"https://evil.example.com"},
	}))

	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/dashboard/school", w.Header().Get("Location"))
}

func TestLoginValidationErrorsRerenderForm(t *testing.T) {
	t.Parallel()

	h := newTestHandlers(t, nil, nil, nil)

	w := doRequest(http.HandlerFunc(h.Login), postForm("/login", url.Values{
		"email": {"not-an-email"},
	}))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, errMsgFixBelow)
	assert.Contains(t, body, `value="not-an-email"`, "typed email is preserved")
	assert.Empty(t, w.Result().Cookies(), "no session cookie on failure")
}

func TestLoginBackendRejectionShowsMessageKeepsEmail(t *testing.T) {
	t.Parallel()

	auth := newStubAuth()
	auth.LoginFunc = func(context.Context, ports.Credentials) (domainauth.Session, error) {
		return domainauth.Session{}, apperrors.Backendf("Invalid email or password")
	}
	h := newTestHandlers(t, auth, nil, nil)

	w := doRequest(http.HandlerFunc(h.Login), postForm("/login", url.Values{
		"email":    {"agency@example.com"},
		"password": {"wrong"},
	}))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Invalid email or password")
	assert.Contains(t, body, `value="agency@example.com"`)
	assert.NotContains(t, body, "wrong", "password never echoes back")
}

func TestLoginPageBouncesSignedInUser(t *testing.T) {
	t.Parallel()

	h := newTestHandlers(t, nil, nil, nil)

	r := requestWithSession(httptest.NewRequest(http.MethodGet, "/login", nil), testSession(domainauth.RoleStudent))
	w := doRequest(http.HandlerFunc(h.LoginPage), r)

	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/dashboard/student", w.Header().Get("Location"))
}

func TestLogoutClearsCookieAndRedirects(t *testing.T) {
	t.Parallel()

	var loggedOut string
	auth := newStubAuth()
	auth.LogoutFunc = func(_ context.Context, sessionID string) error {
		loggedOut = sessionID
		return nil
	}
	h := newTestHandlers(t, auth, nil, nil)

	r := postForm("/logout", url.Values{})
	r.AddCookie(sessionCookie("sess-9"))
	w := doRequest(http.HandlerFunc(h.Logout), r)

	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
	assert.Equal(t, "sess-9", loggedOut)

	cookie := responseSessionCookie(t, w.Result())
	assert.Empty(t, cookie.Value)
	assert.Negative(t, cookie.MaxAge)
}

func TestLogoutFallsBackToForceLogout(t *testing.T) {
	t.Parallel()

	auth := newStubAuth()
	auth.LogoutFunc = func(context.Context, string) error {
		return apperrors.Internal("store down", nil)
	}
	h := newTestHandlers(t, auth, nil, nil)
	h.Logger = discardLogger()

	r := postForm("/logout", url.Values{})
	r.AddCookie(sessionCookie("sess-9"))
	w := doRequest(http.HandlerFunc(h.Logout), r)

	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, []string{"sess-9"}, auth.ForcedLogouts)
}

func TestChangePasswordMismatchShowsFieldError(t *testing.T) {
	t.Parallel()

	h := newTestHandlers(t, nil, nil, nil)

	r := requestWithSession(postForm("/account/password", url.Values{
		"oldPassword":     {"old-secret"},
		"newPassword":     {"new-secret"},
		"confirmPassword": {"different"},
	}), testSession(domainauth.RoleAgency))
	w := doRequest(http.HandlerFunc(h.ChangePassword), r)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), errMsgFixBelow)
}

func TestChangePasswordSuccessRedirectsHome(t *testing.T) {
	t.Parallel()

	auth := newStubAuth()
	called := false
	auth.ChangePasswordFunc = func(_ context.Context, sess domainauth.Session, oldPassword, newPassword string) error {
		called = true
		assert.Equal(t, "old-secret", oldPassword)
		assert.Equal(t, "new-secret", newPassword)
		assert.Equal(t, domainauth.RoleHelper, sess.Role)
		return nil
	}
	h := newTestHandlers(t, auth, nil, nil)

	r := requestWithSession(postForm("/account/password", url.Values{
		"oldPassword":     {"old-secret"},
		"newPassword":     {"new-secret"},
		"confirmPassword": {"new-secret"},
	}), testSession(domainauth.RoleHelper))
	w := doRequest(http.HandlerFunc(h.ChangePassword), r)

	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/dashboard/bus-helper", w.Header().Get("Location"))
	assert.True(t, called)
	assert.Equal(t, "Password updated.", flashFromResponse(t, w).Message)
}
