package eduride

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/eduride/eduride-ui/internal/errors"
	"github.com/eduride/eduride-ui/internal/ports"
	"github.com/eduride/eduride-ui/internal/testutil"
)

func TestClient_AttachesBearerToken(t *testing.T) {
	t.Parallel()

	var gotAuth string
	srv := testutil.JSONBackend(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode([]map[string]any{})
	})

	c := NewClient(Config{BaseURL: srv.URL})
	ctx := WithToken(context.Background(), "t1")
	_, err := c.FetchRecords(ctx, "/buses/agency/1")
	require.NoError(t, err)
	assert.Equal(t, "Bearer t1", gotAuth)
}

func TestClient_NoTokenNoHeader(t *testing.T) {
	t.Parallel()

	var gotAuth string
	srv := testutil.JSONBackend(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
	})

	c := NewClient(Config{BaseURL: srv.URL})
	require.NoError(t, c.Get(context.Background(), "/schools", nil))
	assert.Empty(t, gotAuth)
}

func TestClient_401BecomesUnauthenticatedSentinel(t *testing.T) {
	t.Parallel()

	srv := testutil.JSONBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	c := NewClient(Config{BaseURL: srv.URL})
	err := c.Get(context.Background(), "/students/me", nil)
	assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
}

func TestClient_RejectionCarriesBackendMessageVerbatim(t *testing.T) {
	t.Parallel()

	srv := testutil.JSONBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "Email already registered"})
	})

	c := NewClient(Config{BaseURL: srv.URL})
	err := c.Signup(context.Background(), "students", map[string]string{"email": "a@b.c"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, apperrors.ErrUnauthenticated)
	assert.Equal(t, "Email already registered", apperrors.UserMessage(err, "fallback"))
}

func TestClient_RejectionWithoutMessageUsesFallback(t *testing.T) {
	t.Parallel()

	srv := testutil.JSONBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	c := NewClient(Config{BaseURL: srv.URL})
	err := c.Get(context.Background(), "/drivers", nil)
	require.Error(t, err)
	assert.Contains(t, apperrors.UserMessage(err, ""), "500")
}

func TestClient_NetworkFailureLooksLikeRejection(t *testing.T) {
	t.Parallel()

	// Nothing listens on this port.
	c := NewClient(Config{BaseURL: "http://127.0.0.1:1"})
	err := c.Get(context.Background(), "/buses", nil)
	require.Error(t, err)
	assert.Equal(t, NetworkErrorMessage, apperrors.UserMessage(err, ""))
}

func TestClient_Login(t *testing.T) {
	t.Parallel()

	srv := testutil.JSONBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/login", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "school@example.com", body["email"])

		_ = json.NewEncoder(w).Encode(map[string]any{
			"token": "jwt-token",
			"role":  "role_School",
			"email": "school@example.com",
			"name":  "Green Valley",
			"id":    7,
		})
	})

	c := NewClient(Config{BaseURL: srv.URL})
	res, err := c.Login(context.Background(), ports.Credentials{Email: "school@example.com", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, "jwt-token", res.Token)
	assert.Equal(t, "role_School", res.Role)
	assert.Equal(t, "7", res.UserID)
	assert.Equal(t, "Green Valley", res.DisplayName)
}

func TestClient_ConfiguredTimeout(t *testing.T) {
	t.Parallel()

	c := NewClient(Config{BaseURL: "http://api.local", Timeout: 3 * time.Second})
	assert.Equal(t, 3*time.Second, c.httpc.Timeout)

	c = NewClient(Config{BaseURL: "http://api.local"})
	assert.Equal(t, defaultTimeout, c.httpc.Timeout, "zero falls back to the package default")
}
