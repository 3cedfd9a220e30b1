package eduride

// Package eduride is the REST client for the EduRide backend. The backend is
// an opaque collaborator: this adapter attaches the session bearer token,
// translates 401 into the global unauthenticated sentinel, and surfaces every
// other failure to the caller with the backend's message when present.

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	apperrors "github.com/eduride/eduride-ui/internal/errors"
)

// NetworkErrorMessage is shown when the backend cannot be reached at all.
// Callers cannot distinguish this from a backend rejection and do not need to.
const NetworkErrorMessage = "Network error. Please check your connection."

const defaultTimeout = 15 * time.Second

// tokenKey is an unexported context key carrying the bearer token for a call.
type tokenKey struct{}

// WithToken returns a child context carrying the session's bearer token.
// Requests made with this context send "Authorization: Bearer <token>".
func WithToken(ctx context.Context, token string) context.Context {
	if strings.TrimSpace(token) == "" {
		return ctx
	}
	return context.WithValue(ctx, tokenKey{}, token)
}

// TokenFromContext returns the bearer token attached by WithToken, if any.
func TokenFromContext(ctx context.Context) (string, bool) {
	tok, ok := ctx.Value(tokenKey{}).(string)
	return tok, ok && tok != ""
}

// Config holds construction options for the backend client.
type Config struct {
	// BaseURL is the backend API root, e.g. "http://localhost:8080/api".
	BaseURL string
	// Timeout bounds every request when HTTPClient is nil. Zero means the
	// package default.
	Timeout time.Duration
	// HTTPClient is optional; a default with Timeout applied is used when nil.
	HTTPClient *http.Client
	// Logger is optional.
	Logger *slog.Logger
}

// Client talks to the EduRide backend over JSON/HTTP.
type Client struct {
	baseURL string
	httpc   *http.Client
	logger  *slog.Logger
}

// NewClient constructs a backend client.
func NewClient(cfg Config) *Client {
	httpc := cfg.HTTPClient
	if httpc == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpc = &http.Client{Timeout: timeout}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpc:   httpc,
		logger:  logger,
	}
}

// Get issues a GET request and decodes the JSON response into out.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

// Post issues a POST request with a JSON body, decoding into out when non-nil.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

// Put issues a PUT request with a JSON body, decoding into out when non-nil.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

// Delete issues a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return apperrors.Internal("encode request body", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return apperrors.Internal("build request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token, ok := TokenFromContext(ctx); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return apperrors.Backend(NetworkErrorMessage, err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.logger.WarnContext(ctx, "close response body", "error", cerr)
		}
	}()

	if resp.StatusCode == http.StatusUnauthorized {
		// The sole status this client reacts to specially: the route layer
		// clears the session and forces navigation to login.
		return fmt.Errorf("%s %s: %w", method, path, apperrors.ErrUnauthenticated)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return apperrors.Backend(NetworkErrorMessage, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.rejectionError(method, path, resp.StatusCode, data)
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return apperrors.Internal(fmt.Sprintf("decode %s %s response", method, path), err)
		}
	}
	return nil
}

// rejectionError builds the call-site error for a non-401 rejection, carrying
// the backend's message verbatim when one is present.
func (c *Client) rejectionError(method, path string, status int, body []byte) error {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	msg := ""
	if err := json.Unmarshal(body, &payload); err == nil {
		msg = payload.Message
		if msg == "" {
			msg = payload.Error
		}
	}
	if msg == "" {
		msg = fmt.Sprintf("Request failed with status %d.", status)
	}
	c.logger.Debug("backend rejection",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", status),
	)
	return apperrors.Backend(msg, nil)
}
