package payrecord

// Package payrecord talks to the external payment-record microservice. It
// authenticates with a static shared secret header, not the session bearer
// token, and runs on a separate base URL from the main backend.

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/eduride/eduride-ui/internal/errors"
	"github.com/eduride/eduride-ui/internal/ports"
)

const defaultTimeout = 15 * time.Second

// Config holds construction options for the payment-record client.
type Config struct {
	// BaseURL is the microservice root, e.g. "http://localhost:9090/api".
	BaseURL string
	// SharedSecret is sent as the Authorization header value verbatim.
	SharedSecret string
	// Timeout bounds every request when HTTPClient is nil. Zero means the
	// package default.
	Timeout time.Duration
	// HTTPClient is optional.
	HTTPClient *http.Client
	// Logger is optional.
	Logger *slog.Logger
}

// Client records completed payments with the microservice.
type Client struct {
	baseURL string
	secret  string
	httpc   *http.Client
	logger  *slog.Logger
}

var _ ports.PaymentRecorder = (*Client)(nil)

// NewClient constructs a payment-record client.
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
		secret:  cfg.SharedSecret,
		httpc:   httpc,
		logger:  logger,
	}
}

// RecordPayment implements ports.PaymentRecorder. The microservice takes its
// parameters as query values on an empty-bodied POST.
func (c *Client) RecordPayment(ctx context.Context, rec ports.PaymentRecord) error {
	q := url.Values{}
	q.Set("studentId", strconv.FormatInt(rec.StudentID, 10))
	q.Set("amount", strconv.FormatFloat(rec.Amount, 'f', 2, 64))
	if rec.Reference != "" {
		q.Set("reference", rec.Reference)
	}

	endpoint := c.baseURL + "/payment/pay?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, nil)
	if err != nil {
		return apperrors.Internal("build payment request", err)
	}
	req.Header.Set("Authorization", c.secret)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return apperrors.Backend("Payment service unreachable.", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return apperrors.Backendf("Payment record failed with status %d.", resp.StatusCode)
	}
	c.logger.InfoContext(ctx, "payment recorded",
		slog.Int64("student_id", rec.StudentID),
		slog.Float64("amount", rec.Amount),
	)
	return nil
}
