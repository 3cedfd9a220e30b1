package logsink

// Package logsink ships telemetry events to the EduRide log service. The sink
// is strictly best-effort: a failure is logged at debug level and swallowed,
// never surfaced to the caller.

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/eduride/eduride-ui/internal/ports"
)

const defaultTimeout = 5 * time.Second

// Config holds construction options for the log-sink recorder.
type Config struct {
	// BaseURL is the log service root, e.g. "http://localhost:5199/api".
	// An empty BaseURL disables the sink entirely.
	BaseURL string
	// Source tags every event; defaults to "eduride-ui".
	Source string
	// HTTPClient is optional.
	HTTPClient *http.Client
	// Logger is optional.
	Logger *slog.Logger
}

// Recorder posts events to the log service's /logs endpoint.
type Recorder struct {
	baseURL string
	source  string
	httpc   *http.Client
	logger  *slog.Logger
}

var _ ports.Recorder = (*Recorder)(nil)

// NewRecorder constructs a log-sink recorder.
func NewRecorder(cfg Config) *Recorder {
	httpc := cfg.HTTPClient
	if httpc == nil {
		httpc = &http.Client{Timeout: defaultTimeout}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	source := cfg.Source
	if source == "" {
		source = "eduride-ui"
	}
	return &Recorder{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		source:  source,
		httpc:   httpc,
		logger:  logger,
	}
}

// Record implements ports.Recorder. Failures never reach the caller.
func (r *Recorder) Record(ctx context.Context, ev ports.Event) {
	if r.baseURL == "" {
		return
	}
	if ev.Source == "" {
		ev.Source = r.source
	}

	body, err := json.Marshal(ev)
	if err != nil {
		r.logger.DebugContext(ctx, "log sink marshal failed", "error", err)
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/logs", bytes.NewReader(body))
	if err != nil {
		r.logger.DebugContext(ctx, "log sink request build failed", "error", err)
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.httpc.Do(req)
	if err != nil {
		r.logger.DebugContext(ctx, "log sink unreachable", "error", err)
		return
	}
	if cerr := resp.Body.Close(); cerr != nil {
		r.logger.DebugContext(ctx, "log sink close body", "error", cerr)
	}
}
