package config

import (
	"strings"
	"time"
)

// BackendConfig points the UI at the EduRide REST backend.
type BackendConfig struct {
	// BaseURL is the backend API root, e.g. "http://localhost:8081/api".
	BaseURL string `env:"BASE_URL" envDefault:"http://localhost:8081/api"`

	// Timeout bounds every backend request.
	Timeout time.Duration `env:"TIMEOUT" envDefault:"5s"`
}

// Sanitize applies guardrails to backend configuration values.
func (b *BackendConfig) Sanitize() {
	b.BaseURL = strings.TrimRight(strings.TrimSpace(b.BaseURL), "/")
	if b.Timeout <= 0 {
		b.Timeout = 5 * time.Second
	}
}

// PaymentConfig points the UI at the payment record microservice.
type PaymentConfig struct {
	// BaseURL is the microservice root. Empty disables pass renewal.
	BaseURL string `env:"BASE_URL"`

	// SharedSecret authenticates the UI to the microservice.
	SharedSecret string `env:"SHARED_SECRET"`

	// Timeout bounds every payment request. Payment posts are slower than
	// regular backend reads, so the default is generous.
	Timeout time.Duration `env:"TIMEOUT" envDefault:"15s"`
}

// Sanitize applies guardrails to payment configuration values.
func (p *PaymentConfig) Sanitize() {
	p.BaseURL = strings.TrimRight(strings.TrimSpace(p.BaseURL), "/")
	p.SharedSecret = strings.TrimSpace(p.SharedSecret)
	if p.Timeout <= 0 {
		p.Timeout = 15 * time.Second
	}
}

// IsEnabled reports whether pass renewal checkout is configured.
func (p *PaymentConfig) IsEnabled() bool {
	return p.BaseURL != ""
}

// TelemetryConfig points the UI at the log service used for server-side
// telemetry events. An empty BaseURL disables the sink.
type TelemetryConfig struct {
	BaseURL string `env:"BASE_URL"`

	// Source tags every emitted event.
	Source string `env:"SOURCE" envDefault:"eduride-ui"`
}

// Sanitize applies guardrails to telemetry configuration values.
func (t *TelemetryConfig) Sanitize() {
	t.BaseURL = strings.TrimRight(strings.TrimSpace(t.BaseURL), "/")
	if t.Source = strings.TrimSpace(t.Source); t.Source == "" {
		t.Source = "eduride-ui"
	}
}

// IsEnabled reports whether telemetry events are emitted.
func (t *TelemetryConfig) IsEnabled() bool {
	return t.BaseURL != ""
}
