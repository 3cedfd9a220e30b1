package ports

import "context"

// Event is a single telemetry record shipped to the log-sink service.
type Event struct {
	Level   string `json:"level"`
	Message string `json:"message"`
	Source  string `json:"source"`
	Data    string `json:"data,omitempty"`
}

// Recorder is a best-effort telemetry port. Record must never block the
// caller's control flow: implementations swallow their own failures.
type Recorder interface {
	Record(ctx context.Context, ev Event)
}

// NopRecorder discards all events. Useful as a default and in tests.
type NopRecorder struct{}

// Record implements Recorder.
func (NopRecorder) Record(context.Context, Event) {}
