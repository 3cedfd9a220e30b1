package service

import (
	"context"
	"fmt"
	"log/slog"

	apperrors "github.com/eduride/eduride-ui/internal/errors"
	"github.com/eduride/eduride-ui/internal/ports"
)

// Pass renewal is a fixed-price product.
const (
	PassRenewalAmount      = 1000.00
	PassRenewalDescription = "Bus Pass Renewal Fee"
)

// PassActivator flips a student's pass to active on the backend.
type PassActivator interface {
	ActivatePass(ctx context.Context, studentID int64) error
}

// PaymentServiceOptions groups dependencies for PaymentService.
type PaymentServiceOptions struct {
	Payments  ports.PaymentRecorder
	Backend   PassActivator
	Telemetry ports.Recorder
	Logger    *slog.Logger
}

// PaymentService finishes a checkout after the external widget reports
// success: record the payment with the payment microservice, then activate
// the pass on the backend. The two calls are best effort with no
// compensation; a divergence is recorded via telemetry for manual
// reconciliation.
type PaymentService struct {
	payments  ports.PaymentRecorder
	backend   PassActivator
	telemetry ports.Recorder
	logger    *slog.Logger
}

// NewPaymentService constructs a new PaymentService.
func NewPaymentService(opts PaymentServiceOptions) *PaymentService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	telemetry := opts.Telemetry
	if telemetry == nil {
		telemetry = ports.NopRecorder{}
	}
	return &PaymentService{
		payments:  opts.Payments,
		backend:   opts.Backend,
		telemetry: telemetry,
		logger:    logger,
	}
}

// CompleteCheckout runs the two-call sequence for a pass renewal. The
// widget reference identifies the external transaction for reconciliation.
func (s *PaymentService) CompleteCheckout(ctx context.Context, studentID int64, reference string) error {
	if studentID <= 0 {
		return apperrors.Validation("student ID is required")
	}
	if s.payments == nil {
		return apperrors.Validation("online payment is not available right now")
	}

	rec := ports.PaymentRecord{
		StudentID: studentID,
		Amount:    PassRenewalAmount,
		Reference: reference,
	}
	if err := s.payments.RecordPayment(ctx, rec); err != nil {
		return fmt.Errorf("record payment: %w", err)
	}

	if err := s.backend.ActivatePass(ctx, studentID); err != nil {
		// Payment landed but the pass did not flip. Leave the money alone
		// and flag the account for manual reconciliation.
		s.logger.ErrorContext(ctx, "pass activation failed after recorded payment",
			"student_id", studentID, "reference", reference, "error", err)
		s.telemetry.Record(ctx, ports.Event{
			Level:   "ERROR",
			Message: "payment recorded but pass activation failed",
			Data:    fmt.Sprintf(`{"student_id":%d,"reference":%q}`, studentID, reference),
		})
		return fmt.Errorf("activate pass: %w", err)
	}
	return nil
}
