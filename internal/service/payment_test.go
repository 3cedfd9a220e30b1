package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/eduride/eduride-ui/internal/mocks"
	"github.com/eduride/eduride-ui/internal/ports"
)

type fakeActivator struct {
	err   error
	calls []int64
}

func (f *fakeActivator) ActivatePass(_ context.Context, studentID int64) error {
	f.calls = append(f.calls, studentID)
	return f.err
}

type capturingRecorder struct {
	events []ports.Event
}

func (c *capturingRecorder) Record(_ context.Context, ev ports.Event) {
	c.events = append(c.events, ev)
}

func TestPaymentService_CompleteCheckout(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	payments := mocks.NewMockPaymentRecorder(ctrl)
	payments.EXPECT().
		RecordPayment(gomock.Any(), ports.PaymentRecord{StudentID: 42, Amount: PassRenewalAmount, Reference: "txn-9"}).
		Return(nil)

	activator := &fakeActivator{}
	svc := NewPaymentService(PaymentServiceOptions{Payments: payments, Backend: activator})

	require.NoError(t, svc.CompleteCheckout(context.Background(), 42, "txn-9"))
	assert.Equal(t, []int64{42}, activator.calls)
}

func TestPaymentService_PaymentFailureSkipsActivation(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	payments := mocks.NewMockPaymentRecorder(ctrl)
	payments.EXPECT().RecordPayment(gomock.Any(), gomock.Any()).Return(errors.New("payment service down"))

	activator := &fakeActivator{}
	telemetry := &capturingRecorder{}
	svc := NewPaymentService(PaymentServiceOptions{Payments: payments, Backend: activator, Telemetry: telemetry})

	err := svc.CompleteCheckout(context.Background(), 42, "txn-9")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "record payment")

	// Nothing to reconcile: no money moved, no pass flipped, no event.
	assert.Empty(t, activator.calls)
	assert.Empty(t, telemetry.events)
}

func TestPaymentService_ActivationFailureRecordsDivergence(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	payments := mocks.NewMockPaymentRecorder(ctrl)
	payments.EXPECT().RecordPayment(gomock.Any(), gomock.Any()).Return(nil)

	activator := &fakeActivator{err: errors.New("backend timeout")}
	telemetry := &capturingRecorder{}
	svc := NewPaymentService(PaymentServiceOptions{Payments: payments, Backend: activator, Telemetry: telemetry})

	err := svc.CompleteCheckout(context.Background(), 42, "txn-9")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "activate pass")

	require.Len(t, telemetry.events, 1)
	assert.Equal(t, "ERROR", telemetry.events[0].Level)
	assert.Contains(t, telemetry.events[0].Data, `"student_id":42`)
	assert.Contains(t, telemetry.events[0].Data, `"reference":"txn-9"`)
}

func TestPaymentService_RejectsMissingStudent(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := NewPaymentService(PaymentServiceOptions{
		Payments: mocks.NewMockPaymentRecorder(ctrl),
		Backend:  &fakeActivator{},
	})

	assert.Error(t, svc.CompleteCheckout(context.Background(), 0, "txn-1"))
}
