package ports

import "context"

// PaymentRecord is the payload sent to the payment-record microservice after
// the external checkout widget reports success.
type PaymentRecord struct {
	StudentID int64
	Amount    float64
	Reference string
}

// PaymentRecorder persists a completed payment with the payment microservice.
// It authenticates with a static shared secret, not the session bearer token.
type PaymentRecorder interface {
	RecordPayment(ctx context.Context, rec PaymentRecord) error
}
