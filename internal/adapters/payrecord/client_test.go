package payrecord

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eduride/eduride-ui/internal/ports"
	"github.com/eduride/eduride-ui/internal/testutil"
)

func TestRecordPayment_SendsSharedSecretAndParams(t *testing.T) {
	t.Parallel()

	var gotAuth, gotStudent, gotAmount string
	srv := testutil.JSONBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/payment/pay", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		gotStudent = r.URL.Query().Get("studentId")
		gotAmount = r.URL.Query().Get("amount")
		w.WriteHeader(http.StatusOK)
	})

	c := NewClient(Config{BaseURL: srv.URL, SharedSecret: "secret123"})
	err := c.RecordPayment(context.Background(), ports.PaymentRecord{StudentID: 42, Amount: 1000})
	require.NoError(t, err)

	// Static shared secret, not a bearer token.
	assert.Equal(t, "secret123", gotAuth)
	assert.Equal(t, "42", gotStudent)
	assert.Equal(t, "1000.00", gotAmount)
}

func TestRecordPayment_RejectionIsAnError(t *testing.T) {
	t.Parallel()

	srv := testutil.JSONBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	c := NewClient(Config{BaseURL: srv.URL, SharedSecret: "wrong"})
	err := c.RecordPayment(context.Background(), ports.PaymentRecord{StudentID: 1, Amount: 10})
	assert.Error(t, err)
}

func TestNewClient_ConfiguredTimeout(t *testing.T) {
	t.Parallel()

	c := NewClient(Config{BaseURL: "http://pay.local", Timeout: 2 * time.Second})
	assert.Equal(t, 2*time.Second, c.httpc.Timeout)

	c = NewClient(Config{BaseURL: "http://pay.local"})
	assert.Equal(t, defaultTimeout, c.httpc.Timeout, "zero falls back to the package default")
}
