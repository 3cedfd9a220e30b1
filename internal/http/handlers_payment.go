package httpx

import (
	"errors"
	"net/http"

	apperrors "github.com/eduride/eduride-ui/internal/errors"
	"github.com/eduride/eduride-ui/internal/service"
)

func checkoutMeta() PageMeta {
	return PageMeta{Title: "Renew Pass", PageTitle: "Renew Bus Pass", CurrentPage: PageCheckout}
}

// CheckoutPage renders the pass renewal page with the external payment
// widget's configuration.
// GET /checkout.
func (h *UIHandlers) CheckoutPage(w http.ResponseWriter, r *http.Request) {
	me, err := h.Backend.StudentMe(r.Context())
	if err != nil {
		h.handleBackendError(w, r, checkoutMeta(), err)
		return
	}

	data := NewTemplateData(r, checkoutMeta()).
		With("Me", me).
		With("Amount", service.PassRenewalAmount).
		With("Description", service.PassRenewalDescription).
		Build()
	h.renderPage(w, r, checkoutMeta(), data)
}

// CompleteCheckout runs after the widget reports success: record the
// payment, then activate the pass. A divergence is logged server-side for
// reconciliation; the user sees either a success toast or the error.
// POST /checkout/complete.
func (h *UIHandlers) CompleteCheckout(w http.ResponseWriter, r *http.Request) {
	studentID, ok := parseID(r.FormValue("student_id"))
	if !ok {
		http.Error(w, "invalid student id", http.StatusBadRequest)
		return
	}
	reference := formString(r, "reference")

	if err := h.Payments.CompleteCheckout(r.Context(), studentID, reference); err != nil {
		if errors.Is(err, apperrors.ErrUnauthenticated) {
			forceLogoutAndRedirect(w, r, h.Auth)
			return
		}
		setFlash(w, apperrors.UserMessage(err, "Payment could not be completed. Please contact support."), flashError)
		Redirect(w, r, "/checkout")
		return
	}

	setFlash(w, "Bus pass renewed.", flashSuccess)
	Redirect(w, r, "/dashboard/student")
}
