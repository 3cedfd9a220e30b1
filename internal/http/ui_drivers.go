package httpx

import (
	"context"
	"net/http"

	apperrors "github.com/eduride/eduride-ui/internal/errors"
)

// driverForm backs the driver edit form.
type driverForm struct {
	Name          string `json:"name"          validate:"required"`
	Email         string `json:"email"         validate:"required,email"`
	Phone         string `json:"phone"`
	LicenseNumber string `json:"licenseNumber" validate:"required"`
}

func driversMeta() PageMeta {
	return PageMeta{Title: "Drivers", PageTitle: "Drivers", CurrentPage: PageDrivers}
}

// DriversPage renders the agency's driver listing.
// GET /drivers.
func (h *UIHandlers) DriversPage(w http.ResponseWriter, r *http.Request) {
	session := GetSessionFromContext(r.Context())
	if session == nil {
		redirectToLogin(w, r)
		return
	}

	records, err := h.Backend.FetchRecords(r.Context(), "/drivers/agency/"+session.UserID)
	if err != nil {
		h.handleBackendError(w, r, driversMeta(), err)
		return
	}

	q := ParseViewQuery(r.URL.Query())
	data := applyView(NewTemplateData(r, driversMeta()), h.drivers, records, q).Build()
	h.renderPage(w, r, driversMeta(), data)
}

// SaveDriver handles driver edits.
// POST /drivers/{id}.
func (h *UIHandlers) SaveDriver(w http.ResponseWriter, r *http.Request) {
	meta := PageMeta{Title: "Edit Driver", PageTitle: "Edit Driver", CurrentPage: PageDriverForm}

	HandleForm(FormHandlerOpts[driverForm]{
		W: w, R: r, Mode: FormModeEdit,
		Parser: func(r *http.Request) (driverForm, map[string]string) {
			form := driverForm{
				Name:          formString(r, "name"),
				Email:         formString(r, "email"),
				Phone:         formString(r, "phone"),
				LicenseNumber: formString(r, "licenseNumber"),
			}
			return form, ValidateForm(form)
		},
		Submit: func(ctx context.Context, id string, form driverForm) error {
			driverID, ok := parseID(id)
			if !ok {
				return apperrors.NotFound("driver not found")
			}
			return h.Backend.UpdateResource(ctx, "drivers", driverID, form)
		},
		Renderer: func(w http.ResponseWriter, r *http.Request, data map[string]any) {
			h.renderPage(w, r, meta, data)
		},
		SuccessURL:     "/drivers",
		SuccessMessage: "Driver saved.",
		PageMeta:       meta,
		Auth:           h.Auth,
	})
}
