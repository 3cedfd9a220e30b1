package httpx

import (
	"context"
	"net/http"

	domainauth "github.com/eduride/eduride-ui/internal/domain/auth"
	apperrors "github.com/eduride/eduride-ui/internal/errors"
)

// helperForm backs the bus-helper edit form.
type helperForm struct {
	Name  string `json:"name"  validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone"`
}

func helpersMeta() PageMeta {
	return PageMeta{Title: "Bus Helpers", PageTitle: "Bus Helpers", CurrentPage: PageHelpers}
}

// HelpersPage renders the helper listing for agencies and schools.
// GET /helpers.
func (h *UIHandlers) HelpersPage(w http.ResponseWriter, r *http.Request) {
	session := GetSessionFromContext(r.Context())
	if session == nil {
		redirectToLogin(w, r)
		return
	}

	path := "/helpers/school/" + session.UserID
	if session.Role == domainauth.RoleAgency {
		path = "/helpers/agency/" + session.UserID
	}

	records, err := h.Backend.FetchRecords(r.Context(), path)
	if err != nil {
		h.handleBackendError(w, r, helpersMeta(), err)
		return
	}

	q := ParseViewQuery(r.URL.Query())
	data := applyView(NewTemplateData(r, helpersMeta()), h.helpers, records, q).Build()
	h.renderPage(w, r, helpersMeta(), data)
}

// SaveHelper handles helper edits.
// POST /helpers/{id}.
func (h *UIHandlers) SaveHelper(w http.ResponseWriter, r *http.Request) {
	meta := PageMeta{Title: "Edit Helper", PageTitle: "Edit Helper", CurrentPage: PageHelperForm}

	HandleForm(FormHandlerOpts[helperForm]{
		W: w, R: r, Mode: FormModeEdit,
		Parser: func(r *http.Request) (helperForm, map[string]string) {
			form := helperForm{
				Name:  formString(r, "name"),
				Email: formString(r, "email"),
				Phone: formString(r, "phone"),
			}
			return form, ValidateForm(form)
		},
		Submit: func(ctx context.Context, id string, form helperForm) error {
			helperID, ok := parseID(id)
			if !ok {
				return apperrors.NotFound("helper not found")
			}
			return h.Backend.UpdateResource(ctx, "helpers", helperID, form)
		},
		Renderer: func(w http.ResponseWriter, r *http.Request, data map[string]any) {
			h.renderPage(w, r, meta, data)
		},
		SuccessURL:     "/helpers",
		SuccessMessage: "Helper saved.",
		PageMeta:       meta,
		Auth:           h.Auth,
	})
}
