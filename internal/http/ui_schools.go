package httpx

import (
	"context"
	"errors"
	"net/http"

	apperrors "github.com/eduride/eduride-ui/internal/errors"
)

// schoolForm backs the school edit form.
type schoolForm struct {
	Name    string `json:"name"    validate:"required"`
	Email   string `json:"email"   validate:"required,email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

func schoolsMeta() PageMeta {
	return PageMeta{Title: "Schools", PageTitle: "Schools", CurrentPage: PageSchools}
}

// SchoolsPage renders the agency's school listing.
// GET /schools.
func (h *UIHandlers) SchoolsPage(w http.ResponseWriter, r *http.Request) {
	records, err := h.Backend.FetchRecords(r.Context(), "/agencies/schools")
	if err != nil {
		h.handleBackendError(w, r, schoolsMeta(), err)
		return
	}

	q := ParseViewQuery(r.URL.Query())
	data := applyView(NewTemplateData(r, schoolsMeta()), h.schools, records, q).Build()
	h.renderPage(w, r, schoolsMeta(), data)
}

// ReleaseSchool ends the agency's contract with a school, behind the
// confirm step.
// POST /schools/{id}/release.
func (h *UIHandlers) ReleaseSchool(w http.ResponseWriter, r *http.Request) {
	schoolID, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	if err := h.Backend.ReleaseSchool(r.Context(), schoolID); err != nil {
		if errors.Is(err, apperrors.ErrUnauthenticated) {
			forceLogoutAndRedirect(w, r, h.Auth)
			return
		}
		setFlash(w, apperrors.UserMessage(err, "The action failed. Please try again."), flashError)
		Redirect(w, r, "/schools")
		return
	}

	setFlash(w, "School released.", flashSuccess)
	Redirect(w, r, "/schools")
}

// SaveSchool handles school profile edits.
// POST /schools/{id}.
func (h *UIHandlers) SaveSchool(w http.ResponseWriter, r *http.Request) {
	meta := PageMeta{Title: "Edit School", PageTitle: "Edit School", CurrentPage: PageSchoolForm}

	HandleForm(FormHandlerOpts[schoolForm]{
		W: w, R: r, Mode: FormModeEdit,
		Parser: func(r *http.Request) (schoolForm, map[string]string) {
			form := schoolForm{
				Name:    formString(r, "name"),
				Email:   formString(r, "email"),
				Phone:   formString(r, "phone"),
				Address: formString(r, "address"),
			}
			return form, ValidateForm(form)
		},
		Submit: func(ctx context.Context, id string, form schoolForm) error {
			schoolID, ok := parseID(id)
			if !ok {
				return apperrors.NotFound("school not found")
			}
			return h.Backend.UpdateResource(ctx, "schools", schoolID, form)
		},
		Renderer: func(w http.ResponseWriter, r *http.Request, data map[string]any) {
			h.renderPage(w, r, meta, data)
		},
		SuccessURL:     "/schools",
		SuccessMessage: "School saved.",
		PageMeta:       meta,
		Auth:           h.Auth,
	})
}
