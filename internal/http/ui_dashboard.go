package httpx

import (
	"net/http"

	domainauth "github.com/eduride/eduride-ui/internal/domain/auth"
)

// dashboardResources maps a dashboard page to the backend resource whose
// summary endpoint feeds its cards.
//
//nolint:gochecknoglobals // static read-only lookup
var dashboardResources = map[string]string{
	"agency":     "agencies",
	"school":     "schools",
	"driver":     "drivers",
	"bus-helper": "helpers",
	"student":    "students",
}

func dashboardMeta(title string) PageMeta {
	return PageMeta{Title: title, PageTitle: title, CurrentPage: PageDashboard}
}

// Dashboard renders the signed-in role's dashboard with its summary cards.
// GET /dashboard/{role}.
func (h *UIHandlers) Dashboard(w http.ResponseWriter, r *http.Request) {
	meta := dashboardMeta("Dashboard")

	session := GetSessionFromContext(r.Context())
	if session == nil {
		redirectToLogin(w, r)
		return
	}

	slug := r.PathValue("role")
	resource, ok := dashboardResources[slug]
	if !ok {
		http.NotFound(w, r)
		return
	}

	// A signed-in user asking for another role's dashboard lands on their
	// own instead.
	if home, hasHome := domainauth.DashboardPath(session.Role); hasHome && home != r.URL.Path {
		Redirect(w, r, home)
		return
	}

	summary, err := h.Backend.DashboardSummary(r.Context(), resource)
	if err != nil {
		h.handleBackendError(w, r, meta, err)
		return
	}

	builder := NewTemplateData(r, meta).With("Summary", summary)

	// The student dashboard additionally shows the pass state and, when the
	// pass is inactive, the renewal checkout entry point.
	if resource == "students" {
		if me, meErr := h.Backend.StudentMe(r.Context()); meErr == nil {
			builder.With("Me", me)
		}
	}

	h.renderPage(w, r, meta, builder.Build())
}
