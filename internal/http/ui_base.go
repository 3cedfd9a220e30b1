package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/eduride/eduride-ui/internal/adapters/eduride"
	"github.com/eduride/eduride-ui/internal/domain/model"
	apperrors "github.com/eduride/eduride-ui/internal/errors"
	"github.com/eduride/eduride-ui/internal/service"
)

// BackendService is the slice of the backend gateway the UI handlers need.
type BackendService interface {
	FetchRecords(ctx context.Context, path string) ([]map[string]any, error)
	DashboardSummary(ctx context.Context, resource string) (model.DashboardSummary, error)
	Signup(ctx context.Context, resource string, payload any) error
	CreateBus(ctx context.Context, payload any) error
	UpdateResource(ctx context.Context, resource string, id int64, payload any) error
	DeleteBus(ctx context.Context, busID int64) error
	AssignHelper(ctx context.Context, busID, helperID int64) error
	UnassignDriver(ctx context.Context, busID int64) error
	ReleaseSchool(ctx context.Context, schoolID int64) error
	SendFeedback(ctx context.Context, req model.FeedbackRequest) error
	HelperStudents(ctx context.Context) ([]model.Student, error)
	TodayStatus(ctx context.Context, studentID int64) (model.StatusRecord, error)
	StudentMe(ctx context.Context) (model.Student, error)
	SchoolMe(ctx context.Context) (model.School, error)
}

// Compile-time assertion that the backend client satisfies the UI's needs.
var _ BackendService = (*eduride.Client)(nil)

// UIHandlers serves browser-facing routes.
type UIHandlers struct {
	T        *TemplateRenderer
	Auth     AuthServiceInterface
	Backend  BackendService
	Status   *service.StatusService
	Payments *service.PaymentService
	Logger   *slog.Logger

	// Per-view roster pipelines, built once at startup.
	buses    *service.Roster
	students *service.Roster
	drivers  *service.Roster
	helpers  *service.Roster
	schools  *service.Roster
	today    *service.Roster
}

// UIHandlersOptions groups dependencies for NewUIHandlers.
type UIHandlersOptions struct {
	Renderer *TemplateRenderer
	Auth     AuthServiceInterface
	Backend  BackendService
	Status   *service.StatusService
	Payments *service.PaymentService
	Logger   *slog.Logger
}

// NewUIHandlers constructs the UI handler set and its view pipelines.
func NewUIHandlers(opts UIHandlersOptions) (*UIHandlers, error) {
	h := &UIHandlers{
		T:        opts.Renderer,
		Auth:     opts.Auth,
		Backend:  opts.Backend,
		Status:   opts.Status,
		Payments: opts.Payments,
		Logger:   opts.Logger,
	}

	for _, v := range []struct {
		dst  **service.Roster
		spec service.ViewSpec
	}{
		{&h.buses, service.BusViewSpec()},
		{&h.students, service.StudentViewSpec()},
		{&h.drivers, service.DriverViewSpec()},
		{&h.helpers, service.HelperViewSpec()},
		{&h.schools, service.SchoolViewSpec()},
		{&h.today, service.TodayViewSpec()},
	} {
		roster, err := service.NewRoster(v.spec)
		if err != nil {
			return nil, err
		}
		*v.dst = roster
	}
	return h, nil
}

func (h *UIHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// renderPage renders a page with proper HTMX partial support. A pending
// flash notice is folded in here so every page shows it exactly once.
func (h *UIHandlers) renderPage(w http.ResponseWriter, r *http.Request, meta PageMeta, data map[string]any) {
	if WantsPartial(r) {
		if err := h.T.RenderPartial(w, r, meta.CurrentPage, data); err != nil {
			http.Error(w, "internal server error", http.StatusInternalServerError)
		}
		return
	}
	// Only the full layout carries the toast slot, so the notice is popped
	// here and nowhere else.
	if notice, ok := popFlash(w, r); ok {
		data["Flash"] = notice
	}
	if err := h.T.RenderFull(w, r, data); err != nil {
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

// handleBackendError maps a failed backend fetch onto the page. A rejected
// token restarts the user at login; anything else renders the page-level
// error state with a manual retry (reload).
func (h *UIHandlers) handleBackendError(w http.ResponseWriter, r *http.Request, meta PageMeta, err error) {
	if errors.Is(err, apperrors.ErrUnauthenticated) {
		forceLogoutAndRedirect(w, r, h.Auth)
		return
	}

	h.logger().ErrorContext(r.Context(), "backend fetch failed",
		"path", r.URL.Path, "error", err)

	data := NewTemplateData(r, meta).
		WithError(apperrors.UserMessage(err, "Something went wrong. Please try again.")).
		With("CanRetry", true).
		Build()
	h.renderPage(w, r, meta, data)
}

// NotFoundPage is the catch-all for paths no route claims. The status and
// headers go out before rendering because the renderer writes them only on
// the success path.
func (h *UIHandlers) NotFoundPage(w http.ResponseWriter, r *http.Request) {
	meta := PageMeta{Title: "Not Found", PageTitle: "Page not found"}
	data := NewTemplateData(r, meta).
		WithError("The page you are looking for does not exist.").
		Build()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	if err := h.T.RenderError(w, r, data); err != nil {
		h.logger().ErrorContext(r.Context(), "not-found page render failed", "error", err)
	}
}

// applyView runs the view pipeline and folds the result into template data.
func applyView(b *TemplateDataBuilder, roster *service.Roster, records []service.Record, q service.Query) *TemplateDataBuilder {
	res := roster.Apply(records, q)
	return b.
		With("Records", res.Records).
		With("NoData", res.NoData).
		With("NoMatches", res.NoMatches).
		With("Query", q)
}

// pathID parses the {id} path value as an int64, returning false on junk.
func pathID(r *http.Request) (int64, bool) {
	return parseID(r.PathValue("id"))
}
