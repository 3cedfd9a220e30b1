package httpx

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	domainauth "github.com/eduride/eduride-ui/internal/domain/auth"
	apperrors "github.com/eduride/eduride-ui/internal/errors"
	"github.com/eduride/eduride-ui/internal/service"
)

// busForm backs the bus create/edit form.
type busForm struct {
	BusNumber string `json:"busNumber" validate:"required"`
	Capacity  int    `json:"capacity"  validate:"required,min=1"`
	SchoolID  int64  `json:"schoolId"`
}

func busesMeta() PageMeta {
	return PageMeta{Title: "Buses", PageTitle: "Buses", CurrentPage: PageBuses}
}

func busFormMeta(mode FormMode) PageMeta {
	title := "New Bus"
	if mode == FormModeEdit {
		title = "Edit Bus"
	}
	return PageMeta{Title: title, PageTitle: title, CurrentPage: PageBusForm}
}

// busCollectionPath picks the backend collection for the signed-in role:
// agencies see their fleet, schools the buses serving them.
func busCollectionPath(session *domainauth.Session) (string, bool) {
	switch session.Role {
	case domainauth.RoleAgency:
		return "/buses/agency/" + session.UserID, true
	case domainauth.RoleSchool:
		return "/buses/school/" + session.UserID, true
	default:
		return "", false
	}
}

// fetchBusRecords loads the role-appropriate bus collection.
func (h *UIHandlers) fetchBusRecords(r *http.Request) ([]service.Record, error) {
	session := GetSessionFromContext(r.Context())
	if session == nil {
		return nil, apperrors.ErrUnauthenticated
	}
	path, ok := busCollectionPath(session)
	if !ok {
		return nil, apperrors.NotFound("no bus listing for this role")
	}
	return h.Backend.FetchRecords(r.Context(), path)
}

// BusesPage renders the bus listing with search, filter and sort applied.
// GET /buses.
func (h *UIHandlers) BusesPage(w http.ResponseWriter, r *http.Request) {
	records, err := h.fetchBusRecords(r)
	if err != nil {
		h.handleBackendError(w, r, busesMeta(), err)
		return
	}

	q := ParseViewQuery(r.URL.Query())
	data := applyView(NewTemplateData(r, busesMeta()), h.buses, records, q).
		With("Filters", []string{service.FilterAll, service.FilterWithoutDriver, service.FilterWithoutHelper}).
		Build()
	h.renderPage(w, r, busesMeta(), data)
}

// ExportBuses downloads the currently filtered listing as CSV. The export
// is a pure transform of the fetched collection; the same query parameters
// the page uses shape the file.
// GET /buses/export.csv.
func (h *UIHandlers) ExportBuses(w http.ResponseWriter, r *http.Request) {
	records, err := h.fetchBusRecords(r)
	if err != nil {
		h.handleBackendError(w, r, busesMeta(), err)
		return
	}

	res := h.buses.Apply(records, ParseViewQuery(r.URL.Query()))

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="buses.csv"`)
	if err := service.ExportCSV(w, service.BusExportColumns(), res.Records); err != nil {
		h.logger().ErrorContext(r.Context(), "bus export failed", "error", err)
	}
}

// NewBusPage renders the empty bus form.
// GET /buses/new.
func (h *UIHandlers) NewBusPage(w http.ResponseWriter, r *http.Request) {
	meta := busFormMeta(FormModeCreate)
	data := NewTemplateData(r, meta).
		With("Mode", string(FormModeCreate)).
		With("FormData", busForm{}).
		Build()
	h.renderPage(w, r, meta, data)
}

// EditBusPage renders the bus form pre-filled from the listing row.
// GET /buses/{id}/edit.
func (h *UIHandlers) EditBusPage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	meta := busFormMeta(FormModeEdit)
	q := r.URL.Query()
	data := NewTemplateData(r, meta).
		With("Mode", string(FormModeEdit)).
		With("BusID", id).
		With("FormData", busForm{
			BusNumber: q.Get("busNumber"),
			Capacity:  formIntFromQuery(q.Get("capacity")),
		}).
		Build()
	h.renderPage(w, r, meta, data)
}

// SaveBus handles both create and edit submissions.
// POST /buses  |  POST /buses/{id}.
func (h *UIHandlers) SaveBus(w http.ResponseWriter, r *http.Request) {
	mode := FormModeCreate
	if r.PathValue("id") != "" {
		mode = FormModeEdit
	}

	HandleForm(FormHandlerOpts[busForm]{
		W: w, R: r, Mode: mode,
		Parser: func(r *http.Request) (busForm, map[string]string) {
			form := busForm{
				BusNumber: formString(r, "busNumber"),
				Capacity:  formInt(r, "capacity"),
			}
			if schoolID, ok := parseID(r.FormValue("schoolId")); ok {
				form.SchoolID = schoolID
			}
			return form, ValidateForm(form)
		},
		Submit: func(ctx context.Context, id string, form busForm) error {
			if mode == FormModeEdit {
				busID, ok := parseID(id)
				if !ok {
					return apperrors.NotFound("bus not found")
				}
				return h.Backend.UpdateResource(ctx, "buses", busID, form)
			}
			return h.Backend.CreateBus(ctx, form)
		},
		Renderer: func(w http.ResponseWriter, r *http.Request, data map[string]any) {
			h.renderPage(w, r, busFormMeta(mode), data)
		},
		SuccessURL:     "/buses",
		SuccessMessage: "Bus saved.",
		PageMeta:       busFormMeta(mode),
		Auth:           h.Auth,
	})
}

// DeleteBus removes a bus. The listing's confirm step gates this endpoint;
// the POST itself is the commit.
// POST /buses/{id}/delete.
func (h *UIHandlers) DeleteBus(w http.ResponseWriter, r *http.Request) {
	h.busAction(w, r, "Bus deleted.", func(ctx context.Context, busID int64) error {
		return h.Backend.DeleteBus(ctx, busID)
	})
}

// AssignHelper assigns a helper to a bus.
// POST /buses/{id}/assign-helper.
func (h *UIHandlers) AssignHelper(w http.ResponseWriter, r *http.Request) {
	helperID, ok := parseID(r.FormValue("helper_id"))
	if !ok {
		http.Error(w, "invalid helper id", http.StatusBadRequest)
		return
	}
	h.busAction(w, r, "Helper assigned.", func(ctx context.Context, busID int64) error {
		return h.Backend.AssignHelper(ctx, busID, helperID)
	})
}

// UnassignDriver detaches the driver from a bus, behind the confirm step.
// POST /buses/{id}/unassign-driver.
func (h *UIHandlers) UnassignDriver(w http.ResponseWriter, r *http.Request) {
	h.busAction(w, r, "Driver unassigned.", func(ctx context.Context, busID int64) error {
		return h.Backend.UnassignDriver(ctx, busID)
	})
}

// busAction runs a single bus mutation and bounces back to the listing with
// a toast, or surfaces the backend's message on the listing's error state.
func (h *UIHandlers) busAction(w http.ResponseWriter, r *http.Request, successMsg string, action func(ctx context.Context, busID int64) error) {
	busID, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	if err := action(r.Context(), busID); err != nil {
		if errors.Is(err, apperrors.ErrUnauthenticated) {
			forceLogoutAndRedirect(w, r, h.Auth)
			return
		}
		setFlash(w, apperrors.UserMessage(err, "The action failed. Please try again."), flashError)
		Redirect(w, r, "/buses")
		return
	}

	setFlash(w, successMsg, flashSuccess)
	Redirect(w, r, "/buses")
}

func formIntFromQuery(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return n
}
