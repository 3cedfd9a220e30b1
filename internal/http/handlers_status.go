package httpx

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/eduride/eduride-ui/internal/domain/model"
	apperrors "github.com/eduride/eduride-ui/internal/errors"
	"github.com/eduride/eduride-ui/internal/service"
)

func markStatusMeta() PageMeta {
	return PageMeta{Title: "Mark Status", PageTitle: "Mark Pickup Status", CurrentPage: PageMarkStatus}
}

// statusRow is the view model for one row of the mark-status roster.
type statusRow struct {
	Student model.Student
	Status  model.PickupStatus
	Error   string
}

// MarkStatusPage renders the helper's roster with today's statuses.
// GET /helpers/mark-status.
func (h *UIHandlers) MarkStatusPage(w http.ResponseWriter, r *http.Request) {
	session := GetSessionFromContext(r.Context())
	if session == nil {
		redirectToLogin(w, r)
		return
	}

	students, err := h.Backend.HelperStudents(r.Context())
	if err != nil {
		h.handleBackendError(w, r, markStatusMeta(), err)
		return
	}

	// Today's statuses seed the board; missing rows default to pending.
	records := make([]model.StatusRecord, 0, len(students))
	for _, st := range students {
		rec := model.StatusRecord{StudentID: st.ID, PickupStatus: model.StatusPending}
		if fetched, fetchErr := h.Backend.TodayStatus(r.Context(), st.ID); fetchErr == nil {
			rec = fetched
		}
		records = append(records, rec)
	}
	h.Status.Seed(session.ID, records)

	board := h.Status.Board(session.ID)
	rows := make([]statusRow, 0, len(students))
	for _, st := range students {
		rows = append(rows, statusRow{Student: st, Status: board[st.ID].PickupStatus})
	}

	data := NewTemplateData(r, markStatusMeta()).
		With("Rows", rows).
		With("NoData", len(rows) == 0).
		Build()
	h.renderPage(w, r, markStatusMeta(), data)
}

// MarkStatus applies one status change and returns the settled row. The
// board already shows the new value while the backend call is in flight;
// on failure the row comes back with its previous value and the backend's
// message, and the student stays markable.
// POST /helpers/mark-status.
func (h *UIHandlers) MarkStatus(w http.ResponseWriter, r *http.Request) {
	session := GetSessionFromContext(r.Context())
	if session == nil {
		redirectToLogin(w, r)
		return
	}

	studentID, ok := parseID(r.FormValue("student_id"))
	if !ok {
		http.Error(w, "invalid student id", http.StatusBadRequest)
		return
	}
	status := model.PickupStatus(formString(r, "status"))

	rec, err := h.Status.Mark(r.Context(), session.ID, studentID, status)
	if err != nil && errors.Is(err, apperrors.ErrUnauthenticated) {
		forceLogoutAndRedirect(w, r, h.Auth)
		return
	}

	row := statusRow{
		Student: model.Student{ID: studentID, Name: formString(r, "student_name")},
		Status:  rec.PickupStatus,
	}
	if err != nil {
		row.Error = apperrors.UserMessage(err, "Could not save the status. Please try again.")
	}

	if renderErr := h.T.RenderNamed(w, "status-row", row); renderErr != nil {
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

// SessionEvents streams session lifecycle signals over SSE. Every mounted
// page listens here; a logout event makes it navigate to the login page
// without polling.
// GET /events/session.
func (h *UIHandlers) SessionEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		WriteError(w, ErrorParams{
			Code:    http.StatusInternalServerError,
			ErrCode: "streaming_unsupported",
			Err:     errors.New("response writer does not support streaming"),
		})
		return
	}

	signals, cancel := h.Auth.Broadcaster().Subscribe()
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case signal, open := <-signals:
			if !open {
				return
			}
			if signal != service.SignalLogout {
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: {}\n\n", service.SignalLogout)
			flusher.Flush()
		}
	}
}
