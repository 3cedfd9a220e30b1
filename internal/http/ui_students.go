package httpx

import (
	"context"
	"net/http"

	"github.com/eduride/eduride-ui/internal/domain/model"
	apperrors "github.com/eduride/eduride-ui/internal/errors"
	"github.com/eduride/eduride-ui/internal/service"
)

// studentForm backs the student signup/edit form.
type studentForm struct {
	Name      string `json:"name"      validate:"required"`
	Email     string `json:"email"     validate:"required,email"`
	Password  string `json:"password"  validate:"omitempty,min=6"`
	ClassName string `json:"className" validate:"required"`
	RollNo    string `json:"rollNo"    validate:"required"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
}

func studentsMeta() PageMeta {
	return PageMeta{Title: "Students", PageTitle: "Students", CurrentPage: PageStudents}
}

func todayMeta() PageMeta {
	return PageMeta{Title: "Today", PageTitle: "Today's Attendance", CurrentPage: PageToday}
}

func (h *UIHandlers) fetchStudentRecords(r *http.Request) ([]service.Record, error) {
	session := GetSessionFromContext(r.Context())
	if session == nil {
		return nil, apperrors.ErrUnauthenticated
	}
	return h.Backend.FetchRecords(r.Context(), "/students/school/"+session.UserID)
}

// StudentsPage renders the school's student listing.
// GET /students.
func (h *UIHandlers) StudentsPage(w http.ResponseWriter, r *http.Request) {
	records, err := h.fetchStudentRecords(r)
	if err != nil {
		h.handleBackendError(w, r, studentsMeta(), err)
		return
	}

	q := ParseViewQuery(r.URL.Query())
	data := applyView(NewTemplateData(r, studentsMeta()), h.students, records, q).Build()
	h.renderPage(w, r, studentsMeta(), data)
}

// ExportStudents downloads the filtered student listing as CSV.
// GET /students/export.csv.
func (h *UIHandlers) ExportStudents(w http.ResponseWriter, r *http.Request) {
	records, err := h.fetchStudentRecords(r)
	if err != nil {
		h.handleBackendError(w, r, studentsMeta(), err)
		return
	}

	res := h.students.Apply(records, ParseViewQuery(r.URL.Query()))

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="students.csv"`)
	if err := service.ExportCSV(w, service.StudentExportColumns(), res.Records); err != nil {
		h.logger().ErrorContext(r.Context(), "student export failed", "error", err)
	}
}

// TodayPage renders the present/absent split of today's pickup statuses for
// the school. "Present" is anyone picked or dropped; pending means absent
// so far.
// GET /students/today.
func (h *UIHandlers) TodayPage(w http.ResponseWriter, r *http.Request) {
	session := GetSessionFromContext(r.Context())
	if session == nil {
		redirectToLogin(w, r)
		return
	}

	records, err := h.Backend.FetchRecords(r.Context(), "/student-status/school/"+session.UserID+"/today")
	if err != nil {
		h.handleBackendError(w, r, todayMeta(), err)
		return
	}

	// Search narrows both columns; the present/absent split comes after.
	q := service.Query{Search: formString(r, "q")}
	res := h.today.Apply(records, q)

	var present, absent []service.Record
	for _, row := range res.Records {
		switch row["pickupStatus"] {
		case string(model.StatusPicked), string(model.StatusDropped):
			present = append(present, row)
		default:
			absent = append(absent, row)
		}
	}

	data := NewTemplateData(r, todayMeta()).
		With("Present", present).
		With("Absent", absent).
		With("NoData", res.NoData).
		With("NoMatches", res.NoMatches).
		With("Query", q).
		Build()
	h.renderPage(w, r, todayMeta(), data)
}

// SaveStudent handles student edits from the school's listing.
// POST /students/{id}.
func (h *UIHandlers) SaveStudent(w http.ResponseWriter, r *http.Request) {
	meta := PageMeta{Title: "Edit Student", PageTitle: "Edit Student", CurrentPage: PageStudentForm}

	HandleForm(FormHandlerOpts[studentForm]{
		W: w, R: r, Mode: FormModeEdit,
		Parser: func(r *http.Request) (studentForm, map[string]string) {
			form := studentForm{
				Name:      formString(r, "name"),
				Email:     formString(r, "email"),
				ClassName: formString(r, "className"),
				RollNo:    formString(r, "rollNo"),
				Phone:     formString(r, "phone"),
				Address:   formString(r, "address"),
			}
			return form, ValidateForm(form)
		},
		Submit: func(ctx context.Context, id string, form studentForm) error {
			studentID, ok := parseID(id)
			if !ok {
				return apperrors.NotFound("student not found")
			}
			return h.Backend.UpdateResource(ctx, "students", studentID, form)
		},
		Renderer: func(w http.ResponseWriter, r *http.Request, data map[string]any) {
			h.renderPage(w, r, meta, data)
		},
		SuccessURL:     "/students",
		SuccessMessage: "Student saved.",
		PageMeta:       meta,
		Auth:           h.Auth,
	})
}
