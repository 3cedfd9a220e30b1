package httpx

// CurrentPage constants define the page identifiers used in templates and
// navigation. These ensure consistency across UI handlers and template mapping.
const (
	PageLogin     = "login"
	PageDashboard = "dashboard"

	// Bus pages.
	PageBuses   = "buses"
	PageBusForm = "bus-form"

	// School pages.
	PageSchools    = "schools"
	PageSchoolForm = "school-form"

	// Driver pages.
	PageDrivers    = "drivers"
	PageDriverForm = "driver-form"

	// Helper pages.
	PageHelpers    = "helpers"
	PageHelperForm = "helper-form"

	// Student pages.
	PageStudents    = "students"
	PageStudentForm = "student-form"
	PageToday       = "today"
	PageMarkStatus  = "mark-status"

	// Account pages.
	PageChangePassword = "change-password"
	PageCheckout       = "checkout"
	PageFeedback       = "feedback"
	PageSignup         = "signup"
)

// sessionCookieName is the HttpOnly cookie carrying the server-side session ID.
const sessionCookieName = "session_id"

// FormMode represents the mode of a form (create or edit).
type FormMode string

const (
	FormModeEdit   FormMode = "edit"
	FormModeCreate FormMode = "create"
)

// Content templates are defined once and reused to avoid per-call allocations.
//
//nolint:gochecknoglobals // static read-only lookup for templates
var contentTemplates = map[string]string{
	PageLogin:          "login-content",
	PageDashboard:      "dashboard-content",
	PageBuses:          "buses-content",
	PageBusForm:        "bus-form-content",
	PageSchools:        "schools-content",
	PageSchoolForm:     "school-form-content",
	PageDrivers:        "drivers-content",
	PageDriverForm:     "driver-form-content",
	PageHelpers:        "helpers-content",
	PageHelperForm:     "helper-form-content",
	PageStudents:       "students-content",
	PageStudentForm:    "student-form-content",
	PageToday:          "today-content",
	PageMarkStatus:     "mark-status-content",
	PageChangePassword: "change-password-content",
	PageCheckout:       "checkout-content",
	PageFeedback:       "feedback-content",
	PageSignup:         "signup-content",
}

// ContentTemplateFor returns the content template for the given CurrentPage.
// Falls back to dashboard-content for unknown pages.
func ContentTemplateFor(currentPage string) string {
	if name, ok := contentTemplates[currentPage]; ok {
		return name
	}
	return "dashboard-content"
}
