package httpx

import (
	"io/fs"
	"log/slog"
	"net/http"

	domainauth "github.com/eduride/eduride-ui/internal/domain/auth"
	"github.com/eduride/eduride-ui/internal/service"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Renderer *TemplateRenderer
	Auth     AuthServiceInterface
	Backend  BackendService
	Status   *service.StatusService
	Payments *service.PaymentService
	Static   fs.FS
	Logger   *slog.Logger
}

// NewRouter creates and configures the HTTP router with the role guards
// applied per route group.
func NewRouter(services RouterServices) (http.Handler, error) {
	ui, err := NewUIHandlers(UIHandlersOptions{
		Renderer: services.Renderer,
		Auth:     services.Auth,
		Backend:  services.Backend,
		Status:   services.Status,
		Payments: services.Payments,
		Logger:   services.Logger,
	})
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()

	// Everything no other pattern claims.
	mux.Handle("/", http.HandlerFunc(ui.NotFoundPage))

	mux.HandleFunc("GET /healthz", healthHandler)
	mux.HandleFunc("HEAD /healthz", healthHandler)

	if services.Static != nil {
		mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(services.Static)))
	}

	// Public routes. The login page bounces already signed-in users.
	optional := OptionalAuth(services.Auth)
	mux.Handle("GET /{$}", optional(http.HandlerFunc(ui.LoginPage)))
	mux.Handle("GET /login", optional(http.HandlerFunc(ui.LoginPage)))
	mux.Handle("POST /login", http.HandlerFunc(ui.Login))
	mux.Handle("POST /logout", http.HandlerFunc(ui.Logout))
	mux.Handle("GET /signup/{resource}", http.HandlerFunc(ui.SignupPage))
	mux.Handle("POST /signup/{resource}", http.HandlerFunc(ui.Signup))
	mux.Handle("GET /feedback", optional(http.HandlerFunc(ui.FeedbackPage)))
	mux.Handle("POST /feedback", optional(http.HandlerFunc(ui.Feedback)))

	// Guards per role group. An empty list means any authenticated role.
	anyRole := RequireRoles(services.Auth)
	agency := RequireRoles(services.Auth, domainauth.RoleAgency)
	school := RequireRoles(services.Auth, domainauth.RoleSchool)
	agencyOrSchool := RequireRoles(services.Auth, domainauth.RoleAgency, domainauth.RoleSchool)
	helper := RequireRoles(services.Auth, domainauth.RoleHelper)
	student := RequireRoles(services.Auth, domainauth.RoleStudent)

	// Dashboards share one pattern; the handler sends a session whose role
	// does not match the slug to its own dashboard.
	mux.Handle("GET /dashboard/{role}", anyRole(http.HandlerFunc(ui.Dashboard)))

	// Buses: agencies manage, schools view.
	mux.Handle("GET /buses", agencyOrSchool(http.HandlerFunc(ui.BusesPage)))
	mux.Handle("GET /buses/export.csv", agencyOrSchool(http.HandlerFunc(ui.ExportBuses)))
	mux.Handle("GET /buses/new", agency(http.HandlerFunc(ui.NewBusPage)))
	mux.Handle("POST /buses", agency(http.HandlerFunc(ui.SaveBus)))
	mux.Handle("GET /buses/{id}/edit", agency(http.HandlerFunc(ui.EditBusPage)))
	mux.Handle("POST /buses/{id}", agency(http.HandlerFunc(ui.SaveBus)))
	mux.Handle("POST /buses/{id}/delete", agency(http.HandlerFunc(ui.DeleteBus)))
	mux.Handle("POST /buses/{id}/assign-helper", agency(http.HandlerFunc(ui.AssignHelper)))
	mux.Handle("POST /buses/{id}/unassign-driver", agency(http.HandlerFunc(ui.UnassignDriver)))

	// Schools: agency-scoped listing and actions.
	mux.Handle("GET /schools", agency(http.HandlerFunc(ui.SchoolsPage)))
	mux.Handle("POST /schools/{id}", agency(http.HandlerFunc(ui.SaveSchool)))
	mux.Handle("POST /schools/{id}/release", agency(http.HandlerFunc(ui.ReleaseSchool)))

	// Drivers: agency-scoped.
	mux.Handle("GET /drivers", agency(http.HandlerFunc(ui.DriversPage)))
	mux.Handle("POST /drivers/{id}", agency(http.HandlerFunc(ui.SaveDriver)))

	// Helpers: agencies and schools.
	mux.Handle("GET /helpers", agencyOrSchool(http.HandlerFunc(ui.HelpersPage)))
	mux.Handle("POST /helpers/{id}", agencyOrSchool(http.HandlerFunc(ui.SaveHelper)))

	// Students: school-scoped listing plus today's attendance.
	mux.Handle("GET /students", school(http.HandlerFunc(ui.StudentsPage)))
	mux.Handle("GET /students/export.csv", school(http.HandlerFunc(ui.ExportStudents)))
	mux.Handle("GET /students/today", school(http.HandlerFunc(ui.TodayPage)))
	mux.Handle("POST /students/{id}", school(http.HandlerFunc(ui.SaveStudent)))

	// Helper's mark-status board.
	mux.Handle("GET /helpers/mark-status", helper(http.HandlerFunc(ui.MarkStatusPage)))
	mux.Handle("POST /helpers/mark-status", helper(http.HandlerFunc(ui.MarkStatus)))

	// Student checkout.
	mux.Handle("GET /checkout", student(http.HandlerFunc(ui.CheckoutPage)))
	mux.Handle("POST /checkout/complete", student(http.HandlerFunc(ui.CompleteCheckout)))

	// Account routes shared by every role.
	mux.Handle("GET /account/password", anyRole(http.HandlerFunc(ui.ChangePasswordPage)))
	mux.Handle("POST /account/password", anyRole(http.HandlerFunc(ui.ChangePassword)))

	// Session lifecycle stream for mounted pages.
	mux.Handle("GET /events/session", anyRole(http.HandlerFunc(ui.SessionEvents)))

	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}
	var handler http.Handler = mux
	handler = Logging(logger)(handler)
	handler = Recover(logger)(handler)
	return handler, nil
}
