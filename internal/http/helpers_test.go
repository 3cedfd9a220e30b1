package httpx

import (
	"context"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	eduride "github.com/eduride/eduride-ui"
	domainauth "github.com/eduride/eduride-ui/internal/domain/auth"
	"github.com/eduride/eduride-ui/internal/domain/model"
	"github.com/eduride/eduride-ui/internal/ports"
	"github.com/eduride/eduride-ui/internal/service"
)

// newTestRenderer parses the real embedded templates, so handler tests fail
// when a template and its handler drift apart.
func newTestRenderer(t *testing.T) *TemplateRenderer {
	t.Helper()

	templateFS, err := fs.Sub(eduride.TemplateFS, "frontend/templates")
	require.NoError(t, err)

	renderer, err := NewTemplateRenderer(TemplateRendererConfig{
		TemplateFS: templateFS,
		Logger:     slog.Default(),
	})
	require.NoError(t, err)
	return renderer
}

// stubAuth is a hand double for AuthServiceInterface.
type stubAuth struct {
	LoginFunc          func(ctx context.Context, creds ports.Credentials) (domainauth.Session, error)
	GetSessionFunc     func(ctx context.Context, sessionID string) (*domainauth.Session, error)
	LogoutFunc         func(ctx context.Context, sessionID string) error
	ChangePasswordFunc func(ctx context.Context, sess domainauth.Session, oldPassword, newPassword string) error

	ForcedLogouts []string
	broadcast     *service.Broadcaster
}

func newStubAuth() *stubAuth {
	return &stubAuth{broadcast: service.NewBroadcaster()}
}

func (s *stubAuth) Login(ctx context.Context, creds ports.Credentials) (domainauth.Session, error) {
	if s.LoginFunc != nil {
		return s.LoginFunc(ctx, creds)
	}
	return domainauth.Session{}, nil
}

func (s *stubAuth) GetSession(ctx context.Context, sessionID string) (*domainauth.Session, error) {
	if s.GetSessionFunc != nil {
		return s.GetSessionFunc(ctx, sessionID)
	}
	return nil, domainauth.ErrUnknownRole
}

func (s *stubAuth) Logout(ctx context.Context, sessionID string) error {
	if s.LogoutFunc != nil {
		return s.LogoutFunc(ctx, sessionID)
	}
	return nil
}

func (s *stubAuth) ForceLogout(_ context.Context, sessionID string) {
	s.ForcedLogouts = append(s.ForcedLogouts, sessionID)
	s.broadcast.Publish(service.SignalLogout)
}

func (s *stubAuth) ChangePassword(ctx context.Context, sess domainauth.Session, oldPassword, newPassword string) error {
	if s.ChangePasswordFunc != nil {
		return s.ChangePasswordFunc(ctx, sess, oldPassword, newPassword)
	}
	return nil
}

func (s *stubAuth) Broadcaster() *service.Broadcaster { return s.broadcast }

// stubBackend is a hand double for BackendService with per-call overrides.
type stubBackend struct {
	FetchRecordsFunc   func(ctx context.Context, path string) ([]map[string]any, error)
	SummaryFunc        func(ctx context.Context, resource string) (model.DashboardSummary, error)
	SignupFunc         func(ctx context.Context, resource string, payload any) error
	CreateBusFunc      func(ctx context.Context, payload any) error
	UpdateResourceFunc func(ctx context.Context, resource string, id int64, payload any) error
	DeleteBusFunc      func(ctx context.Context, busID int64) error
	AssignHelperFunc   func(ctx context.Context, busID, helperID int64) error
	UnassignDriverFunc func(ctx context.Context, busID int64) error
	ReleaseSchoolFunc  func(ctx context.Context, schoolID int64) error
	SendFeedbackFunc   func(ctx context.Context, req model.FeedbackRequest) error
	HelperStudentsFunc func(ctx context.Context) ([]model.Student, error)
	TodayStatusFunc    func(ctx context.Context, studentID int64) (model.StatusRecord, error)
	StudentMeFunc      func(ctx context.Context) (model.Student, error)
	SchoolMeFunc       func(ctx context.Context) (model.School, error)
}

func (s *stubBackend) FetchRecords(ctx context.Context, path string) ([]map[string]any, error) {
	if s.FetchRecordsFunc != nil {
		return s.FetchRecordsFunc(ctx, path)
	}
	return nil, nil
}

func (s *stubBackend) DashboardSummary(ctx context.Context, resource string) (model.DashboardSummary, error) {
	if s.SummaryFunc != nil {
		return s.SummaryFunc(ctx, resource)
	}
	return model.DashboardSummary{}, nil
}

func (s *stubBackend) Signup(ctx context.Context, resource string, payload any) error {
	if s.SignupFunc != nil {
		return s.SignupFunc(ctx, resource, payload)
	}
	return nil
}

func (s *stubBackend) CreateBus(ctx context.Context, payload any) error {
	if s.CreateBusFunc != nil {
		return s.CreateBusFunc(ctx, payload)
	}
	return nil
}

func (s *stubBackend) UpdateResource(ctx context.Context, resource string, id int64, payload any) error {
	if s.UpdateResourceFunc != nil {
		return s.UpdateResourceFunc(ctx, resource, id, payload)
	}
	return nil
}

func (s *stubBackend) DeleteBus(ctx context.Context, busID int64) error {
	if s.DeleteBusFunc != nil {
		return s.DeleteBusFunc(ctx, busID)
	}
	return nil
}

func (s *stubBackend) AssignHelper(ctx context.Context, busID, helperID int64) error {
	if s.AssignHelperFunc != nil {
		return s.AssignHelperFunc(ctx, busID, helperID)
	}
	return nil
}

func (s *stubBackend) UnassignDriver(ctx context.Context, busID int64) error {
	if s.UnassignDriverFunc != nil {
		return s.UnassignDriverFunc(ctx, busID)
	}
	return nil
}

func (s *stubBackend) ReleaseSchool(ctx context.Context, schoolID int64) error {
	if s.ReleaseSchoolFunc != nil {
		return s.ReleaseSchoolFunc(ctx, schoolID)
	}
	return nil
}

func (s *stubBackend) SendFeedback(ctx context.Context, req model.FeedbackRequest) error {
	if s.SendFeedbackFunc != nil {
		return s.SendFeedbackFunc(ctx, req)
	}
	return nil
}

func (s *stubBackend) HelperStudents(ctx context.Context) ([]model.Student, error) {
	if s.HelperStudentsFunc != nil {
		return s.HelperStudentsFunc(ctx)
	}
	return nil, nil
}

func (s *stubBackend) TodayStatus(ctx context.Context, studentID int64) (model.StatusRecord, error) {
	if s.TodayStatusFunc != nil {
		return s.TodayStatusFunc(ctx, studentID)
	}
	return model.StatusRecord{StudentID: studentID, PickupStatus: model.StatusPending}, nil
}

func (s *stubBackend) StudentMe(ctx context.Context) (model.Student, error) {
	if s.StudentMeFunc != nil {
		return s.StudentMeFunc(ctx)
	}
	return model.Student{}, nil
}

func (s *stubBackend) SchoolMe(ctx context.Context) (model.School, error) {
	if s.SchoolMeFunc != nil {
		return s.SchoolMeFunc(ctx)
	}
	return model.School{}, nil
}

// statusWriterFunc adapts a function to service.StatusWriter.
type statusWriterFunc func(ctx context.Context, rec model.StatusRecord) error

func (f statusWriterFunc) SaveStatus(ctx context.Context, rec model.StatusRecord) error {
	return f(ctx, rec)
}

// newTestHandlers wires a full UIHandlers against the stubs.
func newTestHandlers(t *testing.T, auth *stubAuth, backend *stubBackend, writer service.StatusWriter) *UIHandlers {
	t.Helper()

	if auth == nil {
		auth = newStubAuth()
	}
	if backend == nil {
		backend = &stubBackend{}
	}
	if writer == nil {
		writer = statusWriterFunc(func(context.Context, model.StatusRecord) error { return nil })
	}

	h, err := NewUIHandlers(UIHandlersOptions{
		Renderer: newTestRenderer(t),
		Auth:     auth,
		Backend:  backend,
		Status:   service.NewStatusService(service.StatusServiceOptions{Writer: writer}),
		Logger:   slog.Default(),
	})
	require.NoError(t, err)
	return h
}

// testSession builds a valid session for the given role.
func testSession(role domainauth.Role) *domainauth.Session {
	return &domainauth.Session{
		ID:          "sess-1",
		Token:       "tok-1",
		UserID:      "42",
		DisplayName: "Test User",
		Email:       "user@example.com",
		Role:        role,
	}
}

// requestWithSession attaches a session to the request context the way the
// route guard does.
func requestWithSession(r *http.Request, session *domainauth.Session) *http.Request {
	return r.WithContext(SetSessionInContext(r.Context(), session))
}

// sessionCookie returns the cookie the guard reads.
func sessionCookie(id string) *http.Cookie {
	return &http.Cookie{Name: sessionCookieName, Value: id}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// doRequest runs a handler and returns the recorder.
func doRequest(handler http.Handler, r *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	return w
}
