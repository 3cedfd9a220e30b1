package eduride

import (
	"context"
	"fmt"

	"github.com/eduride/eduride-ui/internal/domain/model"
	"github.com/eduride/eduride-ui/internal/ports"
)

// Login exchanges credentials for a bearer token and profile.
// Implements ports.Authenticator. The role string is returned as-is; callers
// normalize it through auth.ParseRole.
func (c *Client) Login(ctx context.Context, creds ports.Credentials) (ports.LoginResult, error) {
	var resp struct {
		Token string `json:"token"`
		Role  string `json:"role"`
		Email string `json:"email"`
		Name  string `json:"name"`
		ID    int64  `json:"id"`
	}
	body := map[string]string{"email": creds.Email, "password": creds.Password}
	if err := c.Post(ctx, "/auth/login", body, &resp); err != nil {
		return ports.LoginResult{}, err
	}
	return ports.LoginResult{
		Token:       resp.Token,
		UserID:      fmt.Sprintf("%d", resp.ID),
		DisplayName: resp.Name,
		Email:       resp.Email,
		Role:        resp.Role,
	}, nil
}

// ChangePassword updates the current user's password.
func (c *Client) ChangePassword(ctx context.Context, token, oldPassword, newPassword string) error {
	body := map[string]string{"oldPassword": oldPassword, "newPassword": newPassword}
	return c.Post(WithToken(ctx, token), "/user/change-password", body, nil)
}

// FetchRecords fetches a collection endpoint as opaque roster records. The
// UI filters/sorts these client-side; it never validates cross-entity
// referential integrity in the snapshot.
func (c *Client) FetchRecords(ctx context.Context, path string) ([]map[string]any, error) {
	var records []map[string]any
	if err := c.Get(ctx, path, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// HelperStudents returns the students assigned to the calling helper's bus.
func (c *Client) HelperStudents(ctx context.Context) ([]model.Student, error) {
	var students []model.Student
	if err := c.Get(ctx, "/helpers/students", &students); err != nil {
		return nil, err
	}
	return students, nil
}

// TodayStatus returns a student's status record for today. A 404 means no
// record exists yet; callers treat that as PENDING.
func (c *Client) TodayStatus(ctx context.Context, studentID int64) (model.StatusRecord, error) {
	var rec model.StatusRecord
	err := c.Get(ctx, fmt.Sprintf("/student-status/today/%d", studentID), &rec)
	return rec, err
}

// SaveStatus persists a pickup-status change for a student.
func (c *Client) SaveStatus(ctx context.Context, rec model.StatusRecord) error {
	body := map[string]any{"studentId": rec.StudentID, "pickupStatus": rec.PickupStatus}
	return c.Post(ctx, "/helpers/student-status", body, nil)
}

// SchoolTodayStatuses returns today's status records for a school's students.
func (c *Client) SchoolTodayStatuses(ctx context.Context, schoolID int64) ([]model.StatusRecord, error) {
	var recs []model.StatusRecord
	err := c.Get(ctx, fmt.Sprintf("/student-status/school/%d/today", schoolID), &recs)
	return recs, err
}

// DashboardSummary fetches the per-role dashboard headline numbers.
// resource is the backend resource group, e.g. "agencies" or "helpers".
func (c *Client) DashboardSummary(ctx context.Context, resource string) (model.DashboardSummary, error) {
	var sum model.DashboardSummary
	err := c.Get(ctx, "/"+resource+"/dashboard/summary", &sum)
	return sum, err
}

// Signup submits a signup payload for the given resource group
// ("agencies", "schools", "drivers", "helpers", "students").
func (c *Client) Signup(ctx context.Context, resource string, payload any) error {
	return c.Post(ctx, "/"+resource+"/signup", payload, nil)
}

// CreateBus registers a new bus under the calling agency.
func (c *Client) CreateBus(ctx context.Context, payload any) error {
	return c.Post(ctx, "/buses", payload, nil)
}

// UpdateResource updates a single record, e.g. UpdateResource(ctx, "buses", 7, body).
func (c *Client) UpdateResource(ctx context.Context, resource string, id int64, payload any) error {
	return c.Put(ctx, fmt.Sprintf("/%s/%d", resource, id), payload, nil)
}

// DeleteBus removes a bus. Destructive; the UI confirms before calling.
func (c *Client) DeleteBus(ctx context.Context, busID int64) error {
	return c.Delete(ctx, fmt.Sprintf("/buses/%d", busID))
}

// AssignHelper attaches a helper to a bus.
func (c *Client) AssignHelper(ctx context.Context, busID, helperID int64) error {
	return c.Put(ctx, fmt.Sprintf("/buses/%d/assign-helper/%d", busID, helperID), nil, nil)
}

// UnassignDriver detaches the driver from a bus. Destructive; confirmed first.
func (c *Client) UnassignDriver(ctx context.Context, busID int64) error {
	return c.Put(ctx, fmt.Sprintf("/buses/%d/unassign-driver", busID), nil, nil)
}

// ReleaseSchool detaches a school from the calling agency. Destructive.
func (c *Client) ReleaseSchool(ctx context.Context, schoolID int64) error {
	return c.Put(ctx, fmt.Sprintf("/agencies/schools/%d/release", schoolID), nil, nil)
}

// ActivatePass flips a student's bus-pass status after a successful payment.
func (c *Client) ActivatePass(ctx context.Context, studentID int64) error {
	return c.Put(ctx, fmt.Sprintf("/students/%d/activate-pass", studentID), nil, nil)
}

// SendFeedback submits the feedback form.
func (c *Client) SendFeedback(ctx context.Context, req model.FeedbackRequest) error {
	return c.Post(ctx, "/feedback", req, nil)
}

// StudentMe returns the calling student's own record.
func (c *Client) StudentMe(ctx context.Context) (model.Student, error) {
	var s model.Student
	err := c.Get(ctx, "/students/me", &s)
	return s, err
}

// SchoolMe returns the calling school's own record.
func (c *Client) SchoolMe(ctx context.Context) (model.School, error) {
	var s model.School
	err := c.Get(ctx, "/schools/me", &s)
	return s, err
}
