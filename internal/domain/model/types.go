package model

// Package model holds the records exchanged with the EduRide backend. The UI
// does not own persistent state; these are snapshots trusted at fetch time.

import "time"

// PickupStatus is a student's pickup/drop-off state for the current day.
// Defaults to PENDING server-side. The UI does not enforce monotonicity:
// any status may be selected at any time.
type PickupStatus string

const (
	StatusPending PickupStatus = "PENDING"
	StatusPicked  PickupStatus = "PICKED"
	StatusDropped PickupStatus = "DROPPED"
)

// ValidPickupStatus reports whether s is one of the three known states.
func ValidPickupStatus(s PickupStatus) bool {
	switch s {
	case StatusPending, StatusPicked, StatusDropped:
		return true
	default:
		return false
	}
}

// StatusRecord is one student's pickup state for today, mutated by a
// helper/driver action.
type StatusRecord struct {
	StudentID    int64        `json:"studentId"`
	PickupStatus PickupStatus `json:"pickupStatus"`
	MarkedAt     time.Time    `json:"markedAt,omitzero"`
}

// Bus is a backend bus row, including denormalized school/driver/helper names
// the way the backend's BusDTO ships them.
type Bus struct {
	ID          int64  `json:"id"`
	BusNumber   string `json:"busNumber"`
	Capacity    int    `json:"capacity"`
	SchoolID    int64  `json:"schoolId,omitempty"`
	SchoolName  string `json:"schoolName,omitempty"`
	DriverID    int64  `json:"driverId,omitempty"`
	DriverName  string `json:"driverName,omitempty"`
	DriverPhone string `json:"driverPhone,omitempty"`
	HelperName  string `json:"helperName,omitempty"`
	HelperPhone string `json:"helperPhone,omitempty"`
}

// Student is a backend student row as shown in school lists and the
// helper's mark-status roster.
type Student struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	ClassName  string `json:"className"`
	RollNo     string `json:"rollNo"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	PassStatus string `json:"passStatus"`
	Bus        *Bus   `json:"assignedBus,omitempty"`
}

// Driver is a backend driver row.
type Driver struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	LicenseNumber string `json:"licenseNumber"`
	BusID         int64  `json:"busId,omitempty"`
	BusNumber     string `json:"busNumber,omitempty"`
}

// Helper is a backend bus-helper row.
type Helper struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	BusID     int64  `json:"busId,omitempty"`
	BusNumber string `json:"busNumber,omitempty"`
}

// School is a backend school row.
type School struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	AgencyID int64  `json:"agencyId,omitempty"`
}

// DashboardSummary carries the per-role headline numbers rendered on the
// dashboard cards. Only the fields relevant to a role are populated.
type DashboardSummary struct {
	TotalBuses     int    `json:"totalBuses,omitempty"`
	TotalSchools   int    `json:"totalSchools,omitempty"`
	TotalDrivers   int    `json:"totalDrivers,omitempty"`
	TotalStudents  int    `json:"totalStudents,omitempty"`
	BusNumber      string `json:"busNumber,omitempty"`
	RouteName      string `json:"routeName,omitempty"`
	AssignedCount  int    `json:"totalStudentsAssigned,omitempty"`
	CheckedInCount int    `json:"checkedInCount,omitempty"`
}

// FeedbackRequest is the payload for the feedback form.
type FeedbackRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}
