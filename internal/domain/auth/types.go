package auth

// Package auth contains domain-level types for authentication and sessions.
// It is pure and free of framework/adapter concerns.

import (
	"errors"
	"strings"
	"time"
)

// Role represents an application's authorization role.
// Keep string form for easy persistence and cookies.
// Valid values are defined as constants below.
type Role string

const (
	RoleAgency  Role = "agency"
	RoleSchool  Role = "school"
	RoleDriver  Role = "driver"
	RoleHelper  Role = "helper"
	RoleStudent Role = "student"
)

// ErrUnknownRole is returned by ParseRole when the input does not map to a
// known role. Callers treat this as a corrupted session and redirect to
// login rather than rendering an error page.
var ErrUnknownRole = errors.New("unknown role")

// ParseRole normalizes a raw role string into a canonical Role.
// The backend sometimes prefixes roles with "role_" (Spring ROLE_ authorities)
// and mixes case; both are stripped here so no other component needs to know
// about the inconsistency. "bus_helper" is an accepted alias for helper.
func ParseRole(raw string) (Role, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.TrimPrefix(s, "role_")
	switch s {
	case "agency":
		return RoleAgency, nil
	case "school":
		return RoleSchool, nil
	case "driver":
		return RoleDriver, nil
	case "helper", "bus_helper":
		return RoleHelper, nil
	case "student":
		return RoleStudent, nil
	default:
		return "", ErrUnknownRole
	}
}

// DashboardPath returns the fixed dashboard path for a role. The route guard
// redirects here when a session's role is not in a page's allow-list.
func DashboardPath(r Role) (string, bool) {
	switch r {
	case RoleAgency:
		return "/dashboard/agency", true
	case RoleSchool:
		return "/dashboard/school", true
	case RoleDriver:
		return "/dashboard/driver", true
	case RoleHelper:
		return "/dashboard/bus-helper", true
	case RoleStudent:
		return "/dashboard/student", true
	default:
		return "", false
	}
}

// Session is the server-side record we persist for an authenticated user.
// ID is an opaque session identifier; Token is the bearer token issued by the
// backend and attached to every outgoing API request. A session with a
// present token is assumed valid until the backend says otherwise.
type Session struct {
	ID          string    `json:"id"`
	Token       string    `json:"token"`
	UserID      string    `json:"user_id"`
	DisplayName string    `json:"display_name"`
	Email       string    `json:"email"`
	Role        Role      `json:"role"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// Authenticated reports whether the session carries a usable token and role.
// Blank-after-trim values count as absent.
func (s Session) Authenticated() bool {
	return strings.TrimSpace(s.Token) != "" && strings.TrimSpace(string(s.Role)) != ""
}
