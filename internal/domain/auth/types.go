package auth

// Package auth contains domain-level types for the browser session.
// It is pure and free of framework/adapter concerns.

import "strings"

// Role represents the marketplace role bound to a session.
// Keep string form for easy persistence in the local key-value store.
type Role string

const (
	RoleJobseeker Role = "jobseeker"
	RoleEmployer  Role = "employer"
)

// IsValid reports whether r is one of the known roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleJobseeker, RoleEmployer:
		return true
	default:
		return false
	}
}

// ParseRole parses a persisted role value. Unknown values report false.
func ParseRole(raw string) (Role, bool) {
	role := Role(strings.ToLower(strings.TrimSpace(raw)))
	return role, role.IsValid()
}

// Session is the identity currently held by a browser context.
// A zero Session is the anonymous session.
type Session struct {
	Token string `json:"token,omitempty"`
	Role  Role   `json:"role,omitempty"`
	// Incomplete marks an anonymous session read from a store that held a
	// token or role without its valid counterpart.
	Incomplete bool `json:"-"`
}

// HasToken reports whether the session carries an identity token.
func (s Session) HasToken() bool { return s.Token != "" }

// IsAnonymous returns true when no token is present.
func (s Session) IsAnonymous() bool { return !s.HasToken() }

// IsEmployer returns true for authenticated employer sessions.
func (s Session) IsEmployer() bool { return s.HasToken() && s.Role == RoleEmployer }
