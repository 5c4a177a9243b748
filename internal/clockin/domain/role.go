package domain

import "strings"

// Role is a staff member's authorization level. A profile without an
// explicit role row is RoleStaff.
type Role string

const (
	RoleStaff      Role = "staff"
	RoleSupervisor Role = "supervisor"
	RoleAdmin      Role = "admin"
)

// ParseRole maps a stored or requested role name, reporting false for
// anything unknown.
func ParseRole(s string) (Role, bool) {
	switch r := Role(strings.ToLower(strings.TrimSpace(s))); r {
	case RoleStaff, RoleSupervisor, RoleAdmin:
		return r, true
	}
	return "", false
}

func (r Role) IsAdmin() bool { return r == RoleAdmin }

// HomeRoute is where a client lands after signing in.
func (r Role) HomeRoute() string {
	if r.IsAdmin() {
		return "/admin"
	}
	return "/dashboard"
}
