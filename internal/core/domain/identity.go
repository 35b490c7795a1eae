package domain

import "strings"

// Identity is the authenticated user held for the duration of a session.
type Identity struct {
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

// NewIdentity normalises the backend role string into a Role.
func NewIdentity(username, role string) (Identity, error) {
	r, err := ParseRole(role)
	if err != nil {
		return Identity{}, err
	}
	return Identity{Username: strings.TrimSpace(username), Role: r}, nil
}

// Requirement is the role (or set of roles) a route declares.
type Requirement struct {
	roles []Role
}

func RequireRole(r Role) Requirement {
	return Requirement{roles: []Role{r}}
}

func RequireAnyRole(roles ...Role) Requirement {
	rs := make([]Role, len(roles))
	copy(rs, roles)
	return Requirement{roles: rs}
}

// ParseRequirement builds a requirement from free-text role names.
func ParseRequirement(names ...string) (Requirement, error) {
	roles := make([]Role, 0, len(names))
	for _, n := range names {
		r, err := ParseRole(n)
		if err != nil {
			return Requirement{}, err
		}
		roles = append(roles, r)
	}
	return Requirement{roles: roles}, nil
}

func (q Requirement) Roles() []Role {
	out := make([]Role, len(q.roles))
	copy(out, q.roles)
	return out
}

// Admits reports whether role satisfies the requirement. Both sides went
// through ParseRole, so the comparison is case-insensitive by construction;
// EqualFold keeps it that way for hand-built values.
func (q Requirement) Admits(role Role) bool {
	for _, r := range q.roles {
		if strings.EqualFold(string(r), string(role)) {
			return true
		}
	}
	return false
}

type Outcome int

const (
	Allow Outcome = iota
	RedirectToLogin
	RedirectToDefault
	NotFound
)

func (o Outcome) String() string {
	switch o {
	case Allow:
		return "ALLOW"
	case RedirectToLogin:
		return "REDIRECT_TO_LOGIN"
	case RedirectToDefault:
		return "REDIRECT_TO_DEFAULT"
	case NotFound:
		return "NOT_FOUND"
	}
	return "UNKNOWN"
}

type Route string

const (
	RouteRoot          Route = "/"
	RouteLogin         Route = "/login"
	RouteDashboard     Route = "/dashboard"
	RouteAdmin         Route = "/admin"
	RoutePatrol        Route = "/patrol"
	RouteDesk          Route = "/desk"
	RouteField         Route = "/field"
	RouteInvestigating Route = "/investigating"
	RouteAddUser       Route = "/add-user"
	RouteUsers         Route = "/users"
	RouteVisitors      Route = "/visitors"
	RouteHealth        Route = "/health"
	RouteCriminals     Route = "/criminals"
)

// Decision is the gate's answer for one navigation.
type Decision struct {
	Outcome  Outcome
	Redirect Route
}

type View string

const (
	ViewNone                   View = ""
	ViewLogin                  View = "login"
	ViewAdminDashboard         View = "admin-dashboard"
	ViewPatrolDashboard        View = "patrol-dashboard"
	ViewDeskDashboard          View = "desk-dashboard"
	ViewFieldDashboard         View = "field-dashboard"
	ViewInvestigatingDashboard View = "investigating-dashboard"
	ViewAddUser                View = "add-user"
	ViewUsers                  View = "users"
	ViewVisitors               View = "visitors"
	ViewHealth                 View = "health"
	ViewCriminals              View = "criminals"
	ViewNotFound               View = "not-found"
)
