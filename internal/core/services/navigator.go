package services

import (
	"context"
	"strings"

	"github.com/intelicop/console/internal/core/domain"
)

type routeEntry struct {
	public      bool
	dashboard   bool
	requirement domain.Requirement
	view        domain.View
}

var routeTable = map[domain.Route]routeEntry{
	domain.RouteLogin:         {public: true, view: domain.ViewLogin},
	domain.RouteDashboard:     {dashboard: true},
	domain.RouteAdmin:         {requirement: domain.RequireRole(domain.RoleAdmin), view: domain.ViewAdminDashboard},
	domain.RoutePatrol:        {requirement: domain.RequireRole(domain.RolePatrol), view: domain.ViewPatrolDashboard},
	domain.RouteDesk:          {requirement: domain.RequireRole(domain.RoleDesk), view: domain.ViewDeskDashboard},
	domain.RouteField:         {requirement: domain.RequireRole(domain.RoleField), view: domain.ViewFieldDashboard},
	domain.RouteInvestigating: {requirement: domain.RequireRole(domain.RoleInvestigating), view: domain.ViewInvestigatingDashboard},
	domain.RouteAddUser:       {requirement: domain.RequireRole(domain.RoleAdmin), view: domain.ViewAddUser},
	domain.RouteUsers:         {requirement: domain.RequireRole(domain.RoleAdmin), view: domain.ViewUsers},
	domain.RouteVisitors:      {requirement: domain.RequireAnyRole(domain.RoleDesk, domain.RoleAdmin), view: domain.ViewVisitors},
	domain.RouteHealth:        {requirement: domain.RequireRole(domain.RoleAdmin), view: domain.ViewHealth},
	domain.RouteCriminals:     {requirement: domain.RequireAnyRole(domain.RoleAdmin, domain.RolePatrol, domain.RoleDesk, domain.RoleInvestigating), view: domain.ViewCriminals},
}

// Resolution is where a navigation ends up. For redirects View is the
// view of the redirect target.
type Resolution struct {
	Route    domain.Route
	Decision domain.Decision
	View     domain.View
}

// Resolve applies the route table to identity. It does not look at the
// session, so callers must only use it once loading has finished.
func Resolve(identity *domain.Identity, path string) Resolution {
	route := normalizeRoute(path)
	if route == domain.RouteRoot {
		route = domain.RouteDashboard
	}

	entry, ok := routeTable[route]
	if !ok {
		return Resolution{
			Route:    route,
			Decision: domain.Decision{Outcome: domain.NotFound},
			View:     domain.ViewNotFound,
		}
	}

	if entry.public {
		return Resolution{Route: route, Decision: domain.Decision{Outcome: domain.Allow}, View: entry.view}
	}

	if entry.dashboard {
		view, decision := DashboardFor(identity)
		return Resolution{Route: route, Decision: decision, View: view}
	}

	decision := Authorize(identity, entry.requirement)
	res := Resolution{Route: route, Decision: decision}
	switch decision.Outcome {
	case domain.Allow:
		res.View = entry.view
	case domain.RedirectToDefault:
		res.View, _ = DashboardFor(identity)
	default:
		res.View = domain.ViewLogin
	}
	return res
}

// Accessible lists the guarded routes identity may enter, in route order.
func Accessible(identity *domain.Identity) []domain.Route {
	order := []domain.Route{
		domain.RouteAdmin, domain.RoutePatrol, domain.RouteDesk, domain.RouteField,
		domain.RouteInvestigating, domain.RouteCriminals, domain.RouteVisitors, domain.RouteUsers,
		domain.RouteAddUser, domain.RouteHealth,
	}
	var out []domain.Route
	for _, r := range order {
		if Authorize(identity, routeTable[r].requirement).Outcome == domain.Allow {
			out = append(out, r)
		}
	}
	return out
}

// Requirement returns the requirement declared for route.
func Requirement(route domain.Route) (domain.Requirement, bool) {
	entry, ok := routeTable[route]
	if !ok || entry.public || entry.dashboard {
		return domain.Requirement{}, false
	}
	return entry.requirement, true
}

type Navigator struct {
	session *Session
}

func NewNavigator(session *Session) *Navigator {
	return &Navigator{session: session}
}

// Navigate waits for the session to finish loading, then resolves path.
func (n *Navigator) Navigate(ctx context.Context, path string) (Resolution, error) {
	if err := n.session.Wait(ctx); err != nil {
		return Resolution{}, err
	}
	var identity *domain.Identity
	if id, ok := n.session.Identity(); ok {
		identity = &id
	}
	return Resolve(identity, path), nil
}

func normalizeRoute(path string) domain.Route {
	p := strings.TrimSpace(path)
	if p == "" {
		return domain.RouteRoot
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if len(p) > 1 {
		p = strings.TrimRight(p, "/")
		if p == "" {
			p = "/"
		}
	}
	return domain.Route(strings.ToLower(p))
}
