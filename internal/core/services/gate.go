package services

import "github.com/intelicop/console/internal/core/domain"

// Authorize decides whether identity may enter a route guarded by req.
// It is total: a nil identity goes to login, a role outside req goes to
// the role's own landing page.
func Authorize(identity *domain.Identity, req domain.Requirement) domain.Decision {
	if identity == nil {
		return domain.Decision{Outcome: domain.RedirectToLogin, Redirect: domain.RouteLogin}
	}
	if req.Admits(identity.Role) {
		return domain.Decision{Outcome: domain.Allow}
	}
	return domain.Decision{Outcome: domain.RedirectToDefault, Redirect: domain.RouteDashboard}
}

// DashboardFor picks the dashboard for identity's role. Anything that is
// not one of the five roles is sent back to login.
func DashboardFor(identity *domain.Identity) (domain.View, domain.Decision) {
	toLogin := domain.Decision{Outcome: domain.RedirectToLogin, Redirect: domain.RouteLogin}
	if identity == nil {
		return domain.ViewLogin, toLogin
	}
	role, err := domain.ParseRole(string(identity.Role))
	if err != nil {
		return domain.ViewLogin, toLogin
	}
	switch role {
	case domain.RoleAdmin:
		return domain.ViewAdminDashboard, domain.Decision{Outcome: domain.Allow}
	case domain.RolePatrol:
		return domain.ViewPatrolDashboard, domain.Decision{Outcome: domain.Allow}
	case domain.RoleDesk:
		return domain.ViewDeskDashboard, domain.Decision{Outcome: domain.Allow}
	case domain.RoleField:
		return domain.ViewFieldDashboard, domain.Decision{Outcome: domain.Allow}
	case domain.RoleInvestigating:
		return domain.ViewInvestigatingDashboard, domain.Decision{Outcome: domain.Allow}
	}
	return domain.ViewLogin, toLogin
}
