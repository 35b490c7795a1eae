package handler

import (
	"context"
	"fmt"

	"github.com/intelicop/console/internal/adapters/middleware"
	"github.com/intelicop/console/internal/core/domain"
	"github.com/intelicop/console/internal/core/services"
)

// Navigator resolves a route against the restored session.
type Navigator interface {
	Navigate(ctx context.Context, path string) (services.Resolution, error)
}

type DashboardHandler struct {
	navigator Navigator
	session   middleware.SessionSource
	console   *Console
}

func NewDashboardHandler(navigator Navigator, session middleware.SessionSource, console *Console) *DashboardHandler {
	return &DashboardHandler{navigator: navigator, session: session, console: console}
}

// Dashboard opens /dashboard, which picks the view for the caller's role.
func (h *DashboardHandler) Dashboard(ctx context.Context, _ []string) error {
	return h.open(ctx, string(domain.RouteDashboard))
}

// Open resolves an arbitrary route the way a browser address bar would.
func (h *DashboardHandler) Open(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("open: want exactly one route, got %d arguments", len(args))
	}
	return h.open(ctx, args[0])
}

func (h *DashboardHandler) open(ctx context.Context, path string) error {
	res, err := h.navigator.Navigate(ctx, path)
	if err != nil {
		return err
	}

	switch res.Decision.Outcome {
	case domain.RedirectToLogin, domain.RedirectToDefault:
		return &middleware.RedirectError{Decision: res.Decision}
	case domain.NotFound:
		h.console.Printf("%s %s\n", h.console.Styled(domain.StyleMuted, "404"), res.Route)
		return nil
	}

	h.console.Heading(string(res.View))
	if res.View == domain.ViewLogin {
		return nil
	}

	id, ok := h.session.Identity()
	if !ok {
		return nil
	}
	rows := [][]string{}
	for _, r := range services.Accessible(&id) {
		rows = append(rows, []string{string(r)})
	}
	h.console.Printf("Signed in as %s %s\n", id.Username, h.console.Styled(id.Role.Badge(), string(id.Role)))
	return h.console.Table([]string{"PAGES"}, rows)
}
