package handler

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/intelicop/console/internal/adapters/middleware"
	"github.com/intelicop/console/internal/adapters/storage"
	"github.com/intelicop/console/internal/core/domain"
	"github.com/intelicop/console/internal/core/services"
	"github.com/intelicop/console/internal/mocks"
)

func newDashboardHandler(t *testing.T, identity *domain.Identity) (*DashboardHandler, *Console) {
	t.Helper()
	ctx := context.Background()
	session := services.NewSession(mocks.NewMockKeyValueStore(), storage.NewJWTCodec("handler-test-secret"))
	session.Restore(ctx)
	if identity != nil {
		if err := session.SetIdentity(ctx, *identity); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	c, _, _ := newTestConsole("")
	return NewDashboardHandler(services.NewNavigator(session), session, c), c
}

func TestDashboardHandler_RoleDashboard(t *testing.T) {
	h, c := newDashboardHandler(t, &domain.Identity{Username: "a.admin", Role: domain.RoleAdmin})

	if err := h.Dashboard(context.Background(), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := output(c)
	for _, want := range []string{string(domain.ViewAdminDashboard), "Signed in as a.admin", "/users", "/health"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output, got %q", want, out)
		}
	}
}

func TestDashboardHandler_Open(t *testing.T) {
	tests := []struct {
		name     string
		identity *domain.Identity
		path     string
		redirect domain.Route
		expected string
	}{
		{"anonymous to guarded route", nil, "/visitors", domain.RouteLogin, ""},
		{"anonymous dashboard", nil, "/dashboard", domain.RouteLogin, ""},
		{"desk to admin page", &domain.Identity{Username: "d", Role: domain.RoleDesk}, "/users", domain.RouteDashboard, ""},
		{"desk to visitors", &domain.Identity{Username: "d", Role: domain.RoleDesk}, "/visitors", "", string(domain.ViewVisitors)},
		{"unknown route", &domain.Identity{Username: "d", Role: domain.RoleDesk}, "/nowhere", "", "404"},
		{"login is public", nil, "/login", "", string(domain.ViewLogin)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, c := newDashboardHandler(t, tt.identity)
			err := h.Open(context.Background(), []string{tt.path})

			if tt.redirect != "" {
				var redirect *middleware.RedirectError
				if !errors.As(err, &redirect) {
					t.Fatalf("expected RedirectError, got %v", err)
				}
				if redirect.Decision.Redirect != tt.redirect {
					t.Errorf("expected redirect to %s, got %s", tt.redirect, redirect.Decision.Redirect)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !strings.Contains(output(c), tt.expected) {
				t.Errorf("expected %q in output, got %q", tt.expected, output(c))
			}
		})
	}
}

func TestDashboardHandler_OpenNeedsOneRoute(t *testing.T) {
	h, _ := newDashboardHandler(t, nil)
	if err := h.Open(context.Background(), nil); err == nil {
		t.Error("expected error without a route")
	}
}
