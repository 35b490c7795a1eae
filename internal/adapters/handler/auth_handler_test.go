package handler

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/intelicop/console/internal/adapters/middleware"
	"github.com/intelicop/console/internal/adapters/storage"
	"github.com/intelicop/console/internal/core/domain"
	"github.com/intelicop/console/internal/core/ports"
	"github.com/intelicop/console/internal/core/services"
	"github.com/intelicop/console/internal/mocks"
)

func newAuthHandler(api *mocks.MockAuthAPI, input string) (*AuthHandler, *services.Session, *Console) {
	session := services.NewSession(mocks.NewMockKeyValueStore(), storage.NewJWTCodec("handler-test-secret"))
	session.Restore(context.Background())
	c, _, _ := newTestConsole(input)
	return NewAuthHandler(services.NewAuthenticator(api, session), session, c), session, c
}

func TestAuthHandler_LoginSuccess(t *testing.T) {
	api := &mocks.MockAuthAPI{Result: ports.LoginResult{Success: true, Role: "DESK"}}
	h, session, c := newAuthHandler(api, "")

	if err := h.Login(context.Background(), []string{"-u", "k.singh", "-p", "secret"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	id, ok := session.Identity()
	if !ok || id.Role != domain.RoleDesk {
		t.Fatalf("expected DESK identity, got %+v", id)
	}
	out := output(c)
	if !strings.Contains(out, "Logged in as k.singh") || !strings.Contains(out, string(domain.ViewDeskDashboard)) {
		t.Errorf("unexpected output %q", out)
	}
}

func TestAuthHandler_LoginPrompts(t *testing.T) {
	api := &mocks.MockAuthAPI{Result: ports.LoginResult{Success: true, Role: "ADMIN"}}
	h, _, _ := newAuthHandler(api, "a.admin\nhunter2\n")

	if err := h.Login(context.Background(), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(api.LoginCalls) != 1 || api.LoginCalls[0] != "a.admin" {
		t.Errorf("expected prompted username, got %v", api.LoginCalls)
	}
}

func TestAuthHandler_LoginFailed(t *testing.T) {
	tests := []struct {
		name  string
		api   *mocks.MockAuthAPI
		args  []string
		calls int
	}{
		{"rejected", &mocks.MockAuthAPI{Result: ports.LoginResult{Success: false}}, []string{"-u", "x", "-p", "y"}, 1},
		{"unreachable", &mocks.MockAuthAPI{LoginError: domain.ErrUnavailable}, []string{"-u", "x", "-p", "y"}, 1},
		{"unknown role", &mocks.MockAuthAPI{Result: ports.LoginResult{Success: true, Role: "JANITOR"}}, []string{"-u", "x", "-p", "y"}, 1},
		{"blank username", &mocks.MockAuthAPI{}, []string{"-u", " ", "-p", "y"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, session, c := newAuthHandler(tt.api, "")
			err := h.Login(context.Background(), tt.args)
			if !errors.Is(err, ErrLoginFailed) {
				t.Fatalf("expected ErrLoginFailed, got %v", err)
			}
			if _, ok := session.Identity(); ok {
				t.Error("expected no identity")
			}
			if tt.api.CallCount() != tt.calls {
				t.Errorf("expected %d backend calls, got %d", tt.calls, tt.api.CallCount())
			}
			if !strings.Contains(errOutput(c), services.LoginFailedNotice(domain.LanguageEnglish)) {
				t.Errorf("expected login failed notice, got %q", errOutput(c))
			}
		})
	}
}

func TestAuthHandler_LogoutAndWhoAmI(t *testing.T) {
	api := &mocks.MockAuthAPI{Result: ports.LoginResult{Success: true, Role: "PATROL"}}
	h, session, c := newAuthHandler(api, "")
	ctx := context.Background()

	if err := h.Login(ctx, []string{"-u", "p.officer", "-p", "pw"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	whoami := middleware.NewAuthMiddleware(session).RequireSession(h.WhoAmI)
	if err := whoami(ctx, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(output(c), "p.officer") {
		t.Errorf("expected username in output, got %q", output(c))
	}

	if err := h.Logout(ctx, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := whoami(ctx, nil); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Errorf("expected ErrUnauthenticated after logout, got %v", err)
	}
}
