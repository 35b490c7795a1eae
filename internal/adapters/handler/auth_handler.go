package handler

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/intelicop/console/internal/adapters/middleware"
	"github.com/intelicop/console/internal/core/domain"
	"github.com/intelicop/console/internal/core/ports"
	"github.com/intelicop/console/internal/core/services"
)

// ErrLoginFailed is returned by the login command after the notice has
// been shown.
var ErrLoginFailed = errors.New("login failed")

type AuthHandler struct {
	authService ports.AuthService
	session     middleware.SessionSource
	console     *Console
}

func NewAuthHandler(auth ports.AuthService, session middleware.SessionSource, console *Console) *AuthHandler {
	return &AuthHandler{authService: auth, session: session, console: console}
}

func (h *AuthHandler) Login(ctx context.Context, args []string) error {
	fs := h.console.flagSet("login")
	username := fs.StringP("username", "u", "", "login ID")
	password := fs.StringP("password", "p", "", "password (prompted when omitted)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var err error
	if *username == "" {
		if *username, err = h.console.ReadLine("Username: "); err != nil {
			return err
		}
	}
	if *password == "" {
		if *password, err = h.console.ReadLine("Password: "); err != nil {
			return err
		}
	}
	if strings.TrimSpace(*username) == "" || *password == "" {
		fmt.Fprintln(h.console.Err, h.console.Styled(domain.StyleWarning, services.LoginFailedNotice(h.console.Prefs.Language)))
		return ErrLoginFailed
	}

	if !h.authService.Login(ctx, *username, *password) {
		fmt.Fprintln(h.console.Err, h.console.Styled(domain.StyleCritical, services.LoginFailedNotice(h.console.Prefs.Language)))
		return ErrLoginFailed
	}

	id, _ := h.session.Identity()
	view, _ := services.DashboardFor(&id)
	h.console.Printf("Logged in as %s %s\n", id.Username, h.console.Styled(id.Role.Badge(), string(id.Role)))
	h.console.Printf("Opening %s (%s)\n", domain.RouteDashboard, view)
	return nil
}

func (h *AuthHandler) Logout(ctx context.Context, _ []string) error {
	if err := h.authService.Logout(ctx); err != nil {
		return err
	}
	h.console.Printf("Logged out\n")
	return nil
}

// WhoAmI prints the restored identity. It is guarded by RequireSession.
func (h *AuthHandler) WhoAmI(ctx context.Context, _ []string) error {
	id, ok := middleware.IdentityFrom(ctx)
	if !ok {
		return domain.ErrUnauthenticated
	}
	h.console.Printf("%s %s\n", id.Username, h.console.Styled(id.Role.Badge(), string(id.Role)))
	return nil
}
