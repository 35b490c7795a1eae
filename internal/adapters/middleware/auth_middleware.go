package middleware

import (
	"context"
	"fmt"
	"log"

	"github.com/intelicop/console/internal/core/domain"
	"github.com/intelicop/console/internal/core/services"
)

// HandlerFunc runs one console command with its remaining arguments.
type HandlerFunc func(ctx context.Context, args []string) error

// SessionSource is the read side of services.Session.
type SessionSource interface {
	Wait(ctx context.Context) error
	Identity() (domain.Identity, bool)
}

type contextKey string

const IdentityKey contextKey = "identity"

// RedirectError is returned instead of running a guarded command.
type RedirectError struct {
	Decision domain.Decision
}

func (e *RedirectError) Error() string {
	return fmt.Sprintf("%s: redirect to %s", e.Decision.Outcome, e.Decision.Redirect)
}

func (e *RedirectError) Unwrap() error {
	if e.Decision.Outcome == domain.RedirectToLogin {
		return domain.ErrUnauthenticated
	}
	return domain.ErrForbidden
}

type AuthMiddleware struct {
	session SessionSource
}

func NewAuthMiddleware(session SessionSource) *AuthMiddleware {
	return &AuthMiddleware{session: session}
}

// RequireRole runs next only when the restored identity satisfies req.
// Nothing is decided while the session is still loading.
func (m *AuthMiddleware) RequireRole(req domain.Requirement, next HandlerFunc) HandlerFunc {
	return func(ctx context.Context, args []string) error {
		if err := m.session.Wait(ctx); err != nil {
			return err
		}

		var identity *domain.Identity
		if id, ok := m.session.Identity(); ok {
			identity = &id
		}

		decision := services.Authorize(identity, req)
		if decision.Outcome != domain.Allow {
			if identity == nil {
				log.Printf("auth: no session, required one of %v", req.Roles())
			} else {
				log.Printf("auth: role mismatch: required one of %v, got %s", req.Roles(), identity.Role)
			}
			return &RedirectError{Decision: decision}
		}

		return next(context.WithValue(ctx, IdentityKey, *identity), args)
	}
}

// RequireRoute guards next with the requirement registered for route.
// Unguarded routes only need a session.
func (m *AuthMiddleware) RequireRoute(route domain.Route, next HandlerFunc) HandlerFunc {
	req, ok := services.Requirement(route)
	if !ok {
		return m.RequireSession(next)
	}
	return m.RequireRole(req, next)
}

// RequireSession admits any authenticated identity.
func (m *AuthMiddleware) RequireSession(next HandlerFunc) HandlerFunc {
	return m.RequireRole(domain.RequireAnyRole(domain.Roles...), next)
}

// IdentityFrom returns the identity RequireRole stored in ctx.
func IdentityFrom(ctx context.Context) (domain.Identity, bool) {
	id, ok := ctx.Value(IdentityKey).(domain.Identity)
	return id, ok
}
