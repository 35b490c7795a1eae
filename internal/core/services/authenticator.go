package services

import (
	"context"
	"log"
	"sync/atomic"

	"github.com/intelicop/console/internal/core/domain"
	"github.com/intelicop/console/internal/core/ports"
)

type Authenticator struct {
	api     ports.AuthAPI
	session *Session
	loading atomic.Bool
}

var _ ports.AuthService = (*Authenticator)(nil)

func NewAuthenticator(api ports.AuthAPI, session *Session) *Authenticator {
	return &Authenticator{api: api, session: session}
}

// Login exchanges credentials for an identity. Every failure path is
// logged and reported as false; the session changes only on success.
func (a *Authenticator) Login(ctx context.Context, username, password string) bool {
	a.loading.Store(true)
	defer a.loading.Store(false)

	res, err := a.api.Login(ctx, username, password)
	if err != nil {
		log.Printf("auth: login request for %q failed: %v", username, err)
		return false
	}
	if !res.Success {
		log.Printf("auth: login rejected for %q", username)
		return false
	}

	id, err := domain.NewIdentity(username, res.Role)
	if err != nil {
		log.Printf("auth: login for %q returned unusable role: %v", username, err)
		return false
	}

	if err := a.session.SetIdentity(ctx, id); err != nil {
		log.Printf("auth: could not persist session for %q: %v", username, err)
	}
	log.Printf("auth: %s logged in as %s", id.Username, id.Role)
	return true
}

func (a *Authenticator) Logout(ctx context.Context) error {
	return a.session.Clear(ctx)
}

// Loading reports whether a login call is in flight.
func (a *Authenticator) Loading() bool {
	return a.loading.Load()
}
