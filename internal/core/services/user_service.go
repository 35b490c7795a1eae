package services

import (
	"context"
	"fmt"
	"log"

	"github.com/intelicop/console/internal/core/domain"
	"github.com/intelicop/console/internal/core/ports"
)

type UserService struct {
	api ports.UserAPI
}

var _ ports.UserService = (*UserService)(nil)

func NewUserService(api ports.UserAPI) *UserService {
	return &UserService{api: api}
}

func (s *UserService) List(ctx context.Context) ([]domain.Account, error) {
	return s.api.ListAccounts(ctx)
}

func (s *UserService) Counts(ctx context.Context) (domain.RoleCounts, error) {
	return s.api.CountAccounts(ctx)
}

// UpdateRole parses role through the normalising boundary before sending
// the canonical form.
func (s *UserService) UpdateRole(ctx context.Context, id int64, role string) (domain.Role, error) {
	r, err := domain.ParseRole(role)
	if err != nil {
		return "", domain.ValidationErrors{{Field: "role", Message: err.Error()}}
	}
	if err := s.api.UpdateRole(ctx, id, r); err != nil {
		return "", fmt.Errorf("update role of user %d: %w", id, err)
	}
	log.Printf("users: user %d is now %s", id, r)
	return r, nil
}

func (s *UserService) Delete(ctx context.Context, id int64, confirm ports.Confirmer) error {
	if confirm == nil {
		return domain.ErrNotConfirmed
	}
	ok, err := confirm.Confirm(ctx, fmt.Sprintf("Delete user %d permanently?", id))
	if err != nil {
		return fmt.Errorf("confirm delete: %w", err)
	}
	if !ok {
		return domain.ErrNotConfirmed
	}
	if err := s.api.DeleteAccount(ctx, id); err != nil {
		return fmt.Errorf("delete user %d: %w", id, err)
	}
	return nil
}

// Add validates a and creates the account, returning the new user id.
func (s *UserService) Add(ctx context.Context, a domain.NewAccount) (int64, error) {
	if err := a.Validate(); err != nil {
		return 0, err
	}
	id, err := s.api.AddAccount(ctx, a)
	if err != nil {
		return 0, fmt.Errorf("add user %q: %w", a.LoginID, err)
	}
	log.Printf("users: created %s as %s (id %d)", a.LoginID, a.Role, id)
	return id, nil
}
