package handler

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/intelicop/console/internal/core/domain"
	"github.com/intelicop/console/internal/core/ports"
)

type UserHandler struct {
	userService ports.UserService
	console     *Console
}

func NewUserHandler(users ports.UserService, console *Console) *UserHandler {
	return &UserHandler{userService: users, console: console}
}

func (h *UserHandler) List(ctx context.Context, _ []string) error {
	accounts, err := h.userService.List(ctx)
	if err != nil {
		return err
	}
	rows := make([][]string, 0, len(accounts))
	for _, a := range accounts {
		role := a.Role
		if r, err := domain.ParseRole(a.Role); err == nil {
			role = h.console.Styled(r.Badge(), string(r))
		}
		rows = append(rows, []string{strconv.FormatInt(a.ID, 10), a.Username, role})
	}
	return h.console.Table([]string{"ID", "USERNAME", "ROLE"}, rows)
}

func (h *UserHandler) Counts(ctx context.Context, _ []string) error {
	counts, err := h.userService.Counts(ctx)
	if err != nil {
		return err
	}
	roles := make([]string, 0, len(counts.ByRole))
	for r := range counts.ByRole {
		roles = append(roles, r)
	}
	sort.Strings(roles)

	rows := make([][]string, 0, len(roles)+1)
	for _, r := range roles {
		rows = append(rows, []string{r, strconv.FormatInt(counts.ByRole[r], 10)})
	}
	rows = append(rows, []string{"TOTAL", strconv.FormatInt(counts.Total, 10)})
	return h.console.Table([]string{"ROLE", "USERS"}, rows)
}

// SetRole takes an id and a role name in any case.
func (h *UserHandler) SetRole(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("users set-role: want <id> <role>, got %d arguments", len(args))
	}
	id, err := idArg("users set-role", args[:1])
	if err != nil {
		return err
	}
	role, err := h.userService.UpdateRole(ctx, id, args[1])
	if err != nil {
		return err
	}
	h.console.Printf("User %d is now %s\n", id, h.console.Styled(role.Badge(), string(role)))
	return nil
}

func (h *UserHandler) Delete(ctx context.Context, args []string) error {
	fs := h.console.flagSet("users delete")
	yes := fs.BoolP("yes", "y", false, "do not ask for confirmation")
	if err := fs.Parse(args); err != nil {
		return err
	}
	id, err := idArg("users delete", fs.Args())
	if err != nil {
		return err
	}
	var confirm ports.Confirmer = h.console
	if *yes {
		confirm = AutoConfirm{}
	}
	if err := h.userService.Delete(ctx, id, confirm); err != nil {
		return err
	}
	h.console.Printf("User %d deleted\n", id)
	return nil
}

func (h *UserHandler) Add(ctx context.Context, args []string) error {
	fs := h.console.flagSet("users add")
	loginID := fs.String("login-id", "", "login ID")
	policeID := fs.String("police-id", "", "police ID")
	password := fs.String("password", "", "password, at least 6 characters")
	confirm := fs.String("confirm-password", "", "password again")
	roleName := fs.String("role", "", "ADMIN, PATROL, DESK, FIELD or INVESTIGATING")
	photo := fs.String("photo", "", "path to the profile photo")
	if err := fs.Parse(args); err != nil {
		return err
	}

	a := domain.NewAccount{
		LoginID:  *loginID,
		PoliceID: *policeID,
		Password: *password,
		Confirm:  *confirm,
	}
	if r, err := domain.ParseRole(*roleName); err == nil {
		a.Role = r
	}
	if *photo != "" {
		data, err := os.ReadFile(*photo)
		if err != nil {
			return fmt.Errorf("users add: read photo: %w", err)
		}
		a.Photo = data
		a.PhotoName = filepath.Base(*photo)
	}

	id, err := h.userService.Add(ctx, a)
	if err != nil {
		return err
	}
	h.console.Printf("Created user %s (id %d) as %s\n", a.LoginID, id, h.console.Styled(a.Role.Badge(), string(a.Role)))
	return nil
}
