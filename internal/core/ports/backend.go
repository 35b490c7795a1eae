package ports

import (
	"context"
	"io"

	"github.com/intelicop/console/internal/core/domain"
)

// LoginResult is the backend's answer to a credential exchange.
type LoginResult struct {
	Success bool   `json:"success"`
	Role    string `json:"role,omitempty"`
	Message string `json:"message,omitempty"`
}

type AuthAPI interface {
	Login(ctx context.Context, username, password string) (LoginResult, error)
}

type VisitorAPI interface {
	ListMeetings(ctx context.Context) ([]domain.Meeting, error)
	ListToday(ctx context.Context) ([]domain.Meeting, error)
	ListUpcoming(ctx context.Context) ([]domain.Meeting, error)
	ListCompleted(ctx context.Context) ([]domain.CompletedVisit, error)
	CreateMeeting(ctx context.Context, m domain.Meeting) (domain.Meeting, error)
	UpdateMeeting(ctx context.Context, id int64, m domain.Meeting) (domain.Meeting, error)
	DeleteMeeting(ctx context.Context, id int64) error
	UpdateStatus(ctx context.Context, id int64, status domain.Status) error
}

type UserAPI interface {
	ListAccounts(ctx context.Context) ([]domain.Account, error)
	CountAccounts(ctx context.Context) (domain.RoleCounts, error)
	UpdateRole(ctx context.Context, id int64, role domain.Role) error
	DeleteAccount(ctx context.Context, id int64) error
	AddAccount(ctx context.Context, a domain.NewAccount) (int64, error)
}

type CriminalAPI interface {
	ListCriminals(ctx context.Context) ([]domain.Criminal, error)
	GetCriminal(ctx context.Context, id int64) (domain.Criminal, error)
	SearchCriminals(ctx context.Context, name string) ([]domain.Criminal, error)
	AddCriminal(ctx context.Context, u domain.CriminalUpload) (domain.Criminal, error)
	UpdateCriminal(ctx context.Context, id int64, u domain.CriminalUpload) (domain.Criminal, error)
	DeleteCriminal(ctx context.Context, id int64) error
}

type HealthAPI interface {
	DatabaseHealth(ctx context.Context) (domain.DatabaseHealth, error)
	DatabaseReport(ctx context.Context, w io.Writer) (int64, error)
}
