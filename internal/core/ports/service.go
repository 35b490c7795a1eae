package ports

import (
	"context"
	"io"

	"github.com/intelicop/console/internal/core/domain"
)

type AuthService interface {
	Login(ctx context.Context, username, password string) bool
	Logout(ctx context.Context) error
}

type VisitorService interface {
	Refresh(ctx context.Context) (domain.Board, error)
	Board() domain.Board
	Schedule(ctx context.Context, m domain.Meeting) (domain.Meeting, error)
	Complete(ctx context.Context, id int64) error
	Cancel(ctx context.Context, id int64) error
	Reschedule(ctx context.Context, id int64, date domain.Date, at, remarks string) (domain.Meeting, error)
	Delete(ctx context.Context, id int64, confirm Confirmer) error
	Remote(ctx context.Context, bucket domain.Bucket) ([]domain.Meeting, error)
	History(ctx context.Context) ([]domain.CompletedVisit, error)
}

type UserService interface {
	List(ctx context.Context) ([]domain.Account, error)
	Counts(ctx context.Context) (domain.RoleCounts, error)
	UpdateRole(ctx context.Context, id int64, role string) (domain.Role, error)
	Delete(ctx context.Context, id int64, confirm Confirmer) error
	Add(ctx context.Context, a domain.NewAccount) (int64, error)
}

type CriminalService interface {
	List(ctx context.Context) ([]domain.Criminal, error)
	Get(ctx context.Context, id int64) (domain.Criminal, error)
	Search(ctx context.Context, name string) ([]domain.Criminal, error)
	Add(ctx context.Context, u domain.CriminalUpload) (domain.Criminal, error)
	Update(ctx context.Context, id int64, u domain.CriminalUpload) (domain.Criminal, error)
	Delete(ctx context.Context, id int64, confirm Confirmer) error
}

type HealthService interface {
	Database(ctx context.Context) (domain.DatabaseHealth, error)
	Report(ctx context.Context, w io.Writer) (int64, error)
}

type PreferenceService interface {
	Load(ctx context.Context) domain.Preferences
	SetTheme(ctx context.Context, t domain.Theme) error
	ToggleTheme(ctx context.Context) (domain.Theme, error)
	SetLanguage(ctx context.Context, l domain.Language) error
}
