package mocks

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/intelicop/console/internal/core/domain"
	"github.com/intelicop/console/internal/core/ports"
)

// MockAuthAPI answers Login with a fixed result or error.
type MockAuthAPI struct {
	mu sync.Mutex

	Result     ports.LoginResult
	LoginError error
	// Block, when set, is waited on before Login returns.
	Block chan struct{}

	LoginCalls []string
}

var _ ports.AuthAPI = (*MockAuthAPI)(nil)

func (m *MockAuthAPI) Login(ctx context.Context, username, password string) (ports.LoginResult, error) {
	m.mu.Lock()
	m.LoginCalls = append(m.LoginCalls, username)
	block := m.Block
	m.mu.Unlock()

	if block != nil {
		<-block
	}
	if m.LoginError != nil {
		return ports.LoginResult{}, m.LoginError
	}
	return m.Result, nil
}

func (m *MockAuthAPI) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.LoginCalls)
}

// MockVisitorAPI behaves like the meetings backend over an in-memory
// collection.
type MockVisitorAPI struct {
	mu       sync.Mutex
	meetings []domain.Meeting
	nextID   int64

	Today     []domain.Meeting
	Upcoming  []domain.Meeting
	Completed []domain.CompletedVisit

	// Error injection
	ListError   error
	CreateError error
	UpdateError error
	DeleteError error
	StatusError error

	// Call tracking
	ListCalls   int
	CreateCalls int
	UpdateCalls int
	DeleteCalls int
	StatusCalls []StatusCall
}

type StatusCall struct {
	ID     int64
	Status domain.Status
}

var _ ports.VisitorAPI = (*MockVisitorAPI)(nil)

func NewMockVisitorAPI(meetings ...domain.Meeting) *MockVisitorAPI {
	m := &MockVisitorAPI{nextID: 1}
	for _, mt := range meetings {
		if mt.ID >= m.nextID {
			m.nextID = mt.ID + 1
		}
		m.meetings = append(m.meetings, mt)
	}
	return m
}

func (m *MockVisitorAPI) ListMeetings(ctx context.Context) ([]domain.Meeting, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ListCalls++
	if m.ListError != nil {
		return nil, m.ListError
	}
	out := make([]domain.Meeting, len(m.meetings))
	copy(out, m.meetings)
	return out, nil
}

func (m *MockVisitorAPI) ListToday(ctx context.Context) ([]domain.Meeting, error) {
	if m.ListError != nil {
		return nil, m.ListError
	}
	return m.Today, nil
}

func (m *MockVisitorAPI) ListUpcoming(ctx context.Context) ([]domain.Meeting, error) {
	if m.ListError != nil {
		return nil, m.ListError
	}
	return m.Upcoming, nil
}

func (m *MockVisitorAPI) ListCompleted(ctx context.Context) ([]domain.CompletedVisit, error) {
	if m.ListError != nil {
		return nil, m.ListError
	}
	return m.Completed, nil
}

func (m *MockVisitorAPI) CreateMeeting(ctx context.Context, mt domain.Meeting) (domain.Meeting, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CreateCalls++
	if m.CreateError != nil {
		return domain.Meeting{}, m.CreateError
	}
	mt.ID = m.nextID
	m.nextID++
	m.meetings = append(m.meetings, mt)
	return mt, nil
}

func (m *MockVisitorAPI) UpdateMeeting(ctx context.Context, id int64, mt domain.Meeting) (domain.Meeting, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpdateCalls++
	if m.UpdateError != nil {
		return domain.Meeting{}, m.UpdateError
	}
	i := m.index(id)
	if i < 0 {
		return domain.Meeting{}, fmt.Errorf("meeting %d: %w", id, domain.ErrRejected)
	}
	mt.ID = id
	m.meetings[i] = mt
	return mt, nil
}

func (m *MockVisitorAPI) DeleteMeeting(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DeleteCalls++
	if m.DeleteError != nil {
		return m.DeleteError
	}
	i := m.index(id)
	if i < 0 {
		return fmt.Errorf("meeting %d: %w", id, domain.ErrRejected)
	}
	m.meetings = append(m.meetings[:i], m.meetings[i+1:]...)
	return nil
}

func (m *MockVisitorAPI) UpdateStatus(ctx context.Context, id int64, status domain.Status) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StatusCalls = append(m.StatusCalls, StatusCall{ID: id, Status: status})
	if m.StatusError != nil {
		return m.StatusError
	}
	i := m.index(id)
	if i < 0 {
		return fmt.Errorf("meeting %d: %w", id, domain.ErrRejected)
	}
	m.meetings[i].Status = status
	return nil
}

// Meetings returns the backend's current collection.
func (m *MockVisitorAPI) Meetings() []domain.Meeting {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Meeting, len(m.meetings))
	copy(out, m.meetings)
	return out
}

func (m *MockVisitorAPI) index(id int64) int {
	for i, mt := range m.meetings {
		if mt.ID == id {
			return i
		}
	}
	return -1
}

// MockUserAPI records user administration calls.
type MockUserAPI struct {
	mu sync.Mutex

	Accounts []domain.Account
	Counts   domain.RoleCounts
	NewID    int64

	Error error

	RoleUpdates []RoleUpdate
	Deleted     []int64
	Added       []domain.NewAccount
}

type RoleUpdate struct {
	ID   int64
	Role domain.Role
}

var _ ports.UserAPI = (*MockUserAPI)(nil)

func (m *MockUserAPI) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	if m.Error != nil {
		return nil, m.Error
	}
	return m.Accounts, nil
}

func (m *MockUserAPI) CountAccounts(ctx context.Context) (domain.RoleCounts, error) {
	if m.Error != nil {
		return domain.RoleCounts{}, m.Error
	}
	return m.Counts, nil
}

func (m *MockUserAPI) UpdateRole(ctx context.Context, id int64, role domain.Role) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Error != nil {
		return m.Error
	}
	m.RoleUpdates = append(m.RoleUpdates, RoleUpdate{ID: id, Role: role})
	return nil
}

func (m *MockUserAPI) DeleteAccount(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Error != nil {
		return m.Error
	}
	m.Deleted = append(m.Deleted, id)
	return nil
}

func (m *MockUserAPI) AddAccount(ctx context.Context, a domain.NewAccount) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Error != nil {
		return 0, m.Error
	}
	m.Added = append(m.Added, a)
	return m.NewID, nil
}

// MockHealthAPI returns a fixed health answer and report.
type MockHealthAPI struct {
	Health domain.DatabaseHealth
	Report []byte
	Error  error
}

var _ ports.HealthAPI = (*MockHealthAPI)(nil)

func (m *MockHealthAPI) DatabaseHealth(ctx context.Context) (domain.DatabaseHealth, error) {
	if m.Error != nil {
		return domain.DatabaseHealth{}, m.Error
	}
	return m.Health, nil
}

func (m *MockHealthAPI) DatabaseReport(ctx context.Context, w io.Writer) (int64, error) {
	if m.Error != nil {
		return 0, m.Error
	}
	n, err := w.Write(m.Report)
	return int64(n), err
}

// MockCriminalAPI keeps criminal records in memory.
type MockCriminalAPI struct {
	mu      sync.Mutex
	records []domain.Criminal
	nextID  int64

	Error error

	Searches []string
	Uploads  []domain.CriminalUpload
	Deleted  []int64
}

var _ ports.CriminalAPI = (*MockCriminalAPI)(nil)

func NewMockCriminalAPI(records ...domain.Criminal) *MockCriminalAPI {
	m := &MockCriminalAPI{nextID: 1}
	for _, c := range records {
		if c.ID >= m.nextID {
			m.nextID = c.ID + 1
		}
		m.records = append(m.records, c)
	}
	return m
}

func (m *MockCriminalAPI) ListCriminals(ctx context.Context) ([]domain.Criminal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Error != nil {
		return nil, m.Error
	}
	out := make([]domain.Criminal, len(m.records))
	copy(out, m.records)
	return out, nil
}

func (m *MockCriminalAPI) GetCriminal(ctx context.Context, id int64) (domain.Criminal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Error != nil {
		return domain.Criminal{}, m.Error
	}
	i := m.index(id)
	if i < 0 {
		return domain.Criminal{}, fmt.Errorf("criminal %d: %w", id, domain.ErrNotFound)
	}
	return m.records[i], nil
}

func (m *MockCriminalAPI) SearchCriminals(ctx context.Context, name string) ([]domain.Criminal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Searches = append(m.Searches, name)
	if m.Error != nil {
		return nil, m.Error
	}
	var out []domain.Criminal
	for _, c := range m.records {
		if strings.Contains(strings.ToLower(c.Name), strings.ToLower(name)) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *MockCriminalAPI) AddCriminal(ctx context.Context, u domain.CriminalUpload) (domain.Criminal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Uploads = append(m.Uploads, u)
	if m.Error != nil {
		return domain.Criminal{}, m.Error
	}
	c := u.Criminal
	c.ID = m.nextID
	m.nextID++
	m.records = append(m.records, c)
	return c, nil
}

func (m *MockCriminalAPI) UpdateCriminal(ctx context.Context, id int64, u domain.CriminalUpload) (domain.Criminal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Uploads = append(m.Uploads, u)
	if m.Error != nil {
		return domain.Criminal{}, m.Error
	}
	i := m.index(id)
	if i < 0 {
		return domain.Criminal{}, fmt.Errorf("criminal %d: %w", id, domain.ErrNotFound)
	}
	c := u.Criminal
	c.ID = id
	m.records[i] = c
	return c, nil
}

func (m *MockCriminalAPI) DeleteCriminal(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Error != nil {
		return m.Error
	}
	i := m.index(id)
	if i < 0 {
		return fmt.Errorf("criminal %d: %w", id, domain.ErrRejected)
	}
	m.records = append(m.records[:i], m.records[i+1:]...)
	m.Deleted = append(m.Deleted, id)
	return nil
}

// Records returns the backend's current collection.
func (m *MockCriminalAPI) Records() []domain.Criminal {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Criminal, len(m.records))
	copy(out, m.records)
	return out
}

func (m *MockCriminalAPI) index(id int64) int {
	for i, c := range m.records {
		if c.ID == id {
			return i
		}
	}
	return -1
}
