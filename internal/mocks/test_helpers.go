package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/intelicop/console/internal/core/domain"
)

// TestToday is the fixed "today" used across service tests.
var TestToday = domain.Date{Year: 2024, Month: time.March, Day: 15}

// TestNow is noon on TestToday in UTC.
func TestNow() time.Time {
	return time.Date(TestToday.Year, TestToday.Month, TestToday.Day, 12, 0, 0, 0, time.UTC)
}

// CreateTestMeeting returns a valid SCHEDULED meeting on date at the
// given time.
func CreateTestMeeting(id int64, date domain.Date, at string) domain.Meeting {
	return domain.Meeting{
		ID:             id,
		VisitorName:    "Asha Rao",
		VisitorContact: "9876543210",
		InmateName:     "Vikram Rao",
		Purpose:        "Family visit",
		ScheduledDate:  date,
		ScheduledTime:  at,
		Status:         domain.StatusScheduled,
	}
}

// MockConfirmer answers every prompt with Answer and records the prompts.
type MockConfirmer struct {
	mu      sync.Mutex
	Answer  bool
	Err     error
	Prompts []string
}

func (m *MockConfirmer) Confirm(ctx context.Context, prompt string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Prompts = append(m.Prompts, prompt)
	return m.Answer, m.Err
}
