package mocks

import (
	"context"
	"sync"

	"github.com/intelicop/console/internal/core/domain"
	"github.com/intelicop/console/internal/core/ports"
)

// MockMeetingEventPublisher records published meeting events.
type MockMeetingEventPublisher struct {
	mu sync.RWMutex

	PublishedEvents  []domain.MeetingEvent
	PublishError     error
	PublishCallCount int

	// FailOn refuses only the events whose ID it holds.
	FailOn map[string]error
}

var _ ports.MeetingEventPublisher = (*MockMeetingEventPublisher)(nil)

func NewMockMeetingEventPublisher() *MockMeetingEventPublisher {
	return &MockMeetingEventPublisher{PublishedEvents: make([]domain.MeetingEvent, 0)}
}

func (m *MockMeetingEventPublisher) PublishMeetingEvent(ctx context.Context, evt domain.MeetingEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.PublishCallCount++
	if m.PublishError != nil {
		return m.PublishError
	}
	if err := m.FailOn[evt.ID]; err != nil {
		return err
	}
	m.PublishedEvents = append(m.PublishedEvents, evt)
	return nil
}

// GetPublishedEvents returns a copy of the recorded events.
func (m *MockMeetingEventPublisher) GetPublishedEvents() []domain.MeetingEvent {
	m.mu.RLock()
	defer m.mu.RUnlock()

	events := make([]domain.MeetingEvent, len(m.PublishedEvents))
	copy(events, m.PublishedEvents)
	return events
}

func (m *MockMeetingEventPublisher) GetPublishCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.PublishCallCount
}
