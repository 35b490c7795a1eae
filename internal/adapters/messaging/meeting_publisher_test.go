package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sony/gobreaker"

	"github.com/intelicop/console/internal/core/domain"
)

type mockChannel struct {
	mu        sync.Mutex
	published []amqp.Publishing
	exchanges []string
	keys      []string
	err       error
	closed    bool
}

func (m *mockChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.exchanges = append(m.exchanges, exchange)
	m.keys = append(m.keys, key)
	m.published = append(m.published, msg)
	return nil
}

func (m *mockChannel) Close() error {
	m.closed = true
	return nil
}

func testEvent() domain.MeetingEvent {
	return domain.MeetingEvent{
		ID:         "evt-1",
		Type:       domain.EventMeetingStatus,
		MeetingID:  7,
		Status:     domain.StatusCompleted,
		Actor:      "desk.officer",
		OccurredAt: time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC),
	}
}

func TestPublishMeetingEvent(t *testing.T) {
	ch := &mockChannel{}
	b := NewChannelBroker(ch, "intelicop.meetings")

	if err := b.PublishMeetingEvent(context.Background(), testEvent()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ch.published) != 1 {
		t.Fatalf("expected one message, got %d", len(ch.published))
	}
	if ch.exchanges[0] != "intelicop.meetings" || ch.keys[0] != domain.EventMeetingStatus {
		t.Errorf("expected %s on intelicop.meetings, got %s on %s", domain.EventMeetingStatus, ch.keys[0], ch.exchanges[0])
	}

	msg := ch.published[0]
	if msg.ContentType != "application/json" || msg.DeliveryMode != amqp.Persistent {
		t.Errorf("unexpected message properties %+v", msg)
	}
	if msg.MessageId != "evt-1" || msg.Type != domain.EventMeetingStatus {
		t.Errorf("expected id and type on the message, got %q %q", msg.MessageId, msg.Type)
	}
	if msg.Headers["actor"] != "desk.officer" {
		t.Errorf("expected actor header, got %v", msg.Headers)
	}

	var got domain.MeetingEvent
	if err := json.Unmarshal(msg.Body, &got); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.MeetingID != 7 || got.Status != domain.StatusCompleted {
		t.Errorf("unexpected body %+v", got)
	}
}

func TestPublishMeetingEvent_ExpiredContext(t *testing.T) {
	ch := &mockChannel{}
	b := NewChannelBroker(ch, "q")

	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()
	if err := b.PublishMeetingEvent(ctx, testEvent()); err == nil {
		t.Fatal("expected error for expired context")
	}
	if len(ch.published) != 0 {
		t.Error("expected nothing published")
	}
}

func TestPublishMeetingEvent_BreakerOpens(t *testing.T) {
	ch := &mockChannel{err: errors.New("channel closed")}
	b := NewChannelBroker(ch, "q")

	for i := 0; i < 3; i++ {
		_ = b.PublishMeetingEvent(context.Background(), testEvent())
	}
	ch.err = nil
	err := b.PublishMeetingEvent(context.Background(), testEvent())
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Errorf("expected open circuit to refuse the publish, got %v", err)
	}
	if len(ch.published) != 0 {
		t.Error("expected nothing published while the circuit is open")
	}
}

func TestClose(t *testing.T) {
	ch := &mockChannel{}
	b := NewChannelBroker(ch, "q")
	if err := b.Close(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ch.closed {
		t.Error("expected channel closed")
	}
}
