package outbox

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/intelicop/console/internal/core/domain"
	"github.com/intelicop/console/internal/core/ports"
)

const (
	// PendingKey holds the JSON array of events not yet delivered.
	PendingKey = "intelicop_outbox"

	maxEventsPerBatch = 100
)

var errNoBroker = errors.New("no broker connected")

// Relay publishes meeting events and parks the ones the broker refuses in
// the key-value store. Flush delivers parked events in order on the next
// run. A Relay without a publisher parks everything.
type Relay struct {
	store     ports.KeyValueStore
	publisher ports.MeetingEventPublisher
	mu        sync.Mutex
}

var _ ports.MeetingEventPublisher = (*Relay)(nil)

func NewRelay(store ports.KeyValueStore, publisher ports.MeetingEventPublisher) *Relay {
	return &Relay{store: store, publisher: publisher}
}

// PublishMeetingEvent publishes evt unless older events are still parked,
// in which case evt queues behind them. An event that cannot be published
// is parked and the call succeeds; only a failure to park is returned.
func (r *Relay) PublishMeetingEvent(ctx context.Context, evt domain.MeetingEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	pending, lerr := r.load(ctx)
	if lerr == nil && len(pending) > 0 {
		log.Printf("outbox relay: queueing event %s behind %d parked", evt.ID, len(pending))
		return r.save(ctx, append(pending, evt))
	}

	err := errNoBroker
	if r.publisher != nil {
		err = r.publisher.PublishMeetingEvent(ctx, evt)
	}
	if err == nil {
		return nil
	}
	if lerr != nil {
		return fmt.Errorf("publish event %s: %v: %w", evt.ID, err, lerr)
	}
	log.Printf("outbox relay: parking event %s: %v", evt.ID, err)
	return r.save(ctx, []domain.MeetingEvent{evt})
}

// Flush publishes up to one batch of parked events, oldest first. It stops
// at the first failure so order is kept, and returns how many were sent.
func (r *Relay) Flush(ctx context.Context) (int, error) {
	if r.publisher == nil {
		return 0, nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	pending, err := r.load(ctx)
	if err != nil || len(pending) == 0 {
		return 0, err
	}

	sent := 0
	for _, evt := range pending {
		if sent == maxEventsPerBatch {
			break
		}
		if err := r.publisher.PublishMeetingEvent(ctx, evt); err != nil {
			log.Printf("outbox relay: failed to publish event %s: %v", evt.ID, err)
			break
		}
		log.Printf("outbox relay: processed event %s", evt.ID)
		sent++
	}

	if sent == 0 {
		return 0, nil
	}
	return sent, r.save(ctx, pending[sent:])
}

// Pending returns the parked events.
func (r *Relay) Pending(ctx context.Context) ([]domain.MeetingEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load(ctx)
}

func (r *Relay) load(ctx context.Context) ([]domain.MeetingEvent, error) {
	raw, found, err := r.store.Get(ctx, PendingKey)
	if err != nil {
		return nil, fmt.Errorf("outbox: read pending events: %w", err)
	}
	if !found || raw == "" {
		return nil, nil
	}
	var events []domain.MeetingEvent
	if err := json.Unmarshal([]byte(raw), &events); err != nil {
		// Unreadable data would block the outbox forever.
		log.Printf("outbox relay: dropping invalid pending payload: %v", err)
		return nil, nil
	}
	return events, nil
}

func (r *Relay) save(ctx context.Context, events []domain.MeetingEvent) error {
	if len(events) == 0 {
		return r.store.Delete(ctx, PendingKey)
	}
	data, err := json.Marshal(events)
	if err != nil {
		return fmt.Errorf("outbox: encode pending events: %w", err)
	}
	if err := r.store.Set(ctx, PendingKey, string(data)); err != nil {
		return fmt.Errorf("outbox: write pending events: %w", err)
	}
	return nil
}
