package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"

	"github.com/intelicop/console/internal/core/domain"
	"github.com/intelicop/console/internal/core/ports"
)

type VisitorOptions struct {
	// RevalidateOnReschedule applies the not-in-the-past rule to
	// reschedules as well as to new meetings.
	RevalidateOnReschedule bool
}

// VisitorService drives the visitor meeting lifecycle. The backend is the
// authority on transitions; after every successful change the full
// collection is fetched again and the buckets recomputed.
type VisitorService struct {
	api       ports.VisitorAPI
	publisher ports.MeetingEventPublisher
	clock     ports.Clock
	actor     func() string
	opts      VisitorOptions

	mu    sync.RWMutex
	board domain.Board
}

var _ ports.VisitorService = (*VisitorService)(nil)

func NewVisitorService(
	api ports.VisitorAPI,
	publisher ports.MeetingEventPublisher,
	clock ports.Clock,
	opts VisitorOptions,
) *VisitorService {
	if clock == nil {
		clock = SystemClock{}
	}
	return &VisitorService{
		api:       api,
		publisher: publisher,
		clock:     clock,
		opts:      opts,
	}
}

// WithActor names the operator recorded on published events.
func (s *VisitorService) WithActor(actor func() string) *VisitorService {
	s.actor = actor
	return s
}

func (s *VisitorService) today() domain.Date {
	return domain.DateOf(s.clock.Now())
}

// Refresh fetches the full collection and recomputes every bucket. On
// failure the previous board is kept.
func (s *VisitorService) Refresh(ctx context.Context) (domain.Board, error) {
	meetings, err := s.api.ListMeetings(ctx)
	if err != nil {
		return s.Board(), fmt.Errorf("fetch meetings: %w", err)
	}
	today := s.today()
	b := domain.Board{
		Today:    today,
		Meetings: meetings,
		Buckets:  domain.Bucketize(meetings, today),
	}
	s.mu.Lock()
	s.board = b
	s.mu.Unlock()
	return b, nil
}

func (s *VisitorService) Board() domain.Board {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.board
}

// Schedule validates m and submits it as a new SCHEDULED meeting. Invalid
// input is returned as domain.ValidationErrors without calling the backend.
func (s *VisitorService) Schedule(ctx context.Context, m domain.Meeting) (domain.Meeting, error) {
	if err := m.ValidateNew(s.today()); err != nil {
		return domain.Meeting{}, err
	}
	m.ID = 0
	m.Status = domain.StatusScheduled

	created, err := s.api.CreateMeeting(ctx, m)
	if err != nil {
		return domain.Meeting{}, fmt.Errorf("schedule meeting: %w", err)
	}
	if created.ID == 0 {
		return domain.Meeting{}, fmt.Errorf("schedule meeting: %w: no id assigned", domain.ErrRejected)
	}
	if created.Status == "" {
		created.Status = domain.StatusScheduled
	}

	s.publish(ctx, domain.EventMeetingScheduled, created.ID, created.Status)
	s.refreshAfter(ctx, "schedule")
	return created, nil
}

// Complete and Cancel are refused with domain.ErrNotAllowed once the
// meeting is closed.
func (s *VisitorService) Complete(ctx context.Context, id int64) error {
	return s.setStatus(ctx, id, domain.ActionComplete, domain.StatusCompleted)
}

func (s *VisitorService) Cancel(ctx context.Context, id int64) error {
	return s.setStatus(ctx, id, domain.ActionCancel, domain.StatusCancelled)
}

// setStatus leaves the board untouched when the backend refuses.
func (s *VisitorService) setStatus(ctx context.Context, id int64, action domain.Action, status domain.Status) error {
	if _, err := s.permit(ctx, id, action); err != nil {
		return err
	}
	if err := s.api.UpdateStatus(ctx, id, status); err != nil {
		return fmt.Errorf("set meeting %d to %s: %w", id, status, err)
	}
	s.publish(ctx, domain.EventMeetingStatus, id, status)
	s.refreshAfter(ctx, "status change")
	return nil
}

// Reschedule changes date, time and remarks, keeping the status. The
// record is taken from the board, fetching it first if needed.
func (s *VisitorService) Reschedule(ctx context.Context, id int64, date domain.Date, at, remarks string) (domain.Meeting, error) {
	var errs domain.ValidationErrors
	if date.IsZero() {
		errs = append(errs, domain.FieldError{Field: "scheduledDate", Message: "date is required"})
	} else if s.opts.RevalidateOnReschedule && date.Before(s.today()) {
		errs = append(errs, domain.FieldError{Field: "scheduledDate", Message: "date cannot be in the past"})
	}
	if !domain.ValidTime(at) {
		errs = append(errs, domain.FieldError{Field: "scheduledTime", Message: "time must be HH:MM"})
	}
	if len(errs) > 0 {
		return domain.Meeting{}, errs
	}

	current, err := s.permit(ctx, id, domain.ActionReschedule)
	if err != nil {
		return domain.Meeting{}, err
	}
	current.ScheduledDate = date
	current.ScheduledTime = at
	current.Remarks = remarks

	updated, err := s.api.UpdateMeeting(ctx, id, current)
	if err != nil {
		return domain.Meeting{}, fmt.Errorf("reschedule meeting %d: %w", id, err)
	}

	s.publish(ctx, domain.EventMeetingRescheduled, id, updated.Status)
	s.refreshAfter(ctx, "reschedule")
	return updated, nil
}

// Delete removes a meeting permanently once confirm agrees.
func (s *VisitorService) Delete(ctx context.Context, id int64, confirm ports.Confirmer) error {
	prompt := fmt.Sprintf("Delete meeting %d permanently?", id)
	if m, ok := s.Board().Find(id); ok {
		prompt = fmt.Sprintf("Delete the meeting of %s with %s on %s permanently?", m.VisitorName, m.InmateName, m.ScheduledDate)
	}
	if confirm == nil {
		return domain.ErrNotConfirmed
	}
	ok, err := confirm.Confirm(ctx, prompt)
	if err != nil {
		return fmt.Errorf("confirm delete: %w", err)
	}
	if !ok {
		return domain.ErrNotConfirmed
	}

	if err := s.api.DeleteMeeting(ctx, id); err != nil {
		return fmt.Errorf("delete meeting %d: %w", id, err)
	}
	s.publish(ctx, domain.EventMeetingDeleted, id, "")
	s.refreshAfter(ctx, "delete")
	return nil
}

// Remote returns the backend's own view of a bucket.
func (s *VisitorService) Remote(ctx context.Context, bucket domain.Bucket) ([]domain.Meeting, error) {
	switch bucket {
	case domain.BucketToday:
		return s.api.ListToday(ctx)
	case domain.BucketUpcoming:
		return s.api.ListUpcoming(ctx)
	}
	return nil, fmt.Errorf("no remote listing for bucket %q", bucket)
}

// History returns the archive of completed visits.
func (s *VisitorService) History(ctx context.Context) ([]domain.CompletedVisit, error) {
	return s.api.ListCompleted(ctx)
}

func (s *VisitorService) lookup(ctx context.Context, id int64) (domain.Meeting, error) {
	if m, ok := s.Board().Find(id); ok {
		return m, nil
	}
	b, err := s.Refresh(ctx)
	if err != nil {
		return domain.Meeting{}, err
	}
	if m, ok := b.Find(id); ok {
		return m, nil
	}
	return domain.Meeting{}, fmt.Errorf("meeting %d: %w", id, domain.ErrNotFound)
}

// permit looks the meeting up and checks that action is offered for it in
// its current bucket.
func (s *VisitorService) permit(ctx context.Context, id int64, action domain.Action) (domain.Meeting, error) {
	m, err := s.lookup(ctx, id)
	if err != nil {
		return domain.Meeting{}, err
	}
	if !domain.Allowed(m, domain.BucketOf(m, s.today()), action) {
		return domain.Meeting{}, fmt.Errorf("%s meeting %d (%s): %w", action, id, m.Status, domain.ErrNotAllowed)
	}
	return m, nil
}

func (s *VisitorService) refreshAfter(ctx context.Context, action string) {
	if _, err := s.Refresh(ctx); err != nil {
		log.Printf("visitors: refetch after %s failed, board is stale: %v", action, err)
		s.mu.Lock()
		s.board.Stale = true
		s.mu.Unlock()
	}
}

func (s *VisitorService) publish(ctx context.Context, eventType string, id int64, status domain.Status) {
	if s.publisher == nil {
		return
	}
	evt := domain.MeetingEvent{
		ID:         uuid.NewString(),
		Type:       eventType,
		MeetingID:  id,
		Status:     status,
		OccurredAt: s.clock.Now().UTC(),
	}
	if s.actor != nil {
		evt.Actor = s.actor()
	}
	if err := s.publisher.PublishMeetingEvent(ctx, evt); err != nil {
		log.Printf("visitors: could not publish %s for meeting %d: %v", eventType, id, err)
	}
}

// IsValidation reports whether err came from input validation.
func IsValidation(err error) bool {
	var v domain.ValidationErrors
	return errors.As(err, &v)
}
