package domain

import (
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"
)

type Status string

const (
	StatusScheduled  Status = "SCHEDULED"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
	StatusCancelled  Status = "CANCELLED"
)

var statuses = []Status{StatusScheduled, StatusInProgress, StatusCompleted, StatusCancelled}

// ParseStatus accepts any casing and treats spaces and hyphens as
// underscores, so "Completed" and "in-progress" both resolve.
func ParseStatus(s string) (Status, error) {
	v := strings.NewReplacer(" ", "_", "-", "_").Replace(strings.TrimSpace(s))
	for _, st := range statuses {
		if strings.EqualFold(v, string(st)) {
			return st, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStatus, s)
}

func (s Status) String() string { return string(s) }

// Terminal reports whether no further transition is offered.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CanTransitionTo follows SCHEDULED -> {IN_PROGRESS, COMPLETED, CANCELLED}
// and IN_PROGRESS -> {COMPLETED, CANCELLED}.
func (s Status) CanTransitionTo(next Status) bool {
	switch s {
	case StatusScheduled:
		return next == StatusInProgress || next == StatusCompleted || next == StatusCancelled
	case StatusInProgress:
		return next == StatusCompleted || next == StatusCancelled
	}
	return false
}

func (s Status) Badge() StyleToken {
	switch s {
	case StatusScheduled:
		return StyleInfo
	case StatusInProgress:
		return StyleWarning
	case StatusCompleted:
		return StyleSuccess
	case StatusCancelled:
		return StyleCritical
	}
	return StyleMuted
}

func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(s))
}

func (s *Status) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseStatus(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Meeting is a scheduled visit between a visitor and an inmate.
type Meeting struct {
	ID             int64  `json:"id,omitempty"`
	VisitorName    string `json:"visitorName"`
	VisitorContact string `json:"visitorContact"`
	InmateName     string `json:"inmateName"`
	Purpose        string `json:"purpose"`
	ScheduledDate  Date   `json:"scheduledDate"`
	ScheduledTime  string `json:"scheduledTime"`
	Remarks        string `json:"remarks,omitempty"`
	Status         Status `json:"status"`
	CreatedAt      string `json:"createdAt,omitempty"`
}

var contactPattern = regexp.MustCompile(`^\d{10}$`)

// ValidContact reports whether contact is exactly ten digits.
func ValidContact(contact string) bool {
	return contactPattern.MatchString(contact)
}

// ValidTime accepts "HH:MM" and the "HH:MM:SS" form the backend echoes.
func ValidTime(s string) bool {
	if _, err := time.Parse("15:04", s); err == nil {
		return true
	}
	_, err := time.Parse("15:04:05", s)
	return err == nil
}

// ValidateNew checks a meeting before it is first submitted.
func (m Meeting) ValidateNew(today Date) error {
	var errs ValidationErrors
	if strings.TrimSpace(m.VisitorName) == "" {
		errs = append(errs, FieldError{Field: "visitorName", Message: "visitor name is required"})
	}
	if !ValidContact(m.VisitorContact) {
		errs = append(errs, FieldError{Field: "visitorContact", Message: "contact must be exactly 10 digits"})
	}
	if strings.TrimSpace(m.InmateName) == "" {
		errs = append(errs, FieldError{Field: "inmateName", Message: "inmate name is required"})
	}
	if strings.TrimSpace(m.Purpose) == "" {
		errs = append(errs, FieldError{Field: "purpose", Message: "purpose is required"})
	}
	switch {
	case m.ScheduledDate.IsZero():
		errs = append(errs, FieldError{Field: "scheduledDate", Message: "date is required"})
	case m.ScheduledDate.Before(today):
		errs = append(errs, FieldError{Field: "scheduledDate", Message: "date cannot be in the past"})
	}
	if !ValidTime(m.ScheduledTime) {
		errs = append(errs, FieldError{Field: "scheduledTime", Message: "time must be HH:MM"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type Bucket string

const (
	BucketToday     Bucket = "today"
	BucketUpcoming  Bucket = "upcoming"
	BucketCompleted Bucket = "completed"
)

func ParseBucket(s string) (Bucket, error) {
	switch Bucket(strings.ToLower(strings.TrimSpace(s))) {
	case BucketToday:
		return BucketToday, nil
	case BucketUpcoming:
		return BucketUpcoming, nil
	case BucketCompleted:
		return BucketCompleted, nil
	}
	return "", fmt.Errorf("unknown bucket %q: want today, upcoming or completed", s)
}

// Buckets are the display groupings derived from a full collection.
type Buckets struct {
	ScheduledToday []Meeting
	CompletedToday []Meeting
	Upcoming       []Meeting
}

func (b Buckets) Get(bucket Bucket) []Meeting {
	switch bucket {
	case BucketToday:
		return b.ScheduledToday
	case BucketUpcoming:
		return b.Upcoming
	case BucketCompleted:
		return b.CompletedToday
	}
	return nil
}

// Bucketize recomputes every bucket from scratch. Each bucket is ordered
// by scheduled time; ties keep collection order.
func Bucketize(meetings []Meeting, today Date) Buckets {
	var b Buckets
	for _, m := range meetings {
		sameDay := m.ScheduledDate == today
		switch {
		case sameDay && !m.Status.Terminal():
			b.ScheduledToday = append(b.ScheduledToday, m)
		case sameDay && m.Status == StatusCompleted:
			b.CompletedToday = append(b.CompletedToday, m)
		}
		if m.Status != StatusCancelled && m.ScheduledDate.After(today) {
			b.Upcoming = append(b.Upcoming, m)
		}
	}
	sortByTime(b.ScheduledToday)
	sortByTime(b.CompletedToday)
	sortByTime(b.Upcoming)
	return b
}

func sortByTime(ms []Meeting) {
	sort.SliceStable(ms, func(i, j int) bool {
		return ms[i].ScheduledTime < ms[j].ScheduledTime
	})
}

// Board is the last fetched meeting collection and the buckets derived
// from it. Stale is set when a refetch after a successful change failed.
type Board struct {
	Today    Date
	Meetings []Meeting
	Buckets  Buckets
	Stale    bool
}

// Find returns the meeting with id from the board.
func (b Board) Find(id int64) (Meeting, bool) {
	for _, m := range b.Meetings {
		if m.ID == id {
			return m, true
		}
	}
	return Meeting{}, false
}

type Action string

const (
	ActionComplete   Action = "complete"
	ActionCancel     Action = "cancel"
	ActionReschedule Action = "reschedule"
	ActionDelete     Action = "delete"
)

// Actions lists the affordances offered for m while it is shown in bucket.
func Actions(m Meeting, bucket Bucket) []Action {
	var out []Action
	if bucket != BucketCompleted && !m.Status.Terminal() {
		out = append(out, ActionComplete, ActionCancel, ActionReschedule)
	}
	return append(out, ActionDelete)
}

// BucketOf names the bucket whose actions apply to m on today. Overdue
// meetings that were never closed take today's actions.
func BucketOf(m Meeting, today Date) Bucket {
	switch {
	case m.Status == StatusCompleted:
		return BucketCompleted
	case m.ScheduledDate.After(today):
		return BucketUpcoming
	}
	return BucketToday
}

// Allowed reports whether action is among Actions(m, bucket).
func Allowed(m Meeting, bucket Bucket, action Action) bool {
	for _, a := range Actions(m, bucket) {
		if a == action {
			return true
		}
	}
	return false
}

// CompletedVisit is the archived record the backend keeps once a meeting
// has been completed.
type CompletedVisit struct {
	ID             int64  `json:"id"`
	VisitorName    string `json:"visitorName"`
	VisitorContact string `json:"visitorContact"`
	InmateName     string `json:"inmateName"`
	Purpose        string `json:"purpose"`
	ScheduledDate  Date   `json:"scheduledDate"`
	ScheduledTime  string `json:"scheduledTime"`
	Remarks        string `json:"remarks,omitempty"`
	CompletedAt    string `json:"completedAt,omitempty"`
}

// MeetingEvent records a lifecycle change confirmed by the backend.
type MeetingEvent struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	MeetingID  int64     `json:"meeting_id"`
	Status     Status    `json:"status,omitempty"`
	Actor      string    `json:"actor,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

const (
	EventMeetingScheduled   = "meeting.scheduled"
	EventMeetingStatus      = "meeting.status_changed"
	EventMeetingRescheduled = "meeting.rescheduled"
	EventMeetingDeleted     = "meeting.deleted"
)
