package domain

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

var today = Date{Year: 2024, Month: time.March, Day: 15}

func meeting(id int64, date Date, at string, status Status) Meeting {
	return Meeting{
		ID:             id,
		VisitorName:    "Asha Rao",
		VisitorContact: "9876543210",
		InmateName:     "Vikram Rao",
		Purpose:        "Family visit",
		ScheduledDate:  date,
		ScheduledTime:  at,
		Status:         status,
	}
}

func TestParseStatus(t *testing.T) {
	tests := map[string]Status{
		"SCHEDULED":   StatusScheduled,
		"scheduled":   StatusScheduled,
		"Completed":   StatusCompleted,
		"cancelled":   StatusCancelled,
		"in_progress": StatusInProgress,
		"In Progress": StatusInProgress,
		"in-progress": StatusInProgress,
	}
	for in, want := range tests {
		got, err := ParseStatus(in)
		if err != nil {
			t.Errorf("%q: unexpected error: %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("%q: expected %s, got %s", in, want, got)
		}
	}

	if _, err := ParseStatus("postponed"); !errors.Is(err, ErrUnknownStatus) {
		t.Errorf("expected ErrUnknownStatus, got %v", err)
	}
}

func TestStatus_Transitions(t *testing.T) {
	tests := []struct {
		from, to Status
		want     bool
	}{
		{StatusScheduled, StatusCompleted, true},
		{StatusScheduled, StatusCancelled, true},
		{StatusScheduled, StatusInProgress, true},
		{StatusInProgress, StatusCompleted, true},
		{StatusInProgress, StatusCancelled, true},
		{StatusInProgress, StatusScheduled, false},
		{StatusCompleted, StatusCancelled, false},
		{StatusCancelled, StatusScheduled, false},
	}
	for _, tt := range tests {
		if got := tt.from.CanTransitionTo(tt.to); got != tt.want {
			t.Errorf("%s -> %s: expected %t, got %t", tt.from, tt.to, tt.want, got)
		}
	}
	if StatusScheduled.Terminal() || StatusInProgress.Terminal() {
		t.Error("open statuses must not be terminal")
	}
	if !StatusCompleted.Terminal() || !StatusCancelled.Terminal() {
		t.Error("completed and cancelled must be terminal")
	}
}

func TestMeeting_UnmarshalNormalisesStatus(t *testing.T) {
	var m Meeting
	data := `{"id":7,"visitorName":"A","visitorContact":"9876543210","inmateName":"B","purpose":"C","scheduledDate":"2024-03-15","scheduledTime":"10:00:00","status":"completed"}`
	if err := json.Unmarshal([]byte(data), &m); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Status != StatusCompleted {
		t.Errorf("expected COMPLETED, got %s", m.Status)
	}
	if m.ScheduledDate != today {
		t.Errorf("expected %s, got %s", today, m.ScheduledDate)
	}
}

func TestValidContact(t *testing.T) {
	tests := map[string]bool{
		"1234567890":  true,
		"12345":       false,
		"12345678901": false,
		"12345abcde":  false,
		"":            false,
		" 1234567890": false,
	}
	for in, want := range tests {
		if got := ValidContact(in); got != want {
			t.Errorf("%q: expected %t, got %t", in, want, got)
		}
	}
}

func TestMeeting_ValidateNew(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Meeting)
		wantField string
	}{
		{"valid today", func(m *Meeting) {}, ""},
		{"valid tomorrow", func(m *Meeting) { m.ScheduledDate = today.AddDays(1) }, ""},
		{"short contact", func(m *Meeting) { m.VisitorContact = "12345" }, "visitorContact"},
		{"past date", func(m *Meeting) { m.ScheduledDate = today.AddDays(-1) }, "scheduledDate"},
		{"missing date", func(m *Meeting) { m.ScheduledDate = Date{} }, "scheduledDate"},
		{"blank visitor", func(m *Meeting) { m.VisitorName = "  " }, "visitorName"},
		{"blank inmate", func(m *Meeting) { m.InmateName = "" }, "inmateName"},
		{"blank purpose", func(m *Meeting) { m.Purpose = "" }, "purpose"},
		{"bad time", func(m *Meeting) { m.ScheduledTime = "25:99" }, "scheduledTime"},
		{"seconds accepted", func(m *Meeting) { m.ScheduledTime = "10:30:00" }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := meeting(0, today, "10:30", StatusScheduled)
			tt.mutate(&m)
			err := m.ValidateNew(today)
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			var verrs ValidationErrors
			if !errors.As(err, &verrs) {
				t.Fatalf("expected ValidationErrors, got %v", err)
			}
			if _, ok := verrs.Field(tt.wantField); !ok {
				t.Errorf("expected error on %s, got %v", tt.wantField, verrs)
			}
		})
	}
}

func TestBucketize(t *testing.T) {
	tomorrow := today.AddDays(1)
	yesterday := today.AddDays(-1)
	meetings := []Meeting{
		meeting(1, today, "17:30", StatusScheduled),
		meeting(2, today, "08:15", StatusScheduled),
		meeting(3, today, "09:00", StatusInProgress),
		meeting(4, today, "11:00", StatusCompleted),
		meeting(5, today, "12:00", StatusCancelled),
		meeting(6, tomorrow, "10:00", StatusScheduled),
		meeting(7, tomorrow, "09:00", StatusCancelled),
		meeting(8, yesterday, "10:00", StatusScheduled),
		meeting(9, tomorrow.AddDays(3), "08:00", StatusCompleted),
	}

	b := Bucketize(meetings, today)

	assertIDs(t, "scheduled today", b.ScheduledToday, 2, 3, 1)
	assertIDs(t, "completed today", b.CompletedToday, 4)
	assertIDs(t, "upcoming", b.Upcoming, 9, 6)
}

func TestBucketize_StableOnEqualTimes(t *testing.T) {
	meetings := []Meeting{
		meeting(10, today, "09:00", StatusScheduled),
		meeting(11, today, "09:00", StatusScheduled),
		meeting(12, today, "08:00", StatusScheduled),
	}
	assertIDs(t, "scheduled today", Bucketize(meetings, today).ScheduledToday, 12, 10, 11)
}

func TestBucketize_Empty(t *testing.T) {
	b := Bucketize(nil, today)
	if len(b.ScheduledToday)+len(b.CompletedToday)+len(b.Upcoming) != 0 {
		t.Errorf("expected empty buckets, got %+v", b)
	}
}

func TestBuckets_Get(t *testing.T) {
	b := Bucketize([]Meeting{
		meeting(1, today, "10:00", StatusScheduled),
		meeting(2, today, "10:00", StatusCompleted),
		meeting(3, today.AddDays(2), "10:00", StatusScheduled),
	}, today)
	assertIDs(t, "today", b.Get(BucketToday), 1)
	assertIDs(t, "completed", b.Get(BucketCompleted), 2)
	assertIDs(t, "upcoming", b.Get(BucketUpcoming), 3)
	if b.Get(Bucket("archive")) != nil {
		t.Error("expected nil for unknown bucket")
	}
}

func TestActions(t *testing.T) {
	tests := []struct {
		name   string
		status Status
		bucket Bucket
		want   []Action
	}{
		{"scheduled today", StatusScheduled, BucketToday, []Action{ActionComplete, ActionCancel, ActionReschedule, ActionDelete}},
		{"upcoming", StatusScheduled, BucketUpcoming, []Action{ActionComplete, ActionCancel, ActionReschedule, ActionDelete}},
		{"in progress", StatusInProgress, BucketToday, []Action{ActionComplete, ActionCancel, ActionReschedule, ActionDelete}},
		{"completed bucket", StatusCompleted, BucketCompleted, []Action{ActionDelete}},
		{"completed upcoming", StatusCompleted, BucketUpcoming, []Action{ActionDelete}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Actions(meeting(1, today, "10:00", tt.status), tt.bucket)
			if len(got) != len(tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("expected %v, got %v", tt.want, got)
				}
			}
		})
	}
}

func TestBucketOfAndAllowed(t *testing.T) {
	tests := []struct {
		name       string
		m          Meeting
		wantBucket Bucket
		action     Action
		allowed    bool
	}{
		{"scheduled today", meeting(1, today, "10:00", StatusScheduled), BucketToday, ActionComplete, true},
		{"scheduled later", meeting(2, today.AddDays(2), "10:00", StatusScheduled), BucketUpcoming, ActionReschedule, true},
		{"overdue", meeting(3, today.AddDays(-1), "10:00", StatusScheduled), BucketToday, ActionCancel, true},
		{"completed", meeting(4, today, "10:00", StatusCompleted), BucketCompleted, ActionCancel, false},
		{"cancelled", meeting(5, today, "10:00", StatusCancelled), BucketToday, ActionComplete, false},
		{"cancelled delete", meeting(6, today, "10:00", StatusCancelled), BucketToday, ActionDelete, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := BucketOf(tt.m, today)
			if b != tt.wantBucket {
				t.Errorf("expected bucket %s, got %s", tt.wantBucket, b)
			}
			if got := Allowed(tt.m, b, tt.action); got != tt.allowed {
				t.Errorf("expected %s allowed=%v, got %v", tt.action, tt.allowed, got)
			}
		})
	}
}

func TestBoard_Find(t *testing.T) {
	b := Board{Meetings: []Meeting{meeting(4, today, "10:00", StatusScheduled)}}
	if _, ok := b.Find(4); !ok {
		t.Error("expected meeting 4")
	}
	if _, ok := b.Find(5); ok {
		t.Error("did not expect meeting 5")
	}
}

func assertIDs(t *testing.T, name string, ms []Meeting, want ...int64) {
	t.Helper()
	if len(ms) != len(want) {
		t.Fatalf("%s: expected %d meetings, got %d", name, len(want), len(ms))
	}
	for i, m := range ms {
		if m.ID != want[i] {
			t.Errorf("%s[%d]: expected id %d, got %d", name, i, want[i], m.ID)
		}
	}
}
