package handler

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/intelicop/console/internal/core/domain"
	"github.com/intelicop/console/internal/core/ports"
)

type VisitorHandler struct {
	visitorService ports.VisitorService
	console        *Console
}

func NewVisitorHandler(visitors ports.VisitorService, console *Console) *VisitorHandler {
	return &VisitorHandler{visitorService: visitors, console: console}
}

var meetingHeaders = []string{"ID", "DATE", "TIME", "VISITOR", "CONTACT", "INMATE", "PURPOSE", "STATUS", "ACTIONS"}

func (h *VisitorHandler) meetingRows(ms []domain.Meeting, bucket domain.Bucket) [][]string {
	rows := make([][]string, 0, len(ms))
	for _, m := range ms {
		actions := domain.Actions(m, bucket)
		names := make([]string, len(actions))
		for i, a := range actions {
			names[i] = string(a)
		}
		rows = append(rows, []string{
			strconv.FormatInt(m.ID, 10),
			m.ScheduledDate.String(),
			m.ScheduledTime,
			m.VisitorName,
			m.VisitorContact,
			m.InmateName,
			m.Purpose,
			h.console.Styled(m.Status.Badge(), string(m.Status)),
			strings.Join(names, ","),
		})
	}
	return rows
}

// List fetches the full collection and prints the three buckets.
func (h *VisitorHandler) List(ctx context.Context, args []string) error {
	fs := h.console.flagSet("visitors list")
	only := fs.StringP("bucket", "b", "", "show one bucket: today, upcoming or completed")
	if err := fs.Parse(args); err != nil {
		return err
	}

	board, err := h.visitorService.Refresh(ctx)
	if err != nil {
		return err
	}

	sections := []struct {
		bucket domain.Bucket
		title  string
	}{
		{domain.BucketToday, "Scheduled today"},
		{domain.BucketUpcoming, "Upcoming"},
		{domain.BucketCompleted, "Completed today"},
	}
	if *only != "" {
		b, err := domain.ParseBucket(*only)
		if err != nil {
			return err
		}
		for i, s := range sections {
			if s.bucket == b {
				sections = sections[i : i+1]
				break
			}
		}
	}

	h.console.Printf("Visitor meetings for %s\n", board.Today)
	for _, s := range sections {
		ms := board.Buckets.Get(s.bucket)
		h.console.Heading(fmt.Sprintf("%s (%d)", s.title, len(ms)))
		if len(ms) == 0 {
			h.console.Printf("%s\n", h.console.Styled(domain.StyleMuted, "No meetings"))
			continue
		}
		if err := h.console.Table(meetingHeaders, h.meetingRows(ms, s.bucket)); err != nil {
			return err
		}
	}
	return nil
}

// Remote prints the backend's own today or upcoming listing.
func (h *VisitorHandler) Remote(ctx context.Context, args []string) error {
	fs := h.console.flagSet("visitors remote")
	name := fs.StringP("bucket", "b", string(domain.BucketToday), "today or upcoming")
	if err := fs.Parse(args); err != nil {
		return err
	}
	bucket, err := domain.ParseBucket(*name)
	if err != nil {
		return err
	}
	ms, err := h.visitorService.Remote(ctx, bucket)
	if err != nil {
		return err
	}
	return h.console.Table(meetingHeaders, h.meetingRows(ms, bucket))
}

func (h *VisitorHandler) History(ctx context.Context, _ []string) error {
	visits, err := h.visitorService.History(ctx)
	if err != nil {
		return err
	}
	rows := make([][]string, 0, len(visits))
	for _, v := range visits {
		rows = append(rows, []string{
			strconv.FormatInt(v.ID, 10),
			v.ScheduledDate.String(),
			v.ScheduledTime,
			v.VisitorName,
			v.InmateName,
			v.Purpose,
			v.CompletedAt,
		})
	}
	return h.console.Table([]string{"ID", "DATE", "TIME", "VISITOR", "INMATE", "PURPOSE", "COMPLETED AT"}, rows)
}

func (h *VisitorHandler) Schedule(ctx context.Context, args []string) error {
	fs := h.console.flagSet("visitors schedule")
	visitor := fs.String("visitor", "", "visitor name")
	contact := fs.String("contact", "", "visitor contact, 10 digits")
	inmate := fs.String("inmate", "", "inmate name")
	purpose := fs.String("purpose", "", "purpose of the visit")
	date := fs.String("date", "", "date as YYYY-MM-DD")
	at := fs.String("time", "", "time as HH:MM")
	remarks := fs.String("remarks", "", "optional remarks")
	if err := fs.Parse(args); err != nil {
		return err
	}

	d, err := parseDateFlag(*date)
	if err != nil {
		return err
	}
	m := domain.Meeting{
		VisitorName:    *visitor,
		VisitorContact: *contact,
		InmateName:     *inmate,
		Purpose:        *purpose,
		ScheduledDate:  d,
		ScheduledTime:  *at,
		Remarks:        *remarks,
	}
	created, err := h.visitorService.Schedule(ctx, m)
	if err != nil {
		return err
	}
	h.console.Printf("Scheduled meeting %d on %s at %s\n", created.ID, created.ScheduledDate, created.ScheduledTime)
	h.warnStale()
	return nil
}

func (h *VisitorHandler) Complete(ctx context.Context, args []string) error {
	id, err := idArg("visitors complete", args)
	if err != nil {
		return err
	}
	if err := h.visitorService.Complete(ctx, id); err != nil {
		return err
	}
	h.console.Printf("Meeting %d %s\n", id, h.console.Styled(domain.StatusCompleted.Badge(), string(domain.StatusCompleted)))
	h.warnStale()
	return nil
}

func (h *VisitorHandler) Cancel(ctx context.Context, args []string) error {
	id, err := idArg("visitors cancel", args)
	if err != nil {
		return err
	}
	if err := h.visitorService.Cancel(ctx, id); err != nil {
		return err
	}
	h.console.Printf("Meeting %d %s\n", id, h.console.Styled(domain.StatusCancelled.Badge(), string(domain.StatusCancelled)))
	h.warnStale()
	return nil
}

func (h *VisitorHandler) Reschedule(ctx context.Context, args []string) error {
	fs := h.console.flagSet("visitors reschedule")
	date := fs.String("date", "", "new date as YYYY-MM-DD")
	at := fs.String("time", "", "new time as HH:MM")
	remarks := fs.String("remarks", "", "remarks")
	if err := fs.Parse(args); err != nil {
		return err
	}
	id, err := idArg("visitors reschedule", fs.Args())
	if err != nil {
		return err
	}
	d, err := parseDateFlag(*date)
	if err != nil {
		return err
	}

	updated, err := h.visitorService.Reschedule(ctx, id, d, *at, *remarks)
	if err != nil {
		return err
	}
	h.console.Printf("Meeting %d moved to %s at %s\n", id, updated.ScheduledDate, updated.ScheduledTime)
	h.warnStale()
	return nil
}

func (h *VisitorHandler) Delete(ctx context.Context, args []string) error {
	fs := h.console.flagSet("visitors delete")
	yes := fs.BoolP("yes", "y", false, "do not ask for confirmation")
	if err := fs.Parse(args); err != nil {
		return err
	}
	id, err := idArg("visitors delete", fs.Args())
	if err != nil {
		return err
	}

	var confirm ports.Confirmer = h.console
	if *yes {
		confirm = AutoConfirm{}
	}
	if err := h.visitorService.Delete(ctx, id, confirm); err != nil {
		return err
	}
	h.console.Printf("Meeting %d deleted\n", id)
	h.warnStale()
	return nil
}

func (h *VisitorHandler) warnStale() {
	if h.visitorService.Board().Stale {
		fmt.Fprintln(h.console.Err, h.console.Styled(domain.StyleWarning, "Saved, but the meeting list could not be reloaded."))
	}
}

// parseDateFlag leaves an empty flag as the zero date so the service
// reports it as missing.
func parseDateFlag(s string) (domain.Date, error) {
	if strings.TrimSpace(s) == "" {
		return domain.Date{}, nil
	}
	d, err := domain.ParseDate(s)
	if err != nil {
		return domain.Date{}, domain.ValidationErrors{{Field: "scheduledDate", Message: "date must be YYYY-MM-DD"}}
	}
	return d, nil
}
