package handler

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/pflag"

	"github.com/intelicop/console/internal/core/domain"
	"github.com/intelicop/console/internal/core/ports"
)

type CriminalHandler struct {
	criminalService ports.CriminalService
	console         *Console
}

func NewCriminalHandler(criminals ports.CriminalService, console *Console) *CriminalHandler {
	return &CriminalHandler{criminalService: criminals, console: console}
}

var criminalHeaders = []string{"ID", "NAME", "AGE", "CRIME", "THREAT", "STATUS", "LAST SEEN"}

func (h *CriminalHandler) rows(cs []domain.Criminal) [][]string {
	rows := make([][]string, 0, len(cs))
	for _, c := range cs {
		age := "-"
		if c.Age > 0 {
			age = strconv.Itoa(c.Age)
		}
		rows = append(rows, []string{
			strconv.FormatInt(c.ID, 10),
			c.Name,
			age,
			c.Crime,
			h.console.Styled(c.Threat.Badge(), string(c.Threat)),
			h.console.Styled(c.Status.Badge(), string(c.Status)),
			c.LastSeen,
		})
	}
	return rows
}

func (h *CriminalHandler) List(ctx context.Context, _ []string) error {
	cs, err := h.criminalService.List(ctx)
	if err != nil {
		return err
	}
	return h.console.Table(criminalHeaders, h.rows(cs))
}

func (h *CriminalHandler) Search(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("criminals search: want <name>, got %d arguments", len(args))
	}
	cs, err := h.criminalService.Search(ctx, args[0])
	if err != nil {
		return err
	}
	if len(cs) == 0 {
		h.console.Printf("No records match %q\n", args[0])
		return nil
	}
	return h.console.Table(criminalHeaders, h.rows(cs))
}

func (h *CriminalHandler) Show(ctx context.Context, args []string) error {
	id, err := idArg("criminals show", args)
	if err != nil {
		return err
	}
	c, err := h.criminalService.Get(ctx, id)
	if err != nil {
		return err
	}
	age := "unknown"
	if c.Age > 0 {
		age = strconv.Itoa(c.Age)
	}
	h.console.Printf("Record %d: %s\n", c.ID, c.Name)
	h.console.Printf("  Age:       %s\n", age)
	h.console.Printf("  Crime:     %s\n", c.Crime)
	h.console.Printf("  Threat:    %s\n", h.console.Styled(c.Threat.Badge(), string(c.Threat)))
	h.console.Printf("  Status:    %s\n", h.console.Styled(c.Status.Badge(), string(c.Status)))
	h.console.Printf("  Last seen: %s\n", c.LastSeen)
	if c.Record != "" {
		h.console.Printf("  Record:    %s\n", c.Record)
	}
	if c.Photo != "" {
		h.console.Printf("  Photo:     %s\n", c.Photo)
	}
	return nil
}

type criminalFlags struct {
	fs       *pflag.FlagSet
	name     *string
	age      *int
	crime    *string
	threat   *string
	lastSeen *string
	status   *string
	record   *string
	photo    *string
}

func (h *CriminalHandler) recordFlags(command string) criminalFlags {
	fs := h.console.flagSet(command)
	return criminalFlags{
		fs:       fs,
		name:     fs.String("name", "", "full name"),
		age:      fs.Int("age", 0, "age in years, 0 if unknown"),
		crime:    fs.String("crime", "", "offence on record"),
		threat:   fs.String("threat", "", "Low, Medium or High"),
		lastSeen: fs.String("last-seen", "", "where the person was last seen"),
		status:   fs.String("status", "", "Wanted, Captured or Under Investigation"),
		record:   fs.String("record", "", "free-text criminal record"),
		photo:    fs.String("photo", "", "path to a photo"),
	}
}

// apply copies every flag given on the command line onto c.
func (f criminalFlags) apply(c *domain.Criminal) {
	set := func(name string, fn func()) {
		if f.fs.Changed(name) {
			fn()
		}
	}
	set("name", func() { c.Name = *f.name })
	set("age", func() { c.Age = *f.age })
	set("crime", func() { c.Crime = *f.crime })
	set("threat", func() { c.Threat = domain.Threat(*f.threat) })
	set("last-seen", func() { c.LastSeen = *f.lastSeen })
	set("status", func() { c.Status = domain.CaseStatus(*f.status) })
	set("record", func() { c.Record = *f.record })
}

func (f criminalFlags) upload(command string, c domain.Criminal) (domain.CriminalUpload, error) {
	u := domain.CriminalUpload{Criminal: c}
	if *f.photo != "" {
		data, err := os.ReadFile(*f.photo)
		if err != nil {
			return u, fmt.Errorf("%s: read photo: %w", command, err)
		}
		u.Photo = data
		u.PhotoName = filepath.Base(*f.photo)
	}
	return u, nil
}

func (h *CriminalHandler) Add(ctx context.Context, args []string) error {
	f := h.recordFlags("criminals add")
	if err := f.fs.Parse(args); err != nil {
		return err
	}
	var c domain.Criminal
	f.apply(&c)
	u, err := f.upload("criminals add", c)
	if err != nil {
		return err
	}

	created, err := h.criminalService.Add(ctx, u)
	if err != nil {
		return err
	}
	h.console.Printf("Added record %d for %s\n", created.ID, created.Name)
	return nil
}

// Update loads the record and changes only the fields given as flags.
func (h *CriminalHandler) Update(ctx context.Context, args []string) error {
	f := h.recordFlags("criminals update")
	if err := f.fs.Parse(args); err != nil {
		return err
	}
	id, err := idArg("criminals update", f.fs.Args())
	if err != nil {
		return err
	}
	c, err := h.criminalService.Get(ctx, id)
	if err != nil {
		return err
	}
	f.apply(&c)
	u, err := f.upload("criminals update", c)
	if err != nil {
		return err
	}

	updated, err := h.criminalService.Update(ctx, id, u)
	if err != nil {
		return err
	}
	h.console.Printf("Updated record %d (%s)\n", updated.ID, h.console.Styled(updated.Status.Badge(), string(updated.Status)))
	return nil
}

func (h *CriminalHandler) Delete(ctx context.Context, args []string) error {
	fs := h.console.flagSet("criminals delete")
	yes := fs.BoolP("yes", "y", false, "do not ask for confirmation")
	if err := fs.Parse(args); err != nil {
		return err
	}
	id, err := idArg("criminals delete", fs.Args())
	if err != nil {
		return err
	}
	var confirm ports.Confirmer = h.console
	if *yes {
		confirm = AutoConfirm{}
	}
	if err := h.criminalService.Delete(ctx, id, confirm); err != nil {
		return err
	}
	h.console.Printf("Record %d deleted\n", id)
	return nil
}
