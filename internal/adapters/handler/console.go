// Package handler holds the console commands. Each command is a
// middleware.HandlerFunc registered on a Mux, the way an HTTP service
// registers handlers on a ServeMux.
package handler

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"

	"github.com/intelicop/console/internal/adapters/middleware"
	"github.com/intelicop/console/internal/core/domain"
	"github.com/intelicop/console/internal/core/services"
)

// Console is the terminal a command writes to.
type Console struct {
	Out   io.Writer
	Err   io.Writer
	In    *bufio.Reader
	Prefs domain.Preferences
}

func NewConsole(in io.Reader, out, errOut io.Writer, prefs domain.Preferences) *Console {
	return &Console{Out: out, Err: errOut, In: bufio.NewReader(in), Prefs: prefs}
}

type palette map[domain.StyleToken]lipgloss.Color

var palettes = map[domain.Theme]palette{
	domain.ThemeLight: {
		domain.StyleNeutral:  lipgloss.Color("0"),
		domain.StyleInfo:     lipgloss.Color("4"),
		domain.StyleSuccess:  lipgloss.Color("2"),
		domain.StyleWarning:  lipgloss.Color("3"),
		domain.StyleCritical: lipgloss.Color("1"),
		domain.StyleMuted:    lipgloss.Color("8"),
	},
	domain.ThemeDark: {
		domain.StyleNeutral:  lipgloss.Color("15"),
		domain.StyleInfo:     lipgloss.Color("12"),
		domain.StyleSuccess:  lipgloss.Color("10"),
		domain.StyleWarning:  lipgloss.Color("11"),
		domain.StyleCritical: lipgloss.Color("9"),
		domain.StyleMuted:    lipgloss.Color("7"),
	},
}

// Styled renders text in the colour the active theme assigns to token.
func (c *Console) Styled(token domain.StyleToken, text string) string {
	p, ok := palettes[c.Prefs.Theme]
	if !ok {
		p = palettes[domain.ThemeLight]
	}
	style := lipgloss.NewStyle().Foreground(p[token])
	if token == domain.StyleCritical {
		style = style.Bold(true)
	}
	return style.Render(text)
}

func (c *Console) Printf(format string, args ...any) {
	fmt.Fprintf(c.Out, format, args...)
}

// Heading prints a section title.
func (c *Console) Heading(title string) {
	fmt.Fprintln(c.Out, lipgloss.NewStyle().Bold(true).Render(title))
}

// Table prints rows under headers, aligned with a tabwriter.
func (c *Console) Table(headers []string, rows [][]string) error {
	tw := tabwriter.NewWriter(c.Out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(headers, "\t"))
	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}

// Report writes the operator-facing notice for err to the error stream.
func (c *Console) Report(err error) {
	var redirect *middleware.RedirectError
	if errors.As(err, &redirect) {
		fmt.Fprintf(c.Err, "%s (%s)\n", c.Styled(domain.StyleWarning, services.Notice(err, c.Prefs.Language)), redirect.Decision.Redirect)
		return
	}
	fmt.Fprintln(c.Err, c.Styled(domain.StyleCritical, services.Notice(err, c.Prefs.Language)))
}

// ReadLine prompts on Out and returns one trimmed line from In.
func (c *Console) ReadLine(prompt string) (string, error) {
	fmt.Fprint(c.Out, prompt)
	line, err := c.In.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// Confirm implements ports.Confirmer by asking on the console.
func (c *Console) Confirm(ctx context.Context, prompt string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	answer, err := c.ReadLine(prompt + " [y/N]: ")
	if err != nil {
		if errors.Is(err, io.EOF) {
			return false, nil
		}
		return false, err
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

// AutoConfirm answers yes without asking. Used for --yes.
type AutoConfirm struct{}

func (AutoConfirm) Confirm(context.Context, string) (bool, error) { return true, nil }
