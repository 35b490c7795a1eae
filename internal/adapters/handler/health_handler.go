package handler

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/intelicop/console/internal/core/domain"
	"github.com/intelicop/console/internal/core/ports"
)

const defaultReportFile = "database-health-report.pdf"

type HealthHandler struct {
	healthService ports.HealthService
	console       *Console
}

func NewHealthHandler(health ports.HealthService, console *Console) *HealthHandler {
	return &HealthHandler{healthService: health, console: console}
}

// Database prints the latest database health check.
func (h *HealthHandler) Database(ctx context.Context, _ []string) error {
	health, err := h.healthService.Database(ctx)
	if err != nil {
		return err
	}

	rows := [][]string{
		{"Status", h.console.Styled(health.Badge(), health.Status)},
		{"Latency", fmt.Sprintf("%d ms", health.LatencyMs)},
		{"Health", fmt.Sprintf("%.0f%%", health.HealthPercentage)},
	}
	if health.Database != "" {
		rows = append(rows, []string{"Database", health.Database})
	}
	if health.Version != "" {
		rows = append(rows, []string{"Version", health.Version})
	}
	if health.Error != "" {
		rows = append(rows, []string{"Error", h.console.Styled(domain.StyleCritical, health.Error)})
	}
	if health.Timestamp > 0 {
		rows = append(rows, []string{"Checked", time.UnixMilli(health.Timestamp).UTC().Format(time.RFC3339)})
	}
	return h.console.Table([]string{"CHECK", "VALUE"}, rows)
}

// Report downloads the PDF report to --out.
func (h *HealthHandler) Report(ctx context.Context, args []string) error {
	fs := h.console.flagSet("health report")
	out := fs.StringP("out", "o", defaultReportFile, "where to write the PDF")
	if err := fs.Parse(args); err != nil {
		return err
	}

	f, err := os.Create(*out)
	if err != nil {
		return fmt.Errorf("health report: %w", err)
	}
	n, err := h.healthService.Report(ctx, f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(*out)
		return err
	}
	h.console.Printf("Wrote %s (%d bytes)\n", *out, n)
	return nil
}
