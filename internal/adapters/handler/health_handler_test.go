package handler

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/intelicop/console/internal/core/domain"
	"github.com/intelicop/console/internal/core/services"
	"github.com/intelicop/console/internal/mocks"
)

func TestHealthHandler_Database(t *testing.T) {
	api := &mocks.MockHealthAPI{Health: domain.DatabaseHealth{
		Status: "DOWN", LatencyMs: 1200, Error: "connection refused", Timestamp: 1710504000000,
	}}
	c, _, _ := newTestConsole("")
	h := NewHealthHandler(services.NewHealthService(api), c)

	if err := h.Database(context.Background(), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := output(c)
	for _, want := range []string{"DOWN", "1200 ms", "connection refused", "2024-03-15T12:00:00Z"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output, got %q", want, out)
		}
	}
}

func TestHealthHandler_Report(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "report.pdf")
	c, _, _ := newTestConsole("")

	h := NewHealthHandler(services.NewHealthService(&mocks.MockHealthAPI{Report: []byte("%PDF-1.4")}), c)
	if err := h.Report(ctx, []string{"-o", path}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil || string(data) != "%PDF-1.4" {
		t.Fatalf("expected report written, got %q (%v)", data, err)
	}

	failed := filepath.Join(t.TempDir(), "failed.pdf")
	h = NewHealthHandler(services.NewHealthService(&mocks.MockHealthAPI{Error: domain.ErrUnavailable}), c)
	if err := h.Report(ctx, []string{"--out", failed}); err == nil {
		t.Fatal("expected error")
	}
	if _, err := os.Stat(failed); !os.IsNotExist(err) {
		t.Error("expected partial report removed")
	}
}
