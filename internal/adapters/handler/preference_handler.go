package handler

import (
	"context"
	"fmt"
	"strings"

	"github.com/intelicop/console/internal/core/domain"
	"github.com/intelicop/console/internal/core/ports"
)

type PreferenceHandler struct {
	preferenceService ports.PreferenceService
	console           *Console
}

func NewPreferenceHandler(prefs ports.PreferenceService, console *Console) *PreferenceHandler {
	return &PreferenceHandler{preferenceService: prefs, console: console}
}

// Show prints the stored preferences.
func (h *PreferenceHandler) Show(ctx context.Context, _ []string) error {
	p := h.preferenceService.Load(ctx)
	return h.console.Table([]string{"SETTING", "VALUE"}, [][]string{
		{"theme", string(p.Theme)},
		{"language", string(p.Language)},
	})
}

// Theme sets light or dark, or flips the current theme with "toggle".
func (h *PreferenceHandler) Theme(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("prefs theme: want light, dark or toggle")
	}

	var theme domain.Theme
	if strings.EqualFold(args[0], "toggle") {
		t, err := h.preferenceService.ToggleTheme(ctx)
		if err != nil {
			return err
		}
		theme = t
	} else {
		t, err := domain.ParseTheme(args[0])
		if err != nil {
			return err
		}
		if err := h.preferenceService.SetTheme(ctx, t); err != nil {
			return err
		}
		theme = t
	}
	h.console.Prefs.Theme = theme
	h.console.Printf("Theme set to %s\n", h.console.Styled(domain.StyleInfo, string(theme)))
	return nil
}

func (h *PreferenceHandler) Language(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("prefs language: want en, hi or es")
	}
	lang, err := domain.ParseLanguage(args[0])
	if err != nil {
		return err
	}
	if err := h.preferenceService.SetLanguage(ctx, lang); err != nil {
		return err
	}
	h.console.Prefs.Language = lang
	h.console.Printf("Language set to %s\n", lang)
	return nil
}
