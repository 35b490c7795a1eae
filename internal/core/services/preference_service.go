package services

import (
	"context"
	"log"

	"github.com/intelicop/console/internal/core/domain"
	"github.com/intelicop/console/internal/core/ports"
)

const (
	ThemeKey    = "intelicop_theme"
	LanguageKey = "intelicop_language"
)

// PreferenceService keeps theme and language next to the session blob.
type PreferenceService struct {
	store ports.KeyValueStore
}

var _ ports.PreferenceService = (*PreferenceService)(nil)

func NewPreferenceService(store ports.KeyValueStore) *PreferenceService {
	return &PreferenceService{store: store}
}

// Load returns stored preferences, falling back to defaults for anything
// missing or unreadable.
func (s *PreferenceService) Load(ctx context.Context) domain.Preferences {
	prefs := domain.DefaultPreferences()

	if v, found, err := s.store.Get(ctx, ThemeKey); err != nil {
		log.Printf("preferences: could not read theme: %v", err)
	} else if found {
		if t, err := domain.ParseTheme(v); err == nil {
			prefs.Theme = t
		}
	}

	if v, found, err := s.store.Get(ctx, LanguageKey); err != nil {
		log.Printf("preferences: could not read language: %v", err)
	} else if found {
		if l, err := domain.ParseLanguage(v); err == nil {
			prefs.Language = l
		}
	}
	return prefs
}

func (s *PreferenceService) SetTheme(ctx context.Context, t domain.Theme) error {
	return s.store.Set(ctx, ThemeKey, string(t))
}

func (s *PreferenceService) ToggleTheme(ctx context.Context) (domain.Theme, error) {
	next := s.Load(ctx).Theme.Toggle()
	if err := s.SetTheme(ctx, next); err != nil {
		return "", err
	}
	return next, nil
}

func (s *PreferenceService) SetLanguage(ctx context.Context, l domain.Language) error {
	return s.store.Set(ctx, LanguageKey, string(l))
}
