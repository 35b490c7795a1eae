package domain

import (
	"fmt"
	"strings"
)

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

func ParseTheme(s string) (Theme, error) {
	switch Theme(strings.ToLower(strings.TrimSpace(s))) {
	case ThemeLight:
		return ThemeLight, nil
	case ThemeDark:
		return ThemeDark, nil
	}
	return "", fmt.Errorf("unknown theme %q: want light or dark", s)
}

func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

type Language string

const (
	LanguageEnglish Language = "en"
	LanguageHindi   Language = "hi"
	LanguageSpanish Language = "es"
)

func ParseLanguage(s string) (Language, error) {
	switch Language(strings.ToLower(strings.TrimSpace(s))) {
	case LanguageEnglish:
		return LanguageEnglish, nil
	case LanguageHindi:
		return LanguageHindi, nil
	case LanguageSpanish:
		return LanguageSpanish, nil
	}
	return "", fmt.Errorf("unknown language %q: want en, hi or es", s)
}

// Preferences are the presentation settings stored next to the session.
type Preferences struct {
	Theme    Theme
	Language Language
}

func DefaultPreferences() Preferences {
	return Preferences{Theme: ThemeLight, Language: LanguageEnglish}
}
