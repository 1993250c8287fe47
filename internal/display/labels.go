package display

import (
	"strings"
	"time"

	"github.com/go-playground/locales"
	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/fr"
)

// Labels formats the date and time lines of the display.
type Labels struct {
	tr locales.Translator
}

// NewLabels supports "fr" (default) and "en".
func NewLabels(locale string) Labels {
	switch strings.ToLower(locale) {
	case "en":
		return Labels{tr: en.New()}
	default:
		return Labels{tr: fr.New()}
	}
}

func (l Labels) Locale() string { return l.tr.Locale() }

// Date renders e.g. “lundi 19 octobre 2026”.
func (l Labels) Date(t time.Time) string { return l.tr.FmtDateFull(t) }

// Time renders e.g. “14:05:09”.
func (l Labels) Time(t time.Time) string { return l.tr.FmtTimeMedium(t) }
