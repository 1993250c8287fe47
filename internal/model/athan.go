package model

import (
	"errors"
	"fmt"
)

// PrayerNames is the fixed order of the five daily prayers.
var PrayerNames = []string{"Fajr", "Dhuhr", "Asr", "Maghrib", "Isha"}

var (
	ErrPrayerCount = errors.New("schedule must hold exactly five prayers")
	ErrPrayerOrder = errors.New("prayers out of order")
)

type PrayerEntry struct {
	Name          string `db:"name"           json:"name"`           // “Fajr”, “Dhuhr”, …
	LocalizedName string `db:"localized_name" json:"localized_name"` // “الفجر”
	Time          string `db:"time"           json:"time"`           // “05:30”, 24h
}

// PrayerSchedule is one city's timetable for a single day.
type PrayerSchedule struct {
	City        string        `db:"city"         json:"city"`
	Date        string        `db:"date"         json:"date"`         // “19/10/2026”
	IslamicDate string        `db:"islamic_date" json:"islamic_date"` // “15 Sha'ban 1445”
	Timezone    string        `db:"timezone"     json:"timezone,omitempty"`
	Prayers     []PrayerEntry `db:"-"            json:"prayers"`
}

// Validate checks the five-prayer invariant: fixed names in fixed order with
// strictly increasing times.
func (s *PrayerSchedule) Validate() error {
	if len(s.Prayers) != len(PrayerNames) {
		return fmt.Errorf("%s: %w (got %d)", s.City, ErrPrayerCount, len(s.Prayers))
	}
	prev := -1
	for i, p := range s.Prayers {
		if p.Name != PrayerNames[i] {
			return fmt.Errorf("%s: %w: position %d is %q, want %q", s.City, ErrPrayerOrder, i, p.Name, PrayerNames[i])
		}
		m, err := ClockMinutes(p.Time)
		if err != nil {
			return fmt.Errorf("%s: %s: %w", s.City, p.Name, err)
		}
		if m <= prev {
			return fmt.Errorf("%s: %w: %s at %s is not after the previous prayer", s.City, ErrPrayerOrder, p.Name, p.Time)
		}
		prev = m
	}
	return nil
}

// Clone returns a deep copy so callers can hand schedules across goroutines.
func (s *PrayerSchedule) Clone() *PrayerSchedule {
	if s == nil {
		return nil
	}
	out := *s
	out.Prayers = append([]PrayerEntry(nil), s.Prayers...)
	return &out
}

// ClockMinutes converts an “HH:MM” string into minutes since midnight.
// A trailing suffix after a space (“15:02 (BST)”) is ignored.
func ClockMinutes(raw string) (int, error) {
	s := raw
	for i := 0; i < len(s); i++ {
		if s[i] == ' ' {
			s = s[:i]
			break
		}
	}
	var h, m int
	if n, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil || n != 2 {
		return 0, fmt.Errorf("invalid time format: %q", raw)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("time out of range: %q", raw)
	}
	return h*60 + m, nil
}
