package display

import (
	"time"

	"github.com/Nixie-Tech-LLC/minbar/internal/model"
)

// NextPrayer returns the first prayer whose time is later than now's
// hour and minute. When every prayer has passed it wraps to the first one
// (tomorrow's Fajr). Returns nil for an empty schedule. Entries with an
// unparsable time are skipped.
func NextPrayer(prayers []model.PrayerEntry, now time.Time) *model.PrayerEntry {
	if len(prayers) == 0 {
		return nil
	}
	current := now.Hour()*60 + now.Minute()
	for _, p := range prayers {
		m, err := model.ClockMinutes(p.Time)
		if err != nil {
			continue
		}
		if m > current {
			next := p
			return &next
		}
	}
	first := prayers[0]
	return &first
}
