// Package prayertimes provides the prayer data sources behind the display.
// Every source implements Provider; unknown cities resolve to the default
// city's schedule instead of failing.
package prayertimes

import (
	"context"
	"time"

	"github.com/Nixie-Tech-LLC/minbar/internal/model"
)

// DefaultCity is the fallback for unknown city names.
const DefaultCity = "Paris"

// Provider is the data-source contract the display depends on.
type Provider interface {
	ListCities(ctx context.Context) ([]string, error)
	GetSchedule(ctx context.Context, city string) (*model.PrayerSchedule, error)
}

// calendarDate formats t the way schedules carry their Gregorian date.
func calendarDate(t time.Time) string {
	return t.Format("02/01/2006")
}

// sleep waits for d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
