package prayertimes

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/minbar/internal/db"
	"github.com/Nixie-Tech-LLC/minbar/internal/model"
)

// StoreProvider serves schedules kept in PostgreSQL.
type StoreProvider struct {
	store       db.Store
	defaultCity string
	now         func() time.Time
}

func NewStoreProvider(store db.Store, defaultCity string) *StoreProvider {
	if defaultCity == "" {
		defaultCity = DefaultCity
	}
	return &StoreProvider{store: store, defaultCity: defaultCity, now: time.Now}
}

func (p *StoreProvider) ListCities(ctx context.Context) ([]string, error) {
	cities, err := p.store.ListCities(ctx)
	if err != nil {
		return nil, fmt.Errorf("list cities: %w", err)
	}
	return cities, nil
}

func (p *StoreProvider) GetSchedule(ctx context.Context, city string) (*model.PrayerSchedule, error) {
	s, err := p.store.FindSchedule(ctx, city)
	if errors.Is(err, db.ErrNotFound) && city != p.defaultCity {
		log.Debug().Str("city", city).Str("fallback", p.defaultCity).Msg("unknown city, using default schedule")
		s, err = p.store.FindSchedule(ctx, p.defaultCity)
	}
	if err != nil {
		return nil, fmt.Errorf("schedule for %s: %w", city, err)
	}
	s.Date = calendarDate(p.now())
	return s, nil
}

// Seed writes the built-in schedules into the store.
func Seed(ctx context.Context, store db.Store) (int, error) {
	schedules := MockSchedules()
	for i, s := range schedules {
		if err := store.UpsertSchedule(ctx, i, s); err != nil {
			return i, fmt.Errorf("seed %s: %w", s.City, err)
		}
	}
	return len(schedules), nil
}
