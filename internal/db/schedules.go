package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/minbar/internal/model"
)

type scheduleRow struct {
	City        string `db:"city"`
	IslamicDate string `db:"islamic_date"`
	Timezone    string `db:"timezone"`
}

func (s *pgStore) ListCities(ctx context.Context) ([]string, error) {
	var out []string
	const q = `
	SELECT city
	  FROM prayer_schedules
	 ORDER BY position, city;`
	if err := s.db.SelectContext(ctx, &out, q); err != nil {
		log.Error().Err(err).Msg("ListCities failed")
		return nil, err
	}
	return out, nil
}

// FindSchedule loads a city's schedule and its five prayers.
// Returns ErrNotFound when the city is not stored.
func (s *pgStore) FindSchedule(ctx context.Context, city string) (*model.PrayerSchedule, error) {
	var row scheduleRow
	const q = `
	SELECT city, islamic_date, timezone
	  FROM prayer_schedules
	 WHERE city = $1;`
	if err := s.db.GetContext(ctx, &row, q, city); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		log.Error().Err(err).Str("city", city).Msg("FindSchedule failed")
		return nil, err
	}

	var prayers []model.PrayerEntry
	const pq = `
	SELECT name, localized_name, prayer_time AS time
	  FROM prayer_times
	 WHERE city = $1
	 ORDER BY position;`
	if err := s.db.SelectContext(ctx, &prayers, pq, city); err != nil {
		log.Error().Err(err).Str("city", city).Msg("FindSchedule prayers failed")
		return nil, err
	}

	return &model.PrayerSchedule{
		City:        row.City,
		IslamicDate: row.IslamicDate,
		Timezone:    row.Timezone,
		Prayers:     prayers,
	}, nil
}

// UpsertSchedule replaces a city's schedule inside one transaction.
func (s *pgStore) UpsertSchedule(ctx context.Context, position int, sc model.PrayerSchedule) error {
	if err := sc.Validate(); err != nil {
		return err
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	const upsert = `
	INSERT INTO prayer_schedules (city, position, islamic_date, timezone, updated_at)
	VALUES ($1, $2, $3, $4, now())
	ON CONFLICT (city) DO UPDATE
	   SET position = EXCLUDED.position,
	       islamic_date = EXCLUDED.islamic_date,
	       timezone = EXCLUDED.timezone,
	       updated_at = now();`
	if _, err := tx.ExecContext(ctx, upsert, sc.City, position, sc.IslamicDate, sc.Timezone); err != nil {
		log.Error().Err(err).Str("city", sc.City).Msg("UpsertSchedule failed")
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM prayer_times WHERE city = $1;`, sc.City); err != nil {
		log.Error().Err(err).Str("city", sc.City).Msg("UpsertSchedule clear prayers failed")
		return err
	}

	const insert = `
	INSERT INTO prayer_times (city, position, name, localized_name, prayer_time)
	VALUES ($1, $2, $3, $4, $5);`
	for i, p := range sc.Prayers {
		if _, err := tx.ExecContext(ctx, insert, sc.City, i, p.Name, p.LocalizedName, p.Time); err != nil {
			log.Error().Err(err).Str("city", sc.City).Str("prayer", p.Name).Msg("UpsertSchedule insert prayer failed")
			return err
		}
	}

	return tx.Commit()
}
