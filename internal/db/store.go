// exposes a Store interface that is passed to the prayer data source
package db

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/Nixie-Tech-LLC/minbar/internal/model"
)

// ErrNotFound is returned when a city has no stored schedule.
var ErrNotFound = errors.New("schedule not found")

type Store interface {
	ListCities(ctx context.Context) ([]string, error)
	FindSchedule(ctx context.Context, city string) (*model.PrayerSchedule, error)
	UpsertSchedule(ctx context.Context, position int, s model.PrayerSchedule) error
}

type pgStore struct {
	db *sqlx.DB
}

// compile-time check that pgStore implements Store
var _ Store = (*pgStore)(nil)

func NewStore(conn *sqlx.DB) Store {
	return &pgStore{db: conn}
}
