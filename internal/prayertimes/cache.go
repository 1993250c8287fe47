package prayertimes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/minbar/internal/model"
)

const (
	cacheKeyPrefix  = "minbar:"
	DefaultCacheTTL = 6 * time.Hour
)

// CachedProvider is a read-through Redis cache in front of another provider.
// Redis failures are logged and bypassed; they never fail a lookup.
type CachedProvider struct {
	inner Provider
	rdb   redis.Cmdable
	ttl   time.Duration
	now   func() time.Time
}

func NewCachedProvider(inner Provider, rdb redis.Cmdable, ttl time.Duration) *CachedProvider {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &CachedProvider{inner: inner, rdb: rdb, ttl: ttl, now: time.Now}
}

func citiesKey() string {
	return cacheKeyPrefix + "cities"
}

// Schedules are per day, so the date is part of the key.
func scheduleKey(city string, day time.Time) string {
	return fmt.Sprintf("%sschedule:%s:%s", cacheKeyPrefix, city, day.Format("2006-01-02"))
}

func (p *CachedProvider) ListCities(ctx context.Context) ([]string, error) {
	var cities []string
	if p.load(ctx, citiesKey(), &cities) {
		return cities, nil
	}
	cities, err := p.inner.ListCities(ctx)
	if err != nil {
		return nil, err
	}
	p.store(ctx, citiesKey(), cities)
	return cities, nil
}

func (p *CachedProvider) GetSchedule(ctx context.Context, city string) (*model.PrayerSchedule, error) {
	key := scheduleKey(city, p.now())
	var s model.PrayerSchedule
	if p.load(ctx, key, &s) {
		return &s, nil
	}
	fresh, err := p.inner.GetSchedule(ctx, city)
	if err != nil {
		return nil, err
	}
	// Fallback schedules for unknown names are not cached under those names.
	if fresh.City == city {
		p.store(ctx, key, fresh)
	}
	return fresh, nil
}

func (p *CachedProvider) load(ctx context.Context, key string, dst any) bool {
	raw, err := p.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Warn().Err(err).Str("key", key).Msg("cache read failed")
		}
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache entry corrupt, ignoring")
		return false
	}
	return true
}

func (p *CachedProvider) store(ctx context.Context, key string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache encode failed")
		return
	}
	if err := p.rdb.Set(ctx, key, raw, p.ttl).Err(); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache write failed")
	}
}
