package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/minbar/internal/config"
	"github.com/Nixie-Tech-LLC/minbar/internal/db"
	"github.com/Nixie-Tech-LLC/minbar/internal/prayertimes"
	redisclient "github.com/Nixie-Tech-LLC/minbar/internal/redis"
)

// InitProvider selects the configured prayer data source, wrapped in the
// Redis cache when an address is set. cleanup releases its connections.
func InitProvider(ctx context.Context, cfg *config.Config) (prayertimes.Provider, func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	var provider prayertimes.Provider
	switch cfg.Provider {
	case config.ProviderPostgres:
		store, closeStore, err := openStore(cfg)
		if err != nil {
			return nil, nil, err
		}
		closers = append(closers, closeStore)
		provider = prayertimes.NewStoreProvider(store, cfg.DefaultCity)
		log.Info().Msg("using PostgreSQL prayer times")

	case config.ProviderAladhan:
		p := prayertimes.NewAladhanProvider(cfg.AladhanCountry, cfg.AladhanMethod, cfg.AladhanCities)
		p.BaseURL = cfg.AladhanURL
		provider = p
		log.Info().Str("url", cfg.AladhanURL).Strs("cities", cfg.AladhanCities).Msg("using Al Adhan prayer times")

	default:
		p := prayertimes.NewMockProvider()
		p.ListDelay = cfg.MockListDelay
		p.ScheduleDelay = cfg.MockScheduleDelay
		provider = p
		log.Info().Msg("using built-in prayer times")
	}

	if cfg.RedisAddress != "" {
		rdb, err := redisclient.NewClient(ctx, cfg.RedisAddress, cfg.RedisUsername, cfg.RedisPassword)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		closers = append(closers, func() { _ = rdb.Close() })
		provider = prayertimes.NewCachedProvider(provider, rdb, cfg.CacheTTL)
		log.Info().Dur("ttl", cfg.CacheTTL).Msg("caching prayer times in redis")
	}

	return provider, cleanup, nil
}

// openStore connects to PostgreSQL and applies pending migrations.
func openStore(cfg *config.Config) (db.Store, func(), error) {
	if cfg.DatabaseURL == "" {
		return nil, nil, fmt.Errorf("MINBAR_DATABASE_URL is required")
	}
	conn, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("db init: %w", err)
	}
	if err := db.RunMigrations(conn, cfg.MigrationsPath); err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("db migrate: %w", err)
	}
	return db.NewStore(conn), func() { _ = conn.Close() }, nil
}
