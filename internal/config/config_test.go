package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "local", cfg.Env)
	assert.True(t, cfg.IsLocal())
	assert.Equal(t, ":8080", cfg.ServerAddress)
	assert.Equal(t, ProviderMock, cfg.Provider)
	assert.Equal(t, "Paris", cfg.DefaultCity)
	assert.Equal(t, time.Second, cfg.ClockInterval)
	assert.Equal(t, 5*time.Second, cfg.MessageInterval)
	assert.Equal(t, 6*time.Hour, cfg.CacheTTL)
	assert.Equal(t, []string{"Paris", "Lyon", "Marseille"}, cfg.AladhanCities)
	assert.Nil(t, cfg.Messages)
	assert.False(t, cfg.AdminEnabled())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("MINBAR_ENV", "production")
	t.Setenv("MINBAR_PROVIDER", "postgres")
	t.Setenv("MINBAR_DATABASE_URL", "postgres://localhost/minbar")
	t.Setenv("MINBAR_MESSAGE_INTERVAL", "10s")
	t.Setenv("MINBAR_MESSAGES", "Bienvenue, frères et sœurs|Jumu'ah à 13h30")

	cfg, err := Load()
	require.NoError(t, err)

	assert.False(t, cfg.IsLocal())
	assert.Equal(t, ProviderPostgres, cfg.Provider)
	assert.Equal(t, 10*time.Second, cfg.MessageInterval)
	assert.Equal(t, []string{"Bienvenue, frères et sœurs", "Jumu'ah à 13h30"}, cfg.Messages)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unknown provider", map[string]string{"MINBAR_PROVIDER": "sqlite"}},
		{"postgres without url", map[string]string{"MINBAR_PROVIDER": "postgres"}},
		{"admin without secret", map[string]string{"MINBAR_ADMIN_PASSWORD_HASH": "$2a$10$abc"}},
		{"zero interval", map[string]string{"MINBAR_CLOCK_INTERVAL": "0s"}},
		{"bad duration", map[string]string{"MINBAR_CACHE_TTL": "soon"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
