package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const prefix = "MINBAR"

// Provider names accepted in MINBAR_PROVIDER.
const (
	ProviderMock     = "mock"
	ProviderPostgres = "postgres"
	ProviderAladhan  = "aladhan"
)

// Config holds environment-based settings
type Config struct {
	Env           string `envconfig:"ENV" default:"local"`
	ServerAddress string `envconfig:"SERVER_ADDRESS" default:":8080"`
	Provider      string `envconfig:"PROVIDER" default:"mock"`
	DefaultCity   string `envconfig:"DEFAULT_CITY" default:"Paris"`
	DisplayID     string `envconfig:"DISPLAY_ID" default:"main"`
	Locale        string `envconfig:"LOCALE" default:"fr"`

	DatabaseURL    string `envconfig:"DATABASE_URL"`
	MigrationsPath string `envconfig:"MIGRATIONS_PATH" default:"./migrations"`

	RedisAddress  string        `envconfig:"REDIS_ADDRESS"`
	RedisUsername string        `envconfig:"REDIS_USERNAME"`
	RedisPassword string        `envconfig:"REDIS_PASSWORD"`
	CacheTTL      time.Duration `envconfig:"CACHE_TTL" default:"6h"`

	MQTTBroker   string `envconfig:"MQTT_BROKER"`
	MQTTClientID string `envconfig:"MQTT_CLIENT_ID" default:"minbar"`

	JWTSecret         string `envconfig:"JWT_SECRET"`
	AdminPasswordHash string `envconfig:"ADMIN_PASSWORD_HASH"`

	ClockInterval   time.Duration `envconfig:"CLOCK_INTERVAL" default:"1s"`
	MessageInterval time.Duration `envconfig:"MESSAGE_INTERVAL" default:"5s"`

	// Messages separated by "|" since they contain commas.
	Messages []string `envconfig:"MESSAGES"`

	AladhanURL     string   `envconfig:"ALADHAN_URL" default:"https://api.aladhan.com/v1"`
	AladhanCountry string   `envconfig:"ALADHAN_COUNTRY" default:"France"`
	AladhanMethod  int      `envconfig:"ALADHAN_METHOD" default:"12"`
	AladhanCities  []string `envconfig:"ALADHAN_CITIES" default:"Paris,Lyon,Marseille"`

	MockListDelay     time.Duration `envconfig:"MOCK_LIST_DELAY" default:"300ms"`
	MockScheduleDelay time.Duration `envconfig:"MOCK_SCHEDULE_DELAY" default:"500ms"`
}

// Load reads configuration from MINBAR_* environment variables and validates it.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(prefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}
	cfg.Messages = splitMessages(cfg.Messages)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the settings that depend on each other.
func (c *Config) Validate() error {
	var errs []error
	switch c.Provider {
	case ProviderMock, ProviderAladhan:
	case ProviderPostgres:
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("MINBAR_DATABASE_URL is required for the postgres provider"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown provider %q", c.Provider))
	}
	if c.AdminPasswordHash != "" && c.JWTSecret == "" {
		errs = append(errs, errors.New("MINBAR_JWT_SECRET is required when the admin API is enabled"))
	}
	if c.ClockInterval <= 0 || c.MessageInterval <= 0 {
		errs = append(errs, errors.New("clock and message intervals must be positive"))
	}
	if c.Provider == ProviderAladhan && len(c.AladhanCities) == 0 {
		errs = append(errs, errors.New("MINBAR_ALADHAN_CITIES must list at least one city"))
	}
	return errors.Join(errs...)
}

func (c *Config) IsLocal() bool { return c.Env == "local" }

// AdminEnabled reports whether the admin endpoints should be mounted.
func (c *Config) AdminEnabled() bool { return c.AdminPasswordHash != "" }

// envconfig splits slices on commas; messages are joined back and split on "|".
func splitMessages(raw []string) []string {
	if len(raw) == 0 {
		return nil
	}
	var out []string
	for _, m := range strings.Split(strings.Join(raw, ","), "|") {
		if m = strings.TrimSpace(m); m != "" {
			out = append(out, m)
		}
	}
	return out
}
