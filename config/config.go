package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Config is read once from the process environment at startup.
type Config struct {
	Port               string
	DBDriver           string
	DBConnectionString string

	AccessTokenSecret  string
	RefreshTokenSecret string
	AccessTokenTTL     time.Duration
	RefreshTokenTTL    time.Duration

	RedisURL string

	PhotoBucket    string
	PhotoRegion    string
	PhotoEndpoint  string
	PhotoPathStyle bool

	DefaultMonthlyRent decimal.Decimal
}

func Load() (Config, error) {
	cfg := Config{
		Port:               getenv("PORT", "5000"),
		DBDriver:           strings.ToLower(getenv("DB_DRIVER", "postgres")),
		DBConnectionString: os.Getenv("DB_CONNECTION_STRING"),
		AccessTokenSecret:  os.Getenv("ACCESS_TOKEN_SECRET"),
		RefreshTokenSecret: os.Getenv("REFRESH_TOKEN_SECRET"),
		AccessTokenTTL:     24 * time.Hour,
		RefreshTokenTTL:    365 * 24 * time.Hour,
		RedisURL:           os.Getenv("REDIS_URL"),
		PhotoBucket:        os.Getenv("PHOTO_S3_BUCKET"),
		PhotoRegion:        os.Getenv("PHOTO_S3_REGION"),
		PhotoEndpoint:      os.Getenv("PHOTO_S3_ENDPOINT"),
		PhotoPathStyle:     strings.EqualFold(os.Getenv("PHOTO_S3_PATH_STYLE"), "true"),
		DefaultMonthlyRent: decimal.NewFromInt(1000),
	}

	if raw := os.Getenv("ACCESS_TOKEN_TTL"); raw != "" {
		ttl, err := time.ParseDuration(raw)
		if err != nil {
			return cfg, fmt.Errorf("ACCESS_TOKEN_TTL: %w", err)
		}
		if ttl <= 0 {
			return cfg, fmt.Errorf("ACCESS_TOKEN_TTL must be positive, got %s", raw)
		}
		cfg.AccessTokenTTL = ttl
	}

	if raw := os.Getenv("DEFAULT_MONTHLY_RENT"); raw != "" {
		rent, err := decimal.NewFromString(raw)
		if err != nil {
			return cfg, fmt.Errorf("DEFAULT_MONTHLY_RENT: %w", err)
		}
		cfg.DefaultMonthlyRent = rent
	}

	switch cfg.DBDriver {
	case "postgres":
		if cfg.DBConnectionString == "" {
			return cfg, fmt.Errorf("DB_CONNECTION_STRING environment variable is required")
		}
	case "sqlite":
		if cfg.DBConnectionString == "" {
			cfg.DBConnectionString = "residency.db"
		}
	default:
		return cfg, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	return cfg, nil
}

// RequireSecrets is checked by the serve command only; migrate and seed do
// not sign tokens.
func (c Config) RequireSecrets() error {
	if c.AccessTokenSecret == "" || c.RefreshTokenSecret == "" {
		return fmt.Errorf("ACCESS_TOKEN_SECRET and REFRESH_TOKEN_SECRET are required")
	}
	return nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
