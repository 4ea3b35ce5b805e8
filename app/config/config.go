package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Storage drivers understood by DBDriver.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverBadger   = "badger"
)

type Config struct {
	Addr          string
	DBDriver      string
	DatabaseURL   string
	BadgerPath    string
	SecretKey     string
	SecureCookies bool
	StaticDir     string
}

// LoadConfig reads the configuration from the environment, after merging a
// .env file from the working directory when one exists.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Addr:        getenv("ADDR", ":5003"),
		DBDriver:    getenv("DB_DRIVER", DriverSQLite),
		DatabaseURL: getenv("DATABASE_URL", "posts.db"),
		BadgerPath:  getenv("BADGER_PATH", "data/badger"),
		SecretKey:   os.Getenv("SECRET_KEY"),
		StaticDir:   getenv("STATIC_DIR", "static"),
	}

	if v := os.Getenv("SECURE_COOKIES"); v != "" {
		secure, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid SECURE_COOKIES %q: %w", v, err)
		}
		cfg.SecureCookies = secure
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the driver is known and has what it needs.
func (c *Config) Validate() error {
	switch c.DBDriver {
	case DriverSQLite, DriverPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for the %s driver", c.DBDriver)
		}
	case DriverBadger:
		if c.BadgerPath == "" {
			return fmt.Errorf("BADGER_PATH is required for the badger driver")
		}
	default:
		return fmt.Errorf("unknown DB_DRIVER %q", c.DBDriver)
	}
	return nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
