// Package config reads service and client settings from the environment,
// optionally seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"github.com/erazemk/inventorypro/internal/kv"
)

// Config represents the full application configuration surface.
type Config struct {
	Server    ServerConfig
	Storage   kv.Options
	Reporting ReportingConfig
	Client    ClientConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Addr string
	// LoginDelay slows down login and signup responses.
	LoginDelay time.Duration
	LogPath    string
}

// ReportingConfig holds scheduler-related settings. An empty CronSchedule
// disables scheduled reports.
type ReportingConfig struct {
	CronSchedule string
	Dir          string
	Timezone     string
}

// ClientConfig holds settings used by the CLI client commands.
type ClientConfig struct {
	ServerURL   string
	SessionPath string
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// A missing .env is fine when everything comes from the environment.
		_ = godotenv.Load()
	}

	loginDelay, err := time.ParseDuration(getenvWithDefault("INVENTORYPRO_LOGIN_DELAY", "0s"))
	if err != nil {
		return nil, fmt.Errorf("INVENTORYPRO_LOGIN_DELAY: %w", err)
	}
	redisDB, err := strconv.Atoi(getenvWithDefault("INVENTORYPRO_REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("INVENTORYPRO_REDIS_DB: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Addr:       getenvWithDefault("INVENTORYPRO_ADDR", ":8080"),
			LoginDelay: loginDelay,
			LogPath:    os.Getenv("INVENTORYPRO_LOG"),
		},
		Storage: kv.Options{
			Driver:        getenvWithDefault("INVENTORYPRO_STORAGE", kv.DriverSQLite),
			Path:          getenvWithDefault("INVENTORYPRO_DB", "inventorypro.sqlite3"),
			RedisAddr:     getenvWithDefault("INVENTORYPRO_REDIS_ADDR", "localhost:6379"),
			RedisPassword: os.Getenv("INVENTORYPRO_REDIS_PASSWORD"),
			RedisDB:       redisDB,
			RedisPrefix:   getenvWithDefault("INVENTORYPRO_REDIS_PREFIX", "inventorypro:"),
			MongoURI:      getenvWithDefault("INVENTORYPRO_MONGO_URI", "mongodb://localhost:27017"),
			MongoDatabase: getenvWithDefault("INVENTORYPRO_MONGO_DB", "inventorypro"),
		},
		Reporting: ReportingConfig{
			CronSchedule: os.Getenv("INVENTORYPRO_REPORT_CRON"),
			Dir:          getenvWithDefault("INVENTORYPRO_REPORT_DIR", "reports"),
			Timezone:     getenvWithDefault("INVENTORYPRO_TIMEZONE", "UTC"),
		},
		Client: ClientConfig{
			ServerURL:   getenvWithDefault("INVENTORYPRO_SERVER", "http://localhost:8080"),
			SessionPath: getenvWithDefault("INVENTORYPRO_SESSION", defaultSessionPath()),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Addr == "" {
		return errors.New("INVENTORYPRO_ADDR must be provided")
	}
	if c.Server.LoginDelay < 0 {
		return errors.New("INVENTORYPRO_LOGIN_DELAY must not be negative")
	}

	if !slices.Contains(kv.Drivers, c.Storage.Driver) {
		return fmt.Errorf("INVENTORYPRO_STORAGE must be one of %v, got %q", kv.Drivers, c.Storage.Driver)
	}
	switch {
	case c.Storage.Driver == kv.DriverSQLite && c.Storage.Path == "":
		return errors.New("INVENTORYPRO_DB must be provided for sqlite storage")
	case c.Storage.Driver == kv.DriverRedis && c.Storage.RedisAddr == "":
		return errors.New("INVENTORYPRO_REDIS_ADDR must be provided for redis storage")
	case c.Storage.Driver == kv.DriverMongo && c.Storage.MongoURI == "":
		return errors.New("INVENTORYPRO_MONGO_URI must be provided for mongo storage")
	case c.Storage.Driver == kv.DriverMongo && c.Storage.MongoDatabase == "":
		return errors.New("INVENTORYPRO_MONGO_DB must be provided for mongo storage")
	}

	if c.Reporting.CronSchedule != "" {
		if _, err := cron.ParseStandard(c.Reporting.CronSchedule); err != nil {
			return fmt.Errorf("INVENTORYPRO_REPORT_CRON: %w", err)
		}
		if c.Reporting.Dir == "" {
			return errors.New("INVENTORYPRO_REPORT_DIR must be provided when reports are scheduled")
		}
	}
	if _, err := time.LoadLocation(c.Reporting.Timezone); err != nil {
		return fmt.Errorf("INVENTORYPRO_TIMEZONE: %w", err)
	}

	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func defaultSessionPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".inventorypro-session.sqlite3"
	}
	return filepath.Join(dir, "inventorypro", "session.sqlite3")
}
