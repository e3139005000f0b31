package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultCount is how many departures are listed when no count is given.
const DefaultCount = 10

// Config holds application configuration. Values come from, in increasing
// precedence: built-in defaults, an optional YAML file named by
// NEXTBUS_CONFIG, the environment (a .env file is loaded first), and CLI
// flags applied by the caller.
type Config struct {
	DataDir         string        `yaml:"data_dir" validate:"required"`
	RealtimeURL     string        `yaml:"realtime_url" validate:"omitempty"`
	RealtimeTimeout time.Duration `yaml:"realtime_timeout" validate:"gt=0"`
	Timezone        string        `yaml:"timezone"`
	DefaultCount    int           `yaml:"default_count" validate:"gte=0"`
	LogLevel        string        `yaml:"log_level" validate:"oneof=debug info warn error"`
	SentryDSN       string        `yaml:"sentry_dsn" validate:"omitempty,url"`
	Environment     string        `yaml:"environment"`
	MetricsFile     string        `yaml:"metrics_file"`

	Location *time.Location `yaml:"-" validate:"-"`
}

func defaults() *Config {
	return &Config{
		DataDir:         "data",
		RealtimeTimeout: 15 * time.Second,
		DefaultCount:    DefaultCount,
		LogLevel:        "warn",
		Environment:     "production",
	}
}

// Load reads configuration from the config file and environment variables
// with defaults, then validates it.
func Load() (*Config, error) {
	// Load .env into environment (ignore if missing)
	_ = godotenv.Load()

	cfg := defaults()

	if path := os.Getenv("NEXTBUS_CONFIG"); path != "" {
		if err := cfg.readFile(path); err != nil {
			return nil, err
		}
	}

	cfg.DataDir = envStr("NEXTBUS_DATA", envStr("BUS_DATA", cfg.DataDir))
	cfg.RealtimeURL = envStr("NEXTBUS_REALTIME_URL", cfg.RealtimeURL)
	cfg.RealtimeTimeout = envDuration("NEXTBUS_REALTIME_TIMEOUT", cfg.RealtimeTimeout)
	cfg.Timezone = envStr("NEXTBUS_TZ", cfg.Timezone)
	cfg.DefaultCount = envInt("NEXTBUS_COUNT", cfg.DefaultCount)
	cfg.LogLevel = strings.ToLower(envStr("NEXTBUS_LOG_LEVEL", cfg.LogLevel))
	cfg.SentryDSN = envStr("SENTRY_DSN", cfg.SentryDSN)
	cfg.Environment = envStr("NEXTBUS_ENV", cfg.Environment)
	cfg.MetricsFile = envStr("NEXTBUS_METRICS_FILE", cfg.MetricsFile)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) readFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// Validate checks field constraints and resolves the time zone.
func (c *Config) Validate() error {
	v := validator.New()
	if err := v.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("invalid config: %s fails %q", fe.Field(), fe.Tag())
		}
		return fmt.Errorf("invalid config: %w", err)
	}

	if c.Timezone == "" {
		c.Location = time.Local
		return nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return fmt.Errorf("invalid timezone: %w", err)
	}
	c.Location = loc
	return nil
}

// SlogLevel maps LogLevel to a slog.Level.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
