// Package config loads service configuration from an optional YAML file and
// environment variables, in that order of precedence (environment wins).
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/Shivanand-hulikatti/beoflow/internal/database"
)

// Storage backends.
const (
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
)

// Config holds every runtime setting.
type Config struct {
	Port      string `yaml:"port" validate:"required,numeric"`
	LogLevel  string `yaml:"logLevel" validate:"oneof=trace debug info warn warning error"`
	LogFormat string `yaml:"logFormat" validate:"oneof=text json"`

	Store StoreConfig `yaml:"store"`

	// DistributionDelay is how long a distribution waits before it is
	// applied; the caller can cancel during the wait.
	DistributionDelay time.Duration `yaml:"distributionDelay" validate:"gte=0"`
}

// StoreConfig selects and configures the key/value backend.
type StoreConfig struct {
	Backend    string          `yaml:"backend" validate:"oneof=memory redis postgres sqlite"`
	KeyPrefix  string          `yaml:"keyPrefix"`
	RedisURL   string          `yaml:"redisUrl" validate:"required_if=Backend redis"`
	SQLitePath string          `yaml:"sqlitePath" validate:"required_if=Backend sqlite"`
	Postgres   database.Config `yaml:"postgres"`
}

// Default returns the local-development configuration.
func Default() Config {
	return Config{
		Port:      "8080",
		LogLevel:  "info",
		LogFormat: "text",
		Store: StoreConfig{
			Backend:    BackendSQLite,
			SQLitePath: "data/beoflow.db",
			RedisURL:   "redis://localhost:6379/0",
			Postgres: database.Config{
				Host:     "localhost",
				Port:     "5432",
				User:     "postgres",
				Password: "postgres",
				DBName:   "beoflow",
				SSLMode:  "disable",
			},
		},
		DistributionDelay: time.Second,
	}
}

// Load builds the configuration. path names a YAML file; when empty the
// BEO_CONFIG variable is consulted, and when that is empty too no file is read.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv("BEO_CONFIG")
	}
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	c.Port = getEnv("PORT", c.Port)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.LogFormat = getEnv("LOG_FORMAT", c.LogFormat)

	c.Store.Backend = getEnv("STORE_BACKEND", c.Store.Backend)
	c.Store.KeyPrefix = getEnv("STORE_KEY_PREFIX", c.Store.KeyPrefix)
	c.Store.RedisURL = getEnv("REDIS_URL", c.Store.RedisURL)
	c.Store.SQLitePath = getEnv("SQLITE_PATH", c.Store.SQLitePath)

	pg := &c.Store.Postgres
	pg.Host = getEnv("DB_HOST", pg.Host)
	pg.Port = getEnv("DB_PORT", pg.Port)
	pg.User = getEnv("DB_USER", pg.User)
	pg.Password = getEnv("DB_PASSWORD", pg.Password)
	pg.DBName = getEnv("DB_NAME", pg.DBName)
	pg.SSLMode = getEnv("DB_SSLMODE", pg.SSLMode)

	if v := os.Getenv("DISTRIBUTION_DELAY"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid DISTRIBUTION_DELAY: %w", err)
		}
		c.DistributionDelay = d
	}
	return nil
}

// Validate checks field constraints.
func (c Config) Validate() error {
	err := validator.New().Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return fmt.Errorf("invalid config: %s failed %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value())
	}
	return fmt.Errorf("invalid config: %w", err)
}

// NewLogger builds a logrus logger with the configured level and format.
func (c Config) NewLogger() (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	log := logrus.New()
	log.SetLevel(level)
	if c.LogFormat == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return log, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
