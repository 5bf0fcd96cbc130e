// Package config loads server settings from the environment.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Storage backends
const (
	StorageMemory = "memory"
	StorageRedis  = "redis"
	StorageSQLite = "sqlite"
)

// HostModeSim runs the engine against the built-in simulated server
const HostModeSim = "sim"

// Server holds every setting of the forceteam server
type Server struct {
	HTTPHost string `env:"HTTP_HOST"`
	HTTPPort int    `env:"HTTP_PORT" envDefault:"8080"`

	TickInterval time.Duration `env:"TICK_INTERVAL" envDefault:"15625us"`
	HostMode     string        `env:"HOST_MODE" envDefault:"sim"`

	StorageType     string `env:"STORAGE_TYPE" envDefault:"memory"`
	JournalCapacity int    `env:"JOURNAL_CAPACITY" envDefault:"1000"`
	SQLitePath      string `env:"SQLITE_PATH" envDefault:"forceteam.db"`

	RedisURL            string `env:"REDIS_URL"`
	RedisBusEnabled     bool   `env:"REDIS_BUS_ENABLED" envDefault:"false"`
	RedisCommandChannel string `env:"REDIS_COMMAND_CHANNEL" envDefault:"forceteam:commands"`
	RedisReportChannel  string `env:"REDIS_REPORT_CHANNEL" envDefault:"forceteam:reports"`
	RedisReplyChannel   string `env:"REDIS_REPLY_CHANNEL" envDefault:"forceteam:replies"`

	AdminTokenHash string `env:"ADMIN_TOKEN_HASH"`
	LogLevel       string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load reads the server settings from the environment and validates them
func Load() (Server, error) {
	var cfg Server
	if err := env.Parse(&cfg); err != nil {
		return Server{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Server{}, err
	}
	return cfg, nil
}

// Validate checks settings that depend on each other
func (c Server) Validate() error {
	if c.HTTPPort <= 0 || c.HTTPPort > 65535 {
		return fmt.Errorf("HTTP_PORT out of range: %d", c.HTTPPort)
	}
	if c.TickInterval <= 0 {
		return fmt.Errorf("TICK_INTERVAL must be positive")
	}
	if c.HostMode != HostModeSim {
		return fmt.Errorf("unsupported HOST_MODE %q: only %q is available", c.HostMode, HostModeSim)
	}
	switch c.StorageType {
	case StorageMemory, StorageSQLite:
	case StorageRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("REDIS_URL required when STORAGE_TYPE=redis")
		}
	default:
		return fmt.Errorf("invalid STORAGE_TYPE %q: must be memory, redis or sqlite", c.StorageType)
	}
	if c.RedisBusEnabled && c.RedisURL == "" {
		return fmt.Errorf("REDIS_URL required when REDIS_BUS_ENABLED=true")
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// SlogLevel converts LOG_LEVEL to a slog level
func (c Server) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(c.LogLevel))); err != nil {
		return 0, fmt.Errorf("invalid LOG_LEVEL %q", c.LogLevel)
	}
	return level, nil
}
