// Package config loads server settings from the environment, after merging
// in an optional .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

type Config struct {
	Port         int
	ClientOrigin string
	LogLevel     zerolog.Level
	// ArchiveDSN is a sqlite file path; empty keeps archives in memory.
	ArchiveDSN          string
	MatchmakingInterval time.Duration
}

// Addr is the fiber listen address.
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Load reads .env files (missing ones are ignored) then the environment.
func Load(envFiles ...string) (Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load env file: %w", err)
	}
	return FromLookup(os.LookupEnv)
}

// FromLookup builds a Config from lookup, applying defaults for unset keys.
func FromLookup(lookup func(string) (string, bool)) (Config, error) {
	get := func(key, def string) string {
		if v, ok := lookup(key); ok && v != "" {
			return v
		}
		return def
	}

	port, err := strconv.Atoi(get("PORT", "3000"))
	if err != nil || port <= 0 || port > 65535 {
		return Config{}, fmt.Errorf("invalid PORT %q", get("PORT", ""))
	}
	level, err := zerolog.ParseLevel(get("LOG_LEVEL", "info"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	interval, err := time.ParseDuration(get("MATCHMAKING_INTERVAL", "1s"))
	if err != nil || interval <= 0 {
		return Config{}, fmt.Errorf("invalid MATCHMAKING_INTERVAL %q", get("MATCHMAKING_INTERVAL", ""))
	}

	return Config{
		Port:                port,
		ClientOrigin:        get("CLIENT_ORIGIN", "http://localhost:5173"),
		LogLevel:            level,
		ArchiveDSN:          get("ARCHIVE_DSN", ""),
		MatchmakingInterval: interval,
	}, nil
}
