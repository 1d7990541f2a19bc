// Package config loads feedmarks settings from the environment and an
// optional .env file.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/joho/godotenv"
	"go-simpler.org/env"
)

type Config struct {
	DBPath     string        `env:"FEEDMARKS_DB" default:"feedmarks.db"`
	Host       string        `env:"FEEDMARKS_HOST" default:"127.0.0.1"`
	Port       int           `env:"FEEDMARKS_PORT" default:"5000"`
	OpenDelay  time.Duration `env:"FEEDMARKS_OPEN_DELAY" default:"1250ms"`
	LogLevel   string        `env:"FEEDMARKS_LOG_LEVEL" default:"info"`
	LogFormat  string        `env:"FEEDMARKS_LOG_FORMAT" default:"text"`
	ChromePath string        `env:"FEEDMARKS_CHROME_PATH"`
}

// Load reads .env (if present) and then the process environment. The result
// is not validated; callers apply their overrides and then call Validate.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, using environment variables")
	}

	var cfg Config
	if err := env.Load(&cfg, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.DBPath == "" {
		return errors.New("FEEDMARKS_DB must not be empty")
	}
	// 0 asks the OS for a free port.
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("port must be between 0 and 65535, got %d", c.Port)
	}
	if c.OpenDelay < 0 {
		return fmt.Errorf("open delay must not be negative, got %s", c.OpenDelay)
	}
	return nil
}

// Addr is the host:port the service listens on.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// URL is the loopback address the launcher opens in the browser.
func (c *Config) URL() string {
	return fmt.Sprintf("http://%s/", c.Addr())
}
