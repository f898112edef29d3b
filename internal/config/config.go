package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config aggregates every tunable of the service.
type Config struct {
	Server ServerConfig
	Bot    BotConfig
	Log    LogConfig
}

// ServerConfig describes the HTTP listener.
type ServerConfig struct {
	Port           string   `env:"PORT" envDefault:"8080"`
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
}

// BotConfig drives the reply engine and session lifecycle.
type BotConfig struct {
	ReplyDelayMS  int    `env:"REPLY_DELAY_MS" envDefault:"1000"`
	SessionTTLMin int    `env:"SESSION_TTL_MINUTES" envDefault:"30"`
	ReapSpec      string `env:"SESSION_REAP_SPEC" envDefault:"@every 5m"`
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load parses configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	if cfg.Bot.ReplyDelayMS < 0 {
		return nil, fmt.Errorf("REPLY_DELAY_MS must not be negative, got %d", cfg.Bot.ReplyDelayMS)
	}
	if cfg.Bot.SessionTTLMin < 1 {
		return nil, fmt.Errorf("SESSION_TTL_MINUTES must be at least 1, got %d", cfg.Bot.SessionTTLMin)
	}
	if _, err := cfg.Server.Addr(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Addr resolves the listen address, accepting "8080", ":8080" or
// "127.0.0.1:8080" PORT values.
func (c ServerConfig) Addr() (string, error) {
	port := strings.TrimSpace(c.Port)
	if port == "" {
		port = "8080"
	}

	if strings.Contains(port, ":") {
		return port, nil
	}

	if strings.Contains(port, " ") {
		return "", fmt.Errorf("invalid PORT value: %q", port)
	}

	return ":" + port, nil
}

// ReplyDelay returns the simulated thinking latency before a bot reply.
func (c BotConfig) ReplyDelay() time.Duration {
	return time.Duration(c.ReplyDelayMS) * time.Millisecond
}

// SessionTTL returns how long an inactive session survives before the
// reaper tears it down.
func (c BotConfig) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLMin) * time.Minute
}
