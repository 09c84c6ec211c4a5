// Package config loads the relay configuration from the environment.
package config

import (
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config contains runtime configuration values. It is read once at startup and
// never mutated afterwards.
type Config struct {
	Env      string `env:"ENV" env-default:"production"`
	LogLevel string `env:"LOG_LEVEL" env-default:"info"`

	HTTP    HTTPConfig
	Meta    MetaConfig
	Graph   GraphConfig
	Discord DiscordConfig

	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" env-default:"30s"`
	TokenCheckCron string        `env:"TOKEN_CHECK_CRON"`
}

// HTTPConfig describes the inbound server.
type HTTPConfig struct {
	Host            string        `env:"HOST" env-default:"0.0.0.0"`
	Port            string        `env:"PORT" env-default:"3000"`
	MaxBodyBytes    int64         `env:"MAX_BODY_BYTES" env-default:"1048576"`
	MaxConnections  int           `env:"MAX_CONNECTIONS" env-default:"0"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// Addr returns the listen address.
func (h HTTPConfig) Addr() string { return net.JoinHostPort(h.Host, h.Port) }

// MetaConfig holds the webhook subscription secrets.
type MetaConfig struct {
	VerifyToken string `env:"VERIFY_TOKEN" env-required:"true"`
	AppSecret   string `env:"APP_SECRET" env-required:"true"`
}

// GraphConfig points at the content API.
type GraphConfig struct {
	BaseURL         string `env:"GRAPH_API_BASE_URL" env-default:"https://graph.facebook.com"`
	Version         string `env:"GRAPH_API_VERSION" env-default:"v18.0"`
	PageAccessToken string `env:"PAGE_ACCESS_TOKEN" env-required:"true"`
}

// DiscordConfig holds the downstream webhook.
type DiscordConfig struct {
	WebhookURL string `env:"DISCORD_WEBHOOK_URL" env-required:"true"`
}

const defaultTimeout = 30 * time.Second

// Load builds a Config from environment variables. Missing required values fail
// startup.
func Load() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}

	// cleanenv accepts a variable that is set but empty.
	for name, value := range map[string]string{
		"VERIFY_TOKEN":        cfg.Meta.VerifyToken,
		"APP_SECRET":          cfg.Meta.AppSecret,
		"PAGE_ACCESS_TOKEN":   cfg.Graph.PageAccessToken,
		"DISCORD_WEBHOOK_URL": cfg.Discord.WebhookURL,
	} {
		if strings.TrimSpace(value) == "" {
			return nil, fmt.Errorf("%s is required", name)
		}
	}

	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = defaultTimeout
	}
	if cfg.HTTP.MaxBodyBytes <= 0 {
		return nil, fmt.Errorf("MAX_BODY_BYTES must be positive, got %d", cfg.HTTP.MaxBodyBytes)
	}
	if cfg.HTTP.MaxConnections < 0 {
		return nil, fmt.Errorf("MAX_CONNECTIONS must not be negative, got %d", cfg.HTTP.MaxConnections)
	}

	return &cfg, nil
}
