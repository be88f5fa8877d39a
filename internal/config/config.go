// Package config handles configuration loading and defaults.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
)

// Default values.
const (
	DefaultHTTPPort    = 3000
	DefaultDBPath      = "todoapp.db"
	DefaultNATSURL     = "nats://127.0.0.1:4222"
	DefaultImageBucket = "todo-images"
	DefaultJWTIssuer   = "todo-app"
	DefaultAccessTTL   = 15 * time.Minute
	DefaultRefreshTTL  = 7 * 24 * time.Hour
)

// JWTConfig holds token-signing settings.
type JWTConfig struct {
	Secret     string        `toml:"secret"`
	Issuer     string        `toml:"issuer"`
	AccessTTL  time.Duration `toml:"-"`
	RefreshTTL time.Duration `toml:"-"`

	// Durations as strings in the TOML file ("15m", "168h").
	AccessTTLRaw  string `toml:"access_ttl"`
	RefreshTTLRaw string `toml:"refresh_ttl"`
}

// Config holds the full configuration for the application.
type Config struct {
	HTTPPort    int       `toml:"http_port"`
	DBPath      string    `toml:"db_path"`
	NATSURL     string    `toml:"nats_url"`
	ImageBucket string    `toml:"image_bucket"`
	JWT         JWTConfig `toml:"jwt"`
}

// Default returns a Config populated with default values.
func Default() *Config {
	return &Config{
		HTTPPort:    DefaultHTTPPort,
		DBPath:      DefaultDBPath,
		NATSURL:     DefaultNATSURL,
		ImageBucket: DefaultImageBucket,
		JWT: JWTConfig{
			Secret:     "change-me-in-production",
			Issuer:     DefaultJWTIssuer,
			AccessTTL:  DefaultAccessTTL,
			RefreshTTL: DefaultRefreshTTL,
		},
	}
}

// Load builds the configuration: defaults, then the optional TOML file,
// then environment overrides. The file path comes from TODOAPP_CONFIG or
// defaults to todoapp.toml; a missing file is not an error.
func Load() (*Config, error) {
	cfg := Default()

	path := os.Getenv("TODOAPP_CONFIG")
	if path == "" {
		path = "todoapp.toml"
	}
	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if cfg.JWT.AccessTTLRaw != "" {
		d, err := time.ParseDuration(cfg.JWT.AccessTTLRaw)
		if err != nil {
			return nil, fmt.Errorf("invalid jwt.access_ttl: %w", err)
		}
		cfg.JWT.AccessTTL = d
	}
	if cfg.JWT.RefreshTTLRaw != "" {
		d, err := time.ParseDuration(cfg.JWT.RefreshTTLRaw)
		if err != nil {
			return nil, fmt.Errorf("invalid jwt.refresh_ttl: %w", err)
		}
		cfg.JWT.RefreshTTL = d
	}

	applyEnv(cfg)
	return cfg, nil
}

// applyEnv overrides config values from TODOAPP_* environment variables.
func applyEnv(cfg *Config) {
	if v := os.Getenv("TODOAPP_HTTP_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.HTTPPort = port
		}
	}
	if v := os.Getenv("TODOAPP_DB_PATH"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("TODOAPP_NATS_URL"); v != "" {
		cfg.NATSURL = v
	}
	if v := os.Getenv("TODOAPP_IMAGE_BUCKET"); v != "" {
		cfg.ImageBucket = v
	}
	if v := os.Getenv("TODOAPP_JWT_SECRET"); v != "" {
		cfg.JWT.Secret = v
	}
	if v := os.Getenv("TODOAPP_JWT_ISSUER"); v != "" {
		cfg.JWT.Issuer = v
	}
}
