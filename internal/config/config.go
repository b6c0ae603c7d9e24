// Package config loads runtime settings for the web server from the environment.
package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Config holds the web server settings.
type Config struct {
	// Port prefers HUMOR_WEB_PORT, then Cloud Run's PORT.
	Port         string `env:"HUMOR_WEB_PORT"`
	CloudRunPort string `env:"PORT" envDefault:"8080"`
	Env          string `env:"HUMOR_WEB_ENV" envDefault:"dev"`
	Dev          bool   `env:"HUMOR_WEB_DEV"`
	TemplatesDir string `env:"HUMOR_WEB_TEMPLATES_DIR" envDefault:"templates"`
	BaseURL      string `env:"HUMOR_WEB_BASE_URL"`

	Analytics Analytics
}

// Analytics holds client instrumentation configuration surfaced to templates.
type Analytics struct {
	GA4MeasurementID string `env:"HUMOR_WEB_GA_MEASUREMENT_ID"` // e.g. G-XXXXXXXXXX
	GTMContainerID   string `env:"HUMOR_WEB_GTM_CONTAINER_ID"`  // e.g. GTM-XXXXXXX
	Debug            bool   `env:"HUMOR_WEB_ANALYTICS_DEBUG"`
}

// Load parses Config from environment variables.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	return cfg, nil
}

// Addr is the listen address derived from the port settings.
func (c Config) Addr() string {
	if c.Port != "" {
		return ":" + c.Port
	}
	return ":" + c.CloudRunPort
}

// IsProd reports whether the server runs in production.
func (c Config) IsProd() bool {
	return strings.EqualFold(c.Env, "prod")
}
