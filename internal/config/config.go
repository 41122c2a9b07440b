package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const defaultHTTPPort = "8080"

// Config defines fleetgrid service configuration.
type Config struct {
	HTTP struct {
		Port string `yaml:"port" env:"FLEETGRID_HTTP_PORT"`
	} `yaml:"http"`
	Database struct {
		DSN string `yaml:"dsn" env:"FLEETGRID_POSTGRES_DSN"`
	} `yaml:"database"`
	Redis struct {
		Addr           string `yaml:"addr" env:"FLEETGRID_REDIS_ADDR"`
		Password       string `yaml:"password" env:"FLEETGRID_REDIS_PASSWORD"`
		LiveTTLSeconds int    `yaml:"live_ttl_seconds" env:"FLEETGRID_LIVE_TTL_SECONDS"`
	} `yaml:"redis"`
}

// Load hydrates configuration from an optional YAML file and environment overrides.
func Load() (*Config, error) {
	cfg := &Config{}
	cfg.HTTP.Port = defaultHTTPPort

	if err := loadInto(cfg); err != nil {
		return nil, err
	}

	if strings.TrimSpace(cfg.Database.DSN) == "" {
		return nil, errors.New("config: database dsn required")
	}
	if strings.TrimSpace(cfg.Redis.Addr) == "" {
		return nil, errors.New("config: redis addr required")
	}
	return cfg, nil
}

// HTTPAddress returns :port style.
func (c *Config) HTTPAddress() string {
	port := strings.TrimSpace(c.HTTP.Port)
	if port == "" {
		port = defaultHTTPPort
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return fmt.Sprintf(":%s", port)
}

// LiveStatusTTL returns the live-status key lifetime; zero means keys never expire.
func (c *Config) LiveStatusTTL() time.Duration {
	if c.Redis.LiveTTLSeconds <= 0 {
		return 0
	}
	return time.Duration(c.Redis.LiveTTLSeconds) * time.Second
}
