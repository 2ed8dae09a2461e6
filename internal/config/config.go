// Package config loads the planner's YAML configuration and applies
// environment overrides on top of it.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPath is where the CLI looks for a config file when none is given.
const DefaultPath = "menuplanner.yaml"

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Planner  PlannerConfig  `yaml:"planner"`
	CSRF     CSRFConfig     `yaml:"csrf"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Path string `yaml:"path"`
}

type PlannerConfig struct {
	// Timezone decides which calendar day is "today". Empty means the
	// host's local zone.
	Timezone string `yaml:"timezone"`
}

type CSRFConfig struct {
	TokenTTL        time.Duration `yaml:"token_ttl"`
	CleanupInterval time.Duration `yaml:"cleanup_interval"`
}

type LoggingConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            "0.0.0.0:8080",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    10 * time.Second,
			ShutdownTimeout: 5 * time.Second,
		},
		Database: DatabaseConfig{Path: "./menu.db"},
		CSRF: CSRFConfig{
			TokenTTL:        30 * time.Minute,
			CleanupInterval: 10 * time.Minute,
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Load reads path over the defaults. A missing file is not an error.
// Environment overrides are applied last, then the result is validated.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.applyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("MENU_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("MENU_DB_PATH"); v != "" {
		c.Database.Path = v
	}
	if v := os.Getenv("MENU_TIMEZONE"); v != "" {
		c.Planner.Timezone = v
	}
	if v := os.Getenv("MENU_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}

func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Server.Addr) == "" {
		errs = append(errs, errors.New("server.addr is required"))
	}
	if strings.TrimSpace(c.Database.Path) == "" {
		errs = append(errs, errors.New("database.path is required"))
	}
	if c.CSRF.TokenTTL <= 0 {
		errs = append(errs, errors.New("csrf.token_ttl must be positive"))
	}
	if c.CSRF.CleanupInterval <= 0 {
		errs = append(errs, errors.New("csrf.cleanup_interval must be positive"))
	}
	if _, err := c.Location(); err != nil {
		errs = append(errs, err)
	}
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("logging.level %q is not one of debug, info, warn, error", c.Logging.Level))
	}
	return errors.Join(errs...)
}

// Location resolves the planner timezone.
func (c *Config) Location() (*time.Location, error) {
	if c.Planner.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Planner.Timezone)
	if err != nil {
		return nil, fmt.Errorf("planner.timezone: %w", err)
	}
	return loc, nil
}
