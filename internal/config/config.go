// Package config loads and validates dataspec configuration from a YAML file
// and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"go.uber.org/multierr"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file read when no path is given.
const DefaultPath = "dataspec.yaml"

// Config is the root configuration.
type Config struct {
	Paging PagingConfig `yaml:"paging"`
	Store  StoreConfig  `yaml:"store"`
	Log    LogConfig    `yaml:"log"`
}

// PagingConfig describes list pagination.
type PagingConfig struct {
	DefaultPageSize int `yaml:"default_page_size"`
	MaxPageNumbers  int `yaml:"max_page_numbers"`
}

// StoreConfig describes the local SQLite store.
type StoreConfig struct {
	Path string `yaml:"path"`
}

// LogConfig describes logging.
type LogConfig struct {
	Level string `yaml:"level"`
}

// Defaults returns a Config with the default values.
func Defaults() *Config {
	return &Config{
		Paging: PagingConfig{
			DefaultPageSize: 20,
			MaxPageNumbers:  10,
		},
		Store: StoreConfig{
			Path: "dataspec.db",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads a YAML config file over the defaults, applies environment
// variable overrides, and validates the result.
//
// An empty path reads DefaultPath and tolerates its absence. An explicit
// path must exist.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parsing %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
	default:
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, fmt.Errorf("config: environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validation: %w", err)
	}

	return cfg, nil
}

// Validate checks that all fields are in range.
func (c *Config) Validate() error {
	var err error

	if c.Paging.DefaultPageSize < 1 {
		err = multierr.Append(err, errors.New("paging.default_page_size must be positive"))
	}
	if c.Paging.MaxPageNumbers < 1 {
		err = multierr.Append(err, errors.New("paging.max_page_numbers must be positive"))
	}
	if c.Store.Path == "" {
		err = multierr.Append(err, errors.New("store.path is required"))
	}
	if _, perr := zapcore.ParseLevel(c.Log.Level); perr != nil {
		err = multierr.Append(err, fmt.Errorf("log.level %q is not a valid level", c.Log.Level))
	}

	return err
}

// applyEnvOverrides reads DATASPEC_* environment variables and overrides
// config values.
func applyEnvOverrides(cfg *Config) error {
	var err error

	if v := os.Getenv("DATASPEC_PAGING_DEFAULT_PAGE_SIZE"); v != "" {
		n, perr := strconv.Atoi(v)
		if perr != nil {
			err = multierr.Append(err, fmt.Errorf("DATASPEC_PAGING_DEFAULT_PAGE_SIZE: %w", perr))
		} else {
			cfg.Paging.DefaultPageSize = n
		}
	}
	if v := os.Getenv("DATASPEC_PAGING_MAX_PAGE_NUMBERS"); v != "" {
		n, perr := strconv.Atoi(v)
		if perr != nil {
			err = multierr.Append(err, fmt.Errorf("DATASPEC_PAGING_MAX_PAGE_NUMBERS: %w", perr))
		} else {
			cfg.Paging.MaxPageNumbers = n
		}
	}
	if v := os.Getenv("DATASPEC_STORE_PATH"); v != "" {
		cfg.Store.Path = v
	}
	if v := os.Getenv("DATASPEC_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}

	return err
}
