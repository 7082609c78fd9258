// Package config resolves the program configuration from the config file,
// command-line flags and default locations
package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/ayoisaiah/track/internal/pathutil"
)

type (
	// Config holds all configuration settings
	Config struct {
		Backend Backend      `mapstructure:"backend"`
		Paths   PathsConfig  `mapstructure:"paths"`
		Hooks   HooksConfig  `mapstructure:"hooks"`
		Report  ReportConfig `mapstructure:"report"`
		System  SystemConfig `mapstructure:"-"`
	}

	// PathsConfig holds the storage locations. Empty values are replaced
	// with the platform defaults.
	PathsConfig struct {
		DB       string `mapstructure:"db"`
		Lockfile string `mapstructure:"lockfile"`
	}

	// HooksConfig holds the commands run after a session changes state
	HooksConfig struct {
		StartCmd string `mapstructure:"start_cmd"`
		StopCmd  string `mapstructure:"stop_cmd"`
		Notify   bool   `mapstructure:"notify"`
	}

	// ReportConfig holds report defaults
	ReportConfig struct {
		Window time.Duration `mapstructure:"window"`
	}

	// SystemConfig holds settings that only come from the environment
	SystemConfig struct {
		ConfigPath string
		LogPath    string
		Verbose    bool
		NoColor    bool
	}

	// Option is a function that modifies Config
	Option func(*Config) error

	// Backend names a storage implementation
	Backend string
)

const Version = "v0.3.0"

const (
	BackendJSON   Backend = "json"
	BackendBolt   Backend = "bolt"
	BackendSQLite Backend = "sqlite"
)

// Backends lists every supported storage implementation.
var Backends = []Backend{BackendJSON, BackendBolt, BackendSQLite}

const defaultWindow = 24 * time.Hour

// New creates a Config, applies opts in order and validates the result.
func New(opts ...Option) (*Config, error) {
	cfg := &Config{
		Backend: BackendJSON,
		Report: ReportConfig{
			Window: defaultWindow,
		},
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, errConfigOption.Wrap(err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, errConfigValidation.Wrap(err)
	}

	return cfg, nil
}

// WithDefaultPaths fills unset locations from pathutil. It must run after
// the backend is known since database backends use their own extension.
func WithDefaultPaths() Option {
	return func(c *Config) error {
		if err := pathutil.Initialize(); err != nil {
			return err
		}

		if c.System.ConfigPath == "" {
			c.System.ConfigPath = pathutil.ConfigFilePath()
		}

		if c.System.LogPath == "" {
			c.System.LogPath = pathutil.LogFilePath()
		}

		if c.Paths.DB == "" {
			c.Paths.DB = defaultDBPath(pathutil.DBFilePath(), c.Backend)
		}

		if c.Paths.Lockfile == "" {
			c.Paths.Lockfile = pathutil.LockFilePath()
		}

		return nil
	}
}

func defaultDBPath(jsonPath string, backend Backend) string {
	switch backend {
	case BackendBolt:
		return pathutil.StripExtension(jsonPath) + ".db"
	case BackendSQLite:
		return pathutil.StripExtension(jsonPath) + ".sqlite"
	default:
		return jsonPath
	}
}

// String summarises the resolved locations.
func (c *Config) String() string {
	return fmt.Sprintf(
		"backend=%s db=%s lockfile=%s config=%s log=%s",
		c.Backend,
		filepath.Clean(c.Paths.DB),
		filepath.Clean(c.Paths.Lockfile),
		c.System.ConfigPath,
		c.System.LogPath,
	)
}
