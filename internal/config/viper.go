package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/ayoisaiah/track/internal/osutil"
)

// viperKeys defines the mapping between config keys and their Viper counterparts.
const (
	keyBackend      = "backend"
	keyDBPath       = "paths.db"
	keyLockfilePath = "paths.lockfile"
	keyStartCmd     = "hooks.start_cmd"
	keyStopCmd      = "hooks.stop_cmd"
	keyNotify       = "hooks.notify"
	keyReportWindow = "report.window"
)

// WithViperConfig returns an Option that loads configuration from the yaml
// file at configPath, writing a file of defaults first if none exists.
func WithViperConfig(configPath string) Option {
	return func(c *Config) error {
		v := newViper(configPath)

		setDefaults(v)

		c.System.ConfigPath = configPath

		err := v.ReadInConfig()
		if err == nil {
			return loadViperConfig(v, c)
		}

		if !errors.Is(err, os.ErrNotExist) {
			return errReadConfig.Wrap(err)
		}

		err = os.MkdirAll(filepath.Dir(configPath), osutil.DirPermission)
		if err != nil {
			return errWriteConfig.Wrap(err)
		}

		if err := v.WriteConfig(); err != nil {
			return errWriteConfig.Wrap(err)
		}

		return loadViperConfig(v, c)
	}
}

func newViper(configPath string) *viper.Viper {
	v := viper.New()

	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	return v
}

// setDefaults registers the value of every supported key.
func setDefaults(v *viper.Viper) {
	v.SetDefault(keyBackend, string(BackendJSON))
	v.SetDefault(keyDBPath, "")
	v.SetDefault(keyLockfilePath, "")
	v.SetDefault(keyStartCmd, "")
	v.SetDefault(keyStopCmd, "")
	v.SetDefault(keyNotify, false)
	v.SetDefault(keyReportWindow, defaultWindow.String())
}

// loadViperConfig loads configuration from Viper into the Config struct.
func loadViperConfig(v *viper.Viper, c *Config) error {
	if err := v.Unmarshal(c); err != nil {
		return fmt.Errorf("decoding %s: %w", v.ConfigFileUsed(), err)
	}

	return nil
}

// Save writes the persistent parts of c to configPath.
func Save(c *Config, configPath string) error {
	v := newViper(configPath)

	v.Set(keyBackend, string(c.Backend))
	v.Set(keyDBPath, c.Paths.DB)
	v.Set(keyLockfilePath, c.Paths.Lockfile)
	v.Set(keyStartCmd, c.Hooks.StartCmd)
	v.Set(keyStopCmd, c.Hooks.StopCmd)
	v.Set(keyNotify, c.Hooks.Notify)
	v.Set(keyReportWindow, c.Report.Window.String())

	err := os.MkdirAll(filepath.Dir(configPath), osutil.DirPermission)
	if err != nil {
		return errWriteConfig.Wrap(err)
	}

	if err := v.WriteConfig(); err != nil {
		return errWriteConfig.Wrap(err)
	}

	return nil
}
