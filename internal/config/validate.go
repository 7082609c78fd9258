package config

import (
	"slices"
	"strings"
)

// Validate performs validation checks on the Config struct and its fields.
func (c *Config) Validate() error {
	if !slices.Contains(Backends, c.Backend) {
		names := make([]string, len(Backends))
		for i, b := range Backends {
			names[i] = string(b)
		}

		return errUnknownBackend.Fmt(c.Backend, strings.Join(names, ", "))
	}

	if c.Report.Window <= 0 {
		return errInvalidWindow.Fmt(c.Report.Window)
	}

	if strings.HasPrefix(c.Paths.DB, "~") {
		return errTildePath.Fmt("database", c.Paths.DB)
	}

	if strings.HasPrefix(c.Paths.Lockfile, "~") {
		return errTildePath.Fmt("lockfile", c.Paths.Lockfile)
	}

	return nil
}
