package config

import (
	"strings"

	"github.com/urfave/cli/v2"
)

// CLIOptions represents command-line configuration options.
type CLIOptions struct {
	DB       string
	Lockfile string
	Backend  string
	Verbose  bool
	NoColor  bool
}

// WithCLIConfig returns an Option that loads configuration from CLI flags.
func WithCLIConfig(ctx *cli.Context) Option {
	return func(c *Config) error {
		opts := CLIOptions{
			DB:       ctx.String("db-dir"),
			Lockfile: ctx.String("lockfile"),
			Backend:  ctx.String("backend"),
			Verbose:  ctx.Bool("verbose"),
			NoColor:  ctx.Bool("no-color"),
		}

		return applyCLIOptions(c, opts)
	}
}

// applyCLIOptions applies CLI options to the config. Unset flags keep the
// values loaded from the config file.
func applyCLIOptions(c *Config, opts CLIOptions) error {
	if opts.Backend != "" {
		c.Backend = Backend(strings.ToLower(strings.TrimSpace(opts.Backend)))
	}

	if opts.DB != "" {
		c.Paths.DB = opts.DB
	}

	if opts.Lockfile != "" {
		c.Paths.Lockfile = opts.Lockfile
	}

	c.System.Verbose = opts.Verbose
	c.System.NoColor = opts.NoColor

	return nil
}
