package config

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/pterm/pterm/putils"

	"github.com/ayoisaiah/track/internal/timeutil"
)

// PromptOptions holds the user's responses to the configuration prompts.
type PromptOptions struct {
	Backend string
	Window  string
	Notify  bool
}

// WithPromptConfig returns an Option that configures settings via
// interactive prompts, starting from the values already in the config.
func WithPromptConfig() Option {
	return func(c *Config) error {
		opts, err := promptUser(c)
		if err != nil {
			return fmt.Errorf("user prompt failed: %w", err)
		}

		return applyPromptOptions(c, opts)
	}
}

// promptUser handles the interactive configuration process.
func promptUser(c *Config) (PromptOptions, error) {
	opts := PromptOptions{
		Backend: string(c.Backend),
		Window:  c.Report.Window.String(),
		Notify:  c.Hooks.Notify,
	}

	_ = putils.BulletListFromString(`Follow the prompts below to configure track.
Press ENTER to keep the current value.
Paths and hook commands can be edited in the config file directly.`, " ").
		Render()

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Storage backend").
				Options(
					huh.NewOption("JSON file", string(BackendJSON)),
					huh.NewOption("BoltDB", string(BackendBolt)),
					huh.NewOption("SQLite", string(BackendSQLite)),
				).
				Value(&opts.Backend),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Default report window (e.g. 24h, 7d, 2w)").
				Value(&opts.Window).
				Validate(func(s string) error {
					_, err := timeutil.ParseWindow(s)
					return err
				}),
		),
		huh.NewGroup(
			huh.NewConfirm().
				Title("Show a desktop notification when a session stops?").
				Value(&opts.Notify),
		),
	)

	err := form.Run()
	if err != nil {
		return opts, fmt.Errorf("form interaction failed: %w", err)
	}

	return opts, nil
}

// applyPromptOptions applies the user's prompt responses to the configuration.
func applyPromptOptions(c *Config, opts PromptOptions) error {
	window, err := timeutil.ParseWindow(opts.Window)
	if err != nil {
		return err
	}

	c.Backend = Backend(opts.Backend)
	c.Report.Window = window
	c.Hooks.Notify = opts.Notify

	return nil
}
