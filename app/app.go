package app

import (
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/track/internal/config"
)

// disableStyling disables all styling provided by pterm.
func disableStyling() {
	pterm.DisableColor()
	pterm.DisableStyling()
	pterm.Debug.Prefix.Text = ""
	pterm.Info.Prefix.Text = ""
	pterm.Success.Prefix.Text = ""
	pterm.Warning.Prefix.Text = ""
	pterm.Error.Prefix.Text = ""
	pterm.Fatal.Prefix.Text = ""
}

// Get retrieves the track app instance.
func Get() *cli.App {
	trackApp := &cli.App{
		Name: "track",
		Authors: []*cli.Author{
			{
				Name:  "Ayooluwa Isaiah",
				Email: "ayo@freshman.tech",
			},
		},
		Usage: `
		Track is a command-line time tracker. Start a session when you begin
		working, stop it when you are done, and report on the time spent.`,
		UsageText:            "[COMMAND] [OPTIONS]",
		Version:              config.Version,
		EnableBashCompletion: true,
		Metadata:             map[string]any{},
		Commands: []*cli.Command{
			{
				Name:   "start",
				Usage:  "Start tracking a new session",
				Action: startAction,
			},
			{
				Name:   "stop",
				Usage:  "Stop the running session and record it",
				Action: stopAction,
			},
			{
				Name:   "status",
				Usage:  "Print how long the running session has lasted",
				Action: statusAction,
			},
			{
				Name: "report",
				Usage: `
				Print the total time tracked in a window. Defaults to the
				window set in the config file (24 hours)`,
				Flags:  windowFlags,
				Action: reportAction,
			},
			{
				Name:   "list",
				Usage:  "List the sessions recorded in a window",
				Flags:  windowFlags,
				Action: listAction,
			},
			{
				Name:   "configure",
				Usage:  "Change the main settings interactively",
				Action: configureAction,
			},
		},
		Flags:  globalFlags,
		Action: defaultAction,
		Before: beforeAction,
		After:  afterAction,
	}

	return trackApp
}
