package app

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/track/internal/config"
)

func backendNames() string {
	names := make([]string, len(config.Backends))
	for i, b := range config.Backends {
		names[i] = string(b)
	}

	return strings.Join(names, "|")
}

var (
	dbDirFlag = &cli.StringFlag{
		Name:    "db-dir",
		Aliases: []string{"db"},
		Usage:   "Path to the records database",
		EnvVars: []string{"TRACK_DB"},
	}

	lockfileFlag = &cli.StringFlag{
		Name:    "lockfile",
		Usage:   "Path to the file that marks a running session (json backend)",
		EnvVars: []string{"TRACK_LOCKFILE"},
	}

	backendFlag = &cli.StringFlag{
		Name:    "backend",
		Aliases: []string{"b"},
		Usage:   fmt.Sprintf("Storage backend (%s)", backendNames()),
		EnvVars: []string{"TRACK_BACKEND"},
	}

	configFlag = &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to the config file",
		EnvVars: []string{"TRACK_CONFIG"},
	}

	noColorFlag = &cli.BoolFlag{
		Name:  "no-color",
		Usage: "Disable coloured output",
	}

	verboseFlag = &cli.BoolFlag{
		Name:  "verbose",
		Usage: "Write debug records to the log file",
	}

	lastFlag = &cli.StringFlag{
		Name:    "last",
		Aliases: []string{"l"},
		Usage:   "Report on the given window ending now (e.g. '8h', '7d', '2w'). Defaults to report.window",
	}

	sinceFlag = &cli.StringFlag{
		Name:    "since",
		Aliases: []string{"s"},
		Usage:   "Report on everything since a date (e.g. 'yesterday', '3 days ago', '2024-05-01')",
	}

	todayFlag = &cli.BoolFlag{
		Name:  "today",
		Usage: "Report on everything since midnight",
	}

	jsonFlag = &cli.BoolFlag{
		Name:  "json",
		Usage: "Print the output as JSON",
	}
)

var globalFlags = []cli.Flag{
	dbDirFlag,
	lockfileFlag,
	backendFlag,
	configFlag,
	noColorFlag,
	verboseFlag,
}

var windowFlags = []cli.Flag{
	lastFlag,
	sinceFlag,
	todayFlag,
	jsonFlag,
}
