package main

import (
	"errors"
	"os"

	"github.com/pterm/pterm"

	"github.com/ayoisaiah/track/app"
	"github.com/ayoisaiah/track/internal/osutil"
	"github.com/ayoisaiah/track/internal/tracker"
)

const storeSuggestion = "specify explicit locations with --db-dir and --lockfile"

func run(args []string) error {
	return app.Get().Run(args)
}

func main() {
	err := run(os.Args)
	if err == nil {
		os.Exit(int(osutil.ExitOK))
	}

	pterm.Error.Println(err)

	if errors.Is(err, tracker.ErrStore) || errors.Is(err, tracker.ErrBusy) {
		pterm.Info.Println("suggestion: " + storeSuggestion)
	}

	os.Exit(int(osutil.ExitError))
}
