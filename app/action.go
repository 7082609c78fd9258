package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/hako/durafmt"
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/track/internal/config"
	"github.com/ayoisaiah/track/internal/hook"
	"github.com/ayoisaiah/track/internal/logging"
	"github.com/ayoisaiah/track/internal/pathutil"
	"github.com/ayoisaiah/track/internal/report"
	"github.com/ayoisaiah/track/internal/timeutil"
	"github.com/ayoisaiah/track/internal/tracker"
)

const (
	envNoColor      = "NO_COLOR"
	envTrackNoColor = "TRACK_NO_COLOR"
)

const (
	metaConfig = "config"
	metaLog    = "log"
)

const displayTimeFormat = "Jan 02, 2006 03:04:05 PM"

var (
	errNoCommand       = errors.New("no command given")
	errConfigNotLoaded = errors.New("configuration was not loaded")
	errWindowConflict  = errors.New("--last, --since and --today are mutually exclusive")
)

// firstNonEmptyString returns its first non-empty argument, or "" if all
// arguments are empty.
func firstNonEmptyString(ss ...string) string {
	for _, s := range ss {
		if s != "" {
			return s
		}
	}

	return ""
}

func configFrom(ctx *cli.Context) (*config.Config, error) {
	cfg, ok := ctx.App.Metadata[metaConfig].(*config.Config)
	if !ok {
		return nil, errConfigNotLoaded
	}

	return cfg, nil
}

// withTracker opens the configured backend for the duration of fn.
func withTracker(
	ctx *cli.Context,
	fn func(cfg *config.Config, t *tracker.Service) error,
) (err error) {
	cfg, err := configFrom(ctx)
	if err != nil {
		return err
	}

	t, closeFn, err := openTracker(cfg)
	if err != nil {
		return err
	}

	defer func() {
		err = errors.Join(err, closeFn())
	}()

	return fn(cfg, t)
}

func formatTime(t time.Time) string {
	return t.Local().Format(displayTimeFormat)
}

func runHook(err error) {
	if err != nil {
		slog.Warn("hook failed", slog.Any("error", err))
		pterm.Warning.Println(err)
	}
}

func newHookRunner(cfg *config.Config) *hook.Runner {
	return hook.New(cfg.Hooks.StartCmd, cfg.Hooks.StopCmd, cfg.Hooks.Notify)
}

// defaultAction runs when no command is given. It prints the help text and
// fails so that scripts notice the missing command.
func defaultAction(ctx *cli.Context) error {
	_ = cli.ShowAppHelp(ctx)

	return errNoCommand
}

// startAction handles the start command.
func startAction(ctx *cli.Context) error {
	return withTracker(ctx, func(cfg *config.Config, t *tracker.Service) error {
		status, err := t.Start()
		if err != nil {
			return err
		}

		start, started, err := printStart(ctx.App.Writer, t, status)
		if err != nil || !started {
			return err
		}

		runHook(newHookRunner(cfg).AfterStart(start))

		return nil
	})
}

// printStart reports the outcome of a start and whether this call began the
// session. Another process may stop the session between Start and the
// marker read; that is reported, not treated as a failure.
func printStart(
	w io.Writer,
	t tracker.Tracker,
	status tracker.StartupStatus,
) (tracker.StartTime, bool, error) {
	start, err := t.Current()
	if tracker.IsNotRunning(err) {
		fmt.Fprintln(w, "not running: the session was stopped by another process")
		return tracker.StartTime{}, false, nil
	}

	if err != nil {
		return tracker.StartTime{}, false, err
	}

	if status == tracker.Running {
		fmt.Fprintf(w, "already running since %s\n", formatTime(start.Time()))
		return start, false, nil
	}

	fmt.Fprintf(w, "started tracking at %s\n", formatTime(start.Time()))

	return start, true, nil
}

// stopAction handles the stop command and prints the elapsed time of the
// session it ended.
func stopAction(ctx *cli.Context) error {
	return withTracker(ctx, func(cfg *config.Config, t *tracker.Service) error {
		rec, err := t.Stop()
		if err != nil {
			return err
		}

		fmt.Fprintln(ctx.App.Writer, report.FormatHMS(rec.Duration()))

		runHook(newHookRunner(cfg).AfterStop(rec))

		return nil
	})
}

// statusAction prints how long the current session has been running.
func statusAction(ctx *cli.Context) error {
	return withTracker(ctx, func(_ *config.Config, t *tracker.Service) error {
		w := ctx.App.Writer

		start, err := t.Current()
		if tracker.IsNotRunning(err) {
			fmt.Fprintln(w, "not running")
			return nil
		}

		if err != nil {
			return err
		}

		elapsed := time.Since(start.Time()).Truncate(time.Second)

		fmt.Fprintf(
			w,
			"running for %s (since %s)\n",
			durafmt.Parse(elapsed).LimitFirstN(2).String(),
			formatTime(start.Time()),
		)

		return nil
	})
}

// timespan resolves the report window from --last, --since and --today,
// falling back to the configured window.
func timespan(ctx *cli.Context, cfg *config.Config, now time.Time) (report.Timespan, error) {
	set := 0

	for _, name := range []string{lastFlag.Name, sinceFlag.Name, todayFlag.Name} {
		if ctx.IsSet(name) {
			set++
		}
	}

	if set > 1 {
		return nil, errWindowConflict
	}

	switch {
	case ctx.IsSet(sinceFlag.Name):
		from, err := timeutil.FromStr(ctx.String(sinceFlag.Name), now)
		if err != nil {
			return nil, err
		}

		return report.Between{From: from, To: now}, nil
	case ctx.Bool(todayFlag.Name):
		return report.Between{From: timeutil.RoundToStart(now), To: now}, nil
	case ctx.IsSet(lastFlag.Name):
		d, err := timeutil.ParseWindow(ctx.String(lastFlag.Name))
		if err != nil {
			return nil, err
		}

		return report.Last(d), nil
	}

	return report.Last(cfg.Report.Window), nil
}

func printJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(b))

	return err
}

// reportAction prints the total time tracked inside the window.
func reportAction(ctx *cli.Context) error {
	return withTracker(ctx, func(cfg *config.Config, t *tracker.Service) error {
		now := time.Now()

		ts, err := timespan(ctx, cfg, now)
		if err != nil {
			return err
		}

		r := report.New(t, report.WithClock(func() time.Time { return now }))

		summary, err := r.Summary(ts)
		if err != nil {
			return err
		}

		if ctx.Bool(jsonFlag.Name) {
			return printJSON(ctx.App.Writer, summary)
		}

		fmt.Fprintln(ctx.App.Writer, report.FormatHMS(summary.Total))

		return nil
	})
}

// listAction prints the records inside the window.
func listAction(ctx *cli.Context) error {
	return withTracker(ctx, func(cfg *config.Config, t *tracker.Service) error {
		now := time.Now()

		ts, err := timespan(ctx, cfg, now)
		if err != nil {
			return err
		}

		r := report.New(t, report.WithClock(func() time.Time { return now }))

		records, err := r.Records(ts)
		if err != nil {
			return err
		}

		if ctx.Bool(jsonFlag.Name) {
			if records == nil {
				records = []tracker.TimeRecord{}
			}

			return printJSON(ctx.App.Writer, records)
		}

		return listRecords(ctx.App.Writer, records)
	})
}

// configureAction walks the user through the main settings and saves them
// to the config file. Only values from the file itself are written back so
// that flags and default locations do not end up persisted.
func configureAction(ctx *cli.Context) error {
	loaded, err := configFrom(ctx)
	if err != nil {
		return err
	}

	path := loaded.System.ConfigPath

	cfg, err := config.New(
		config.WithViperConfig(path),
		config.WithPromptConfig(),
	)
	if err != nil {
		return err
	}

	if err = config.Save(cfg, path); err != nil {
		return err
	}

	pterm.Success.Printfln("configuration saved to %s", path)

	return nil
}

func beforeAction(ctx *cli.Context) error {
	// Override the default help template
	cli.AppHelpTemplate = helpText()

	pterm.Error.MessageStyle = pterm.NewStyle(pterm.FgRed)
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "ERROR",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}

	// Disable colour output if NO_COLOR is set
	if _, exists := os.LookupEnv(envNoColor); exists {
		disableStyling()
	}

	// Disable colour output if TRACK_NO_COLOR is set
	if _, exists := os.LookupEnv(envTrackNoColor); exists {
		disableStyling()
	}

	if ctx.Bool(noColorFlag.Name) {
		disableStyling()
	}

	if err := pathutil.Initialize(); err != nil {
		return err
	}

	configPath := firstNonEmptyString(
		ctx.String(configFlag.Name),
		pathutil.ConfigFilePath(),
	)

	cfg, err := config.New(
		config.WithViperConfig(configPath),
		config.WithCLIConfig(ctx),
		config.WithDefaultPaths(),
	)
	if err != nil {
		return err
	}

	logger, closer := logging.New(cfg.System.LogPath, cfg.System.Verbose)
	slog.SetDefault(logger)

	ctx.App.Metadata[metaConfig] = cfg
	ctx.App.Metadata[metaLog] = closer

	slog.DebugContext(ctx.Context, "resolved config", slog.String("config", cfg.String()))

	return nil
}

func afterAction(ctx *cli.Context) error {
	closer, ok := ctx.App.Metadata[metaLog].(io.Closer)
	if !ok {
		return nil
	}

	slog.InfoContext(ctx.Context, "exiting track")

	return closer.Close()
}
