// Package hook runs user commands and desktop notifications after a session
// starts or stops
package hook

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strconv"

	"github.com/gen2brain/beeep"
	"github.com/kballard/go-shellquote"

	"github.com/ayoisaiah/track/internal/report"
	"github.com/ayoisaiah/track/internal/tracker"
)

const (
	envStart      = "TRACK_START"
	envEnd        = "TRACK_END"
	envDurationMS = "TRACK_DURATION_MS"
)

// Notifier shows a desktop notification.
type Notifier func(title, message string) error

// Runner executes the configured hooks.
type Runner struct {
	notify   Notifier
	log      *slog.Logger
	StartCmd string
	StopCmd  string
	Notify   bool
}

// New returns a Runner that notifies through the system notification
// service.
func New(startCmd, stopCmd string, notify bool) *Runner {
	return &Runner{
		StartCmd: startCmd,
		StopCmd:  stopCmd,
		Notify:   notify,
		notify:   desktopNotify,
		log:      slog.Default(),
	}
}

// WithNotifier replaces the desktop notifier.
func (r *Runner) WithNotifier(n Notifier) *Runner {
	r.notify = n
	return r
}

func desktopNotify(title, message string) error {
	return beeep.Notify(title, message, "")
}

// AfterStart runs the start command with TRACK_START set.
func (r *Runner) AfterStart(start tracker.StartTime) error {
	return r.run(r.StartCmd, envStart+"="+start.String())
}

// AfterStop runs the stop command with the record in the environment and
// sends a notification when enabled.
func (r *Runner) AfterStop(rec tracker.TimeRecord) error {
	err := r.run(
		r.StopCmd,
		envStart+"="+rec.Start.String(),
		envEnd+"="+rec.End.String(),
		envDurationMS+"="+strconv.FormatInt(rec.Duration().Milliseconds(), 10),
	)

	if r.Notify && r.notify != nil {
		msg := "Tracked " + report.FormatHMS(rec.Duration())

		if nerr := r.notify("track", msg); nerr != nil {
			r.log.Warn("unable to display notification", slog.Any("error", nerr))
		}
	}

	return err
}

// run executes command without a shell. Arguments are split with shell
// quoting rules.
func (r *Runner) run(command string, env ...string) error {
	if command == "" {
		return nil
	}

	cmdSlice, err := shellquote.Split(command)
	if err != nil {
		return fmt.Errorf("unable to parse hook command: %w", err)
	}

	if len(cmdSlice) == 0 {
		return nil
	}

	cmd := exec.Command(cmdSlice[0], cmdSlice[1:]...)
	cmd.Env = append(os.Environ(), env...)

	r.log.Debug("running hook", slog.String("cmd", command))

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("hook %q failed: %w", command, err)
	}

	return nil
}
