// Package flatfile stores the session marker and the record log as JSON
// documents on the local filesystem
package flatfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/ayoisaiah/track/internal/tracker"
)

const filePerm fs.FileMode = 0o600

type markerData struct {
	StartTime tracker.StartTime `json:"start_time"`
}

// Marker is a tracker.Guard whose marker is a lockfile. The file's presence
// means a session is running.
type Marker struct {
	log  *slog.Logger
	path string
}

// NewMarker returns a Marker for the lockfile at path.
func NewMarker(path string) *Marker {
	return &Marker{
		path: path,
		log:  slog.Default(),
	}
}

// Create writes the lockfile with O_EXCL so that exactly one of several
// concurrent starts succeeds.
func (m *Marker) Create(
	start tracker.StartTime,
) (tracker.StartupStatus, error) {
	b, err := json.Marshal(markerData{StartTime: start})
	if err != nil {
		return 0, tracker.ErrStore.Wrap(
			fmt.Errorf("encode lockfile data: %w", err),
		)
	}

	f, err := os.OpenFile(m.path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, filePerm)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return tracker.Running, nil
		}

		return 0, tracker.ErrStore.Wrap(
			fmt.Errorf("create lockfile: %w", err),
		)
	}

	_, err = f.Write(b)
	if err == nil {
		err = f.Sync()
	}

	err = errors.Join(err, f.Close())
	if err != nil {
		// a half-written lockfile would block every future start
		_ = os.Remove(m.path)

		return 0, tracker.ErrStore.Wrap(
			fmt.Errorf("write lockfile: %w", err),
		)
	}

	return tracker.Started, nil
}

// StartTime reads the start recorded in the lockfile.
func (m *Marker) StartTime() (tracker.StartTime, error) {
	b, err := os.ReadFile(m.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return tracker.StartTime{}, tracker.ErrNotRunning
		}

		return tracker.StartTime{}, tracker.ErrStore.Wrap(
			fmt.Errorf("read lockfile: %w", err),
		)
	}

	var data markerData

	err = json.Unmarshal(b, &data)
	if err == nil && data.StartTime.IsZero() {
		err = errors.New("missing start_time")
	}

	if err != nil {
		return tracker.StartTime{}, tracker.ErrStore.Wrap(
			fmt.Errorf("decode lockfile %s: %w", m.path, err),
		)
	}

	return data.StartTime, nil
}

// Clear deletes the lockfile. A lockfile that is already gone is not an
// error.
func (m *Marker) Clear() error {
	err := os.Remove(m.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return tracker.ErrStore.Wrap(fmt.Errorf("delete lockfile: %w", err))
	}

	return nil
}

// Exists reports whether the lockfile is present. Stat failures other than
// "not found" are logged and reported as absent.
func (m *Marker) Exists() bool {
	_, err := os.Stat(m.path)
	if err == nil {
		return true
	}

	if !errors.Is(err, fs.ErrNotExist) {
		m.log.Warn(
			"unable to check lockfile",
			slog.String("path", m.path),
			slog.Any("error", err),
		)
	}

	return false
}
