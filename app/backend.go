package app

import (
	"os"
	"path/filepath"

	"github.com/ayoisaiah/track/internal/boltstore"
	"github.com/ayoisaiah/track/internal/config"
	"github.com/ayoisaiah/track/internal/flatfile"
	"github.com/ayoisaiah/track/internal/osutil"
	"github.com/ayoisaiah/track/internal/sqlstore"
	"github.com/ayoisaiah/track/internal/tracker"
)

// backend is a Guard and Store backed by the same database.
type backend interface {
	tracker.Guard
	tracker.Store
	Close() error
}

func noopClose() error {
	return nil
}

// ensureDir creates the parent directory of every path.
func ensureDir(paths ...string) error {
	for _, p := range paths {
		err := os.MkdirAll(filepath.Dir(p), osutil.DirPermission)
		if err != nil {
			return tracker.ErrStore.Wrap(err)
		}
	}

	return nil
}

// openTracker builds a tracker over the configured backend. The returned
// function releases the backend and must be called once the command is done.
func openTracker(cfg *config.Config) (*tracker.Service, func() error, error) {
	var (
		db  backend
		err error
	)

	switch cfg.Backend {
	case config.BackendBolt:
		if err = ensureDir(cfg.Paths.DB); err != nil {
			return nil, nil, err
		}

		db, err = boltstore.Open(cfg.Paths.DB)
	case config.BackendSQLite:
		if err = ensureDir(cfg.Paths.DB); err != nil {
			return nil, nil, err
		}

		db, err = sqlstore.Open(cfg.Paths.DB)
	default:
		if err = ensureDir(cfg.Paths.DB, cfg.Paths.Lockfile); err != nil {
			return nil, nil, err
		}

		t := tracker.New(
			flatfile.NewMarker(cfg.Paths.Lockfile),
			flatfile.NewLog(cfg.Paths.DB),
		)

		return t, noopClose, nil
	}

	if err != nil {
		return nil, nil, err
	}

	return tracker.New(db, db), db.Close, nil
}
