// Package sqlstore keeps the session marker and the record log in a SQLite
// database
package sqlstore

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	_ "modernc.org/sqlite"

	"github.com/ayoisaiah/track/internal/tracker"
)

const busyTimeoutMS = 5000

const (
	sessionTable = `
	CREATE TABLE IF NOT EXISTS session (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		start_ms INTEGER NOT NULL
	)
	`

	recordsTable = `
	CREATE TABLE IF NOT EXISTS records (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		start_ms INTEGER NOT NULL,
		end_ms INTEGER NOT NULL
	)
	`
)

// Repository implements tracker.Guard and tracker.Store on SQLite. The
// session table holds at most one row, so starting a session is a single
// conditional insert.
type Repository struct {
	db  *sql.DB
	log *slog.Logger
}

var (
	_ tracker.Guard = (*Repository)(nil)
	_ tracker.Store = (*Repository)(nil)
)

// Open creates or opens the database at path.
func Open(path string) (*Repository, error) {
	dsn := fmt.Sprintf("%s?_pragma=busy_timeout(%d)", path, busyTimeoutMS)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, tracker.ErrStore.Wrap(err)
	}

	db.SetMaxOpenConns(1)

	if err = db.Ping(); err != nil {
		_ = db.Close()

		return nil, tracker.ErrStore.Wrap(
			fmt.Errorf("open database %s: %w", path, err),
		)
	}

	repo := &Repository{
		db:  db,
		log: slog.Default(),
	}

	if err = repo.init(); err != nil {
		_ = db.Close()

		return nil, tracker.ErrStore.Wrap(fmt.Errorf("create tables: %w", err))
	}

	return repo, nil
}

func (r *Repository) init() error {
	if _, err := r.db.Exec(sessionTable); err != nil {
		return err
	}

	_, err := r.db.Exec(recordsTable)

	return err
}

// Close closes the database.
func (r *Repository) Close() error {
	return r.db.Close()
}

// Create inserts the session row unless one exists already.
func (r *Repository) Create(
	start tracker.StartTime,
) (tracker.StartupStatus, error) {
	res, err := r.db.Exec(
		"INSERT OR IGNORE INTO session (id, start_ms) VALUES (1, ?)",
		start.UnixMilli(),
	)
	if err != nil {
		return 0, tracker.ErrStore.Wrap(fmt.Errorf("save session: %w", err))
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, tracker.ErrStore.Wrap(err)
	}

	if n == 0 {
		return tracker.Running, nil
	}

	return tracker.Started, nil
}

// StartTime returns the start stored in the session row.
func (r *Repository) StartTime() (tracker.StartTime, error) {
	var ms int64

	err := r.db.QueryRow("SELECT start_ms FROM session WHERE id = 1").Scan(&ms)
	if errors.Is(err, sql.ErrNoRows) {
		return tracker.StartTime{}, tracker.ErrNotRunning
	}

	if err != nil {
		return tracker.StartTime{}, tracker.ErrStore.Wrap(
			fmt.Errorf("read session: %w", err),
		)
	}

	return tracker.StartTimeFromUnixMilli(ms), nil
}

// Clear deletes the session row.
func (r *Repository) Clear() error {
	if _, err := r.db.Exec("DELETE FROM session WHERE id = 1"); err != nil {
		return tracker.ErrStore.Wrap(fmt.Errorf("delete session: %w", err))
	}

	return nil
}

// Exists reports whether the session row is present.
func (r *Repository) Exists() bool {
	var n int

	err := r.db.QueryRow("SELECT COUNT(*) FROM session").Scan(&n)
	if err != nil {
		r.log.Warn("unable to read session", slog.Any("error", err))
		return false
	}

	return n > 0
}

// Load returns every record ordered by insertion.
func (r *Repository) Load() ([]tracker.TimeRecord, error) {
	rows, err := r.db.Query("SELECT start_ms, end_ms FROM records ORDER BY id")
	if err != nil {
		return nil, tracker.ErrStore.Wrap(fmt.Errorf("read records: %w", err))
	}
	defer rows.Close()

	var records []tracker.TimeRecord

	for rows.Next() {
		var start, end int64

		if err := rows.Scan(&start, &end); err != nil {
			return nil, tracker.ErrStore.Wrap(err)
		}

		records = append(records, tracker.TimeRecord{
			Start: tracker.StartTimeFromUnixMilli(start),
			End:   tracker.EndTimeFromUnixMilli(end),
		})
	}

	if err := rows.Err(); err != nil {
		return nil, tracker.ErrStore.Wrap(err)
	}

	return records, nil
}

// appendRecord inserts a record unless the newest row has the same start.
// The check and the insert are one statement.
const appendRecord = `
	INSERT INTO records (start_ms, end_ms)
	SELECT ?, ?
	WHERE NOT EXISTS (
		SELECT 1 FROM records
		WHERE id = (SELECT MAX(id) FROM records) AND start_ms = ?
	)
	`

// Append inserts rec.
func (r *Repository) Append(rec tracker.TimeRecord) error {
	_, err := r.db.Exec(
		appendRecord,
		rec.Start.UnixMilli(),
		rec.End.UnixMilli(),
		rec.Start.UnixMilli(),
	)
	if err != nil {
		return tracker.ErrStore.Wrap(fmt.Errorf("save record: %w", err))
	}

	return nil
}
