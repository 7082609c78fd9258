package flatfile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"github.com/ayoisaiah/track/internal/tracker"
)

type document struct {
	Records []tracker.TimeRecord `json:"records"`
}

// Log is a tracker.Store kept in a single JSON document. Appends rewrite the
// document under an advisory lock and publish it with an atomic rename, so
// readers see either the old or the new log and concurrent stops cannot
// drop each other's records.
type Log struct {
	lock *flock.Flock
	path string
}

// NewLog returns a Log for the document at path. The document is created on
// the first append.
func NewLog(path string) *Log {
	return &Log{
		path: path,
		lock: flock.New(path + ".lock"),
	}
}

// Load reads every record from the document.
func (l *Log) Load() ([]tracker.TimeRecord, error) {
	doc, err := l.read()
	if err != nil {
		return nil, err
	}

	return doc.Records, nil
}

// Append adds rec to the document unless the last record already belongs to
// the same session.
func (l *Log) Append(rec tracker.TimeRecord) (err error) {
	if err = l.lock.Lock(); err != nil {
		return tracker.ErrStore.Wrap(fmt.Errorf("lock database: %w", err))
	}

	defer func() {
		uerr := l.lock.Unlock()
		if uerr != nil && err == nil {
			err = tracker.ErrStore.Wrap(
				fmt.Errorf("unlock database: %w", uerr),
			)
		}
	}()

	doc, err := l.read()
	if err != nil {
		return err
	}

	if n := len(doc.Records); n > 0 && doc.Records[n-1].Start.Equal(rec.Start) {
		return nil
	}

	doc.Records = append(doc.Records, rec)

	return l.write(doc)
}

func (l *Log) read() (*document, error) {
	doc := &document{}

	b, err := os.ReadFile(l.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return doc, nil
		}

		return nil, tracker.ErrStore.Wrap(
			fmt.Errorf("read database: %w", err),
		)
	}

	if len(bytes.TrimSpace(b)) == 0 {
		return doc, nil
	}

	if err = json.Unmarshal(b, doc); err != nil {
		return nil, tracker.ErrStore.Wrap(
			fmt.Errorf("decode database %s: %w", l.path, err),
		)
	}

	return doc, nil
}

func (l *Log) write(doc *document) error {
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return tracker.ErrStore.Wrap(fmt.Errorf("encode database: %w", err))
	}

	b = append(b, '\n')

	tmp, err := os.CreateTemp(
		filepath.Dir(l.path),
		filepath.Base(l.path)+".*.tmp",
	)
	if err != nil {
		return tracker.ErrStore.Wrap(fmt.Errorf("write database: %w", err))
	}

	_, err = tmp.Write(b)
	if err == nil {
		err = tmp.Sync()
	}

	err = errors.Join(err, tmp.Close())
	if err == nil {
		err = os.Rename(tmp.Name(), l.path)
	}

	if err != nil {
		_ = os.Remove(tmp.Name())

		return tracker.ErrStore.Wrap(fmt.Errorf("write database: %w", err))
	}

	return nil
}
