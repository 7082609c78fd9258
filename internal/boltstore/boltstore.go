// Package boltstore keeps the session marker and the record log in a single
// BoltDB file
package boltstore

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/ayoisaiah/track/internal/tracker"
)

const (
	sessionBucket = "session"
	recordBucket  = "records"
	startKey      = "start_time"
)

const openTimeout = 1 * time.Second

// Client is a BoltDB database client implementing both tracker.Guard and
// tracker.Store. Bolt serialises writers with a file lock, so every
// operation below runs in a single transaction.
type Client struct {
	db  *bolt.DB
	log *slog.Logger
}

var (
	_ tracker.Guard = (*Client)(nil)
	_ tracker.Store = (*Client)(nil)
)

// Open creates or opens the database at path and locks it for the lifetime
// of the client.
func Open(path string) (*Client, error) {
	var fileMode fs.FileMode = 0o600

	db, err := bolt.Open(path, fileMode, &bolt.Options{Timeout: openTimeout})
	if err != nil {
		if errors.Is(err, bolt.ErrTimeout) {
			return nil, tracker.ErrBusy.Wrap(err)
		}

		return nil, tracker.ErrStore.Wrap(
			fmt.Errorf("open database %s: %w", path, err),
		)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err = tx.CreateBucketIfNotExists([]byte(sessionBucket))
		if err != nil {
			return err
		}

		_, err = tx.CreateBucketIfNotExists([]byte(recordBucket))

		return err
	})
	if err != nil {
		_ = db.Close()

		return nil, tracker.ErrStore.Wrap(
			fmt.Errorf("create buckets: %w", err),
		)
	}

	return &Client{
		db:  db,
		log: slog.Default(),
	}, nil
}

// Close releases the database lock.
func (c *Client) Close() error {
	return c.db.Close()
}

// Create stores start unless a session is already recorded. The check and
// the write share one read-write transaction.
func (c *Client) Create(
	start tracker.StartTime,
) (tracker.StartupStatus, error) {
	value, err := json.Marshal(start)
	if err != nil {
		return 0, tracker.ErrStore.Wrap(err)
	}

	status := tracker.Started

	err = c.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(sessionBucket))

		if b.Get([]byte(startKey)) != nil {
			status = tracker.Running
			return nil
		}

		return b.Put([]byte(startKey), value)
	})
	if err != nil {
		return 0, tracker.ErrStore.Wrap(fmt.Errorf("save session: %w", err))
	}

	return status, nil
}

// StartTime returns the recorded session start.
func (c *Client) StartTime() (tracker.StartTime, error) {
	var (
		start tracker.StartTime
		found bool
	)

	err := c.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(sessionBucket)).Get([]byte(startKey))
		if v == nil {
			return nil
		}

		found = true

		return json.Unmarshal(v, &start)
	})
	if err != nil {
		return tracker.StartTime{}, tracker.ErrStore.Wrap(
			fmt.Errorf("read session: %w", err),
		)
	}

	if !found {
		return tracker.StartTime{}, tracker.ErrNotRunning
	}

	return start, nil
}

// Clear deletes the recorded session. Deleting a missing key is a no-op in
// Bolt.
func (c *Client) Clear() error {
	err := c.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(sessionBucket)).Delete([]byte(startKey))
	})
	if err != nil {
		return tracker.ErrStore.Wrap(fmt.Errorf("delete session: %w", err))
	}

	return nil
}

// Exists reports whether a session is recorded.
func (c *Client) Exists() bool {
	var found bool

	err := c.db.View(func(tx *bolt.Tx) error {
		found = tx.Bucket([]byte(sessionBucket)).Get([]byte(startKey)) != nil
		return nil
	})
	if err != nil {
		c.log.Warn("unable to read session", slog.Any("error", err))
		return false
	}

	return found
}

// Load returns every record in insertion order.
func (c *Client) Load() ([]tracker.TimeRecord, error) {
	var records []tracker.TimeRecord

	err := c.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(recordBucket)).ForEach(func(_, v []byte) error {
			var rec tracker.TimeRecord

			if err := json.Unmarshal(v, &rec); err != nil {
				return err
			}

			records = append(records, rec)

			return nil
		})
	})
	if err != nil {
		return nil, tracker.ErrStore.Wrap(fmt.Errorf("read records: %w", err))
	}

	return records, nil
}

// Append stores rec under the next bucket sequence so that cursor order is
// insertion order. A record for the session stored last is skipped.
func (c *Client) Append(rec tracker.TimeRecord) error {
	value, err := json.Marshal(rec)
	if err != nil {
		return tracker.ErrStore.Wrap(err)
	}

	err = c.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(recordBucket))

		if _, v := b.Cursor().Last(); v != nil {
			var last tracker.TimeRecord

			if err := json.Unmarshal(v, &last); err != nil {
				return err
			}

			if last.Start.Equal(rec.Start) {
				return nil
			}
		}

		seq, err := b.NextSequence()
		if err != nil {
			return err
		}

		return b.Put(itob(seq), value)
	})
	if err != nil {
		return tracker.ErrStore.Wrap(fmt.Errorf("save record: %w", err))
	}

	return nil
}

func itob(v uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)

	return b
}
