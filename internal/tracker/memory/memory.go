// Package memory provides in-process Guard and Store implementations used in
// tests and as the reference behaviour for persistent backends
package memory

import (
	"slices"
	"sync"

	"github.com/ayoisaiah/track/internal/tracker"
)

// Guard keeps the session marker in memory.
type Guard struct {
	start *tracker.StartTime
	mu    sync.Mutex
}

// Create stores start unless a session is already active.
func (g *Guard) Create(start tracker.StartTime) (tracker.StartupStatus, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.start != nil {
		return tracker.Running, nil
	}

	g.start = &start

	return tracker.Started, nil
}

// StartTime returns the active session start.
func (g *Guard) StartTime() (tracker.StartTime, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.start == nil {
		return tracker.StartTime{}, tracker.ErrNotRunning
	}

	return *g.start, nil
}

// Clear forgets the active session.
func (g *Guard) Clear() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.start = nil

	return nil
}

// Exists reports whether a session is active.
func (g *Guard) Exists() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.start != nil
}

// Store keeps records in a slice. A non-nil Err makes every call fail, a
// non-nil AppendErr only Append.
type Store struct {
	Err       error
	AppendErr error
	records   []tracker.TimeRecord
	mu        sync.Mutex
}

// NewStore returns a store preloaded with records.
func NewStore(records ...tracker.TimeRecord) *Store {
	return &Store{records: slices.Clone(records)}
}

// Load returns a copy of the stored records.
func (s *Store) Load() ([]tracker.TimeRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return nil, s.Err
	}

	return slices.Clone(s.records), nil
}

// Append adds rec to the end of the log unless the last record has the same
// start.
func (s *Store) Append(rec tracker.TimeRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return s.Err
	}

	if s.AppendErr != nil {
		return s.AppendErr
	}

	if n := len(s.records); n > 0 && s.records[n-1].Start.Equal(rec.Start) {
		return nil
	}

	s.records = append(s.records, rec)

	return nil
}

// New returns a Service backed by fresh in-memory components.
func New(opts ...tracker.Option) (*tracker.Service, *Guard, *Store) {
	g, s := &Guard{}, NewStore()

	return tracker.New(g, s, opts...), g, s
}
