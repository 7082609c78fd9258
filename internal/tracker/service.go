package tracker

import (
	"errors"
	"iter"
	"log/slog"
	"slices"
	"time"
)

// Service is the Tracker built from a Guard and a Store. It holds no state
// of its own between calls.
type Service struct {
	guard Guard
	store Store
	now   func() time.Time
	log   *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithClock replaces time.Now as the source of start and end times.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// WithLogger sets the logger used for state transitions.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		s.log = l
	}
}

// New returns a Service coordinating guard and store.
func New(guard Guard, store Store, opts ...Option) *Service {
	s := &Service{
		guard: guard,
		store: store,
		now:   time.Now,
		log:   slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

var _ Tracker = (*Service)(nil)

// Start creates the session marker. A second start while a session is active
// returns Running and leaves the existing marker untouched.
func (s *Service) Start() (StartupStatus, error) {
	start := NewStartTime(s.now())

	status, err := s.guard.Create(start)
	if err != nil {
		return status, err
	}

	if status == Running {
		s.log.Info("session already running")
		return status, nil
	}

	s.log.Info("session started", slog.String("start", start.String()))

	return status, nil
}

// Stop closes the active session. The record is appended before the marker
// is cleared so that a crash in between leaves the session running instead
// of losing the interval. Stores ignore a second record for the same start,
// so concurrent stops of one session store it once.
func (s *Service) Stop() (TimeRecord, error) {
	start, err := s.guard.StartTime()
	if err != nil {
		return TimeRecord{}, err
	}

	rec, found, err := s.appended(start)
	if err != nil {
		return TimeRecord{}, err
	}

	if found {
		s.log.Warn(
			"record already stored by an interrupted stop, clearing marker",
			slog.String("start", start.String()),
		)

		return rec, s.guard.Clear()
	}

	rec, err = NewTimeRecord(start, NewEndTime(s.now()))
	if err != nil {
		return TimeRecord{}, err
	}

	if err = s.store.Append(rec); err != nil {
		return TimeRecord{}, err
	}

	if err = s.guard.Clear(); err != nil {
		return rec, err
	}

	s.log.Info(
		"session stopped",
		slog.String("start", rec.Start.String()),
		slog.String("end", rec.End.String()),
		slog.Duration("duration", rec.Duration()),
	)

	return rec, nil
}

// appended looks for a record that a previous stop stored without clearing
// the marker afterwards.
func (s *Service) appended(start StartTime) (TimeRecord, bool, error) {
	records, err := s.store.Load()
	if err != nil {
		return TimeRecord{}, false, err
	}

	if len(records) == 0 {
		return TimeRecord{}, false, nil
	}

	last := records[len(records)-1]

	return last, last.Start.Equal(start), nil
}

// IsRunning reports whether a session marker exists.
func (s *Service) IsRunning() bool {
	return s.guard.Exists()
}

// Current returns the start of the active session.
func (s *Service) Current() (StartTime, error) {
	return s.guard.StartTime()
}

// Records loads the full log and returns a sequence over it. The sequence
// can be ranged over any number of times.
func (s *Service) Records() (iter.Seq[TimeRecord], error) {
	records, err := s.store.Load()
	if err != nil {
		return nil, err
	}

	return slices.Values(records), nil
}

// IsNotRunning reports whether err means no session was active.
func IsNotRunning(err error) bool {
	return errors.Is(err, ErrNotRunning)
}
