// Package tracker implements the start/stop state machine that turns active
// sessions into durable time records
package tracker

import "iter"

// StartupStatus is the outcome of a start request.
type StartupStatus int

const (
	// Started means a new session began.
	Started StartupStatus = iota + 1
	// Running means a session was already active and nothing changed.
	Running
)

func (s StartupStatus) String() string {
	switch s {
	case Started:
		return "started"
	case Running:
		return "running"
	default:
		return "unknown"
	}
}

// Tracker is the public state machine. Implementations reload their record
// log on every call since each CLI invocation is a fresh process.
type Tracker interface {
	// Start begins a session or reports that one is already running.
	Start() (StartupStatus, error)
	// Stop ends the active session and returns the record it produced.
	Stop() (TimeRecord, error)
	// IsRunning reports whether a session is active.
	IsRunning() bool
	// Current returns the start of the active session.
	Current() (StartTime, error)
	// Records returns a restartable sequence over the full record log.
	Records() (iter.Seq[TimeRecord], error)
}

// Guard owns the marker that records an active session. Create must be a
// single atomic create-if-absent operation on the storage medium.
type Guard interface {
	// Create stores the marker exclusively. It returns Running without error
	// when a marker already exists.
	Create(start StartTime) (StartupStatus, error)
	// StartTime returns the start stored in the marker or ErrNotRunning.
	StartTime() (StartTime, error)
	// Clear removes the marker. Clearing an absent marker is a no-op.
	Clear() error
	// Exists reports whether a marker is present. It never fails: a marker
	// whose presence cannot be determined is reported as absent.
	Exists() bool
}

// Store owns the append-only record log.
type Store interface {
	// Load returns every record in insertion order. A store that was never
	// written to is empty, not an error.
	Load() ([]TimeRecord, error)
	// Append adds a record. It is either wholly visible to the next Load or
	// not at all. Appending a record whose start equals the start of the
	// last stored record is a no-op, decided atomically with the write, so
	// that concurrent stops of one session store it once.
	Append(rec TimeRecord) error
}
