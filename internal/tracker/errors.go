package tracker

import "github.com/ayoisaiah/track/internal/apperr"

var (
	// ErrStore reports an I/O, permission or serialization failure in a Guard
	// or Store. It is never retried.
	ErrStore = &apperr.Error{
		Message: "tracker storage failure",
	}

	// ErrNotRunning is returned when there is no active session to read or
	// stop.
	ErrNotRunning = &apperr.Error{
		Message: "no session to stop: the tracker is not running",
	}

	// ErrNegativeDuration is returned when a record would end before it
	// starts, which happens when the system clock moves backwards.
	ErrNegativeDuration = &apperr.Error{
		Message: "record ends (%s) before it starts (%s)",
	}

	// ErrBusy is returned when another process holds the store.
	ErrBusy = &apperr.Error{
		Message: "is track already running? the store is locked by another process",
	}
)
