package tracker

import (
	"encoding/json"
	"fmt"
	"time"
)

// timeLayout is RFC 3339 with exactly three fractional digits.
const timeLayout = "2006-01-02T15:04:05.000Z07:00"

// stamp is a UTC point in time with millisecond precision.
type stamp struct {
	t time.Time
}

func newStamp(t time.Time) stamp {
	return stamp{t: t.UTC().Truncate(time.Millisecond)}
}

// Time returns the wrapped time value.
func (s stamp) Time() time.Time {
	return s.t
}

// UnixMilli returns the number of milliseconds since the Unix epoch.
func (s stamp) UnixMilli() int64 {
	return s.t.UnixMilli()
}

// IsZero reports whether the stamp was never set.
func (s stamp) IsZero() bool {
	return s.t.IsZero()
}

func (s stamp) String() string {
	return s.t.Format(timeLayout)
}

func (s stamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.t.Format(timeLayout))
}

func (s *stamp) UnmarshalJSON(b []byte) error {
	var str string

	if err := json.Unmarshal(b, &str); err != nil {
		return err
	}

	t, err := time.Parse(time.RFC3339Nano, str)
	if err != nil {
		return fmt.Errorf("invalid timestamp %q: %w", str, err)
	}

	*s = newStamp(t)

	return nil
}

// StartTime marks the beginning of a tracked session.
type StartTime struct {
	stamp
}

// NewStartTime truncates t to milliseconds in UTC.
func NewStartTime(t time.Time) StartTime {
	return StartTime{newStamp(t)}
}

// StartTimeFromUnixMilli restores a StartTime stored as epoch milliseconds.
func StartTimeFromUnixMilli(ms int64) StartTime {
	return NewStartTime(time.UnixMilli(ms))
}

// Equal reports whether both start times denote the same millisecond.
func (s StartTime) Equal(o StartTime) bool {
	return s.t.Equal(o.t)
}

// EndTime marks the end of a tracked session.
type EndTime struct {
	stamp
}

// NewEndTime truncates t to milliseconds in UTC.
func NewEndTime(t time.Time) EndTime {
	return EndTime{newStamp(t)}
}

// EndTimeFromUnixMilli restores an EndTime stored as epoch milliseconds.
func EndTimeFromUnixMilli(ms int64) EndTime {
	return NewEndTime(time.UnixMilli(ms))
}

// TimeRecord is a completed tracked interval. Records are values and are
// never modified after they are created.
type TimeRecord struct {
	Start StartTime `json:"start"`
	End   EndTime   `json:"end"`
}

// NewTimeRecord builds a record and rejects intervals that end before they
// start.
func NewTimeRecord(start StartTime, end EndTime) (TimeRecord, error) {
	rec := TimeRecord{Start: start, End: end}

	if rec.Duration() < 0 {
		return TimeRecord{}, ErrNegativeDuration.Fmt(end, start)
	}

	return rec, nil
}

// Duration returns the elapsed time between start and end. It is negative
// only for records that bypassed NewTimeRecord, such as hand-edited logs.
func (r TimeRecord) Duration() time.Duration {
	return time.Duration(r.End.UnixMilli()-r.Start.UnixMilli()) * time.Millisecond
}
