// Package report aggregates tracked time records into totals
package report

import (
	"encoding/json"
	"iter"
	"log/slog"
	"time"

	"github.com/ayoisaiah/track/internal/tracker"
)

// Source provides the records to aggregate. tracker.Tracker satisfies it.
type Source interface {
	Records() (iter.Seq[tracker.TimeRecord], error)
}

// Timespan selects records by the time they started.
type Timespan interface {
	bounds(now time.Time) (from, to time.Time)
}

// Last selects records that started within the given duration before now.
type Last time.Duration

func (l Last) bounds(now time.Time) (from, to time.Time) {
	return now.Add(-time.Duration(l)), now
}

// Between selects records that started within [From, To].
type Between struct {
	From time.Time
	To   time.Time
}

func (b Between) bounds(_ time.Time) (from, to time.Time) {
	return b.From, b.To
}

// Summary describes the records that fall inside a timespan.
type Summary struct {
	From    time.Time
	To      time.Time
	Total   time.Duration
	Records int
}

func (s Summary) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		From    time.Time `json:"from"`
		To      time.Time `json:"to"`
		Total   string    `json:"total"`
		TotalMS int64     `json:"total_ms"`
		Records int       `json:"records"`
	}{
		From:    s.From,
		To:      s.To,
		Total:   FormatHMS(s.Total),
		TotalMS: s.Total.Milliseconds(),
		Records: s.Records,
	})
}

// Reporter computes totals over a record Source.
type Reporter struct {
	src Source
	now func() time.Time
	log *slog.Logger
}

// Option configures a Reporter.
type Option func(*Reporter)

// WithClock replaces time.Now as the end of relative timespans.
func WithClock(now func() time.Time) Option {
	return func(r *Reporter) {
		r.now = now
	}
}

// WithLogger sets the logger used to report skipped records.
func WithLogger(l *slog.Logger) Option {
	return func(r *Reporter) {
		r.log = l
	}
}

// New returns a Reporter reading from src.
func New(src Source, opts ...Option) *Reporter {
	r := &Reporter{
		src: src,
		now: time.Now,
		log: slog.Default(),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Records returns the records whose start lies inside ts, in log order.
// Records that end before they start are skipped.
func (r *Reporter) Records(ts Timespan) ([]tracker.TimeRecord, error) {
	from, to := ts.bounds(r.now())

	return r.between(from, to)
}

func (r *Reporter) between(from, to time.Time) ([]tracker.TimeRecord, error) {
	seq, err := r.src.Records()
	if err != nil {
		return nil, err
	}

	earliest, latest := from.UnixMilli(), to.UnixMilli()

	var matched []tracker.TimeRecord

	for rec := range seq {
		start := rec.Start.UnixMilli()
		if start < earliest || start > latest {
			continue
		}

		if rec.Duration() < 0 {
			r.log.Warn(
				"skipping record that ends before it starts",
				slog.String("start", rec.Start.String()),
				slog.String("end", rec.End.String()),
			)

			continue
		}

		matched = append(matched, rec)
	}

	return matched, nil
}

// TotalDuration sums the durations of the records inside ts. No matching
// records yields zero.
func (r *Reporter) TotalDuration(ts Timespan) (time.Duration, error) {
	s, err := r.Summary(ts)
	if err != nil {
		return 0, err
	}

	return s.Total, nil
}

// Summary returns the total and the number of records inside ts.
func (r *Reporter) Summary(ts Timespan) (Summary, error) {
	from, to := ts.bounds(r.now())

	records, err := r.between(from, to)
	if err != nil {
		return Summary{}, err
	}

	s := Summary{
		From:    from.UTC(),
		To:      to.UTC(),
		Records: len(records),
	}

	var totalMS int64
	for _, rec := range records {
		totalMS += rec.End.UnixMilli() - rec.Start.UnixMilli()
	}

	s.Total = time.Duration(totalMS) * time.Millisecond

	return s, nil
}
