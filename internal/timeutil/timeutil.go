// Package timeutil provides utility functions and types for working with
// time-related operations.
package timeutil

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/markusmobius/go-dateparser"
)

const (
	HoursInADay  = 24
	DaysInAWeek  = 7
	hoursInAWeek = HoursInADay * DaysInAWeek
)

var (
	errEmptyWindow    = errors.New("window must not be empty")
	errNegativeWindow = errors.New("window must be positive")
	errWindowTooLarge = errors.New("window is too large")
)

// ParseWindow parses a reporting window. It accepts anything
// time.ParseDuration does plus whole days ("7d") and weeks ("2w"). The
// window must be positive.
func ParseWindow(s string) (time.Duration, error) {
	d, err := parseWindow(s)
	if err != nil {
		return 0, err
	}

	if d <= 0 {
		return 0, fmt.Errorf("invalid window %q: %w", s, errNegativeWindow)
	}

	return d, nil
}

func parseWindow(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errEmptyWindow
	}

	unit := time.Duration(0)

	switch {
	case strings.HasSuffix(s, "d"):
		unit = HoursInADay * time.Hour
	case strings.HasSuffix(s, "w"):
		unit = hoursInAWeek * time.Hour
	}

	if unit == 0 {
		return time.ParseDuration(s)
	}

	n, err := strconv.Atoi(s[:len(s)-1])
	if err != nil {
		return 0, fmt.Errorf("invalid window %q: %w", s, err)
	}

	if limit := int64(math.MaxInt64 / unit); int64(n) > limit || int64(n) < -limit {
		return 0, fmt.Errorf("invalid window %q: %w", s, errWindowTooLarge)
	}

	return time.Duration(n) * unit, nil
}

// FromStr parses a natural language date such as "2 hours ago" or
// "last monday" relative to now.
func FromStr(s string, now time.Time) (time.Time, error) {
	cfg := &dateparser.Configuration{
		CurrentTime: now,
	}

	dt, err := dateparser.Parse(cfg, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("unable to parse date %q: %w", s, err)
	}

	return dt.Time, nil
}

// RoundToStart resets the given time to the start of the day.
func RoundToStart(t time.Time) time.Time {
	return time.Date(
		t.Year(),
		t.Month(),
		t.Day(),
		0,
		0,
		0,
		0,
		t.Location(),
	)
}
