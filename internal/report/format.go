package report

import (
	"fmt"
	"time"
)

const (
	secondsInAMinute = 60
	secondsInAnHour  = 3600
)

// FormatHMS renders d as HH:MM:SS. Hours are not capped at 24 and fractions
// of a second are dropped. Negative durations render as zero.
func FormatHMS(d time.Duration) string {
	secs := int64(d / time.Second)
	if secs < 0 {
		secs = 0
	}

	hours := secs / secondsInAnHour
	minutes := (secs % secondsInAnHour) / secondsInAMinute
	seconds := secs % secondsInAMinute

	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}
