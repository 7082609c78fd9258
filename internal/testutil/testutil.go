// Package testutil holds helpers shared by package tests
package testutil

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"

	"github.com/ayoisaiah/track/internal/osutil"
	"github.com/ayoisaiah/track/internal/tracker"
)

type GoldenTest interface {
	Output() ([]byte, string)
}

// CompareGoldenFile verifies that the output of an operation matches
// the expected output.
func CompareGoldenFile(t *testing.T, tc GoldenTest) {
	t.Helper()

	if runtime.GOOS == osutil.Windows {
		// TODO: need to sort out line endings
		t.Skip("skipping golden file test in Windows")
	}

	g := goldie.New(
		t,
		goldie.WithFixtureDir("testdata"),
	)

	snap, golden := tc.Output()

	if snap != nil {
		g.Assert(t, golden, snap)
		return
	}

	f := filepath.Join("testdata", golden+".golden")
	if _, err := os.Stat(f); err == nil || errors.Is(err, os.ErrExist) {
		t.Fatalf("expected no output, but golden file exists: %s", f)
	}
}

func CopyFile(src, dst string) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening source file: %w", err)
	}
	defer sourceFile.Close()

	destFile, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("creating destination file: %w", err)
	}
	defer destFile.Close()

	_, err = io.Copy(destFile, sourceFile)
	if err != nil {
		return fmt.Errorf("copying file: %w", err)
	}

	return nil
}

// Record builds a record starting at start and lasting d. It fails the test
// when d is negative.
func Record(t *testing.T, start time.Time, d time.Duration) tracker.TimeRecord {
	t.Helper()

	rec, err := tracker.NewTimeRecord(
		tracker.NewStartTime(start),
		tracker.NewEndTime(start.Add(d)),
	)
	if err != nil {
		t.Fatal(err)
	}

	return rec
}

// SameRecords reports whether two record slices hold the same intervals at
// millisecond precision.
func SameRecords(a, b []tracker.TimeRecord) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if a[i].Start.UnixMilli() != b[i].Start.UnixMilli() ||
			a[i].End.UnixMilli() != b[i].End.UnixMilli() {
			return false
		}
	}

	return true
}
