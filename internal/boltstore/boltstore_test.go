package boltstore_test

import (
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayoisaiah/track/internal/boltstore"
	"github.com/ayoisaiah/track/internal/testutil"
	"github.com/ayoisaiah/track/internal/tracker"
)

func openClient(t *testing.T, path string) *boltstore.Client {
	t.Helper()

	c, err := boltstore.Open(path)
	require.NoError(t, err)

	return c
}

func TestStartStopCycle(t *testing.T) {
	c := openClient(t, filepath.Join(t.TempDir(), "track.db"))
	defer c.Close()

	tr := tracker.New(c, c)

	status, err := tr.Start()
	require.NoError(t, err)
	assert.Equal(t, tracker.Started, status)

	status, err = tr.Start()
	require.NoError(t, err)
	assert.Equal(t, tracker.Running, status)

	time.Sleep(10 * time.Millisecond)

	rec, err := tr.Stop()
	require.NoError(t, err)
	assert.GreaterOrEqual(t, rec.Duration(), 10*time.Millisecond)
	assert.False(t, tr.IsRunning())

	_, err = tr.Stop()
	require.ErrorIs(t, err, tracker.ErrNotRunning)

	seq, err := tr.Records()
	require.NoError(t, err)
	assert.Len(t, slices.Collect(seq), 1)
}

func TestSessionSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "track.db")

	c := openClient(t, path)

	_, err := tracker.New(c, c).Start()
	require.NoError(t, err)

	want, err := c.StartTime()
	require.NoError(t, err)
	require.NoError(t, c.Close())

	c = openClient(t, path)
	defer c.Close()

	assert.True(t, c.Exists())

	got, err := c.StartTime()
	require.NoError(t, err)
	assert.True(t, want.Equal(got))
}

func TestRecordsKeepInsertionOrder(t *testing.T) {
	c := openClient(t, filepath.Join(t.TempDir(), "track.db"))
	defer c.Close()

	base := time.Date(2024, time.May, 1, 9, 0, 0, 0, time.UTC)

	// later sessions appended first must still come back in append order
	want := []tracker.TimeRecord{
		testutil.Record(t, base.Add(5*time.Hour), time.Minute),
		testutil.Record(t, base, time.Hour),
		testutil.Record(t, base.Add(2*time.Hour), 30*time.Minute),
	}

	for _, rec := range want {
		require.NoError(t, c.Append(rec))
	}

	got, err := c.Load()
	require.NoError(t, err)
	assert.True(t, testutil.SameRecords(want, got))
}

func TestClearMissingSession(t *testing.T) {
	c := openClient(t, filepath.Join(t.TempDir(), "track.db"))
	defer c.Close()

	require.NoError(t, c.Clear())
	assert.False(t, c.Exists())

	_, err := c.StartTime()
	require.ErrorIs(t, err, tracker.ErrNotRunning)
}

func TestOpenLockedDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "track.db")

	c := openClient(t, path)
	defer c.Close()

	_, err := boltstore.Open(path)
	require.ErrorIs(t, err, tracker.ErrBusy)
}

func TestOpenMissingDirectory(t *testing.T) {
	_, err := boltstore.Open(filepath.Join(t.TempDir(), "missing", "track.db"))
	require.ErrorIs(t, err, tracker.ErrStore)
}

func TestAppendSkipsRecordForLastSession(t *testing.T) {
	c := openClient(t, filepath.Join(t.TempDir(), "track.db"))
	defer c.Close()

	start := time.Date(2024, time.May, 1, 9, 0, 0, 0, time.UTC)
	first := testutil.Record(t, start, time.Minute)
	later := testutil.Record(t, start.Add(2*time.Hour), time.Minute)

	require.NoError(t, c.Append(first))
	require.NoError(t, c.Append(testutil.Record(t, start, time.Hour)))
	require.NoError(t, c.Append(later))

	got, err := c.Load()
	require.NoError(t, err)
	assert.True(t, testutil.SameRecords([]tracker.TimeRecord{first, later}, got))
}
