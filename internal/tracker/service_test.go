package tracker_test

import (
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayoisaiah/track/internal/tracker"
	"github.com/ayoisaiah/track/internal/tracker/memory"
)

// clock returns successive times spaced by step, starting at base.
type clock struct {
	current time.Time
	step    time.Duration
}

func (c *clock) now() time.Time {
	t := c.current
	c.current = c.current.Add(c.step)

	return t
}

var base = time.Date(2024, time.May, 1, 9, 30, 0, 0, time.UTC)

func collect(t *testing.T, tr tracker.Tracker) []tracker.TimeRecord {
	t.Helper()

	seq, err := tr.Records()
	require.NoError(t, err)

	return slices.Collect(seq)
}

func TestStartReturnsStartedThenRunning(t *testing.T) {
	tr, _, _ := memory.New()

	status, err := tr.Start()
	require.NoError(t, err)
	assert.Equal(t, tracker.Started, status)
	assert.True(t, tr.IsRunning())

	status, err = tr.Start()
	require.NoError(t, err)
	assert.Equal(t, tracker.Running, status)
	assert.True(t, tr.IsRunning())

	assert.Empty(t, collect(t, tr))
}

func TestSecondStartKeepsOriginalStartTime(t *testing.T) {
	c := &clock{current: base, step: time.Minute}
	tr, _, _ := memory.New(tracker.WithClock(c.now))

	_, err := tr.Start()
	require.NoError(t, err)

	_, err = tr.Start()
	require.NoError(t, err)

	start, err := tr.Current()
	require.NoError(t, err)
	assert.True(t, start.Time().Equal(base))
}

func TestStopCreatesExactlyOneRecord(t *testing.T) {
	c := &clock{current: base, step: 90 * time.Second}
	tr, _, _ := memory.New(tracker.WithClock(c.now))

	_, err := tr.Start()
	require.NoError(t, err)

	rec, err := tr.Stop()
	require.NoError(t, err)
	assert.False(t, tr.IsRunning())
	assert.Equal(t, 90*time.Second, rec.Duration())

	want := []tracker.TimeRecord{
		{
			Start: tracker.NewStartTime(base),
			End:   tracker.NewEndTime(base.Add(90 * time.Second)),
		},
	}

	if diff := cmp.Diff(want, collect(t, tr), cmp.Comparer(func(a, b tracker.TimeRecord) bool {
		return a.Start.Equal(b.Start) && a.End.UnixMilli() == b.End.UnixMilli()
	})); diff != "" {
		t.Fatalf("records mismatch (-want +got):\n%s", diff)
	}
}

func TestStopWhenIdleFails(t *testing.T) {
	tr, _, _ := memory.New()

	_, err := tr.Stop()
	require.ErrorIs(t, err, tracker.ErrNotRunning)
	assert.True(t, tracker.IsNotRunning(err))
	assert.Empty(t, collect(t, tr))
}

func TestStateMachineFollowsLastCommand(t *testing.T) {
	tr, _, _ := memory.New()

	cases := []struct {
		op      string
		running bool
		wantErr error
	}{
		{op: "stop", running: false, wantErr: tracker.ErrNotRunning},
		{op: "start", running: true},
		{op: "start", running: true},
		{op: "stop", running: false},
		{op: "stop", running: false, wantErr: tracker.ErrNotRunning},
		{op: "start", running: true},
		{op: "stop", running: false},
	}

	for i, tc := range cases {
		var err error

		switch tc.op {
		case "start":
			_, err = tr.Start()
		case "stop":
			_, err = tr.Stop()
		}

		if tc.wantErr != nil {
			require.ErrorIs(t, err, tc.wantErr, "step %d", i)
		} else {
			require.NoError(t, err, "step %d", i)
		}

		assert.Equal(t, tc.running, tr.IsRunning(), "step %d", i)
	}

	assert.Len(t, collect(t, tr), 2)
}

func TestStopRejectsClockGoingBackwards(t *testing.T) {
	c := &clock{current: base, step: -time.Second}
	tr, _, _ := memory.New(tracker.WithClock(c.now))

	_, err := tr.Start()
	require.NoError(t, err)

	_, err = tr.Stop()
	require.ErrorIs(t, err, tracker.ErrNegativeDuration)

	assert.True(t, tr.IsRunning(), "session must survive a rejected stop")
	assert.Empty(t, collect(t, tr))
}

func TestStopKeepsMarkerWhenAppendFails(t *testing.T) {
	c := &clock{current: base, step: time.Minute}
	tr, _, store := memory.New(tracker.WithClock(c.now))

	_, err := tr.Start()
	require.NoError(t, err)

	_, err = tr.Stop()
	require.NoError(t, err)

	_, err = tr.Start()
	require.NoError(t, err)

	before := collect(t, tr)
	require.Len(t, before, 1)

	diskFull := errors.New("disk full")
	store.AppendErr = tracker.ErrStore.Wrap(diskFull)

	_, err = tr.Stop()
	require.ErrorIs(t, err, diskFull, "the error must come from Append")
	assert.True(t, tr.IsRunning(), "marker must survive a failed append")
	assert.Equal(t, before, collect(t, tr))

	store.AppendErr = nil

	_, err = tr.Stop()
	require.NoError(t, err)
	assert.False(t, tr.IsRunning())
	assert.Len(t, collect(t, tr), 2)
}

func TestStoreIgnoresSecondRecordForSameSession(t *testing.T) {
	start := tracker.NewStartTime(base)
	store := memory.NewStore()

	first := tracker.TimeRecord{Start: start, End: tracker.NewEndTime(base.Add(time.Minute))}
	second := tracker.TimeRecord{Start: start, End: tracker.NewEndTime(base.Add(time.Hour))}

	require.NoError(t, store.Append(first))
	require.NoError(t, store.Append(second))

	got, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, []tracker.TimeRecord{first}, got)
}

func TestStopRecoversInterruptedStop(t *testing.T) {
	start := tracker.NewStartTime(base)
	stored := tracker.TimeRecord{
		Start: start,
		End:   tracker.NewEndTime(base.Add(time.Hour)),
	}

	guard := &memory.Guard{}
	store := memory.NewStore(stored)

	_, err := guard.Create(start)
	require.NoError(t, err)

	tr := tracker.New(guard, store)

	rec, err := tr.Stop()
	require.NoError(t, err)
	assert.Equal(t, time.Hour, rec.Duration())
	assert.False(t, tr.IsRunning())
	assert.Len(t, collect(t, tr), 1)
}

func TestRecordsIsRestartable(t *testing.T) {
	tr, _, _ := memory.New()

	for range 3 {
		_, err := tr.Start()
		require.NoError(t, err)

		_, err = tr.Stop()
		require.NoError(t, err)
	}

	seq, err := tr.Records()
	require.NoError(t, err)

	assert.Len(t, slices.Collect(seq), 3)
	assert.Len(t, slices.Collect(seq), 3)
}

func TestStartAndStopWithRealClock(t *testing.T) {
	tr, _, _ := memory.New()

	before := time.Now()

	_, err := tr.Start()
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	rec, err := tr.Stop()
	require.NoError(t, err)

	elapsed := time.Since(before)

	assert.GreaterOrEqual(t, rec.Duration(), 10*time.Millisecond)
	assert.LessOrEqual(t, rec.Duration(), elapsed+time.Millisecond)
	assert.GreaterOrEqual(t, rec.End.UnixMilli(), rec.Start.UnixMilli())
}
