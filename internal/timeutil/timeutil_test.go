package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWindow(t *testing.T) {
	cases := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{in: "24h", want: 24 * time.Hour},
		{in: "90m", want: 90 * time.Minute},
		{in: "1s", want: time.Second},
		{in: "7d", want: 7 * 24 * time.Hour},
		{in: " 2w ", want: 14 * 24 * time.Hour},
		{in: "", wantErr: true},
		{in: "d", wantErr: true},
		{in: "three days", wantErr: true},
		{in: "-1h", wantErr: true},
		{in: "0d", wantErr: true},
		{in: "99999999w", wantErr: true},
		{in: "-99999999w", wantErr: true},
		{in: "15000w", want: 15000 * 7 * 24 * time.Hour},
	}

	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseWindow(tc.in)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestFromStr(t *testing.T) {
	now := time.Date(2024, time.May, 2, 12, 0, 0, 0, time.UTC)

	got, err := FromStr("2 hours ago", now)
	require.NoError(t, err)
	assert.True(t, got.Equal(now.Add(-2*time.Hour)), "got %v", got)
}

func TestRoundToStart(t *testing.T) {
	in := time.Date(2024, time.May, 2, 17, 45, 12, 5, time.UTC)

	assert.Equal(t, time.Date(2024, time.May, 2, 0, 0, 0, 0, time.UTC), RoundToStart(in))
}
