package scheduler

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"09:00", 540},
		{"9:5", 545},
		{"00:00", 0},
		{"23:59", 1439},
		{"24:00", 1440},
		{" 10 : 30 ", 630},
	}
	for _, tc := range cases {
		got, err := ParseClock(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}

func TestParseClockRejectsMalformed(t *testing.T) {
	for _, in := range []string{"", "0900", "aa:bb", "1:2:3", "10:", ":30"} {
		_, err := ParseClock(in)
		require.Error(t, err, in)
		assert.True(t, errors.Is(err, ErrInvalidTimeFormat), in)
		assert.Contains(t, err.Error(), "HH:MM")
	}
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "09:05", FormatClock(545))
	assert.Equal(t, "00:00", FormatClock(0))
	assert.Equal(t, "23:59", FormatClock(1439))
	assert.Equal(t, "00:00", FormatClock(-15))

	for m := 0; m < MinutesPerDay; m += 7 {
		back, err := ParseClock(FormatClock(m))
		require.NoError(t, err)
		assert.Equal(t, m, back)
	}
}
