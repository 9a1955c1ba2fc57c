package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	got, err := ParseClock("09:05")
	require.NoError(t, err)
	require.Equal(t, 545, got)

	got, err = ParseClock(" 24:00 ")
	require.NoError(t, err)
	require.Equal(t, MinutesPerDay, got)

	for _, bad := range []string{"", "9", "ab:10", "10:xx", "10:60", "24:01", "-1:00"} {
		_, err := ParseClock(bad)
		require.Error(t, err, "input %q", bad)
	}
}

func TestFormatClock(t *testing.T) {
	require.Equal(t, "00:00", FormatClock(0))
	require.Equal(t, "01:05", FormatClock(65))
	require.Equal(t, "23:59", FormatClock(1439))
}
