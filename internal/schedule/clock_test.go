package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	m, err := ParseClock("09:05")
	require.NoError(t, err)
	assert.Equal(t, 9*60+5, m)

	m, err = ParseClock("00:00")
	require.NoError(t, err)
	assert.Equal(t, 0, m)

	m, err = ParseClock("23:45")
	require.NoError(t, err)
	assert.Equal(t, 23*60+45, m)

	for _, bad := range []string{"", "9", "24:00", "12:60", "ab:cd", "12-30"} {
		_, err := ParseClock(bad)
		assert.Error(t, err, "input %q", bad)
	}
}

func TestFormatClockZeroPads(t *testing.T) {
	assert.Equal(t, "09:05", FormatClock(9*60+5))
	assert.Equal(t, "00:00", FormatClock(0))
	// Past-midnight values wrap around.
	assert.Equal(t, "00:10", FormatClock(24*60+10))
}

func TestAddMinutesDerivesEndTime(t *testing.T) {
	end, err := AddMinutes("09:00", 45)
	require.NoError(t, err)
	assert.Equal(t, "09:45", end)

	end, err = AddMinutes("23:30", 90)
	require.NoError(t, err)
	assert.Equal(t, "01:00", end)

	_, err = AddMinutes("nope", 10)
	assert.Error(t, err)
}

func TestOnSlotGrid(t *testing.T) {
	assert.True(t, OnSlotGrid("10:00"))
	assert.True(t, OnSlotGrid("10:45"))
	assert.False(t, OnSlotGrid("10:10"))
	assert.False(t, OnSlotGrid("bad"))
}

func TestNormalizeDate(t *testing.T) {
	d, err := NormalizeDate("2024-03-05")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-05", d)

	// Calendar UI form.
	d, err = NormalizeDate("2024/03/05")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-05", d)

	_, err = NormalizeDate("05.03.2024")
	assert.Error(t, err)
}
