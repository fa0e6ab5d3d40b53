package amw

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseDateTimeLine(t *testing.T, line string) (DateTime, error) {
	t.Helper()
	p := NewParser(NewLineSourceFromString(line))
	require.NoError(t, p.readBlockLine())
	dt, _, err := p.parseDateTime(p.currentLine, 0)
	return dt, err
}

func TestParseDateTimeBareDate(t *testing.T) {
	dt, err := parseDateTimeLine(t, "2024-03-15")
	require.NoError(t, err)
	assert.Equal(t, DateTime{Year: 2024, Month: 3, Day: 15}, dt)
}

func TestParseDateTimeCompactDate(t *testing.T) {
	dt, err := parseDateTimeLine(t, "20240315")
	require.NoError(t, err)
	assert.Equal(t, 2024, dt.Year)
	assert.Equal(t, 3, dt.Month)
	assert.Equal(t, 15, dt.Day)
}

func TestParseDateTimeWithTimeAndZ(t *testing.T) {
	dt, err := parseDateTimeLine(t, "2024-03-15T13:45:09Z")
	require.NoError(t, err)
	assert.Equal(t, 13, dt.Hour)
	assert.Equal(t, 45, dt.Minute)
	assert.Equal(t, 9, dt.Second)
	assert.True(t, dt.HasOffset)
	assert.Equal(t, 0, dt.GMTOffsetMinutes)
}

func TestParseDateTimeWithOffset(t *testing.T) {
	dt, err := parseDateTimeLine(t, "2024-03-15T13:45:09+05:30")
	require.NoError(t, err)
	assert.True(t, dt.HasOffset)
	assert.Equal(t, 5*60+30, dt.GMTOffsetMinutes)
}

func TestParseDateTimeWithFraction(t *testing.T) {
	dt, err := parseDateTimeLine(t, "2024-03-15T13:45:09.5")
	require.NoError(t, err)
	assert.Equal(t, uint32(500000000), dt.Nanosecond)
}

func TestParseDateTimeSpaceSeparatedTime(t *testing.T) {
	dt, err := parseDateTimeLine(t, "2024-03-15 13:45:09")
	require.NoError(t, err)
	assert.Equal(t, 13, dt.Hour)
}

func TestParseDateTimeBadFractionZeroDigits(t *testing.T) {
	_, err := parseDateTimeLine(t, "2024-03-15T13:45:09.")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Bad date/time")
}

func TestParseDateTimeBadMonth(t *testing.T) {
	_, err := parseDateTimeLine(t, "2024-XX-15")
	require.Error(t, err)
}

func TestParseTimestampNoFraction(t *testing.T) {
	p := NewParser(NewLineSourceFromString("1700000000"))
	require.NoError(t, p.readBlockLine())
	ts, _, err := p.parseTimestamp(p.currentLine, 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(1700000000), ts.Seconds)
	assert.Equal(t, uint32(0), ts.Nanoseconds)
}

func TestParseTimestampWithFraction(t *testing.T) {
	p := NewParser(NewLineSourceFromString("1700000000.25"))
	require.NoError(t, p.readBlockLine())
	ts, _, err := p.parseTimestamp(p.currentLine, 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(1700000000), ts.Seconds)
	assert.Equal(t, uint32(250000000), ts.Nanoseconds)
}
