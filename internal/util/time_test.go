package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Time
	}{
		{
			name:     "space separated seconds",
			input:    "2024-01-01 00:00:30",
			expected: time.Date(2024, 1, 1, 0, 0, 30, 0, time.UTC),
		},
		{
			name:     "fractional seconds",
			input:    "2024-01-01 12:30:45.250",
			expected: time.Date(2024, 1, 1, 12, 30, 45, 250000000, time.UTC),
		},
		{
			name:     "T separated",
			input:    "2024-03-05T08:09:10",
			expected: time.Date(2024, 3, 5, 8, 9, 10, 0, time.UTC),
		},
		{
			name:     "RFC3339 with offset keeps wall clock",
			input:    "2024-03-05T08:09:10+02:00",
			expected: time.Date(2024, 3, 5, 8, 9, 10, 0, time.UTC),
		},
		{
			name:     "RFC3339 zulu",
			input:    "2024-03-05T08:09:10Z",
			expected: time.Date(2024, 3, 5, 8, 9, 10, 0, time.UTC),
		},
		{
			name:     "slash separated",
			input:    "2024/03/05 08:09:10",
			expected: time.Date(2024, 3, 5, 8, 9, 10, 0, time.UTC),
		},
		{
			name:     "minute precision",
			input:    "2024-03-05 08:09",
			expected: time.Date(2024, 3, 5, 8, 9, 0, 0, time.UTC),
		},
		{
			name:     "date only",
			input:    "2024-03-05",
			expected: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "surrounding whitespace",
			input:    "  2024-03-05 08:09:10\r",
			expected: time.Date(2024, 3, 5, 8, 9, 10, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTimestamp(tt.input)
			require.NoError(t, err)
			assert.True(t, tt.expected.Equal(got), "expected %v, got %v", tt.expected, got)
			assert.Equal(t, time.UTC, got.Location())
		})
	}
}

func TestParseTimestampInvalid(t *testing.T) {
	for _, input := range []string{"", "   ", "yesterday", "2024-13-01 00:00:00", "12:00:00", "2024-01-01,2024-01-02"} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseTimestamp(input)
			assert.Error(t, err)
		})
	}
}

func TestFloorTime(t *testing.T) {
	ts := time.Date(2024, 1, 1, 13, 47, 59, 999, time.UTC)

	assert.Equal(t, time.Date(2024, 1, 1, 13, 47, 0, 0, time.UTC), FloorTime(ts, time.Minute))
	assert.Equal(t, time.Date(2024, 1, 1, 13, 0, 0, 0, time.UTC), FloorTime(ts, time.Hour))
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), FloorTime(ts, 24*time.Hour))
	assert.Equal(t, ts, FloorTime(ts, 0))

	// a boundary value is its own floor
	boundary := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, boundary, FloorTime(boundary, 24*time.Hour))
}

func TestWallClock(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*3600)
	in := time.Date(2024, 6, 1, 10, 0, 0, 0, loc)

	got := WallClock(in)
	assert.Equal(t, time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC), got)
}

func TestFormatSpan(t *testing.T) {
	tests := []struct {
		in       time.Duration
		expected string
	}{
		{0, "0m"},
		{30 * time.Second, "0m"},
		{90 * time.Minute, "1h 30m"},
		{49 * time.Hour, "2d 1h"},
		{5*24*time.Hour + 3*time.Minute, "5d 3m"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, FormatSpan(tt.in))
	}
}
