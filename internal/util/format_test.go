package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		input    int
		expected string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1.0K"},
		{1500, "1.5K"},
		{1000000, "1.0M"},
		{2500000, "2.5M"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, FormatNumber(tt.input))
	}
}

func TestFormatCount(t *testing.T) {
	tests := []struct {
		input    int
		expected string
	}{
		{0, "0"},
		{7, "7"},
		{999, "999"},
		{1000, "1,000"},
		{12345, "12,345"},
		{123456, "123,456"},
		{1234567, "1,234,567"},
		{-1234, "-1,234"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, FormatCount(tt.input))
	}
}

func TestFormatHours(t *testing.T) {
	assert.Equal(t, "0h", FormatHours(0))
	assert.Equal(t, "2h", FormatHours(2))
	assert.Equal(t, "-1.5h", FormatHours(-1.5))

	assert.Equal(t, "+2h", FormatSignedHours(2))
	assert.Equal(t, "0h", FormatSignedHours(0))
	assert.Equal(t, "-0.5h", FormatSignedHours(-0.5))
}

func TestPadString(t *testing.T) {
	assert.Equal(t, "ab   ", PadString("ab", 5, true))
	assert.Equal(t, "   ab", PadString("ab", 5, false))
	assert.Equal(t, "abcdef", PadString("abcdef", 3, true))
	// wide runes count double
	assert.Equal(t, "日本 ", PadString("日本", 5, true))
}

func TestCreateBar(t *testing.T) {
	assert.Equal(t, "", CreateBar(0, 10, 20))
	assert.Equal(t, "", CreateBar(5, 0, 20))
	assert.Equal(t, "", CreateBar(5, 10, 0))
	assert.Equal(t, 10, GetDisplayWidth(CreateBar(5, 10, 20)))
	assert.Equal(t, 20, GetDisplayWidth(CreateBar(10, 10, 20)))
	// a tiny value still shows up
	assert.Equal(t, 1, GetDisplayWidth(CreateBar(1, 1000, 20)))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "hello", Truncate("hello", 10))
	assert.Equal(t, "", Truncate("hello", 0))
	assert.LessOrEqual(t, GetDisplayWidth(Truncate("hello world", 6)), 6)
}
