package fixtures

import (
	"os"
	"path/filepath"
	"strings"
	"time"
)

// EventLayout is the timestamp layout written by the generator
const EventLayout = "2006-01-02 15:04:05"

// TestDataGenerator writes event log files for tests
type TestDataGenerator struct {
	baseDir string
}

// NewTestDataGenerator creates a new test data generator
func NewTestDataGenerator(baseDir string) *TestDataGenerator {
	return &TestDataGenerator{
		baseDir: baseDir,
	}
}

// WriteLines writes raw lines to name and returns the file path
func (g *TestDataGenerator) WriteLines(name string, lines []string) (string, error) {
	path := filepath.Join(g.baseDir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", err
	}
	content := strings.Join(lines, "\n")
	if len(lines) > 0 {
		content += "\n"
	}
	return path, os.WriteFile(path, []byte(content), 0644)
}

// WriteEvents writes one timestamp per line
func (g *TestDataGenerator) WriteEvents(name string, events []time.Time) (string, error) {
	lines := make([]string, len(events))
	for i, e := range events {
		lines[i] = e.Format(EventLayout)
	}
	return g.WriteLines(name, lines)
}

// GenerateBurst writes n events starting at start, interval apart
func (g *TestDataGenerator) GenerateBurst(name string, start time.Time, n int, interval time.Duration) (string, error) {
	return g.WriteEvents(name, Burst(start, n, interval))
}

// Burst returns n timestamps starting at start, interval apart
func Burst(start time.Time, n int, interval time.Duration) []time.Time {
	events := make([]time.Time, n)
	for i := range events {
		events[i] = start.Add(time.Duration(i) * interval)
	}
	return events
}

// Scattered returns timestamps at the given second offsets from start, in
// the given order (which need not be sorted)
func Scattered(start time.Time, offsets ...int) []time.Time {
	events := make([]time.Time, len(offsets))
	for i, off := range offsets {
		events[i] = start.Add(time.Duration(off) * time.Second)
	}
	return events
}
