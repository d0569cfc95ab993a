package commands

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/penwyp/go-event-timeline/internal/application/timeline"
	"github.com/penwyp/go-event-timeline/internal/config"
	"github.com/penwyp/go-event-timeline/internal/testing/fixtures"
)

var testStart = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// writeEvents writes a small event log: two events in the first minute and
// one in the second.
func writeEvents(t *testing.T) string {
	t.Helper()
	generator := fixtures.NewTestDataGenerator(t.TempDir())
	path, err := generator.WriteEvents("events.log", fixtures.Scattered(testStart, 0, 30, 70))
	require.NoError(t, err)
	return path
}

func loadController(t *testing.T, path string) *timeline.Controller {
	t.Helper()
	ctrl, err := newController(config.Default(), path)
	require.NoError(t, err)
	return ctrl
}
