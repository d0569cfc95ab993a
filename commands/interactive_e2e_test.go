//go:build e2e
// +build e2e

package commands

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/penwyp/go-event-timeline/internal/testing/e2e"
	"github.com/penwyp/go-event-timeline/internal/testing/fixtures"
)

func TestInteractiveKeys(t *testing.T) {
	generator := fixtures.NewTestDataGenerator(t.TempDir())
	eventsPath, err := generator.GenerateBurst("events.log", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), 30, 5*time.Minute)
	require.NoError(t, err)

	session, err := e2e.StartPTY(e2e.PTYConfig{
		Binary: buildBinary(t),
		Args:   []string{"interactive", eventsPath},
		Env:    []string{"HOME=" + t.TempDir()},
	})
	require.NoError(t, err)
	defer session.Kill()

	require.NoError(t, session.WaitForFrame("unit=minutes kind=bars", 10*time.Second))

	require.NoError(t, session.Send("u"))
	require.NoError(t, session.WaitForFrame("unit=hours kind=bars", 5*time.Second))

	require.NoError(t, session.Send("k"))
	require.NoError(t, session.WaitForFrame("unit=hours kind=dots", 5*time.Second))

	require.NoError(t, session.Send("+"))
	require.NoError(t, session.WaitForFrame("shift=+1h", 5*time.Second))
	assert.Contains(t, e2e.StatusLine(session.Frame()), "events=30")

	require.NoError(t, session.Send("q"))
	assert.NoError(t, session.Wait())
}

func TestInteractiveReloadsOnChange(t *testing.T) {
	generator := fixtures.NewTestDataGenerator(t.TempDir())
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	eventsPath, err := generator.GenerateBurst("events.log", start, 10, time.Minute)
	require.NoError(t, err)

	session, err := e2e.StartPTY(e2e.PTYConfig{
		Binary: buildBinary(t),
		Args:   []string{"interactive", eventsPath},
		Env:    []string{"HOME=" + t.TempDir()},
	})
	require.NoError(t, err)
	defer session.Kill()

	require.NoError(t, session.WaitForFrame("events=10", 10*time.Second))

	f, err := os.OpenFile(eventsPath, os.O_APPEND|os.O_WRONLY, 0644)
	require.NoError(t, err)
	_, err = f.WriteString("2024-01-01 00:30:00\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	require.NoError(t, session.WaitForFrame("events=11", 5*time.Second))
	require.NoError(t, session.Send("q"))
	assert.NoError(t, session.Wait())
}
