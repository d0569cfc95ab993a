package formatter

import (
	"time"

	"github.com/penwyp/go-event-timeline/internal/core/model"
)

var testStart = time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

// testSpec returns hourly buckets 10:00..12:00 with counts 3, 0, 1234.
func testSpec(kind model.ChartKind) model.ChartSpec {
	series := model.Series{
		Unit: model.UnitHours,
		Buckets: []model.Bucket{
			{Start: testStart, Count: 3},
			{Start: testStart.Add(time.Hour), Count: 0},
			{Start: testStart.Add(2 * time.Hour), Count: 1234},
		},
	}
	spec := model.ChartSpec{
		Points:      series,
		Kind:        kind,
		XAxisFormat: "15:04",
		XLabel:      "Time (hours)",
		YLabel:      "Events per bucket",
		Title:       "Events over time: 2024-01-01 10:00:00 to 2024-01-01 12:00:00",
		XMin:        testStart,
		XMax:        testStart.Add(3 * time.Hour),
		YMax:        1234,
		Ticks: []model.Tick{
			{At: testStart, Label: "10:00"},
			{At: testStart.Add(time.Hour), Label: "11:00"},
			{At: testStart.Add(2 * time.Hour), Label: "12:00"},
			{At: testStart.Add(3 * time.Hour), Label: "13:00"},
		},
	}
	if kind == model.KindBars {
		spec.BarWidth = 30 * time.Minute
	}
	return spec
}
