package model

import "time"

// Tick is a labelled position on the time axis.
type Tick struct {
	At    time.Time `json:"at"`
	Label string    `json:"label"`
}

// ChartSpec describes one chart ready to be drawn. It is rebuilt on every
// change and never stored.
type ChartSpec struct {
	Points      Series        `json:"points"`
	Kind        ChartKind     `json:"kind"`
	BarWidth    time.Duration `json:"barWidth"`
	XAxisFormat string        `json:"xAxisFormat"`
	XLabel      string        `json:"xLabel"`
	YLabel      string        `json:"yLabel"`
	Title       string        `json:"title"`
	XMin        time.Time     `json:"xMin"`
	XMax        time.Time     `json:"xMax"`
	YMax        int           `json:"yMax"`
	Ticks       []Tick        `json:"ticks"`
}

// FormatTime formats t with the chart's x-axis layout.
func (c ChartSpec) FormatTime(t time.Time) string {
	return t.Format(c.XAxisFormat)
}
