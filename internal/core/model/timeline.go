package model

import (
	"strings"
	"time"
)

// BucketUnit is the resampling granularity of a timeline.
type BucketUnit string

const (
	UnitMinutes BucketUnit = "minutes"
	UnitHours   BucketUnit = "hours"
	UnitDays    BucketUnit = "days"
)

// BucketUnits lists the supported units in cycling order.
var BucketUnits = []BucketUnit{UnitMinutes, UnitHours, UnitDays}

// Duration returns the fixed width of one bucket, or 0 for an unknown unit.
func (u BucketUnit) Duration() time.Duration {
	switch u {
	case UnitMinutes:
		return time.Minute
	case UnitHours:
		return time.Hour
	case UnitDays:
		return 24 * time.Hour
	default:
		return 0
	}
}

// Valid reports whether u is one of the supported units.
func (u BucketUnit) Valid() bool {
	return u.Duration() > 0
}

func (u BucketUnit) String() string {
	return string(u)
}

// ParseBucketUnit accepts the canonical unit names and the usual short forms.
func ParseBucketUnit(s string) (BucketUnit, error) {
	switch strings.TrimSpace(s) {
	case "minutes", "minute", "min", "m", "T":
		return UnitMinutes, nil
	case "hours", "hour", "h", "H":
		return UnitHours, nil
	case "days", "day", "d", "D":
		return UnitDays, nil
	}
	return "", &UnsupportedConfigurationError{Field: "unit", Value: s}
}

// ChartKind selects how buckets are drawn.
type ChartKind string

const (
	KindBars ChartKind = "bars"
	KindDots ChartKind = "dots"
	KindLine ChartKind = "line"
)

// ChartKinds lists the supported kinds in cycling order.
var ChartKinds = []ChartKind{KindBars, KindDots, KindLine}

func (k ChartKind) String() string {
	return string(k)
}

// ParseChartKind accepts the canonical kind names. "plots" is kept as an
// alias for a connected line.
func ParseChartKind(s string) (ChartKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "bars", "bar":
		return KindBars, nil
	case "dots", "dot", "points":
		return KindDots, nil
	case "line", "lines", "plots", "plot":
		return KindLine, nil
	}
	return "", &UnsupportedConfigurationError{Field: "kind", Value: s}
}

// TimelineConfig is the full set of knobs for one aggregate/render pass.
type TimelineConfig struct {
	Unit       BucketUnit `json:"unit" yaml:"unit"`
	ShiftHours float64    `json:"shiftHours" yaml:"shift_hours"`
	Kind       ChartKind  `json:"kind" yaml:"kind"`
	// BarWidth is measured in days, the unit of the chart's time axis.
	BarWidth float64 `json:"barWidth" yaml:"bar_width"`
}

// DefaultTimelineConfig returns minute buckets drawn as narrow bars.
func DefaultTimelineConfig() TimelineConfig {
	return TimelineConfig{
		Unit:       UnitMinutes,
		ShiftHours: 0,
		Kind:       KindBars,
		BarWidth:   0.02,
	}
}

// Shift returns the time shift as a duration.
func (c TimelineConfig) Shift() time.Duration {
	return time.Duration(c.ShiftHours * float64(time.Hour))
}

// BarDuration converts BarWidth to a duration on the time axis.
func (c TimelineConfig) BarDuration() time.Duration {
	return time.Duration(c.BarWidth * float64(24*time.Hour))
}

// Bucket is one half-open interval [Start, Start+unit) and its event count.
type Bucket struct {
	Start time.Time `json:"start"`
	Count int       `json:"count"`
}

// Series is an ascending, gap-free run of buckets of the same unit.
type Series struct {
	Unit    BucketUnit `json:"unit"`
	Buckets []Bucket   `json:"buckets"`
}

func (s Series) Len() int {
	return len(s.Buckets)
}

// Total returns the number of events counted across all buckets.
func (s Series) Total() int {
	total := 0
	for _, b := range s.Buckets {
		total += b.Count
	}
	return total
}

// MaxCount returns the largest bucket count.
func (s Series) MaxCount() int {
	max := 0
	for _, b := range s.Buckets {
		if b.Count > max {
			max = b.Count
		}
	}
	return max
}

// First returns the start of the first bucket. The series must be non-empty.
func (s Series) First() time.Time {
	return s.Buckets[0].Start
}

// Last returns the start of the last bucket. The series must be non-empty.
func (s Series) Last() time.Time {
	return s.Buckets[len(s.Buckets)-1].Start
}

// Span is the distance between the first and the last bucket start.
func (s Series) Span() time.Duration {
	if len(s.Buckets) == 0 {
		return 0
	}
	return s.Last().Sub(s.First())
}
