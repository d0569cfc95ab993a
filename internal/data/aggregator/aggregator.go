package aggregator

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/penwyp/go-event-timeline/internal/core/constants"
	"github.com/penwyp/go-event-timeline/internal/core/model"
	"github.com/penwyp/go-event-timeline/internal/data/parser"
	"github.com/penwyp/go-event-timeline/internal/util"
)

// Aggregate shifts every event by cfg.ShiftHours and counts them into
// contiguous buckets of cfg.Unit. Every bucket between the first and the last
// event is present, empty ones with a zero count. events is not modified.
// Spans too long for the unit fail with an UnsupportedConfigurationError.
func Aggregate(events []time.Time, cfg model.TimelineConfig) (model.Series, error) {
	width := cfg.Unit.Duration()
	if width <= 0 {
		return model.Series{}, &model.UnsupportedConfigurationError{Field: "unit", Value: string(cfg.Unit)}
	}
	if math.IsNaN(cfg.ShiftHours) || math.IsInf(cfg.ShiftHours, 0) {
		return model.Series{}, &model.UnsupportedConfigurationError{
			Field: "shift",
			Value: strconv.FormatFloat(cfg.ShiftHours, 'g', -1, 64),
		}
	}
	if len(events) == 0 {
		return model.Series{}, model.ErrEmptyInput
	}

	shift := cfg.Shift()
	minT := events[0].Add(shift)
	maxT := minT
	for _, e := range events[1:] {
		t := e.Add(shift)
		if t.Before(minT) {
			minT = t
		}
		if t.After(maxT) {
			maxT = t
		}
	}

	first := util.FloorTime(minT, width)
	last := util.FloorTime(maxT, width)

	// time.Duration saturates at about 292 years
	span := maxT.Sub(first)
	if !first.Add(span).Equal(maxT) {
		return model.Series{}, &model.UnsupportedConfigurationError{
			Field: "unit",
			Value: string(cfg.Unit),
			Hint:  "event span is too long to bucket",
		}
	}
	n := int(last.Sub(first)/width) + 1
	if n > constants.MaxBuckets {
		return model.Series{}, &model.UnsupportedConfigurationError{
			Field: "unit",
			Value: string(cfg.Unit),
			Hint:  fmt.Sprintf("%d buckets exceeds the limit of %d, use a coarser unit", n, constants.MaxBuckets),
		}
	}

	buckets := make([]model.Bucket, n)
	for i := range buckets {
		buckets[i].Start = first.Add(time.Duration(i) * width)
	}
	for _, e := range events {
		idx := int(e.Add(shift).Sub(first) / width)
		buckets[idx].Count++
	}

	util.LogDebug("Aggregated events",
		util.F("events", len(events)),
		util.F("buckets", n),
		util.F("unit", cfg.Unit),
		util.F("shift_hours", cfg.ShiftHours))

	return model.Series{Unit: cfg.Unit, Buckets: buckets}, nil
}

// AggregateLines parses raw timestamp strings and aggregates them. Any
// malformed value fails the whole call.
func AggregateLines(lines []string, cfg model.TimelineConfig) (model.Series, error) {
	events, err := parser.ParseLines(lines)
	if err != nil {
		return model.Series{}, err
	}
	return Aggregate(events, cfg)
}
