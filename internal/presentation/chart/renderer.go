package chart

import (
	"fmt"
	"strconv"
	"time"

	"github.com/penwyp/go-event-timeline/internal/core/constants"
	"github.com/penwyp/go-event-timeline/internal/core/model"
)

// YAxisLabel is the fixed label of the count axis.
const YAxisLabel = "Events per bucket"

// tickSteps are the candidate tick spacings, smallest first.
var tickSteps = []time.Duration{
	time.Minute, 2 * time.Minute, 5 * time.Minute, 10 * time.Minute,
	15 * time.Minute, 30 * time.Minute,
	time.Hour, 2 * time.Hour, 3 * time.Hour, 6 * time.Hour, 12 * time.Hour,
	24 * time.Hour, 2 * 24 * time.Hour, 7 * 24 * time.Hour, 14 * 24 * time.Hour,
	30 * 24 * time.Hour, 90 * 24 * time.Hour, 180 * 24 * time.Hour, 365 * 24 * time.Hour,
}

// Render turns an aggregated series into a drawable chart description.
func Render(series model.Series, cfg model.TimelineConfig) (model.ChartSpec, error) {
	if series.Len() == 0 {
		return model.ChartSpec{}, model.ErrEmptyInput
	}

	unit := series.Unit
	if !unit.Valid() {
		unit = cfg.Unit
	}
	width := unit.Duration()
	if width <= 0 {
		return model.ChartSpec{}, &model.UnsupportedConfigurationError{Field: "unit", Value: string(unit)}
	}

	spec := model.ChartSpec{
		Points: series,
		Kind:   cfg.Kind,
		XLabel: fmt.Sprintf("Time (%s)", unit),
		YLabel: YAxisLabel,
		XMin:   series.First(),
		XMax:   series.Last().Add(width),
		YMax:   series.MaxCount(),
	}

	switch cfg.Kind {
	case model.KindBars:
		if !(cfg.BarWidth > 0) {
			return model.ChartSpec{}, &model.UnsupportedConfigurationError{
				Field: "bar width",
				Value: strconv.FormatFloat(cfg.BarWidth, 'g', -1, 64),
			}
		}
		spec.BarWidth = cfg.BarDuration()
	case model.KindDots, model.KindLine:
	default:
		return model.ChartSpec{}, &model.UnsupportedConfigurationError{Field: "kind", Value: string(cfg.Kind)}
	}

	spec.XAxisFormat = TickLayout(series.Span())
	spec.Ticks = Ticks(spec.XMin, spec.XMax, width, spec.XAxisFormat)
	spec.Title = Title(series)
	return spec, nil
}

// TickLayout picks calendar dates for spans above DateFormatThreshold and
// time of day otherwise.
func TickLayout(span time.Duration) string {
	if span > constants.DateFormatThreshold {
		return constants.DateTickLayout
	}
	return constants.TimeTickLayout
}

// Title describes the covered range at second precision.
func Title(series model.Series) string {
	return fmt.Sprintf("Events over time: %s to %s",
		series.First().Format(constants.TitleLayout),
		series.Last().Format(constants.TitleLayout))
}

// Ticks places at most MaxTicks labels between min and max on a step that is
// a whole multiple of the bucket width.
func Ticks(min, max time.Time, unit time.Duration, layout string) []model.Tick {
	step := tickStep(max.Sub(min), unit)

	start := min.Truncate(step)
	if start.Before(min) {
		start = start.Add(step)
	}

	var ticks []model.Tick
	for t := start; !t.After(max); t = t.Add(step) {
		ticks = append(ticks, model.Tick{At: t, Label: t.Format(layout)})
		if len(ticks) >= constants.MaxTicks {
			break
		}
	}
	return ticks
}

func tickStep(span, unit time.Duration) time.Duration {
	for _, step := range tickSteps {
		if step < unit || step%unit != 0 {
			continue
		}
		if int(span/step) < constants.MaxTicks {
			return step
		}
	}
	// Fall back to an even split for very long spans
	step := span / time.Duration(constants.MaxTicks-1)
	if step < unit {
		return unit
	}
	return step - step%unit
}
