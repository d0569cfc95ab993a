package timeline

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/penwyp/go-event-timeline/internal/core/constants"
	"github.com/penwyp/go-event-timeline/internal/core/model"
	"github.com/penwyp/go-event-timeline/internal/data/aggregator"
	"github.com/penwyp/go-event-timeline/internal/data/parser"
	"github.com/penwyp/go-event-timeline/internal/presentation/chart"
	"github.com/penwyp/go-event-timeline/internal/presentation/formatter"
	"github.com/penwyp/go-event-timeline/internal/util"
)

// ErrNoFile is returned when a chart is requested before any file was loaded.
var ErrNoFile = errors.New("no event file selected")

// EventLoader reads raw events from a path.
type EventLoader func(path string) ([]time.Time, error)

// Controller owns the mutable state of a timeline session: the current
// configuration and the most recently loaded events. Every change reruns
// the pipeline synchronously; a failed change leaves the state untouched.
// A Controller is not safe for concurrent use.
type Controller struct {
	config model.TimelineConfig
	path   string
	events []time.Time
	load   EventLoader
}

// NewController returns a controller starting from cfg with no file loaded.
func NewController(cfg model.TimelineConfig) *Controller {
	return &Controller{
		config: cfg,
		load:   parser.ParseFile,
	}
}

// NewControllerWithLoader is NewController with a custom event source.
func NewControllerWithLoader(cfg model.TimelineConfig, load EventLoader) *Controller {
	c := NewController(cfg)
	c.load = load
	return c
}

// Config returns the current configuration.
func (c *Controller) Config() model.TimelineConfig {
	return c.config
}

// Path returns the loaded file, or "" before the first successful Load.
func (c *Controller) Path() string {
	return c.path
}

// EventCount returns the number of loaded events.
func (c *Controller) EventCount() int {
	return len(c.events)
}

// Load reads path and replaces the loaded events. The new events must
// produce a chart under the current configuration, otherwise the previous
// file stays loaded.
func (c *Controller) Load(path string) error {
	events, err := c.load(path)
	if err != nil {
		util.LogWarn("Failed to load event file", util.F("path", path), util.F("error", err))
		return err
	}
	if _, err := build(events, c.config); err != nil {
		return err
	}

	c.path = path
	c.events = events
	util.LogInfo("Loaded event file", util.F("path", path), util.F("events", len(events)))
	return nil
}

// Reload re-reads the current file.
func (c *Controller) Reload() error {
	if c.path == "" {
		return ErrNoFile
	}
	return c.Load(c.path)
}

// Apply switches to cfg if the loaded events can be charted with it. Before
// any file is loaded only the chart kind and unit are checked.
func (c *Controller) Apply(cfg model.TimelineConfig) error {
	if c.events == nil {
		if err := validate(cfg); err != nil {
			return err
		}
	} else if _, err := build(c.events, cfg); err != nil {
		return err
	}

	util.LogDebug("Applied timeline config",
		util.F("unit", cfg.Unit),
		util.F("shift_hours", cfg.ShiftHours),
		util.F("kind", cfg.Kind),
		util.F("bar_width", cfg.BarWidth))
	c.config = cfg
	return nil
}

func (c *Controller) SetUnit(unit model.BucketUnit) error {
	cfg := c.config
	cfg.Unit = unit
	return c.Apply(cfg)
}

func (c *Controller) SetKind(kind model.ChartKind) error {
	cfg := c.config
	cfg.Kind = kind
	return c.Apply(cfg)
}

// SetShift sets the time shift, clamped to the supported range.
func (c *Controller) SetShift(hours float64) error {
	cfg := c.config
	cfg.ShiftHours = clamp(hours, constants.MinShiftHours, constants.MaxShiftHours)
	return c.Apply(cfg)
}

// SetBarWidth sets the bar width, clamped to the supported range.
func (c *Controller) SetBarWidth(width float64) error {
	cfg := c.config
	cfg.BarWidth = clamp(width, constants.MinBarWidth, constants.MaxBarWidth)
	return c.Apply(cfg)
}

// CycleUnit advances to the next bucket unit.
func (c *Controller) CycleUnit() error {
	return c.SetUnit(next(model.BucketUnits, c.config.Unit))
}

// CycleKind advances to the next chart kind.
func (c *Controller) CycleKind() error {
	return c.SetKind(next(model.ChartKinds, c.config.Kind))
}

// NudgeShift moves the time shift by steps increments.
func (c *Controller) NudgeShift(steps int) error {
	return c.SetShift(c.config.ShiftHours + float64(steps)*constants.ShiftHoursStep)
}

// NudgeBarWidth moves the bar width by steps increments.
func (c *Controller) NudgeBarWidth(steps int) error {
	w := c.config.BarWidth + float64(steps)*constants.BarWidthStep
	// keep the slider on its 0.01 grid
	return c.SetBarWidth(math.Round(w*100) / 100)
}

// Chart runs aggregate and render on the current state.
func (c *Controller) Chart() (model.ChartSpec, error) {
	if c.events == nil {
		return model.ChartSpec{}, ErrNoFile
	}
	return build(c.events, c.config)
}

// Draw charts the current state and hands the result to f.
func (c *Controller) Draw(f formatter.Formatter) error {
	spec, err := c.Chart()
	if err != nil {
		return err
	}
	return f.Format(spec)
}

// Status summarizes the current state in one line.
func (c *Controller) Status() string {
	cfg := c.config
	s := fmt.Sprintf("unit=%s kind=%s shift=%s", cfg.Unit, cfg.Kind, util.FormatSignedHours(cfg.ShiftHours))
	if cfg.Kind == model.KindBars {
		s += fmt.Sprintf(" width=%.2f", cfg.BarWidth)
	}
	if c.path != "" {
		s += fmt.Sprintf(" events=%s", util.FormatCount(len(c.events)))
	}
	return s
}

// build is the whole pipeline: aggregate, then render.
func build(events []time.Time, cfg model.TimelineConfig) (model.ChartSpec, error) {
	series, err := aggregator.Aggregate(events, cfg)
	if err != nil {
		return model.ChartSpec{}, err
	}
	return chart.Render(series, cfg)
}

// validate checks cfg without data by rendering a one-bucket series.
func validate(cfg model.TimelineConfig) error {
	probe := []time.Time{time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)}
	_, err := build(probe, cfg)
	return err
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return v
	}
	return math.Max(lo, math.Min(hi, v))
}

func next[T comparable](values []T, current T) T {
	for i, v := range values {
		if v == current {
			return values[(i+1)%len(values)]
		}
	}
	return values[0]
}
