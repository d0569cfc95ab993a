package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/penwyp/go-event-timeline/internal/core/constants"
	"github.com/penwyp/go-event-timeline/internal/core/model"
	"github.com/penwyp/go-event-timeline/internal/presentation/formatter"
)

const (
	DefaultConfigFile = "~/.go-event-timeline/config.yaml"
	DefaultLogFile    = "~/.go-event-timeline/logs/app.log"

	minImageSize = 200
	maxImageSize = 8000
)

// Config is the layered application configuration. Values come from the
// defaults, then an optional YAML file, then command line flags.
type Config struct {
	Timeline TimelineSettings `yaml:"timeline"`
	Output   OutputSettings   `yaml:"output"`
	Log      LogSettings      `yaml:"log"`
}

type TimelineSettings struct {
	Unit       string  `yaml:"unit"`
	ShiftHours float64 `yaml:"shift_hours"`
	Kind       string  `yaml:"kind"`
	BarWidth   float64 `yaml:"bar_width"`
}

type OutputSettings struct {
	Format  string `yaml:"format"`
	Path    string `yaml:"path"`
	Width   int    `yaml:"width"`
	Height  int    `yaml:"height"`
	Caption bool   `yaml:"caption"`
}

type LogSettings struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Default returns the built-in configuration.
func Default() Config {
	tc := model.DefaultTimelineConfig()
	return Config{
		Timeline: TimelineSettings{
			Unit:       string(tc.Unit),
			ShiftHours: tc.ShiftHours,
			Kind:       string(tc.Kind),
			BarWidth:   tc.BarWidth,
		},
		Output: OutputSettings{
			Format:  formatter.FormatTerminal,
			Width:   formatter.DefaultPNGWidth,
			Height:  formatter.DefaultPNGHeight,
			Caption: true,
		},
		Log: LogSettings{
			Level: "info",
			File:  DefaultLogFile,
		},
	}
}

// Load overlays the YAML file at path on the defaults. A missing file is
// only an error when explicit is set.
func Load(path string, explicit bool) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(ExpandPath(path))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks every value against the ranges the UI exposes.
func (c Config) Validate() error {
	if _, err := c.TimelineConfig(); err != nil {
		return err
	}

	t := c.Timeline
	if !(t.BarWidth >= constants.MinBarWidth && t.BarWidth <= constants.MaxBarWidth) {
		return outOfRange("bar width", t.BarWidth, constants.MinBarWidth, constants.MaxBarWidth)
	}
	if !(t.ShiftHours >= constants.MinShiftHours && t.ShiftHours <= constants.MaxShiftHours) {
		return outOfRange("shift", t.ShiftHours, constants.MinShiftHours, constants.MaxShiftHours)
	}

	if !formatter.ValidFormat(c.Output.Format) {
		return &model.UnsupportedConfigurationError{Field: "output format", Value: c.Output.Format}
	}
	if c.Output.Width < minImageSize || c.Output.Width > maxImageSize {
		return fmt.Errorf("image width %d out of range [%d, %d]", c.Output.Width, minImageSize, maxImageSize)
	}
	if c.Output.Height < minImageSize || c.Output.Height > maxImageSize {
		return fmt.Errorf("image height %d out of range [%d, %d]", c.Output.Height, minImageSize, maxImageSize)
	}
	return nil
}

// TimelineConfig converts the timeline section into the pipeline's config.
func (c Config) TimelineConfig() (model.TimelineConfig, error) {
	unit, err := model.ParseBucketUnit(c.Timeline.Unit)
	if err != nil {
		return model.TimelineConfig{}, err
	}
	kind, err := model.ParseChartKind(c.Timeline.Kind)
	if err != nil {
		return model.TimelineConfig{}, err
	}
	return model.TimelineConfig{
		Unit:       unit,
		ShiftHours: c.Timeline.ShiftHours,
		Kind:       kind,
		BarWidth:   c.Timeline.BarWidth,
	}, nil
}

// ExpandPath expands a leading ~/ and makes the path absolute.
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[2:])
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return absPath
}

func outOfRange(field string, v, lo, hi float64) error {
	return &model.UnsupportedConfigurationError{
		Field: field,
		Value: fmt.Sprintf("%s (allowed %s to %s)", fmtFloat(v), fmtFloat(lo), fmtFloat(hi)),
	}
}

func fmtFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
