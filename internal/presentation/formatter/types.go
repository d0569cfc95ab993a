package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/penwyp/go-event-timeline/internal/core/model"
)

// Output format names
const (
	FormatPNG      = "png"
	FormatJSON     = "json"
	FormatCSV      = "csv"
	FormatTable    = "table"
	FormatSummary  = "summary"
	FormatTerminal = "terminal"
)

// Formats lists every supported output format.
var Formats = []string{FormatPNG, FormatJSON, FormatCSV, FormatTable, FormatSummary, FormatTerminal}

// Formatter draws or serializes one chart.
type Formatter interface {
	Format(spec model.ChartSpec) error
}

// Options tunes formatters that have a notion of size.
type Options struct {
	Width   int    // pixels for png, cells for terminal (0 = detect)
	Height  int    // pixels for png
	Caption string // stamped under png charts when non-empty
}

// IsBinary reports whether the format produces non-text output.
func IsBinary(format string) bool {
	return strings.EqualFold(format, FormatPNG)
}

// ValidFormat reports whether name is a supported output format.
func ValidFormat(name string) bool {
	for _, f := range Formats {
		if strings.EqualFold(name, f) {
			return true
		}
	}
	return false
}

// New returns the formatter for name writing to w.
func New(name string, w io.Writer, opts Options) (Formatter, error) {
	switch strings.ToLower(name) {
	case FormatPNG:
		return NewPNGFormatter(w, opts), nil
	case FormatJSON:
		return NewJSONFormatter(w), nil
	case FormatCSV:
		return NewCSVFormatter(w), nil
	case FormatTable:
		return NewTableFormatter(w), nil
	case FormatSummary:
		return NewSummaryFormatter(w), nil
	case FormatTerminal:
		return NewTerminalFormatter(w, opts.Width), nil
	}
	return nil, &model.UnsupportedConfigurationError{Field: "output format", Value: name}
}

// bucketLabel renders a bucket start for tabular output, dropping the time
// of day for day buckets.
func bucketLabel(spec model.ChartSpec, b model.Bucket) string {
	if spec.Points.Unit == model.UnitDays {
		return b.Start.Format("2006-01-02")
	}
	return b.Start.Format("2006-01-02 15:04")
}

func errWrap(format string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s output: %w", format, err)
}
