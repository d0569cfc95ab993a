package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/penwyp/go-event-timeline/internal/core/constants"
	"github.com/penwyp/go-event-timeline/internal/core/model"
	"github.com/penwyp/go-event-timeline/internal/util"
)

// SummaryFormatter prints the headline numbers of a chart.
type SummaryFormatter struct {
	w io.Writer
}

func NewSummaryFormatter(w io.Writer) *SummaryFormatter {
	return &SummaryFormatter{w: w}
}

// Format prints totals, the busiest bucket and how many buckets were silent.
func (f *SummaryFormatter) Format(spec model.ChartSpec) error {
	series := spec.Points
	if series.Len() == 0 {
		return errWrap(FormatSummary, model.ErrEmptyInput)
	}

	var peak model.Bucket
	empty := 0
	for _, b := range series.Buckets {
		if b.Count > peak.Count {
			peak = b
		}
		if b.Count == 0 {
			empty++
		}
	}

	var sb strings.Builder
	sb.WriteString("\n=== Event Timeline Summary ===\n")
	fmt.Fprintf(&sb, "Range:          %s to %s\n",
		series.First().Format(constants.TitleLayout), series.Last().Format(constants.TitleLayout))
	fmt.Fprintf(&sb, "Span:           %s\n", util.FormatSpan(series.Span()))
	fmt.Fprintf(&sb, "Unit:           %s\n", series.Unit)
	fmt.Fprintf(&sb, "Total events:   %s\n", util.FormatCount(series.Total()))
	fmt.Fprintf(&sb, "Buckets:        %s (%s empty)\n", util.FormatCount(series.Len()), util.FormatCount(empty))
	if peak.Count > 0 {
		fmt.Fprintf(&sb, "Busiest bucket: %s (%s events)\n",
			peak.Start.Format(constants.TitleLayout), util.FormatCount(peak.Count))
	}

	_, err := io.WriteString(f.w, sb.String())
	return errWrap(FormatSummary, err)
}
