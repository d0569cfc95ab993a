package formatter

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/penwyp/go-event-timeline/internal/core/model"
	"github.com/penwyp/go-event-timeline/internal/util"
)

const (
	defaultTerminalWidth = 80
	// Buckets beyond this are elided so huge series do not flood the screen
	maxTerminalRows = 500
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	axisStyle  = lipgloss.NewStyle().Faint(true)
)

// TerminalFormatter draws the timeline as one horizontal bar per bucket.
type TerminalFormatter struct {
	w     io.Writer
	width int
}

// NewTerminalFormatter uses width cells, or the terminal width when width is 0.
func NewTerminalFormatter(w io.Writer, width int) *TerminalFormatter {
	return &TerminalFormatter{w: w, width: width}
}

func (f *TerminalFormatter) Format(spec model.ChartSpec) error {
	_, err := io.WriteString(f.w, f.Render(spec))
	return errWrap(FormatTerminal, err)
}

// Render returns the drawn chart as text.
func (f *TerminalFormatter) Render(spec model.ChartSpec) string {
	width := f.width
	if width <= 0 {
		width = terminalWidth()
	}

	buckets := spec.Points.Buckets
	hidden := 0
	if len(buckets) > maxTerminalRows {
		hidden = len(buckets) - maxTerminalRows
		buckets = buckets[:maxTerminalRows]
	}

	labels := make([]string, len(buckets))
	counts := make([]string, len(buckets))
	labelWidth, countWidth := 0, 0
	for i, b := range buckets {
		labels[i] = bucketLabel(spec, b)
		counts[i] = util.FormatCount(b.Count)
		labelWidth = max(labelWidth, util.GetDisplayWidth(labels[i]))
		countWidth = max(countWidth, util.GetDisplayWidth(counts[i]))
	}

	// label │bar count
	barWidth := width - labelWidth - countWidth - 3
	if barWidth < 10 {
		barWidth = 10
	}

	var sb strings.Builder
	sb.WriteString(titleStyle.Render(util.Truncate(spec.Title, width)) + "\n")
	sb.WriteString(axisStyle.Render(fmt.Sprintf("%s / %s", spec.YLabel, spec.XLabel)) + "\n\n")

	for i, b := range buckets {
		mark := f.mark(spec.Kind, b.Count, spec.YMax, barWidth)
		fmt.Fprintf(&sb, "%s │%s %s\n",
			util.PadString(labels[i], labelWidth, true),
			util.PadString(mark, barWidth, true),
			util.PadString(counts[i], countWidth, false))
	}
	if hidden > 0 {
		fmt.Fprintf(&sb, "%s │ … %s more buckets\n", strings.Repeat(" ", labelWidth), util.FormatCount(hidden))
	}
	return sb.String()
}

// mark draws a full bar for bar charts and a single marker at the bar's tip
// for dot and line charts.
func (f *TerminalFormatter) mark(kind model.ChartKind, count, maxCount, width int) string {
	bar := util.CreateBar(count, maxCount, width)
	if kind == model.KindBars || bar == "" {
		return bar
	}

	marker := "●"
	if kind == model.KindLine {
		marker = "•"
	}
	n := util.GetDisplayWidth(bar)
	return strings.Repeat(" ", n-1) + marker
}

func terminalWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w < 40 {
		return defaultTerminalWidth
	}
	return w
}
