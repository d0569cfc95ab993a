package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/penwyp/go-event-timeline/internal/core/model"
	"github.com/penwyp/go-event-timeline/internal/util"
)

type TableFormatter struct {
	w       io.Writer
	headers []string
}

func NewTableFormatter(w io.Writer) *TableFormatter {
	return &TableFormatter{
		w:       w,
		headers: []string{"Bucket", "Events"},
	}
}

func (f *TableFormatter) Format(spec model.ChartSpec) error {
	rows := make([][]string, 0, spec.Points.Len())
	for _, b := range spec.Points.Buckets {
		rows = append(rows, []string{bucketLabel(spec, b), util.FormatCount(b.Count)})
	}
	total := []string{"Total", util.FormatCount(spec.Points.Total())}

	widths := f.calculateColumnWidths(rows, total)

	var sb strings.Builder
	fmt.Fprintln(&sb, spec.Title)
	f.printBorder(&sb, widths, "top")
	f.printRow(&sb, f.headers, widths)
	f.printBorder(&sb, widths, "middle")
	for _, row := range rows {
		f.printRow(&sb, row, widths)
	}
	f.printBorder(&sb, widths, "middle")
	f.printRow(&sb, total, widths)
	f.printBorder(&sb, widths, "bottom")

	_, err := io.WriteString(f.w, sb.String())
	return errWrap(FormatTable, err)
}

// calculateColumnWidths sizes each column to its widest value
func (f *TableFormatter) calculateColumnWidths(rows [][]string, total []string) []int {
	widths := make([]int, len(f.headers))
	for i, header := range f.headers {
		widths[i] = util.GetDisplayWidth(header)
	}

	for _, row := range append(rows, total) {
		for i, value := range row {
			if w := util.GetDisplayWidth(value); w > widths[i] {
				widths[i] = w
			}
		}
	}

	// Minimum width for readability
	for i := range widths {
		if widths[i] < 8 {
			widths[i] = 8
		}
	}
	return widths
}

// printBorder prints table borders (top, middle, bottom)
func (f *TableFormatter) printBorder(sb *strings.Builder, widths []int, borderType string) {
	var left, middle, right string

	switch borderType {
	case "top":
		left, middle, right = "┌", "┬", "┐"
	case "middle":
		left, middle, right = "├", "┼", "┤"
	case "bottom":
		left, middle, right = "└", "┴", "┘"
	}

	sb.WriteString(left)
	for i, width := range widths {
		sb.WriteString(strings.Repeat("─", width+2))
		if i < len(widths)-1 {
			sb.WriteString(middle)
		}
	}
	sb.WriteString(right + "\n")
}

// printRow prints a row; the first column is left-aligned, counts right-aligned
func (f *TableFormatter) printRow(sb *strings.Builder, values []string, widths []int) {
	sb.WriteString("│")
	for i, value := range values {
		sb.WriteString(" " + util.PadString(value, widths[i], i == 0) + " │")
	}
	sb.WriteString("\n")
}
