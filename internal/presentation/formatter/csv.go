package formatter

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/penwyp/go-event-timeline/internal/core/constants"
	"github.com/penwyp/go-event-timeline/internal/core/model"
)

type CSVFormatter struct {
	w io.Writer
}

func NewCSVFormatter(w io.Writer) *CSVFormatter {
	return &CSVFormatter{w: w}
}

func (f *CSVFormatter) Format(spec model.ChartSpec) error {
	w := csv.NewWriter(f.w)

	if err := w.Write([]string{"bucket_start", "count"}); err != nil {
		return errWrap(FormatCSV, err)
	}
	for _, b := range spec.Points.Buckets {
		record := []string{
			b.Start.Format(constants.TitleLayout),
			strconv.Itoa(b.Count),
		}
		if err := w.Write(record); err != nil {
			return errWrap(FormatCSV, err)
		}
	}

	w.Flush()
	return errWrap(FormatCSV, w.Error())
}
