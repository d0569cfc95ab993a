package formatter

import (
	"io"
	"time"

	"github.com/bytedance/sonic"

	"github.com/penwyp/go-event-timeline/internal/core/model"
)

type JSONFormatter struct {
	w io.Writer
}

func NewJSONFormatter(w io.Writer) *JSONFormatter {
	return &JSONFormatter{w: w}
}

type jsonTick struct {
	At    string `json:"at"`
	Label string `json:"label"`
}

type jsonBucket struct {
	Start string `json:"start"`
	Count int    `json:"count"`
}

type jsonChart struct {
	Title        string       `json:"title"`
	Kind         string       `json:"kind"`
	Unit         string       `json:"unit"`
	BarWidthDays float64      `json:"barWidthDays,omitempty"`
	XLabel       string       `json:"xLabel"`
	YLabel       string       `json:"yLabel"`
	XAxisFormat  string       `json:"xAxisFormat"`
	XMin         string       `json:"xMin"`
	XMax         string       `json:"xMax"`
	YMax         int          `json:"yMax"`
	Total        int          `json:"total"`
	Ticks        []jsonTick   `json:"ticks"`
	Buckets      []jsonBucket `json:"buckets"`
}

func (f *JSONFormatter) Format(spec model.ChartSpec) error {
	out := jsonChart{
		Title:        spec.Title,
		Kind:         string(spec.Kind),
		Unit:         string(spec.Points.Unit),
		BarWidthDays: spec.BarWidth.Hours() / 24,
		XLabel:       spec.XLabel,
		YLabel:       spec.YLabel,
		XAxisFormat:  spec.XAxisFormat,
		XMin:         spec.XMin.Format(time.RFC3339),
		XMax:         spec.XMax.Format(time.RFC3339),
		YMax:         spec.YMax,
		Total:        spec.Points.Total(),
		Ticks:        make([]jsonTick, 0, len(spec.Ticks)),
		Buckets:      make([]jsonBucket, 0, spec.Points.Len()),
	}
	for _, t := range spec.Ticks {
		out.Ticks = append(out.Ticks, jsonTick{At: t.At.Format(time.RFC3339), Label: t.Label})
	}
	for _, b := range spec.Points.Buckets {
		out.Buckets = append(out.Buckets, jsonBucket{Start: b.Start.Format(time.RFC3339), Count: b.Count})
	}

	data, err := sonic.ConfigStd.MarshalIndent(out, "", "  ")
	if err != nil {
		return errWrap(FormatJSON, err)
	}
	data = append(data, '\n')
	_, err = f.w.Write(data)
	return errWrap(FormatJSON, err)
}
