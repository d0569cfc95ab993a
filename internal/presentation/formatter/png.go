package formatter

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"strings"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/penwyp/go-event-timeline/internal/core/model"
	"github.com/penwyp/go-event-timeline/internal/util"
)

// Default export size, a 15x6 aspect
const (
	DefaultPNGWidth  = 1500
	DefaultPNGHeight = 600
)

var seriesColor = drawing.ColorFromHex("1f77b4")

// PNGFormatter draws the chart as a PNG image.
type PNGFormatter struct {
	w       io.Writer
	width   int
	height  int
	caption string
}

func NewPNGFormatter(w io.Writer, opts Options) *PNGFormatter {
	f := &PNGFormatter{
		w:       w,
		width:   opts.Width,
		height:  opts.Height,
		caption: opts.Caption,
	}
	if f.width <= 0 {
		f.width = DefaultPNGWidth
	}
	if f.height <= 0 {
		f.height = DefaultPNGHeight
	}
	return f
}

func (f *PNGFormatter) Format(spec model.ChartSpec) error {
	ch, err := BuildChart(spec)
	if err != nil {
		return err
	}
	ch.Width = f.width
	ch.Height = f.height

	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return errWrap(FormatPNG, err)
	}

	if strings.TrimSpace(f.caption) == "" {
		_, err := f.w.Write(buf.Bytes())
		return errWrap(FormatPNG, err)
	}

	img, err := png.Decode(&buf)
	if err != nil {
		return errWrap(FormatPNG, err)
	}
	return errWrap(FormatPNG, png.Encode(f.w, drawCaption(img, f.caption)))
}

// BuildChart maps a ChartSpec onto a go-chart chart without rendering it.
func BuildChart(spec model.ChartSpec) (chart.Chart, error) {
	if spec.Points.Len() == 0 {
		return chart.Chart{}, model.ErrEmptyInput
	}

	xs := make([]time.Time, spec.Points.Len())
	ys := make([]float64, spec.Points.Len())
	for i, b := range spec.Points.Buckets {
		xs[i] = b.Start
		ys[i] = float64(b.Count)
	}

	xMin, xMax := spec.XMin, spec.XMax
	var series chart.Series
	switch spec.Kind {
	case model.KindBars:
		if spec.BarWidth <= 0 {
			return chart.Chart{}, &model.UnsupportedConfigurationError{Field: "bar width", Value: spec.BarWidth.String()}
		}
		// Bars are centred on the bucket start
		xMin = xMin.Add(-spec.BarWidth / 2)
		if edge := spec.Points.Last().Add(spec.BarWidth / 2); edge.After(xMax) {
			xMax = edge
		}
		series = barSeries{
			name:   "Events",
			style:  chart.Style{FillColor: seriesColor.WithAlpha(220), StrokeColor: seriesColor, StrokeWidth: 1},
			starts: xs,
			counts: ys,
			width:  spec.BarWidth,
		}
	case model.KindDots:
		series = chart.TimeSeries{Name: "Events", XValues: xs, YValues: ys, Style: pointStyle(seriesColor)}
	case model.KindLine:
		series = chart.TimeSeries{
			Name:    "Events",
			XValues: xs,
			YValues: ys,
			Style:   chart.Style{StrokeColor: seriesColor, StrokeWidth: 1.5},
		}
	default:
		return chart.Chart{}, &model.UnsupportedConfigurationError{Field: "kind", Value: string(spec.Kind)}
	}

	xTicks := make([]chart.Tick, 0, len(spec.Ticks))
	for _, t := range spec.Ticks {
		xTicks = append(xTicks, chart.Tick{Value: chart.TimeToFloat64(t.At), Label: t.Label})
	}

	yMax, yTicks := countTicks(spec.YMax, 5)

	return chart.Chart{
		Title:      spec.Title,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 24, Bottom: 16}},
		XAxis: chart.XAxis{
			Name:  spec.XLabel,
			Range: &chart.ContinuousRange{Min: chart.TimeToFloat64(xMin), Max: chart.TimeToFloat64(xMax)},
			Ticks: xTicks,
		},
		YAxis: chart.YAxis{
			Name:  spec.YLabel,
			Range: &chart.ContinuousRange{Min: 0, Max: yMax},
			Ticks: yTicks,
		},
		Series: []chart.Series{series},
	}, nil
}

// pointStyle returns a style that renders points only (no connecting line)
func pointStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeWidth: chart.Disabled,
		DotWidth:    4,
		DotColor:    col,
	}
}

// countTicks returns an axis maximum and integer ticks for counts up to max.
func countTicks(max, n int) (float64, []chart.Tick) {
	if max < 1 {
		max = 1
	}
	raw := float64(max) / float64(n)
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	step := mag
	for _, c := range []float64{1, 2, 5, 10} {
		if c*mag >= raw {
			step = c * mag
			break
		}
	}
	if step < 1 {
		step = 1
	}

	top := math.Ceil(float64(max)/step) * step
	ticks := make([]chart.Tick, 0, n+2)
	for v := 0.0; v <= top+step/2; v += step {
		ticks = append(ticks, chart.Tick{Value: v, Label: util.FormatCount(int(v))})
	}
	return top, ticks
}

// barSeries draws one filled rectangle per bucket. Its width is independent
// of the bucket spacing, so wide bars may overlap.
type barSeries struct {
	name   string
	style  chart.Style
	starts []time.Time
	counts []float64
	width  time.Duration
}

func (b barSeries) GetName() string { return b.name }

func (b barSeries) GetStyle() chart.Style { return b.style }

func (b barSeries) GetYAxis() chart.YAxisType { return chart.YAxisPrimary }

func (b barSeries) Validate() error {
	if len(b.starts) != len(b.counts) {
		return fmt.Errorf("bar series: %d starts but %d counts", len(b.starts), len(b.counts))
	}
	if b.width <= 0 {
		return fmt.Errorf("bar series: width must be positive")
	}
	return nil
}

func (b barSeries) Render(r chart.Renderer, canvasBox chart.Box, xrange, yrange chart.Range, defaults chart.Style) {
	style := b.style.InheritFrom(defaults)
	half := b.width / 2
	bottom := canvasBox.Bottom - yrange.Translate(0)

	for i, start := range b.starts {
		if b.counts[i] <= 0 {
			continue
		}
		left := canvasBox.Left + xrange.Translate(chart.TimeToFloat64(start.Add(-half)))
		right := canvasBox.Left + xrange.Translate(chart.TimeToFloat64(start.Add(half)))
		if right <= left {
			right = left + 1
		}
		top := canvasBox.Bottom - yrange.Translate(b.counts[i])
		chart.Draw.Box(r, chart.Box{Top: top, Left: left, Right: right, Bottom: bottom}, style)
	}
}

// drawCaption stamps text onto the bottom-left corner of img.
func drawCaption(img image.Image, text string) image.Image {
	b := img.Bounds()
	rgba := image.NewRGBA(b)
	draw.Draw(rgba, b, img, b.Min, draw.Src)

	face := basicfont.Face7x13
	dr := &font.Drawer{
		Dst:  rgba,
		Src:  image.NewUniform(color.RGBA{R: 80, G: 80, B: 80, A: 255}),
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.I(b.Min.X + 8), Y: fixed.I(b.Max.Y - 6)},
	}
	dr.DrawString(text)
	return rgba
}
