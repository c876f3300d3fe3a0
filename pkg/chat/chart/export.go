package chart

import (
	"errors"
	"io"
	"math"
	"strings"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	v1 "github.com/openshift/sippy-chat/pkg/apis/chatbot/v1"
)

// ErrNothingToRender is returned by the exporters when a spec has no drawable data.
var ErrNothingToRender = errors.New("chart has nothing to render")

// ExportSize is the canvas used by the exporters, in pixels.
type ExportSize struct {
	Width  int
	Height int
}

var DefaultExportSize = ExportSize{Width: 800, Height: 400}

// WriteSVG renders spec as an SVG document.
func (e *Engine) WriteSVG(w io.Writer, spec v1.ChartSpec, size ExportSize) error {
	return e.export(w, spec, size, gochart.SVG)
}

// WritePNG renders spec as a PNG image.
func (e *Engine) WritePNG(w io.Writer, spec v1.ChartSpec, size ExportSize) error {
	return e.export(w, spec, size, gochart.PNG)
}

type renderable interface {
	Render(rp gochart.RendererProvider, w io.Writer) error
}

func (e *Engine) export(w io.Writer, spec v1.ChartSpec, size ExportSize, rp gochart.RendererProvider) error {
	if len(spec.Rows) == 0 {
		return ErrNothingToRender
	}
	if size.Width <= 0 || size.Height <= 0 {
		size = DefaultExportSize
	}

	var r renderable
	switch spec.Type {
	case v1.ChartBar:
		r = e.goBarChart(spec, size)
	case v1.ChartLine:
		r = e.goLineChart(spec, size)
	case v1.ChartPie:
		pie, ok := e.goPieChart(spec, size)
		if !ok {
			return ErrNothingToRender
		}
		r = pie
	default:
		return ErrNothingToRender
	}
	return r.Render(rp, w)
}

func (e *Engine) paletteColor(index int) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(e.Color(index), "#"))
}

func (e *Engine) goBarChart(spec v1.ChartSpec, size ExportSize) *gochart.BarChart {
	values := e.Resolver.Values(spec.Rows)
	bars := make([]gochart.Value, len(values))
	maximum, minimum := math.Inf(-1), math.Inf(1)
	for i, v := range values {
		maximum = math.Max(maximum, v)
		minimum = math.Min(minimum, v)
		bars[i] = gochart.Value{
			Label: e.Resolver.Label(spec.Rows[i], i),
			Value: v,
			Style: gochart.Style{FillColor: e.paletteColor(i), StrokeColor: e.paletteColor(i)},
		}
	}

	slot := (size.Width - 100) / len(bars)
	bc := &gochart.BarChart{
		Title:      spec.Title,
		Width:      size.Width,
		Height:     size.Height,
		BarWidth:   max(1, slot*2/3),
		BarSpacing: max(1, slot/3),
		Bars:       bars,
	}
	switch {
	case maximum <= 0:
		bc.YAxis.Range = &gochart.ContinuousRange{Min: 0, Max: 1}
	case minimum == maximum:
		// go-chart rejects a zero-height value range.
		bc.YAxis.Range = &gochart.ContinuousRange{Min: math.Min(0, minimum), Max: maximum + 1}
	}
	return bc
}

func (e *Engine) goLineChart(spec v1.ChartSpec, size ExportSize) *gochart.Chart {
	ys := e.Resolver.Values(spec.Rows)
	xs := make([]float64, len(ys))
	for i := range xs {
		xs[i] = float64(i)
	}

	c := &gochart.Chart{
		Title:  spec.Title,
		Width:  size.Width,
		Height: size.Height,
		Series: []gochart.Series{
			gochart.ContinuousSeries{
				Name:    spec.Title,
				XValues: xs,
				YValues: ys,
				Style: gochart.Style{
					StrokeColor: e.paletteColor(0),
					StrokeWidth: 2,
					DotColor:    e.paletteColor(0),
					DotWidth:    3,
				},
			},
		},
	}
	if len(xs) == 1 {
		c.XAxis.Range = &gochart.ContinuousRange{Min: 0, Max: 1}
	}
	if s := e.Resolver.Aggregate(spec.Rows); s.Max == s.Min {
		c.YAxis.Range = &gochart.ContinuousRange{Min: s.Min - 1, Max: s.Max + 1}
	}
	return c
}

// goPieChart drops empty slices; go-chart cannot draw a pie without a positive total.
func (e *Engine) goPieChart(spec v1.ChartSpec, size ExportSize) (*gochart.PieChart, bool) {
	values := e.Resolver.Values(spec.Rows)
	var slices []gochart.Value
	for i, v := range values {
		if v <= 0 {
			continue
		}
		slices = append(slices, gochart.Value{
			Label: e.Resolver.Label(spec.Rows[i], i),
			Value: v,
			Style: gochart.Style{FillColor: e.paletteColor(i)},
		})
	}
	if len(slices) == 0 {
		return nil, false
	}
	return &gochart.PieChart{
		Title:  spec.Title,
		Width:  size.Width,
		Height: size.Height,
		Values: slices,
	}, true
}
