// Package chart turns a ChartSpec into render-ready geometry: bar heights, line
// vertices and pie arc paths, along with formatted summary statistics.
package chart

import (
	v1 "github.com/openshift/sippy-chat/pkg/apis/chatbot/v1"
	"github.com/openshift/sippy-chat/pkg/chat/metric"
)

const (
	DefaultWidth    = 300.0
	DefaultHeight   = 150.0
	DefaultRadius   = 80.0
	DefaultFloorPct = 8.0
)

// DefaultPalette is cycled by index for bars, slices and legend entries.
var DefaultPalette = []string{
	"#4F46E5", "#10B981", "#F59E0B", "#EF4444", "#8B5CF6", "#06B6D4", "#EC4899", "#84CC16",
}

// Engine renders chart specs. The zero value is not usable; use NewEngine.
type Engine struct {
	Width    float64
	Height   float64
	Radius   float64
	FloorPct float64
	Palette  []string
	Resolver *metric.Resolver
}

type Option func(*Engine)

// WithSize sets the drawing area used by line charts.
func WithSize(width, height float64) Option {
	return func(e *Engine) {
		e.Width = width
		e.Height = height
	}
}

// WithRadius sets the pie radius.
func WithRadius(r float64) Option {
	return func(e *Engine) {
		e.Radius = r
	}
}

// WithFloor sets the minimum visible bar height, as a percentage of the track.
func WithFloor(pct float64) Option {
	return func(e *Engine) {
		e.FloorPct = pct
	}
}

// WithPalette replaces the color palette. An empty palette is ignored.
func WithPalette(colors []string) Option {
	return func(e *Engine) {
		if len(colors) > 0 {
			e.Palette = colors
		}
	}
}

// WithResolver replaces the metric resolver.
func WithResolver(r *metric.Resolver) Option {
	return func(e *Engine) {
		e.Resolver = r
	}
}

func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		Width:    DefaultWidth,
		Height:   DefaultHeight,
		Radius:   DefaultRadius,
		FloorPct: DefaultFloorPct,
		Palette:  DefaultPalette,
		Resolver: metric.Default,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Geometry is the output of Render. Exactly one of Bars, Line or Slices is populated
// for a known chart type; Empty reports that there is nothing to draw.
type Geometry struct {
	Type    v1.ChartType
	Title   string
	Empty   bool
	Trend   metric.Trend
	Summary metric.Summary
	Min     string
	Mean    string
	Max     string
	Bars    []Bar
	Line    *Line
	Slices  []Slice
	Legend  []LegendEntry
}

// LegendEntry pairs a label with its palette color.
type LegendEntry struct {
	Label string
	Color string
}

// Color returns the palette entry for index.
func (e *Engine) Color(index int) string {
	if len(e.Palette) == 0 {
		return ""
	}
	return e.Palette[index%len(e.Palette)]
}

// Render dispatches on the chart type. It never fails: unknown types and degenerate
// data produce an empty geometry.
func (e *Engine) Render(spec v1.ChartSpec) Geometry {
	values := e.Resolver.Values(spec.Rows)
	summary := metric.Summarize(values)

	g := Geometry{
		Type:    spec.Type,
		Title:   spec.Title,
		Trend:   e.Resolver.Trend(spec.Rows),
		Summary: summary,
		Min:     FormatValue(summary.Min),
		Mean:    FormatValue(summary.Mean),
		Max:     FormatValue(summary.Max),
		Empty:   len(spec.Rows) == 0,
	}

	for i, row := range spec.Rows {
		g.Legend = append(g.Legend, LegendEntry{Label: e.Resolver.Label(row, i), Color: e.Color(i)})
	}

	switch spec.Type {
	case v1.ChartBar:
		g.Bars = e.bars(spec.Rows, values, summary)
	case v1.ChartLine:
		g.Line = e.line(spec.Rows, values, summary)
	case v1.ChartPie:
		var total float64
		g.Slices, total = e.slices(spec.Rows, values)
		if total <= 0 {
			g.Empty = true
		}
	default:
		g.Empty = true
	}
	return g
}
