package chart

import (
	"strconv"
	"strings"

	v1 "github.com/openshift/sippy-chat/pkg/apis/chatbot/v1"
	"github.com/openshift/sippy-chat/pkg/chat/metric"
)

// Point is a vertex of the line chart in drawing coordinates, y growing downwards.
type Point struct {
	X float64
	Y float64
}

// Marker is drawn on top of every vertex.
type Marker struct {
	Point
	Label     string
	AxisLabel string
	Value     float64
	Formatted string
}

// Line holds the ordered polyline and its markers.
type Line struct {
	Points  []Point
	Markers []Marker
	Path    string
}

func (e *Engine) line(rows []v1.Row, values []float64, summary metric.Summary) *Line {
	n := len(rows)
	l := &Line{
		Points:  make([]Point, 0, n),
		Markers: make([]Marker, 0, n),
	}

	span := summary.Max - summary.Min
	for i, row := range rows {
		var p Point
		if n > 1 {
			p.X = float64(i) / float64(n-1) * e.Width
		}
		if span == 0 {
			p.Y = e.Height / 2
		} else {
			p.Y = e.Height - (values[i]-summary.Min)/span*e.Height
		}

		label := e.Resolver.Label(row, i)
		l.Points = append(l.Points, p)
		l.Markers = append(l.Markers, Marker{
			Point:     p,
			Label:     label,
			AxisLabel: metric.AxisLabel(label),
			Value:     values[i],
			Formatted: FormatValue(values[i]),
		})
	}
	l.Path = polylinePath(l.Points)
	return l
}

func polylinePath(points []Point) string {
	var b strings.Builder
	for i, p := range points {
		if i == 0 {
			b.WriteString("M ")
		} else {
			b.WriteString(" L ")
		}
		b.WriteString(coord(p.X))
		b.WriteByte(' ')
		b.WriteString(coord(p.Y))
	}
	return b.String()
}

func coord(f float64) string {
	return strconv.FormatFloat(f, 'f', 2, 64)
}
