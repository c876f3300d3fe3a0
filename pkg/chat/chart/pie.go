package chart

import (
	"fmt"
	"math"

	v1 "github.com/openshift/sippy-chat/pkg/apis/chatbot/v1"
)

// Slice is one pie wedge. Angles are in degrees, clockwise from twelve o'clock.
// Slices follow row order so they line up with the legend.
type Slice struct {
	Label      string
	Value      float64
	Percentage float64
	StartAngle float64
	EndAngle   float64
	Start      Point
	End        Point
	LargeArc   bool
	Path       string
	Color      string
}

const fullCircleEpsilon = 1e-9

// slices walks a cumulative angle cursor over the rows. Negative values count as zero.
func (e *Engine) slices(rows []v1.Row, values []float64) ([]Slice, float64) {
	var total float64
	for _, v := range values {
		total += math.Max(0, v)
	}

	out := make([]Slice, 0, len(rows))
	cursor := 0.0
	for i, row := range rows {
		s := Slice{
			Label:      e.Resolver.Label(row, i),
			Value:      values[i],
			Color:      e.Color(i),
			StartAngle: cursor,
			EndAngle:   cursor,
		}
		if total > 0 {
			s.Percentage = math.Max(0, values[i]) / total * 100
			sweep := s.Percentage / 100 * 360
			s.EndAngle = cursor + sweep
			s.LargeArc = s.Percentage > 50
			s.Start = e.arcPoint(s.StartAngle)
			s.End = e.arcPoint(s.EndAngle)
			s.Path = e.arcPath(s)
			cursor = s.EndAngle
		}
		out = append(out, s)
	}
	return out, total
}

func (e *Engine) center() Point {
	return Point{X: e.Radius, Y: e.Radius}
}

func (e *Engine) arcPoint(deg float64) Point {
	rad := deg * math.Pi / 180
	c := e.center()
	return Point{
		X: c.X + e.Radius*math.Sin(rad),
		Y: c.Y - e.Radius*math.Cos(rad),
	}
}

func (e *Engine) arcPath(s Slice) string {
	if s.Percentage == 0 {
		return ""
	}
	c := e.center()
	r := coord(e.Radius)

	// A single arc cannot describe a full circle, so split it in two halves.
	if s.EndAngle-s.StartAngle >= 360-fullCircleEpsilon {
		top := e.arcPoint(0)
		bottom := e.arcPoint(180)
		return fmt.Sprintf("M %s %s A %s %s 0 1 1 %s %s A %s %s 0 1 1 %s %s Z",
			coord(top.X), coord(top.Y),
			r, r, coord(bottom.X), coord(bottom.Y),
			r, r, coord(top.X), coord(top.Y))
	}

	large := 0
	if s.LargeArc {
		large = 1
	}
	return fmt.Sprintf("M %s %s L %s %s A %s %s 0 %d 1 %s %s Z",
		coord(c.X), coord(c.Y),
		coord(s.Start.X), coord(s.Start.Y),
		r, r, large,
		coord(s.End.X), coord(s.End.Y))
}
