package chart

import (
	"math"

	v1 "github.com/openshift/sippy-chat/pkg/apis/chatbot/v1"
	"github.com/openshift/sippy-chat/pkg/chat/metric"
)

// Bar is one rendered bar. HeightPct is a percentage of the track height.
type Bar struct {
	Label     string
	AxisLabel string
	Value     float64
	Formatted string
	HeightPct float64
	Color     string
}

func (e *Engine) bars(rows []v1.Row, values []float64, summary metric.Summary) []Bar {
	bars := make([]Bar, 0, len(rows))
	for i, row := range rows {
		label := e.Resolver.Label(row, i)
		bars = append(bars, Bar{
			Label:     label,
			AxisLabel: metric.AxisLabel(label),
			Value:     values[i],
			Formatted: FormatValue(values[i]),
			HeightPct: e.barHeight(values[i], summary.Max),
			Color:     e.Color(i),
		})
	}
	return bars
}

// barHeight keeps zero and near-zero bars visible by flooring them.
func (e *Engine) barHeight(value, maximum float64) float64 {
	if maximum <= 0 {
		return e.FloorPct
	}
	pct := value / maximum * 100
	if math.IsNaN(pct) {
		return e.FloorPct
	}
	return math.Min(100, math.Max(e.FloorPct, pct))
}
