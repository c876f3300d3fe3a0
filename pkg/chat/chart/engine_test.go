package chart

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	v1 "github.com/openshift/sippy-chat/pkg/apis/chatbot/v1"
	"github.com/openshift/sippy-chat/pkg/chat/metric"
)

func valueRows(values ...float64) []v1.Row {
	rows := make([]v1.Row, len(values))
	for i, v := range values {
		rows[i] = v1.Row{"value": v1.Number(v)}
	}
	return rows
}

func TestBarHeights(t *testing.T) {
	e := NewEngine()

	tests := []struct {
		name     string
		values   []float64
		expected []float64
	}{
		{name: "scaled to max", values: []float64{50, 100, 25}, expected: []float64{50, 100, 25}},
		{name: "small bars floored", values: []float64{1, 100, 0}, expected: []float64{DefaultFloorPct, 100, DefaultFloorPct}},
		{name: "all zero at floor", values: []float64{0, 0, 0}, expected: []float64{DefaultFloorPct, DefaultFloorPct, DefaultFloorPct}},
		{name: "negative max at floor", values: []float64{-5, -1}, expected: []float64{DefaultFloorPct, DefaultFloorPct}},
		{name: "single bar", values: []float64{3}, expected: []float64{100}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := e.Render(v1.ChartSpec{Type: v1.ChartBar, Rows: valueRows(tc.values...)})
			require.Len(t, g.Bars, len(tc.expected))
			for i, bar := range g.Bars {
				assert.InDelta(t, tc.expected[i], bar.HeightPct, 1e-9, "bar %d", i)
				assert.GreaterOrEqual(t, bar.HeightPct, DefaultFloorPct)
				assert.LessOrEqual(t, bar.HeightPct, 100.0)
			}
		})
	}
}

func TestBarLabelsAndColors(t *testing.T) {
	e := NewEngine(WithPalette([]string{"#111111", "#222222"}))
	rows := []v1.Row{
		{"day": v1.String("Wednesday"), "revenue": v1.Number(10)},
		{"hashtag": v1.String("#go"), "posts": v1.Number(20)},
		{"value": v1.Number(1500)},
	}
	g := e.Render(v1.ChartSpec{Type: v1.ChartBar, Title: "Mixed", Rows: rows})

	require.Len(t, g.Bars, 3)
	assert.Equal(t, "Wednesday", g.Bars[0].Label)
	assert.Equal(t, "Wednesda", g.Bars[0].AxisLabel)
	assert.Equal(t, "Item 3", g.Bars[2].Label)
	assert.Equal(t, "1.5K", g.Bars[2].Formatted)
	assert.Equal(t, []string{"#111111", "#222222", "#111111"}, []string{g.Bars[0].Color, g.Bars[1].Color, g.Bars[2].Color})
	assert.Equal(t, "#111111", g.Legend[2].Color)
}

func TestLineGeometry(t *testing.T) {
	e := NewEngine(WithSize(100, 50))

	g := e.Render(v1.ChartSpec{Type: v1.ChartLine, Rows: valueRows(10, 30, 20)})
	require.NotNil(t, g.Line)
	require.Len(t, g.Line.Points, 3)
	require.Len(t, g.Line.Markers, 3)

	assert.Equal(t, Point{X: 0, Y: 50}, g.Line.Points[0])
	assert.Equal(t, Point{X: 50, Y: 0}, g.Line.Points[1])
	assert.Equal(t, Point{X: 100, Y: 25}, g.Line.Points[2])
	assert.Equal(t, g.Line.Points[1], g.Line.Markers[1].Point)
	assert.Equal(t, "M 0.00 50.00 L 50.00 0.00 L 100.00 25.00", g.Line.Path)
	assert.Equal(t, metric.TrendUp, g.Trend)
}

func TestLineFlatAndSingle(t *testing.T) {
	e := NewEngine(WithSize(100, 50))

	flat := e.Render(v1.ChartSpec{Type: v1.ChartLine, Rows: valueRows(7, 7, 7)})
	for _, p := range flat.Line.Points {
		assert.Equal(t, 25.0, p.Y)
	}
	assert.Equal(t, metric.TrendStable, flat.Trend)

	single := e.Render(v1.ChartSpec{Type: v1.ChartLine, Rows: valueRows(3)})
	require.Len(t, single.Line.Points, 1)
	assert.Equal(t, Point{X: 0, Y: 25}, single.Line.Points[0])
}

func TestPieSlices(t *testing.T) {
	e := NewEngine(WithRadius(10))

	g := e.Render(v1.ChartSpec{Type: v1.ChartPie, Rows: valueRows(25, 60, 15)})
	require.Len(t, g.Slices, 3)
	assert.False(t, g.Empty)

	var sum float64
	for _, s := range g.Slices {
		sum += s.Percentage
	}
	assert.InDelta(t, 100, sum, 1e-9)

	assert.InDelta(t, 25, g.Slices[0].Percentage, 1e-9)
	assert.InDelta(t, 0, g.Slices[0].StartAngle, 1e-9)
	assert.InDelta(t, 90, g.Slices[0].EndAngle, 1e-9)
	assert.InDelta(t, 90, g.Slices[1].StartAngle, 1e-9)
	assert.InDelta(t, 306, g.Slices[1].EndAngle, 1e-9)
	assert.InDelta(t, 360, g.Slices[2].EndAngle, 1e-9)

	assert.False(t, g.Slices[0].LargeArc)
	assert.True(t, g.Slices[1].LargeArc)

	// first slice starts at twelve o'clock and ends at three o'clock
	assert.InDelta(t, 10, g.Slices[0].Start.X, 1e-9)
	assert.InDelta(t, 0, g.Slices[0].Start.Y, 1e-9)
	assert.InDelta(t, 20, g.Slices[0].End.X, 1e-9)
	assert.InDelta(t, 10, g.Slices[0].End.Y, 1e-9)
	assert.Equal(t, "M 10.00 10.00 L 10.00 0.00 A 10.00 10.00 0 0 1 20.00 10.00 Z", g.Slices[0].Path)
}

func TestPieKeepsRowOrder(t *testing.T) {
	e := NewEngine()
	rows := []v1.Row{
		{"name": v1.String("small"), "value": v1.Number(1)},
		{"name": v1.String("big"), "value": v1.Number(9)},
	}
	g := e.Render(v1.ChartSpec{Type: v1.ChartPie, Rows: rows})
	assert.Equal(t, "small", g.Slices[0].Label)
	assert.Equal(t, "big", g.Slices[1].Label)
	assert.Equal(t, "small", g.Legend[0].Label)
}

func TestPieZeroTotal(t *testing.T) {
	e := NewEngine()
	g := e.Render(v1.ChartSpec{Type: v1.ChartPie, Rows: valueRows(0, 0)})
	assert.True(t, g.Empty)
	require.Len(t, g.Slices, 2)
	for _, s := range g.Slices {
		assert.Equal(t, 0.0, s.Percentage)
		assert.Empty(t, s.Path)
	}
}

func TestPieFullCircle(t *testing.T) {
	e := NewEngine(WithRadius(10))
	g := e.Render(v1.ChartSpec{Type: v1.ChartPie, Rows: valueRows(0, 42)})
	require.Len(t, g.Slices, 2)
	assert.Empty(t, g.Slices[0].Path)
	assert.InDelta(t, 100, g.Slices[1].Percentage, 1e-9)
	assert.Equal(t, "M 10.00 0.00 A 10.00 10.00 0 1 1 10.00 20.00 A 10.00 10.00 0 1 1 10.00 0.00 Z", g.Slices[1].Path)
}

func TestRenderDegenerate(t *testing.T) {
	e := NewEngine()

	for _, typ := range []v1.ChartType{v1.ChartBar, v1.ChartLine, v1.ChartPie, "scatter"} {
		g := e.Render(v1.ChartSpec{Type: typ})
		assert.True(t, g.Empty, string(typ))
		assert.Equal(t, "0", g.Max)
	}

	unknown := e.Render(v1.ChartSpec{Type: "radar", Rows: valueRows(1, 2)})
	assert.True(t, unknown.Empty)
	assert.Nil(t, unknown.Bars)
	assert.Nil(t, unknown.Line)
	assert.Nil(t, unknown.Slices)
}

func TestSummaryStrings(t *testing.T) {
	e := NewEngine()
	g := e.Render(v1.ChartSpec{Type: v1.ChartBar, Rows: valueRows(500, 2500, 3_000_000)})
	assert.Equal(t, "500", g.Min)
	assert.Equal(t, "1M", g.Mean)
	assert.Equal(t, "3M", g.Max)
}

func TestFormatValue(t *testing.T) {
	tests := map[float64]string{
		0:         "0",
		84:        "84",
		12.34:     "12.3",
		999:       "999",
		1000:      "1K",
		4200:      "4.2K",
		6100:      "6.1K",
		1_000_000: "1M",
		2_500_000: "2.5M",
		-1500:     "-1.5K",
		999.94:    "999.9",
		999.96:    "1K",
		999_950:   "1M",
		999_999:   "1M",
		-999_999:  "-1M",
	}
	for in, expected := range tests {
		assert.Equal(t, expected, FormatValue(in), "value %v", in)
	}
}

func TestWriteSVG(t *testing.T) {
	e := NewEngine()

	tests := []struct {
		name string
		spec v1.ChartSpec
	}{
		{name: "bar", spec: v1.ChartSpec{Type: v1.ChartBar, Title: "Revenue", Rows: valueRows(4200, 5100, 6100)}},
		{name: "line", spec: v1.ChartSpec{Type: v1.ChartLine, Title: "Revenue", Rows: valueRows(4200, 5100, 6100)}},
		{name: "pie", spec: v1.ChartSpec{Type: v1.ChartPie, Title: "Revenue", Rows: valueRows(4200, 5100, 6100)}},
		{name: "bar-single", spec: v1.ChartSpec{Type: v1.ChartBar, Rows: valueRows(5)}},
		{name: "bar-equal", spec: v1.ChartSpec{Type: v1.ChartBar, Rows: valueRows(7, 7, 7)}},
		{name: "bar-zero", spec: v1.ChartSpec{Type: v1.ChartBar, Rows: valueRows(0, 0)}},
		{name: "line-single", spec: v1.ChartSpec{Type: v1.ChartLine, Rows: valueRows(3)}},
		{name: "line-flat", spec: v1.ChartSpec{Type: v1.ChartLine, Rows: valueRows(2, 2)}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, e.WriteSVG(&buf, tc.spec, ExportSize{}))
			assert.Contains(t, buf.String(), "<svg")
		})
	}
}

func TestWriteSVGNothingToRender(t *testing.T) {
	e := NewEngine()
	var buf bytes.Buffer

	assert.ErrorIs(t, e.WriteSVG(&buf, v1.ChartSpec{Type: v1.ChartBar}, ExportSize{}), ErrNothingToRender)
	assert.ErrorIs(t, e.WriteSVG(&buf, v1.ChartSpec{Type: v1.ChartPie, Rows: valueRows(0, 0)}, ExportSize{}), ErrNothingToRender)
	assert.ErrorIs(t, e.WriteSVG(&buf, v1.ChartSpec{Type: "radar", Rows: valueRows(1)}, ExportSize{}), ErrNothingToRender)
}
