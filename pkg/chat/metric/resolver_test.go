package metric

import (
	"testing"

	"github.com/stretchr/testify/assert"

	v1 "github.com/openshift/sippy-chat/pkg/apis/chatbot/v1"
)

func TestResolveValue(t *testing.T) {
	tests := []struct {
		name     string
		row      v1.Row
		expected float64
	}{
		{
			name:     "revenue wins over everything",
			row:      v1.Row{"revenue": v1.Number(4200), "posts": v1.Number(5), "value": v1.Number(1)},
			expected: 4200,
		},
		{
			name:     "posts when revenue missing",
			row:      v1.Row{"posts": v1.Number(100)},
			expected: 100,
		},
		{
			name:     "engagement is scaled by ten",
			row:      v1.Row{"engagement": v1.Number(8.4)},
			expected: 84,
		},
		{
			name:     "generic value",
			row:      v1.Row{"value": v1.Number(7)},
			expected: 7,
		},
		{
			name:     "empty row",
			row:      v1.Row{},
			expected: 0,
		},
		{
			name:     "non numeric revenue falls through",
			row:      v1.Row{"revenue": v1.String("n/a"), "posts": v1.Number(3)},
			expected: 3,
		},
		{
			name:     "zero revenue is a defined hit",
			row:      v1.Row{"revenue": v1.Number(0), "posts": v1.Number(3)},
			expected: 0,
		},
		{
			name:     "undefined revenue falls through",
			row:      v1.Row{"revenue": v1.Value{}, "value": v1.Number(2)},
			expected: 2,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.expected, ResolveValue(tc.row), 1e-9)
		})
	}
}

func TestResolveLabel(t *testing.T) {
	assert.Equal(t, "Mon", ResolveLabel(v1.Row{"day": v1.String("Mon"), "name": v1.String("x")}, 0))
	assert.Equal(t, "#golang", ResolveLabel(v1.Row{"hashtag": v1.String("#golang")}, 0))
	assert.Equal(t, "Widgets", ResolveLabel(v1.Row{"name": v1.String("Widgets")}, 3))
	assert.Equal(t, "Item 4", ResolveLabel(v1.Row{"revenue": v1.Number(1)}, 3))
	assert.Equal(t, "Item 1", ResolveLabel(v1.Row{"day": v1.String("")}, 0))
	assert.Equal(t, "2024", ResolveLabel(v1.Row{"name": v1.Number(2024)}, 0))
}

func TestAxisLabel(t *testing.T) {
	assert.Equal(t, "Wednesda", AxisLabel("Wednesday"))
	assert.Equal(t, "Mon", AxisLabel("Mon"))
	assert.Equal(t, "ünïcödé!", AxisLabel("ünïcödé!!"))
}

func TestClassifyTrend(t *testing.T) {
	row := func(v float64) v1.Row { return v1.Row{"value": v1.Number(v)} }

	tests := []struct {
		name     string
		rows     []v1.Row
		expected Trend
	}{
		{name: "no rows", rows: nil, expected: TrendStable},
		{name: "single row", rows: []v1.Row{row(5)}, expected: TrendStable},
		{name: "up", rows: []v1.Row{row(1), row(0), row(2)}, expected: TrendUp},
		{name: "down", rows: []v1.Row{row(3), row(9), row(2)}, expected: TrendDown},
		{name: "equal endpoints", rows: []v1.Row{row(3), row(9), row(3)}, expected: TrendStable},
		{
			name:     "revenue scenario",
			rows:     []v1.Row{{"day": v1.String("Mon"), "revenue": v1.Number(4200)}, {"day": v1.String("Fri"), "revenue": v1.Number(6100)}},
			expected: TrendUp,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ClassifyTrend(tc.rows))
		})
	}
}

func TestAggregate(t *testing.T) {
	rows := []v1.Row{
		{"value": v1.Number(2)},
		{"posts": v1.Number(10)},
		{"engagement": v1.Number(0.3)},
	}
	s := Aggregate(rows)
	assert.InDelta(t, 2, s.Min, 1e-9)
	assert.InDelta(t, 10, s.Max, 1e-9)
	assert.InDelta(t, 5, s.Mean, 1e-9)

	assert.Equal(t, Summary{}, Aggregate(nil))
}

func TestCustomRules(t *testing.T) {
	r := &Resolver{
		Rules:     []Rule{{Key: "count"}, {Key: "ratio", Transform: func(v float64) float64 { return v * 100 }}},
		LabelKeys: []string{"title"},
	}
	assert.Equal(t, 12.0, r.Value(v1.Row{"count": v1.Number(12), "ratio": v1.Number(0.5)}))
	assert.Equal(t, 50.0, r.Value(v1.Row{"ratio": v1.Number(0.5)}))
	assert.Equal(t, 0.0, r.Value(v1.Row{"revenue": v1.Number(9)}))
	assert.Equal(t, "T", r.Label(v1.Row{"title": v1.String("T")}, 0))
}
