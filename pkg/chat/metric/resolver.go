// Package metric extracts a single numeric value and a label from heterogeneous
// chart rows, and classifies the trend of a series.
package metric

import (
	"fmt"

	"github.com/montanaflynn/stats"

	v1 "github.com/openshift/sippy-chat/pkg/apis/chatbot/v1"
)

// Rule maps one row field to a value. Rules are evaluated in order and the first
// field that holds a finite number wins.
type Rule struct {
	Key       string
	Transform func(float64) float64
}

func identity(v float64) float64 { return v }

// DefaultRules lets one engine render sales rows, hashtag rows and generic rows.
var DefaultRules = []Rule{
	{Key: "revenue", Transform: identity},
	{Key: "posts", Transform: identity},
	{Key: "engagement", Transform: func(v float64) float64 { return v * 10 }},
	{Key: "value", Transform: identity},
}

// DefaultLabelKeys is the precedence used to pick a row label.
var DefaultLabelKeys = []string{"day", "hashtag", "name"}

// AxisLabelLength is the number of characters kept by AxisLabel.
const AxisLabelLength = 8

// Trend is the direction of a series between its first and last point.
type Trend string

const (
	TrendUp     Trend = "up"
	TrendDown   Trend = "down"
	TrendStable Trend = "stable"
)

// Summary holds aggregate statistics over the resolved values of a series.
type Summary struct {
	Min  float64
	Max  float64
	Mean float64
}

// Resolver applies a value precedence and a label precedence to rows.
type Resolver struct {
	Rules     []Rule
	LabelKeys []string
}

// Default is the resolver used by the package level helpers.
var Default = New()

// New returns a Resolver with DefaultRules and DefaultLabelKeys.
func New() *Resolver {
	return &Resolver{Rules: DefaultRules, LabelKeys: DefaultLabelKeys}
}

// Value resolves the numeric value of a row, or 0 when no rule matches.
func (r *Resolver) Value(row v1.Row) float64 {
	for _, rule := range r.Rules {
		v, ok := row.Get(rule.Key)
		if !ok {
			continue
		}
		f, ok := v.Float64()
		if !ok {
			continue
		}
		if rule.Transform == nil {
			return f
		}
		return rule.Transform(f)
	}
	return 0
}

// Label resolves the display label of the row at index. The label is never truncated.
func (r *Resolver) Label(row v1.Row, index int) string {
	for _, key := range r.LabelKeys {
		v, ok := row.Get(key)
		if !ok {
			continue
		}
		if s, ok := v.Text(); ok && s != "" {
			return s
		}
	}
	return fmt.Sprintf("Item %d", index+1)
}

// Values resolves every row in order.
func (r *Resolver) Values(rows []v1.Row) []float64 {
	values := make([]float64, len(rows))
	for i, row := range rows {
		values[i] = r.Value(row)
	}
	return values
}

// Trend compares the first and last resolved values. Fewer than two rows is stable.
func (r *Resolver) Trend(rows []v1.Row) Trend {
	if len(rows) < 2 {
		return TrendStable
	}
	first, last := r.Value(rows[0]), r.Value(rows[len(rows)-1])
	switch {
	case last > first:
		return TrendUp
	case last < first:
		return TrendDown
	default:
		return TrendStable
	}
}

// Aggregate computes min, max and mean of the resolved values.
func (r *Resolver) Aggregate(rows []v1.Row) Summary {
	return Summarize(r.Values(rows))
}

// Summarize computes min, max and mean of values. An empty series is all zeros.
func Summarize(values []float64) Summary {
	if len(values) == 0 {
		return Summary{}
	}
	data := stats.LoadRawData(values)
	minimum, _ := stats.Min(data)
	maximum, _ := stats.Max(data)
	mean, _ := stats.Mean(data)
	return Summary{Min: minimum, Max: maximum, Mean: mean}
}

// ResolveValue resolves a row with the default rules.
func ResolveValue(row v1.Row) float64 {
	return Default.Value(row)
}

// ResolveLabel resolves a label with the default label keys.
func ResolveLabel(row v1.Row, index int) string {
	return Default.Label(row, index)
}

// ClassifyTrend classifies rows with the default rules.
func ClassifyTrend(rows []v1.Row) Trend {
	return Default.Trend(rows)
}

// Aggregate summarizes rows with the default rules.
func Aggregate(rows []v1.Row) Summary {
	return Default.Aggregate(rows)
}

// AxisLabel shortens a label for axis display.
func AxisLabel(label string) string {
	runes := []rune(label)
	if len(runes) <= AxisLabelLength {
		return label
	}
	return string(runes[:AxisLabelLength])
}
