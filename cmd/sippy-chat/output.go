package main

import (
	"fmt"
	"io"
	"strings"

	v1 "github.com/openshift/sippy-chat/pkg/apis/chatbot/v1"
	"github.com/openshift/sippy-chat/pkg/chat"
	"github.com/openshift/sippy-chat/pkg/chat/chart"
	"github.com/openshift/sippy-chat/pkg/chat/metric"
)

var trendSymbols = map[metric.Trend]string{
	metric.TrendUp:     "↑",
	metric.TrendDown:   "↓",
	metric.TrendStable: "→",
}

// terminalNotifier logs every notification and echoes warnings and errors to out.
func terminalNotifier(out io.Writer) chat.Notifier {
	return chat.NotifierFunc(func(n chat.Notification) {
		chat.LogNotifier{}.Notify(n)
		if out != nil && n.Level != chat.LevelInfo {
			fmt.Fprintf(out, "[%s] %s\n", n.Level, n.Message)
		}
	})
}

func printMessage(w io.Writer, engine *chart.Engine, m chat.Message) {
	prefix := "you"
	if m.Role == chat.RoleBot {
		prefix = "bot"
	}
	fmt.Fprintf(w, "%s> %s\n", prefix, m.DisplayContent())
	if m.Chart != nil {
		printChart(w, engine, *m.Chart)
	}
	if m.Role == chat.RoleBot && m.WorkflowID != "" {
		fmt.Fprintf(w, "     workflow %s", m.WorkflowID)
		if m.ExecutionTimeMs > 0 {
			fmt.Fprintf(w, " (%.0fms)", m.ExecutionTimeMs)
		}
		fmt.Fprintln(w)
	}
	printSuggestions(w, m.Suggestions)
}

func printSuggestions(w io.Writer, suggestions []string) {
	for i, s := range suggestions {
		fmt.Fprintf(w, "  [%d] %s\n", i+1, s)
	}
}

// printChart renders the chart geometry as text: one line per bar, point or slice
// followed by the summary statistics.
func printChart(w io.Writer, engine *chart.Engine, spec v1.ChartSpec) {
	g := engine.Render(spec)
	title := g.Title
	if title == "" {
		title = string(g.Type)
	}
	fmt.Fprintf(w, "  ┌ %s %s\n", title, trendSymbols[g.Trend])
	if g.Empty {
		fmt.Fprintln(w, "  │ (no data)")
		fmt.Fprintln(w, "  └")
		return
	}

	switch {
	case len(g.Bars) > 0:
		for _, b := range g.Bars {
			width := int(b.HeightPct / 100 * 30)
			fmt.Fprintf(w, "  │ %-8s %s %s\n", b.AxisLabel, strings.Repeat("█", width), b.Formatted)
		}
	case g.Line != nil:
		for _, mk := range g.Line.Markers {
			fmt.Fprintf(w, "  │ %-8s %s\n", mk.AxisLabel, mk.Formatted)
		}
	case len(g.Slices) > 0:
		for _, s := range g.Slices {
			fmt.Fprintf(w, "  │ %-16s %5.1f%%\n", s.Label, s.Percentage)
		}
	}
	fmt.Fprintf(w, "  └ min %s · avg %s · max %s\n", g.Min, g.Mean, g.Max)
}
