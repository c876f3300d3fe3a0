package flags

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	v1 "github.com/openshift/sippy-chat/pkg/apis/config/v1"
	"github.com/openshift/sippy-chat/pkg/chat/chart"
)

const (
	ChartFormatText = "text"
	ChartFormatSVG  = "svg"
	ChartFormatPNG  = "png"
)

// ChartFlags controls how chart payloads are rendered on the command line.
type ChartFlags struct {
	Format  string
	Width   int
	Height  int
	Palette []string
}

func NewChartFlags() *ChartFlags {
	return &ChartFlags{
		Format: ChartFormatText,
		Width:  chart.DefaultExportSize.Width,
		Height: chart.DefaultExportSize.Height,
	}
}

func (f *ChartFlags) BindFlags(fs *pflag.FlagSet) {
	fs.StringVar(&f.Format, "chart-format", f.Format, "How to render charts: text, svg or png")
	fs.IntVar(&f.Width, "chart-width", f.Width, "Width in pixels of exported charts")
	fs.IntVar(&f.Height, "chart-height", f.Height, "Height in pixels of exported charts")
	fs.StringSliceVar(&f.Palette, "chart-palette", f.Palette, "Comma separated hex colors cycled across series")
}

// ApplyConfig fills in values not given on the command line.
func (f *ChartFlags) ApplyConfig(cfg *v1.ChatConfig) {
	if cfg == nil {
		return
	}
	if len(f.Palette) == 0 {
		f.Palette = cfg.Chart.Palette
	}
	if cfg.Chart.Width > 0 && f.Width == chart.DefaultExportSize.Width {
		f.Width = cfg.Chart.Width
	}
	if cfg.Chart.Height > 0 && f.Height == chart.DefaultExportSize.Height {
		f.Height = cfg.Chart.Height
	}
}

func (f *ChartFlags) Validate() error {
	switch strings.ToLower(f.Format) {
	case ChartFormatText, ChartFormatSVG, ChartFormatPNG:
	default:
		return fmt.Errorf("invalid chart format %q", f.Format)
	}
	if f.Width <= 0 || f.Height <= 0 {
		return fmt.Errorf("chart size must be positive, got %dx%d", f.Width, f.Height)
	}
	return nil
}

func (f *ChartFlags) GetEngine() *chart.Engine {
	if len(f.Palette) > 0 {
		return chart.NewEngine(chart.WithPalette(f.Palette))
	}
	return chart.NewEngine()
}

func (f *ChartFlags) ExportSize() chart.ExportSize {
	return chart.ExportSize{Width: f.Width, Height: f.Height}
}
