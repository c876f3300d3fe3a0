package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	v1 "github.com/openshift/sippy-chat/pkg/apis/chatbot/v1"
	"github.com/openshift/sippy-chat/pkg/chat/chart"
	"github.com/openshift/sippy-chat/pkg/flags"
)

// NewRenderCommand renders a chart payload saved from a previous answer.
func NewRenderCommand() *cobra.Command {
	chartFlags := flags.NewChartFlags()
	var output string

	cmd := &cobra.Command{
		Use:   "render FILE",
		Short: "Render a chart payload (JSON or YAML) as text, SVG or PNG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := chartFlags.Validate(); err != nil {
				return err
			}
			spec, err := readChartSpec(args[0])
			if err != nil {
				return err
			}

			engine := chartFlags.GetEngine()
			if strings.EqualFold(chartFlags.Format, flags.ChartFormatText) {
				printChart(os.Stdout, engine, *spec)
				return nil
			}
			if output == "" {
				return errors.New("--output is required for svg and png")
			}
			return exportChart(engine, chartFlags, *spec, output)
		},
	}

	chartFlags.BindFlags(cmd.Flags())
	cmd.Flags().StringVarP(&output, "output", "o", "", "File to write svg or png output to")
	return cmd
}

func readChartSpec(path string) (*v1.ChartSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WithMessage(err, "could not read chart")
	}

	spec := &v1.ChartSpec{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, spec)
	default:
		err = json.Unmarshal(data, spec)
	}
	if err != nil {
		return nil, errors.WithMessagef(err, "couldn't parse chart %s", path)
	}
	return spec, nil
}

func exportChart(engine *chart.Engine, chartFlags *flags.ChartFlags, spec v1.ChartSpec, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.WithMessage(err, "could not create chart file")
	}
	defer f.Close()

	switch strings.ToLower(chartFlags.Format) {
	case flags.ChartFormatPNG:
		err = engine.WritePNG(f, spec, chartFlags.ExportSize())
	default:
		err = engine.WriteSVG(f, spec, chartFlags.ExportSize())
	}
	if err != nil {
		return errors.WithMessagef(err, "could not render %s chart", spec.Type)
	}
	log.WithField("file", path).Info("chart written")
	return nil
}
