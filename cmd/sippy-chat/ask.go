package main

import (
	"context"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/openshift/sippy-chat/pkg/flags"
)

func NewAskCommand() *cobra.Command {
	f := NewClientFlags()
	chartFlags := flags.NewChartFlags()
	var chartOutput string

	cmd := &cobra.Command{
		Use:   "ask QUESTION...",
		Short: "Ask a single question and print the answer",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cfg, err := f.Config()
			if err != nil {
				return err
			}
			chartFlags.ApplyConfig(cfg)
			if err := chartFlags.Validate(); err != nil {
				return err
			}

			m, err := f.Manager(terminalNotifier(os.Stderr))
			if err != nil {
				return err
			}
			if err := startSession(ctx, m); err != nil {
				return err
			}
			store, err := f.Store(m)
			if err != nil {
				return err
			}

			reply, err := store.SendMessage(ctx, strings.Join(args, " "))
			if err != nil {
				return errors.WithMessage(err, "could not send question")
			}

			engine := chartFlags.GetEngine()
			printMessage(os.Stdout, engine, *reply)
			if chartOutput != "" && reply.Chart != nil {
				if err := exportChart(engine, chartFlags, *reply.Chart, chartOutput); err != nil {
					return err
				}
			}
			if !reply.Succeeded() {
				return errors.New("the backend could not answer the question")
			}
			return nil
		},
	}

	f.BindFlags(cmd.Flags())
	chartFlags.BindFlags(cmd.Flags())
	cmd.Flags().StringVar(&chartOutput, "chart-output", "", "Write the chart of the answer, if any, to this file using --chart-format svg or png")
	return cmd
}
