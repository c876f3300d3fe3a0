package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	v1 "github.com/openshift/sippy-chat/pkg/apis/chatbot/v1"
	"github.com/openshift/sippy-chat/pkg/chat"
)

func NewHealthCommand() *cobra.Command {
	f := NewClientFlags()
	var watch bool
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "health",
		Short: "Check whether the chatbot backend is up",
		Long: `Check whether the chatbot backend is up. The health endpoint does not
require credentials. With --watch the backend is polled until interrupted and
every status change is printed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := f.Config()
			if err != nil {
				return err
			}
			m, err := f.Manager(terminalNotifier(os.Stderr))
			if err != nil {
				return err
			}

			if !watch {
				health, err := m.CheckHealth(contextOf(cmd))
				if err != nil {
					return errors.WithMessage(err, "backend is unreachable")
				}
				printHealth(health)
				if health.Status != v1.HealthHealthy {
					return errors.Errorf("backend reports %s", health.Status)
				}
				return nil
			}

			if interval <= 0 {
				interval = cfg.HealthProbe.Interval
			}
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			chat.NewHealthProbe(m, interval).Run(ctx, func(status string) {
				if status == "" {
					fmt.Fprintf(os.Stdout, "%s unreachable\n", time.Now().Format(time.RFC3339))
					return
				}
				fmt.Fprintf(os.Stdout, "%s %s\n", time.Now().Format(time.RFC3339), status)
			})
			return nil
		},
	}
	f.BindFlags(cmd.Flags())
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Keep polling and report changes")
	cmd.Flags().DurationVar(&interval, "interval", 0, "Polling interval for --watch (default from config, 30s)")
	return cmd
}

func printHealth(health *v1.HealthResponse) {
	if health.Version != "" {
		fmt.Fprintf(os.Stdout, "%s (version %s)\n", health.Status, health.Version)
		return
	}
	fmt.Fprintln(os.Stdout, health.Status)
}
