package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/openshift/sippy-chat/pkg/chat"
)

func NewSuggestionsCommand() *cobra.Command {
	f := NewClientFlags()

	cmd := &cobra.Command{
		Use:   "suggestions",
		Short: "List suggested questions",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := f.Manager(terminalNotifier(os.Stderr))
			if err != nil {
				return err
			}
			if err := startSession(contextOf(cmd), m); err != nil {
				return err
			}
			printSuggestions(os.Stdout, m.Suggestions())
			return nil
		},
	}
	f.BindFlags(cmd.Flags())
	return cmd
}

func NewHistoryCommand() *cobra.Command {
	f := NewClientFlags()
	var sessionID string
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Print the server side history of a session as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := f.Config()
			if err != nil {
				return err
			}
			if limit <= 0 {
				limit = cfg.Session.HistoryLimit
			}
			client := f.ChatAPIFlags.GetClient()

			history, err := client.History(contextOf(cmd), sessionID, limit)
			if err != nil {
				return errors.WithMessagef(err, "could not fetch history of %s", sessionID)
			}
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(history)
		},
	}
	f.BindFlags(cmd.Flags())
	cmd.Flags().StringVar(&sessionID, "session-id", "", "Session to read")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of entries (default from config, 50)")
	_ = cmd.MarkFlagRequired("session-id")
	return cmd
}

func NewClearCommand() *cobra.Command {
	f := NewClientFlags()
	var sessionID string

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete a session on the backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := f.Client()
			if err != nil {
				return err
			}
			if err := client.DeleteSession(contextOf(cmd), sessionID); err != nil {
				return errors.WithMessagef(err, "could not clear session %s", sessionID)
			}
			log.WithField("session", sessionID).Info("session cleared")
			return nil
		},
	}
	f.BindFlags(cmd.Flags())
	cmd.Flags().StringVar(&sessionID, "session-id", "", "Session to delete")
	_ = cmd.MarkFlagRequired("session-id")
	return cmd
}

func NewFeedbackCommand() *cobra.Command {
	f := NewClientFlags()
	record := chat.FeedbackRecord{}

	cmd := &cobra.Command{
		Use:   "feedback",
		Short: "Rate an answer by its workflow id",
		RunE: func(cmd *cobra.Command, args []string) error {
			// The collector reports through the notifier; capture errors so the exit
			// code reflects them.
			var failure error
			notifier := chat.NotifierFunc(func(n chat.Notification) {
				chat.LogNotifier{}.Notify(n)
				if n.Level == chat.LevelError {
					failure = n.Err
				}
			})
			m, err := f.Manager(notifier)
			if err != nil {
				return err
			}

			collector := chat.NewFeedbackCollector(m)
			collector.Submit(contextOf(cmd), record)
			collector.Wait()
			if failure != nil {
				return errors.WithMessage(failure, "feedback was not recorded")
			}
			fmt.Fprintln(os.Stdout, "feedback recorded")
			return nil
		},
	}
	f.BindFlags(cmd.Flags())
	cmd.Flags().StringVar(&record.WorkflowID, "workflow-id", "", "Workflow id of the answer to rate")
	cmd.Flags().Float64Var(&record.Score, "score", 0, "Score to give")
	cmd.Flags().StringVar(&record.Comment, "comment", "", "Optional comment")
	_ = cmd.MarkFlagRequired("workflow-id")
	_ = cmd.MarkFlagRequired("score")
	return cmd
}

func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
