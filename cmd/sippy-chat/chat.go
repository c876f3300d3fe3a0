package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/openshift/sippy-chat/pkg/chat"
	"github.com/openshift/sippy-chat/pkg/chat/chart"
	"github.com/openshift/sippy-chat/pkg/flags"
)

const chatHelp = `Commands:
  /suggest N            ask suggestion number N
  /rate SCORE [COMMENT] rate the last answer
  /history              show the server side history of this session
  /clear                clear the conversation
  /quit                 leave`

// NewChatCommand starts an interactive conversation on stdin.
func NewChatCommand() *cobra.Command {
	f := NewClientFlags()
	chartFlags := flags.NewChartFlags()
	var noProbe bool

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive conversation",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			cfg, err := f.Config()
			if err != nil {
				return err
			}
			chartFlags.ApplyConfig(cfg)

			m, err := f.Manager(terminalNotifier(os.Stdout))
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

			if !noProbe {
				probe := chat.NewHealthProbe(m, cfg.HealthProbe.Interval)
				go probe.Run(ctx, func(status string) {
					if status == "" {
						status = "unreachable"
					}
					log.WithField("status", status).Info("backend health changed")
				})
			}

			s := &chatSession{
				manager:      m,
				store:        store,
				feedback:     chat.NewFeedbackCollector(m),
				engine:       chartFlags.GetEngine(),
				historyLimit: cfg.Session.HistoryLimit,
				out:          os.Stdout,
			}
			defer s.feedback.Wait()
			return s.run(ctx, os.Stdin)
		},
	}

	f.BindFlags(cmd.Flags())
	chartFlags.BindFlags(cmd.Flags())
	cmd.Flags().BoolVar(&noProbe, "no-health-probe", false, "Do not poll the backend health endpoint while idle")
	return cmd
}

type chatSession struct {
	manager      *chat.Manager
	store        *chat.Store
	feedback     *chat.FeedbackCollector
	engine       *chart.Engine
	historyLimit int
	out          io.Writer
}

func (s *chatSession) run(ctx context.Context, in io.Reader) error {
	for _, m := range s.store.Messages() {
		printMessage(s.out, s.engine, m)
	}
	printSuggestions(s.out, s.manager.Suggestions())
	fmt.Fprintln(s.out, "Type /help for commands.")

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			if quit := s.handle(ctx, strings.TrimSpace(line)); quit {
				return nil
			}
		}
	}
}

// handle processes one input line and reports whether the user asked to quit.
func (s *chatSession) handle(ctx context.Context, line string) bool {
	if line == "" {
		return false
	}
	command, rest, _ := strings.Cut(line, " ")
	switch command {
	case "/quit", "/exit":
		return true
	case "/help":
		fmt.Fprintln(s.out, chatHelp)
	case "/suggest":
		n, err := strconv.Atoi(strings.TrimSpace(rest))
		suggestions := s.lastSuggestions()
		if err != nil || n < 1 || n > len(suggestions) {
			fmt.Fprintln(s.out, "no such suggestion")
			return false
		}
		s.send(ctx, suggestions[n-1])
	case "/rate":
		s.rate(ctx, rest)
	case "/history":
		messages, err := s.manager.History(ctx, s.historyLimit)
		if err != nil {
			fmt.Fprintf(s.out, "could not load history: %v\n", err)
			return false
		}
		for _, m := range messages {
			printMessage(s.out, s.engine, m)
		}
	case "/clear":
		if err := s.manager.Clear(ctx); err != nil {
			return false
		}
		for _, m := range s.store.Messages() {
			printMessage(s.out, s.engine, m)
		}
	default:
		s.send(ctx, line)
	}
	return false
}

func (s *chatSession) send(ctx context.Context, text string) {
	fmt.Fprintln(s.out, "…")
	reply, err := s.store.SendMessage(ctx, text)
	switch {
	case errors.Is(err, chat.ErrSendInFlight), errors.Is(err, chat.ErrEmptyMessage):
		return
	case err != nil:
		log.WithError(err).Debug("reply dropped")
		return
	}
	printMessage(s.out, s.engine, *reply)
}

// lastSuggestions returns the suggestions of the latest answer, or the session
// suggestions when nothing was answered yet.
func (s *chatSession) lastSuggestions() []string {
	messages := s.store.Messages()
	for i := len(messages) - 1; i > 0; i-- {
		if messages[i].Role == chat.RoleBot && len(messages[i].Suggestions) > 0 {
			return messages[i].Suggestions
		}
	}
	return s.manager.Suggestions()
}

func (s *chatSession) rate(ctx context.Context, args string) {
	scoreText, comment, _ := strings.Cut(strings.TrimSpace(args), " ")
	score, err := strconv.ParseFloat(scoreText, 64)
	if err != nil {
		fmt.Fprintln(s.out, "usage: /rate SCORE [COMMENT]")
		return
	}

	messages := s.store.Messages()
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == chat.RoleBot && messages[i].WorkflowID != "" {
			s.feedback.Submit(ctx, chat.FeedbackRecord{
				WorkflowID: messages[i].WorkflowID,
				Score:      score,
				Comment:    strings.TrimSpace(comment),
			})
			return
		}
	}
	fmt.Fprintln(s.out, "nothing to rate yet")
}
