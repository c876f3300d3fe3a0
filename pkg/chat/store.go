package chat

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	log "github.com/sirupsen/logrus"

	v1 "github.com/openshift/sippy-chat/pkg/apis/chatbot/v1"
	"github.com/openshift/sippy-chat/pkg/chatclient"
)

var (
	// ErrEmptyMessage is returned for blank input; nothing is appended.
	ErrEmptyMessage = errors.New("message is empty")
	// ErrSendInFlight is returned when a send is already in progress. The call is
	// dropped, not queued.
	ErrSendInFlight = errors.New("a message is already being sent")
	// ErrConversationReset is returned when the log was cleared while the request was
	// in flight; the late reply is discarded.
	ErrConversationReset = errors.New("conversation was reset while waiting for a reply")
)

// SendOptions are the per-request flags forwarded to the backend.
type SendOptions struct {
	Context               map[string]interface{}
	EnableEvaluation      *bool
	EnableChartGeneration *bool
	EnableInsights        *bool
	Language              string
}

// Store drives the conversation: it appends user turns, calls the backend and appends
// exactly one reply per accepted send.
type Store struct {
	manager    *Manager
	transport  Transport
	log        *MessageLog
	notifier   Notifier
	options    SendOptions
	minLatency time.Duration
	now        func() time.Time

	busy atomic.Bool

	mu           sync.RWMutex
	lastResponse time.Duration
}

type StoreOption func(*Store)

func WithSendOptions(o SendOptions) StoreOption {
	return func(s *Store) {
		s.options = o
	}
}

// WithMinLatency delays replies that arrive faster than d, for pacing in interactive
// views. It never delays a reply that is already slower.
func WithMinLatency(d time.Duration) StoreOption {
	return func(s *Store) {
		s.minLatency = d
	}
}

func WithStoreNotifier(n Notifier) StoreOption {
	return func(s *Store) {
		s.notifier = n
	}
}

func NewStore(m *Manager, opts ...StoreOption) *Store {
	s := &Store{
		manager:   m,
		transport: m.transport,
		log:       m.log,
		notifier:  m.notifier,
		now:       m.now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Messages() []Message {
	return s.log.Messages()
}

// Busy reports whether a send is awaiting its reply.
func (s *Store) Busy() bool {
	return s.busy.Load()
}

// LastResponseTime is the wall-clock duration of the last completed send.
func (s *Store) LastResponseTime() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastResponse
}

// SendMessage appends text as a user message and waits for the reply. The returned
// message is the bot reply that was appended, which is an apology when the backend
// call failed. Blank text and concurrent sends are rejected without touching the log.
func (s *Store) SendMessage(ctx context.Context, text string) (*Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyMessage
	}
	if !s.busy.CompareAndSwap(false, true) {
		sendsMetric.WithLabelValues(outcomeDropped).Inc()
		log.Debug("send dropped, another message is in flight")
		return nil, ErrSendInFlight
	}
	defer s.busy.Store(false)

	epoch := s.log.Epoch()
	start := s.now()
	s.log.Append(NewUserMessage(text, start))

	resp, err := s.transport.Chat(ctx, s.request(text))
	s.pace(ctx, start)

	var reply Message
	if err != nil {
		reply = s.failureReply(err)
	} else {
		reply = messageFromResponse(resp, s.now())
	}

	elapsed := s.now().Sub(start)
	if !s.log.AppendIf(epoch, reply) {
		sendsMetric.WithLabelValues(outcomeDiscarded).Inc()
		log.WithField("session", s.manager.SessionID()).Warn("discarding reply for a conversation that was reset")
		return nil, ErrConversationReset
	}

	s.mu.Lock()
	s.lastResponse = elapsed
	s.mu.Unlock()
	responseTimeMetric.Observe(elapsed.Seconds())
	if err != nil {
		sendsMetric.WithLabelValues(outcomeFailed).Inc()
	} else {
		sendsMetric.WithLabelValues(outcomeAnswered).Inc()
	}

	return &reply, nil
}

func (s *Store) request(text string) v1.ChatRequest {
	return v1.ChatRequest{
		Message:               text,
		SessionID:             s.manager.SessionID(),
		Context:               s.options.Context,
		EnableEvaluation:      s.options.EnableEvaluation,
		EnableChartGeneration: s.options.EnableChartGeneration,
		EnableInsights:        s.options.EnableInsights,
		Language:              s.options.Language,
	}
}

func (s *Store) failureReply(err error) Message {
	content := ApologyMessage
	if chatclient.IsAuthError(err) {
		content = AuthRequiredMessage
		s.notifier.Notify(Notification{Level: LevelError, Source: "chat", Message: "Please log in again.", Err: err})
	} else {
		s.notifier.Notify(Notification{Level: LevelError, Source: "chat", Message: "The assistant could not answer.", Err: err})
	}
	return Message{
		ID:        newMessageID(),
		Role:      RoleBot,
		Content:   content,
		Timestamp: s.now(),
		Success:   boolPtr(false),
	}
}

// pace waits out the remainder of minLatency. Cancellation cuts the wait short; the
// reply is still appended.
func (s *Store) pace(ctx context.Context, start time.Time) {
	if s.minLatency <= 0 {
		return
	}
	remaining := s.minLatency - s.now().Sub(start)
	if remaining <= 0 {
		return
	}
	timer := time.NewTimer(remaining)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}
