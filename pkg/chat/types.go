// Package chat implements the conversational analytics client: session lifecycle,
// the ordered message log, the single-flight send flow and feedback submission.
package chat

import (
	"context"
	"time"

	"github.com/google/uuid"

	v1 "github.com/openshift/sippy-chat/pkg/apis/chatbot/v1"
	"github.com/openshift/sippy-chat/pkg/chat/metric"
)

// Transport is the subset of the chatbot API used by this package. It is implemented
// by *chatclient.Client.
type Transport interface {
	Chat(ctx context.Context, request v1.ChatRequest) (*v1.ChatResponse, error)
	Suggestions(ctx context.Context) ([]string, error)
	History(ctx context.Context, sessionID string, limit int) (*v1.HistoryResponse, error)
	DeleteSession(ctx context.Context, sessionID string) error
	Feedback(ctx context.Context, request v1.FeedbackRequest) error
	Health(ctx context.Context) (*v1.HealthResponse, error)
}

type Role string

const (
	RoleUser Role = "user"
	RoleBot  Role = "bot"
)

const (
	DefaultGreeting     = "Hi! I can help you explore your business data. Ask me about revenue, engagement or trending hashtags."
	ApologyMessage      = "Sorry, I couldn't process your request right now. Please try again in a moment."
	AuthRequiredMessage = "Your session has expired. Please log in again to continue."
	EmptyPlaceholder    = "(no response)"
)

// FeedbackRecord scores a bot turn identified by its workflow id.
type FeedbackRecord struct {
	WorkflowID string  `json:"workflow_id"`
	Score      float64 `json:"score"`
	Comment    string  `json:"comment,omitempty"`
}

// Message is one entry of the conversation log. Messages are not modified after they
// are appended, except for the Feedback annotation.
type Message struct {
	ID              string          `json:"id"`
	Role            Role            `json:"role"`
	Content         string          `json:"content"`
	Timestamp       time.Time       `json:"timestamp"`
	Suggestions     []string        `json:"suggestions,omitempty"`
	Chart           *v1.ChartSpec   `json:"chart,omitempty"`
	WorkflowID      string          `json:"workflow_id,omitempty"`
	Intent          string          `json:"intent,omitempty"`
	ExecutionTimeMs float64         `json:"execution_time_ms,omitempty"`
	Success         *bool           `json:"success,omitempty"`
	Feedback        *FeedbackRecord `json:"feedback,omitempty"`
}

// DisplayContent returns the content to render; empty content shows a placeholder.
func (m Message) DisplayContent() string {
	if m.Content == "" {
		return EmptyPlaceholder
	}
	return m.Content
}

// Succeeded reports the success flag of a bot message. User messages report true.
func (m Message) Succeeded() bool {
	return m.Success == nil || *m.Success
}

// Trend classifies the chart attached to the message, if any.
func (m Message) Trend() (metric.Trend, bool) {
	if m.Chart == nil {
		return metric.TrendStable, false
	}
	return metric.ClassifyTrend(m.Chart.Rows), true
}

func newMessageID() string {
	return uuid.New().String()
}

func boolPtr(b bool) *bool {
	return &b
}

// NewUserMessage builds a user turn stamped with now.
func NewUserMessage(content string, now time.Time) Message {
	return Message{ID: newMessageID(), Role: RoleUser, Content: content, Timestamp: now}
}

// NewGreeting builds the bot message that opens every conversation.
func NewGreeting(content string, suggestions []string, now time.Time) Message {
	if content == "" {
		content = DefaultGreeting
	}
	return Message{
		ID:          newMessageID(),
		Role:        RoleBot,
		Content:     content,
		Timestamp:   now,
		Suggestions: append([]string(nil), suggestions...),
		Success:     boolPtr(true),
	}
}

// messageFromResponse converts a chat response verbatim into a bot message.
func messageFromResponse(resp *v1.ChatResponse, now time.Time) Message {
	return Message{
		ID:              newMessageID(),
		Role:            RoleBot,
		Content:         resp.Message,
		Timestamp:       now,
		Suggestions:     append([]string(nil), resp.Suggestions...),
		Chart:           resp.Chart,
		WorkflowID:      resp.WorkflowID,
		Intent:          resp.Intent,
		ExecutionTimeMs: resp.ExecutionTime * 1000,
		Success:         boolPtr(resp.Success),
	}
}

func messageFromHistory(entry v1.HistoryEntry, now time.Time) Message {
	ts := now
	if entry.Timestamp != "" {
		if parsed, err := time.Parse(time.RFC3339, entry.Timestamp); err == nil {
			ts = parsed
		}
	}
	id := entry.ID
	if id == "" {
		id = newMessageID()
	}
	role := RoleBot
	if entry.Role == string(RoleUser) {
		role = RoleUser
	}
	return Message{
		ID:          id,
		Role:        role,
		Content:     entry.Content,
		Timestamp:   ts,
		Suggestions: entry.Suggestions,
		Chart:       entry.Chart,
		WorkflowID:  entry.WorkflowID,
		Intent:      entry.Intent,
	}
}
