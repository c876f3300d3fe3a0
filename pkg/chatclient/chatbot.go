package chatclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	v1 "github.com/openshift/sippy-chat/pkg/apis/chatbot/v1"
)

// Chat sends one chat turn.
func (c *Client) Chat(ctx context.Context, request v1.ChatRequest) (*v1.ChatResponse, error) {
	var resp v1.ChatResponse
	if err := c.do(ctx, "chat", http.MethodPost, "/chat", true, request, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Suggestions retrieves the starter prompts offered to new sessions.
func (c *Client) Suggestions(ctx context.Context) ([]string, error) {
	var resp v1.SuggestionsResponse
	if err := c.do(ctx, "suggestions", http.MethodGet, "/suggestions", true, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Suggestions, nil
}

// History retrieves up to limit turns of a session. A non-positive limit lets the
// server choose.
func (c *Client) History(ctx context.Context, sessionID string, limit int) (*v1.HistoryResponse, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("session id is required")
	}
	path := fmt.Sprintf("/sessions/%s/history", url.PathEscape(sessionID))
	if limit > 0 {
		path = fmt.Sprintf("%s?limit=%d", path, limit)
	}

	var resp v1.HistoryResponse
	if err := c.do(ctx, "history", http.MethodGet, path, true, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DeleteSession discards the server side state of a session.
func (c *Client) DeleteSession(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return fmt.Errorf("session id is required")
	}
	path := fmt.Sprintf("/sessions/%s", url.PathEscape(sessionID))
	return c.do(ctx, "delete_session", http.MethodDelete, path, true, nil, nil)
}

// Feedback records a score for a previous bot turn.
func (c *Client) Feedback(ctx context.Context, request v1.FeedbackRequest) error {
	return c.do(ctx, "feedback", http.MethodPost, "/feedback", true, request, nil)
}

// Health probes the backend. It does not require a token.
func (c *Client) Health(ctx context.Context) (*v1.HealthResponse, error) {
	var resp v1.HealthResponse
	if err := c.do(ctx, "health", http.MethodGet, "/health", false, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
