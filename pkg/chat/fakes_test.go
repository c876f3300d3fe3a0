package chat

import (
	"context"
	"sync"

	v1 "github.com/openshift/sippy-chat/pkg/apis/chatbot/v1"
)

type fakeTransport struct {
	mu sync.Mutex

	chatFunc    func(ctx context.Context, req v1.ChatRequest) (*v1.ChatResponse, error)
	suggestions []string
	suggestErr  error
	health      *v1.HealthResponse
	healthErr   error
	history     *v1.HistoryResponse
	historyErr  error
	deleteErr   error
	feedbackErr error

	chatRequests     []v1.ChatRequest
	suggestionCalls  int
	healthCalls      int
	deleted          []string
	feedbackRequests []v1.FeedbackRequest
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{
		suggestions: []string{"Show revenue", "Top hashtags"},
		health:      &v1.HealthResponse{Status: v1.HealthHealthy, Version: "1.2.0"},
		chatFunc: func(_ context.Context, req v1.ChatRequest) (*v1.ChatResponse, error) {
			return &v1.ChatResponse{Success: true, Message: "echo: " + req.Message, WorkflowID: "wf-" + req.Message}, nil
		},
	}
}

func (f *fakeTransport) Chat(ctx context.Context, req v1.ChatRequest) (*v1.ChatResponse, error) {
	f.mu.Lock()
	f.chatRequests = append(f.chatRequests, req)
	fn := f.chatFunc
	f.mu.Unlock()
	return fn(ctx, req)
}

func (f *fakeTransport) Suggestions(context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.suggestionCalls++
	if f.suggestErr != nil {
		return nil, f.suggestErr
	}
	return f.suggestions, nil
}

func (f *fakeTransport) History(_ context.Context, sessionID string, limit int) (*v1.HistoryResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.historyErr != nil {
		return nil, f.historyErr
	}
	if f.history == nil {
		return &v1.HistoryResponse{SessionID: sessionID}, nil
	}
	return f.history, nil
}

func (f *fakeTransport) DeleteSession(_ context.Context, sessionID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, sessionID)
	return nil
}

func (f *fakeTransport) Feedback(_ context.Context, req v1.FeedbackRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.feedbackRequests = append(f.feedbackRequests, req)
	return f.feedbackErr
}

func (f *fakeTransport) Health(context.Context) (*v1.HealthResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.healthCalls++
	if f.healthErr != nil {
		return nil, f.healthErr
	}
	return f.health, nil
}

func (f *fakeTransport) chatCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.chatRequests)
}

type recordingNotifier struct {
	mu    sync.Mutex
	notes []Notification
}

func (r *recordingNotifier) Notify(n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notes = append(r.notes, n)
}

func (r *recordingNotifier) from(source string) []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Notification
	for _, n := range r.notes {
		if n.Source == source {
			out = append(out, n)
		}
	}
	return out
}

func authenticated() AuthStatus {
	return AuthStateFunc(func(context.Context) AuthState { return AuthAuthenticated })
}

func authState(s AuthState) AuthStatus {
	return AuthStateFunc(func(context.Context) AuthState { return s })
}
