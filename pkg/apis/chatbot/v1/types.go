// Package v1 contains the wire types of the analytics chatbot API and the chart
// model shared by the client packages.
package v1

// ChartType selects the chart encoding of a ChartSpec.
type ChartType string

const (
	ChartBar  ChartType = "bar"
	ChartLine ChartType = "line"
	ChartPie  ChartType = "pie"
)

// ChartSpec is the engine-agnostic description of a chart. On the wire the rows
// are carried in the "data" field.
type ChartSpec struct {
	Type  ChartType `json:"type" yaml:"type"`
	Title string    `json:"title" yaml:"title"`
	Rows  []Row     `json:"data" yaml:"data"`
}

// ChatRequest is the body of POST /chat.
type ChatRequest struct {
	Message               string                 `json:"message"`
	SessionID             string                 `json:"session_id,omitempty"`
	Context               map[string]interface{} `json:"context,omitempty"`
	EnableEvaluation      *bool                  `json:"enable_evaluation,omitempty"`
	EnableChartGeneration *bool                  `json:"enable_chart_generation,omitempty"`
	EnableInsights        *bool                  `json:"enable_insights,omitempty"`
	Language              string                 `json:"language,omitempty"`
}

// ResponseMetadata is echoed back by the backend on every chat turn.
type ResponseMetadata struct {
	SessionID string `json:"session_id"`
	Timestamp string `json:"timestamp"`
}

// ChatResponse is the body returned by POST /chat. ExecutionTime is in seconds.
type ChatResponse struct {
	Success       bool             `json:"success"`
	Message       string           `json:"message"`
	WorkflowID    string           `json:"workflow_id"`
	Intent        string           `json:"intent"`
	ExecutionTime float64          `json:"execution_time"`
	Metadata      ResponseMetadata `json:"metadata"`
	Suggestions   []string         `json:"suggestions,omitempty"`
	Chart         *ChartSpec       `json:"chart,omitempty"`
}

// SuggestionsResponse is returned by GET /suggestions.
type SuggestionsResponse struct {
	Suggestions []string `json:"suggestions"`
}

// HistoryEntry is one stored turn of a session.
type HistoryEntry struct {
	ID          string     `json:"id,omitempty"`
	Role        string     `json:"role"`
	Content     string     `json:"content"`
	Timestamp   string     `json:"timestamp,omitempty"`
	WorkflowID  string     `json:"workflow_id,omitempty"`
	Intent      string     `json:"intent,omitempty"`
	Suggestions []string   `json:"suggestions,omitempty"`
	Chart       *ChartSpec `json:"chart,omitempty"`
}

// HistoryResponse is returned by GET /sessions/{id}/history.
type HistoryResponse struct {
	SessionID string         `json:"session_id"`
	History   []HistoryEntry `json:"history"`
}

// FeedbackRequest is the body of POST /feedback.
type FeedbackRequest struct {
	WorkflowID string  `json:"workflow_id"`
	Score      float64 `json:"score"`
	Comment    string  `json:"comment,omitempty"`
}

const (
	HealthHealthy  = "healthy"
	HealthDegraded = "degraded"
)

// HealthResponse is returned by the unauthenticated GET /health.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}
