package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	v1 "github.com/openshift/sippy-chat/pkg/apis/chatbot/v1"
	"github.com/openshift/sippy-chat/pkg/chat"
	"github.com/openshift/sippy-chat/pkg/chatclient/chatclienttest"
	"github.com/openshift/sippy-chat/pkg/flags"
)

func newTestSession(t *testing.T) (*chatSession, *chatclienttest.Server, *bytes.Buffer) {
	t.Helper()
	srv := chatclienttest.NewServer()
	srv.Token = "secret"
	t.Cleanup(srv.Close)

	f := NewClientFlags()
	f.ChatAPIFlags.ServerURL = srv.URL
	f.ChatAPIFlags.Token = "secret"
	f.ChatAPIFlags.TokenFile = ""
	f.CacheFlags.RedisURL = ""

	out := &bytes.Buffer{}
	m, err := f.Manager(terminalNotifier(out))
	require.NoError(t, err)
	require.NoError(t, startSession(context.TODO(), m))
	store, err := f.Store(m)
	require.NoError(t, err)

	return &chatSession{
		manager:      m,
		store:        store,
		feedback:     chat.NewFeedbackCollector(m),
		engine:       flags.NewChartFlags().GetEngine(),
		historyLimit: 10,
		out:          out,
	}, srv, out
}

func TestChatSessionConversation(t *testing.T) {
	s, srv, out := newTestSession(t)
	srv.ChatFunc = func(req v1.ChatRequest) v1.ChatResponse {
		return v1.ChatResponse{
			Success:    true,
			Message:    "Revenue grew",
			WorkflowID: "wf-rev",
			Chart: &v1.ChartSpec{
				Type:  v1.ChartBar,
				Title: "Revenue",
				Rows: []v1.Row{
					{"day": v1.String("Monday"), "revenue": v1.Number(1500)},
					{"day": v1.String("Tuesday"), "revenue": v1.Number(2500)},
				},
			},
		}
	}

	input := strings.Join([]string{"/help", "/suggest 1", "/rate 5 great", "/quit", "never sent"}, "\n")
	require.NoError(t, s.run(context.TODO(), strings.NewReader(input)))
	s.feedback.Wait()

	text := out.String()
	assert.Contains(t, text, "/rate SCORE")
	assert.Contains(t, text, "bot> Revenue grew")
	assert.Contains(t, text, "Monday")
	assert.Contains(t, text, "min 1.5K · avg 2K · max 2.5K")

	assert.Len(t, srv.RequestsTo("/chat"), 1)
	assert.Len(t, srv.RequestsTo("/feedback"), 1)
	require.Len(t, s.store.Messages(), 3)
	assert.Equal(t, "Show revenue for this week", s.store.Messages()[1].Content)
	require.NotNil(t, s.store.Messages()[2].Feedback)
	assert.Equal(t, 5.0, s.store.Messages()[2].Feedback.Score)
}

func TestChatSessionClearFailureKeepsConversation(t *testing.T) {
	s, srv, out := newTestSession(t)
	assert.False(t, s.handle(context.TODO(), "hello"))
	srv.FailWith("delete_session", 500)

	assert.False(t, s.handle(context.TODO(), "/clear"))
	assert.Len(t, s.store.Messages(), 3)
	assert.Contains(t, out.String(), "[error]")

	srv.FailWith("delete_session", 0)
	assert.False(t, s.handle(context.TODO(), "/clear"))
	assert.Len(t, s.store.Messages(), 1)
}

func TestReadChartSpec(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "chart.json")
	yamlPath := filepath.Join(dir, "chart.yaml")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"type":"pie","title":"Share","data":[{"name":"a","value":1},{"name":"b","value":3}]}`), 0o600))
	require.NoError(t, os.WriteFile(yamlPath, []byte("type: pie\ntitle: Share\ndata:\n  - name: a\n    value: 1\n  - name: b\n    value: 3\n"), 0o600))

	fromJSON, err := readChartSpec(jsonPath)
	require.NoError(t, err)
	fromYAML, err := readChartSpec(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, fromJSON, fromYAML)

	out := &bytes.Buffer{}
	printChart(out, flags.NewChartFlags().GetEngine(), *fromJSON)
	assert.Contains(t, out.String(), "75.0%")

	svgPath := filepath.Join(dir, "chart.svg")
	cf := flags.NewChartFlags()
	cf.Format = flags.ChartFormatSVG
	require.NoError(t, exportChart(cf.GetEngine(), cf, *fromJSON, svgPath))
	data, err := os.ReadFile(svgPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<svg")
}
