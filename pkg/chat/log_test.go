package chat

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMessageLog(t *testing.T) {
	now := time.Now()
	l := NewMessageLog(NewGreeting("welcome", []string{"a"}, now))
	epoch := l.Epoch()

	l.Append(NewUserMessage("one", now))
	assert.True(t, l.AppendIf(epoch, Message{Role: RoleBot, Content: "two", WorkflowID: "wf-2"}))
	assert.Equal(t, 3, l.Len())

	snapshot := l.Messages()
	snapshot[0].Content = "mutated"
	assert.Equal(t, "welcome", l.Messages()[0].Content)

	assert.True(t, l.Annotate(FeedbackRecord{WorkflowID: "wf-2", Score: 5}))
	assert.False(t, l.Annotate(FeedbackRecord{WorkflowID: "unknown", Score: 5}))
	assert.False(t, l.Annotate(FeedbackRecord{Score: 5}))
	assert.Equal(t, 5.0, l.Messages()[2].Feedback.Score)

	l.Reset(NewGreeting("", nil, now))
	assert.Equal(t, 1, l.Len())
	assert.Equal(t, DefaultGreeting, l.Messages()[0].Content)
	assert.False(t, l.AppendIf(epoch, Message{Content: "late"}))
	assert.Equal(t, 1, l.Len())
}
