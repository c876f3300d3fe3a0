package chat

import "sync"

// MessageLog is the append-only, insertion-ordered conversation log. Reset is the
// only way to remove messages and it advances the epoch so that responses to requests
// issued before the reset can be recognized and dropped.
type MessageLog struct {
	mu       sync.RWMutex
	messages []Message
	epoch    uint64
}

func NewMessageLog(initial ...Message) *MessageLog {
	return &MessageLog{messages: append([]Message(nil), initial...)}
}

func (l *MessageLog) Append(m Message) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = append(l.messages, m)
}

// AppendIf appends m only if the log has not been reset since epoch.
func (l *MessageLog) AppendIf(epoch uint64, m Message) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.epoch != epoch {
		return false
	}
	l.messages = append(l.messages, m)
	return true
}

func (l *MessageLog) Epoch() uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.epoch
}

// Messages returns a snapshot of the log.
func (l *MessageLog) Messages() []Message {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]Message(nil), l.messages...)
}

func (l *MessageLog) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.messages)
}

// Reset replaces the log with the given messages.
func (l *MessageLog) Reset(initial ...Message) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = append([]Message(nil), initial...)
	l.epoch++
}

// Annotate attaches feedback to every bot message carrying the record's workflow id.
func (l *MessageLog) Annotate(rec FeedbackRecord) bool {
	if rec.WorkflowID == "" {
		return false
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	found := false
	for i := range l.messages {
		if l.messages[i].Role == RoleBot && l.messages[i].WorkflowID == rec.WorkflowID {
			fb := rec
			l.messages[i].Feedback = &fb
			found = true
		}
	}
	return found
}
