package chat

import (
	log "github.com/sirupsen/logrus"
)

type Level string

const (
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Notification is a user-facing toast raised outside of the message log.
type Notification struct {
	Level   Level
	Source  string
	Message string
	Err     error
}

// Notifier is the side channel used for failures that must not block the conversation.
type Notifier interface {
	Notify(n Notification)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(n Notification)

func (f NotifierFunc) Notify(n Notification) {
	f(n)
}

// LogNotifier writes notifications to the logger.
type LogNotifier struct{}

func (LogNotifier) Notify(n Notification) {
	entry := log.WithField("source", n.Source)
	if n.Err != nil {
		entry = entry.WithError(n.Err)
	}
	switch n.Level {
	case LevelError:
		entry.Error(n.Message)
	case LevelWarning:
		entry.Warn(n.Message)
	default:
		entry.Info(n.Message)
	}
}
