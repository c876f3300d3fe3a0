package chat

import (
	"context"
	"errors"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	v1 "github.com/openshift/sippy-chat/pkg/apis/chatbot/v1"
)

// ErrMissingWorkflowID is reported when feedback targets a message without a workflow id.
var ErrMissingWorkflowID = errors.New("feedback requires a workflow id")

const feedbackTimeout = 30 * time.Second

// FeedbackCollector submits scores for bot turns in the background. Failures go to the
// notifier and are not retried. Submissions are not deduplicated: scoring the same
// workflow twice sends two requests.
type FeedbackCollector struct {
	transport Transport
	log       *MessageLog
	notifier  Notifier
	wg        sync.WaitGroup
}

func NewFeedbackCollector(m *Manager) *FeedbackCollector {
	return &FeedbackCollector{transport: m.transport, log: m.log, notifier: m.notifier}
}

// Submit returns immediately. The request outlives cancellation of ctx so that a
// navigation does not lose the score.
func (f *FeedbackCollector) Submit(ctx context.Context, rec FeedbackRecord) {
	if rec.WorkflowID == "" {
		feedbackMetric.WithLabelValues(outcomeFailed).Inc()
		f.notifier.Notify(Notification{Level: LevelError, Source: "feedback", Message: "This answer cannot be rated.", Err: ErrMissingWorkflowID})
		return
	}

	f.wg.Add(1)
	go func() {
		defer f.wg.Done()

		sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), feedbackTimeout)
		defer cancel()

		err := f.transport.Feedback(sendCtx, v1.FeedbackRequest{
			WorkflowID: rec.WorkflowID,
			Score:      rec.Score,
			Comment:    rec.Comment,
		})
		if err != nil {
			feedbackMetric.WithLabelValues(outcomeFailed).Inc()
			f.notifier.Notify(Notification{Level: LevelError, Source: "feedback", Message: "Could not send feedback.", Err: err})
			return
		}

		feedbackMetric.WithLabelValues(outcomeAnswered).Inc()
		if !f.log.Annotate(rec) {
			log.WithField("workflowID", rec.WorkflowID).Debug("feedback sent for a message no longer in the log")
		}
		f.notifier.Notify(Notification{Level: LevelInfo, Source: "feedback", Message: "Thanks for your feedback!"})
	}()
}

// Wait blocks until every submitted feedback has completed.
func (f *FeedbackCollector) Wait() {
	f.wg.Wait()
}
