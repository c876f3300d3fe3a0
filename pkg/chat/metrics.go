package chat

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	sendsMetric = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sippy_chat_sends_total",
		Help: "Messages submitted through the chat store by outcome.",
	}, []string{"outcome"})

	responseTimeMetric = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "sippy_chat_response_seconds",
		Help:    "Wall-clock time from sending a message to appending its reply.",
		Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 20, 40},
	})

	feedbackMetric = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sippy_chat_feedback_total",
		Help: "Feedback submissions by outcome.",
	}, []string{"outcome"})
)

const (
	outcomeAnswered  = "answered"
	outcomeFailed    = "failed"
	outcomeDropped   = "dropped"
	outcomeDiscarded = "discarded"
)
