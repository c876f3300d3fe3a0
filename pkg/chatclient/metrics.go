package chatclient

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsMetric = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sippy_chat_client_requests_total",
		Help: "Requests made to the chatbot API by endpoint and outcome.",
	}, []string{"endpoint", "outcome"})

	requestDurationMetric = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "sippy_chat_client_request_duration_seconds",
		Help:    "Latency of chatbot API requests by endpoint.",
		Buckets: prometheus.DefBuckets,
	}, []string{"endpoint"})
)

const (
	outcomeSuccess = "success"
	outcomeAuth    = "auth_error"
	outcomeNetwork = "network_error"
	outcomeOther   = "error"
)

func outcome(err error) string {
	switch {
	case err == nil:
		return outcomeSuccess
	case IsAuthError(err):
		return outcomeAuth
	case IsNetworkError(err):
		return outcomeNetwork
	default:
		return outcomeOther
	}
}

func observeRequest(endpoint string, start time.Time, err error) {
	requestsMetric.WithLabelValues(endpoint, outcome(err)).Inc()
	requestDurationMetric.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
}
