package chat

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	v1 "github.com/openshift/sippy-chat/pkg/apis/chatbot/v1"
)

func TestHealthProbeReportsChanges(t *testing.T) {
	transport := newFakeTransport()
	m, _ := newTestManager(transport, authenticated())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var mu sync.Mutex
	var seen []string
	done := make(chan struct{})
	go func() {
		defer close(done)
		NewHealthProbe(m, 5*time.Millisecond).Run(ctx, func(status string) {
			mu.Lock()
			defer mu.Unlock()
			seen = append(seen, status)
			switch len(seen) {
			case 1:
				transport.mu.Lock()
				transport.healthErr = errors.New("connection refused")
				transport.mu.Unlock()
			case 2:
				transport.mu.Lock()
				transport.healthErr = nil
				transport.health = &v1.HealthResponse{Status: v1.HealthDegraded}
				transport.mu.Unlock()
			case 3:
				cancel()
			}
		})
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("probe did not stop")
	}

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, seen, 3)
	assert.Equal(t, []string{v1.HealthHealthy, "", v1.HealthDegraded}, seen)
	assert.Equal(t, v1.HealthDegraded, m.Health().Status)
}
