package chat

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/openshift/sippy-chat/pkg/util"
)

// HealthProbe polls the unauthenticated health endpoint while the conversation is idle.
// The polling interval backs off while the backend is unreachable.
type HealthProbe struct {
	manager  *Manager
	interval time.Duration
}

const DefaultProbeInterval = 30 * time.Second

func NewHealthProbe(m *Manager, interval time.Duration) *HealthProbe {
	if interval <= 0 {
		interval = DefaultProbeInterval
	}
	return &HealthProbe{manager: m, interval: interval}
}

// Run polls until ctx is done. onChange, if set, is called whenever the reported
// status differs from the previous probe; an unreachable backend reports "".
func (p *HealthProbe) Run(ctx context.Context, onChange func(status string)) {
	limiter := util.NewRateLimiter(jitter(p.interval))
	defer limiter.Close()

	last := "unknown"
	for {
		status := ""
		health, err := p.manager.CheckHealth(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.WithError(err).WithField("next", limiter.Interval()).Debug("health probe failed")
		} else {
			status = health.Status
		}
		limiter.UpdateRate(err != nil)

		if status != last {
			last = status
			if onChange != nil {
				onChange(status)
			}
		}

		if err := limiter.Tick(ctx); err != nil {
			return
		}
	}
}
