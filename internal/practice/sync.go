package practice

import (
	"context"
	"time"

	"github.com/example/vocadrill/pkg/models"
)

// PollInterval is the reconciliation cadence while a session is active
const PollInterval = 2 * time.Second

// Reconcile overwrites the local machine with the authoritative session
// when, and only when, the authoritative progress is strictly ahead. The
// local machine must be idle: transient error states and an in-flight
// self-grade are never interrupted. An absent authoritative session is a
// no-op, since another client may be mid-completion and local completion
// handling owns that transition. Returns true when local state was
// replaced.
func Reconcile(m *Machine, authoritative *models.PracticeSession) bool {
	if authoritative == nil {
		return false
	}
	if m.Status != StatusIdle {
		return false
	}
	if authoritative.Progress.Done <= m.Progress.Done {
		return false
	}

	m.Queue = append([]models.Word(nil), authoritative.Queue...)
	m.Progress = authoritative.Progress
	m.Status = StatusIdle
	m.Feedback = ""
	m.Revealed = ""
	return true
}

// Poller periodically reconciles a service's machine against the store so
// a session advanced in another tab or device shows up here. Reads that
// fail are simply retried on the next tick.
type Poller struct {
	service  *Service
	interval time.Duration
}

// NewPoller creates a poller at the standard cadence
func NewPoller(service *Service) *Poller {
	return &Poller{service: service, interval: PollInterval}
}

// Run polls until the context is cancelled or the session completes
func (p *Poller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if p.service.State().Status == StatusCompleted {
				return
			}
			p.service.syncTick()
		case <-ctx.Done():
			return
		}
	}
}
