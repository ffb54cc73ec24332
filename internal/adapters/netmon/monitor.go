// Package netmon simulates a network link monitor. It is the inbound
// platform glue of the relay: it derives a status and broadcasts it
// through a Subject, without knowing anything about the listeners.
package netmon

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"statusbus/internal/observer"
)

// Monitor walks a scenario and broadcasts each step's status through
// its subject.
type Monitor struct {
	subject  *observer.Subject
	scenario *Scenario

	// defaultHold applies to steps with no hold_ms of their own.
	defaultHold time.Duration

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// NewMonitor creates a monitor broadcasting scenario steps through
// subject. Steps without an explicit hold use defaultHold.
func NewMonitor(subject *observer.Subject, scenario *Scenario, defaultHold time.Duration) *Monitor {
	return &Monitor{
		subject:     subject,
		scenario:    scenario,
		defaultHold: defaultHold,
	}
}

// Start begins playing the scenario in a background goroutine. Calling
// Start on a running monitor is a no-op.
func (m *Monitor) Start(ctx context.Context) {
	m.mu.Lock()
	if m.running {
		m.mu.Unlock()
		return
	}
	runCtx, cancel := context.WithCancel(ctx)
	m.running = true
	m.cancel = cancel
	m.done = make(chan struct{})
	m.mu.Unlock()

	log.Debug().
		Int("steps", len(m.scenario.Steps)).
		Bool("loop", m.scenario.Loop).
		Msg("network monitor started")

	go m.run(runCtx)
}

// Stop halts scenario playback. Safe to call more than once.
func (m *Monitor) Stop() {
	m.mu.Lock()
	if !m.running {
		m.mu.Unlock()
		return
	}
	m.running = false
	cancel := m.cancel
	done := m.done
	m.mu.Unlock()

	cancel()
	<-done

	log.Debug().Msg("network monitor stopped")
}

// Done returns a channel closed when playback finishes, either because
// a non-looping scenario ran out of steps or the context was
// cancelled. Nil before Start.
func (m *Monitor) Done() <-chan struct{} {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.done
}

func (m *Monitor) run(ctx context.Context) {
	defer close(m.done)

	timer := time.NewTimer(0)
	defer timer.Stop()
	if !timer.Stop() {
		<-timer.C
	}

	for {
		for _, step := range m.scenario.Steps {
			m.subject.Notify(step.Status.String())

			hold := m.defaultHold
			if step.HoldMS > 0 {
				hold = time.Duration(step.HoldMS) * time.Millisecond
			}

			timer.Reset(hold)
			select {
			case <-ctx.Done():
				return
			case <-timer.C:
			}
		}
		if !m.scenario.Loop {
			return
		}
	}
}
