package render

import (
	"context"
	"sync"
	"time"

	"github.com/openpad/padview/internal/diag"
	"github.com/openpad/padview/internal/view"
)

// Loop is the display-refresh driver: a fixed-rate ticker that runs the
// scheduled render pass (at most one per tick), advances fade-out, composes
// the ready slots, and presents the frame. It also implements the
// orchestrator's Scheduler port, so every scheduled callback runs on the
// loop goroutine.
type Loop struct {
	Rate int
	Sink diag.Sink

	mu        sync.Mutex
	scheduled []func(time.Time)
}

func NewLoop(rate int, sink diag.Sink) *Loop {
	if rate <= 0 {
		rate = 30
	}
	if sink == nil {
		sink = diag.NoopSink{}
	}
	return &Loop{Rate: rate, Sink: sink}
}

// Schedule queues fn for the next tick. Callers gate their own pending state;
// the loop just runs whatever was queued, in order.
func (l *Loop) Schedule(fn func(now time.Time)) {
	l.mu.Lock()
	l.scheduled = append(l.scheduled, fn)
	l.mu.Unlock()
}

// Run drives frames until ctx is done.
func (l *Loop) Run(ctx context.Context, orch *view.Orchestrator, comp *Compositor, presenter Presenter) {
	ticker := time.NewTicker(time.Second / time.Duration(l.Rate))
	defer ticker.Stop()
	lastBeat := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			now := time.Now()
			l.mu.Lock()
			scheduled := l.scheduled
			l.scheduled = nil
			l.mu.Unlock()
			for _, fn := range scheduled {
				fn(now)
			}
			orch.Advance(now)
			frame := comp.Compose(orch.Slots())
			if err := presenter.Present(frame); err != nil {
				l.Sink.Errorf("fb", "present failed: %v", err)
			}
			if time.Since(lastBeat) > 10*time.Second {
				l.Sink.Logf("fb", "heartbeat frame")
				lastBeat = now
			}
		}
	}
}
