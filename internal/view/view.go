// Package view is the render orchestrator: it coalesces input-change batches
// into at most one render pass per display refresh, manages slot lifecycle,
// drives the instruction interpreter for changed controls, and ages idle
// controls along the fade-out curve.
package view

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/openpad/padview/internal/diag"
	"github.com/openpad/padview/internal/fade"
	"github.com/openpad/padview/internal/input"
	"github.com/openpad/padview/internal/prefs"
	"github.com/openpad/padview/internal/skin"
	"github.com/openpad/padview/internal/slot"
)

// Scheduler is the external "run this once at the next display refresh"
// primitive. Implementations must run callbacks on the frame goroutine.
type Scheduler interface {
	Schedule(fn func(now time.Time))
}

// Resolution configures the skin-name heuristic used for unmapped sources:
// a source whose identifier contains Match (case-insensitive) gets Fallback,
// everything else Default.
type Resolution struct {
	Match    string
	Fallback string
	Default  string
}

type Orchestrator struct {
	registry *skin.Registry
	store    *prefs.Store
	sink     diag.Sink
	sched    Scheduler
	resolve  Resolution

	policy  fade.Policy
	factors []float64

	// OnActivity, when set, receives the primary slot's active-state tree
	// after each orchestration pass. Called outside the orchestrator lock.
	OnActivity func(slot.Activity)

	mu            sync.Mutex
	slots         map[int]*slot.Slot
	pending       map[int]input.SourceChange
	renderPending bool
}

func New(registry *skin.Registry, store *prefs.Store, sched Scheduler, resolve Resolution, sink diag.Sink) *Orchestrator {
	if sink == nil {
		sink = diag.NoopSink{}
	}
	o := &Orchestrator{
		registry: registry,
		store:    store,
		sink:     sink,
		sched:    sched,
		resolve:  resolve,
		slots:    make(map[int]*slot.Slot),
		pending:  make(map[int]input.SourceChange),
	}
	// A stored policy wins over the default; seeding the default must not
	// write through, or it would clobber the persisted record at startup.
	o.policy = fade.DefaultPolicy()
	o.factors = o.policy.Factors(fade.DefaultFrameRate)
	if store != nil {
		if policy, factors, ok := store.FadePolicy(); ok && len(factors) == len(policy.Checkpoints) {
			o.policy, o.factors = policy, factors
		}
	}
	return o
}

// SetFadePolicy installs a new fade-out policy, recomputes its per-frame
// factors, and persists both.
func (o *Orchestrator) SetFadePolicy(policy fade.Policy) {
	factors := policy.Factors(fade.DefaultFrameRate)
	o.mu.Lock()
	o.policy, o.factors = policy, factors
	o.mu.Unlock()
	if o.store != nil {
		if err := o.store.SetFadePolicy(policy, factors); err != nil {
			o.sink.Errorf("view", "persist fade policy: %v", err)
		}
	}
}

func (o *Orchestrator) FadePolicy() (fade.Policy, []float64) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.policy, o.factors
}

// Submit merges a batch into the pending set (last-value-wins per control)
// and requests a render.
func (o *Orchestrator) Submit(batch input.Batch) {
	o.mu.Lock()
	for idx, change := range batch {
		if prev, ok := o.pending[idx]; ok {
			o.pending[idx] = input.Merge(prev, change)
		} else {
			o.pending[idx] = input.Merge(input.SourceChange{Source: change.Source}, change)
		}
	}
	o.mu.Unlock()
	o.RequestRender()
}

// RequestRender schedules one render pass unless one is already pending.
// The false return is the "not started" signal: no second refresh callback
// is ever scheduled.
func (o *Orchestrator) RequestRender() bool {
	o.mu.Lock()
	if o.renderPending {
		o.mu.Unlock()
		return false
	}
	o.renderPending = true
	o.mu.Unlock()
	o.sched.Schedule(o.renderPass)
	return true
}

// renderPass consumes the coalesced pending changes. It always clears the
// pending gate, so a scheduled render eventually runs exactly once.
func (o *Orchestrator) renderPass(now time.Time) {
	o.mu.Lock()
	pending := o.pending
	o.pending = make(map[int]input.SourceChange)
	o.renderPending = false

	indices := make([]int, 0, len(pending))
	for idx := range pending {
		indices = append(indices, idx)
	}
	sort.Ints(indices)
	for _, idx := range indices {
		o.processSlot(idx, pending[idx], now)
	}
	activity, ok := o.primaryActivity()
	notify := o.OnActivity
	o.mu.Unlock()

	if ok && notify != nil {
		notify(activity)
	}
}

// Advance ages idle controls by one frame. The presenter loop calls this on
// every refresh so the fade-out cadence is independent of the input stream.
func (o *Orchestrator) Advance(now time.Time) {
	o.mu.Lock()
	defer o.mu.Unlock()
	for _, s := range o.slots {
		if s.Ready() {
			s.ApplyFade(o.policy, o.factors, now)
		}
	}
}

// processSlot runs one slot through its lifecycle for this pass. Errors are
// isolated: a slot that cannot proceed is skipped for the frame and retried
// on the next batch.
func (o *Orchestrator) processSlot(idx int, change input.SourceChange, now time.Time) {
	existing := o.slots[idx]

	// Empty source means the occupant disconnected.
	if change.Source == "" {
		if existing != nil {
			existing.Teardown()
			delete(o.slots, idx)
			o.sink.Logf("view", "slot %d released", idx)
		}
		return
	}

	// Source replaced: tear down before re-initializing for the newcomer.
	if existing != nil && existing.Source != change.Source {
		existing.Teardown()
		delete(o.slots, idx)
		existing = nil
	}

	if existing == nil {
		dirname := o.resolveSkin(change.Source)
		if dirname == "" {
			o.sink.Errorf("view", "slot %d: no skin resolvable for source %q", idx, change.Source)
			return
		}
		if err := o.registry.Ensure(dirname); err != nil {
			o.sink.Errorf("view", "slot %d: %v", idx, err)
			return
		}
		sk, ok := o.registry.Lookup(dirname)
		if !ok {
			// Still loading; stay initializing and retry on the next batch.
			return
		}
		s := slot.New(change.Source, sk)
		s.RenderFrame(now)
		s.RenderChanges(change, now)
		o.slots[idx] = s
		o.sink.Logf("view", "slot %d bound to %q with skin %q", idx, change.Source, dirname)
		return
	}

	if !existing.Ready() {
		o.sink.Errorf("view", "slot %d: inconsistent state at render time, skipping", idx)
		return
	}
	existing.RenderChanges(change, now)
}

// resolveSkin consults the persistent mapping first, then the substring
// heuristic between the two configured defaults.
func (o *Orchestrator) resolveSkin(source input.SourceID) string {
	if o.store != nil {
		if dirname, ok := o.store.Mapping(string(source)); ok && dirname != "" {
			return dirname
		}
	}
	if o.resolve.Match != "" && strings.Contains(strings.ToLower(string(source)), strings.ToLower(o.resolve.Match)) {
		return o.resolve.Fallback
	}
	return o.resolve.Default
}

// primaryActivity snapshots the lowest occupied slot. Caller holds the lock.
func (o *Orchestrator) primaryActivity() (slot.Activity, bool) {
	best := -1
	for idx, s := range o.slots {
		if !s.Ready() {
			continue
		}
		if best == -1 || idx < best {
			best = idx
		}
	}
	if best == -1 {
		return slot.Activity{}, false
	}
	return o.slots[best].ActivitySnapshot(), true
}

// Slots returns the ready slots keyed by index for composition. The caller
// must be on the frame goroutine; slot state is single-writer per pass.
func (o *Orchestrator) Slots() map[int]*slot.Slot {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make(map[int]*slot.Slot, len(o.slots))
	for idx, s := range o.slots {
		if s.Ready() {
			out[idx] = s
		}
	}
	return out
}
