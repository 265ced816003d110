package view

import (
	"errors"
	"image"
	"path/filepath"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/openpad/padview/internal/fade"
	"github.com/openpad/padview/internal/input"
	"github.com/openpad/padview/internal/prefs"
	"github.com/openpad/padview/internal/skin"
	"github.com/openpad/padview/internal/slot"
)

var frameTime = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// manualScheduler collects scheduled callbacks and runs them on demand,
// standing in for the display-refresh loop.
type manualScheduler struct {
	mu  sync.Mutex
	fns []func(time.Time)
}

func (s *manualScheduler) Schedule(fn func(now time.Time)) {
	s.mu.Lock()
	s.fns = append(s.fns, fn)
	s.mu.Unlock()
}

func (s *manualScheduler) runAll(now time.Time) int {
	s.mu.Lock()
	fns := s.fns
	s.fns = nil
	s.mu.Unlock()
	for _, fn := range fns {
		fn(now)
	}
	return len(fns)
}

// mapLoader resolves skins synchronously from a fixed table.
type mapLoader struct {
	mu    sync.Mutex
	skins map[string]*skin.Skin
}

func (l *mapLoader) Load(dirname string) (*skin.Skin, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if s, ok := l.skins[dirname]; ok {
		return s, nil
	}
	return nil, errors.New("no such skin")
}

func minimalSkin(name string) *skin.Skin {
	return &skin.Skin{
		Name:    name,
		Sprites: []image.Image{image.NewRGBA(image.Rect(0, 0, 4, 4))},
		Layers:  []skin.LayerGeometry{{Width: 32, Height: 32}},
		Sticks: []skin.StickSpec{{
			Name:  "left",
			Clear: []skin.Instruction{skin.ClearRect{Width: 32, Height: 32}},
			On:    []skin.Instruction{skin.DrawImage{Src: 0, Width: 4, Height: 4}},
			Off:   []skin.Instruction{skin.DrawImage{Src: 0, Width: 4, Height: 4, DstX: 8}},
		}},
	}
}

func newTestOrchestrator(t *testing.T, skins map[string]*skin.Skin) (*Orchestrator, *manualScheduler, *skin.Registry) {
	t.Helper()
	registry := skin.NewRegistry(&mapLoader{skins: skins}, nil)
	sched := &manualScheduler{}
	orch := New(registry, nil, sched, Resolution{Match: "xbox", Fallback: "xbox360", Default: "ds4"}, nil)
	return orch, sched, registry
}

// settleSlot drives submit+render passes until the slot is ready; the first
// pass only kicks off the async skin load.
func settleSlot(t *testing.T, orch *Orchestrator, sched *manualScheduler, idx int, change input.SourceChange) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		orch.Submit(input.Batch{idx: change})
		sched.runAll(frameTime)
		if _, ok := orch.Slots()[idx]; ok {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("slot %d never became ready", idx)
}

func TestRequestRenderGate(t *testing.T) {
	orch, sched, _ := newTestOrchestrator(t, nil)

	if !orch.RequestRender() {
		t.Fatal("first RequestRender returned false")
	}
	if orch.RequestRender() {
		t.Error("second RequestRender while pending returned true")
	}
	if got := sched.runAll(frameTime); got != 1 {
		t.Fatalf("%d callbacks scheduled, want 1", got)
	}

	// After the pass ran, the gate reopens.
	if !orch.RequestRender() {
		t.Error("RequestRender after a completed pass returned false")
	}
}

func TestSubmitCoalescesIntoOnePass(t *testing.T) {
	orch, sched, _ := newTestOrchestrator(t, map[string]*skin.Skin{"ds4": minimalSkin("ds4")})

	for i := 0; i < 10; i++ {
		orch.Submit(input.Batch{0: {
			Source: "generic-pad",
			Sticks: map[string]input.StickChange{"left": {Active: true, X: float64(i) / 10}},
		}})
	}
	if got := sched.runAll(frameTime); got != 1 {
		t.Errorf("10 submits scheduled %d passes, want 1", got)
	}
}

func TestSlotInitializationWaitsForLoad(t *testing.T) {
	orch, sched, registry := newTestOrchestrator(t, map[string]*skin.Skin{"ds4": minimalSkin("ds4")})

	change := input.SourceChange{
		Source: "generic-pad",
		Sticks: map[string]input.StickChange{"left": {Active: true}},
	}
	orch.Submit(input.Batch{0: change})
	sched.runAll(frameTime)

	// The first pass can only start the load; the slot is not ready yet
	// unless the loader goroutine won the race.
	settleSlot(t, orch, sched, 0, change)

	if _, ok := registry.Lookup("ds4"); !ok {
		t.Error("registry did not retain the loaded skin")
	}
	s := orch.Slots()[0]
	if s.Source != "generic-pad" {
		t.Errorf("slot source = %q, want generic-pad", s.Source)
	}
}

func TestResolveSkinHeuristic(t *testing.T) {
	orch, _, _ := newTestOrchestrator(t, nil)

	tests := []struct {
		source input.SourceID
		want   string
	}{
		{"xbox-360-pad-0", "xbox360"},
		{"Microsoft-XBOX-wireless", "xbox360"},
		{"sony-dualshock", "ds4"},
		{"unknown", "ds4"},
	}
	for _, tt := range tests {
		if got := orch.resolveSkin(tt.source); got != tt.want {
			t.Errorf("resolveSkin(%q) = %q, want %q", tt.source, got, tt.want)
		}
	}
}

func TestSourceSwapReinitializesSlot(t *testing.T) {
	orch, sched, _ := newTestOrchestrator(t, map[string]*skin.Skin{
		"ds4":     minimalSkin("ds4"),
		"xbox360": minimalSkin("xbox360"),
	})

	settleSlot(t, orch, sched, 0, input.SourceChange{
		Source: "sony-pad",
		Sticks: map[string]input.StickChange{"left": {Active: true}},
	})
	first := orch.Slots()[0]
	if first.Skin.Name != "ds4" {
		t.Fatalf("first skin = %q, want ds4", first.Skin.Name)
	}

	settleSlot(t, orch, sched, 0, input.SourceChange{
		Source: "xbox-pad",
		Sticks: map[string]input.StickChange{"left": {Active: true}},
	})
	second := orch.Slots()[0]
	if second == first {
		t.Fatal("slot was not re-created for the new source")
	}
	if second.Skin.Name != "xbox360" {
		t.Errorf("second skin = %q, want xbox360", second.Skin.Name)
	}
	// The displaced slot's surfaces are gone.
	if first.Ready() || first.Layers != nil {
		t.Error("previous slot still holds surfaces after replacement")
	}
}

func TestEmptySourceReleasesSlot(t *testing.T) {
	orch, sched, _ := newTestOrchestrator(t, map[string]*skin.Skin{"ds4": minimalSkin("ds4")})

	settleSlot(t, orch, sched, 0, input.SourceChange{
		Source: "sony-pad",
		Sticks: map[string]input.StickChange{"left": {Active: true}},
	})
	held := orch.Slots()[0]

	orch.Submit(input.Batch{0: {Source: ""}})
	sched.runAll(frameTime)

	if len(orch.Slots()) != 0 {
		t.Error("slot survived a disconnect batch")
	}
	if held.Ready() {
		t.Error("released slot still ready")
	}
}

func TestUnresolvableSkinSkipsSlot(t *testing.T) {
	orch, sched, _ := newTestOrchestrator(t, nil)

	// Loader knows nothing, so every init fails; the slot must simply stay
	// absent rather than wedge the pass.
	for i := 0; i < 3; i++ {
		orch.Submit(input.Batch{0: {
			Source: "mystery-pad",
			Sticks: map[string]input.StickChange{"left": {Active: true}},
		}})
		sched.runAll(frameTime)
		time.Sleep(5 * time.Millisecond)
	}
	if len(orch.Slots()) != 0 {
		t.Error("slot exists despite failing skin loads")
	}
}

func TestOnActivityReceivesPrimarySlot(t *testing.T) {
	orch, sched, _ := newTestOrchestrator(t, map[string]*skin.Skin{"ds4": minimalSkin("ds4")})

	var mu sync.Mutex
	var last slot.Activity
	var calls int
	orch.OnActivity = func(a slot.Activity) {
		mu.Lock()
		last = a
		calls++
		mu.Unlock()
	}

	settleSlot(t, orch, sched, 0, input.SourceChange{
		Source: "sony-pad",
		Sticks: map[string]input.StickChange{"left": {Active: true, Pressed: input.Bool(true)}},
	})

	mu.Lock()
	defer mu.Unlock()
	if calls == 0 {
		t.Fatal("OnActivity never called")
	}
	if st, ok := last.Sticks["left"]; !ok || !st.Pressed {
		t.Errorf("activity sticks = %+v, want pressed left", last.Sticks)
	}
}

func TestNewRestoresPersistedFadePolicy(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.json")
	store, err := prefs.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	custom := fade.Policy{Checkpoints: []fade.Checkpoint{{After: 2, Opacity: 0.25}}, Duration: 1}
	if err := store.SetFadePolicy(custom, custom.Factors(fade.DefaultFrameRate)); err != nil {
		t.Fatal(err)
	}

	reopened, err := prefs.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	orch := New(skin.NewRegistry(&mapLoader{}, nil), reopened, &manualScheduler{}, Resolution{}, nil)

	policy, factors := orch.FadePolicy()
	if !reflect.DeepEqual(policy, custom) {
		t.Errorf("policy after reopen = %+v, want %+v", policy, custom)
	}
	if len(factors) != 1 {
		t.Errorf("factors after reopen = %v, want one entry", factors)
	}

	// The record on disk survives construction untouched.
	fresh, err := prefs.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	stored, _, ok := fresh.FadePolicy()
	if !ok || !reflect.DeepEqual(stored, custom) {
		t.Errorf("stored policy = %+v (ok=%v), want %+v", stored, ok, custom)
	}
}

func TestSetFadePolicyRecomputesFactors(t *testing.T) {
	orch, _, _ := newTestOrchestrator(t, nil)

	policy, factors := orch.FadePolicy()
	if len(factors) != len(policy.Checkpoints) {
		t.Fatalf("default factors = %d, checkpoints = %d", len(factors), len(policy.Checkpoints))
	}

	next := policy
	next.Checkpoints = policy.Checkpoints[:2]
	orch.SetFadePolicy(next)
	got, gotFactors := orch.FadePolicy()
	if len(got.Checkpoints) != 2 || len(gotFactors) != 2 {
		t.Errorf("updated policy has %d checkpoints and %d factors, want 2 and 2",
			len(got.Checkpoints), len(gotFactors))
	}
}
