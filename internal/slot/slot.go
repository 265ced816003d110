// Package slot holds the per-rendering-slot state: which source occupies the
// slot, the skin driving it, one drawing surface per skin layer, and the
// active/last-active/fade trees mirroring the skin's control layout.
package slot

import (
	"time"

	"github.com/openpad/padview/internal/draw"
	"github.com/openpad/padview/internal/input"
	"github.com/openpad/padview/internal/skin"
)

// StickState is the pair of independent facts tracked per stick.
type StickState struct {
	Moved   bool
	Pressed bool
}

// Activity is the snapshot emitted to downstream consumers after each
// orchestration pass.
type Activity struct {
	Sticks  map[string]StickState
	Buttons map[string]map[string]bool
}

// Slot is one rendering destination bound to at most one input source.
// Its state trees always have exactly the shape of the skin's stick/button
// layout; they are built once at initialization and only their values change.
type Slot struct {
	Source input.SourceID
	Skin   *skin.Skin
	Layers []*draw.Canvas

	stickActive map[string]StickState
	stickLast   map[string]time.Time
	stickAlpha  map[string]float64

	buttonActive map[string]map[string]bool
	buttonLast   map[string]map[string]time.Time
	buttonAlpha  map[string]map[string]float64
}

// New allocates a slot for source with one canvas per declared skin layer
// and idle-baseline state trees.
func New(source input.SourceID, sk *skin.Skin) *Slot {
	s := &Slot{Source: source, Skin: sk}
	for _, g := range sk.Layers {
		s.Layers = append(s.Layers, draw.NewCanvas(g.X, g.Y, g.Width, g.Height))
	}
	s.stickActive = make(map[string]StickState, len(sk.Sticks))
	s.stickLast = make(map[string]time.Time, len(sk.Sticks))
	s.stickAlpha = make(map[string]float64, len(sk.Sticks))
	for _, stick := range sk.Sticks {
		s.stickActive[stick.Name] = StickState{}
		s.stickLast[stick.Name] = time.Time{}
		s.stickAlpha[stick.Name] = 1
	}
	s.buttonActive = make(map[string]map[string]bool, len(sk.ButtonGroups))
	s.buttonLast = make(map[string]map[string]time.Time, len(sk.ButtonGroups))
	s.buttonAlpha = make(map[string]map[string]float64, len(sk.ButtonGroups))
	for _, group := range sk.ButtonGroups {
		s.buttonActive[group.Name] = make(map[string]bool, len(group.Buttons))
		s.buttonLast[group.Name] = make(map[string]time.Time, len(group.Buttons))
		s.buttonAlpha[group.Name] = make(map[string]float64, len(group.Buttons))
		for _, b := range group.Buttons {
			s.buttonActive[group.Name][b.Name] = false
			s.buttonLast[group.Name][b.Name] = time.Time{}
			s.buttonAlpha[group.Name][b.Name] = 1
		}
	}
	return s
}

// Teardown releases the drawing surfaces and state. The slot renders nothing
// afterwards; a new source starts from New again.
func (s *Slot) Teardown() {
	for _, c := range s.Layers {
		c.Reset()
	}
	s.Layers = nil
	s.Skin = nil
	s.stickActive = nil
	s.stickLast = nil
	s.stickAlpha = nil
	s.buttonActive = nil
	s.buttonLast = nil
	s.buttonAlpha = nil
}

// Ready reports whether the slot can render: surfaces and instruction maps
// are in place. A false result at render time is a structural inconsistency
// the caller reports and isolates to this slot.
func (s *Slot) Ready() bool {
	return s.Skin != nil && len(s.Layers) == len(s.Skin.Layers)
}

// ActivitySnapshot copies the current active-state tree.
func (s *Slot) ActivitySnapshot() Activity {
	out := Activity{
		Sticks:  make(map[string]StickState, len(s.stickActive)),
		Buttons: make(map[string]map[string]bool, len(s.buttonActive)),
	}
	for k, v := range s.stickActive {
		out.Sticks[k] = v
	}
	for g, m := range s.buttonActive {
		inner := make(map[string]bool, len(m))
		for k, v := range m {
			inner[k] = v
		}
		out.Buttons[g] = inner
	}
	return out
}

// LastActive returns the recorded timestamp trees; exposed for tests and the
// orchestrator's fade bookkeeping.
func (s *Slot) LastActive() (map[string]time.Time, map[string]map[string]time.Time) {
	return s.stickLast, s.buttonLast
}
