// Package input defines the change-batch feed consumed by the render
// orchestrator. Producing these batches from real hardware is a collaborator
// concern; this package only fixes the records and their merge semantics.
package input

// SourceID identifies one logical input source (e.g. "xbox-360-pad-0").
type SourceID string

// StickChange reports one stick in a batch. Position is always present in
// every change event so a fully deflected but motionless stick is never
// misclassified as idle; Pressed travels only when the click state actually
// changed and is nil otherwise.
type StickChange struct {
	Active  bool
	Pressed *bool
	X, Y    float64 // normalized position in [0,1]
	DX, DY  float64 // movement since the previous report
}

// SourceChange is everything that changed for one source in a batch.
// Button values are grouped by named button group; a value of exactly zero
// means released.
type SourceChange struct {
	Source  SourceID
	Sticks  map[string]StickChange
	Buttons map[string]map[string]float64
}

// Batch is a set of per-slot changes delivered together.
type Batch map[int]SourceChange

// Merge folds src into dst with last-value-wins per control. A nil Pressed
// never overwrites a previously merged press state, and controls absent from
// src stay untouched. Ordering inside one coalescing window is preserved by
// merging, never by reordering.
func Merge(dst, src SourceChange) SourceChange {
	if dst.Source != src.Source {
		// A new source replaces the pending change wholesale; slot
		// re-initialization handles the rest.
		return clone(src)
	}
	out := clone(dst)
	for name, change := range src.Sticks {
		if prev, ok := out.Sticks[name]; ok && change.Pressed == nil {
			change.Pressed = prev.Pressed
		}
		if out.Sticks == nil {
			out.Sticks = make(map[string]StickChange)
		}
		out.Sticks[name] = change
	}
	for group, buttons := range src.Buttons {
		if out.Buttons == nil {
			out.Buttons = make(map[string]map[string]float64)
		}
		if out.Buttons[group] == nil {
			out.Buttons[group] = make(map[string]float64)
		}
		for name, value := range buttons {
			out.Buttons[group][name] = value
		}
	}
	return out
}

func clone(c SourceChange) SourceChange {
	out := SourceChange{Source: c.Source}
	if c.Sticks != nil {
		out.Sticks = make(map[string]StickChange, len(c.Sticks))
		for k, v := range c.Sticks {
			out.Sticks[k] = v
		}
	}
	if c.Buttons != nil {
		out.Buttons = make(map[string]map[string]float64, len(c.Buttons))
		for g, m := range c.Buttons {
			inner := make(map[string]float64, len(m))
			for k, v := range m {
				inner[k] = v
			}
			out.Buttons[g] = inner
		}
	}
	return out
}

// Bool is a convenience for building Pressed pointers in batches and tests.
func Bool(v bool) *bool { return &v }
