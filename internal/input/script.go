package input

import (
	"context"
	"math"
	"time"
)

// Step is one scripted event: wait After since the previous step, then emit.
type Step struct {
	After time.Duration
	Batch Batch
}

// Script replays a fixed sequence of batches. Both binaries use it in place
// of a hardware polling layer.
type Script struct {
	Steps []Step
}

// Run emits every step in order, honoring the per-step delays, until the
// script ends or ctx is cancelled.
func (s Script) Run(ctx context.Context, emit func(Batch)) {
	for _, step := range s.Steps {
		if step.After > 0 {
			select {
			case <-ctx.Done():
				return
			case <-time.After(step.After):
			}
		}
		emit(step.Batch)
	}
}

// DemoScript exercises one slot: stick sweep with a mid-sweep click, button
// taps, then a long idle stretch so the fade-out curve is visible.
func DemoScript(slot int, source SourceID) Script {
	var steps []Step

	// Circular left-stick sweep; pressed only travels on its two edges.
	const sweepSteps = 48
	for i := 0; i <= sweepSteps; i++ {
		angle := 2 * math.Pi * float64(i) / sweepSteps
		change := StickChange{
			Active: true,
			X:      0.5 + 0.5*math.Cos(angle),
			Y:      0.5 + 0.5*math.Sin(angle),
		}
		if i == sweepSteps/4 {
			change.Pressed = Bool(true)
		}
		if i == sweepSteps/2 {
			change.Pressed = Bool(false)
		}
		steps = append(steps, Step{
			After: 40 * time.Millisecond,
			Batch: Batch{slot: SourceChange{
				Source: source,
				Sticks: map[string]StickChange{"left": change},
			}},
		})
	}
	steps = append(steps, Step{
		After: 40 * time.Millisecond,
		Batch: Batch{slot: SourceChange{
			Source: source,
			Sticks: map[string]StickChange{"left": {X: 0.5, Y: 0.5, Pressed: Bool(false)}},
		}},
	})

	// Button taps across the dpad.
	for _, name := range []string{"up", "right", "down", "left"} {
		steps = append(steps,
			Step{
				After: 250 * time.Millisecond,
				Batch: Batch{slot: SourceChange{
					Source:  source,
					Buttons: map[string]map[string]float64{"dpad": {name: 1}},
				}},
			},
			Step{
				After: 250 * time.Millisecond,
				Batch: Batch{slot: SourceChange{
					Source:  source,
					Buttons: map[string]map[string]float64{"dpad": {name: 0}},
				}},
			},
		)
	}

	// Idle long enough for every fade checkpoint to pass, then wake up once.
	steps = append(steps, Step{
		After: 35 * time.Second,
		Batch: Batch{slot: SourceChange{
			Source:  source,
			Buttons: map[string]map[string]float64{"dpad": {"up": 1}},
		}},
	})

	// Swap the occupant so slot teardown and re-initialization run too.
	steps = append(steps, Step{
		After: 2 * time.Second,
		Batch: Batch{slot: SourceChange{
			Source: source + "-swapped",
			Sticks: map[string]StickChange{"left": {Active: true, X: 0.5, Y: 0.5}},
		}},
	})

	return Script{Steps: steps}
}
