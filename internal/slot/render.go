package slot

import (
	"time"

	"github.com/openpad/padview/internal/draw"
	"github.com/openpad/padview/internal/fade"
	"github.com/openpad/padview/internal/input"
	"github.com/openpad/padview/internal/skin"
)

// stickCenter is the idle baseline position for full renders.
var stickCenter = draw.PointF{X: 0.5, Y: 0.5}

// RenderFrame is the full render used only at slot initialization: every
// stick and button in the skin's declared order gets clear then off, and the
// state trees reset to the idle baseline stamped with now. The result is a
// deterministic starting frame regardless of event history.
func (s *Slot) RenderFrame(now time.Time) {
	for _, spec := range s.Skin.Sticks {
		canvas := s.Layers[spec.Layer]
		s.run(canvas, spec.Clear, 0, 1, stickCenter)
		s.run(canvas, spec.Off, 0, 1, stickCenter)
		s.stickActive[spec.Name] = StickState{}
		s.stickLast[spec.Name] = now
		s.stickAlpha[spec.Name] = 1
	}
	for _, group := range s.Skin.ButtonGroups {
		for _, spec := range group.Buttons {
			canvas := s.Layers[spec.Layer]
			s.run(canvas, spec.Clear, 0, 1, draw.PointF{})
			s.run(canvas, spec.Off, 0, 1, draw.PointF{})
			s.buttonActive[group.Name][spec.Name] = false
			s.buttonLast[group.Name][spec.Name] = now
			s.buttonAlpha[group.Name][spec.Name] = 1
		}
	}
}

// RenderChanges is the incremental render: only controls the merged batch
// names are touched; everything else keeps its last drawn state.
func (s *Slot) RenderChanges(change input.SourceChange, now time.Time) {
	for _, spec := range s.Skin.Sticks {
		c, ok := change.Sticks[spec.Name]
		if !ok {
			continue
		}
		s.renderStick(spec, c, now)
	}
	for _, group := range s.Skin.ButtonGroups {
		values, ok := change.Buttons[group.Name]
		if !ok {
			continue
		}
		for _, spec := range group.Buttons {
			value, ok := values[spec.Name]
			if !ok {
				continue
			}
			s.renderButton(group.Name, spec, value, now)
		}
	}
}

// renderStick redraws one stick. The on/off list is chosen by the last-seen
// press state alone; movement picks the position the chosen list draws at.
// A nil Pressed leaves the recorded press state untouched.
func (s *Slot) renderStick(spec skin.StickSpec, c input.StickChange, now time.Time) {
	state := s.stickActive[spec.Name]
	if c.Pressed != nil {
		state.Pressed = *c.Pressed
	}
	state.Moved = c.Active
	pos := draw.PointF{X: c.X, Y: c.Y}

	canvas := s.Layers[spec.Layer]
	s.run(canvas, spec.Clear, 0, 1, pos)
	if state.Pressed {
		s.run(canvas, spec.On, 0, 1, pos)
	} else {
		s.run(canvas, spec.Off, 0, 1, pos)
	}

	s.stickActive[spec.Name] = state
	s.stickLast[spec.Name] = now
	s.stickAlpha[spec.Name] = 1
}

// renderButton redraws one button; a value of exactly zero selects off.
// The value itself feeds value-scaled instructions (trigger depth).
func (s *Slot) renderButton(group string, spec skin.ButtonSpec, value float64, now time.Time) {
	canvas := s.Layers[spec.Layer]
	s.run(canvas, spec.Clear, value, 1, draw.PointF{})
	if value == 0 {
		s.run(canvas, spec.Off, value, 1, draw.PointF{})
	} else {
		s.run(canvas, spec.On, value, 1, draw.PointF{})
	}
	s.buttonActive[group][spec.Name] = value != 0
	s.buttonLast[group][spec.Name] = now
	s.buttonAlpha[group][spec.Name] = 1
}

// ApplyFade ages idle controls by one frame. Decay factor semantics: 0 means
// no decay yet, 1 means snap to fully transparent, anything between is the
// per-frame multiplicative carry, applied by eroding the control's fadeout
// region with erase alpha 1-factor. Controls without a fadeout list, and
// controls currently engaged, are left alone.
func (s *Slot) ApplyFade(policy fade.Policy, factors []float64, now time.Time) {
	for _, spec := range s.Skin.Sticks {
		if spec.Fadeout == nil {
			continue
		}
		state := s.stickActive[spec.Name]
		if state.Moved || state.Pressed {
			continue
		}
		alpha := s.stickAlpha[spec.Name]
		idle := now.Sub(s.stickLast[spec.Name]).Seconds()
		s.stickAlpha[spec.Name] = s.fadeControl(s.Layers[spec.Layer], spec.Fadeout, policy, factors, idle, alpha)
	}
	for _, group := range s.Skin.ButtonGroups {
		for _, spec := range group.Buttons {
			if spec.Fadeout == nil {
				continue
			}
			if s.buttonActive[group.Name][spec.Name] {
				continue
			}
			alpha := s.buttonAlpha[group.Name][spec.Name]
			idle := now.Sub(s.buttonLast[group.Name][spec.Name]).Seconds()
			s.buttonAlpha[group.Name][spec.Name] = s.fadeControl(s.Layers[spec.Layer], spec.Fadeout, policy, factors, idle, alpha)
		}
	}
}

// fadedFloor is where a control counts as invisible; below it no further
// decay work is done.
const fadedFloor = 1.0 / 255

// fadeControl applies one frame of decay and returns the new stored alpha.
func (s *Slot) fadeControl(canvas *draw.Canvas, fadeout []skin.Instruction, policy fade.Policy, factors []float64, idle, alpha float64) float64 {
	if alpha <= fadedFloor {
		return alpha
	}
	factor := policy.FactorFor(factors, idle)
	switch {
	case factor <= 0:
		return alpha
	case factor >= 1:
		s.run(canvas, fadeout, 0, 1, draw.PointF{})
		return 0
	default:
		s.run(canvas, fadeout, 0, 1-factor, draw.PointF{})
		return alpha * factor
	}
}

// run skips absent instruction lists; everything else goes straight to the
// interpreter.
func (s *Slot) run(canvas *draw.Canvas, list []skin.Instruction, value, alpha float64, pos draw.PointF) {
	if list == nil {
		return
	}
	skin.Run(canvas, s.Skin.Sprites, list, value, alpha, pos)
}
