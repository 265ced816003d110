// Package fade converts (idle-time, target-opacity) checkpoints into
// per-frame multiplicative decay factors for idle controls.
package fade

import (
	"fmt"
	"math"
	"sort"
)

// DefaultFrameRate is the refresh cadence the factors are computed for.
const DefaultFrameRate = 30

// Checkpoint says: once a control has been idle for After seconds, its
// opacity should have decayed to Opacity.
type Checkpoint struct {
	After   float64
	Opacity float64
}

// Policy is the fade-out configuration. Duration is the length in seconds of
// the transition into full fade used by the final checkpoint interval.
type Policy struct {
	Checkpoints []Checkpoint
	Duration    float64
}

// DefaultPolicy mirrors the reference curve: half opacity after 8s, a tenth
// after 16s, gone after 32s.
func DefaultPolicy() Policy {
	return Policy{
		Checkpoints: []Checkpoint{{8, 0.5}, {16, 0.1}, {32, 0}},
		Duration:    4,
	}
}

func (p Policy) Validate() error {
	if len(p.Checkpoints) == 0 {
		return fmt.Errorf("fade policy needs at least one checkpoint")
	}
	if !sort.SliceIsSorted(p.Checkpoints, func(i, j int) bool {
		return p.Checkpoints[i].After < p.Checkpoints[j].After
	}) {
		return fmt.Errorf("fade checkpoints must be sorted by time")
	}
	// Opacities may only fall over time; a rising target would put a
	// division by a smaller (possibly zero) previous opacity into Factors.
	prev := 1.0
	for _, c := range p.Checkpoints {
		if c.After <= 0 {
			return fmt.Errorf("checkpoint time %v must be positive", c.After)
		}
		if c.Opacity < 0 || c.Opacity > 1 {
			return fmt.Errorf("checkpoint opacity %v out of [0,1]", c.Opacity)
		}
		if c.Opacity > prev {
			return fmt.Errorf("checkpoint opacity %v rises above the previous %v", c.Opacity, prev)
		}
		prev = c.Opacity
	}
	if p.Duration < 0 {
		return fmt.Errorf("duration %v must not be negative", p.Duration)
	}
	return nil
}

// Factors computes one multiplicative per-frame decay factor per checkpoint:
// 0 when the target opacity is already full (no decay), 1 when the target is
// fully transparent (snap), otherwise (opacity_i/opacity_{i-1})^(1/rate) with
// an implicit leading opacity of 1. Applying factor i once per frame carries
// a control from the previous target to opacity_i over about one second after
// it crosses checkpoint i. Deterministic for equal inputs.
func (p Policy) Factors(rate float64) []float64 {
	if rate <= 0 {
		rate = DefaultFrameRate
	}
	factors := make([]float64, len(p.Checkpoints))
	prev := 1.0
	for i, c := range p.Checkpoints {
		switch {
		case c.Opacity >= 1:
			factors[i] = 0
		case c.Opacity <= 0:
			factors[i] = 1
		default:
			f := math.Pow(c.Opacity/prev, 1/rate)
			if f >= 1 {
				// A held target decays nothing; keep 1 reserved for snap.
				f = 0
			}
			factors[i] = f
		}
		prev = c.Opacity
	}
	return factors
}

// FactorFor picks the decay factor active after idleSeconds of inactivity:
// factor i while the control has been idle past time_i and before time_{i+1},
// the last factor once past the final checkpoint, and 0 (no decay) before the
// first checkpoint is reached.
func (p Policy) FactorFor(factors []float64, idleSeconds float64) float64 {
	active := -1
	for i := range p.Checkpoints {
		if i >= len(factors) {
			break
		}
		if idleSeconds >= p.Checkpoints[i].After {
			active = i
		}
	}
	if active < 0 {
		return 0
	}
	return factors[active]
}
