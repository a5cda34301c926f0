// Package param provides parameter management for plugins: lock-free value
// cells, parameter descriptors, registries, dispatch and smoothing.
package param

import (
	"math"
	"time"
)

// SmoothingType selects how a Smoother approaches its target.
type SmoothingType int

const (
	// LinearSmoothing reaches the target in a fixed number of equal steps.
	LinearSmoothing SmoothingType = iota
	// ExponentialSmoothing is a one-pole lowpass on the target.
	ExponentialSmoothing
)

// DefaultThreshold is the distance at which a smoother snaps to its target.
// It is small enough to resolve coefficients near -90 dB.
const DefaultThreshold = 1e-7

// Smoother ramps a control value towards its latest target, one sample at a
// time. It belongs to the audio thread and is not safe for concurrent use.
type Smoother struct {
	kind      SmoothingType
	rate      float64 // steps for linear, pole for exponential
	threshold float64

	current, target float64
	step            float64
	remaining       int // linear steps left; -1 while an exponential ramp runs
}

// NewSmoother creates an idle smoother at 0. rate is the ramp length in
// samples for LinearSmoothing and the pole in [0, 1) for
// ExponentialSmoothing, where 0 jumps straight to the target.
func NewSmoother(kind SmoothingType, rate float64) *Smoother {
	return &Smoother{kind: kind, rate: rate, threshold: DefaultThreshold}
}

// SetTarget starts a ramp from the current value. Setting the same target
// again leaves a running ramp alone.
func (s *Smoother) SetTarget(target float64) {
	if target == s.target {
		return
	}
	s.target = target

	dist := target - s.current
	if math.Abs(dist) < s.threshold {
		s.settle()
		return
	}

	if s.kind == LinearSmoothing {
		s.remaining = max(int(math.Round(s.rate)), 1)
		s.step = dist / float64(s.remaining)
		return
	}
	s.remaining = -1
}

// Next advances one sample and returns the new value.
func (s *Smoother) Next() float64 {
	switch {
	case s.remaining == 0:
	case s.remaining > 0:
		s.remaining--
		if s.remaining == 0 {
			s.current = s.target
		} else {
			s.current += s.step
		}
	default:
		s.current = s.target + (s.current-s.target)*s.rate
		if math.Abs(s.current-s.target) < s.threshold {
			s.settle()
		}
	}
	return s.current
}

// Fill writes the next len(dst) values.
func (s *Smoother) Fill(dst []float32) {
	for i := range dst {
		if s.remaining == 0 {
			// Idle for the rest of the block.
			v := float32(s.current)
			for j := i; j < len(dst); j++ {
				dst[j] = v
			}
			return
		}
		dst[i] = float32(s.Next())
	}
}

// IsSmoothing reports whether a ramp is in progress.
func (s *Smoother) IsSmoothing() bool {
	return s.remaining != 0
}

// Current returns the last value produced.
func (s *Smoother) Current() float64 {
	return s.current
}

// Reset jumps to value and stops any ramp.
func (s *Smoother) Reset(value float64) {
	s.target = value
	s.settle()
}

// SetRate changes the rate for ramps started afterwards.
func (s *Smoother) SetRate(rate float64) {
	s.rate = rate
}

func (s *Smoother) SetThreshold(threshold float64) {
	s.threshold = threshold
}

// SetTime derives the rate from a transition time. An exponential ramp
// covers 60 dB of the remaining distance in d.
func (s *Smoother) SetTime(sampleRate float64, d time.Duration) {
	samples := max(sampleRate*d.Seconds(), 1)
	if s.kind == LinearSmoothing {
		s.rate = samples
		return
	}
	s.rate = math.Exp(-math.Log(1000) / samples)
}

func (s *Smoother) settle() {
	s.current = s.target
	s.step = 0
	s.remaining = 0
}
