// Package smooth implements the per-sample linear ramp used to smooth
// control-rate parameter changes into the audio path without zipper noise,
// and the lock-free single-word handshake that lets the control core hand
// a new target to the audio core without a mutex.
package smooth

import (
	"math"
	"sync/atomic"

	"github.com/quietcore/fix15synth/fix15"
)

// Smoother ramps a fix15 value from its current level toward a target over
// a fixed number of samples. SetTarget is called from the control side;
// Next is called from the audio side. The two communicate through
// pendingTarget/hasNewTarget, a release/acquire pair implemented with
// atomics so neither side blocks or allocates.
type Smoother struct {
	current, target, step fix15.T
	remaining, rampLength  uint32

	pendingTarget atomic.Int32
	hasNewTarget  atomic.Bool
}

// Reset sets the ramp length, in samples, derived from a sample rate and a
// ramp duration in seconds. It does not perturb current or target.
func (s *Smoother) Reset(sampleRate float64, rampSeconds float64) {
	s.rampLength = uint32(math.Round(sampleRate * rampSeconds))
}

// SetValue forces current and target to v and clears any pending update.
// Only safe to call before the audio core starts pulling samples.
func (s *Smoother) SetValue(v fix15.T) {
	s.current = v
	s.target = v
	s.remaining = 0
	s.step = 0
	s.hasNewTarget.Store(false)
}

// SetTarget is the control-side call: it hands a new target to the audio
// side without blocking. The atomic.Bool store after the atomic.Int32
// store is the release half of the handshake.
func (s *Smoother) SetTarget(v fix15.T) {
	s.pendingTarget.Store(int32(v))
	s.hasNewTarget.Store(true)
}

// Next is the audio-side call: it picks up any pending target, advances
// current by one sample's worth of the ramp, and returns the new current
// value.
func (s *Smoother) Next() fix15.T {
	if s.hasNewTarget.Load() {
		target := fix15.T(s.pendingTarget.Load())
		s.hasNewTarget.Store(false)
		s.target = target
		if s.rampLength > 0 {
			s.step = fix15.T(int64(s.target-s.current) / int64(s.rampLength))
		} else {
			s.step = 0
		}
		s.remaining = s.rampLength
	}
	if s.remaining > 0 {
		s.current += s.step
		s.remaining--
		if s.remaining == 0 {
			s.current = s.target
		}
	}
	return s.current
}

// Current returns the current value without advancing the ramp.
func (s *Smoother) Current() fix15.T { return s.current }

// Target returns the smoother's most recently committed target (not
// necessarily the pending one, if a SetTarget call hasn't been consumed by
// Next yet).
func (s *Smoother) Target() fix15.T { return s.target }
