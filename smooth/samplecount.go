package smooth

import (
	"math"
	"sync/atomic"
)

// SampleCount smooths a u32 sample count (attack/decay/release length
// expressed in samples) using the same lock-free handshake as Smoother, so
// changing an envelope time parameter never jumps a running phase's length
// discontinuously.
type SampleCount struct {
	current, target, step int64
	remaining, rampLength  uint32

	pendingTarget atomic.Uint32
	hasNewTarget  atomic.Bool
}

func (s *SampleCount) Reset(sampleRate float64, rampSeconds float64) {
	s.rampLength = uint32(math.Round(sampleRate * rampSeconds))
}

func (s *SampleCount) SetValue(v uint32) {
	s.current = int64(v)
	s.target = int64(v)
	s.remaining = 0
	s.step = 0
	s.hasNewTarget.Store(false)
}

func (s *SampleCount) SetTarget(v uint32) {
	s.pendingTarget.Store(v)
	s.hasNewTarget.Store(true)
}

func (s *SampleCount) Next() uint32 {
	if s.hasNewTarget.Load() {
		target := int64(s.pendingTarget.Load())
		s.hasNewTarget.Store(false)
		s.target = target
		if s.rampLength > 0 {
			s.step = (s.target - s.current) / int64(s.rampLength)
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
	if s.current < 0 {
		return 0
	}
	return uint32(s.current)
}
