// Package osc implements the phase-accumulator oscillators of §3/§4.2:
// sine (lookup table + linear interpolation), saw, pulse (variable width),
// square, sub (one octave below), and LCG white noise. All of them operate
// entirely in fix15 once frequency has been programmed.
package osc

import (
	"math"

	"github.com/quietcore/fix15synth/fix15"
)

// Oscillator is the common surface every waveform in this package exposes.
type Oscillator interface {
	ResetPhase()
	SetFrequency(freq, sampleRate float64)
	NextSample() fix15.T
}

// Phase is an unsigned 32-bit phase accumulator. Its natural modular wrap
// defines the oscillator's 0..2^32-1 cycle; each waveform reinterprets the
// top bits of the accumulator as needed.
type Phase struct {
	Value     uint32
	Increment uint32
}

// SetFrequency precomputes the 32-bit increment for a given frequency and
// sample rate: increment = round(f * 2^32 / sr).
func (p *Phase) SetFrequency(freq, sampleRate float64) {
	p.Increment = uint32(math.Round(freq / sampleRate * 4294967296.0))
}

// Reset sets the accumulator back to phase 0.
func (p *Phase) Reset() { p.Value = 0 }

// Next returns the current phase and advances the accumulator, so the
// first sample after a reset is emitted at phase 0.
func (p *Phase) Next() uint32 {
	cur := p.Value
	p.Value += p.Increment
	return cur
}
