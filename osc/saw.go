package osc

import "github.com/quietcore/fix15synth/fix15"

// Saw is a sawtooth oscillator derived directly from the top 16 bits of
// the phase accumulator: sample = 2*phase - 1.
type Saw struct {
	phase Phase
}

var _ Oscillator = (*Saw)(nil)

func (s *Saw) ResetPhase()                           { s.phase.Reset() }
func (s *Saw) SetFrequency(freq, sampleRate float64) { s.phase.SetFrequency(freq, sampleRate) }

func (s *Saw) NextSample() fix15.T {
	frac := fracFromAccumulator(s.phase.Next())
	return (frac << 1) - fix15.One
}

// fracFromAccumulator converts the top 16 bits of a 32-bit phase
// accumulator into a fix15 value in [0, One), i.e. the phase's position
// within its 0..1 cycle.
func fracFromAccumulator(p uint32) fix15.T {
	return fix15.T((p >> 16) >> 1)
}
