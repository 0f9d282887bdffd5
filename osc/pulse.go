package osc

import "github.com/quietcore/fix15synth/fix15"

// Pulse is a variable-width pulse oscillator: +1 while phase < width, else
// -1. Width is clamped to (0.05, 0.95) by the caller (the synth voice),
// matching §4.2.
type Pulse struct {
	phase Phase
	width fix15.T
}

var _ Oscillator = (*Pulse)(nil)
var _ Oscillator = (*Square)(nil)
var _ Oscillator = (*Sub)(nil)

func NewPulse() *Pulse {
	return &Pulse{width: fix15.Half}
}

func (p *Pulse) ResetPhase()                           { p.phase.Reset() }
func (p *Pulse) SetFrequency(freq, sampleRate float64) { p.phase.SetFrequency(freq, sampleRate) }

// SetPulseWidth sets the duty cycle. The caller is responsible for
// clamping to (0.05, 0.95); this method does not re-clamp.
func (p *Pulse) SetPulseWidth(width fix15.T) { p.width = width }

func (p *Pulse) NextSample() fix15.T {
	frac := fracFromAccumulator(p.phase.Next())
	if frac < p.width {
		return fix15.One
	}
	return -fix15.One
}

// Square is a Pulse fixed at a 50% duty cycle.
type Square struct {
	phase Phase
}

func (s *Square) ResetPhase()                           { s.phase.Reset() }
func (s *Square) SetFrequency(freq, sampleRate float64) { s.phase.SetFrequency(freq, sampleRate) }

func (s *Square) NextSample() fix15.T {
	frac := fracFromAccumulator(s.phase.Next())
	if frac < fix15.Half {
		return fix15.One
	}
	return -fix15.One
}

// Sub is a square oscillator one octave below the frequency it's
// programmed with: SetFrequency halves the argument before programming
// the accumulator.
type Sub struct {
	square Square
}

func (s *Sub) ResetPhase() { s.square.ResetPhase() }
func (s *Sub) SetFrequency(freq, sampleRate float64) {
	s.square.SetFrequency(freq/2, sampleRate)
}
func (s *Sub) NextSample() fix15.T { return s.square.NextSample() }
