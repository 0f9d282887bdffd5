package osc

import "github.com/quietcore/fix15synth/fix15"

// Noise is a white-noise generator driven by a 32-bit linear congruential
// generator (multiplier 1664525, increment 1013904223, the values from
// Numerical Recipes). Frequency is ignored.
type Noise struct {
	seed uint32
}

var _ Oscillator = (*Noise)(nil)

func NewNoise() *Noise { return &Noise{seed: 1} }

func (n *Noise) ResetPhase()                            { n.seed = 1 }
func (n *Noise) SetFrequency(freq, sampleRate float64) {}

// NextSample advances the LCG and reinterprets its upper 16 bits as a
// signed fix15 sample in [-1, 1).
func (n *Noise) NextSample() fix15.T {
	n.seed = n.seed*1664525 + 1013904223
	return fix15.T(int16(n.seed >> 16))
}
