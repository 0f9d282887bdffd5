package osc

import (
	"math"

	"github.com/quietcore/fix15synth/fix15"
)

const (
	sineTableSize = 1024
	sineTableMask = sineTableSize - 1
)

var sineTable [sineTableSize]fix15.T

func init() {
	for i := 0; i < sineTableSize; i++ {
		angle := 2 * math.Pi * float64(i) / float64(sineTableSize)
		sineTable[i] = fix15.FromFloat(math.Sin(angle))
	}
}

// Sine is a band-limited-by-table-interpolation sine oscillator: a
// 1024-entry Q16.15 lookup table with linear interpolation between
// adjacent entries.
type Sine struct {
	phase Phase
}

var _ Oscillator = (*Sine)(nil)

func (s *Sine) ResetPhase()                         { s.phase.Reset() }
func (s *Sine) SetFrequency(freq, sampleRate float64) { s.phase.SetFrequency(freq, sampleRate) }

// NextSample returns the next interpolated sine sample and advances the
// phase. The top 10 bits of the 32-bit accumulator index the table; the
// next 15 bits form the interpolation fraction.
func (s *Sine) NextSample() fix15.T {
	p := s.phase.Next()
	idx := (p >> 22) & sineTableMask
	nextIdx := (idx + 1) & sineTableMask
	frac := fix15.T((p >> 7) & 0x7FFF)

	sample0 := sineTable[idx]
	sample1 := sineTable[nextIdx]
	diff := sample1 - sample0
	return sample0 + fix15.Mul(frac, diff)
}
