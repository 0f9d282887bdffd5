// Package filter implements the per-voice 4-pole resonant ladder
// (Moog-style) low-pass filter of §4.6, grounded in
// original_source/FilterModule.h's coefficient mapping.
package filter

import (
	"github.com/quietcore/fix15synth/fix15"
	"github.com/quietcore/fix15synth/smooth"
)

// Precomputed Q16.15 coefficients for the cutoff/resonance mapping:
// g = 0.001 + 0.848*cutoff_norm, res = 3.9*resonance_norm.
const (
	gOffset   fix15.T = 33     // 0.001 * 32768
	gScale    fix15.T = 27787  // ≈0.848 * 32768
	resScale  fix15.T = 127795 // 3.9   * 32768
	makeupGain fix15.T = 81920 // 2.5   * 32768
	clampHigh fix15.T = 524288 // 16.0  * 32768
	clampLow  fix15.T = -524288
	stageClampHigh fix15.T = 262144 // 8.0 * 32768
	stageClampLow  fix15.T = -262144
)

// Ladder is a per-voice, stereo-duplicated 4-pole resonant low-pass
// filter. Cutoff and resonance are smoothed control-rate inputs; Process
// is called once per sample per channel from the audio core.
type Ladder struct {
	stage [4][2]fix15.T // four stages, two channels

	cutoff    smooth.Smoother
	resonance smooth.Smoother
}

// New constructs a Ladder with its smoothers ramping over 20ms, matching
// the original firmware's FilterModule.
func New(sampleRate float64) *Ladder {
	f := &Ladder{}
	f.cutoff.Reset(sampleRate, 0.02)
	f.resonance.Reset(sampleRate, 0.02)
	f.cutoff.SetValue(fix15.FromFloat(0.5))
	f.resonance.SetValue(fix15.FromFloat(0.2))
	return f
}

// SetCutoffTarget and SetResonanceTarget are control-side calls taking
// normalized [0,1] values.
func (f *Ladder) SetCutoffTarget(norm fix15.T)    { f.cutoff.SetTarget(norm) }
func (f *Ladder) SetResonanceTarget(norm fix15.T) { f.resonance.SetTarget(norm) }

// Process filters one stereo frame and returns the filtered pair. Both channels share the same
// smoothed cutoff/resonance coefficients for this sample but keep
// independent stage state.
func (f *Ladder) Process(left, right fix15.T) (fix15.T, fix15.T) {
	cutoffNorm := f.cutoff.Next()
	resonanceNorm := f.resonance.Next()
	g := fix15.Mul(cutoffNorm, gScale) + gOffset
	res := fix15.Mul(resonanceNorm, resScale)

	return f.processChannel(0, left, g, res), f.processChannel(1, right, g, res)
}

func (f *Ladder) processChannel(ch int, input fix15.T, g, res fix15.T) fix15.T {
	fb := input - fix15.Mul(res, f.stage[3][ch])
	fb = fix15.Clamp(fb, clampLow, clampHigh)

	temp := fb - f.stage[0][ch]
	f.stage[0][ch] += fix15.Mul(g, temp)

	temp = f.stage[0][ch] - f.stage[1][ch]
	f.stage[1][ch] += fix15.Mul(g, temp)

	temp = f.stage[1][ch] - f.stage[2][ch]
	f.stage[2][ch] += fix15.Mul(g, temp)

	temp = f.stage[2][ch] - f.stage[3][ch]
	f.stage[3][ch] += fix15.Mul(g, temp)

	f.stage[3][ch] = fix15.Clamp(f.stage[3][ch], stageClampLow, stageClampHigh)

	output := fix15.Mul(f.stage[3][ch], makeupGain)
	return fix15.Clamp(output, clampLow, clampHigh)
}
