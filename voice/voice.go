// Package voice implements a single polyphonic voice (§3/§4.7): an
// oscillator mix (saw, pulse, sub, noise), a per-voice ladder filter with
// envelope and keyboard-tracking modulation, an amplitude envelope, and
// velocity.
package voice

import (
	"github.com/quietcore/fix15synth/envelope"
	"github.com/quietcore/fix15synth/filter"
	"github.com/quietcore/fix15synth/fix15"
	"github.com/quietcore/fix15synth/osc"
	"github.com/quietcore/fix15synth/smooth"
)

// Fixed modulation coefficients for §4.6's
// modulated_cutoff = base + envAmount*envLevel + keyTrackAmount*(note-60)/12,
// clamped to [0,1]. The spec names these as fixed wiring (no modulation
// matrix beyond env->filter and keytrack->filter), so they are constants,
// not parameters.
const (
	filterEnvAmount      = 0.5
	filterKeyTrackAmount = 0.3
)

// Voice is one independent synthesis pipeline producing at most one note
// at a time. Voices are created once at startup and never destroyed;
// transitions are driven entirely by note events via NoteOn/NoteOff.
type Voice struct {
	sampleRate float64

	midiNote int
	active   bool

	saw   osc.Saw
	pulse *osc.Pulse
	sub   osc.Sub
	noise *osc.Noise

	velocity smooth.Smoother

	sawLevel    smooth.Smoother
	pulseLevel  smooth.Smoother
	subLevel    smooth.Smoother
	noiseLevel  smooth.Smoother
	pulseWidth  smooth.Smoother

	filter *filter.Ladder
	env    *envelope.Envelope

	baseCutoff fix15.T // latest control-rate cutoff target, before modulation

	// pan is a Q16.15 stereo position: Zero=full left, One=full right,
	// Half=center. Per SPEC_FULL.md §4.9a this is a field every voice
	// carries even though nothing yet sets it away from Half, so a
	// future control surface can reach it without changing Voice's shape.
	pan fix15.T
}

// New constructs a voice at the given sample rate. All smoothers ramp over
// 15ms, a middle ground between the filter's 20ms and the envelope's
// sustain/time smoothers' 10-50ms.
func New(sampleRate float64) *Voice {
	v := &Voice{
		sampleRate: sampleRate,
		pulse:      osc.NewPulse(),
		noise:      osc.NewNoise(),
		filter:     filter.New(sampleRate),
		env:        envelope.New(sampleRate),
		baseCutoff: fix15.FromFloat(0.5),
		pan:        fix15.Half,
	}
	for _, s := range []*smooth.Smoother{&v.velocity, &v.sawLevel, &v.pulseLevel, &v.subLevel, &v.noiseLevel, &v.pulseWidth} {
		s.Reset(sampleRate, 0.015)
	}
	v.sawLevel.SetValue(fix15.One)
	v.pulseWidth.SetValue(fix15.Half)
	return v
}

// NoteOn starts the voice on note at the given velocity (0-127), resetting
// oscillator phases and delegating to the envelope (which itself decides
// whether this is a fresh Attack or a steal).
func (v *Voice) NoteOn(note, velocity byte) {
	n := int(note)
	if n > 127 {
		n = 127
	}
	v.midiNote = n
	v.active = true

	freq := noteToFrequency(n)
	v.saw.ResetPhase()
	v.pulse.ResetPhase()
	v.sub.ResetPhase()
	v.saw.SetFrequency(freq, v.sampleRate)
	v.pulse.SetFrequency(freq, v.sampleRate)
	v.sub.SetFrequency(freq, v.sampleRate)

	v.velocity.SetTarget(fix15.FromFloat(float64(velocity) / 127.0))
	v.env.NoteOn()
}

// NoteOff clears the active flag and releases the envelope. The voice is
// still "sounding" (IsSounding) until the envelope reaches Idle.
func (v *Voice) NoteOff() {
	v.active = false
	v.env.NoteOff()
}

// Note reports the MIDI note this voice is currently playing (meaningful
// only while Active or IsSounding).
func (v *Voice) Note() int { return v.midiNote }

// Active reports whether the voice has an unreleased note-on; note that a
// released voice can still be IsSounding while it fades out.
func (v *Voice) Active() bool { return v.active }

// IsSounding reports whether the voice's envelope is not Idle, per §4.7.
func (v *Voice) IsSounding() bool { return v.env.IsSounding() }

// EnvelopeLevel exposes the current envelope level, used by the voice
// manager's steal heuristics.
func (v *Voice) EnvelopeLevel() fix15.T { return v.env.CurrentLevel() }

// EnvelopeState exposes the current envelope state for the voice
// manager's allocation policy.
func (v *Voice) EnvelopeState() envelope.State { return v.env.State() }

// Envelope exposes the underlying envelope so the synth module can push
// control-rate ADSR parameter changes onto it.
func (v *Voice) Envelope() *envelope.Envelope { return v.env }

// Pan returns the voice's current stereo position (Zero..One, Half=center).
func (v *Voice) Pan() fix15.T { return v.pan }

// SetPan sets the voice's stereo position. Unclamped; callers are expected
// to pass a value already in [Zero, One].
func (v *Voice) SetPan(pan fix15.T) { v.pan = pan }

// SetMixTargets pushes control-rate oscillator mix and filter targets
// (read from the shared parameter store) onto this voice's own smoothers.
func (v *Voice) SetMixTargets(saw, pulse, sub, noise, pulseWidth, cutoff, resonance fix15.T) {
	v.sawLevel.SetTarget(saw)
	v.pulseLevel.SetTarget(pulse)
	v.subLevel.SetTarget(sub)
	v.noiseLevel.SetTarget(noise)
	v.pulseWidth.SetTarget(pulseWidth)
	v.baseCutoff = cutoff
	v.filter.SetResonanceTarget(resonance)
}

// NextSample renders one stereo frame for this voice: oscillator mix,
// modulated ladder filter, envelope, velocity.
func (v *Voice) NextSample() (left, right fix15.T) {
	v.pulse.SetPulseWidth(fix15.Clamp(v.pulseWidth.Next(), fix15.FromFloat(0.05), fix15.FromFloat(0.95)))

	sawS := fix15.Mul(v.saw.NextSample(), v.sawLevel.Next())
	pulseS := fix15.Mul(v.pulse.NextSample(), v.pulseLevel.Next())
	subS := fix15.Mul(v.sub.NextSample(), v.subLevel.Next())
	noiseS := fix15.Mul(v.noise.NextSample(), v.noiseLevel.Next())

	mix := (sawS + pulseS + subS + noiseS) >> 2

	envLevel := v.env.NextValue()
	cutoff := v.modulatedCutoff(envLevel)
	v.filter.SetCutoffTarget(cutoff)

	l, r := v.filter.Process(mix, mix)

	vel := v.velocity.Next()
	l = fix15.Mul(fix15.Mul(l, envLevel), vel)
	r = fix15.Mul(fix15.Mul(r, envLevel), vel)
	return l, r
}

// modulatedCutoff implements §4.6's cutoff modulation formula, clamped to
// [0,1] in fix15.
func (v *Voice) modulatedCutoff(envLevel fix15.T) fix15.T {
	envTerm := fix15.Mul(fix15.FromFloat(filterEnvAmount), envLevel)
	keyOffset := float64(v.midiNote-60) / 12.0 * filterKeyTrackAmount
	keyTerm := fix15.FromFloat(keyOffset)
	cutoff := v.baseCutoff + envTerm + keyTerm
	return fix15.Clamp(cutoff, fix15.Zero, fix15.One)
}
