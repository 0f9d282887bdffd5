// Package envelope implements the six-state ADSR/VCA envelope generator of
// §3/§4.5: Idle, StealFade, Attack, Decay, Sustain, Release. It extends the
// four-state envelope of the original firmware (original_source's
// Fix15VCAEnvelopeModule.h) with a StealFade phase so a stolen voice fades
// out in a few milliseconds instead of jumping straight to a new attack.
package envelope

import (
	"github.com/quietcore/fix15synth/fix15"
	"github.com/quietcore/fix15synth/smooth"
)

// State is one of the envelope's six phases.
type State int

const (
	Idle State = iota
	StealFade
	Attack
	Decay
	Sustain
	Release
)

func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case StealFade:
		return "StealFade"
	case Attack:
		return "Attack"
	case Decay:
		return "Decay"
	case Sustain:
		return "Sustain"
	case Release:
		return "Release"
	default:
		return "Unknown"
	}
}

// Envelope is a sample-accurate ADSR/VCA with click-free voice stealing.
// Parameter updates (SetAttackTime etc.) are control-rate calls; NextValue
// is the audio-rate call.
type Envelope struct {
	sampleRate float64

	state         State
	currentLevel  fix15.T
	sampleCounter uint32

	stealFadeSamples uint32 // fixed, not smoothed: steal fades must be short and immediate

	sustainLevel       smooth.Smoother
	attackSamples      smooth.SampleCount
	decaySamples       smooth.SampleCount
	releaseSamples     smooth.SampleCount

	releaseStartLevel   fix15.T
	stealFadeStartLevel fix15.T
}

// New constructs an Envelope at the given sample rate, with the steal-fade
// duration fixed (≈5ms, per §4.5) and the default attack/decay/sustain/
// release values of the canonical parameter set (§6).
func New(sampleRate float64) *Envelope {
	e := &Envelope{sampleRate: sampleRate}
	e.stealFadeSamples = uint32(0.005 * sampleRate)

	e.sustainLevel.Reset(sampleRate, 0.01)
	e.sustainLevel.SetValue(fix15.FromFloat(0.3))

	e.attackSamples.Reset(sampleRate, 0.05)
	e.decaySamples.Reset(sampleRate, 0.05)
	e.releaseSamples.Reset(sampleRate, 0.05)
	e.attackSamples.SetValue(uint32(0.01 * sampleRate))
	e.decaySamples.SetValue(uint32(0.2 * sampleRate))
	e.releaseSamples.SetValue(uint32(0.1 * sampleRate))

	return e
}

// SetAttackTime is a control-side call; seconds is clamped to a minimum of
// 1ms so the phase never has a zero-length progress division by the
// smoother's own step math (a zero sample count still collapses the phase
// instantly in NextValue).
func (e *Envelope) SetAttackTime(seconds float64) {
	if seconds < 0.001 {
		seconds = 0.001
	}
	e.attackSamples.SetTarget(uint32(seconds * e.sampleRate))
}

func (e *Envelope) SetDecayTime(seconds float64) {
	if seconds < 0.001 {
		seconds = 0.001
	}
	e.decaySamples.SetTarget(uint32(seconds * e.sampleRate))
}

func (e *Envelope) SetReleaseTime(seconds float64) {
	if seconds < 0.001 {
		seconds = 0.001
	}
	e.releaseSamples.SetTarget(uint32(seconds * e.sampleRate))
}

// SetSustainLevel is a control-side call, clamped to [0,1]. A target of
// exactly zero is preserved exactly so Sustain can guarantee true silence,
// rather than only asymptotically approaching it through the smoother.
func (e *Envelope) SetSustainLevel(level float64) {
	if level < 0 {
		level = 0
	} else if level > 1 {
		level = 1
	}
	target := fix15.Zero
	if level != 0 {
		target = fix15.FromFloat(level)
	}
	e.sustainLevel.SetTarget(target)
}

// NoteOn triggers the envelope. From Idle it starts Attack; from any
// sounding state it starts a StealFade down to zero before Attack, so a
// stolen voice doesn't click.
func (e *Envelope) NoteOn() {
	if e.state == Idle && e.currentLevel == 0 {
		e.state = Attack
		e.sampleCounter = 0
		return
	}
	e.stealFadeStartLevel = e.currentLevel
	e.state = StealFade
	e.sampleCounter = 0
}

// NoteOff moves any sounding state into Release, remembering the level the
// release should fade down from. It is a no-op in Idle.
func (e *Envelope) NoteOff() {
	if e.state == Idle {
		return
	}
	e.releaseStartLevel = e.currentLevel
	e.state = Release
	e.sampleCounter = 0
}

// State reports the envelope's current phase.
func (e *Envelope) State() State { return e.state }

// CurrentLevel reports the envelope's last computed level without
// advancing it.
func (e *Envelope) CurrentLevel() fix15.T { return e.currentLevel }

// IsSounding reports whether the envelope is still producing audio, i.e.
// not Idle. A voice is "still sounding" under this definition even after
// its note has been released, per §4.7.
func (e *Envelope) IsSounding() bool { return e.state != Idle }

// progress computes p = counter * ONE / total, clamped to ONE, in 64-bit
// arithmetic to avoid overflow for long phases.
func progress(counter, total uint32) fix15.T {
	if total == 0 {
		return fix15.One
	}
	p := (int64(counter) * int64(fix15.One)) / int64(total)
	if p > int64(fix15.One) {
		p = int64(fix15.One)
	}
	return fix15.T(p)
}

// NextValue is the audio-rate call: it advances the envelope by one sample
// and returns the new level.
func (e *Envelope) NextValue() fix15.T {
	sustain := e.sustainLevel.Next()
	attackLen := e.attackSamples.Next()
	decayLen := e.decaySamples.Next()
	releaseLen := e.releaseSamples.Next()

	switch e.state {
	case Idle:
		e.currentLevel = fix15.Zero

	case StealFade:
		if e.stealFadeSamples == 0 {
			e.currentLevel = fix15.Zero
			e.state = Attack
			e.sampleCounter = 0
			break
		}
		p := progress(e.sampleCounter, e.stealFadeSamples)
		e.currentLevel = fix15.Mul(e.stealFadeStartLevel, fix15.One-p)
		e.sampleCounter++
		if e.sampleCounter >= e.stealFadeSamples {
			e.currentLevel = fix15.Zero
			e.state = Attack
			e.sampleCounter = 0
		}

	case Attack:
		if attackLen == 0 {
			e.currentLevel = fix15.One
			e.state = Decay
			e.sampleCounter = 0
			break
		}
		e.currentLevel = progress(e.sampleCounter, attackLen)
		e.sampleCounter++
		if e.sampleCounter >= attackLen {
			e.currentLevel = fix15.One
			e.state = Decay
			e.sampleCounter = 0
		}

	case Decay:
		if decayLen == 0 {
			e.currentLevel = sustain
			e.state = Sustain
			e.sampleCounter = 0
			break
		}
		p := progress(e.sampleCounter, decayLen)
		e.currentLevel = fix15.One - fix15.Mul(p, fix15.One-sustain)
		e.sampleCounter++
		if e.sampleCounter >= decayLen {
			e.currentLevel = sustain
			e.state = Sustain
		}

	case Sustain:
		e.currentLevel = sustain
		if e.sustainLevel.Target() == fix15.Zero {
			e.currentLevel = fix15.Zero
		}

	case Release:
		if releaseLen == 0 {
			e.currentLevel = fix15.Zero
			e.state = Idle
			e.sampleCounter = 0
			break
		}
		p := progress(e.sampleCounter, releaseLen)
		e.currentLevel = fix15.Mul(e.releaseStartLevel, fix15.One-p)
		e.sampleCounter++
		if e.sampleCounter >= releaseLen {
			e.currentLevel = fix15.Zero
			e.state = Idle
		}
	}

	return e.currentLevel
}
