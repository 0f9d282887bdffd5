// Package synth implements the polyphonic synth module of §4.9: it drains
// the inter-core event queue, applies note/CC events via the voice
// manager, pushes control-rate parameter targets onto every voice, and
// mixes the voice bank into a block's audio buffer.
package synth

import (
	"github.com/quietcore/fix15synth/fix15"
	"github.com/quietcore/fix15synth/ipc"
	"github.com/quietcore/fix15synth/param"
	"github.com/quietcore/fix15synth/smooth"
	"github.com/quietcore/fix15synth/voice"
)

// Module is the audio engine's polyphonic voice bank. It implements the
// engine's Module interface (Process(buffer)).
type Module struct {
	voices  []*voice.Voice
	manager *voice.Manager
	events  *ipc.Channel

	store *param.Store

	attack, decay, sustain, release *param.Parameter
	sawLevel, pulseLevel, subLevel, noiseLevel *param.Parameter
	pulseWidth, filterCutoff, filterResonance  *param.Parameter
	masterVol *param.Parameter

	masterVolSmoother smooth.Smoother

	numChannels int
}

// New constructs a synth module with numVoices voices, consuming events
// from events and resolving every parameter it needs from store at
// construction time — §4.4's "resolve once, cache the reference".
func New(numVoices int, sampleRate float64, store *param.Store, events *ipc.Channel) (*Module, error) {
	voices := make([]*voice.Voice, numVoices)
	for i := range voices {
		voices[i] = voice.New(sampleRate)
	}

	m := &Module{
		voices:      voices,
		manager:     voice.NewManager(voices),
		events:      events,
		store:       store,
		numChannels: 2,
	}
	// 50ms master-volume smoothing window, per scenario S3.
	m.masterVolSmoother.Reset(sampleRate, 0.05)

	var err error
	for _, d := range []struct {
		id   string
		dest **param.Parameter
	}{
		{"attack", &m.attack},
		{"decay", &m.decay},
		{"sustain", &m.sustain},
		{"release", &m.release},
		{"sawLevel", &m.sawLevel},
		{"pulseLevel", &m.pulseLevel},
		{"subLevel", &m.subLevel},
		{"noiseLevel", &m.noiseLevel},
		{"pulseWidth", &m.pulseWidth},
		{"filterCutoff", &m.filterCutoff},
		{"filterResonance", &m.filterResonance},
		{"masterVol", &m.masterVol},
	} {
		*d.dest, err = store.ByID(d.id)
		if err != nil {
			return nil, err
		}
	}
	m.masterVolSmoother.SetValue(fix15.FromFloat(m.masterVol.Value()))

	return m, nil
}

// drainEvents applies every pending inter-core event to the voice
// manager, per §4.9.
func (m *Module) drainEvents() {
	for {
		e, ok := m.events.Poll()
		if !ok {
			return
		}
		switch e.Command() {
		case ipc.NoteOnCmd:
			if e.Data2() > 0 {
				m.manager.NoteOn(e.Data1(), e.Data2())
			} else {
				m.manager.NoteOff(e.Data1())
			}
		case ipc.NoteOffCmd:
			m.manager.NoteOff(e.Data1())
		case ipc.ControlChangeCmd:
			if e.Data1() == ipc.AllNotesOffCC {
				m.manager.AllNotesOff()
			}
		}
	}
}

// updateVoiceTargets pushes the current, control-rate parameter values
// onto every voice's own smoothers and envelope, once per block.
func (m *Module) updateVoiceTargets() {
	saw := fix15.FromFloat(m.sawLevel.Value())
	pulse := fix15.FromFloat(m.pulseLevel.Value())
	sub := fix15.FromFloat(m.subLevel.Value())
	noise := fix15.FromFloat(m.noiseLevel.Value())
	pulseWidth := fix15.FromFloat(m.pulseWidth.Value())
	cutoff := fix15.FromFloat(m.filterCutoff.Value())
	resonance := fix15.FromFloat(m.filterResonance.Value())

	attack := m.attack.Value()
	decay := m.decay.Value()
	sustain := m.sustain.Value()
	release := m.release.Value()

	for _, v := range m.voices {
		v.SetMixTargets(saw, pulse, sub, noise, pulseWidth, cutoff, resonance)
		v.Envelope().SetAttackTime(attack)
		v.Envelope().SetDecayTime(decay)
		v.Envelope().SetSustainLevel(sustain)
		v.Envelope().SetReleaseTime(release)
	}
}

// Process implements the engine's Module interface: it drains events,
// refreshes control-rate targets, then mixes every sounding voice into
// buf, an interleaved stereo fix15 buffer.
func (m *Module) Process(buf []fix15.T) {
	m.drainEvents()
	m.updateVoiceTargets()

	m.masterVolSmoother.SetTarget(fix15.FromFloat(m.masterVol.Value()))
	frames := len(buf) / m.numChannels

	for f := 0; f < frames; f++ {
		var accL, accR int32
		for _, v := range m.voices {
			if !v.IsSounding() {
				continue
			}
			l, r := v.NextSample()
			// Apply each voice's pan coefficient here, at the mixing
			// stage, per SPEC_FULL.md §4.9a: Zero=full left, One=full
			// right, Half=center (unity gain on both channels).
			pan := v.Pan()
			l = fix15.Mul(l, fix15.Mul(fix15.Two, fix15.One-pan))
			r = fix15.Mul(r, fix15.Mul(fix15.Two, pan))
			accL += int32(l)
			accR += int32(r)
		}
		// right-shift for mixing headroom across the voice bank, per §4.9.
		mixL := fix15.T(accL >> 3)
		mixR := fix15.T(accR >> 3)
		masterVol := m.masterVolSmoother.Next()
		buf[f*2+0] += fix15.Mul(mixL, masterVol)
		buf[f*2+1] += fix15.Mul(mixR, masterVol)
	}
}
