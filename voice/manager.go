package voice

import (
	"github.com/quietcore/fix15synth/envelope"
	"github.com/quietcore/fix15synth/fix15"
)

// Manager allocates voices on note-on according to §4.8's stealing policy
// and routes note-offs to the matching active voice. It keeps the
// caller-owned voice bank as a slice of borrowed pointers and holds no
// other state; it never creates or frees voices.
type Manager struct {
	voices []*Voice
}

// NewManager wraps a fixed voice bank. The bank is expected to live for
// the program's lifetime.
func NewManager(voices []*Voice) *Manager {
	return &Manager{voices: voices}
}

// NoteOn allocates a voice for note using the priority order of §4.8:
//  1. retrigger a voice already playing (or releasing) this exact note,
//  2. an Idle voice,
//  3. a voice in Release,
//  4. the Sustain voice with the lowest current envelope level.
func (m *Manager) NoteOn(note, velocity byte) {
	n := int(note)
	for _, v := range m.voices {
		if v.Note() == n && (v.Active() || v.EnvelopeState() == envelope.Release) {
			v.NoteOn(note, velocity)
			return
		}
	}
	for _, v := range m.voices {
		if v.EnvelopeState() == envelope.Idle {
			v.NoteOn(note, velocity)
			return
		}
	}
	for _, v := range m.voices {
		if v.EnvelopeState() == envelope.Release {
			v.NoteOn(note, velocity)
			return
		}
	}
	if victim := m.lowestSustainVoice(); victim != nil {
		victim.NoteOn(note, velocity)
		return
	}
	// every voice is in StealFade or Attack/Decay with no Sustain voice to
	// steal from: fall back to the first voice, which will itself enter
	// StealFade via Envelope.NoteOn.
	if len(m.voices) > 0 {
		m.voices[0].NoteOn(note, velocity)
	}
}

func (m *Manager) lowestSustainVoice() *Voice {
	var victim *Voice
	var lowest fix15.T
	for _, v := range m.voices {
		if v.EnvelopeState() != envelope.Sustain {
			continue
		}
		level := v.EnvelopeLevel()
		if victim == nil || level < lowest {
			victim = v
			lowest = level
		}
	}
	return victim
}

// NoteOff releases the active voice playing note, if any.
func (m *Manager) NoteOff(note byte) {
	n := int(note)
	for _, v := range m.voices {
		if v.Active() && v.Note() == n {
			v.NoteOff()
			return
		}
	}
}

// AllNotesOff releases every currently active voice, implementing the
// CC123 convention of §4.13.
func (m *Manager) AllNotesOff() {
	for _, v := range m.voices {
		if v.Active() {
			v.NoteOff()
		}
	}
}
