package voice_test

import (
	"testing"

	"github.com/quietcore/fix15synth/envelope"
	"github.com/quietcore/fix15synth/voice"
)

func newBank(n int) []*voice.Voice {
	bank := make([]*voice.Voice, n)
	for i := range bank {
		bank[i] = voice.New(44100)
	}
	return bank
}

func TestNoteOnNoteOffLeavesOneVoiceReleasing(t *testing.T) {
	bank := newBank(4)
	m := voice.NewManager(bank)
	m.NoteOn(60, 100)
	m.NoteOff(60)

	releasing := 0
	for _, v := range bank {
		if v.EnvelopeState() == envelope.Release {
			releasing++
		}
	}
	if releasing != 1 {
		t.Fatalf("expected exactly 1 voice in Release, got %d", releasing)
	}
}

func TestStealingWhenAllVoicesBusy(t *testing.T) {
	bank := newBank(4)
	m := voice.NewManager(bank)
	for _, n := range []byte{60, 62, 64, 65} {
		m.NoteOn(n, 100)
		for i := 0; i < 20000; i++ { // settle into Sustain
			for _, v := range bank {
				v.NextSample()
			}
		}
	}
	for _, v := range bank {
		if v.EnvelopeState() != envelope.Sustain {
			t.Fatalf("expected all voices in Sustain before stealing, got %v", v.EnvelopeState())
		}
	}

	m.NoteOn(67, 100) // fifth note with 4 voices: must steal

	stealing := 0
	for _, v := range bank {
		if v.EnvelopeState() == envelope.StealFade {
			stealing++
		}
	}
	if stealing != 1 {
		t.Fatalf("expected exactly one voice in StealFade after overflow note-on, got %d", stealing)
	}
}

func TestRetriggerSameNoteStealsItself(t *testing.T) {
	bank := newBank(4)
	m := voice.NewManager(bank)
	m.NoteOn(60, 100)
	for i := 0; i < 20000; i++ {
		for _, v := range bank {
			v.NextSample()
		}
	}
	m.NoteOn(60, 120) // retrigger same note

	playing := 0
	for _, v := range bank {
		if v.Note() == 60 && v.Active() {
			playing++
		}
	}
	if playing != 1 {
		t.Fatalf("retriggering the same note should still leave exactly one active voice for it, got %d", playing)
	}
}

func TestAllNotesOffReleasesEveryActiveVoice(t *testing.T) {
	bank := newBank(4)
	m := voice.NewManager(bank)
	for _, n := range []byte{60, 62, 64} {
		m.NoteOn(n, 100)
	}
	m.AllNotesOff()
	for _, v := range bank {
		if v.Active() {
			t.Errorf("voice for note %d still active after AllNotesOff", v.Note())
		}
	}
}
