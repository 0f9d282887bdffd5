package envelope_test

import (
	"testing"

	"github.com/quietcore/fix15synth/envelope"
	"github.com/quietcore/fix15synth/fix15"
)

func TestIdleToSustainToIdle(t *testing.T) {
	e := envelope.New(44100)
	e.SetAttackTime(0.01)  // 441 samples
	e.SetDecayTime(0.2)    // 8820 samples
	e.SetSustainLevel(0.3)
	e.SetReleaseTime(0.1) // 4410 samples

	e.NoteOn()
	// drive enough samples to flush the time-parameter smoothers (50ms = 2205 samples)
	// plus attack+decay.
	total := 441 + 8820 + 2300
	for i := 0; i < total; i++ {
		e.NextValue()
	}
	if e.State() != envelope.Sustain {
		t.Fatalf("after attack+decay, state = %v, want Sustain", e.State())
	}
	level := e.CurrentLevel()
	want := fix15.FromFloat(0.3)
	if diff := level - want; diff > 200 || diff < -200 {
		t.Errorf("sustain level = %v, want close to %v", level, want)
	}

	e.NoteOff()
	for i := 0; i < 4410+2300; i++ {
		e.NextValue()
	}
	if e.State() != envelope.Idle {
		t.Fatalf("after release, state = %v, want Idle", e.State())
	}
	if e.CurrentLevel() != fix15.Zero {
		t.Errorf("idle level = %v, want 0", e.CurrentLevel())
	}
}

func TestNoteOnDuringSustainStealsViaFade(t *testing.T) {
	e := envelope.New(44100)
	e.SetAttackTime(0.001)
	e.SetDecayTime(0.001)
	e.SetSustainLevel(0.8)

	e.NoteOn()
	for i := 0; i < 4500; i++ { // reach sustain
		e.NextValue()
	}
	if e.State() != envelope.Sustain {
		t.Fatalf("expected Sustain, got %v", e.State())
	}

	e.NoteOn() // retrigger while sounding
	if e.State() != envelope.StealFade {
		t.Fatalf("retrigger while sounding should enter StealFade, got %v", e.State())
	}

	prev := e.CurrentLevel()
	monotonic := true
	for i := 0; i < 500; i++ {
		v := e.NextValue()
		if v > prev {
			monotonic = false
		}
		prev = v
		if e.State() == envelope.Attack {
			break
		}
	}
	if !monotonic {
		t.Error("StealFade level increased at some point; must be monotonically non-increasing")
	}
	if e.State() != envelope.Attack {
		t.Errorf("StealFade should transition to Attack, got %v", e.State())
	}
}

func TestSustainForcesExactZeroWhenTargetZero(t *testing.T) {
	e := envelope.New(44100)
	e.SetAttackTime(0.001)
	e.SetDecayTime(0.001)
	e.SetSustainLevel(0.5)
	e.NoteOn()
	for i := 0; i < 4500; i++ {
		e.NextValue()
	}
	e.SetSustainLevel(0)
	// drive the 10ms sustain smoother (441 samples) fully to target.
	for i := 0; i < 500; i++ {
		e.NextValue()
	}
	if e.CurrentLevel() != fix15.Zero {
		t.Errorf("sustain level with zero target = %v, want exactly 0", e.CurrentLevel())
	}
}

func TestNoteOffInIdleIsNoOp(t *testing.T) {
	e := envelope.New(44100)
	e.NoteOff()
	if e.State() != envelope.Idle {
		t.Errorf("NoteOff in Idle should stay Idle, got %v", e.State())
	}
}

func TestIsSoundingDuringRelease(t *testing.T) {
	e := envelope.New(44100)
	e.SetAttackTime(0.001)
	e.SetDecayTime(0.001)
	e.SetReleaseTime(0.05)
	e.NoteOn()
	for i := 0; i < 4500; i++ {
		e.NextValue()
	}
	e.NoteOff()
	e.NextValue()
	if !e.IsSounding() {
		t.Error("envelope in Release should report IsSounding == true")
	}
}
