package filter_test

import (
	"testing"

	"github.com/quietcore/fix15synth/fix15"
	"github.com/quietcore/fix15synth/filter"
	"github.com/quietcore/fix15synth/osc"
)

func TestLadderStaysBoundedAtMaxResonance(t *testing.T) {
	f := filter.New(44100)
	f.SetCutoffTarget(fix15.FromFloat(0.5))
	f.SetResonanceTarget(fix15.One)

	var saw osc.Saw
	saw.SetFrequency(440, 44100)

	for i := 0; i < 44100; i++ {
		s := saw.NextSample()
		l, r := f.Process(s, s)
		if l > fix15.FromInt(16) || l < -fix15.FromInt(16) {
			t.Fatalf("sample %d: left output %v exceeds ±16.0", i, l)
		}
		if r > fix15.FromInt(16) || r < -fix15.FromInt(16) {
			t.Fatalf("sample %d: right output %v exceeds ±16.0", i, r)
		}
	}
}

func TestLadderSilentInputStaysSilent(t *testing.T) {
	f := filter.New(44100)
	f.SetCutoffTarget(fix15.FromFloat(0.5))
	f.SetResonanceTarget(fix15.Zero)
	for i := 0; i < 1000; i++ {
		l, r := f.Process(fix15.Zero, fix15.Zero)
		if l != fix15.Zero || r != fix15.Zero {
			t.Fatalf("filter produced non-zero output from zero input: %v %v", l, r)
		}
	}
}
