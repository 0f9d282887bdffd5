package smooth_test

import (
	"testing"

	"github.com/quietcore/fix15synth/fix15"
	"github.com/quietcore/fix15synth/smooth"
)

func TestSmootherReachesTargetExactlyAfterRampLength(t *testing.T) {
	var s smooth.Smoother
	s.Reset(44100, 0.01) // 441 samples
	s.SetValue(fix15.Zero)
	s.SetTarget(fix15.One)

	const rampLength = 441
	var last fix15.T
	for i := 0; i < rampLength; i++ {
		last = s.Next()
	}
	if last != fix15.One {
		t.Fatalf("after %d calls to Next(), current = %v, want One (%v)", rampLength, last, fix15.One)
	}
}

func TestSmootherMidRampRetarget(t *testing.T) {
	var s smooth.Smoother
	s.Reset(44100, 0.01)
	s.SetValue(fix15.Zero)
	s.SetTarget(fix15.One)
	for i := 0; i < 100; i++ {
		s.Next()
	}
	midway := s.Current()
	s.SetTarget(fix15.Zero)
	next := s.Next()
	if next > midway {
		t.Errorf("after retargeting toward zero mid-ramp, value should not increase: %v -> %v", midway, next)
	}
}

func TestSmootherNoTargetHoldsValue(t *testing.T) {
	var s smooth.Smoother
	s.Reset(44100, 0.01)
	s.SetValue(fix15.FromFloat(0.3))
	for i := 0; i < 10; i++ {
		if got := s.Next(); got != fix15.FromFloat(0.3) {
			t.Errorf("Next() without a target drifted: %v", got)
		}
	}
}

func TestSampleCountReachesTarget(t *testing.T) {
	var s smooth.SampleCount
	s.Reset(44100, 0.05) // 2205 samples
	s.SetValue(441)
	s.SetTarget(8820)
	var last uint32
	for i := 0; i < 2205; i++ {
		last = s.Next()
	}
	if last != 8820 {
		t.Fatalf("SampleCount did not reach target: got %d, want 8820", last)
	}
}
