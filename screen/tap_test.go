package screen_test

import (
	"testing"

	"github.com/quietcore/fix15synth/fix15"
	"github.com/quietcore/fix15synth/screen"
)

func TestSnapshotReflectsLastPublish(t *testing.T) {
	tap := screen.NewTap()
	buf := make([]fix15.T, 8)
	for i := range buf {
		buf[i] = fix15.FromInt(i)
	}
	tap.Publish(buf)

	snap := tap.Snapshot()
	if snap.N != len(buf) {
		t.Fatalf("snap.N = %d, want %d", snap.N, len(buf))
	}
	for i := range buf {
		if snap.Samples[i] != buf[i] {
			t.Errorf("snap.Samples[%d] = %v, want %v", i, snap.Samples[i], buf[i])
		}
	}
}

func TestPublishDoesNotMutatePreviouslyReturnedSnapshot(t *testing.T) {
	tap := screen.NewTap()
	first := make([]fix15.T, 4)
	for i := range first {
		first[i] = fix15.One
	}
	tap.Publish(first)
	old := tap.Snapshot()

	second := make([]fix15.T, 4)
	for i := range second {
		second[i] = fix15.Zero
	}
	tap.Publish(second)

	for i := 0; i < old.N; i++ {
		if old.Samples[i] != fix15.One {
			t.Errorf("previously returned snapshot mutated at %d: got %v, want %v", i, old.Samples[i], fix15.One)
		}
	}
}

type constModule struct{ v fix15.T }

func (c constModule) Process(buf []fix15.T) {
	for i := range buf {
		buf[i] = c.v
	}
}

func TestFeederForwardsAndPublishesMixedOutput(t *testing.T) {
	tap := screen.NewTap()
	feeder := screen.NewFeeder(constModule{v: fix15.Half}, tap)

	buf := make([]fix15.T, 16)
	feeder.Process(buf)

	for i, s := range buf {
		if s != fix15.Half {
			t.Fatalf("buf[%d] = %v, want %v (Feeder must still run the wrapped module)", i, s, fix15.Half)
		}
	}
	snap := tap.Snapshot()
	if snap.N != len(buf) {
		t.Fatalf("snap.N = %d, want %d", snap.N, len(buf))
	}
	if snap.Samples[0] != fix15.Half {
		t.Errorf("published snapshot = %v, want %v", snap.Samples[0], fix15.Half)
	}
}
