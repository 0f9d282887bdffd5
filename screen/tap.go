// Package screen implements the optional audio-to-display sample tap of
// §2: a narrow, lock-free interface the audio core publishes a waveform
// snapshot through, so a control-core OLED renderer (itself out of
// scope, per §1) can draw it without ever touching the audio core's
// state directly. The lock-free publish/read pattern is grounded on
// IntuitionEngine's atomic.Pointer[SoundChip] tap in its oto backend.
package screen

import (
	"sync/atomic"

	"github.com/quietcore/fix15synth/fix15"
)

// snapshotSize bounds how many samples a single published snapshot
// holds; the control core's renderer is expected to downsample or
// scroll a waveform display from this, not require the full block.
const snapshotSize = 256

// Snapshot is one published waveform sample. A fixed-size array, not a
// slice, so Tap can preallocate both ping-pong slots once and never
// allocate again on the audio core's Publish path.
type Snapshot struct {
	Samples [snapshotSize]fix15.T
	N       int
}

// Tap is a single-producer (audio core) / single-reader (control core)
// publish point. Publish is audio-core-exclusive; Snapshot is safe to
// call from the control core at any time and never blocks the writer.
type Tap struct {
	slots [2]Snapshot
	next  int // audio-core-exclusive: index of the slot Publish will fill next
	pub   atomic.Pointer[Snapshot]
}

// NewTap constructs a Tap with an empty initial snapshot.
func NewTap() *Tap {
	t := &Tap{}
	t.pub.Store(&t.slots[0])
	t.next = 1
	return t
}

// Publish copies up to snapshotSize samples from buf into the
// currently-unpublished slot and atomically swaps it in. Only the audio
// core may call this; it performs no allocation.
func (t *Tap) Publish(buf []fix15.T) {
	slot := &t.slots[t.next]
	slot.N = copy(slot.Samples[:], buf)
	t.pub.Store(slot)
	t.next = 1 - t.next
}

// Snapshot returns the most recently published snapshot. Safe to call
// from the control core at any time; the returned value is a copy, so
// the caller cannot observe a Publish in progress.
func (t *Tap) Snapshot() Snapshot {
	return *t.pub.Load()
}

// Feeder wraps an engine module, forwarding Process to it unmodified
// and then publishing the resulting buffer to tap. Registering a Feeder
// in the engine's module list, rather than calling Publish from inside
// the synth module itself, keeps the tap a narrow add-on per §2's
// module-weight table instead of a synth module responsibility.
type Feeder struct {
	inner Module
	tap   *Tap
}

// Module is the minimal capability Feeder needs from the module it
// wraps; engine.Module satisfies it.
type Module interface {
	Process(buf []fix15.T)
}

// NewFeeder wraps inner, publishing every processed block to tap.
func NewFeeder(inner Module, tap *Tap) *Feeder {
	return &Feeder{inner: inner, tap: tap}
}

// Process forwards to the wrapped module, then publishes buf. Because
// buf already carries every earlier module's contribution by the time
// a Feeder registered last in the engine's chain runs, it sees the
// fully mixed signal, not any one module's isolated output.
func (f *Feeder) Process(buf []fix15.T) {
	f.inner.Process(buf)
	f.tap.Publish(buf)
}
