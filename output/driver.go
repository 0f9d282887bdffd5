// Package output implements the double-buffered output driver of §4.12:
// it pulls fix15 audio from an engine-like Filler, converts to the wire
// format of §6, and hands bytes to the platform's audio backend. The
// default backend is github.com/ebitengine/oto/v3, following the
// teacher's oto/oto.go.
package output

import (
	"sync/atomic"
	"time"

	"github.com/quietcore/fix15synth/fix15"
)

// Filler is anything that can fill a fix15 buffer for one block, which
// engine.Engine satisfies. The driver depends on this narrow interface
// instead of the concrete engine type so it can be tested without one.
type Filler interface {
	Process(buf []fix15.T)
}

// Driver implements io.Reader over a Filler, presenting the §4.12
// fill contract as a pull: each Read drains previously converted bytes
// and, once exhausted, asks the Filler for the next block. It keeps a
// single fix15 scratch block and its PCM16 encoding; the next block is
// filled only after every byte of the previous one has been read, so the
// driver does not alternate between two fix15 buffers.
type Driver struct {
	fill        Filler
	frameCount  int
	numChannels int
	sampleRate  int

	scratch  []fix15.T
	pcm      []byte
	pcmPos   int
	deadline time.Duration

	lastReadAt time.Time
	haveLast   bool
	underruns  atomic.Uint64
}

// NewDriver constructs a driver pulling frameCount-frame, numChannels-
// channel blocks from fill at sampleRate. numChannels is 2 for the I2S
// stereo path; the PWM mono path uses EncodeMonoPWM16 directly instead
// of this driver's byte stream.
func NewDriver(fill Filler, sampleRate, frameCount, numChannels int) *Driver {
	return &Driver{
		fill:        fill,
		frameCount:  frameCount,
		numChannels: numChannels,
		sampleRate:  sampleRate,
		scratch:     make([]fix15.T, frameCount*numChannels),
		deadline:    time.Duration(frameCount) * time.Second / time.Duration(sampleRate),
	}
}

// Read implements io.Reader for an oto.Player: it serves bytes from the
// current converted block, refilling from the Filler whenever the block
// is exhausted. This is the audio side of the contract in §4.12;
// the "hardware" here is oto's own playback goroutine, which calls Read
// whenever it needs more samples.
func (d *Driver) Read(p []byte) (int, error) {
	if d.pcmPos >= len(d.pcm) {
		d.refill()
	}
	n := copy(p, d.pcm[d.pcmPos:])
	d.pcmPos += n
	return n, nil
}

// refill asks the Filler for the next block and re-encodes it to PCM16.
// It also measures wall-clock time since the previous refill against the
// block's nominal playback duration: a refill call taking longer than
// that duration means the previous block's fill did not complete before
// playback needed it, i.e. an underrun per §7's taxonomy.
func (d *Driver) refill() {
	now := time.Now()
	if d.haveLast && now.Sub(d.lastReadAt) > d.deadline {
		d.underruns.Add(1)
	}
	d.lastReadAt = now
	d.haveLast = true

	d.fill.Process(d.scratch)
	d.pcm = EncodeStereo16LE(d.scratch, d.pcm[:0])
	d.pcmPos = 0
}

// Underruns reports the number of detected buffer underruns since
// construction. Intended to be polled from the control core only, per
// §7's propagation rule that the audio path itself returns no errors.
func (d *Driver) Underruns() uint64 {
	return d.underruns.Load()
}
