package output_test

import (
	"testing"

	"github.com/quietcore/fix15synth/fix15"
	"github.com/quietcore/fix15synth/output"
)

func TestEncodeStereo16LESaturatesAtFullScale(t *testing.T) {
	buf := []fix15.T{fix15.Zero, fix15.One, -fix15.One, fix15.Half}
	pcm := output.EncodeStereo16LE(buf, nil)
	if len(pcm) != 8 {
		t.Fatalf("len(pcm) = %d, want 8", len(pcm))
	}
	// fix15.One (32768) must saturate to int16 max, not wrap negative.
	oneLE := int16(pcm[2]) | int16(pcm[3])<<8
	if oneLE != 32767 {
		t.Errorf("fix15.One encoded as %d, want 32767 (saturated, not wrapped)", oneLE)
	}
	zeroLE := int16(pcm[0]) | int16(pcm[1])<<8
	if zeroLE != 0 {
		t.Errorf("fix15.Zero encoded as %d, want 0", zeroLE)
	}
}

func TestEncodeMonoPWMStaysInWrapRange(t *testing.T) {
	const wrap = 254
	buf := []fix15.T{fix15.One, fix15.One, -fix15.One, -fix15.One, fix15.Zero, fix15.Zero}
	out := output.EncodeMonoPWM16(buf, wrap, nil)
	if len(out) != 3 {
		t.Fatalf("len(out) = %d, want 3", len(out))
	}
	if out[0] != wrap {
		t.Errorf("full-scale positive sample encoded as %d, want %d", out[0], wrap)
	}
	if out[1] != 0 {
		t.Errorf("full-scale negative sample encoded as %d, want 0", out[1])
	}
	mid := wrap / 2
	if out[2] < mid-1 || out[2] > mid+1 {
		t.Errorf("silent sample encoded as %d, want near %d", out[2], mid)
	}
}

type constFiller struct{ v fix15.T }

func (c constFiller) Process(buf []fix15.T) {
	for i := range buf {
		buf[i] = c.v
	}
}

func TestDriverReadServesConvertedBlocks(t *testing.T) {
	d := output.NewDriver(constFiller{v: fix15.One}, 44100, 64, 2)
	p := make([]byte, 64*2*2)
	n, err := d.Read(p)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if n != len(p) {
		t.Fatalf("Read returned %d bytes, want %d", n, len(p))
	}
	v := int16(p[0]) | int16(p[1])<<8
	if v != 32767 {
		t.Errorf("first sample = %d, want 32767", v)
	}
}

func TestDriverReadAcrossMultipleSmallReads(t *testing.T) {
	d := output.NewDriver(constFiller{v: fix15.Zero}, 44100, 4, 2)
	total := 0
	buf := make([]byte, 3)
	for total < 4*2*2 {
		n, err := d.Read(buf)
		if err != nil {
			t.Fatalf("Read: %v", err)
		}
		total += n
	}
	if total != 4*2*2 {
		t.Fatalf("total read = %d, want %d", total, 4*2*2)
	}
}

func TestDriverStartsWithNoUnderruns(t *testing.T) {
	d := output.NewDriver(constFiller{v: fix15.Zero}, 44100, 64, 2)
	if d.Underruns() != 0 {
		t.Errorf("Underruns() = %d before any Read, want 0", d.Underruns())
	}
}
