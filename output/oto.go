package output

import (
	"fmt"

	"github.com/ebitengine/oto/v3"
)

// otoBufferSize mirrors the teacher's oto/oto.go constant; it bounds how
// far ahead oto's internal player buffers audio beyond this driver's own
// block size.
const otoBufferSize = 8192

// NewOtoPlayer opens an oto context at sampleRate and wraps d in an
// oto.Player reading 16-bit stereo PCM from it. Callers must call
// player.Play() to start audio and Close the returned context when done.
func NewOtoPlayer(sampleRate int, d *Driver) (*oto.Context, *oto.Player, error) {
	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 2,
		Format:       oto.FormatSignedInt16LE,
		BufferSize:   otoBufferSize,
	}
	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot create oto context: %w", err)
	}
	<-ready
	player := ctx.NewPlayer(d)
	return ctx, player, nil
}
