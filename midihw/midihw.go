// Package midihw feeds real MIDI hardware into the same inter-core event
// channel the serial decoder uses, via gitlab.com/gomidi/midi/v2 and its
// rtmididrv backend. This is the control-core side of §4.13's "input
// byte stream" generalized to an actual MIDI controller instead of the
// serial line, grounded on the teacher's tracker/gomidi package.
package midihw

import (
	"fmt"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	"gitlab.com/gomidi/midi/v2/drivers/rtmididrv"

	"github.com/quietcore/fix15synth/ipc"
	"github.com/quietcore/fix15synth/param"
)

// Input owns one open rtmidi device and pushes decoded note/CC events
// onto events, mirroring midi.Decoder's dispatch table but sourced from
// a real driver callback instead of a byte stream.
type Input struct {
	driver *rtmididrv.Driver
	in     drivers.In
	store  *param.Store
	events *ipc.Channel
	stop   func()
}

// Open opens the first MIDI input device whose name has namePrefix (or
// the first available device if namePrefix is empty), and starts
// listening. Events are routed the same way midi.Decoder routes them:
// note-on/off become ipc packets, CC 123 becomes all-notes-off, other
// CCs are looked up in store and set by normalized value.
func Open(namePrefix string, store *param.Store, events *ipc.Channel) (*Input, error) {
	drv, err := rtmididrv.New()
	if err != nil {
		return nil, fmt.Errorf("midihw: opening rtmidi driver: %w", err)
	}
	ins, err := drv.Ins()
	if err != nil {
		drv.Close()
		return nil, fmt.Errorf("midihw: listing MIDI inputs: %w", err)
	}
	var selected drivers.In
	for _, candidate := range ins {
		if namePrefix == "" || hasPrefix(candidate.String(), namePrefix) {
			selected = candidate
			break
		}
	}
	if selected == nil {
		drv.Close()
		return nil, fmt.Errorf("midihw: no MIDI input matching %q", namePrefix)
	}
	if err := selected.Open(); err != nil {
		drv.Close()
		return nil, fmt.Errorf("midihw: opening MIDI input %q: %w", selected.String(), err)
	}

	in := &Input{driver: drv, in: selected, store: store, events: events}
	stop, err := midi.ListenTo(selected, in.handle)
	if err != nil {
		selected.Close()
		drv.Close()
		return nil, fmt.Errorf("midihw: listening to %q: %w", selected.String(), err)
	}
	in.stop = stop
	return in, nil
}

// handle is the rtmidi callback; it runs on a driver-owned goroutine and
// must follow the same allocation-avoidance discipline as the serial
// decoder's dispatch path, since it ultimately only pushes to the
// lock-free ipc.Channel.
func (in *Input) handle(msg midi.Message, _ int32) {
	var channel, key, velocity, controller, value uint8
	switch {
	case msg.GetNoteOn(&channel, &key, &velocity) && velocity > 0:
		in.events.Push(ipc.NewEvent(ipc.NoteOnCmd, key, velocity))
	case msg.GetNoteOn(&channel, &key, &velocity):
		in.events.Push(ipc.NewEvent(ipc.NoteOffCmd, key, 0))
	case msg.GetNoteOff(&channel, &key, &velocity):
		in.events.Push(ipc.NewEvent(ipc.NoteOffCmd, key, 0))
	case msg.GetControlChange(&channel, &controller, &value):
		in.handleControlChange(controller, value)
	}
}

func (in *Input) handleControlChange(cc, value uint8) {
	if cc == ipc.AllNotesOffCC {
		in.events.Push(ipc.NewEvent(ipc.ControlChangeCmd, ipc.AllNotesOffCC, 0))
		return
	}
	if p := in.store.ByCC(cc); p != nil {
		p.SetNormalized(float64(value) / 127.0)
	}
}

// Close stops listening and releases the underlying rtmidi driver.
func (in *Input) Close() error {
	if in.stop != nil {
		in.stop()
	}
	if in.in != nil && in.in.IsOpen() {
		in.in.Close()
	}
	if in.driver != nil {
		return in.driver.Close()
	}
	return nil
}

func hasPrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && s[:len(prefix)] == prefix
}
