// Package midi implements the control core's byte-stream decoder of
// §4.13 and §6: a dual MIDI/ASCII protocol sharing one serial line. MIDI
// note/CC messages become ipc events for the audio core; ASCII commands
// drive a text echo protocol back to the host, grounded on
// MidiSerialListener.h's update/handleMidiMessage/handleAsciiCommand
// split.
package midi

import (
	"fmt"
	"io"

	"github.com/quietcore/fix15synth/ipc"
	"github.com/quietcore/fix15synth/param"
)

// maxLineLength bounds the ASCII accumulator, matching the original
// listener's 64-byte (63 usable) buffer.
const maxLineLength = 63

// Decoder is a byte-at-a-time state machine: feed it one byte via
// Feed, and it decides whether that byte starts a MIDI message, extends
// an in-progress MIDI message, or extends an ASCII line. It never
// blocks and allocates only when writing text to out (ASCII command
// handling and the STATE echo of a control change); note messages
// allocate nothing.
type Decoder struct {
	store  *param.Store
	events *ipc.Channel
	out    io.Writer

	midiRemaining int // data bytes still expected for the in-progress status byte
	status        byte
	data          [2]byte
	dataPos       int

	line    [maxLineLength]byte
	linePos int
}

// NewDecoder constructs a decoder that routes note/CC events into events
// and SetNormalized calls onto store, echoing text responses to out.
func NewDecoder(store *param.Store, events *ipc.Channel, out io.Writer) *Decoder {
	return &Decoder{store: store, events: events, out: out}
}

// Feed processes one input byte. Per §5, this runs on the control core
// and may allocate or write to out; it must never be called from the
// audio core.
func (d *Decoder) Feed(b byte) {
	if d.midiRemaining > 0 {
		d.data[d.dataPos] = b
		d.dataPos++
		d.midiRemaining--
		if d.midiRemaining == 0 {
			d.dispatchMIDI(d.status, d.data[0], d.data[1])
		}
		return
	}
	if b&0x80 != 0 {
		d.status = b
		d.dataPos = 0
		d.midiRemaining = 2
		return
	}
	if b == '\n' || b == '\r' {
		if d.linePos > 0 {
			d.dispatchLine(string(d.line[:d.linePos]))
			d.linePos = 0
		}
		return
	}
	if d.linePos < len(d.line) {
		d.line[d.linePos] = b
		d.linePos++
	}
}

// dispatchMIDI implements §4.13's decoded-event table.
func (d *Decoder) dispatchMIDI(status, data1, data2 byte) {
	command := status & 0xF0
	note := data1 & 0x7F
	switch {
	case command == ipc.NoteOnCmd && data2 > 0:
		d.events.Push(ipc.NewEvent(ipc.NoteOnCmd, note, data2))
	case command == ipc.NoteOnCmd || command == ipc.NoteOffCmd:
		d.events.Push(ipc.NewEvent(ipc.NoteOffCmd, note, 0))
	case command == ipc.ControlChangeCmd:
		d.handleControlChange(data1, data2)
	}
}

func (d *Decoder) handleControlChange(cc, value byte) {
	if cc == ipc.AllNotesOffCC {
		d.events.Push(ipc.NewEvent(ipc.ControlChangeCmd, ipc.AllNotesOffCC, 0))
		return
	}
	p := d.store.ByCC(cc)
	if p == nil {
		return
	}
	p.SetNormalized(float64(value) / 127.0)
	fmt.Fprintf(d.out, "STATE:%d:%.3f\n", p.CC(), p.Normalized())
}

// dispatchLine handles a complete ASCII command line, per §4.13/§6's
// SYNC_KNOBS round-trip (Scenario S6) and LOG: fallback.
func (d *Decoder) dispatchLine(line string) {
	if line == "SYNC_KNOBS" {
		d.emitSyncKnobs()
		return
	}
	fmt.Fprintf(d.out, "LOG:Received ASCII Command: %s\n", line)
}

func (d *Decoder) emitSyncKnobs() {
	fmt.Fprint(d.out, "KNOB_UPDATE_START\n")
	for _, p := range d.store.All() {
		fmt.Fprintf(d.out, "CC_DEF:%d:%s\n", p.CC(), p.Name())
	}
	for _, p := range d.store.All() {
		fmt.Fprintf(d.out, "STATE:%d:%.3f\n", p.CC(), p.Normalized())
	}
	fmt.Fprint(d.out, "KNOB_UPDATE_END\n")
}
