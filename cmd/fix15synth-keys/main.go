// Command fix15synth-keys is a QWERTY-to-note front end for the synth
// engine: it puts the terminal in raw mode and maps a row of keys to
// a chromatic run of notes, generalizing the single note/S key pair of
// ControlDefinitions.h's g_controlDefinitions to a full small keyboard.
// Raw terminal input carries no key-release events, so pressing a note
// key releases whichever note was previously held and starts the new
// one; space releases the currently held note with nothing replacing it.
package main

import (
	"flag"
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/quietcore/fix15synth/engine"
	"github.com/quietcore/fix15synth/ipc"
	"github.com/quietcore/fix15synth/output"
	"github.com/quietcore/fix15synth/param"
	"github.com/quietcore/fix15synth/synth"
	"github.com/quietcore/fix15synth/version"
)

// keymap gives each key on a two-row span its semitone offset from
// baseNote, left to right, matching a standard "keyboard piano" layout.
var keymap = map[byte]int{
	'a': 0, 'w': 1, 's': 2, 'e': 3, 'd': 4, 'f': 5, 't': 6,
	'g': 7, 'y': 8, 'h': 9, 'u': 10, 'j': 11, 'k': 12, 'o': 13, 'l': 14,
}

const baseNote = 60 // middle C
const velocity = 100

func main() {
	voices := flag.Int("voices", 4, "number of polyphonic voices")
	sampleRate := flag.Int("rate", 44100, "sample rate in Hz")
	frameCount := flag.Int("frames", 64, "frames per output block")
	versionFlag := flag.Bool("v", false, "print version")
	flag.Parse()
	if *versionFlag {
		fmt.Println(version.VersionOrHash)
		os.Exit(0)
	}

	store := param.NewCanonicalStore()
	events := ipc.NewChannel(256)

	mod, err := synth.New(*voices, float64(*sampleRate), store, events)
	if err != nil {
		fmt.Fprintf(os.Stderr, "fix15synth-keys: %v\n", err)
		os.Exit(1)
	}
	e := engine.New()
	e.Register(mod)

	driver := output.NewDriver(e, *sampleRate, *frameCount, 2)
	ctx, player, err := output.NewOtoPlayer(*sampleRate, driver)
	if err != nil {
		fmt.Fprintf(os.Stderr, "fix15synth-keys: %v\n", err)
		os.Exit(1)
	}
	defer ctx.Close()
	player.Play()

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "fix15synth-keys: failed to set raw mode: %v\n", err)
		os.Exit(1)
	}
	defer term.Restore(fd, oldState)

	fmt.Println("fix15synth-keys: a-w-s-e-d-f-t-g-y-h-u-j-k-o-l play notes, space releases, ctrl-c quits")

	heldNote := -1
	buf := make([]byte, 1)
	for {
		n, err := os.Stdin.Read(buf)
		if err != nil || n == 0 {
			return
		}
		b := buf[0]
		if b == 0x03 { // ctrl-c
			return
		}
		if b == ' ' {
			if heldNote >= 0 {
				events.Push(ipc.NewEvent(ipc.NoteOffCmd, byte(heldNote), 0))
				heldNote = -1
			}
			continue
		}
		offset, ok := keymap[b]
		if !ok {
			continue
		}
		if heldNote >= 0 {
			events.Push(ipc.NewEvent(ipc.NoteOffCmd, byte(heldNote), 0))
		}
		heldNote = baseNote + offset
		events.Push(ipc.NewEvent(ipc.NoteOnCmd, byte(heldNote), velocity))
	}
}
