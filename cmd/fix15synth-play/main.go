// Command fix15synth-play runs the synth engine live against the
// default audio device, accepting notes from a MIDI controller (if one
// is found) or from raw MIDI bytes and SYNC_KNOBS text commands on stdin,
// following §4.12's output-driver contract end to end.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/quietcore/fix15synth/engine"
	"github.com/quietcore/fix15synth/ipc"
	"github.com/quietcore/fix15synth/midi"
	"github.com/quietcore/fix15synth/midihw"
	"github.com/quietcore/fix15synth/output"
	"github.com/quietcore/fix15synth/param"
	"github.com/quietcore/fix15synth/synth"
	"github.com/quietcore/fix15synth/version"
)

func main() {
	voices := flag.Int("voices", 4, "number of polyphonic voices")
	sampleRate := flag.Int("rate", 44100, "sample rate in Hz")
	frameCount := flag.Int("frames", 64, "frames per output block")
	midiDevice := flag.String("midi", "", "MIDI input device name prefix (empty: first available)")
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
		fmt.Fprintf(os.Stderr, "fix15synth-play: %v\n", err)
		os.Exit(1)
	}

	e := engine.New()
	e.Register(mod)

	driver := output.NewDriver(e, *sampleRate, *frameCount, 2)
	ctx, player, err := output.NewOtoPlayer(*sampleRate, driver)
	if err != nil {
		fmt.Fprintf(os.Stderr, "fix15synth-play: %v\n", err)
		os.Exit(1)
	}
	defer ctx.Close()
	player.Play()

	if in, err := midihw.Open(*midiDevice, store, events); err == nil {
		defer in.Close()
		fmt.Fprintln(os.Stderr, "fix15synth-play: MIDI input connected")
	} else {
		fmt.Fprintf(os.Stderr, "fix15synth-play: no MIDI input (%v); reading text/MIDI bytes from stdin\n", err)
		go readStdinIntoDecoder(store, events)
	}

	for {
		time.Sleep(time.Second)
		if n := driver.Underruns(); n > 0 {
			fmt.Fprintf(os.Stderr, "fix15synth-play: %d underruns so far\n", n)
		}
	}
}

// readStdinIntoDecoder feeds stdin bytes through the serial-protocol
// decoder when no MIDI hardware is available, so raw MIDI bytes or
// SYNC_KNOBS-style text commands piped into the process still work.
func readStdinIntoDecoder(store *param.Store, events *ipc.Channel) {
	d := midi.NewDecoder(store, events, os.Stdout)
	r := bufio.NewReader(os.Stdin)
	for {
		b, err := r.ReadByte()
		if err != nil {
			return
		}
		d.Feed(b)
	}
}
