package voice

import "math"

// noteFrequencies is a precomputed 128-entry MIDI note -> Hz table, equal
// temperament with A4 (note 69) = 440Hz, per §3 EXPANSION.
var noteFrequencies [128]float64

func init() {
	for n := 0; n < 128; n++ {
		noteFrequencies[n] = 440 * math.Pow(2, (float64(n)-69)/12)
	}
}

// noteToFrequency clamps out-of-range notes to 127 before lookup, per
// §4.7.
func noteToFrequency(note int) float64 {
	if note < 0 {
		note = 0
	} else if note > 127 {
		note = 127
	}
	return noteFrequencies[note]
}
