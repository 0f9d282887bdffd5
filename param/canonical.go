package param

// NewCanonicalStore builds the store described in spec §6: the fixed set
// of parameters every instance of the synth exposes, in the order that
// SYNC_KNOBS echoes them back in.
func NewCanonicalStore() *Store {
	return NewStore(
		New("attack", "Attack", 0.001, 2.5, 0.01, 74),
		New("decay", "Decay", 0.003, 2.0, 0.2, 71),
		New("sustain", "Sustain", 0.0, 1.0, 0.3, 73),
		New("release", "Release", 0.01, 5.0, 0.1, 72),
		New("sawLevel", "Saw Level", 0.0, 1.0, 1.0, 79),
		New("pulseLevel", "Pulse Level", 0.0, 1.0, 0.0, 80),
		New("subLevel", "Sub Level", 0.0, 1.0, 0.0, 82),
		New("noiseLevel", "Noise Level", 0.0, 1.0, 0.0, 78),
		New("pulseWidth", "Pulse Width", 0.05, 0.95, 0.5, 81),
		New("filterCutoff", "Filter Cutoff", 0.0, 1.0, 0.5, 76),
		New("filterResonance", "Filter Resonance", 0.0, 1.0, 0.2, 77),
		New("masterVol", "Master Volume", 0.0, 1.0, 0.05, 75),
	)
}
