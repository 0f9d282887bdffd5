// Package engine implements the audio engine of §4.10: an ordered list of
// modules, each filling a shared, caller-owned buffer. The engine owns no
// buffer itself and performs no allocation in its hot path.
package engine

import "github.com/quietcore/fix15synth/fix15"

// Module is the engine's capability interface, per §9's "polymorphic
// module list" design note: a closed set of concrete variants (synth,
// effects, master gain) all implement Process against a shared buffer.
// Dispatch happens once per module per block, never per sample.
type Module interface {
	Process(buf []fix15.T)
}

// Engine owns a fixed, registration-ordered list of modules. Ordering
// encodes the signal flow: sources first, then effects, then master gain.
// Voices and their manager are owned by the synth module registered here,
// not by the engine itself.
type Engine struct {
	modules []Module
}

// New constructs an engine with no modules registered. Register adds
// modules in signal-flow order.
func New() *Engine {
	return &Engine{}
}

// Register appends m to the end of the module chain. Registration order
// is fixed for the engine's lifetime; there is no way to unregister.
func (e *Engine) Register(m Module) {
	e.modules = append(e.modules, m)
}

// Process clears buf to zero, then invokes every registered module in
// order. Each module is expected to accumulate (add) into buf rather
// than overwrite it, matching the synth module's mixing convention.
// Process performs no allocation and is safe to call from the audio
// core's tight loop.
func (e *Engine) Process(buf []fix15.T) {
	for i := range buf {
		buf[i] = fix15.Zero
	}
	for _, m := range e.modules {
		m.Process(buf)
	}
}
