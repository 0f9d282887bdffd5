package param

import "fmt"

// Store is an ordered, initialize-once collection of parameters. Lookup by
// id goes through a map built once in NewStore and is only used during
// module construction; the audio path resolves its parameters once and
// caches the *Parameter pointers. Lookup by CC number is a linear scan.
type Store struct {
	params []*Parameter
	byID   map[string]*Parameter
}

// NewStore builds a Store from an ordered list of parameters. The order is
// the canonical order used by SYNC_KNOBS (§6) and must not change once the
// audio core has started.
func NewStore(params ...*Parameter) *Store {
	s := &Store{params: params, byID: make(map[string]*Parameter, len(params))}
	for _, p := range params {
		s.byID[p.ID()] = p
	}
	return s
}

// ByID looks up a parameter by its string id. Returns an error if it's not
// present, since a missing canonical parameter is a wiring bug.
func (s *Store) ByID(id string) (*Parameter, error) {
	p, ok := s.byID[id]
	if !ok {
		return nil, fmt.Errorf("param: no parameter registered with id %q", id)
	}
	return p, nil
}

// ByCC returns the parameter assigned to a given MIDI CC number, or nil if
// none matches.
func (s *Store) ByCC(cc uint8) *Parameter {
	for _, p := range s.params {
		if p.CC() == cc {
			return p
		}
	}
	return nil
}

// All returns the parameters in canonical order. The caller must not
// mutate the slice.
func (s *Store) All() []*Parameter { return s.params }
