package store

import (
	"github.com/roach88/nestdict/internal/flat"
	"github.com/roach88/nestdict/internal/ir"
)

// Get returns a copy of the value at path, or def when the path is absent
// or malformed. A "[]" segment collects the value at every index of the
// sequence at that position, with Null for elements lacking the suffix.
func (s *Store) Get(path string, def ir.Value) ir.Value {
	p, err := parsePath(path)
	if err != nil {
		return def
	}
	v := s.data.Get(p, nil)
	if v == nil {
		return def
	}
	return ir.Clone(v)
}

// Lookup returns a copy of the value at path, failing with PathNotFound
// when it is absent. With a "[]" segment every expanded path must resolve.
func (s *Store) Lookup(path string) (ir.Value, error) {
	p, err := parsePath(path)
	if err != nil {
		return nil, err
	}
	v, err := s.data.Lookup(p)
	if err != nil {
		return nil, err
	}
	return ir.Clone(v), nil
}

// Has reports whether a concrete path is present.
func (s *Store) Has(path string) bool {
	p, err := parsePath(path)
	if err != nil {
		return false
	}
	return s.data.Has(p)
}

// Canonical returns a copy of the nested data.
func (s *Store) Canonical() ir.Value {
	return ir.Clone(s.data.Canonical())
}

// Flatten returns a copy of every flat entry in store order.
func (s *Store) Flatten() []flat.Pair {
	pairs := s.data.Pairs()
	for i := range pairs {
		pairs[i].Value = ir.Clone(pairs[i].Value)
	}
	return pairs
}
