package flat

import (
	"strings"

	"github.com/roach88/nestdict/internal/ir"
	"github.com/roach88/nestdict/internal/keypath"
)

// Store keeps nested data as an ordered flat path -> value mapping.
//
// Invariant: every composite stored under a path has each of its
// descendants stored under its own full path, and Canonical() followed by
// Flatten() reproduces the entries exactly. The root is not an entry; it is
// rebuilt from the depth-1 entries on demand.
//
// Values handed out by Store are shared with its entries and must be
// treated as read-only. Mutations never modify a stored container in
// place; they install copies.
//
// Store is not safe for concurrent use.
type Store struct {
	rootKind ir.Kind
	entries  *Entries
}

// New flattens data into a Store. Nil or Null data yields an empty mapping.
func New(data ir.Value) (*Store, error) {
	if ir.IsAbsent(data) {
		data = ir.Object{}
	}
	entries, err := Flatten(data)
	if err != nil {
		return nil, err
	}
	return &Store{rootKind: data.Kind(), entries: entries}, nil
}

// RootKind reports whether the store is mapping- or sequence-rooted.
func (s *Store) RootKind() ir.Kind {
	return s.rootKind
}

// Len returns the number of flat entries.
func (s *Store) Len() int {
	return s.entries.Len()
}

// Pairs returns the flat entries in store order.
func (s *Store) Pairs() []Pair {
	out := make([]Pair, 0, s.entries.Len())
	for pair := s.entries.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, Pair{Path: pair.Key, Value: pair.Value})
	}
	return out
}

// Canonical rebuilds the nested value from the depth-1 entries alone.
func (s *Store) Canonical() ir.Value {
	if s.rootKind == ir.KindArray {
		arr := ir.Array{}
		for i := 0; ; i++ {
			v, ok := s.entries.Get(keypath.Index(i).String())
			if !ok {
				return arr
			}
			arr = append(arr, v)
		}
	}

	obj := ir.Object{}
	for pair := s.entries.Oldest(); pair != nil; pair = pair.Next() {
		if !strings.Contains(pair.Key, ".") {
			obj[pair.Key] = pair.Value
		}
	}
	return obj
}

// Has reports whether a concrete path is present.
func (s *Store) Has(p keypath.Path) bool {
	if p.HasWildcard() {
		return false
	}
	_, ok := s.entries.Get(p.String())
	return ok
}

// Lookup returns the value at p, failing with PathNotFound when absent.
// A single "[]" segment expands to an Array holding the value found at
// every index of the sequence at that position; its length is read at
// call time. Every expanded path must resolve.
func (s *Store) Lookup(p keypath.Path) (ir.Value, error) {
	return s.lookup(p, true)
}

// Get is Lookup with a default: an absent path yields def. Within a
// wildcard expansion an element missing the addressed suffix yields Null,
// and a missing sequence yields an empty Array rather than def.
func (s *Store) Get(p keypath.Path, def ir.Value) ir.Value {
	v, err := s.lookup(p, false)
	if err != nil {
		return def
	}
	return v
}

func (s *Store) lookup(p keypath.Path, strict bool) (ir.Value, error) {
	if len(p) == 0 {
		return nil, newPathError(ErrCodeInvalidPath, "", "empty path")
	}

	wildcards := p.Wildcards()
	switch len(wildcards) {
	case 0:
		v, ok := s.entries.Get(p.String())
		if !ok {
			return nil, notFound(p.String())
		}
		return v, nil
	case 1:
	default:
		return nil, newPathError(ErrCodeInvalidPath, p.String(), "at most one wildcard segment is allowed")
	}

	pos := wildcards[0]
	prefix := p[:pos]

	var seq ir.Value = s.Canonical()
	if len(prefix) > 0 {
		v, ok := s.entries.Get(prefix.String())
		if !ok {
			if !strict {
				return ir.Array{}, nil
			}
			return nil, notFound(prefix.String())
		}
		seq = v
	}
	arr, ok := seq.(ir.Array)
	if !ok {
		return nil, newPathError(ErrCodePathConflict, prefix.String(),
			"wildcard applied to %s, expected sequence", ir.KindOf(seq))
	}

	out := make(ir.Array, 0, len(arr))
	for i := range arr {
		concrete := p.Substitute(pos, i).String()
		v, ok := s.entries.Get(concrete)
		if !ok {
			if strict {
				return nil, notFound(concrete)
			}
			v = ir.Null{}
		}
		out = append(out, v)
	}
	return out, nil
}

// Set places v at p, creating missing ancestors as described on SetIn.
// A composite v is flattened under p; entries left over from the value it
// replaces are removed. A nil v is stored as Null.
func (s *Store) Set(p keypath.Path, v ir.Value) error {
	if v == nil {
		v = ir.Null{}
	}

	newRoot, err := SetIn(s.Canonical(), p, v)
	if err != nil {
		return err
	}

	target := p.String()
	var staged []Pair
	err = walk(target, v, func(path string, val ir.Value) {
		staged = append(staged, Pair{Path: path, Value: val})
	})
	if err != nil {
		return err
	}

	s.refreshAncestors(newRoot, p.Parent())
	if old, ok := s.entries.Get(target); ok {
		s.removeSubtree(target, old)
	}
	s.entries.Set(target, v)
	for _, pair := range staged {
		s.entries.Set(pair.Path, pair.Value)
	}
	return nil
}

// Delete removes the value at p and every entry beneath it, then removes
// the final segment from its parent. Deleting a sequence element re-indexes
// the elements after it.
func (s *Store) Delete(p keypath.Path) error {
	if err := CheckMutationPath(p); err != nil {
		return err
	}

	target := p.String()
	old, ok := s.entries.Get(target)
	if !ok {
		return notFound(target)
	}

	root := s.Canonical()
	newRoot, err := DeleteIn(root, p)
	if err != nil {
		return err
	}

	parent := p.Parent()
	parentVal, _ := Resolve(root, parent)
	if ir.KindOf(parentVal) == ir.KindArray {
		prefix := parent.String()
		s.removeSubtree(prefix, parentVal)
		newParent, _ := Resolve(newRoot, parent)
		s.installSubtree(prefix, newParent)
	} else {
		s.removeSubtree(target, old)
		s.entries.Delete(target)
	}

	s.refreshAncestors(newRoot, parent)
	return nil
}

// refreshAncestors re-points every prefix of anc at its value in newRoot,
// top-down, so newly created ancestors precede their children.
func (s *Store) refreshAncestors(newRoot ir.Value, anc keypath.Path) {
	for i := 1; i <= len(anc); i++ {
		prefix := anc[:i]
		v, _ := Resolve(newRoot, prefix)
		s.entries.Set(prefix.String(), v)
	}
}

func (s *Store) removeSubtree(prefix string, old ir.Value) {
	for _, path := range subtreePaths(prefix, old) {
		s.entries.Delete(path)
	}
}

func (s *Store) installSubtree(prefix string, v ir.Value) {
	_ = walk(prefix, v, func(path string, val ir.Value) {
		s.entries.Set(path, val)
	})
}
