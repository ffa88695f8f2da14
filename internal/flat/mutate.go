package flat

import (
	"github.com/roach88/nestdict/internal/ir"
	"github.com/roach88/nestdict/internal/keypath"
)

// SetIn returns a copy of root with v placed at p. Containers along p are
// copied, never modified, so root and anything sharing its children stay
// intact.
//
// Missing ancestors are created from the syntax of the segment that follows
// them: an empty sequence before a bracketed segment, an empty mapping
// before a key. A sequence index may replace an existing element or append
// at len(); anything further is IndexOutOfRange. Null ancestors count as
// missing.
func SetIn(root ir.Value, p keypath.Path, v ir.Value) (ir.Value, error) {
	if err := CheckMutationPath(p); err != nil {
		return nil, err
	}
	return setIn(root, p, 0, v)
}

func setIn(cur ir.Value, p keypath.Path, depth int, v ir.Value) (ir.Value, error) {
	seg := p[depth]
	last := depth == len(p)-1
	here := p[:depth+1].String()

	descend := func(child ir.Value, exists bool) (ir.Value, error) {
		if last {
			return v, nil
		}
		if !exists || ir.KindOf(child) == ir.KindNull {
			child = placeholder(p[depth+1])
		}
		return setIn(child, p, depth+1, v)
	}

	switch c := cur.(type) {
	case ir.Object:
		if seg.Kind != keypath.KeySegment {
			return nil, newPathError(ErrCodePathConflict, here, "index segment on a mapping")
		}
		child, exists := c[seg.Key]
		newChild, err := descend(child, exists)
		if err != nil {
			return nil, err
		}
		out := make(ir.Object, len(c)+1)
		for k, val := range c {
			out[k] = val
		}
		out[seg.Key] = newChild
		return out, nil

	case ir.Array:
		if seg.Kind != keypath.IndexSegment {
			return nil, newPathError(ErrCodePathConflict, here, "key segment on a sequence")
		}
		if seg.Index > len(c) {
			return nil, newPathError(ErrCodeIndexOutOfRange, here,
				"index %d past end of sequence of length %d", seg.Index, len(c))
		}
		exists := seg.Index < len(c)
		var child ir.Value
		if exists {
			child = c[seg.Index]
		}
		newChild, err := descend(child, exists)
		if err != nil {
			return nil, err
		}
		out := make(ir.Array, len(c), len(c)+1)
		copy(out, c)
		if exists {
			out[seg.Index] = newChild
		} else {
			out = append(out, newChild)
		}
		return out, nil

	default:
		return nil, newPathError(ErrCodePathConflict, p[:depth].String(),
			"cannot descend into %s", ir.KindOf(cur))
	}
}

func placeholder(next keypath.Segment) ir.Value {
	if next.IsBracketed() {
		return ir.Array{}
	}
	return ir.Object{}
}

// DeleteIn returns a copy of root without the value at p. Removing a
// sequence element shifts the following elements down by one.
func DeleteIn(root ir.Value, p keypath.Path) (ir.Value, error) {
	if err := CheckMutationPath(p); err != nil {
		return nil, err
	}
	return deleteIn(root, p, 0)
}

func deleteIn(cur ir.Value, p keypath.Path, depth int) (ir.Value, error) {
	seg := p[depth]
	last := depth == len(p)-1

	switch c := cur.(type) {
	case ir.Object:
		child, ok := c[seg.Key]
		if seg.Kind != keypath.KeySegment || !ok {
			return nil, notFound(p.String())
		}
		out := make(ir.Object, len(c))
		for k, val := range c {
			out[k] = val
		}
		if last {
			delete(out, seg.Key)
			return out, nil
		}
		newChild, err := deleteIn(child, p, depth+1)
		if err != nil {
			return nil, err
		}
		out[seg.Key] = newChild
		return out, nil

	case ir.Array:
		if seg.Kind != keypath.IndexSegment || seg.Index >= len(c) {
			return nil, notFound(p.String())
		}
		if last {
			out := make(ir.Array, 0, len(c)-1)
			out = append(out, c[:seg.Index]...)
			return append(out, c[seg.Index+1:]...), nil
		}
		newChild, err := deleteIn(c[seg.Index], p, depth+1)
		if err != nil {
			return nil, err
		}
		out := make(ir.Array, len(c))
		copy(out, c)
		out[seg.Index] = newChild
		return out, nil

	default:
		return nil, notFound(p.String())
	}
}

// Resolve walks p through v without consulting a flat store.
func Resolve(v ir.Value, p keypath.Path) (ir.Value, bool) {
	cur := v
	for _, seg := range p {
		switch c := cur.(type) {
		case ir.Object:
			if seg.Kind != keypath.KeySegment {
				return nil, false
			}
			next, ok := c[seg.Key]
			if !ok {
				return nil, false
			}
			cur = next
		case ir.Array:
			if seg.Kind != keypath.IndexSegment || seg.Index >= len(c) {
				return nil, false
			}
			cur = c[seg.Index]
		default:
			return nil, false
		}
	}
	return cur, true
}

// CheckMutationPath rejects paths that cannot be written: the empty path
// and paths containing a wildcard.
func CheckMutationPath(p keypath.Path) error {
	if len(p) == 0 {
		return newPathError(ErrCodeInvalidPath, "", "empty path")
	}
	if p.HasWildcard() {
		return newPathError(ErrCodeInvalidPath, p.String(), "wildcard segments are read-only")
	}
	return nil
}
