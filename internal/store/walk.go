package store

import (
	"fmt"

	"github.com/roach88/nestdict/internal/keypath"
	"github.com/roach88/nestdict/internal/schema"
)

// resolve walks p through the schema tree in the same way the flat store
// walks data. It returns the governing node, or nil when no node governs
// the path: there is no schema, or the path enters a sequence whose items
// declare no keys.
func (s *Store) resolve(p keypath.Path) (schema.Node, error) {
	if s.schema == nil {
		return nil, nil
	}

	var cur schema.Node = s.schema
	for i, seg := range p {
		sc, ok := cur.(*schema.Schema)
		if !ok {
			return nil, schemaPathError(p, i, "path continues past a field")
		}

		if sc.IsSequence() {
			if !seg.IsBracketed() {
				return nil, schemaPathError(p, i, "sequence schema expects an index segment, got %q", seg.String())
			}
			if len(sc.Keys()) == 0 {
				return nil, nil
			}
			cur = sc.Items()
			continue
		}

		if seg.Kind != keypath.KeySegment {
			return nil, schemaPathError(p, i, "mapping schema expects a key segment, got %s", seg)
		}
		child, ok := sc.Child(seg.Key)
		if !ok {
			return nil, schemaPathError(p, i, "key %q is not declared", seg.Key)
		}
		cur = child
	}
	return cur, nil
}

func schemaPathError(p keypath.Path, segment int, format string, args ...any) *SchemaPathError {
	return &SchemaPathError{
		Path:    p.String(),
		Segment: segment,
		Message: fmt.Sprintf(format, args...),
	}
}
