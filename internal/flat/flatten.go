package flat

import (
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/roach88/nestdict/internal/ir"
	"github.com/roach88/nestdict/internal/keypath"
)

// Entries is the ordered path -> value mapping backing a Store.
type Entries = orderedmap.OrderedMap[string, ir.Value]

// Pair is one flat entry.
type Pair struct {
	Path  string
	Value ir.Value
}

// Flatten expands a mapping or sequence into its flat form. Mapping keys
// produce "p.k" (or "k" at depth 0) and sequence indexes "p.[i]" (or "[i]").
// Every composite below the root appears both whole and expanded.
// Object keys are visited in RFC 8785 order so output is deterministic.
func Flatten(v ir.Value) (*Entries, error) {
	if !ir.KindOf(v).IsComposite() {
		return nil, newPathError(ErrCodeInvalidRoot, "", "expected mapping or sequence, got %s", ir.KindOf(v))
	}

	entries := orderedmap.New[string, ir.Value]()
	err := walk("", v, func(path string, val ir.Value) {
		entries.Set(path, val)
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// walk visits every descendant of v depth-first, parents before children.
// The root itself is not visited.
func walk(prefix string, v ir.Value, visit func(path string, val ir.Value)) error {
	switch c := v.(type) {
	case ir.Object:
		for _, k := range c.SortedKeys() {
			if err := checkKey(prefix, k); err != nil {
				return err
			}
			path := keypath.Child(prefix, keypath.Key(k))
			visit(path, c[k])
			if err := walk(path, c[k], visit); err != nil {
				return err
			}
		}
	case ir.Array:
		for i, elem := range c {
			path := keypath.Child(prefix, keypath.Index(i))
			visit(path, elem)
			if err := walk(path, elem, visit); err != nil {
				return err
			}
		}
	}
	return nil
}

// checkKey rejects keys the path grammar cannot address. Storing them would
// create flat entries that no path resolves to.
func checkKey(prefix, key string) error {
	if key == "" {
		return newPathError(ErrCodeInvalidPath, prefix, "empty mapping key cannot be addressed")
	}
	if strings.ContainsAny(key, ".[]") {
		return newPathError(ErrCodeInvalidPath, prefix, "mapping key %q contains a reserved character", key)
	}
	return nil
}

// subtreePaths lists the flat paths of v's descendants under prefix.
func subtreePaths(prefix string, v ir.Value) []string {
	var paths []string
	// Keys were checked when the value was installed.
	_ = walk(prefix, v, func(path string, _ ir.Value) {
		paths = append(paths, path)
	})
	return paths
}
