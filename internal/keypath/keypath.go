// Package keypath parses the dot/bracket path grammar shared by the flat
// store and the schema walk.
//
//	path    := segment ("." segment)*
//	segment := key | "[" index "]" | "[]"
//
// A key is any non-empty token without ".", "[" or "]". An index is a
// non-negative decimal integer. "[]" is the read-only wildcard. There is no
// escaping: keys containing reserved characters cannot be addressed.
package keypath

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// SegmentKind discriminates the three segment shapes.
type SegmentKind int

const (
	KeySegment SegmentKind = iota
	IndexSegment
	WildcardSegment
)

func (k SegmentKind) String() string {
	switch k {
	case KeySegment:
		return "key"
	case IndexSegment:
		return "index"
	case WildcardSegment:
		return "wildcard"
	default:
		return "unknown"
	}
}

// Segment is one parsed path component.
type Segment struct {
	Kind  SegmentKind
	Key   string // set for KeySegment
	Index int    // set for IndexSegment
}

// Key returns a mapping-key segment.
func Key(name string) Segment {
	return Segment{Kind: KeySegment, Key: name}
}

// Index returns a concrete sequence-index segment.
func Index(i int) Segment {
	return Segment{Kind: IndexSegment, Index: i}
}

// Wildcard returns the "[]" segment.
func Wildcard() Segment {
	return Segment{Kind: WildcardSegment}
}

// IsBracketed reports whether the segment uses bracket syntax. The flat
// store uses this on the next segment to decide whether a missing ancestor
// is materialized as a sequence.
func (s Segment) IsBracketed() bool {
	return s.Kind == IndexSegment || s.Kind == WildcardSegment
}

// String renders the segment in path syntax.
func (s Segment) String() string {
	switch s.Kind {
	case IndexSegment:
		return "[" + strconv.Itoa(s.Index) + "]"
	case WildcardSegment:
		return "[]"
	default:
		return s.Key
	}
}

// Path is a parsed, non-empty sequence of segments.
type Path []Segment

// ErrEmptyPath is returned by Parse for "".
var ErrEmptyPath = errors.New("empty path")

// SyntaxError describes a grammar violation.
type SyntaxError struct {
	Path    string
	Segment int
	Message string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("invalid path %q: segment %d: %s", e.Path, e.Segment, e.Message)
}

// Parse splits a path string into typed segments.
func Parse(path string) (Path, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}

	parts := strings.Split(path, ".")
	segments := make(Path, 0, len(parts))

	for i, part := range parts {
		seg, err := parseSegment(part)
		if err != nil {
			return nil, &SyntaxError{Path: path, Segment: i, Message: err.Error()}
		}
		segments = append(segments, seg)
	}

	return segments, nil
}

// MustParse is Parse for constant paths; it panics on error.
func MustParse(path string) Path {
	p, err := Parse(path)
	if err != nil {
		panic(err)
	}
	return p
}

func parseSegment(part string) (Segment, error) {
	if part == "" {
		return Segment{}, errors.New("empty segment")
	}

	if strings.HasPrefix(part, "[") {
		if !strings.HasSuffix(part, "]") {
			return Segment{}, fmt.Errorf("unterminated index %q", part)
		}
		inner := part[1 : len(part)-1]
		if inner == "" {
			return Wildcard(), nil
		}
		if strings.ContainsAny(inner, "[]") {
			return Segment{}, fmt.Errorf("nested brackets in %q", part)
		}
		for _, r := range inner {
			if r < '0' || r > '9' {
				return Segment{}, fmt.Errorf("index %q is not a non-negative integer", inner)
			}
		}
		n, err := strconv.Atoi(inner)
		if err != nil {
			return Segment{}, fmt.Errorf("index %q out of range", inner)
		}
		return Index(n), nil
	}

	if strings.ContainsAny(part, "[]") {
		return Segment{}, fmt.Errorf("key %q contains a reserved bracket", part)
	}

	return Key(part), nil
}

// String renders the path back to its canonical string form.
func (p Path) String() string {
	var b strings.Builder
	for i, seg := range p {
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(seg.String())
	}
	return b.String()
}

// Parent returns the path without its last segment; nil for one segment.
func (p Path) Parent() Path {
	if len(p) <= 1 {
		return nil
	}
	return p[:len(p)-1]
}

// Last returns the final segment.
func (p Path) Last() Segment {
	return p[len(p)-1]
}

// Wildcards returns the positions of every wildcard segment.
func (p Path) Wildcards() []int {
	var out []int
	for i, seg := range p {
		if seg.Kind == WildcardSegment {
			out = append(out, i)
		}
	}
	return out
}

// HasWildcard reports whether any segment is "[]".
func (p Path) HasWildcard() bool {
	return len(p.Wildcards()) > 0
}

// Substitute returns a copy with the segment at pos replaced by index i.
func (p Path) Substitute(pos, i int) Path {
	out := make(Path, len(p))
	copy(out, p)
	out[pos] = Index(i)
	return out
}

// Child appends one segment to a rendered parent path. An empty parent
// yields the segment alone, matching depth-0 flattening.
func Child(parent string, seg Segment) string {
	if parent == "" {
		return seg.String()
	}
	return parent + "." + seg.String()
}
