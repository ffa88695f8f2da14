package schema

import (
	"sort"

	"github.com/roach88/nestdict/internal/ir"
	"github.com/roach88/nestdict/internal/keypath"
)

// Node is a child of a Schema: either a *Field or a nested *Schema.
// The set is closed; code walking a schema tree switches on the two cases.
type Node interface {
	Validate(v ir.Value) error
	node()
}

var (
	_ Node = (*Field)(nil)
	_ Node = (*Schema)(nil)
)

// Schema constrains a mapping or a sequence of mappings.
//
// For a mapping schema the children describe the mapping's own keys. For a
// sequence schema they describe the keys of every item, and the schema also
// carries item-count bounds and the item fields that must be unique.
// Undeclared keys are ignored.
type Schema struct {
	kind     ir.Kind
	children map[string]Node
	keys     []string

	minItems, maxItems *int
	unique             []string

	// items is the mapping schema every sequence item is checked against.
	items *Schema
}

// SchemaOption configures a sequence Schema under construction.
type SchemaOption func(*schemaConfig)

type schemaConfig struct {
	minItems, maxItems *int
	unique             []string
}

// MinItems sets the inclusive lower bound on the number of items.
func MinItems(n int) SchemaOption {
	return func(c *schemaConfig) { c.minItems = &n }
}

// MaxItems sets the inclusive upper bound on the number of items.
func MaxItems(n int) SchemaOption {
	return func(c *schemaConfig) { c.maxItems = &n }
}

// Unique requires the named item fields to hold distinct values.
func Unique(fields ...string) SchemaOption {
	return func(c *schemaConfig) { c.unique = append(c.unique, fields...) }
}

// NewMapping builds a mapping schema. Item-count and uniqueness options
// only apply to sequences and are rejected here.
func NewMapping(children map[string]Node, opts ...SchemaOption) (*Schema, error) {
	return newSchema(ir.KindObject, children, opts)
}

// NewSequence builds a sequence schema whose items are mappings described
// by children.
func NewSequence(children map[string]Node, opts ...SchemaOption) (*Schema, error) {
	return newSchema(ir.KindArray, children, opts)
}

// MustMapping is NewMapping that panics on a construction error.
func MustMapping(children map[string]Node, opts ...SchemaOption) *Schema {
	return must(NewMapping(children, opts...))
}

// MustSequence is NewSequence that panics on a construction error.
func MustSequence(children map[string]Node, opts ...SchemaOption) *Schema {
	return must(NewSequence(children, opts...))
}

func must(s *Schema, err error) *Schema {
	if err != nil {
		panic(err)
	}
	return s
}

func newSchema(kind ir.Kind, children map[string]Node, opts []SchemaOption) (*Schema, error) {
	var cfg schemaConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	s := &Schema{
		kind:     kind,
		children: make(map[string]Node, len(children)),
		keys:     make([]string, 0, len(children)),
	}
	for k, child := range children {
		if child == nil {
			return nil, constructionError("items", "child %q is nil", k)
		}
		if p, err := keypath.Parse(k); err != nil || len(p) != 1 || p[0].Kind != keypath.KeySegment {
			return nil, constructionError("items", "child key %q is not addressable by a path segment", k)
		}
		s.children[k] = child
		s.keys = append(s.keys, k)
	}
	sort.Strings(s.keys)

	if kind == ir.KindObject {
		if cfg.minItems != nil || cfg.maxItems != nil {
			return nil, constructionError("min_length/max_length", "item bounds require a sequence schema")
		}
		if len(cfg.unique) > 0 {
			return nil, constructionError("unique_fields", "unique fields require a sequence schema")
		}
		return s, nil
	}

	if err := checkLengthBounds(cfg.minItems, cfg.maxItems); err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(cfg.unique))
	for _, name := range cfg.unique {
		if name == "" {
			return nil, constructionError("unique_fields", "empty field name")
		}
		if seen[name] {
			return nil, constructionError("unique_fields", "field %q listed twice", name)
		}
		seen[name] = true
	}
	s.minItems = cfg.minItems
	s.maxItems = cfg.maxItems
	s.unique = cfg.unique
	s.items = &Schema{kind: ir.KindObject, children: s.children, keys: s.keys}
	return s, nil
}

func (*Schema) node() {}

// Kind returns ir.KindObject for mappings and ir.KindArray for sequences.
func (s *Schema) Kind() ir.Kind { return s.kind }

// IsSequence reports whether the schema describes a sequence.
func (s *Schema) IsSequence() bool { return s.kind == ir.KindArray }

// Keys returns the declared child keys in sorted order.
func (s *Schema) Keys() []string {
	return append([]string(nil), s.keys...)
}

// Child returns the node declared under key.
func (s *Schema) Child(key string) (Node, bool) {
	n, ok := s.children[key]
	return n, ok
}

// Items returns the mapping schema applied to each item of a sequence
// schema, or nil for a mapping schema.
func (s *Schema) Items() *Schema { return s.items }

// MinItems returns the lower item-count bound, if any.
func (s *Schema) MinItems() (int, bool) { return deref(s.minItems) }

// MaxItems returns the upper item-count bound, if any.
func (s *Schema) MaxItems() (int, bool) { return deref(s.maxItems) }

// UniqueFields returns the item fields that must hold distinct values.
func (s *Schema) UniqueFields() []string {
	return append([]string(nil), s.unique...)
}

// Validate checks v against the schema and, recursively, every declared
// child. The first failure is returned with the path of the offending value
// relative to v.
func (s *Schema) Validate(v ir.Value) error {
	return s.validate(v, nil)
}

// ValidateAt is Validate with reported paths prefixed by at.
func ValidateAt(n Node, v ir.Value, at keypath.Path) error {
	switch node := n.(type) {
	case *Field:
		return node.validate(v, at)
	case *Schema:
		return node.validate(v, at)
	default:
		return nil
	}
}

func (s *Schema) validate(v ir.Value, at keypath.Path) error {
	if ir.KindOf(v) != s.kind {
		err := validationError(ErrCodeTypeMismatch, "expected %s but got %s", s.kind, ir.KindOf(v))
		err.Path = at.String()
		err.Expected = s.kind.String()
		err.Actual = ir.KindOf(v).String()
		return err
	}

	if s.kind == ir.KindObject {
		return s.validateChildren(v.(ir.Object), at)
	}

	items := v.(ir.Array)
	if err := s.checkCardinality(len(items)); err != nil {
		err.Path = at.String()
		return err
	}
	if err := s.checkUnique(items); err != nil {
		err.Path = at.String()
		return err
	}
	if len(s.keys) == 0 {
		return nil
	}
	for i, item := range items {
		if err := s.items.validate(item, extend(at, keypath.Index(i))); err != nil {
			return err
		}
	}
	return nil
}

func (s *Schema) validateChildren(obj ir.Object, at keypath.Path) error {
	for _, k := range s.keys {
		child := s.children[k]
		if err := ValidateAt(child, obj[k], extend(at, keypath.Key(k))); err != nil {
			return err
		}
	}
	return nil
}

func (s *Schema) checkCardinality(n int) *ValidationError {
	if s.minItems != nil && n < *s.minItems {
		return validationError(ErrCodeLengthOutOfRange, "sequence has %d items, minimum is %d", n, *s.minItems)
	}
	if s.maxItems != nil && n > *s.maxItems {
		return validationError(ErrCodeLengthOutOfRange, "sequence has %d items, maximum is %d", n, *s.maxItems)
	}
	return nil
}

// checkUnique requires, for every unique field, as many distinct values as
// there are items. Items lacking the field contribute nothing, so they fail
// the check as well. Values are compared by canonical JSON.
func (s *Schema) checkUnique(items ir.Array) *ValidationError {
	for _, name := range s.unique {
		distinct := make(map[string]struct{}, len(items))
		for _, item := range items {
			obj, ok := item.(ir.Object)
			if !ok {
				continue
			}
			val, ok := obj[name]
			if !ok {
				continue
			}
			key, err := ir.CanonicalString(val)
			if err != nil {
				continue
			}
			distinct[key] = struct{}{}
		}
		if len(distinct) != len(items) {
			return validationError(ErrCodeDuplicateUniqueValue,
				"field %q must have unique values: %d distinct across %d items", name, len(distinct), len(items))
		}
	}
	return nil
}

func extend(at keypath.Path, seg keypath.Segment) keypath.Path {
	out := make(keypath.Path, len(at), len(at)+1)
	copy(out, at)
	return append(out, seg)
}
