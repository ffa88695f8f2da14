package compiler

import (
	"fmt"
	"sort"

	"github.com/roach88/nestdict/internal/ir"
	"github.com/roach88/nestdict/internal/schema"
)

// Document is the source form of one schema node, shared by the CUE and
// YAML front ends. A node with Kind is a Schema ("mapping" or "sequence");
// a node with Type is a Field.
//
//	kind: mapping
//	items:
//	  name: {type: string, required: true, min_length: 1}
//	  jobs:
//	    kind: sequence
//	    min_length: 1
//	    unique_fields: [company]
//	    items:
//	      company: {type: string}
type Document struct {
	Kind  string               `yaml:"kind,omitempty" json:"kind,omitempty"`
	Type  string               `yaml:"type,omitempty" json:"type,omitempty"`
	Items map[string]*Document `yaml:"items,omitempty" json:"items,omitempty"`

	// Field constraints.
	Required bool     `yaml:"required,omitempty" json:"required,omitempty"`
	Min      *float64 `yaml:"min,omitempty" json:"min,omitempty"`
	Max      *float64 `yaml:"max,omitempty" json:"max,omitempty"`
	Pattern  *string  `yaml:"pattern,omitempty" json:"pattern,omitempty"`
	Choices  []any    `yaml:"choices,omitempty" json:"choices,omitempty"`

	// Length bounds: string/collection length on a Field, item count on a
	// sequence Schema.
	MinLength *int `yaml:"min_length,omitempty" json:"min_length,omitempty"`
	MaxLength *int `yaml:"max_length,omitempty" json:"max_length,omitempty"`

	UniqueFields []string `yaml:"unique_fields,omitempty" json:"unique_fields,omitempty"`
}

// Build turns a root document into a Schema. The root must declare a kind.
func Build(doc *Document) (*schema.Schema, error) {
	if doc == nil {
		return nil, &CompileError{Field: "schema", Message: "document is empty"}
	}
	if doc.Kind == "" {
		return nil, &CompileError{Field: "schema", Message: "root node must declare kind mapping or sequence"}
	}
	node, err := buildNode(doc, "")
	if err != nil {
		return nil, err
	}
	return node.(*schema.Schema), nil
}

func buildNode(doc *Document, at string) (schema.Node, error) {
	if doc == nil {
		return nil, &CompileError{Field: label(at), Message: "node is empty"}
	}
	switch {
	case doc.Kind != "" && doc.Type != "":
		return nil, &CompileError{Field: label(at), Message: "node declares both kind and type"}
	case doc.Kind != "":
		return buildSchema(doc, at)
	case doc.Type != "":
		return buildField(doc, at)
	default:
		return nil, &CompileError{Field: label(at), Message: "node must declare kind or type"}
	}
}

func buildSchema(doc *Document, at string) (*schema.Schema, error) {
	kind, ok := ir.ParseKind(doc.Kind)
	if !ok || !kind.IsComposite() {
		return nil, &CompileError{Field: label(at) + ".kind",
			Message: fmt.Sprintf("unknown schema kind %q, expected mapping or sequence", doc.Kind)}
	}
	if doc.Required || doc.Min != nil || doc.Max != nil || doc.Pattern != nil || doc.Choices != nil {
		return nil, &CompileError{Field: label(at),
			Message: "field constraints (required, min, max, pattern, choices) are not valid on a schema node"}
	}

	children := make(map[string]schema.Node, len(doc.Items))
	for _, key := range sortedKeys(doc.Items) {
		child, err := buildNode(doc.Items[key], join(at, key))
		if err != nil {
			return nil, err
		}
		children[key] = child
	}

	var opts []schema.SchemaOption
	if doc.MinLength != nil {
		opts = append(opts, schema.MinItems(*doc.MinLength))
	}
	if doc.MaxLength != nil {
		opts = append(opts, schema.MaxItems(*doc.MaxLength))
	}
	if len(doc.UniqueFields) > 0 {
		opts = append(opts, schema.Unique(doc.UniqueFields...))
	}

	var (
		s   *schema.Schema
		err error
	)
	if kind == ir.KindArray {
		s, err = schema.NewSequence(children, opts...)
	} else {
		s, err = schema.NewMapping(children, opts...)
	}
	if err != nil {
		return nil, &CompileError{Field: label(at), Message: err.Error(), Err: err}
	}
	return s, nil
}

func buildField(doc *Document, at string) (*schema.Field, error) {
	kind, ok := ir.ParseKind(doc.Type)
	if !ok {
		return nil, &CompileError{Field: label(at) + ".type", Message: fmt.Sprintf("unknown type %q", doc.Type)}
	}
	if doc.Items != nil || doc.UniqueFields != nil {
		return nil, &CompileError{Field: label(at),
			Message: "items and unique_fields are only valid on a schema node"}
	}

	var opts []schema.FieldOption
	if doc.Required {
		opts = append(opts, schema.Required())
	}
	if doc.Min != nil {
		opts = append(opts, schema.Min(*doc.Min))
	}
	if doc.Max != nil {
		opts = append(opts, schema.Max(*doc.Max))
	}
	if doc.MinLength != nil {
		opts = append(opts, schema.MinLength(*doc.MinLength))
	}
	if doc.MaxLength != nil {
		opts = append(opts, schema.MaxLength(*doc.MaxLength))
	}
	if doc.Pattern != nil {
		opts = append(opts, schema.Pattern(*doc.Pattern))
	}
	if doc.Choices != nil {
		choices := make([]ir.Value, 0, len(doc.Choices))
		for i, c := range doc.Choices {
			v, err := ir.FromGo(c)
			if err != nil {
				return nil, &CompileError{Field: fmt.Sprintf("%s.choices[%d]", label(at), i), Message: err.Error(), Err: err}
			}
			// Whole numbers decode as ints; a float field still accepts them.
			if n, isInt := v.(ir.Int); isInt && kind == ir.KindFloat {
				v = ir.Float(n)
			}
			choices = append(choices, v)
		}
		opts = append(opts, schema.Choices(choices...))
	}

	f, err := schema.NewField(kind, opts...)
	if err != nil {
		return nil, &CompileError{Field: label(at), Message: err.Error(), Err: err}
	}
	return f, nil
}

func sortedKeys(m map[string]*Document) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func join(at, key string) string {
	if at == "" {
		return key
	}
	return at + "." + key
}

func label(at string) string {
	if at == "" {
		return "schema"
	}
	return at
}
