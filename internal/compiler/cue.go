package compiler

import (
	"errors"
	"fmt"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/token"

	"github.com/roach88/nestdict/internal/schema"
)

// CompileCUE parses a CUE value into a Schema.
// Uses CUE SDK's Go API directly (not CLI subprocess).
//
// The value is the root schema node, e.g.:
//
//	ctx := cuecontext.New()
//	v := ctx.CompileString(`schema: { kind: "mapping", items: { ... } }`)
//	s, err := CompileCUE(v.LookupPath(cue.ParsePath("schema")))
//
// Errors carry the CUE position of the offending node.
func CompileCUE(v cue.Value) (*schema.Schema, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	positions := make(map[string]token.Pos)
	doc, err := decodeCUENode(v, "", positions)
	if err != nil {
		return nil, err
	}

	s, err := Build(doc)
	if err != nil {
		var ce *CompileError
		if errors.As(err, &ce) && !ce.Pos.IsValid() {
			ce.Pos = lookupPos(positions, ce.Field)
		}
		return nil, err
	}
	return s, nil
}

// CompileCUESource compiles CUE source text. When the source defines a
// top-level "schema" field, that field is the root node; otherwise the whole
// file is.
func CompileCUESource(src []byte, filename string) (*schema.Schema, error) {
	ctx := cuecontext.New()
	v := ctx.CompileBytes(src, cue.Filename(filename))
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}
	if root := v.LookupPath(cue.ParsePath("schema")); root.Exists() {
		v = root
	}
	return CompileCUE(v)
}

// decodeCUENode extracts one schema node from the CUE value.
func decodeCUENode(v cue.Value, at string, positions map[string]token.Pos) (*Document, error) {
	positions[label(at)] = v.Pos()

	if v.IncompleteKind() != cue.StructKind {
		return nil, &CompileError{Field: label(at), Message: "schema node must be a struct", Pos: v.Pos()}
	}

	doc := &Document{}
	iter, err := v.Fields()
	if err != nil {
		return nil, formatCUEError(err)
	}

	for iter.Next() {
		name := iter.Label()
		fv := iter.Value()
		field := label(at) + "." + name

		switch name {
		case "kind":
			doc.Kind, err = fv.String()
		case "type":
			doc.Type, err = fv.String()
		case "required":
			doc.Required, err = fv.Bool()
		case "min":
			doc.Min, err = cueFloat(fv)
		case "max":
			doc.Max, err = cueFloat(fv)
		case "min_length":
			doc.MinLength, err = cueInt(fv)
		case "max_length":
			doc.MaxLength, err = cueInt(fv)
		case "pattern":
			var p string
			p, err = fv.String()
			doc.Pattern = &p
		case "choices":
			doc.Choices, err = cueChoices(fv, field)
		case "unique_fields":
			doc.UniqueFields, err = cueStrings(fv)
		case "items":
			doc.Items, err = decodeCUEItems(fv, at, positions)
		default:
			return nil, &CompileError{Field: field, Message: "unknown schema attribute", Pos: fv.Pos()}
		}
		if err != nil {
			var ce *CompileError
			if errors.As(err, &ce) {
				return nil, err
			}
			return nil, &CompileError{Field: field, Message: err.Error(), Pos: fv.Pos(), Err: err}
		}
	}

	return doc, nil
}

// decodeCUEItems extracts the children of a schema node.
func decodeCUEItems(v cue.Value, at string, positions map[string]token.Pos) (map[string]*Document, error) {
	iter, err := v.Fields()
	if err != nil {
		return nil, formatCUEError(err)
	}

	items := make(map[string]*Document)
	for iter.Next() {
		key := iter.Label()
		child, err := decodeCUENode(iter.Value(), join(at, key), positions)
		if err != nil {
			return nil, err
		}
		items[key] = child
	}
	return items, nil
}

func cueFloat(v cue.Value) (*float64, error) {
	f, err := v.Float64()
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func cueInt(v cue.Value) (*int, error) {
	n, err := v.Int64()
	if err != nil {
		return nil, err
	}
	i := int(n)
	return &i, nil
}

func cueStrings(v cue.Value) ([]string, error) {
	iter, err := v.List()
	if err != nil {
		return nil, err
	}
	var out []string
	for iter.Next() {
		s, err := iter.Value().String()
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// cueChoices reads a list of scalar choices.
func cueChoices(v cue.Value, field string) ([]any, error) {
	iter, err := v.List()
	if err != nil {
		return nil, err
	}
	out := []any{}
	for i := 0; iter.Next(); i++ {
		c := iter.Value()
		var (
			val any
			err error
		)
		switch c.Kind() {
		case cue.StringKind:
			val, err = c.String()
		case cue.IntKind:
			val, err = c.Int64()
		case cue.FloatKind:
			val, err = c.Float64()
		case cue.BoolKind:
			val, err = c.Bool()
		default:
			return nil, &CompileError{
				Field:   fmt.Sprintf("%s[%d]", field, i),
				Message: fmt.Sprintf("choice must be a concrete scalar, got %s", c.Kind()),
				Pos:     c.Pos(),
			}
		}
		if err != nil {
			return nil, err
		}
		out = append(out, val)
	}
	return out, nil
}

// lookupPos finds the position recorded for field or its nearest ancestor.
func lookupPos(positions map[string]token.Pos, field string) token.Pos {
	for f := field; f != ""; {
		if pos, ok := positions[f]; ok {
			return pos
		}
		i := strings.LastIndexByte(f, '.')
		if i < 0 {
			break
		}
		f = f[:i]
	}
	return positions["schema"]
}
