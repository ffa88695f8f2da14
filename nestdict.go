package nestdict

import (
	"log/slog"

	"github.com/roach88/nestdict/internal/codec"
	"github.com/roach88/nestdict/internal/compiler"
	"github.com/roach88/nestdict/internal/ir"
	"github.com/roach88/nestdict/internal/schema"
	"github.com/roach88/nestdict/internal/store"
)

// Value types.
type (
	Value  = ir.Value
	Kind   = ir.Kind
	Null   = ir.Null
	String = ir.String
	Int    = ir.Int
	Float  = ir.Float
	Bool   = ir.Bool
	Array  = ir.Array
	Object = ir.Object
)

// Value kinds accepted by NewField.
const (
	KindString = ir.KindString
	KindInt    = ir.KindInt
	KindFloat  = ir.KindFloat
	KindBool   = ir.KindBool
	KindArray  = ir.KindArray
	KindObject = ir.KindObject
)

// Store and schema types.
type (
	Store           = store.Store
	Option          = store.Option
	Schema          = schema.Schema
	Field           = schema.Field
	Node            = schema.Node
	FieldOption     = schema.FieldOption
	SchemaOption    = schema.SchemaOption
	ValidationError = schema.ValidationError
)

// New builds a Store over a copy of data.
func New(data Value, opts ...Option) (*Store, error) {
	return store.New(data, opts...)
}

// WithSchema guards a Store with s.
func WithSchema(s *Schema) Option { return store.WithSchema(s) }

// WithLogger sets the logger a Store reports mutations to.
func WithLogger(l *slog.Logger) Option { return store.WithLogger(l) }

// NewField builds a leaf constraint for values of kind.
func NewField(kind Kind, opts ...FieldOption) (*Field, error) {
	return schema.NewField(kind, opts...)
}

// NewMapping builds a schema for a mapping with the given children.
func NewMapping(children map[string]Node) (*Schema, error) {
	return schema.NewMapping(children)
}

// NewSequence builds a schema for a sequence of mappings whose items have
// the given children.
func NewSequence(children map[string]Node, opts ...SchemaOption) (*Schema, error) {
	return schema.NewSequence(children, opts...)
}

// Required rejects an absent or null value.
func Required() FieldOption { return schema.Required() }

// Min sets the inclusive lower bound of an int or float field.
func Min(v float64) FieldOption { return schema.Min(v) }

// Max sets the inclusive upper bound of an int or float field.
func Max(v float64) FieldOption { return schema.Max(v) }

// MinLength sets the minimum rune count of a string field, or element
// count of an array or object field.
func MinLength(n int) FieldOption { return schema.MinLength(n) }

// MaxLength sets the maximum length, counted as for MinLength.
func MaxLength(n int) FieldOption { return schema.MaxLength(n) }

// Pattern requires a string field to match re from its first character.
func Pattern(re string) FieldOption { return schema.Pattern(re) }

// Choices restricts a field to the listed values.
func Choices(values ...Value) FieldOption { return schema.Choices(values...) }

// MinItems sets the minimum length of a sequence.
func MinItems(n int) SchemaOption { return schema.MinItems(n) }

// MaxItems sets the maximum length of a sequence.
func MaxItems(n int) SchemaOption { return schema.MaxItems(n) }

// Unique requires each named item field to differ across a sequence.
func Unique(fields ...string) SchemaOption { return schema.Unique(fields...) }

// LoadSchema compiles a schema file. Files ending in .cue are CUE; anything
// else is read as YAML.
func LoadSchema(path string) (*Schema, error) {
	return compiler.CompileFile(path)
}

// FromGo converts decoded Go data (maps, slices, numbers, strings, bools
// and nil) to a Value.
func FromGo(v any) (Value, error) { return ir.FromGo(v) }

// ToGo converts v back to plain Go data.
func ToGo(v Value) any { return ir.ToGo(v) }

// Decode parses a JSON, JSONC, YAML or CBOR document.
func Decode(data []byte, format string) (Value, error) {
	f, err := codec.ParseFormat(format)
	if err != nil {
		return nil, err
	}
	return codec.Decode(data, f)
}

// Encode renders v as a JSON, JSONC, YAML or CBOR document.
func Encode(v Value, format string) ([]byte, error) {
	f, err := codec.ParseFormat(format)
	if err != nil {
		return nil, err
	}
	return codec.Encode(v, f)
}

// ErrorCode returns the stable code of an error returned by a Store or a
// schema constructor, such as "PathNotFound" or "RequiredFieldMissing".
// It returns "" for any other error.
func ErrorCode(err error) string { return store.Code(err) }
