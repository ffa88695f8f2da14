package schema

import (
	"cmp"
	"math"
	"regexp"

	"github.com/roach88/nestdict/internal/ir"
	"github.com/roach88/nestdict/internal/keypath"
)

// Field constrains a single value. Fields are immutable once built and may
// be shared between any number of schemas and stores.
type Field struct {
	kind     ir.Kind
	required bool

	min, max       *float64
	minLen, maxLen *int

	patternSrc string
	pattern    *regexp.Regexp

	choices []ir.Value
}

// FieldOption configures a Field under construction.
type FieldOption func(*fieldConfig)

type fieldConfig struct {
	required       bool
	min, max       *float64
	minLen, maxLen *int
	pattern        *string
	choices        []ir.Value
	restricted     bool
}

// Required rejects absent values.
func Required() FieldOption {
	return func(c *fieldConfig) { c.required = true }
}

// Min sets the inclusive lower bound for numeric fields.
func Min(v float64) FieldOption {
	return func(c *fieldConfig) { c.min = &v }
}

// Max sets the inclusive upper bound for numeric fields.
func Max(v float64) FieldOption {
	return func(c *fieldConfig) { c.max = &v }
}

// MinLength sets the inclusive lower length bound. Strings are measured in
// runes, sequences and mappings in elements.
func MinLength(n int) FieldOption {
	return func(c *fieldConfig) { c.minLen = &n }
}

// MaxLength sets the inclusive upper length bound.
func MaxLength(n int) FieldOption {
	return func(c *fieldConfig) { c.maxLen = &n }
}

// Pattern requires string values to match re at their start.
func Pattern(re string) FieldOption {
	return func(c *fieldConfig) { c.pattern = &re }
}

// Choices restricts values to the given set. An empty set admits no value.
func Choices(values ...ir.Value) FieldOption {
	return func(c *fieldConfig) {
		c.choices = append(c.choices, values...)
		c.restricted = true
	}
}

// NewField builds a Field for values of the given kind.
func NewField(kind ir.Kind, opts ...FieldOption) (*Field, error) {
	var cfg fieldConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	if kind == ir.KindAbsent || kind == ir.KindNull {
		return nil, constructionError("type", "%s is not a field type", kind)
	}

	f := &Field{
		kind:     kind,
		required: cfg.required,
		min:      cfg.min,
		max:      cfg.max,
		minLen:   cfg.minLen,
		maxLen:   cfg.maxLen,
	}

	if f.min != nil || f.max != nil {
		if kind != ir.KindInt && kind != ir.KindFloat {
			return nil, constructionError("min/max", "bounds require a numeric type, got %s", kind)
		}
		for _, b := range []*float64{f.min, f.max} {
			if b != nil && (math.IsNaN(*b) || math.IsInf(*b, 0)) {
				return nil, constructionError("min/max", "bound must be finite")
			}
		}
		if f.min != nil && f.max != nil && *f.min > *f.max {
			return nil, constructionError("min/max", "min %v is greater than max %v", *f.min, *f.max)
		}
	}

	if f.minLen != nil || f.maxLen != nil {
		switch kind {
		case ir.KindString, ir.KindArray, ir.KindObject:
		default:
			return nil, constructionError("length", "length bounds do not apply to %s", kind)
		}
		if err := checkLengthBounds(f.minLen, f.maxLen); err != nil {
			return nil, err
		}
	}

	if cfg.pattern != nil {
		if kind != ir.KindString {
			return nil, constructionError("pattern", "pattern requires a string type, got %s", kind)
		}
		re, err := regexp.Compile("^(?:" + *cfg.pattern + ")")
		if err != nil {
			return nil, &ConstructionError{Option: "pattern", Message: "not a valid regular expression", Err: err}
		}
		f.patternSrc = *cfg.pattern
		f.pattern = re
	}

	if cfg.restricted {
		f.choices = make([]ir.Value, 0, len(cfg.choices))
		for _, c := range cfg.choices {
			if ir.KindOf(c) != kind {
				return nil, constructionError("choices", "choice of kind %s in a %s field", ir.KindOf(c), kind)
			}
			f.choices = append(f.choices, ir.Clone(c))
		}
	}

	return f, nil
}

// MustField is NewField that panics on a construction error.
func MustField(kind ir.Kind, opts ...FieldOption) *Field {
	f, err := NewField(kind, opts...)
	if err != nil {
		panic(err)
	}
	return f
}

func checkLengthBounds(minLen, maxLen *int) error {
	if minLen != nil && *minLen < 0 {
		return constructionError("min_length", "must not be negative, got %d", *minLen)
	}
	if maxLen != nil && *maxLen < 0 {
		return constructionError("max_length", "must not be negative, got %d", *maxLen)
	}
	if minLen != nil && maxLen != nil && *minLen > *maxLen {
		return constructionError("length", "min_length %d is greater than max_length %d", *minLen, *maxLen)
	}
	return nil
}

func (*Field) node() {}

// Kind returns the declared value kind.
func (f *Field) Kind() ir.Kind { return f.kind }

// IsRequired reports whether absent values are rejected.
func (f *Field) IsRequired() bool { return f.required }

// Min returns the lower numeric bound, if any.
func (f *Field) Min() (float64, bool) { return deref(f.min) }

// Max returns the upper numeric bound, if any.
func (f *Field) Max() (float64, bool) { return deref(f.max) }

// MinLength returns the lower length bound, if any.
func (f *Field) MinLength() (int, bool) { return deref(f.minLen) }

// MaxLength returns the upper length bound, if any.
func (f *Field) MaxLength() (int, bool) { return deref(f.maxLen) }

// Pattern returns the pattern source, or "" when unset.
func (f *Field) Pattern() string { return f.patternSrc }

// Choices returns a copy of the allowed values, or nil when unrestricted.
func (f *Field) Choices() []ir.Value {
	if f.choices == nil {
		return nil
	}
	out := make([]ir.Value, len(f.choices))
	for i, c := range f.choices {
		out[i] = ir.Clone(c)
	}
	return out
}

func deref[T any](p *T) (T, bool) {
	if p == nil {
		var zero T
		return zero, false
	}
	return *p, true
}

// Validate checks v against the field. Null counts as absent. Checks run in
// a fixed order and the first failure is returned:
// required, type, min, max, min_length, max_length, pattern, choices.
func (f *Field) Validate(v ir.Value) error {
	return f.validate(v, nil)
}

func (f *Field) validate(v ir.Value, at keypath.Path) error {
	err := f.check(v)
	if err != nil {
		err.Path = at.String()
		return err
	}
	return nil
}

func (f *Field) check(v ir.Value) *ValidationError {
	if ir.IsAbsent(v) {
		if f.required {
			return validationError(ErrCodeRequiredFieldMissing, "required field is missing")
		}
		return nil
	}

	if v.Kind() != f.kind {
		err := validationError(ErrCodeTypeMismatch, "expected %s but got %s", f.kind, v.Kind())
		err.Expected = f.kind.String()
		err.Actual = v.Kind().String()
		return err
	}

	if n, ok := ir.Number(v); ok {
		if f.min != nil && compareBound(v, n, *f.min) < 0 {
			return validationError(ErrCodeOutOfRange, "value %v is less than minimum %v", v, *f.min)
		}
		if f.max != nil && compareBound(v, n, *f.max) > 0 {
			return validationError(ErrCodeOutOfRange, "value %v is greater than maximum %v", v, *f.max)
		}
	}

	if l, ok := ir.Len(v); ok {
		if f.minLen != nil && l < *f.minLen {
			return validationError(ErrCodeLengthOutOfRange, "length %d is less than minimum %d", l, *f.minLen)
		}
		if f.maxLen != nil && l > *f.maxLen {
			return validationError(ErrCodeLengthOutOfRange, "length %d is greater than maximum %d", l, *f.maxLen)
		}
	}

	if f.pattern != nil {
		if s, ok := v.(ir.String); ok && !f.pattern.MatchString(string(s)) {
			return validationError(ErrCodePatternMismatch, "value %q does not match pattern %q", string(s), f.patternSrc)
		}
	}

	if f.choices != nil && !f.allows(v) {
		return validationError(ErrCodeNotInChoices, "value is not one of the %d allowed choices", len(f.choices))
	}

	return nil
}

// compareBound orders the numeric value v (n as a float) against bound b.
// Ints are compared exactly, without rounding through float64.
func compareBound(v ir.Value, n, b float64) int {
	i, ok := v.(ir.Int)
	if !ok {
		return cmp.Compare(n, b)
	}
	switch {
	case b >= 1<<63:
		return -1
	case b < -(1 << 63):
		return 1
	}
	t := math.Trunc(b)
	if c := cmp.Compare(int64(i), int64(t)); c != 0 {
		return c
	}
	// Equal integer parts: the fraction of b decides.
	return cmp.Compare(0, b-t)
}

func (f *Field) allows(v ir.Value) bool {
	for _, c := range f.choices {
		if ir.Equal(c, v) {
			return true
		}
	}
	return false
}
