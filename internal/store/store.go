package store

import (
	"fmt"
	"log/slog"

	"github.com/roach88/nestdict/internal/flat"
	"github.com/roach88/nestdict/internal/ir"
	"github.com/roach88/nestdict/internal/schema"
)

// Store is nested data addressed by keypaths, with an optional schema
// checked before every mutation.
type Store struct {
	data   *flat.Store
	schema *schema.Schema
	logger *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithSchema guards the store with s. The schema must describe the root:
// a mapping schema for mapping data, a sequence schema for sequence data.
func WithSchema(s *schema.Schema) Option {
	return func(st *Store) { st.schema = s }
}

// WithLogger sets the logger for mutation events. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(st *Store) {
		if l != nil {
			st.logger = l
		}
	}
}

// New builds a Store holding a copy of data. Nil or null data yields an
// empty mapping, or an empty sequence when the schema describes one.
//
// With a schema, data is validated in full first and New fails with the
// schema's error if it does not conform.
func New(data ir.Value, opts ...Option) (*Store, error) {
	s := &Store{logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}

	if ir.IsAbsent(data) {
		data = ir.Object{}
		if s.schema != nil && s.schema.IsSequence() {
			data = ir.Array{}
		}
	} else {
		data = ir.Clone(data)
	}

	if s.schema != nil {
		if err := s.schema.Validate(data); err != nil {
			return nil, fmt.Errorf("new store: %w", err)
		}
	}

	fs, err := flat.New(data)
	if err != nil {
		return nil, fmt.Errorf("new store: %w", err)
	}
	s.data = fs
	return s, nil
}

// Schema returns the guarding schema, or nil.
func (s *Store) Schema() *schema.Schema {
	return s.schema
}

// RootKind reports whether the store holds a mapping or a sequence.
func (s *Store) RootKind() ir.Kind {
	return s.data.RootKind()
}

// Len returns the number of flat entries.
func (s *Store) Len() int {
	return s.data.Len()
}
