package store

import (
	"fmt"

	"github.com/roach88/nestdict/internal/flat"
	"github.com/roach88/nestdict/internal/ir"
	"github.com/roach88/nestdict/internal/keypath"
	"github.com/roach88/nestdict/internal/schema"
)

// Set stores a copy of v at path. Missing ancestors are created from the
// shape of the following segment. A nil v is stored as Null.
//
// With a schema, the node governing path validates v first and the
// resulting document is validated against the root schema; on failure the
// store is unchanged.
func (s *Store) Set(path string, v ir.Value) error {
	if err := s.set(path, v); err != nil {
		s.rejected("set", path, err)
		return fmt.Errorf("set %q: %w", path, err)
	}
	s.logger.Debug("keypath set", "path", path, "kind", ir.KindOf(v).String())
	return nil
}

func (s *Store) set(path string, v ir.Value) error {
	p, err := parsePath(path)
	if err != nil {
		return err
	}
	if err := flat.CheckMutationPath(p); err != nil {
		return err
	}
	if v == nil {
		v = ir.Null{}
	} else {
		v = ir.Clone(v)
	}

	if err := s.gate(p, v); err != nil {
		return err
	}
	if s.schema != nil {
		candidate, err := flat.SetIn(s.data.Canonical(), p, v)
		if err != nil {
			return err
		}
		if err := s.schema.Validate(candidate); err != nil {
			return err
		}
	}
	return s.data.Set(p, v)
}

// Delete removes the value at path and everything beneath it. Removing a
// sequence element shifts later elements down.
//
// With a schema, the node governing path must accept an absent value, so
// deleting a required field fails with RequiredFieldMissing and deleting a
// nested mapping fails with TypeMismatch.
func (s *Store) Delete(path string) error {
	if err := s.delete(path); err != nil {
		s.rejected("delete", path, err)
		return fmt.Errorf("delete %q: %w", path, err)
	}
	s.logger.Debug("keypath deleted", "path", path)
	return nil
}

func (s *Store) delete(path string) error {
	p, err := parsePath(path)
	if err != nil {
		return err
	}
	if err := flat.CheckMutationPath(p); err != nil {
		return err
	}

	if err := s.gate(p, nil); err != nil {
		return err
	}
	if s.schema != nil {
		candidate, err := flat.DeleteIn(s.data.Canonical(), p)
		if err != nil {
			return err
		}
		if err := s.schema.Validate(candidate); err != nil {
			return err
		}
	}
	return s.data.Delete(p)
}

// gate validates v against the node governing p. An absent value under a
// nested schema is left to the whole-document check, since removing a
// sequence element is legal while removing a mapping is not.
func (s *Store) gate(p keypath.Path, v ir.Value) error {
	node, err := s.resolve(p)
	if err != nil || node == nil {
		return err
	}
	if _, ok := node.(*schema.Schema); ok && ir.IsAbsent(v) {
		return nil
	}
	return schema.ValidateAt(node, v, p)
}

func (s *Store) rejected(op, path string, err error) {
	s.logger.Warn("mutation rejected",
		"op", op,
		"path", path,
		"code", Code(err),
		"error", err,
	)
}
