package store

import (
	"fmt"

	"github.com/roach88/nestdict/internal/ir"
)

// MarshalJSON renders the nested data as RFC 8785 canonical JSON.
func (s *Store) MarshalJSON() ([]byte, error) {
	data, err := ir.MarshalCanonical(s.data.Canonical())
	if err != nil {
		return nil, fmt.Errorf("marshal store: %w", err)
	}
	return data, nil
}

// String renders the nested data as canonical JSON.
func (s *Store) String() string {
	data, err := s.MarshalJSON()
	if err != nil {
		return fmt.Sprintf("<store: %v>", err)
	}
	return string(data)
}
