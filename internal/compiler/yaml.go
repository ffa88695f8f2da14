package compiler

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/roach88/nestdict/internal/schema"
)

// CompileYAML parses a YAML schema document into a Schema. Unknown
// attributes are rejected so typos such as "unique_field" fail loudly.
// JSON documents are valid YAML and compile the same way.
func CompileYAML(data []byte) (*schema.Schema, error) {
	var doc Document
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &CompileError{Field: "schema", Message: "document is empty"}
		}
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return Build(&doc)
}
