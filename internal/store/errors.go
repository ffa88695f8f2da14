package store

import (
	"errors"
	"fmt"

	"github.com/roach88/nestdict/internal/flat"
	"github.com/roach88/nestdict/internal/keypath"
	"github.com/roach88/nestdict/internal/schema"
)

// ErrCodeInvalidSchemaPath is the code of every SchemaPathError.
const ErrCodeInvalidSchemaPath = "InvalidSchemaPath"

// SchemaPathError reports a keypath that the schema tree cannot resolve.
type SchemaPathError struct {
	Path string

	// Segment is the zero-based index of the segment that failed.
	Segment int

	Message string
}

// Error implements the error interface.
func (e *SchemaPathError) Error() string {
	return fmt.Sprintf("%s: %s (path=%s, segment=%d)", ErrCodeInvalidSchemaPath, e.Message, e.Path, e.Segment)
}

// IsInvalidSchemaPath reports whether err wraps a SchemaPathError.
func IsInvalidSchemaPath(err error) bool {
	var se *SchemaPathError
	return errors.As(err, &se)
}

// Code returns the stable code of any error produced by a Store, or "" for
// foreign errors. Useful for logging and for mapping to exit codes.
func Code(err error) string {
	if err == nil {
		return ""
	}
	if IsInvalidSchemaPath(err) {
		return ErrCodeInvalidSchemaPath
	}
	if c := schema.CodeOf(err); c != "" {
		return string(c)
	}
	if schema.IsConstructionError(err) {
		return "ConstructionError"
	}
	if c := flat.CodeOf(err); c != "" {
		return string(c)
	}
	return ""
}

// parsePath turns a keypath syntax error into an InvalidPath error so
// callers match a single taxonomy.
func parsePath(path string) (keypath.Path, error) {
	p, err := keypath.Parse(path)
	if err != nil {
		return nil, &flat.PathError{
			Code:    flat.ErrCodeInvalidPath,
			Path:    path,
			Message: "malformed keypath",
			Err:     err,
		}
	}
	return p, nil
}
