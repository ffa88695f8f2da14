package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"cuelang.org/go/cue/token"

	"github.com/roach88/nestdict/internal/codec"
	"github.com/roach88/nestdict/internal/compiler"
	"github.com/roach88/nestdict/internal/flat"
	"github.com/roach88/nestdict/internal/ir"
	"github.com/roach88/nestdict/internal/schema"
	"github.com/roach88/nestdict/internal/store"
)

// Error codes for CLI output.
const (
	ErrCodeGeneric     = "E001" // Generic/unknown error
	ErrCodeReadFailed  = "E002" // File read error
	ErrCodeDecode      = "E003" // Document decode failed
	ErrCodeSchemaLoad  = "E004" // Schema compile failed
	ErrCodeNotFound    = "E005" // File not found
	ErrCodeBadValue    = "E006" // Value argument could not be parsed
	ErrCodeWriteFailed = "E007" // File write error

	// Store errors
	ErrCodeValidation        = "E101" // Document violates the schema
	ErrCodeInvalidSchemaPath = "E102" // Path cannot be resolved in the schema
	ErrCodePathNotFound      = "E103" // Keypath absent from the document
	ErrCodeInvalidPath       = "E104" // Malformed keypath or wildcard misuse
	ErrCodeIndexOutOfRange   = "E105" // Sparse sequence write
	ErrCodePathConflict      = "E106" // Segment shape does not match the data
	ErrCodeInvalidRoot       = "E107" // Document root is not a mapping or sequence
	ErrCodeInvalidQuery      = "E108" // JSONPath expression did not parse
)

// LoadError represents an error that occurred loading a document or schema.
type LoadError struct {
	Code    string
	Message string
	Pos     token.Pos // CUE position if available
	Err     error
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// DocumentOptions holds the flags shared by commands that open a document.
type DocumentOptions struct {
	*RootOptions
	Schema      string // schema file (.cue, .yaml, .yml or .json)
	InputFormat string // document format; inferred from the extension when empty
}

// LoadDocument reads and decodes the document at path.
func LoadDocument(path, format string) (ir.Value, error) {
	f, err := resolveFormat(format, path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, readError("document", path, err)
	}

	v, err := codec.Decode(data, f)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeDecode, Message: fmt.Sprintf("failed to decode %s", path), Err: err}
	}
	return v, nil
}

// LoadSchema compiles the schema file at path. Files ending in .cue are
// compiled with CUE; anything else is read as a YAML schema document.
func LoadSchema(path string) (*schema.Schema, error) {
	s, err := compiler.CompileFile(path)
	if err == nil {
		return s, nil
	}

	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return nil, readError("schema", path, err)
	}

	loadErr := &LoadError{Code: ErrCodeSchemaLoad, Message: fmt.Sprintf("failed to compile schema %s", path), Err: err}
	var cErr *compiler.CompileError
	if errors.As(err, &cErr) {
		loadErr.Message = cErr.Error()
		loadErr.Pos = cErr.Pos
	}
	return nil, loadErr
}

// openStore loads the document and optional schema named by opts and
// builds a store over them.
func openStore(opts *DocumentOptions, path string, logger *slog.Logger) (*store.Store, error) {
	data, err := LoadDocument(path, opts.InputFormat)
	if err != nil {
		return nil, err
	}

	storeOpts := []store.Option{store.WithLogger(logger)}
	if opts.Schema != "" {
		s, err := LoadSchema(opts.Schema)
		if err != nil {
			return nil, err
		}
		storeOpts = append(storeOpts, store.WithSchema(s))
	}

	return store.New(data, storeOpts...)
}

func resolveFormat(name, path string) (codec.Format, error) {
	if name == "" {
		return codec.FormatFromPath(path), nil
	}
	f, err := codec.ParseFormat(name)
	if err != nil {
		return "", &LoadError{Code: ErrCodeGeneric, Message: err.Error()}
	}
	return f, nil
}

func readError(what, path string, err error) *LoadError {
	if errors.Is(err, fs.ErrNotExist) {
		return &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("%s not found: %s", what, path), Err: err}
	}
	return &LoadError{Code: ErrCodeReadFailed, Message: fmt.Sprintf("failed to read %s %s", what, path), Err: err}
}

// errorCode maps an error from loading or from a store operation to its
// CLI code.
func errorCode(err error) string {
	var loadErr *LoadError
	if errors.As(err, &loadErr) {
		return loadErr.Code
	}

	if store.IsInvalidSchemaPath(err) {
		return ErrCodeInvalidSchemaPath
	}
	if schema.IsValidationError(err) {
		return ErrCodeValidation
	}

	switch flat.CodeOf(err) {
	case flat.ErrCodePathNotFound:
		return ErrCodePathNotFound
	case flat.ErrCodeInvalidPath:
		return ErrCodeInvalidPath
	case flat.ErrCodeIndexOutOfRange:
		return ErrCodeIndexOutOfRange
	case flat.ErrCodePathConflict:
		return ErrCodePathConflict
	case flat.ErrCodeInvalidRoot:
		return ErrCodeInvalidRoot
	}
	return ErrCodeGeneric
}

// errorDetails carries the store-level code and path into CLI responses.
func errorDetails(err error) map[string]any {
	details := map[string]any{}
	if c := store.Code(err); c != "" {
		details["reason"] = c
	}
	var ve *schema.ValidationError
	if errors.As(err, &ve) && ve.Path != "" {
		details["path"] = ve.Path
	}
	if len(details) == 0 {
		return nil
	}
	return details
}
