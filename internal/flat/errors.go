package flat

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes path errors.
type ErrorCode string

const (
	// ErrCodePathNotFound indicates a lookup or delete against an absent path.
	ErrCodePathNotFound ErrorCode = "PathNotFound"

	// ErrCodeInvalidPath indicates a grammar violation, a wildcard in a
	// mutation, more than one wildcard, or a key that cannot be addressed.
	ErrCodeInvalidPath ErrorCode = "InvalidPath"

	// ErrCodeIndexOutOfRange indicates a write past the end of a sequence.
	// Only replacing an index or appending at len() is defined.
	ErrCodeIndexOutOfRange ErrorCode = "IndexOutOfRange"

	// ErrCodePathConflict indicates a segment whose shape does not match the
	// container it addresses (key on a sequence, index on a mapping, or
	// descent through a scalar).
	ErrCodePathConflict ErrorCode = "PathConflict"

	// ErrCodeInvalidRoot indicates data that is neither a mapping nor a sequence.
	ErrCodeInvalidRoot ErrorCode = "InvalidRoot"
)

// PathError is returned by every Store operation that fails.
type PathError struct {
	Code    ErrorCode
	Path    string
	Message string
	Err     error
}

func (e *PathError) Error() string {
	msg := e.Message
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %s (path=%s)", e.Code, msg, e.Path)
	}
	return fmt.Sprintf("%s: %s", e.Code, msg)
}

func (e *PathError) Unwrap() error {
	return e.Err
}

func newPathError(code ErrorCode, path, format string, args ...any) *PathError {
	return &PathError{Code: code, Path: path, Message: fmt.Sprintf(format, args...)}
}

func notFound(path string) *PathError {
	return newPathError(ErrCodePathNotFound, path, "keypath not found")
}

// CodeOf returns the code of a wrapped PathError, or "" when err is not one.
func CodeOf(err error) ErrorCode {
	var pe *PathError
	if errors.As(err, &pe) {
		return pe.Code
	}
	return ""
}

// IsPathNotFound reports whether err is a PathNotFound PathError.
func IsPathNotFound(err error) bool {
	return CodeOf(err) == ErrCodePathNotFound
}
