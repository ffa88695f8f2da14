package schema

import (
	"errors"
	"fmt"
)

// ConstructionError reports an inconsistent Field or Schema configuration.
// It is returned by the constructors and never by Validate.
type ConstructionError struct {
	// Option names the offending constraint (e.g. "min", "pattern").
	Option  string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ConstructionError) Error() string {
	msg := fmt.Sprintf("invalid %s: %s", e.Option, e.Message)
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *ConstructionError) Unwrap() error {
	return e.Err
}

func constructionError(option, format string, args ...any) *ConstructionError {
	return &ConstructionError{Option: option, Message: fmt.Sprintf(format, args...)}
}

// ErrorCode categorizes validation failures.
type ErrorCode string

const (
	// ErrCodeRequiredFieldMissing indicates a required field with no value.
	ErrCodeRequiredFieldMissing ErrorCode = "RequiredFieldMissing"

	// ErrCodeTypeMismatch indicates a value of the wrong kind.
	ErrCodeTypeMismatch ErrorCode = "TypeMismatch"

	// ErrCodeOutOfRange indicates a number outside [min, max].
	ErrCodeOutOfRange ErrorCode = "OutOfRange"

	// ErrCodeLengthOutOfRange indicates a string, collection or sequence
	// whose length falls outside the declared bounds.
	ErrCodeLengthOutOfRange ErrorCode = "LengthOutOfRange"

	// ErrCodePatternMismatch indicates a string not matching the pattern.
	ErrCodePatternMismatch ErrorCode = "PatternMismatch"

	// ErrCodeNotInChoices indicates a value outside the declared choices.
	ErrCodeNotInChoices ErrorCode = "NotInChoices"

	// ErrCodeDuplicateUniqueValue indicates two sequence items sharing a
	// value for a field declared unique.
	ErrCodeDuplicateUniqueValue ErrorCode = "DuplicateUniqueValue"
)

// ValidationError is returned by Validate on the first violated constraint.
type ValidationError struct {
	Code ErrorCode

	// Path locates the offending value relative to the validated root,
	// rendered in keypath syntax. Empty for the root itself.
	Path string

	Message string

	// Expected and Actual describe kind mismatches.
	Expected string
	Actual   string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s (path=%s)", e.Code, e.Message, e.Path)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func validationError(code ErrorCode, format string, args ...any) *ValidationError {
	return &ValidationError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// CodeOf returns the code of a wrapped ValidationError, or "".
func CodeOf(err error) ErrorCode {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Code
	}
	return ""
}

// IsValidationError reports whether err wraps a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsConstructionError reports whether err wraps a ConstructionError.
func IsConstructionError(err error) bool {
	var ce *ConstructionError
	return errors.As(err, &ce)
}

// IsRequiredFieldMissing reports whether err is a RequiredFieldMissing failure.
func IsRequiredFieldMissing(err error) bool {
	return CodeOf(err) == ErrCodeRequiredFieldMissing
}
