package compiler

import (
	"fmt"

	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
)

// CompileError reports a schema document that cannot be turned into a
// schema tree.
type CompileError struct {
	// Field is the dotted location of the offending node, e.g. "user.age".
	Field   string
	Message string

	// Pos is set for CUE sources only.
	Pos token.Pos
	Err error
}

func (e *CompileError) Error() string {
	msg := e.Field + ": " + e.Message
	if !e.Pos.IsValid() {
		return msg
	}
	return fmt.Sprintf("%s:%d:%d: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), msg)
}

func (e *CompileError) Unwrap() error {
	return e.Err
}

// formatCUEError reduces a CUE error list to its first entry, keeping the
// position when CUE reports one.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}
	list := cueerrors.Errors(err)
	if len(list) == 0 {
		return err
	}

	first := list[0]
	ce := &CompileError{Field: "cue", Message: first.Error(), Err: err}
	if pos := cueerrors.Positions(first); len(pos) > 0 {
		ce.Pos = pos[0]
	}
	return ce
}
