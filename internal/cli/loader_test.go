package cli

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/nestdict/internal/flat"
	"github.com/roach88/nestdict/internal/ir"
	"github.com/roach88/nestdict/internal/schema"
	"github.com/roach88/nestdict/internal/store"
)

func TestLoadDocument_Formats(t *testing.T) {
	dir := t.TempDir()
	want := ir.MustFromGo(map[string]any{"a": map[string]any{"b": []any{1, "x"}}})

	for name, content := range map[string]string{
		"doc.json":  `{"a": {"b": [1, "x"]}}`,
		"doc.jsonc": "{\n  // note\n  \"a\": {\"b\": [1, \"x\",],},\n}",
		"doc.yaml":  "a:\n  b: [1, x]\n",
	} {
		t.Run(name, func(t *testing.T) {
			v, err := LoadDocument(writeFile(t, dir, name, content), "")
			require.NoError(t, err)
			assert.True(t, ir.Equal(want, v))
		})
	}

	// An explicit format overrides the extension.
	v, err := LoadDocument(writeFile(t, dir, "doc.txt", "a:\n  b: [1, x]\n"), "yaml")
	require.NoError(t, err)
	assert.True(t, ir.Equal(want, v))
}

func TestLoadDocument_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadDocument(dir+"/missing.json", "")
	assert.Equal(t, ErrCodeNotFound, errorCode(err))

	_, err = LoadDocument(writeFile(t, dir, "bad.json", `{"a":`), "")
	assert.Equal(t, ErrCodeDecode, errorCode(err))

	_, err = LoadDocument(writeFile(t, dir, "ok.json", `{}`), "toml")
	assert.Equal(t, ErrCodeGeneric, errorCode(err))
	assert.Contains(t, err.Error(), "unknown format")
}

func TestLoadSchema(t *testing.T) {
	dir := t.TempDir()

	fromYAML, err := LoadSchema(writeFile(t, dir, "s.yaml", profileSchemaYAML))
	require.NoError(t, err)
	assert.Equal(t, []string{"user", "users"}, fromYAML.Keys())

	fromCUE, err := LoadSchema(writeFile(t, dir, "s.cue", profileSchemaCUE))
	require.NoError(t, err)
	assert.Equal(t, []string{"user"}, fromCUE.Keys())

	_, err = LoadSchema(dir + "/missing.cue")
	assert.Equal(t, ErrCodeNotFound, errorCode(err))

	_, err = LoadSchema(writeFile(t, dir, "bad.yaml", "kind: mapping\nitems:\n  a: {type: nope}\n"))
	require.Error(t, err)
	assert.Equal(t, ErrCodeSchemaLoad, errorCode(err))

	_, err = LoadSchema(writeFile(t, dir, "bad.cue", "schema: {\n\tkind: \"mapping\"\n\titems: {a: {type: \"nope\"}}\n}\n"))
	require.Error(t, err)
	assert.Equal(t, ErrCodeSchemaLoad, errorCode(err))

	var loadErr *LoadError
	require.True(t, errors.As(err, &loadErr))
	assert.True(t, loadErr.Pos.IsValid(), "CUE errors carry a position")
}

func TestErrorCode(t *testing.T) {
	pathErr := func(code flat.ErrorCode) error {
		return fmt.Errorf("op: %w", &flat.PathError{Code: code, Message: "m"})
	}

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"load", &LoadError{Code: ErrCodeDecode}, ErrCodeDecode},
		{"validation", &schema.ValidationError{Code: schema.ErrCodeTypeMismatch}, ErrCodeValidation},
		{"schema path", &store.SchemaPathError{Path: "a"}, ErrCodeInvalidSchemaPath},
		{"not found", pathErr(flat.ErrCodePathNotFound), ErrCodePathNotFound},
		{"invalid path", pathErr(flat.ErrCodeInvalidPath), ErrCodeInvalidPath},
		{"index", pathErr(flat.ErrCodeIndexOutOfRange), ErrCodeIndexOutOfRange},
		{"conflict", pathErr(flat.ErrCodePathConflict), ErrCodePathConflict},
		{"root", pathErr(flat.ErrCodeInvalidRoot), ErrCodeInvalidRoot},
		{"foreign", errors.New("boom"), ErrCodeGeneric},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errorCode(tt.err))
		})
	}
}

func TestErrorDetails(t *testing.T) {
	err := &schema.ValidationError{Code: schema.ErrCodeOutOfRange, Path: "user.age", Message: "too big"}
	assert.Equal(t, map[string]any{"reason": "OutOfRange", "path": "user.age"}, errorDetails(err))

	assert.Nil(t, errorDetails(errors.New("plain")))
}
