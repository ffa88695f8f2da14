package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateValid(t *testing.T) {
	doc, schemaPath := fixtures(t)

	out, err := execute(NewValidateCommand(&RootOptions{Format: "text"}), doc, "--schema", schemaPath)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Document valid")

	out, err = execute(NewValidateCommand(&RootOptions{Format: "json"}), doc, "-s", schemaPath)
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, map[string]any{"valid": true}, resp.Data)
}

func TestValidateInvalid(t *testing.T) {
	dir := t.TempDir()
	doc := writeFile(t, dir, "doc.json", `{"user": {"name": "Alice", "age": -1}}`)
	schemaPath := writeFile(t, dir, "schema.cue", profileSchemaCUE)

	out, err := execute(NewValidateCommand(&RootOptions{Format: "text"}), doc, "--schema", schemaPath)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "✗ Validation failed")
	assert.Contains(t, out, "user.age\n  OutOfRange:")
}

func TestValidateInvalidJSON(t *testing.T) {
	dir := t.TempDir()
	doc := writeFile(t, dir, "doc.json", `{"user": {"name": "A"}, "users": [{"name": "Ann"}, {"name": "Ann"}]}`)
	schemaPath := writeFile(t, dir, "schema.yaml", profileSchemaYAML)

	out, err := execute(NewValidateCommand(&RootOptions{Format: "json"}), doc, "--schema", schemaPath)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var resp struct {
		Status string           `json:"status"`
		Data   ValidationResult `json:"data"`
		Error  CLIError         `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, ErrCodeValidation, resp.Error.Code)
	assert.False(t, resp.Data.Valid)
	require.Len(t, resp.Data.Errors, 1)
	assert.Equal(t, "DuplicateUniqueValue", resp.Data.Errors[0].Code)
}

func TestValidateRequiresSchema(t *testing.T) {
	doc, _ := fixtures(t)

	_, err := execute(NewValidateCommand(&RootOptions{Format: "text"}), doc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema")
}

func TestValidateBadSchema(t *testing.T) {
	dir := t.TempDir()
	doc := writeFile(t, dir, "doc.json", `{}`)
	schemaPath := writeFile(t, dir, "schema.yaml", "kind: mapping\nitems:\n  a: {type: nope}\n")

	out, err := execute(NewValidateCommand(&RootOptions{Format: "text"}), doc, "--schema", schemaPath)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "Error [E004]")
}
