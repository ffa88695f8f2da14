package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/nestdict/internal/codec"
	"github.com/roach88/nestdict/internal/ir"
)

func TestSetPrintsDocument(t *testing.T) {
	doc, _ := fixtures(t)

	out, err := execute(NewSetCommand(&RootOptions{Format: "text"}), doc, "user.age", "31")
	require.NoError(t, err)

	v, err := codec.Decode([]byte(out), codec.FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, ir.Int(31), v.(ir.Object)["user"].(ir.Object)["age"])

	// The input file is untouched without --in-place.
	original, err := os.ReadFile(doc)
	require.NoError(t, err)
	assert.Equal(t, profileJSON, string(original))
}

func TestSetCreatesAncestors(t *testing.T) {
	dir := t.TempDir()
	doc := writeFile(t, dir, "empty.json", `{}`)

	out, err := execute(NewSetCommand(&RootOptions{Format: "text"}), doc, "user.address.[0].city", "Paris")
	require.NoError(t, err)
	assert.Equal(t, `{"user":{"address":[{"city":"Paris"}]}}`+"\n", out)
}

func TestSetInPlace(t *testing.T) {
	dir := t.TempDir()
	doc := writeFile(t, dir, "doc.yaml", "user:\n  name: Alice\n")

	out, err := execute(NewSetCommand(&RootOptions{Format: "text"}), doc, "user.tags", `["a","b"]`, "-i")
	require.NoError(t, err)
	assert.Empty(t, out)

	v, err := codec.ReadFile(doc, "")
	require.NoError(t, err)
	assert.Equal(t, ir.MustFromGo(map[string]any{
		"user": map[string]any{"name": "Alice", "tags": []any{"a", "b"}},
	}), v)
}

func TestSetOutputFile(t *testing.T) {
	doc, _ := fixtures(t)
	target := filepath.Join(t.TempDir(), "out.cbor")

	_, err := execute(NewSetCommand(&RootOptions{Format: "text"}), doc, "user.ratio", "0.5", "-o", target)
	require.NoError(t, err)

	v, err := codec.ReadFile(target, "")
	require.NoError(t, err)
	assert.Equal(t, ir.Float(0.5), v.(ir.Object)["user"].(ir.Object)["ratio"])
}

func TestSetOutputFormat(t *testing.T) {
	doc, _ := fixtures(t)

	out, err := execute(NewSetCommand(&RootOptions{Format: "text"}), doc, "user.name", "Bea", "--output-format", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "name: Bea")

	v, err := codec.Decode([]byte(out), codec.FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, ir.String("Bea"), v.(ir.Object)["user"].(ir.Object)["name"])
}

func TestSetJSONResponse(t *testing.T) {
	dir := t.TempDir()
	doc := writeFile(t, dir, "doc.json", `{"a": 1}`)

	out, err := execute(NewSetCommand(&RootOptions{Format: "json"}), doc, "b", "true")
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, map[string]any{"a": float64(1), "b": true}, resp.Data)
}

func TestSetRejected(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantCode string
		reason   string
	}{
		{"type mismatch", []string{"user.age", "old"}, ErrCodeValidation, "TypeMismatch"},
		{"out of range", []string{"user.age", "200"}, ErrCodeValidation, "OutOfRange"},
		{"undeclared key", []string{"user.email", "a@example.com"}, ErrCodeInvalidSchemaPath, "InvalidSchemaPath"},
		{"duplicate unique", []string{"users.[1].name", "Ann"}, ErrCodeValidation, "DuplicateUniqueValue"},
		{"sparse write", []string{"users.[5]", `{"name":"Cy"}`}, ErrCodeIndexOutOfRange, "IndexOutOfRange"},
		{"wildcard", []string{"users.[].age", "1"}, ErrCodeInvalidPath, "InvalidPath"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, schemaPath := fixtures(t)

			args := append([]string{doc}, tt.args...)
			args = append(args, "--schema", schemaPath, "-i")
			out, err := execute(NewSetCommand(&RootOptions{Format: "json"}), args...)
			require.Error(t, err)
			assert.Equal(t, ExitFailure, GetExitCode(err))

			var resp CLIResponse
			require.NoError(t, json.Unmarshal([]byte(out), &resp))
			assert.Equal(t, "error", resp.Status)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
			assert.Equal(t, tt.reason, resp.Error.Details.(map[string]any)["reason"])

			// A rejected write never reaches the file.
			data, err := os.ReadFile(doc)
			require.NoError(t, err)
			assert.Equal(t, profileJSON, string(data))
		})
	}
}

func TestSetInPlaceAndOutputConflict(t *testing.T) {
	doc, _ := fixtures(t)

	_, err := execute(NewSetCommand(&RootOptions{Format: "text"}), doc, "a", "1", "-i", "-o", "x.json")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "mutually exclusive")
}
