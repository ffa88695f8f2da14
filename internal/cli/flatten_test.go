package cli

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlatten(t *testing.T) {
	dir := t.TempDir()
	doc := writeFile(t, dir, "doc.json", `{"a": {"b": 1}, "c": [true]}`)

	out, err := execute(NewFlattenCommand(&RootOptions{Format: "text"}), doc)
	require.NoError(t, err)
	assert.Equal(t, []string{
		`a = {"b":1}`,
		`a.b = 1`,
		`c = [true]`,
		`c.[0] = true`,
	}, strings.Split(strings.TrimSpace(out), "\n"))
}

func TestFlattenLeavesJSON(t *testing.T) {
	dir := t.TempDir()
	doc := writeFile(t, dir, "doc.yaml", "a:\n  b: 1\nc:\n  - true\n")

	out, err := execute(NewFlattenCommand(&RootOptions{Format: "json"}), doc, "--leaves")
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, []any{
		map[string]any{"path": "a.b", "value": float64(1)},
		map[string]any{"path": "c.[0]", "value": true},
	}, resp.Data)
}

func TestFlattenScalarRoot(t *testing.T) {
	dir := t.TempDir()
	doc := writeFile(t, dir, "doc.json", `42`)

	out, err := execute(NewFlattenCommand(&RootOptions{Format: "text"}), doc)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "Error [E107]")
}

func TestFlattenInputFormat(t *testing.T) {
	dir := t.TempDir()
	doc := writeFile(t, dir, "doc.txt", "// settings\n{\"port\": 8080,}\n")

	out, err := execute(NewFlattenCommand(&RootOptions{Format: "text"}), doc, "--input-format", "jsonc")
	require.NoError(t, err)
	assert.Equal(t, "port = 8080\n", out)

	_, err = execute(NewFlattenCommand(&RootOptions{Format: "text"}), doc, "--input-format", "toml")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
