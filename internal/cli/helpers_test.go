package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

const profileJSON = `{
  "user": {"name": "Alice", "age": 30, "tags": ["admin", "dev"]},
  "users": [{"name": "Ann", "age": 41}, {"name": "Bob", "age": 25}]
}`

const profileSchemaYAML = `
kind: mapping
items:
  user:
    kind: mapping
    items:
      name: {type: string, required: true}
      age: {type: int, min: 0, max: 150}
      tags: {type: array}
  users:
    kind: sequence
    unique_fields: [name]
    items:
      name: {type: string, required: true}
      age: {type: int}
`

const profileSchemaCUE = `
schema: {
	kind: "mapping"
	items: {
		user: {
			kind: "mapping"
			items: {
				name: {type: "string", required: true}
				age: {type: "int", min: 0, max: 150}
				tags: {type: "array"}
			}
		}
	}
}
`

// writeFile creates name under dir and returns its path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// fixtures writes the profile document and schema into a temp dir.
func fixtures(t *testing.T) (doc, schema string) {
	t.Helper()
	dir := t.TempDir()
	return writeFile(t, dir, "profile.json", profileJSON), writeFile(t, dir, "profile.schema.yaml", profileSchemaYAML)
}

// execute runs cmd with args and returns stdout.
func execute(cmd *cobra.Command, args ...string) (string, error) {
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}
