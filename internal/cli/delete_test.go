package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/nestdict/internal/codec"
	"github.com/roach88/nestdict/internal/ir"
)

func TestDelete(t *testing.T) {
	doc, schemaPath := fixtures(t)

	out, err := execute(NewDeleteCommand(&RootOptions{Format: "text"}), doc, "users.[0]", "--schema", schemaPath)
	require.NoError(t, err)

	v, err := codec.Decode([]byte(out), codec.FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, ir.MustFromGo([]any{map[string]any{"name": "Bob", "age": 25}}), v.(ir.Object)["users"])
}

func TestDeleteInPlaceThenGet(t *testing.T) {
	doc, _ := fixtures(t)

	_, err := execute(NewDeleteCommand(&RootOptions{Format: "text"}), doc, "user.tags", "-i")
	require.NoError(t, err)

	out, err := execute(NewGetCommand(&RootOptions{Format: "text"}), doc, "user.tags.[0]")
	require.Error(t, err)
	assert.Contains(t, out, "Error [E103]")
}

func TestDeleteRequiredField(t *testing.T) {
	doc, schemaPath := fixtures(t)

	out, err := execute(NewDeleteCommand(&RootOptions{Format: "json"}), doc, "user.name", "--schema", schemaPath)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, ErrCodeValidation, resp.Error.Code)
	assert.Equal(t, map[string]any{"reason": "RequiredFieldMissing", "path": "user.name"}, resp.Error.Details)
}

func TestDeleteMissing(t *testing.T) {
	doc, _ := fixtures(t)

	out, err := execute(NewDeleteCommand(&RootOptions{Format: "text"}), doc, "user.nickname")
	require.Error(t, err)
	assert.Contains(t, out, "Error [E103]")
}
