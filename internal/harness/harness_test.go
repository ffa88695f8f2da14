package harness

import (
	"bytes"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/nestdict/internal/ir"
	"github.com/roach88/nestdict/internal/testutil"
)

func loadTestScenario(t *testing.T, name string) *Scenario {
	t.Helper()
	scenario, err := LoadScenario(filepath.Join("testdata", "scenarios", name+".yaml"))
	require.NoError(t, err)
	return scenario
}

func TestRun_ProfileEdits(t *testing.T) {
	result, err := Run(loadTestScenario(t, "profile_edits"))
	require.NoError(t, err)

	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.Equal(t, testutil.DefaultRunToken, result.RunToken)
	require.Len(t, result.Trace, 9)
	assert.Equal(t, "construct", result.Trace[0].Op)
	assert.Equal(t, "OutOfRange", result.Trace[3].Outcome)
	assert.Equal(t, ir.MustFromGo(map[string]any{
		"user": map[string]any{"name": "Alice", "age": 31, "tags": []any{"admin", "ops"}},
	}), result.Final)
}

func TestRun_SequenceRoot(t *testing.T) {
	result, err := Run(loadTestScenario(t, "sequence_root"))
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)

	for i, event := range result.Trace {
		assert.Equal(t, int64(i+1), event.Seq)
	}
}

func TestRun_ConstructRejected(t *testing.T) {
	result, err := Run(loadTestScenario(t, "construct_rejected"))
	require.NoError(t, err)

	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.Nil(t, result.Final)
	require.Len(t, result.Trace, 1)
	assert.Equal(t, "RequiredFieldMissing", result.Trace[0].Outcome)
}

func TestRun_UnexpectedOutcomeFails(t *testing.T) {
	scenario, err := ParseScenario([]byte(`
name: unexpected
data: {a: 1}
steps:
  - op: lookup
    path: b
  - op: delete
    path: a
    expect: {error: PathNotFound}
  - op: get
    path: c
    default: 1
    expect: {value: 2}
`))
	require.NoError(t, err)

	result, err := Run(scenario)
	require.NoError(t, err)

	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 3)
	assert.Contains(t, result.Errors[0], "step 0 (lookup b): expected outcome ok, got PathNotFound")
	assert.Contains(t, result.Errors[1], "step 1 (delete a): expected outcome PathNotFound, got ok")
	assert.Contains(t, result.Errors[2], "expected 2, got 1")
}

func TestRun_UnexpectedConstructFailure(t *testing.T) {
	scenario, err := ParseScenario([]byte(`
name: scalar_root
data: 42
steps:
  - op: has
    path: a
`))
	require.NoError(t, err)

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	assert.Contains(t, result.Errors[0], "construct: expected outcome ok, got InvalidRoot")
	assert.Len(t, result.Trace, 1, "steps do not run without a store")
}

func TestRun_NoSchemaIsUnchecked(t *testing.T) {
	scenario, err := ParseScenario([]byte(`
name: unchecked
steps:
  - op: set
    path: a.[0].b
    value: x
  - op: set
    path: a.[0].b
    value: 7
  - op: lookup
    path: a.[].b
    expect: {value: [7]}
assertions:
  - type: document
    expect: {a: [{b: 7}]}
`))
	require.NoError(t, err)

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
}

func TestRun_MissingSchemaFile(t *testing.T) {
	scenario, err := ParseScenario([]byte("name: x\nschema: /nonexistent/schema.yaml\nsteps:\n  - op: has\n    path: a\n"))
	require.NoError(t, err)

	_, err = Run(scenario)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to compile schema")
}

func TestRun_WithLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	scenario := loadTestScenario(t, "profile_edits")
	scenario.RunToken = "run-42"

	result, err := Run(scenario, WithLogger(logger))
	require.NoError(t, err)
	assert.Equal(t, "run-42", result.RunToken)

	out := buf.String()
	assert.Contains(t, out, "scenario=profile_edits")
	assert.Contains(t, out, "run=run-42")
	assert.Contains(t, out, "mutation rejected")
	assert.Contains(t, out, "scenario finished")
}
