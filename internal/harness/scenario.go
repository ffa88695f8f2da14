package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/roach88/nestdict/internal/ir"
)

// Scenario is a scripted sequence of store operations with expected
// outcomes, run against one store built from Data and Schema.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	Description string `yaml:"description"`

	// Schema is an optional schema file (.cue, .yaml or .json). Relative
	// paths resolve against the scenario file's directory.
	Schema string `yaml:"schema,omitempty"`

	// Data is the initial document. Omitted data starts an empty store.
	Data yaml.Node `yaml:"data,omitempty"`

	// Construct is the expected outcome of building the store. Nil means
	// construction must succeed.
	Construct *Expect `yaml:"construct,omitempty"`

	// Steps run in order against the store.
	Steps []Step `yaml:"steps"`

	// Assertions are evaluated after the last step.
	Assertions []Assertion `yaml:"assertions,omitempty"`

	// RunToken tags the trace. Defaults to testutil.DefaultRunToken so
	// golden files stay deterministic.
	RunToken string `yaml:"run_token,omitempty"`
}

// Step is one store operation.
type Step struct {
	// Op is one of set, delete, get, lookup or has.
	Op string `yaml:"op"`

	Path string `yaml:"path"`

	// Value is the argument of a set. An explicit null sets Null.
	Value yaml.Node `yaml:"value,omitempty"`

	// Default is returned by get when the path is absent.
	Default yaml.Node `yaml:"default,omitempty"`

	// Expect checks the outcome. Nil means the step must succeed.
	Expect *Expect `yaml:"expect,omitempty"`
}

// Expect specifies the outcome of a step.
type Expect struct {
	// Error is the expected store error code, e.g. "TypeMismatch".
	Error string `yaml:"error,omitempty"`

	// Value is the expected result of get, lookup or has.
	Value yaml.Node `yaml:"value,omitempty"`
}

// Assertion validates the trace or the final document.
type Assertion struct {
	// Type specifies the assertion type:
	// - "value": Path holds Expect in the final document
	// - "absent": Path does not resolve in the final document
	// - "document": the final document equals Expect
	// - "outcome_count": exactly Count steps ended with Outcome
	Type string `yaml:"type"`

	Path string `yaml:"path,omitempty"`

	Expect yaml.Node `yaml:"expect,omitempty"`

	// Outcome is "ok" or an error code (used by outcome_count).
	Outcome string `yaml:"outcome,omitempty"`

	Count int `yaml:"count,omitempty"`
}

// Step operations.
const (
	OpSet    = "set"
	OpDelete = "delete"
	OpGet    = "get"
	OpLookup = "lookup"
	OpHas    = "has"
)

// Assertion type constants.
const (
	AssertValue        = "value"
	AssertAbsent       = "absent"
	AssertDocument     = "document"
	AssertOutcomeCount = "outcome_count"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	scenario, err := ParseScenario(data)
	if err != nil {
		return nil, err
	}

	if scenario.Schema != "" && !filepath.IsAbs(scenario.Schema) {
		scenario.Schema = filepath.Join(filepath.Dir(path), scenario.Schema)
	}
	return scenario, nil
}

// ParseScenario parses scenario YAML. Schema paths are left as written.
func ParseScenario(data []byte) (*Scenario, error) {
	// Strict field validation catches typos like "assertion:" vs "assertions:"
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// validateScenario checks required fields and per-op constraints.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if len(s.Steps) == 0 && len(s.Assertions) == 0 && s.Construct == nil {
		return fmt.Errorf("scenario has no steps, assertions or construct expectation")
	}
	if s.Construct != nil && !s.Construct.Value.IsZero() {
		return fmt.Errorf("construct: only error may be expected")
	}

	for i, step := range s.Steps {
		if err := validateStep(step, i); err != nil {
			return err
		}
	}
	for i, a := range s.Assertions {
		if err := validateAssertion(a, i); err != nil {
			return err
		}
	}
	return nil
}

func validateStep(step Step, index int) error {
	switch step.Op {
	case OpSet:
		if step.Value.IsZero() {
			return fmt.Errorf("steps[%d]: value is required for set", index)
		}
	case OpDelete, OpGet, OpLookup, OpHas:
		if !step.Value.IsZero() {
			return fmt.Errorf("steps[%d]: value is only allowed for set", index)
		}
	case "":
		return fmt.Errorf("steps[%d]: op is required", index)
	default:
		return fmt.Errorf("steps[%d]: unknown op %q", index, step.Op)
	}

	if !step.Default.IsZero() && step.Op != OpGet {
		return fmt.Errorf("steps[%d]: default is only allowed for get", index)
	}
	if step.Expect == nil {
		return nil
	}
	if step.Expect.Error != "" && !step.Expect.Value.IsZero() {
		return fmt.Errorf("steps[%d]: expect either an error or a value", index)
	}
	if !step.Expect.Value.IsZero() && (step.Op == OpSet || step.Op == OpDelete) {
		return fmt.Errorf("steps[%d]: %s does not produce a value", index, step.Op)
	}
	return nil
}

func validateAssertion(a Assertion, index int) error {
	switch a.Type {
	case AssertValue:
		if a.Expect.IsZero() {
			return fmt.Errorf("assertions[%d]: expect is required for value", index)
		}
	case AssertAbsent:
		if a.Path == "" {
			return fmt.Errorf("assertions[%d]: path is required for absent", index)
		}
	case AssertDocument:
		if a.Expect.IsZero() {
			return fmt.Errorf("assertions[%d]: expect is required for document", index)
		}
	case AssertOutcomeCount:
		if a.Outcome == "" {
			return fmt.Errorf("assertions[%d]: outcome is required for outcome_count", index)
		}
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for outcome_count", index)
		}
	case "":
		return fmt.Errorf("assertions[%d]: type is required", index)
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}
	return nil
}

// decodeNode converts a YAML node into a value tree. A zero node (key not
// written) is absent; an explicit null is Null.
func decodeNode(node *yaml.Node) (ir.Value, error) {
	if node.IsZero() {
		return nil, nil
	}
	var raw any
	if err := node.Decode(&raw); err != nil {
		return nil, err
	}
	return ir.FromGo(raw)
}
