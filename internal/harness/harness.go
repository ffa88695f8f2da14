package harness

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/nestdict/internal/compiler"
	"github.com/roach88/nestdict/internal/ir"
	"github.com/roach88/nestdict/internal/schema"
	"github.com/roach88/nestdict/internal/store"
	"github.com/roach88/nestdict/internal/testutil"
)

// Harness executes one scenario against a fresh store.
type Harness struct {
	store  *store.Store
	clock  *testutil.StepClock
	logger *slog.Logger
}

// Option configures a scenario run.
type Option func(*config)

type config struct {
	logger *slog.Logger
}

// WithLogger sends harness and store logs to l. Runs are silent by default.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) { c.logger = l }
}

// Run executes a scenario and returns the result.
//
// Execution flow:
//  1. Compile the schema, if any
//  2. Build the store from the scenario data and check the construct expectation
//  3. Execute steps, checking each expectation
//  4. Evaluate assertions against the final document and trace
//
// Failed expectations are reported in the result. The returned error is
// reserved for scenarios that cannot run at all (unreadable schema,
// undecodable values).
func Run(scenario *Scenario, opts ...Option) (*Result, error) {
	cfg := config{logger: slog.New(slog.NewTextHandler(io.Discard, nil))} // Suppress logs by default
	for _, opt := range opts {
		opt(&cfg)
	}

	runToken := testutil.NewFixedRunGenerator(scenario.RunToken).Generate()
	logger := cfg.logger.With("scenario", scenario.Name, "run", runToken)

	h := &Harness{
		clock:  testutil.NewStepClock(),
		logger: logger,
	}
	result := NewResult(runToken)

	if err := h.construct(scenario, result); err != nil {
		return nil, err
	}
	if h.store == nil {
		// Construction failed; only trace assertions can still hold.
		for _, errMsg := range EvaluateAssertions(result, scenario.Assertions, nil) {
			result.AddError(errMsg)
		}
		return result, nil
	}

	for i, step := range scenario.Steps {
		if err := h.executeStep(i, step, result); err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
	}

	result.Final = h.store.Canonical()

	for _, errMsg := range EvaluateAssertions(result, scenario.Assertions, h.store) {
		result.AddError(errMsg)
	}

	logger.Info("scenario finished", "pass", result.Pass, "steps", len(scenario.Steps))
	return result, nil
}

// construct builds the store and records it as the first trace event.
func (h *Harness) construct(scenario *Scenario, result *Result) error {
	var s *schema.Schema
	if scenario.Schema != "" {
		compiled, err := compiler.CompileFile(scenario.Schema)
		if err != nil {
			return fmt.Errorf("failed to compile schema: %w", err)
		}
		s = compiled
	}

	data, err := decodeNode(&scenario.Data)
	if err != nil {
		return fmt.Errorf("failed to decode data: %w", err)
	}

	opts := []store.Option{store.WithLogger(h.logger)}
	if s != nil {
		opts = append(opts, store.WithSchema(s))
	}
	st, buildErr := store.New(data, opts...)

	event := TraceEvent{Seq: h.clock.Next(), Op: "construct", Outcome: outcome(buildErr)}
	result.AddTrace(event)

	want := ""
	if scenario.Construct != nil {
		want = scenario.Construct.Error
	}
	if event.Outcome != outcomeFor(want) {
		result.AddError(fmt.Sprintf("construct: expected outcome %s, got %s (%v)", outcomeFor(want), event.Outcome, buildErr))
	}

	if buildErr == nil {
		h.store = st
	}
	return nil
}

// executeStep runs one operation, traces it and checks its expectation.
func (h *Harness) executeStep(index int, step Step, result *Result) error {
	value, err := decodeNode(&step.Value)
	if err != nil {
		return fmt.Errorf("failed to decode value: %w", err)
	}

	event := TraceEvent{
		Seq:   h.clock.Next(),
		Op:    step.Op,
		Path:  step.Path,
		Value: value,
	}

	var opErr error
	switch step.Op {
	case OpSet:
		opErr = h.store.Set(step.Path, value)
	case OpDelete:
		opErr = h.store.Delete(step.Path)
	case OpGet:
		def, err := decodeNode(&step.Default)
		if err != nil {
			return fmt.Errorf("failed to decode default: %w", err)
		}
		event.Result = h.store.Get(step.Path, def)
	case OpLookup:
		event.Result, opErr = h.store.Lookup(step.Path)
	case OpHas:
		event.Result = ir.Bool(h.store.Has(step.Path))
	default:
		return fmt.Errorf("unknown op %q", step.Op)
	}
	event.Outcome = outcome(opErr)
	result.AddTrace(event)

	label := fmt.Sprintf("step %d (%s %s)", index, step.Op, step.Path)

	want := ""
	if step.Expect != nil {
		want = step.Expect.Error
	}
	if event.Outcome != outcomeFor(want) {
		result.AddError(fmt.Sprintf("%s: expected outcome %s, got %s", label, outcomeFor(want), event.Outcome))
	}

	if step.Expect != nil && !step.Expect.Value.IsZero() && opErr == nil {
		expected, err := decodeNode(&step.Expect.Value)
		if err != nil {
			return fmt.Errorf("failed to decode expected value: %w", err)
		}
		if !ir.Equal(expected, event.Result) {
			result.AddError(fmt.Sprintf("%s: expected %s, got %s", label, render(expected), render(event.Result)))
		}
	}

	h.logger.Debug("step completed",
		"step", index,
		"op", step.Op,
		"path", step.Path,
		"outcome", event.Outcome,
	)
	return nil
}

// outcome renders an operation error as its store code.
func outcome(err error) string {
	if err == nil {
		return OutcomeOK
	}
	if code := store.Code(err); code != "" {
		return code
	}
	return err.Error()
}

func outcomeFor(code string) string {
	if code == "" {
		return OutcomeOK
	}
	return code
}

// render formats a value as canonical JSON for failure messages.
func render(v ir.Value) string {
	if v == nil {
		return "<absent>"
	}
	s, err := ir.CanonicalString(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return s
}
