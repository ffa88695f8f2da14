package harness

import (
	"fmt"
	"strings"

	"github.com/roach88/nestdict/internal/ir"
	"github.com/roach88/nestdict/internal/store"
)

// AssertionError is returned when an assertion fails.
// It includes the trace to help debug the failure.
type AssertionError struct {
	Type     string       // Assertion type for categorization
	Expected string       // Human-readable expected outcome
	Actual   string       // Human-readable actual outcome
	Trace    []TraceEvent // Full trace for debugging context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	fmt.Fprintf(&buf, "\nFull trace:\n")
	for _, event := range e.Trace {
		fmt.Fprintf(&buf, "  [%d] %s %s -> %s\n", event.Seq, event.Op, event.Path, event.Outcome)
	}

	return buf.String()
}

// assertValue checks that the path resolves to the expected value.
func assertValue(trace []TraceEvent, st *store.Store, assertion Assertion) error {
	expected, err := decodeNode(&assertion.Expect)
	if err != nil {
		return fmt.Errorf("value: failed to decode expect: %w", err)
	}

	actual, lookupErr := st.Lookup(assertion.Path)
	if lookupErr != nil {
		return &AssertionError{
			Type:     AssertValue,
			Expected: fmt.Sprintf("%s = %s", assertion.Path, render(expected)),
			Actual:   store.Code(lookupErr),
			Trace:    trace,
		}
	}
	if !ir.Equal(expected, actual) {
		return &AssertionError{
			Type:     AssertValue,
			Expected: fmt.Sprintf("%s = %s", assertion.Path, render(expected)),
			Actual:   fmt.Sprintf("%s = %s", assertion.Path, render(actual)),
			Trace:    trace,
		}
	}
	return nil
}

// assertAbsent checks that the path does not resolve.
func assertAbsent(trace []TraceEvent, st *store.Store, assertion Assertion) error {
	if !st.Has(assertion.Path) {
		return nil
	}
	return &AssertionError{
		Type:     AssertAbsent,
		Expected: fmt.Sprintf("%s absent", assertion.Path),
		Actual:   fmt.Sprintf("%s = %s", assertion.Path, render(st.Get(assertion.Path, nil))),
		Trace:    trace,
	}
}

// assertDocument compares the whole final document.
func assertDocument(result *Result, assertion Assertion) error {
	expected, err := decodeNode(&assertion.Expect)
	if err != nil {
		return fmt.Errorf("document: failed to decode expect: %w", err)
	}
	if ir.Equal(expected, result.Final) {
		return nil
	}
	return &AssertionError{
		Type:     AssertDocument,
		Expected: render(expected),
		Actual:   render(result.Final),
		Trace:    result.Trace,
	}
}

// assertOutcomeCount checks how many traced operations ended with an outcome.
func assertOutcomeCount(trace []TraceEvent, assertion Assertion) error {
	count := 0
	for _, event := range trace {
		if event.Outcome == assertion.Outcome {
			count++
		}
	}

	if count != assertion.Count {
		return &AssertionError{
			Type:     AssertOutcomeCount,
			Expected: fmt.Sprintf("%d operations with outcome %s", assertion.Count, assertion.Outcome),
			Actual:   fmt.Sprintf("%d operations", count),
			Trace:    trace,
		}
	}
	return nil
}

// EvaluateAssertions evaluates all assertions against the result.
// Returns a slice of error messages for failed assertions. st is nil when
// construction failed; document assertions then fail.
func EvaluateAssertions(result *Result, assertions []Assertion, st *store.Store) []string {
	var errors []string

	for i, assertion := range assertions {
		var err error

		switch assertion.Type {
		case AssertOutcomeCount:
			err = assertOutcomeCount(result.Trace, assertion)
		case AssertValue, AssertAbsent, AssertDocument:
			if st == nil {
				err = fmt.Errorf("assertion[%d]: %s requires a constructed store", i, assertion.Type)
				break
			}
			switch assertion.Type {
			case AssertValue:
				err = assertValue(result.Trace, st, assertion)
			case AssertAbsent:
				err = assertAbsent(result.Trace, st, assertion)
			default:
				err = assertDocument(result, assertion)
			}
		default:
			err = fmt.Errorf("assertion[%d]: unknown assertion type %q", i, assertion.Type)
		}

		if err != nil {
			errors = append(errors, err.Error())
		}
	}

	return errors
}
