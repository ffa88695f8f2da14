package harness

import "github.com/roach88/nestdict/internal/ir"

// Outcome recorded for a step that succeeded.
const OutcomeOK = "ok"

// TraceEvent records one store operation of a scenario run.
type TraceEvent struct {
	Seq  int64  `json:"seq"`
	Op   string `json:"op"`
	Path string `json:"path,omitempty"`

	// Value is the argument of a set.
	Value ir.Value `json:"value,omitempty"`

	// Outcome is OutcomeOK or the store error code.
	Outcome string `json:"outcome"`

	// Result is the value read by get, lookup or has.
	Result ir.Value `json:"result,omitempty"`
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true when every step expectation and assertion held.
	Pass bool `json:"pass"`

	// Trace contains every operation in execution order, construction first.
	Trace []TraceEvent `json:"trace"`

	// Errors contains failed expectations. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	// Final is the canonical document after the last step, or nil when
	// construction failed.
	Final ir.Value `json:"final,omitempty"`

	RunToken string `json:"run_token"`
}

// NewResult creates a new passing result.
func NewResult(runToken string) *Result {
	return &Result{
		Pass:     true,
		Trace:    []TraceEvent{},
		Errors:   []string{},
		RunToken: runToken,
	}
}

// AddError adds a failed expectation and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// AddTrace appends an event to the trace.
func (r *Result) AddTrace(event TraceEvent) {
	r.Trace = append(r.Trace, event)
}

// traceValue converts an event to a value tree for canonical output.
func (e TraceEvent) traceValue() ir.Value {
	obj := ir.Object{
		"seq":     ir.Int(e.Seq),
		"op":      ir.String(e.Op),
		"outcome": ir.String(e.Outcome),
	}
	if e.Path != "" {
		obj["path"] = ir.String(e.Path)
	}
	if e.Value != nil {
		obj["value"] = e.Value
	}
	if e.Result != nil {
		obj["result"] = e.Result
	}
	return obj
}
