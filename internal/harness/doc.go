// Package harness runs scripted store scenarios and compares their traces
// against golden files.
//
// # Scenario Format
//
// Scenarios are YAML files:
//
//	name: profile_edits
//	description: "Edits to a validated profile"
//	schema: schemas/profile.yaml   # optional, relative to this file
//	data:
//	  user: {name: Alice, age: 30}
//	construct:                     # optional; omitted means construction succeeds
//	  error: TypeMismatch
//	steps:
//	  - op: set
//	    path: user.age
//	    value: 31
//	  - op: set
//	    path: user.age
//	    value: old
//	    expect: {error: TypeMismatch}
//	  - op: get
//	    path: user.nickname
//	    default: none
//	    expect: {value: none}
//	assertions:
//	  - type: value
//	    path: user.age
//	    expect: 31
//	  - type: absent
//	    path: user.nickname
//	  - type: outcome_count
//	    outcome: TypeMismatch
//	    count: 1
//
// Operations are set, delete, get, lookup and has. A step without expect
// must succeed; expect.error names the store error code the step must fail
// with; expect.value checks the result of a read.
//
// # Assertion Types
//
//   - value: a path holds a value in the final document
//   - absent: a path does not resolve in the final document
//   - document: the final document equals the expected one
//   - outcome_count: exactly N operations ended with an outcome ("ok" or a code)
//
// # Deterministic Runs
//
// Each run gets a fresh store, a step clock starting at 1 and a fixed run
// token (run_token, or testutil.DefaultRunToken), so the snapshot written
// by Snapshot is byte-identical across runs.
package harness
