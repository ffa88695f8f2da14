// Package ir defines the value tree that every other package operates on.
//
// Nested documents are represented as a sealed Value interface with seven
// cases: Null, String, Int, Float, Bool, Array and Object. ir imports nothing
// internal; keypath, flat, schema and store all build on it.
//
// Key constraints:
//   - A nil Value is the "no value" sentinel and never appears inside an
//     Array or Object
//   - Object iteration that must be deterministic uses SortedKeys (RFC 8785)
//   - MarshalCanonical is the only serialization used for value identity
package ir
