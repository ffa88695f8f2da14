// Package codec reads and writes nested documents as value trees.
//
// Supported formats:
//   - json: parsed with ojg, written as RFC 8785 canonical JSON
//   - jsonc: JSON with comments and trailing commas, written as canonical JSON
//   - yaml: yaml.v3, mapping keys written in sorted order
//   - cbor: Core Deterministic Encoding (RFC 8949 §4.2)
//
// Whole floats do not survive JSON or YAML: 7.0 is written as 7 and read
// back as an int. CBOR preserves the distinction.
package codec
