// Package schema declares constraints on nested data.
//
// A Field constrains one value: its kind, whether it is required, numeric
// bounds, length bounds, a pattern and a choice set. A Schema constrains a
// mapping (one Node per key) or a sequence of mappings (one Node per item
// key, plus item-count bounds and unique item fields).
//
// VALIDATION ORDER:
//
// Field checks run in a fixed order and stop at the first failure:
//  1. required (absent or null with Required set)
//  2. type (exact kind, Int and Float are distinct)
//  3. min / max (numeric kinds)
//  4. min_length / max_length (runes for strings, elements otherwise)
//  5. pattern (anchored at the start of the string)
//  6. choices (structural equality)
//
// Sequence schemas check item count, then uniqueness, then each item.
// Keys present in data but not declared in the schema are ignored.
//
// Fields and Schemas are immutable after construction. Inconsistent
// configuration is reported as *ConstructionError; data that fails a
// constraint as *ValidationError carrying an ErrorCode and the path of the
// offending value.
package schema
