// Package nestdict provides path-addressable access to nested documents.
//
// Nested data (mappings and sequences of arbitrary depth) is addressed with
// flat keypaths such as "user.address.[0].city". Mapping keys are separated
// by dots, sequence indexes are written "[N]", and a single "[]" segment
// collects a value from every element of a sequence:
//
//	st, _ := nestdict.New(nestdict.Object{"users": nestdict.Array{
//		nestdict.Object{"name": nestdict.String("Ann")},
//	}})
//	st.Get("users.[0].name", nil) // "Ann"
//	st.Get("users.[].name", nil)  // ["Ann"]
//
// A Store may be guarded by a Schema. Schemas are trees of Fields (typed
// leaves with required, range, length, pattern and choice constraints) and
// nested Schemas (mappings, or sequences with item-count bounds and unique
// item fields). Every construction, Set and Delete is validated, and a
// rejected mutation leaves the store unchanged.
//
// Schemas can be built in Go or loaded from CUE and YAML documents with
// LoadSchema.
package nestdict
