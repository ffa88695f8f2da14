// Package store provides the path-aware store: nested data addressed by
// keypaths, optionally guarded by a schema.
//
// # Mutation Pipeline
//
// Every Set and Delete runs the same steps and stops at the first failure:
//  1. Parse the keypath (wildcards are read-only)
//  2. Walk the schema tree along the path to find the governing node
//  3. Validate the incoming value (or, for Delete, an absent value) against it
//  4. Compute the candidate document without touching the store
//  5. Validate the candidate against the root schema
//  6. Apply the change to the flat store
//
// A failed mutation leaves the store exactly as it was.
//
// # Schema Walk
//
// A mapping schema consumes a key segment by looking up the declared child.
// A sequence schema consumes an index segment (its value is not checked) and
// continues with the item schema. Unknown keys, a key segment on a sequence,
// an index on a mapping and descending past a field all fail with
// InvalidSchemaPath. A store without a schema accepts any mutation the data
// shape allows.
//
// # Ownership
//
// A Store owns its data: values are copied on the way in and on the way out.
// The schema is shared and never modified. A Store is not safe for
// concurrent use; callers serialize access.
package store
