// Package record implements the schema-derived record model used by the UDMI
// message family.
//
// A single generic Record replaces the per-type generated classes: each
// message shape is described once by a Descriptor, and every instance of
// that shape is a Record bound to the descriptor.
//
// # Data Model
//
// Scalars:    string, integer, number, boolean, time, any
// Symbols:    enum (closed set of named constants)
// Containers: record (nested), map (string keyed), list
//
// # Descriptors
//
//	Basic := record.NewDescriptor("Basic",
//	    record.Field("username", record.StringType()),
//	    record.Field("password", record.StringType()),
//	)
//
// Field order is fixed when the descriptor is built and defines the
// canonical encoding order. Descriptors are immutable and may be shared by
// any number of goroutines without locking.
//
// # Instances
//
//	r := record.New(Basic)
//	r.Set("username", "alice")
//
// Records are plain value holders with no internal locking. Use Clone before
// handing a record to another goroutine that may mutate it.
//
// # Equality and Hashing
//
// Equal is nominal at the top level (records bound to different descriptors
// are never equal) and structural below it. Hash folds the field hashes in
// declared order with seed 1 and multiplier 31, using Java-compatible 32-bit
// arithmetic so that hash values agree with the generated Java classes.
package record
