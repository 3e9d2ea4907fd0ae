// Package core defines the shared types used across the logwire library.
//
// It provides the Level type with the six record-schema severities, the
// Event type that represents a single log record, and the State type for
// structured payloads. State is a tagged variant: either an ordered
// key/value collection (duplicate keys legal, order preserved) or an
// opaque value carrying only its string representation. Modeling the two
// shapes explicitly keeps every consumer exhaustive at compile time
// instead of relying on runtime type inspection.
//
// Event objects are pooled via sync.Pool to keep the hot path
// allocation-free. Callers get an Event with GetEvent and must return it
// with PutEvent once the handler has consumed it.
//
// Value encodes scalars into fixed-size numeric slots (Int64, Float64)
// wherever possible so that common types like int, bool, and time.Time
// never escape to the heap. The Any slot exists as a fallback for
// arbitrary types but will cause an allocation. StringValue produces an
// invariant, locale-independent rendering used for every serialized
// state field.
package core
