// Package formatter serializes log records into bytes.
//
// The Formatter interface takes one record plus a scope walker and
// writes a finished line to an io.Writer sink. Both built-in
// formatters (JSONFormatter and TextFormatter) build the line
// incrementally inside a pooled buffer from package buffer and flush it
// with a single Write call, so a record either appears on the sink in
// full or not at all. Partial output is never flushed, even when
// buffer growth fails mid-record.
//
// JSONFormatter emits one JSON object per record with a fixed field
// order: Timestamp (omitted unless a layout is configured), EventId,
// LogLevel, Category, Message, Exception, State, and Scopes. State
// payloads in key/value form become a nested State object whose values
// are invariant strings; opaque payloads become a single string field.
// Scope frames are emitted as an array, outermost first. JSON is built
// by hand with the Append-style functions (time.AppendFormat,
// strconv.AppendInt) and a streaming escape loop; encoding/json is
// never on the hot path.
//
// Serialization failures inside one record abort only that record. A
// record whose message is empty and which carries no error is
// suppressed before a buffer is even acquired. An unrecognized level
// panics: it cannot come from this module's constructors and therefore
// marks a caller bug.
package formatter
