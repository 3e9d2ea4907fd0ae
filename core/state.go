package core

import (
	"fmt"
	"strconv"
	"time"
)

// ValueType represents the type of a state value
type ValueType uint8

const (
	StringType ValueType = iota
	IntType
	Int64Type
	Float64Type
	BoolType
	TimeType
	DurationType
	NullType
	AnyType
)

// Value is the payload of a single state pair. Scalars are encoded into
// fixed-size numeric slots (Int64, Float64) so that common types never
// escape to the heap; Any exists as a fallback for arbitrary types.
type Value struct {
	Type    ValueType
	Int64   int64
	Float64 float64
	Str     string
	Any     interface{}
}

// Constructors for the common value types.

// String creates a string value
func String(val string) Value {
	return Value{Type: StringType, Str: val}
}

// Int creates an int value
func Int(val int) Value {
	return Value{Type: IntType, Int64: int64(val)}
}

// Int64 creates an int64 value
func Int64(val int64) Value {
	return Value{Type: Int64Type, Int64: val}
}

// Float64 creates a float64 value
func Float64(val float64) Value {
	return Value{Type: Float64Type, Float64: val}
}

// Bool creates a bool value
func Bool(val bool) Value {
	int64Val := int64(0)
	if val {
		int64Val = 1
	}
	return Value{Type: BoolType, Int64: int64Val}
}

// Time creates a time value
func Time(val time.Time) Value {
	return Value{Type: TimeType, Int64: val.UnixNano()}
}

// Duration creates a duration value
func Duration(val time.Duration) Value {
	return Value{Type: DurationType, Int64: int64(val)}
}

// Null creates an explicit null value. Null pairs serialize as JSON null,
// not as an omitted field.
func Null() Value {
	return Value{Type: NullType}
}

// Any creates a value holding an arbitrary type. A nil val is promoted to
// an explicit null.
func Any(val interface{}) Value {
	if val == nil {
		return Null()
	}
	return Value{Type: AnyType, Any: val}
}

// StringValue returns the invariant string representation of the value.
// The output is locale-independent (strconv and RFC3339, never locale
// formatting) so that records compare equal across machines. Conversion
// never fails: fmt degrades panicking Stringers to a placeholder rather
// than unwinding the record.
func (v Value) StringValue() string {
	switch v.Type {
	case StringType:
		return v.Str
	case IntType, Int64Type:
		return strconv.FormatInt(v.Int64, 10)
	case Float64Type:
		return strconv.FormatFloat(v.Float64, 'f', -1, 64)
	case BoolType:
		return strconv.FormatBool(v.Int64 == 1)
	case TimeType:
		return time.Unix(0, v.Int64).UTC().Format(time.RFC3339)
	case DurationType:
		return time.Duration(v.Int64).String()
	case NullType:
		return ""
	case AnyType:
		return fmt.Sprintf("%v", v.Any)
	default:
		return ""
	}
}

// Pair is a single key/value element of a state payload. Keys are not
// required to be unique; insertion order is preserved through to the
// serialized record.
type Pair struct {
	Key   string
	Value Value
}

// P is shorthand for constructing a Pair.
func P(key string, val Value) Pair {
	return Pair{Key: key, Value: val}
}

// StateKind discriminates the two shapes a state payload can take.
type StateKind uint8

const (
	// KindPairs marks an ordered key/value collection; every pair becomes
	// a field of the serialized state object.
	KindPairs StateKind = iota
	// KindOpaque marks a payload with only a string representation; it
	// becomes a single string field.
	KindOpaque
)

// State is the payload attached to a log record or scope frame. It is an
// explicit tagged variant so call sites handle both shapes exhaustively
// instead of falling back to runtime type inspection.
type State struct {
	Kind  StateKind
	Pairs []Pair
	Text  string
}

// Pairs builds a key/value state payload.
func Pairs(pairs ...Pair) State {
	return State{Kind: KindPairs, Pairs: pairs}
}

// Opaque builds a state payload carrying only a display string.
func Opaque(text string) State {
	return State{Kind: KindOpaque, Text: text}
}

// ScopeWalker yields the scope frames active for a log record, invoking
// fn once per frame, outermost first. Implementations must present a
// stable view: the frames seen by fn may not change while the walk runs.
type ScopeWalker interface {
	WalkScopes(fn func(State))
}
