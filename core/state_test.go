package core

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestValue_StringValue(t *testing.T) {
	ts := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

	tests := []struct {
		name  string
		value Value
		want  string
	}{
		{"string", String("hello"), "hello"},
		{"int", Int(123), "123"},
		{"negative int", Int(-7), "-7"},
		{"int64", Int64(1 << 40), "1099511627776"},
		{"float", Float64(1.5), "1.5"},
		{"float no exponent", Float64(1000000.0), "1000000"},
		{"bool true", Bool(true), "true"},
		{"bool false", Bool(false), "false"},
		{"time", Time(ts), "2026-03-14T09:26:53Z"},
		{"duration", Duration(1500 * time.Millisecond), "1.5s"},
		{"null", Null(), ""},
		{"any", Any(struct{ A int }{A: 3}), "{3}"},
		{"any nil promotes to null", Any(nil), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.value.StringValue(); got != tt.want {
				t.Errorf("StringValue() = %q, want %q", got, tt.want)
			}
		})
	}
}

type faultyStringer struct{}

func (faultyStringer) String() string { panic("unprintable") }

// A value whose String method panics must degrade to a placeholder
// instead of taking the whole record down.
func TestValue_StringValue_PanickingStringer(t *testing.T) {
	var got string
	func() {
		defer func() {
			if r := recover(); r != nil {
				t.Fatalf("StringValue panicked: %v", r)
			}
		}()
		got = Any(faultyStringer{}).StringValue()
	}()
	if !strings.Contains(got, "PANIC") {
		t.Errorf("StringValue() = %q, want a degraded placeholder", got)
	}
}

func TestAny_NilIsNull(t *testing.T) {
	if v := Any(nil); v.Type != NullType {
		t.Errorf("Any(nil).Type = %d, want NullType", v.Type)
	}
}

func TestState_Constructors(t *testing.T) {
	kv := Pairs(P("a", Int(1)), P("b", String("two")))
	if kv.Kind != KindPairs {
		t.Fatalf("Pairs() kind = %d, want KindPairs", kv.Kind)
	}
	if len(kv.Pairs) != 2 || kv.Pairs[0].Key != "a" || kv.Pairs[1].Key != "b" {
		t.Errorf("Pairs() did not preserve insertion order: %+v", kv.Pairs)
	}

	op := Opaque("just text")
	if op.Kind != KindOpaque || op.Text != "just text" {
		t.Errorf("Opaque() = %+v", op)
	}
}

func TestState_DuplicateKeysPreserved(t *testing.T) {
	s := Pairs(P("k", Int(1)), P("k", Int(2)))
	if len(s.Pairs) != 2 {
		t.Fatalf("duplicate keys collapsed: %+v", s.Pairs)
	}
	if s.Pairs[0].Value.StringValue() != "1" || s.Pairs[1].Value.StringValue() != "2" {
		t.Errorf("duplicate key values reordered: %+v", s.Pairs)
	}
}

func TestNewErrorInfo(t *testing.T) {
	err := errors.New("boom")
	info := NewErrorInfo(err)
	if info.Message != "boom" {
		t.Errorf("Message = %q, want %q", info.Message, "boom")
	}
	if info.Type != "*errors.errorString" {
		t.Errorf("Type = %q, want %q", info.Type, "*errors.errorString")
	}
	if NewErrorInfo(nil) != nil {
		t.Error("NewErrorInfo(nil) should be nil")
	}
}
