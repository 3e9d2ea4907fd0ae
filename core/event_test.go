package core

import (
	"testing"
	"time"
)

func TestEventPool_Reset(t *testing.T) {
	ev := GetEvent()
	ev.Level = ErrorLevel
	ev.Category = "Worker"
	ev.EventID = 7
	ev.Message = "something happened"
	ev.Err = &ErrorInfo{Message: "boom"}
	st := Pairs(P("k", Int(1)))
	ev.State = &st
	PutEvent(ev)

	got := GetEvent()
	defer PutEvent(got)
	if got.Message != "" || got.Category != "" || got.EventID != 0 || got.Err != nil || got.State != nil {
		t.Errorf("pooled event not reset: %+v", got)
	}
	if got.Level != TraceLevel {
		t.Errorf("pooled event level = %v, want zero value", got.Level)
	}
}

func TestPutEvent_NilIsSafe(t *testing.T) {
	PutEvent(nil) // must not panic
}

func TestCloneEvent_SharesNothingMutable(t *testing.T) {
	ev := GetEvent()
	ev.Level = WarningLevel
	ev.Category = "Worker"
	ev.Message = "original"
	ev.Err = &ErrorInfo{Message: "boom", Type: "*fs.PathError"}
	st := Pairs(P("k", Int(1)))
	ev.State = &st

	cp := CloneEvent(ev)

	// recycling the original must leave the clone fully readable
	PutEvent(ev)
	if cp.Message != "original" || cp.Category != "Worker" || cp.Level != WarningLevel {
		t.Errorf("clone lost scalar fields: %+v", cp)
	}
	if cp.Err == nil || cp.Err.Message != "boom" {
		t.Errorf("clone lost error info: %+v", cp.Err)
	}
	if cp.State == nil || len(cp.State.Pairs) != 1 || cp.State.Pairs[0].Key != "k" {
		t.Errorf("clone lost state: %+v", cp.State)
	}

	// mutating the clone's pairs must not reach the original's backing slice
	cp.State.Pairs[0].Key = "mutated"
	if st.Pairs[0].Key != "k" {
		t.Errorf("clone shares the pair slice: %q", st.Pairs[0].Key)
	}
	PutEvent(cp)
}

func TestCoarseClock(t *testing.T) {
	c := NewCoarseClock(0)
	defer c.Stop()
	time.Sleep(2 * time.Millisecond)

	now := time.Now()
	coarse := c.Now()
	if diff := now.Sub(coarse); diff > 50*time.Millisecond || diff < -50*time.Millisecond {
		t.Errorf("coarse clock too far from time.Now: %v", diff)
	}
}

func TestCoarseClock_StopIsIdempotent(t *testing.T) {
	c := NewCoarseClock(time.Millisecond)
	before := c.Now()
	c.Stop()
	c.Stop() // second Stop must not panic

	// reads after Stop keep serving the last cached value
	if got := c.Now(); got.Before(before) {
		t.Errorf("Now after Stop went backwards: %v < %v", got, before)
	}
	if c.Now().IsZero() {
		t.Error("Now returned zero time after Stop")
	}
}
