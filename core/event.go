package core

import (
	"fmt"
	"sync"
)

// Event represents a single log record before serialization
type Event struct {
	Level    Level
	Category string
	EventID  int
	// Message is the pre-rendered message text. An empty message is
	// treated as absent: it serializes as JSON null, and an event with
	// no message and no error is suppressed entirely.
	Message string
	Err     *ErrorInfo
	State   *State
}

// ErrorInfo describes an error attached to a log record
type ErrorInfo struct {
	Message string
	Type    string
	// Trace is the raw stack text, one frame per line. Formatters split
	// it into an array at serialization time.
	Trace   string
	HResult int32
}

// NewErrorInfo captures err into an ErrorInfo. The dynamic type name is
// recorded so records remain useful after the error value is gone.
func NewErrorInfo(err error) *ErrorInfo {
	if err == nil {
		return nil
	}
	return &ErrorInfo{
		Message: err.Error(),
		Type:    fmt.Sprintf("%T", err),
	}
}

// CloneEvent returns a pooled copy of ev that shares no mutable memory
// with the original, so one copy can be recycled while the other is
// still being formatted.
func CloneEvent(ev *Event) *Event {
	cp := GetEvent()
	*cp = *ev
	if ev.Err != nil {
		errCopy := *ev.Err
		cp.Err = &errCopy
	}
	if ev.State != nil {
		stCopy := *ev.State
		if len(ev.State.Pairs) > 0 {
			stCopy.Pairs = append([]Pair(nil), ev.State.Pairs...)
		}
		cp.State = &stCopy
	}
	return cp
}

// eventPool is a pool of Event objects to reduce allocations
var eventPool = sync.Pool{
	New: func() interface{} {
		return &Event{}
	},
}

// GetEvent retrieves a zeroed Event from the pool
func GetEvent() *Event {
	e := eventPool.Get().(*Event)
	return e
}

// PutEvent returns an Event to the pool. The event must not be used
// after it is put back.
func PutEvent(e *Event) {
	if e == nil {
		return
	}
	// Full reset; GC handles reference cleanup
	*e = Event{}
	eventPool.Put(e)
}
