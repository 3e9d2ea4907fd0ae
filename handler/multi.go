package handler

import (
	"github.com/alefranz/logwire/core"
	"github.com/alefranz/logwire/scope"
)

// MultiHandler sends log records to multiple handlers
type MultiHandler struct {
	handlers []Handler
	// copyFor marks children that keep or recycle records on their own
	// (async handlers, or handlers that don't declare their ownership).
	// Those children get a private copy of each event so they can never
	// return a record to the pool while a sibling is still reading it.
	copyFor []bool
}

// NewMultiHandler creates a new multi-handler. Children that process
// records asynchronously receive their own copy of each event, so any
// mix of synchronous and asynchronous children is safe.
func NewMultiHandler(handlers ...Handler) *MultiHandler {
	m := &MultiHandler{
		handlers: handlers,
		copyFor:  make([]bool, len(handlers)),
	}
	for i, h := range handlers {
		rc, ok := h.(interface{ CanRecycleEvent() bool })
		m.copyFor[i] = !ok || !rc.CanRecycleEvent()
	}
	return m
}

// Handle processes a log record by sending it to all handlers
func (m *MultiHandler) Handle(ev *core.Event, scopes scope.Snapshot) error {
	var lastErr error
	for i, h := range m.handlers {
		rec := ev
		if m.copyFor[i] {
			rec = core.CloneEvent(ev)
		}
		if err := h.Handle(rec, scopes); err != nil {
			lastErr = err
		}
	}
	return lastErr
}

// CanRecycleEvent returns true: the original event is only ever seen by
// children that release it before Handle returns, so the caller may
// recycle it immediately.
func (m *MultiHandler) CanRecycleEvent() bool {
	return true
}

// Close closes all handlers
func (m *MultiHandler) Close() error {
	var lastErr error
	for _, h := range m.handlers {
		if err := h.Close(); err != nil {
			lastErr = err
		}
	}
	return lastErr
}
