package handler

import (
	"github.com/alefranz/logwire/core"
	"github.com/alefranz/logwire/scope"
)

// Handler defines the interface for log record sinks
type Handler interface {
	// Handle consumes one log record together with the scope snapshot
	// captured when it fired. A nil snapshot means no scope tracking is
	// configured.
	Handle(ev *core.Event, scopes scope.Snapshot) error

	// Close closes the handler and releases resources
	Close() error
}

// walker converts a snapshot into the walker interface formatters
// expect, keeping a nil snapshot as a genuinely nil interface so the
// Scopes field stays omitted when no provider exists.
func walker(s scope.Snapshot) core.ScopeWalker {
	if s == nil {
		return nil
	}
	return s
}
