package logger

import (
	"github.com/alefranz/logwire/core"
	"github.com/alefranz/logwire/handler"
	"github.com/alefranz/logwire/scope"
)

// Factory creates category loggers sharing one handler, level filter,
// and scope provider (immutable once built)
type Factory struct {
	handler      handler.Handler
	level        core.Level
	scopes       *scope.Provider
	recycleEvent bool
}

// Builder provides a fluent API for building Factory instances
type Builder struct {
	handler      handler.Handler
	level        core.Level
	scopes       *scope.Provider
	recycleEvent bool
}

// NewBuilder creates a new factory builder
func NewBuilder() *Builder {
	return &Builder{
		level: core.InformationLevel, // Default level
	}
}

// WithHandler sets the handler
func (b *Builder) WithHandler(h handler.Handler) *Builder {
	b.handler = h
	// Pre-compute recycleEvent to avoid interface assertion per record
	if rc, ok := h.(interface{ CanRecycleEvent() bool }); ok {
		b.recycleEvent = rc.CanRecycleEvent()
	} else {
		b.recycleEvent = false
	}
	return b
}

// WithLevel sets the minimum level
func (b *Builder) WithLevel(level core.Level) *Builder {
	b.level = level
	return b
}

// WithScopes sets the scope provider attached to every record
func (b *Builder) WithScopes(p *scope.Provider) *Builder {
	b.scopes = p
	return b
}

// Build creates the Factory instance
func (b *Builder) Build() *Factory {
	return &Factory{
		handler:      b.handler,
		level:        b.level,
		scopes:       b.scopes,
		recycleEvent: b.recycleEvent,
	}
}

// Logger returns a logger bound to the given category
func (f *Factory) Logger(category string) *Logger {
	return &Logger{factory: f, category: category}
}

// Close closes the factory's handler
func (f *Factory) Close() error {
	if f.handler != nil {
		return f.handler.Close()
	}
	return nil
}

// Logger emits records under one category
type Logger struct {
	factory  *Factory
	category string
}

// Enabled reports whether records at the given level would be emitted
func (l *Logger) Enabled(level core.Level) bool {
	return level >= l.factory.level
}

// Log emits a record at the specified level
func (l *Logger) Log(level core.Level, eventID int, msg string, pairs ...core.Pair) {
	// Level check - exit early BEFORE any allocations
	if level < l.factory.level {
		return
	}
	l.log(level, eventID, msg, nil, pairs)
}

// LogError emits a record carrying an error
func (l *Logger) LogError(level core.Level, eventID int, err error, msg string, pairs ...core.Pair) {
	if level < l.factory.level {
		return
	}
	l.log(level, eventID, msg, core.NewErrorInfo(err), pairs)
}

// log builds the pooled event, captures the scope snapshot, and hands
// both to the handler
func (l *Logger) log(level core.Level, eventID int, msg string, errInfo *core.ErrorInfo, pairs []core.Pair) {
	f := l.factory
	if f.handler == nil {
		return
	}

	ev := core.GetEvent()
	ev.Level = level
	ev.Category = l.category
	ev.EventID = eventID
	ev.Message = msg
	ev.Err = errInfo
	if len(pairs) > 0 {
		st := core.Pairs(pairs...)
		ev.State = &st
	}

	var snap scope.Snapshot
	if f.scopes != nil {
		snap = f.scopes.Snapshot()
	}

	if err := f.handler.Handle(ev, snap); err != nil {
		return
	}

	// Return event to pool if the handler is done with it
	if f.recycleEvent {
		core.PutEvent(ev)
	}
}

// BeginScope enters a key/value scope attached to every record emitted
// before the returned function is called
func (l *Logger) BeginScope(pairs ...core.Pair) func() {
	if l.factory.scopes == nil {
		return func() {}
	}
	return l.factory.scopes.Push(core.Pairs(pairs...))
}

// BeginOpaqueScope enters a scope carrying only a display string
func (l *Logger) BeginOpaqueScope(text string) func() {
	if l.factory.scopes == nil {
		return func() {}
	}
	return l.factory.scopes.Push(core.Opaque(text))
}

// Trace logs a trace record
func (l *Logger) Trace(msg string, pairs ...core.Pair) {
	l.Log(core.TraceLevel, 0, msg, pairs...)
}

// Debug logs a debug record
func (l *Logger) Debug(msg string, pairs ...core.Pair) {
	l.Log(core.DebugLevel, 0, msg, pairs...)
}

// Info logs an information record
func (l *Logger) Info(msg string, pairs ...core.Pair) {
	l.Log(core.InformationLevel, 0, msg, pairs...)
}

// Warn logs a warning record
func (l *Logger) Warn(msg string, pairs ...core.Pair) {
	l.Log(core.WarningLevel, 0, msg, pairs...)
}

// Error logs an error record
func (l *Logger) Error(err error, msg string, pairs ...core.Pair) {
	l.LogError(core.ErrorLevel, 0, err, msg, pairs...)
}

// Critical logs a critical record
func (l *Logger) Critical(err error, msg string, pairs ...core.Pair) {
	l.LogError(core.CriticalLevel, 0, err, msg, pairs...)
}
