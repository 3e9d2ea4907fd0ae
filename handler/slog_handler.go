package handler

import (
	"context"
	"log/slog"

	"github.com/alefranz/logwire/core"
)

// SlogHandler adapts a logwire Handler to the slog.Handler interface,
// so existing log/slog call sites can emit structured records through
// this library's formatters and sinks.
type SlogHandler struct {
	handler  Handler
	category string
	level    core.Level
	attrs    []core.Pair
	group    string
}

// NewSlogHandler creates a slog.Handler adapter wrapping the given
// Handler. Records are emitted under the given category.
func NewSlogHandler(h Handler, category string, level core.Level) *SlogHandler {
	return &SlogHandler{
		handler:  h,
		category: category,
		level:    level,
	}
}

// Enabled reports whether the handler handles records at the given level.
func (s *SlogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return slogLevelToCore(level) >= s.level
}

// Handle converts a slog.Record into a pooled event and passes it to
// the wrapped handler.
func (s *SlogHandler) Handle(_ context.Context, rec slog.Record) error {
	ev := core.GetEvent()
	ev.Level = slogLevelToCore(rec.Level)
	ev.Category = s.category
	ev.Message = rec.Message

	pairs := make([]core.Pair, 0, len(s.attrs)+rec.NumAttrs())
	pairs = append(pairs, s.attrs...)
	rec.Attrs(func(a slog.Attr) bool {
		pairs = append(pairs, slogAttrToPair(s.group, a))
		return true
	})
	if len(pairs) > 0 {
		st := core.Pairs(pairs...)
		ev.State = &st
	}

	err := s.handler.Handle(ev, nil)
	if rc, ok := s.handler.(interface{ CanRecycleEvent() bool }); ok && rc.CanRecycleEvent() {
		core.PutEvent(ev)
	}
	return err
}

// WithAttrs returns a new SlogHandler with additional attributes.
func (s *SlogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newAttrs := make([]core.Pair, len(s.attrs), len(s.attrs)+len(attrs))
	copy(newAttrs, s.attrs)
	for _, a := range attrs {
		newAttrs = append(newAttrs, slogAttrToPair(s.group, a))
	}
	return &SlogHandler{
		handler:  s.handler,
		category: s.category,
		level:    s.level,
		attrs:    newAttrs,
		group:    s.group,
	}
}

// WithGroup returns a new SlogHandler with the given group name.
func (s *SlogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return s
	}
	newGroup := name
	if s.group != "" {
		newGroup = s.group + "." + name
	}
	newAttrs := make([]core.Pair, len(s.attrs))
	copy(newAttrs, s.attrs)
	return &SlogHandler{
		handler:  s.handler,
		category: s.category,
		level:    s.level,
		attrs:    newAttrs,
		group:    newGroup,
	}
}

// slogLevelToCore converts a slog.Level to a core.Level.
func slogLevelToCore(level slog.Level) core.Level {
	switch {
	case level >= slog.LevelError:
		return core.ErrorLevel
	case level >= slog.LevelWarn:
		return core.WarningLevel
	case level >= slog.LevelInfo:
		return core.InformationLevel
	case level >= slog.LevelDebug:
		return core.DebugLevel
	default:
		return core.TraceLevel
	}
}

// slogAttrToPair converts a slog.Attr to a state pair, prepending the
// group prefix if present. Group attrs are flattened with dotted keys.
func slogAttrToPair(group string, a slog.Attr) core.Pair {
	key := a.Key
	if group != "" {
		key = group + "." + a.Key
	}

	a.Value = a.Value.Resolve()

	switch a.Value.Kind() {
	case slog.KindString:
		return core.P(key, core.String(a.Value.String()))
	case slog.KindInt64:
		return core.P(key, core.Int64(a.Value.Int64()))
	case slog.KindFloat64:
		return core.P(key, core.Float64(a.Value.Float64()))
	case slog.KindBool:
		return core.P(key, core.Bool(a.Value.Bool()))
	case slog.KindTime:
		return core.P(key, core.Time(a.Value.Time()))
	case slog.KindDuration:
		return core.P(key, core.Duration(a.Value.Duration()))
	default:
		return core.P(key, core.Any(a.Value.Any()))
	}
}
