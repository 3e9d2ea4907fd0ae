package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/alefranz/logwire/buffer"
	"github.com/alefranz/logwire/core"
)

// recordCapacityHint is the initial buffer capacity for one record.
const recordCapacityHint = 1024

// JSONFormatter serializes log records as single-line (or indented)
// JSON objects with a fixed field order: Timestamp, EventId, LogLevel,
// Category, Message, Exception, State, Scopes.
type JSONFormatter struct {
	Options
}

// NewJSONFormatter creates a new JSON formatter
func NewJSONFormatter(opts Options) *JSONFormatter {
	return &JSONFormatter{Options: opts}
}

// Format serializes ev into a pooled buffer and flushes the finished
// record to sink followed by one line terminator. An event with no
// message and no error is suppressed entirely. An unknown level is a
// caller bug and panics before any bytes are produced. Buffer growth
// failure abandons the record: the buffer is still released and the
// sink sees nothing.
func (f *JSONFormatter) Format(ev *core.Event, scopes core.ScopeWalker, sink io.Writer) error {
	if ev.Message == "" && ev.Err == nil {
		return nil
	}
	if !ev.Level.Known() {
		panic(fmt.Sprintf("formatter: unknown log level %d", int(ev.Level)))
	}

	buf := buffer.Acquire(recordCapacityHint)
	defer buf.Release()

	w := jsonWriter{buf: buf, indent: f.Indent}
	w.beginObject()

	if f.TimestampFormat != "" {
		t := f.now()
		if f.UTC {
			t = t.UTC()
		}
		w.timeField("Timestamp", t, f.TimestampFormat)
	}
	w.intField("EventId", int64(ev.EventID))
	w.stringField("LogLevel", ev.Level.String())
	w.stringField("Category", ev.Category)
	if ev.Message == "" {
		w.nullField("Message")
	} else {
		w.stringField("Message", ev.Message)
	}
	if ev.Err != nil {
		writeException(&w, ev.Err)
	}
	if ev.State != nil {
		writeState(&w, *ev.State)
	}
	if f.IncludeScopes && scopes != nil {
		w.fieldName("Scopes")
		w.beginArray()
		scopes.WalkScopes(func(s core.State) {
			writeScope(&w, s)
		})
		w.endArray()
	}

	w.endObject()
	w.writeByte('\n')
	if w.err != nil {
		return fmt.Errorf("format record: %w", w.err)
	}

	// one write per record so concurrent sinks never interleave a line
	if _, err := sink.Write(buf.Written()); err != nil {
		return err
	}
	return nil
}

// writeException emits the nested Exception object. The raw trace text
// is split into one array element per line; no trace yields an empty
// array, not an omitted field.
func writeException(w *jsonWriter, info *core.ErrorInfo) {
	w.fieldName("Exception")
	w.beginObject()
	w.stringField("Message", info.Message)
	w.stringField("Type", info.Type)
	w.fieldName("StackTrace")
	w.beginArray()
	if info.Trace != "" {
		lines := strings.SplitAfter(info.Trace, "\n")
		if lines[len(lines)-1] == "" {
			lines = lines[:len(lines)-1]
		}
		for _, line := range lines {
			w.stringElem(strings.TrimRight(line, "\r\n"))
		}
	}
	w.endArray()
	w.intField("HResult", int64(info.HResult))
	w.endObject()
}

// writeState emits the State field: a nested object for key/value
// payloads (every value in its invariant string form, explicit nulls
// preserved) or a plain string for opaque payloads.
func writeState(w *jsonWriter, s core.State) {
	switch s.Kind {
	case core.KindPairs:
		w.fieldName("State")
		w.beginObject()
		writePairs(w, s.Pairs)
		w.endObject()
	case core.KindOpaque:
		w.stringField("State", s.Text)
	}
}

// writeScope emits one element of the Scopes array: an object for
// key/value frames, a bare string for opaque ones.
func writeScope(w *jsonWriter, s core.State) {
	switch s.Kind {
	case core.KindPairs:
		w.beginObject()
		writePairs(w, s.Pairs)
		w.endObject()
	case core.KindOpaque:
		w.stringElem(s.Text)
	}
}

func writePairs(w *jsonWriter, pairs []core.Pair) {
	for _, p := range pairs {
		if p.Value.Type == core.NullType {
			w.nullField(p.Key)
			continue
		}
		w.stringField(p.Key, p.Value.StringValue())
	}
}
