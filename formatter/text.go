package formatter

import (
	"fmt"
	"io"
	"strconv"

	"github.com/alefranz/logwire/buffer"
	"github.com/alefranz/logwire/core"
)

// TextFormatter renders log records as human-readable single lines.
// It follows the same suppression and flush rules as JSONFormatter but
// makes no machine-readable schema promises.
type TextFormatter struct {
	Options
}

// NewTextFormatter creates a new text formatter
func NewTextFormatter(opts Options) *TextFormatter {
	return &TextFormatter{Options: opts}
}

// pre-formatted level brackets to keep the common path to one write
var levelBrackets = [...]string{
	core.TraceLevel:       "[Trace] ",
	core.DebugLevel:       "[Debug] ",
	core.InformationLevel: "[Information] ",
	core.WarningLevel:     "[Warning] ",
	core.ErrorLevel:       "[Error] ",
	core.CriticalLevel:    "[Critical] ",
}

// Format renders ev as one line of text and writes it to sink.
func (f *TextFormatter) Format(ev *core.Event, scopes core.ScopeWalker, sink io.Writer) error {
	if ev.Message == "" && ev.Err == nil {
		return nil
	}
	if !ev.Level.Known() {
		panic(fmt.Sprintf("formatter: unknown log level %d", int(ev.Level)))
	}

	buf := buffer.Acquire(recordCapacityHint)
	defer buf.Release()

	w := errWriter{buf: buf}
	if f.TimestampFormat != "" {
		t := f.now()
		if f.UTC {
			t = t.UTC()
		}
		region, err := buf.WritableRegion(len(f.TimestampFormat) + 32)
		if err != nil {
			w.err = err
		} else {
			out := t.AppendFormat(region[:0], f.TimestampFormat)
			if len(out) <= len(region) {
				buf.Commit(len(out))
			} else {
				w.writeString(string(out))
			}
			w.writeByte(' ')
		}
	}
	w.writeString(levelBrackets[ev.Level])
	w.writeString(ev.Category)
	w.writeByte('[')
	w.writeString(strconv.Itoa(ev.EventID))
	w.writeString("] ")
	w.writeString(ev.Message)

	if ev.State != nil {
		switch ev.State.Kind {
		case core.KindPairs:
			for _, p := range ev.State.Pairs {
				w.writeByte(' ')
				w.writeString(p.Key)
				w.writeByte('=')
				w.writeString(p.Value.StringValue())
			}
		case core.KindOpaque:
			w.writeByte(' ')
			w.writeString(ev.State.Text)
		}
	}

	if ev.Err != nil {
		w.writeString(" error=")
		w.writeString(ev.Err.Message)
	}

	if f.IncludeScopes && scopes != nil {
		scopes.WalkScopes(func(s core.State) {
			w.writeString(" => ")
			switch s.Kind {
			case core.KindPairs:
				for i, p := range s.Pairs {
					if i > 0 {
						w.writeByte(' ')
					}
					w.writeString(p.Key)
					w.writeByte('=')
					w.writeString(p.Value.StringValue())
				}
			case core.KindOpaque:
				w.writeString(s.Text)
			}
		})
	}

	w.writeByte('\n')
	if w.err != nil {
		return fmt.Errorf("format record: %w", w.err)
	}
	_, err := sink.Write(buf.Written())
	return err
}

// errWriter wraps a buffer with sticky-error writes so the formatting
// body stays free of error plumbing.
type errWriter struct {
	buf *buffer.Buffer
	err error
}

func (w *errWriter) writeString(s string) {
	if w.err != nil {
		return
	}
	w.err = w.buf.WriteString(s)
}

func (w *errWriter) writeByte(c byte) {
	if w.err != nil {
		return
	}
	w.err = w.buf.WriteByte(c)
}
