package formatter

import (
	"strconv"
	"time"

	"github.com/alefranz/logwire/buffer"
)

// jsonWriter emits JSON incrementally into a pooled buffer without
// backtracking or pre-measuring. Buffer growth failures stick in err;
// every later call becomes a no-op, so the caller checks once at the
// end and the sink never sees a partial record.
type jsonWriter struct {
	buf    *buffer.Buffer
	indent bool
	err    error
	// stack holds one flag per open container: whether a value has
	// already been written at that depth (so the next one needs a comma)
	stack []bool
}

func (w *jsonWriter) writeByte(c byte) {
	if w.err != nil {
		return
	}
	w.err = w.buf.WriteByte(c)
}

func (w *jsonWriter) writeString(s string) {
	if w.err != nil {
		return
	}
	w.err = w.buf.WriteString(s)
}

// sep prepares for the next value or field name at the current depth:
// a comma when a sibling precedes it, plus a newline and indentation in
// indented mode.
func (w *jsonWriter) sep() {
	n := len(w.stack)
	if n == 0 {
		return
	}
	if w.stack[n-1] {
		w.writeByte(',')
	}
	w.stack[n-1] = true
	if w.indent {
		w.newlineIndent(n)
	}
}

func (w *jsonWriter) newlineIndent(depth int) {
	w.writeByte('\n')
	for i := 0; i < 2*depth; i++ {
		w.writeByte(' ')
	}
}

func (w *jsonWriter) beginObject() { w.begin('{') }
func (w *jsonWriter) beginArray()  { w.begin('[') }

func (w *jsonWriter) begin(c byte) {
	w.sep()
	w.writeByte(c)
	w.stack = append(w.stack, false)
}

func (w *jsonWriter) endObject() { w.end('}') }
func (w *jsonWriter) endArray()  { w.end(']') }

func (w *jsonWriter) end(c byte) {
	n := len(w.stack) - 1
	wroteAny := w.stack[n]
	w.stack = w.stack[:n]
	if w.indent && wroteAny {
		w.newlineIndent(n)
	}
	w.writeByte(c)
}

// fieldName writes a field key inside an open object.
func (w *jsonWriter) fieldName(name string) {
	w.sep()
	w.quoted(name)
	w.writeByte(':')
	if w.indent {
		w.writeByte(' ')
	}
}

func (w *jsonWriter) stringField(name, val string) {
	w.fieldName(name)
	w.quoted(val)
}

func (w *jsonWriter) nullField(name string) {
	w.fieldName(name)
	w.writeString("null")
}

func (w *jsonWriter) intField(name string, val int64) {
	w.fieldName(name)
	w.appendInt(val)
}

func (w *jsonWriter) timeField(name string, t time.Time, layout string) {
	w.fieldName(name)
	w.writeByte('"')
	if w.err == nil {
		// the common layouts format to escape-free text, so append
		// straight into the writable region and commit when that holds
		region, err := w.buf.WritableRegion(len(layout) + 32)
		if err != nil {
			w.err = err
			return
		}
		out := t.AppendFormat(region[:0], layout)
		if len(out) <= len(region) && jsonClean(out) {
			w.buf.Commit(len(out))
		} else {
			// either append outgrew the region, or the layout carried
			// literal text that needs escaping; copy out of the region
			// before writing, since further writes may reuse it
			w.escape(string(out))
		}
	}
	w.writeByte('"')
}

// jsonClean reports whether b can sit inside a JSON string unescaped.
func jsonClean(b []byte) bool {
	for _, c := range b {
		if c < 0x20 || c == '"' || c == '\\' {
			return false
		}
	}
	return true
}

// stringElem writes a bare string value inside an open array.
func (w *jsonWriter) stringElem(val string) {
	w.sep()
	w.quoted(val)
}

func (w *jsonWriter) appendInt(val int64) {
	if w.err != nil {
		return
	}
	region, err := w.buf.WritableRegion(20)
	if err != nil {
		w.err = err
		return
	}
	w.buf.Commit(len(strconv.AppendInt(region[:0], val, 10)))
}

// quoted writes a double-quoted, JSON-escaped string.
func (w *jsonWriter) quoted(s string) {
	w.writeByte('"')
	w.escape(s)
	w.writeByte('"')
}

// escape writes the JSON-escaped form of s (without surrounding
// quotes), flushing runs of unescaped bytes in single writes.
func (w *jsonWriter) escape(s string) {
	start := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 0x20 && c != '"' && c != '\\' {
			continue
		}
		// Flush unescaped prefix
		if start < i {
			w.writeString(s[start:i])
		}
		switch c {
		case '"':
			w.writeString(`\"`)
		case '\\':
			w.writeString(`\\`)
		case '\n':
			w.writeString(`\n`)
		case '\r':
			w.writeString(`\r`)
		case '\t':
			w.writeString(`\t`)
		default:
			w.writeString(`\u00`)
			w.writeByte(hexChars[c>>4])
			w.writeByte(hexChars[c&0x0f])
		}
		start = i + 1
	}
	// Flush remaining
	if start < len(s) {
		w.writeString(s[start:])
	}
}

var hexChars = [16]byte{'0', '1', '2', '3', '4', '5', '6', '7', '8', '9', 'a', 'b', 'c', 'd', 'e', 'f'}
