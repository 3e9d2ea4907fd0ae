// Package handler connects formatters to output sinks.
//
// A Handler consumes one record plus the scope snapshot captured when
// it fired. ConsoleHandler writes to any io.Writer, synchronously under
// a per-sink mutex or asynchronously through a bounded queue with
// per-level overflow policies (drop newest, drop oldest, or block with
// a timeout). FileHandler layers size-based rotation on top of the same
// machinery, and MultiHandler fans records out to several sinks.
//
// Snapshots travel with their record through the async queue, so a
// scope that was popped before the queue drained is still serialized
// exactly as it stood at log time. SlogHandler bridges log/slog call
// sites into this pipeline.
package handler
