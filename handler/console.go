package handler

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/alefranz/logwire/core"
	"github.com/alefranz/logwire/formatter"
	"github.com/alefranz/logwire/scope"
)

// record pairs an event with the scope snapshot captured when it fired,
// so async processing formats the scopes as they were, not as they are.
type record struct {
	ev     *core.Event
	scopes scope.Snapshot
}

// ConsoleHandler writes log records to stdout/stderr
type ConsoleHandler struct {
	writer         io.Writer
	formatter      formatter.Formatter
	async          bool
	queue          chan record
	wg             sync.WaitGroup
	closed         chan struct{}
	mu             sync.Mutex
	overflowPolicy map[core.Level]OverflowPolicy
	blockTimeout   time.Duration
	stats          *Stats
	drainTimeout   time.Duration
}

// ConsoleConfig holds configuration for console handler
type ConsoleConfig struct {
	// Writer to write to (default: os.Stdout)
	Writer io.Writer
	// Formatter to use (default: JSONFormatter with defaults)
	Formatter formatter.Formatter
	// Async enables asynchronous logging (default: false)
	Async bool
	// BufferSize is the size of the async queue (default: 1000)
	BufferSize int
	// OverflowPolicy defines per-level overflow behavior (default: uses DefaultLevelPolicy)
	OverflowPolicy map[core.Level]OverflowPolicy
	// BlockTimeout is the timeout for blocking overflow policy (default: 100ms)
	BlockTimeout time.Duration
	// DrainTimeout is the timeout for draining the queue on Close (default: 5s)
	DrainTimeout time.Duration
}

// NewConsoleHandler creates a new console handler
func NewConsoleHandler(cfg ConsoleConfig) *ConsoleHandler {
	if cfg.Writer == nil {
		cfg.Writer = os.Stdout
	}
	if cfg.Formatter == nil {
		cfg.Formatter = formatter.NewJSONFormatter(formatter.Options{})
	}
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = 1000
	}
	if cfg.OverflowPolicy == nil {
		cfg.OverflowPolicy = DefaultLevelPolicy()
	}
	if cfg.BlockTimeout == 0 {
		cfg.BlockTimeout = 100 * time.Millisecond
	}
	if cfg.DrainTimeout == 0 {
		cfg.DrainTimeout = 5 * time.Second
	}

	h := &ConsoleHandler{
		writer:         cfg.Writer,
		formatter:      cfg.Formatter,
		async:          cfg.Async,
		closed:         make(chan struct{}),
		overflowPolicy: cfg.OverflowPolicy,
		blockTimeout:   cfg.BlockTimeout,
		stats:          NewStats(),
		drainTimeout:   cfg.DrainTimeout,
	}

	if h.async {
		h.queue = make(chan record, cfg.BufferSize)
		h.wg.Add(1)
		go h.process()
	}

	return h
}

// Handle processes a log record
func (h *ConsoleHandler) Handle(ev *core.Event, scopes scope.Snapshot) error {
	if !h.async {
		return h.write(record{ev: ev, scopes: scopes})
	}
	return h.enqueue(record{ev: ev, scopes: scopes})
}

// enqueue applies the level's overflow policy to a full queue
func (h *ConsoleHandler) enqueue(rec record) error {
	policy, ok := h.overflowPolicy[rec.ev.Level]
	if !ok {
		policy = DropNewest // Default if not specified
	}

	switch policy {
	case Block:
		select {
		case h.queue <- rec:
			return nil
		default:
			// Each caller gets its own timer; Handle may run from many
			// goroutines at once and timers cannot be shared across them.
			t := time.NewTimer(h.blockTimeout)
			select {
			case h.queue <- rec:
				t.Stop()
				return nil
			case <-t.C:
				// Timeout - fall back to synchronous write
				h.stats.IncrementBlocked()
				return h.write(rec)
			case <-h.closed:
				// Handler is closing, write synchronously
				t.Stop()
				return h.write(rec)
			}
		}

	case DropOldest:
		select {
		case h.queue <- rec:
			return nil
		default:
			// Queue full - try to drop oldest
			select {
			case old := <-h.queue:
				h.stats.IncrementDropped(old.ev.Level)
				core.PutEvent(old.ev)
			default:
			}
			select {
			case h.queue <- rec:
				return nil
			default:
				// Still full, drop this one
				h.stats.IncrementDropped(rec.ev.Level)
				core.PutEvent(rec.ev)
				return nil
			}
		}

	case DropNewest:
		fallthrough
	default:
		select {
		case h.queue <- rec:
			return nil
		default:
			// Queue full - drop this record
			h.stats.IncrementDropped(rec.ev.Level)
			core.PutEvent(rec.ev)
			return nil
		}
	}
}

// write formats and flushes one record under the sink mutex so that
// concurrent records never interleave their bytes
func (h *ConsoleHandler) write(rec record) error {
	h.mu.Lock()
	err := h.formatter.Format(rec.ev, walker(rec.scopes), h.writer)
	h.mu.Unlock()
	if err == nil {
		h.stats.IncrementProcessed()
	}
	return err
}

// CanRecycleEvent returns true if the caller can recycle the event after Handle returns
func (h *ConsoleHandler) CanRecycleEvent() bool {
	return !h.async
}

// process handles async log processing
func (h *ConsoleHandler) process() {
	defer h.wg.Done()

	for {
		select {
		case rec := <-h.queue:
			err := h.write(rec)
			core.PutEvent(rec.ev)
			if err != nil {
				return
			}
		case <-h.closed:
			// Drain remaining records with timeout
			deadline := time.After(h.drainTimeout)
		drainLoop:
			for {
				select {
				case rec := <-h.queue:
					err := h.write(rec)
					core.PutEvent(rec.ev)
					if err != nil {
						return
					}
				case <-deadline:
					break drainLoop
				default:
					// Queue empty
					break drainLoop
				}
			}
			return
		}
	}
}

// Stats returns a snapshot of the current statistics
func (h *ConsoleHandler) Stats() Snapshot {
	return h.stats.GetSnapshot()
}

// Close closes the handler
func (h *ConsoleHandler) Close() error {
	// Check if already closed (without lock to avoid deadlock)
	select {
	case <-h.closed:
		return nil
	default:
	}

	if h.async {
		close(h.closed)
		h.wg.Wait()
	}
	return nil
}
