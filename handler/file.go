package handler

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/alefranz/logwire/core"
	"github.com/alefranz/logwire/formatter"
	"github.com/alefranz/logwire/scope"
)

// FileHandler writes log records to a file with size-based rotation.
// It reuses the console handler's queueing and overflow machinery on
// top of a rotating file writer.
type FileHandler struct {
	inner *ConsoleHandler
	rw    *rotatingWriter
}

// FileConfig holds configuration for file handler
type FileConfig struct {
	// Filename is the path to the log file
	Filename string
	// Formatter to use (default: JSONFormatter with defaults)
	Formatter formatter.Formatter
	// Async enables asynchronous logging (default: false)
	Async bool
	// BufferSize is the size of the async queue (default: 1000)
	BufferSize int
	// MaxSize is the maximum size in bytes before rotation (0 = no rotation)
	MaxSize int64
	// MaxBackups is the maximum number of rotated files to retain (0 = keep all)
	MaxBackups int
	// OverflowPolicy defines per-level overflow behavior (default: uses DefaultLevelPolicy)
	OverflowPolicy map[core.Level]OverflowPolicy
	// BlockTimeout is the timeout for blocking overflow policy (default: 100ms)
	BlockTimeout time.Duration
	// DrainTimeout is the timeout for draining the queue on Close (default: 5s)
	DrainTimeout time.Duration
}

// NewFileHandler creates a new file handler
func NewFileHandler(cfg FileConfig) (*FileHandler, error) {
	if cfg.Filename == "" {
		return nil, fmt.Errorf("filename is required")
	}

	rw, err := openRotatingWriter(cfg.Filename, cfg.MaxSize, cfg.MaxBackups)
	if err != nil {
		return nil, err
	}

	inner := NewConsoleHandler(ConsoleConfig{
		Writer:         rw,
		Formatter:      cfg.Formatter,
		Async:          cfg.Async,
		BufferSize:     cfg.BufferSize,
		OverflowPolicy: cfg.OverflowPolicy,
		BlockTimeout:   cfg.BlockTimeout,
		DrainTimeout:   cfg.DrainTimeout,
	})

	return &FileHandler{inner: inner, rw: rw}, nil
}

// Handle processes a log record
func (h *FileHandler) Handle(ev *core.Event, scopes scope.Snapshot) error {
	return h.inner.Handle(ev, scopes)
}

// CanRecycleEvent returns true if the caller can recycle the event after Handle returns
func (h *FileHandler) CanRecycleEvent() bool {
	return h.inner.CanRecycleEvent()
}

// Stats returns a snapshot of the current statistics
func (h *FileHandler) Stats() Snapshot {
	return h.inner.Stats()
}

// Close drains the queue and closes the file
func (h *FileHandler) Close() error {
	if err := h.inner.Close(); err != nil {
		return err
	}
	return h.rw.Close()
}

// rotatingWriter is an append-mode file writer that rotates when the
// current file would exceed maxSize. Rotated files get a timestamp
// suffix; at most maxBackups of them are kept.
type rotatingWriter struct {
	mu       sync.Mutex
	filename string
	file     *os.File
	maxSize  int64
	backups  int
	size     int64
}

func openRotatingWriter(filename string, maxSize int64, backups int) (*rotatingWriter, error) {
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return nil, err
	}
	file, err := os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, err
	}
	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, err
	}
	return &rotatingWriter{
		filename: filename,
		file:     file,
		maxSize:  maxSize,
		backups:  backups,
		size:     info.Size(),
	}, nil
}

func (r *rotatingWriter) Write(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.maxSize > 0 && r.size > 0 && r.size+int64(len(p)) > r.maxSize {
		if err := r.rotate(); err != nil {
			return 0, err
		}
	}
	n, err := r.file.Write(p)
	r.size += int64(n)
	return n, err
}

// rotate renames the current file with a timestamp suffix and opens a
// fresh one, then prunes backups beyond the retention limit.
func (r *rotatingWriter) rotate() error {
	if err := r.file.Close(); err != nil {
		return err
	}
	backup := fmt.Sprintf("%s.%s", r.filename, time.Now().Format("20060102-150405.000000000"))
	if err := os.Rename(r.filename, backup); err != nil {
		return err
	}
	file, err := os.OpenFile(r.filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return err
	}
	r.file = file
	r.size = 0
	r.prune()
	return nil
}

// prune removes the oldest backups beyond the retention limit. Errors
// are ignored: failing to delete an old log must not fail a write.
func (r *rotatingWriter) prune() {
	if r.backups <= 0 {
		return
	}
	matches, err := filepath.Glob(r.filename + ".*")
	if err != nil || len(matches) <= r.backups {
		return
	}
	// timestamp suffixes sort lexically in age order
	sort.Strings(matches)
	for _, old := range matches[:len(matches)-r.backups] {
		if strings.HasPrefix(old, r.filename+".") {
			os.Remove(old)
		}
	}
}

func (r *rotatingWriter) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.file.Close()
}
