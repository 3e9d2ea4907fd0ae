package buffer

import (
	"errors"
	"math"
	"sync"
)

// ErrTooLarge is returned when growing a buffer would exceed the
// maximum slice size of the platform.
var ErrTooLarge = errors.New("buffer: required capacity exceeds maximum slice size")

// maxCapacity is the largest backing array a buffer will attempt to
// allocate.
const maxCapacity = math.MaxInt

// Buffer is an append-only byte sink backed by a pooled byte array.
// A checked-out Buffer is owned by exactly one writer; the shared pools
// behind Acquire and Release are safe for concurrent use.
type Buffer struct {
	data []byte // len(data) is the current capacity
	n    int    // write index; bytes beyond it are unwritten garbage
}

// bufferPool recycles the Buffer headers themselves; backing arrays are
// pooled separately by size class.
var bufferPool = sync.Pool{
	New: func() interface{} {
		return new(Buffer)
	},
}

// Acquire checks out a buffer whose capacity is at least capHint bytes.
// A hint of zero or less is replaced by the 256-byte floor. The caller
// must Release the buffer exactly once when done with it.
func Acquire(capHint int) *Buffer {
	if capHint <= 0 {
		capHint = minCapacity
	}
	b := bufferPool.Get().(*Buffer)
	b.data = rentArray(capHint)
	b.n = 0
	return b
}

// Release zeroes the written region, returns the backing array to its
// size class, and recycles the buffer. Clearing is deliberate: stale
// record payloads must not be observable through a later Acquire.
// Releasing a buffer twice is a programming error and panics.
func (b *Buffer) Release() {
	if b.data == nil {
		panic("buffer: Release of already released buffer")
	}
	clear(b.data[:b.n])
	b.n = 0
	returnArray(b.data)
	b.data = nil
	bufferPool.Put(b)
}

// WritableRegion returns a view of at least sizeHint unwritten bytes,
// growing the backing array first when the free space is insufficient.
// A hint of zero or less requests the 256-byte default. The region is
// only valid until the next call on the buffer; the caller reports how
// much of it was filled via Commit.
func (b *Buffer) WritableRegion(sizeHint int) ([]byte, error) {
	if sizeHint <= 0 {
		sizeHint = minCapacity
	}
	if free := len(b.data) - b.n; free < sizeHint {
		if err := b.grow(sizeHint); err != nil {
			return nil, err
		}
	}
	return b.data[b.n:], nil
}

// Commit advances the write index by count bytes, which the caller must
// have written into the region returned by the most recent
// WritableRegion call. Committing past the end of the backing array is
// a caller contract violation and panics.
func (b *Buffer) Commit(count int) {
	if count < 0 || b.n+count > len(b.data) {
		panic("buffer: Commit past end of granted region")
	}
	b.n += count
}

// Written returns the bytes written so far, [0, writeIndex). The view
// is invalidated by any subsequent write or by Release.
func (b *Buffer) Written() []byte {
	return b.data[:b.n]
}

// Len returns the number of bytes written so far.
func (b *Buffer) Len() int {
	return b.n
}

// Cap returns the capacity of the backing array.
func (b *Buffer) Cap() int {
	return len(b.data)
}

// grow swaps the backing array for a larger one, preserving the written
// region. The replaced array is cleared and returned to its size class.
func (b *Buffer) grow(sizeHint int) error {
	newCap, err := grownCapacity(len(b.data), sizeHint, maxCapacity)
	if err != nil {
		return err
	}
	next := rentArray(newCap)
	copy(next, b.data[:b.n])
	clear(b.data[:b.n])
	returnArray(b.data)
	b.data = next
	return nil
}

// grownCapacity computes the next capacity for a buffer with the given
// backing length: at least doubling, and large enough to satisfy
// sizeHint in one step. When that target exceeds limit it falls back to
// capacity+sizeHint exactly once before reporting ErrTooLarge.
func grownCapacity(capacity, sizeHint, limit int) (int, error) {
	growBy := sizeHint
	if capacity > growBy {
		growBy = capacity
	}
	newCap := capacity + growBy
	// uint comparison catches overflow wrap to negative as well
	if uint(newCap) > uint(limit) {
		newCap = capacity + sizeHint
		if uint(newCap) > uint(limit) {
			return 0, ErrTooLarge
		}
	}
	return newCap, nil
}

// Write appends p to the buffer, implementing io.Writer on top of
// WritableRegion/Commit.
func (b *Buffer) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	region, err := b.WritableRegion(len(p))
	if err != nil {
		return 0, err
	}
	n := copy(region, p)
	b.Commit(n)
	return n, nil
}

// WriteString appends s to the buffer.
func (b *Buffer) WriteString(s string) error {
	if len(s) == 0 {
		return nil
	}
	region, err := b.WritableRegion(len(s))
	if err != nil {
		return err
	}
	b.Commit(copy(region, s))
	return nil
}

// WriteByte appends a single byte to the buffer.
func (b *Buffer) WriteByte(c byte) error {
	if b.n == len(b.data) {
		if err := b.grow(1); err != nil {
			return err
		}
	}
	b.data[b.n] = c
	b.n++
	return nil
}
