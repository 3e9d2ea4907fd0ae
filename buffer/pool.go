package buffer

import (
	"math/bits"
	"sync"
)

const (
	// minCapacity is the smallest backing array handed out; acquire and
	// region hints below this are rounded up to it.
	minCapacity = 256
	// maxPooled is the largest size class. Arrays beyond it are
	// allocated fresh and never pooled, so a single huge record cannot
	// permanently inflate memory usage.
	maxPooled = 64 * 1024
)

// classes holds one free-list per size class. Bucket i serves arrays of
// exactly minCapacity<<i bytes (256 B up to 64 KiB). The buckets are
// shared process-wide and keyed only by size, not by caller.
var classes [9]sync.Pool

// classFor returns the index of the smallest size class whose arrays
// hold at least n bytes, or -1 when n exceeds the largest class.
func classFor(n int) int {
	if n <= minCapacity {
		return 0
	}
	if n > maxPooled {
		return -1
	}
	return bits.Len(uint(n-1)) - bits.Len(uint(minCapacity-1))
}

// classSize returns the array size of class idx.
func classSize(idx int) int {
	return minCapacity << idx
}

// rentArray checks out a backing array with at least n bytes of
// capacity. Arrays larger than the biggest size class are allocated
// exactly and bypass the pool.
func rentArray(n int) []byte {
	idx := classFor(n)
	if idx < 0 {
		return make([]byte, n)
	}
	if v := classes[idx].Get(); v != nil {
		return *(v.(*[]byte))
	}
	return make([]byte, classSize(idx))
}

// returnArray hands a backing array back to its size class. Arrays that
// do not match a class size exactly are left for the GC.
func returnArray(b []byte) {
	n := len(b)
	if n < minCapacity || n > maxPooled || n&(n-1) != 0 {
		return
	}
	idx := classFor(n)
	classes[idx].Put(&b)
}
