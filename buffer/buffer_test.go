package buffer

import (
	"bytes"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcquire_CapacityFloor(t *testing.T) {
	for _, hint := range []int{-1, 0, 1, 100} {
		b := Acquire(hint)
		if b.Cap() < minCapacity {
			t.Errorf("Acquire(%d) capacity = %d, want >= %d", hint, b.Cap(), minCapacity)
		}
		if b.Len() != 0 {
			t.Errorf("Acquire(%d) length = %d, want 0", hint, b.Len())
		}
		b.Release()
	}
}

func TestAcquire_HonorsHint(t *testing.T) {
	b := Acquire(10_000)
	defer b.Release()
	if b.Cap() < 10_000 {
		t.Errorf("capacity = %d, want >= 10000", b.Cap())
	}
}

func TestWritableRegion_GrowsToSatisfyHint(t *testing.T) {
	b := Acquire(minCapacity)
	defer b.Release()

	// fill most of the buffer so free space is below the next request
	region, err := b.WritableRegion(minCapacity)
	require.NoError(t, err)
	b.Commit(len(region) - 10)

	before := b.Cap()
	region, err = b.WritableRegion(1000)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(region), 1000, "granted region smaller than hint")
	assert.Greater(t, b.Cap(), before, "capacity did not strictly increase")
}

func TestWritableRegion_AtLeastDoubles(t *testing.T) {
	b := Acquire(minCapacity)
	defer b.Release()

	before := b.Cap()
	region, err := b.WritableRegion(before + 1)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(region), before+1)
	assert.GreaterOrEqual(t, b.Cap(), 2*before)
}

func TestCommit_AdvancesWriteIndex(t *testing.T) {
	b := Acquire(0)
	defer b.Release()

	region, err := b.WritableRegion(3)
	require.NoError(t, err)
	copy(region, "abc")
	b.Commit(3)

	if got := string(b.Written()); got != "abc" {
		t.Errorf("Written() = %q, want %q", got, "abc")
	}
}

func TestCommit_PastEndPanics(t *testing.T) {
	b := Acquire(0)
	defer b.Release()

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on Commit past end of backing array")
		}
	}()
	b.Commit(b.Cap() + 1)
}

func TestRelease_ClearsWrittenRegion(t *testing.T) {
	b := Acquire(0)
	region, err := b.WritableRegion(16)
	require.NoError(t, err)
	copy(region, "sensitive-bytes!")
	b.Commit(16)

	// keep a reference to the backing storage across the release
	backing := region[:16]
	b.Release()

	assert.Equal(t, make([]byte, 16), backing, "released buffer leaked written bytes")
}

func TestRelease_TwicePanics(t *testing.T) {
	b := Acquire(0)
	b.Release()

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on double Release")
		}
	}()
	b.Release()
}

func TestReuse_NeverExposesPriorContent(t *testing.T) {
	for i := 0; i < 50; i++ {
		b := Acquire(0)
		region, err := b.WritableRegion(64)
		require.NoError(t, err)
		for j := range region[:64] {
			if region[j] != 0 {
				t.Fatalf("iteration %d: acquired region contains stale byte %#x at %d", i, region[j], j)
			}
		}
		for j := range region[:64] {
			region[j] = 0xAB
		}
		b.Commit(64)
		b.Release()
	}
}

func TestGrownCapacity(t *testing.T) {
	tests := []struct {
		name     string
		capacity int
		sizeHint int
		limit    int
		want     int
		wantErr  bool
	}{
		{"doubles when hint is small", 256, 1, 1 << 20, 512, false},
		{"hint dominates when larger", 256, 1000, 1 << 20, 1256, false},
		{"fallback to exact size near limit", 600, 300, 1000, 900, false},
		{"fails when even exact size exceeds limit", 1000, 300, 1000, 0, true},
		{"fails on arithmetic overflow", maxCapacity - 5, 100, maxCapacity, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := grownCapacity(tt.capacity, tt.sizeHint, tt.limit)
			if tt.wantErr {
				if !errors.Is(err, ErrTooLarge) {
					t.Fatalf("error = %v, want ErrTooLarge", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("grownCapacity() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestWrite_AdversarialSizes(t *testing.T) {
	var want bytes.Buffer
	b := Acquire(0)
	defer b.Release()

	chunk := bytes.Repeat([]byte{'x'}, 7)
	big := bytes.Repeat([]byte{'y'}, 13_000)
	for i := 0; i < 100; i++ {
		if _, err := b.Write(chunk); err != nil {
			t.Fatal(err)
		}
		want.Write(chunk)
		if i%10 == 0 {
			if _, err := b.Write(big); err != nil {
				t.Fatal(err)
			}
			want.Write(big)
		}
	}

	if !bytes.Equal(b.Written(), want.Bytes()) {
		t.Fatalf("written bytes diverge: got %d bytes, want %d", b.Len(), want.Len())
	}
}

func TestWriteHelpers(t *testing.T) {
	b := Acquire(0)
	defer b.Release()

	require.NoError(t, b.WriteString("hello"))
	require.NoError(t, b.WriteByte(' '))
	_, err := b.Write([]byte("world"))
	require.NoError(t, err)

	assert.Equal(t, "hello world", string(b.Written()))
	assert.Equal(t, 11, b.Len())
}

func TestConcurrentAcquireRelease(t *testing.T) {
	var wg sync.WaitGroup
	for g := 0; g < 16; g++ {
		wg.Add(1)
		go func(seed byte) {
			defer wg.Done()
			payload := bytes.Repeat([]byte{seed}, 512)
			for i := 0; i < 200; i++ {
				b := Acquire(64)
				if _, err := b.Write(payload); err != nil {
					t.Error(err)
					b.Release()
					return
				}
				if !bytes.Equal(b.Written(), payload) {
					t.Errorf("goroutine %d: buffer corrupted by concurrent use", seed)
					b.Release()
					return
				}
				b.Release()
			}
		}(byte(g + 1))
	}
	wg.Wait()
}

func TestClassFor(t *testing.T) {
	tests := []struct {
		n    int
		want int
	}{
		{1, 0},
		{256, 0},
		{257, 1},
		{512, 1},
		{4096, 4},
		{64 * 1024, 8},
		{64*1024 + 1, -1},
	}
	for _, tt := range tests {
		if got := classFor(tt.n); got != tt.want {
			t.Errorf("classFor(%d) = %d, want %d", tt.n, got, tt.want)
		}
	}
}
