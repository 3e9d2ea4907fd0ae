// Package buffer provides a pooled, growable byte sink for record
// serialization.
//
// A Buffer is checked out with Acquire, filled through the
// WritableRegion/Commit pair (or the io.Writer-style helpers built on
// top of them), and handed back with Release. Backing arrays come from
// a process-wide pool bucketed by size class (powers of two from 256 B
// to 64 KiB), so steady-state formatting performs no allocations once
// the pool is warm. Arrays larger than the biggest class are allocated
// exactly and left for the GC rather than pinned in the pool.
//
// Growth at least doubles the capacity and always satisfies the
// requested region in a single step. When the doubled target would
// exceed the platform slice limit the buffer tries the exact required
// size once and otherwise fails with ErrTooLarge; it never wraps or
// silently truncates.
//
// Release zeroes the written region before the array re-enters the
// pool, so a later Acquire can never observe a previous record's bytes.
// Contract violations (committing past the granted region, releasing
// twice) panic rather than returning an error.
package buffer
