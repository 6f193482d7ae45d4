// Package pool implements a fixed-capacity, bitmap-indexed sub-allocator
// over a caller-supplied memory region.
//
// # Overview
//
// A Pool carves many small, same-granularity allocations out of one byte
// buffer without ever touching the Go heap after construction. The region
// is partitioned into a small header, two parallel occupancy bitmaps, and
// a data area:
//
//	region: |--------|------|------|--------------------------------|
//	          header   head   body               data
//
// The data area is divided into chunks of ChunkBlocks blocks each, where
// a block is the allocation granularity ("step", max(alignment, 16)
// bytes). Each chunk is tracked by one machine word in each bitmap:
//
//   - body word bit b set: block b of the chunk is occupied
//   - head word bit b set: block b starts a distinct allocation
//
// The head bitmap exists because body alone cannot reveal where one
// allocation ends and the next begins.
//
// # Usage Example
//
//	buf := make([]byte, 64<<10)
//	p, err := pool.New(buf, 16, nil)
//	if err != nil {
//	    return err
//	}
//	defer p.Close()
//
//	ref, b, err := p.Malloc(100)
//	if err != nil {
//	    return err
//	}
//	// ... use b ...
//	if err := p.Free(ref); err != nil {
//	    return err
//	}
//
// # Allocation policy
//
// Allocation is strict first-fit: the scanner walks chunks in ascending
// order (skipping full chunks with an O(1) all-ones test) and takes the
// lowest bit offset hosting a contiguous run of free blocks. A single
// allocation is limited to one chunk, i.e. step * ChunkBlocks bytes.
//
// Once a scan fails, the pool caches an exhausted flag and fails further
// allocations immediately until Free or Clear runs.
//
// # Limits
//
//   - alignment: power of two, >= the native word size, <= 64 bytes
//   - max single allocation: step * ChunkBlocks bytes
//   - the region is never grown; capacity is fixed at construction
//
// # Thread Safety
//
// Pool instances are not thread-safe. The exhausted-flag cache is a plain
// field with no atomicity guarantee, so concurrent use requires external
// synchronization by the caller.
package pool
