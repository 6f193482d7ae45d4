package pool

import (
	"math/bits"

	"github.com/joshuapare/tinypool/internal/format"
)

// Malloc allocates size bytes and returns the allocation's Ref plus a
// payload slice of exactly size bytes into the data area.
//
// size 0 is not an error: it returns a zero Ref and a nil payload without
// touching the pool. Requests above MaxAlloc fail with ErrTooLarge; a pool
// with no suitable free run fails with ErrExhausted.
//
// The payload is NOT zero-filled except right after New or Clear; use
// MallocZeroed when zeroed memory is required.
func (p *Pool) Malloc(size int) (Ref, []byte, error) {
	if err := p.check(); err != nil {
		return 0, nil, err
	}
	if size < 0 {
		return 0, nil, ErrInvalidArgument
	}
	if size == 0 {
		return 0, nil, nil
	}

	if p.cfg.TrackStats {
		p.stats.Allocs++
	}

	if size > p.lay.maxAlloc() {
		p.countFail()
		return 0, nil, ErrTooLarge
	}

	// Amortized fast path: a failed scan is cached until Free or Clear.
	if p.full {
		p.countFail()
		return 0, nil, ErrExhausted
	}

	blockCount := (size + p.lay.step - 1) / p.lay.step

	chunk, off, ok := p.findRun(blockCount)
	if !ok {
		p.full = true
		p.countFail()
		return 0, nil, ErrExhausted
	}

	// Mark the run in body and exactly its first block in head.
	mask := runMask(blockCount)
	p.setBodyWord(chunk, p.bodyWord(chunk)|mask<<uint(off))
	p.setHeadWord(chunk, p.headWord(chunk)|uint(1)<<uint(off))

	ref := (chunk*format.ChunkBlocks + off) * p.lay.step

	if p.cfg.TrackStats {
		granted := blockCount * p.lay.step
		p.stats.Used += granted
		p.stats.Need += size
		p.stats.Real += granted
		if p.stats.Used > p.stats.Peak {
			p.stats.Peak = p.stats.Used
		}
	}

	return ref, p.data()[ref : ref+size], nil
}

// MallocZeroed behaves like Malloc and additionally zero-fills exactly the
// requested size bytes (not the full rounded run) before returning.
func (p *Pool) MallocZeroed(size int) (Ref, []byte, error) {
	ref, b, err := p.Malloc(size)
	if err != nil || b == nil {
		return ref, b, err
	}
	clear(b)
	return ref, b, nil
}

// MallocCounted allocates count items of itemSize bytes each. It fails
// with ErrInvalidArgument if the multiplication overflows.
func (p *Pool) MallocCounted(count, itemSize int) (Ref, []byte, error) {
	size, err := countedSize(count, itemSize)
	if err != nil {
		return 0, nil, err
	}
	return p.Malloc(size)
}

// MallocCountedZeroed is the zero-filling variant of MallocCounted.
func (p *Pool) MallocCountedZeroed(count, itemSize int) (Ref, []byte, error) {
	size, err := countedSize(count, itemSize)
	if err != nil {
		return 0, nil, err
	}
	return p.MallocZeroed(size)
}

// countedSize computes count*itemSize with overflow detection.
func countedSize(count, itemSize int) (int, error) {
	if count < 0 || itemSize < 0 {
		return 0, ErrInvalidArgument
	}
	hi, lo := bits.Mul(uint(count), uint(itemSize))
	if hi != 0 || lo > uint(maxInt) {
		return 0, ErrInvalidArgument
	}
	return int(lo), nil
}

const maxInt = int(^uint(0) >> 1)

// runMask returns a contiguous run of blockCount set bits at offset 0.
// blockCount == ChunkBlocks yields the all-ones word (the shift wraps to
// zero and the subtraction underflows as intended).
func runMask(blockCount int) uint {
	return uint(1)<<uint(blockCount) - 1
}

// findRun scans for the first chunk and bit offset hosting blockCount
// contiguous free blocks. Strict first-fit: lowest chunk index wins, then
// lowest offset within that chunk.
func (p *Pool) findRun(blockCount int) (chunk, off int, ok bool) {
	if p.onScan != nil {
		p.onScan()
	}

	mask := runMask(blockCount)
	for i := 0; i < p.lay.chunkCount; i++ {
		body := p.bodyWord(i)
		if body == format.FullWord {
			continue
		}
		free := ^body
		for off := 0; off <= format.ChunkBlocks-blockCount; off++ {
			if (free>>uint(off))&mask == mask {
				return i, off, true
			}
		}
	}
	return 0, 0, false
}

func (p *Pool) countFail() {
	if p.cfg.TrackStats {
		p.stats.Fails++
	}
}
