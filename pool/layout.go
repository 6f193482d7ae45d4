package pool

import "github.com/joshuapare/tinypool/internal/format"

// layout describes how an aligned region is partitioned. All offsets are
// byte offsets from the region start, so the geometry stays valid if the
// region is copied or remapped.
type layout struct {
	align int // region and data alignment, power of two
	step  int // allocation granularity, max(align, 16)

	chunkCount int

	headOff int // head bitmap
	bodyOff int // body bitmap
	dataOff int // data area, aligned to align
}

// computeLayout derives the pool geometry for a region of size bytes whose
// start is already aligned. align must be a validated power of two in
// [WordSize, MaxAlign].
//
// The chunk count is the closed form
//
//	(size - headOff) / (2*WordSize + ChunkBlocks*step)
//
// refined downward until the data area, aligned up to align, still fits
// inside the region. Returns ErrCapacityExceeded if not even one chunk
// fits.
func computeLayout(size, align int) (layout, error) {
	step := align
	if step < format.MinStep {
		step = format.MinStep
	}

	headOff := format.AlignUp(format.HeaderSize, align)
	avail := size - headOff
	if avail <= 0 {
		return layout{}, ErrCapacityExceeded
	}

	// Per chunk: one head word, one body word, ChunkBlocks data blocks.
	perChunk := 2*format.WordSize + format.ChunkBlocks*step

	n := avail / perChunk
	var dataOff int
	for ; n > 0; n-- {
		dataOff = format.AlignUp(headOff+2*n*format.WordSize, align)
		if dataOff+n*format.ChunkBlocks*step <= size {
			break
		}
	}
	if n == 0 {
		return layout{}, ErrCapacityExceeded
	}

	return layout{
		align:      align,
		step:       step,
		chunkCount: n,
		headOff:    headOff,
		bodyOff:    headOff + n*format.WordSize,
		dataOff:    dataOff,
	}, nil
}

// dataSize returns the byte size of the data area.
func (l layout) dataSize() int {
	return l.chunkCount * format.ChunkBlocks * l.step
}

// maxAlloc returns the largest single allocation the layout supports.
func (l layout) maxAlloc() int {
	return l.step * format.ChunkBlocks
}
