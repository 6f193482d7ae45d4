package pool

import "github.com/joshuapare/tinypool/internal/format"

// Free releases the allocation starting at ref. The run length is
// recovered from the bitmaps: body bits are occupied from ref's block
// until the next block that either starts another allocation (head bit
// set) or is free, or until the chunk ends.
//
// A ref that is not the start of a live allocation is a usage error and
// fails with ErrInvalidArgument; detected misuse never modifies any
// bitmap bit. A successful free clears the exhausted flag.
func (p *Pool) Free(ref Ref) error {
	if err := p.check(); err != nil {
		return err
	}

	chunk, off, err := p.locate(ref)
	if err != nil {
		return err
	}

	head := p.headWord(chunk)
	body := p.bodyWord(chunk)

	n := runLength(head, body, off)

	mask := runMask(n) << uint(off)
	p.setBodyWord(chunk, body&^mask)
	p.setHeadWord(chunk, head&^(uint(1)<<uint(off)))

	// The pool may have room again.
	p.full = false
	p.pred = chunk

	if p.cfg.TrackStats {
		p.stats.Used -= n * p.lay.step
	}

	return nil
}

// locate maps a ref to its chunk index and block offset, verifying that it
// is step-aligned, inside the data area, and marked as a run start.
func (p *Pool) locate(ref Ref) (chunk, off int, err error) {
	if ref < 0 || ref >= p.lay.dataSize() || ref%p.lay.step != 0 {
		return 0, 0, ErrInvalidArgument
	}
	block := ref / p.lay.step
	chunk = block / format.ChunkBlocks
	off = block % format.ChunkBlocks

	if p.headWord(chunk)&(uint(1)<<uint(off)) == 0 {
		return 0, 0, ErrInvalidArgument
	}
	return chunk, off, nil
}

// runLength counts the blocks of the run starting at off: the start block
// plus every following occupied block that does not itself start a run.
func runLength(head, body uint, off int) int {
	n := 1
	for b := off + 1; b < format.ChunkBlocks; b++ {
		bit := uint(1) << uint(b)
		if body&bit == 0 || head&bit != 0 {
			break
		}
		n++
	}
	return n
}
