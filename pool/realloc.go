package pool

import "github.com/joshuapare/tinypool/internal/format"

// Realloc resizes the allocation starting at ref to newSize bytes.
//
// If the new size still fits the chunk run already reserved (a shrink, or
// a grow that does not collide with the next allocation), the bitmaps are
// adjusted in place and the same ref is returned. Otherwise a new run is
// allocated, min(old, new) bytes are copied, and the old run is freed.
// When no replacement run is available the call fails with ErrExhausted
// and the original allocation is left untouched.
//
// newSize 0 frees the allocation and returns a nil payload.
func (p *Pool) Realloc(ref Ref, newSize int) (Ref, []byte, error) {
	if err := p.check(); err != nil {
		return 0, nil, err
	}
	if newSize < 0 {
		return 0, nil, ErrInvalidArgument
	}
	if newSize == 0 {
		return 0, nil, p.Free(ref)
	}
	if newSize > p.lay.maxAlloc() {
		return 0, nil, ErrTooLarge
	}

	chunk, off, err := p.locate(ref)
	if err != nil {
		return 0, nil, err
	}

	head := p.headWord(chunk)
	body := p.bodyWord(chunk)
	oldBlocks := runLength(head, body, off)
	newBlocks := (newSize + p.lay.step - 1) / p.lay.step

	switch {
	case newBlocks == oldBlocks:
		return ref, p.data()[ref : ref+newSize], nil

	case newBlocks < oldBlocks:
		// Shrink in place: release the tail blocks.
		tail := runMask(oldBlocks-newBlocks) << uint(off+newBlocks)
		p.setBodyWord(chunk, body&^tail)
		p.full = false
		if p.cfg.TrackStats {
			p.stats.Used -= (oldBlocks - newBlocks) * p.lay.step
		}
		return ref, p.data()[ref : ref+newSize], nil

	case off+newBlocks <= format.ChunkBlocks:
		// Modest grow: extend in place if the following blocks are free.
		grow := runMask(newBlocks-oldBlocks) << uint(off+oldBlocks)
		if body&grow == 0 {
			p.setBodyWord(chunk, body|grow)
			if p.cfg.TrackStats {
				p.stats.Used += (newBlocks - oldBlocks) * p.lay.step
				if p.stats.Used > p.stats.Peak {
					p.stats.Peak = p.stats.Used
				}
			}
			return ref, p.data()[ref : ref+newSize], nil
		}
	}

	// Move: allocate, copy, free. The old run stays intact on failure.
	newRef, payload, err := p.Malloc(newSize)
	if err != nil {
		return 0, nil, err
	}
	oldBytes := oldBlocks * p.lay.step
	copy(payload, p.data()[ref:ref+min(oldBytes, newSize)])
	if err := p.Free(ref); err != nil {
		return 0, nil, err
	}
	return newRef, payload, nil
}
