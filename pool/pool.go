package pool

import (
	"unsafe"

	"github.com/joshuapare/tinypool/internal/format"
)

// Ref is the byte offset of an allocation from the data-area base. It is
// what Malloc hands back and what Free and Realloc expect; unlike a raw
// pointer it survives copying or remapping the backing region.
type Ref = int

// Pool is a fixed-capacity sub-allocator over a caller-supplied byte
// buffer. The caller retains ownership of the raw buffer for the pool's
// whole lifetime; the pool never grows, frees, or reallocates it.
//
// Pool is not safe for concurrent use.
type Pool struct {
	cfg Config

	// region is the aligned window of the caller's buffer. region[0] is
	// the first byte of the in-buffer header.
	region []byte

	magic uint
	lay   layout

	// full caches a failed scan so subsequent allocations fail without
	// rescanning. Cleared by Free and Clear.
	full bool

	// pred is the chunk index of the most recent free, kept as a scan
	// hint. The scanner does not consult it: strict first-fit requires
	// starting from chunk zero.
	pred int

	stats Stats

	// Test hook: called at the start of every bitmap scan (nil in
	// production).
	onScan func()
}

// New initializes a pool over buf. align is the requested alignment in
// bytes; 0 means the native word size. The alignment is rounded up to a
// power of two, floored at the word size, and must not exceed 64.
//
// Any leading bytes needed to align the buffer start are consumed as
// padding. The whole region, bitmaps and data included, is zero-filled.
//
// cfg may be nil, in which case DefaultConfig is used.
func New(buf []byte, align int, cfg *Config) (*Pool, error) {
	if cfg == nil {
		cfg = &DefaultConfig
	}
	if len(buf) == 0 || align < 0 {
		return nil, ErrInvalidArgument
	}

	// Structural precondition: one bitmap word must track exactly one
	// chunk of ChunkBlocks blocks.
	if format.ChunkBlocks != format.WordSize*8 {
		return nil, ErrCorrupted
	}

	if align == 0 {
		align = format.WordSize
	}
	align = format.NextPow2(align)
	if align < format.WordSize {
		align = format.WordSize
	}
	if align > format.MaxAlign {
		return nil, ErrInvalidArgument
	}

	// Consume leading padding so region[0] sits on an align boundary.
	base := uintptr(unsafe.Pointer(&buf[0]))
	pad := int((uintptr(align) - base%uintptr(align)) % uintptr(align))
	if pad >= len(buf) {
		return nil, ErrInvalidArgument
	}
	region := buf[pad:]

	lay, err := computeLayout(len(region), align)
	if err != nil {
		return nil, err
	}

	clear(region[:lay.dataOff+lay.dataSize()])

	p := &Pool{
		cfg:    *cfg,
		region: region,
		magic:  format.PoolMagic,
		lay:    lay,
	}
	p.writeHeader()

	return p, nil
}

// writeHeader persists the sentinel tag and geometry at the region start,
// so a foreign or reused buffer is detectable.
func (p *Pool) writeHeader() {
	format.PutWord(p.region, format.HdrMagic*format.WordSize, format.PoolMagic)
	format.PutWord(p.region, format.HdrAlign*format.WordSize, uint(p.lay.align))
	format.PutWord(p.region, format.HdrStep*format.WordSize, uint(p.lay.step))
	format.PutWord(p.region, format.HdrChunks*format.WordSize, uint(p.lay.chunkCount))
}

// check validates the handle and the in-buffer sentinel tag.
func (p *Pool) check() error {
	if p == nil || p.magic != format.PoolMagic || len(p.region) == 0 {
		return ErrCorrupted
	}
	if format.ReadWord(p.region, format.HdrMagic*format.WordSize) != format.PoolMagic {
		return ErrCorrupted
	}
	return nil
}

// Clear resets the pool to its freshly initialized state: the data area
// and both bitmaps are zero-filled, the exhausted flag and all counters
// reset. Geometry is preserved. Idempotent.
func (p *Pool) Clear() error {
	if err := p.check(); err != nil {
		return err
	}
	p.clearRegions()
	p.full = false
	p.pred = 0
	p.stats = Stats{}
	return nil
}

// Close clears the pool and invalidates its sentinel tag. The handle and
// any payload slices obtained from it must not be used afterwards; every
// further operation fails with ErrCorrupted.
func (p *Pool) Close() error {
	if err := p.check(); err != nil {
		return err
	}
	p.clearRegions()
	for i := 0; i < format.HeaderWords; i++ {
		format.PutWord(p.region, i*format.WordSize, 0)
	}
	p.magic = 0
	return nil
}

func (p *Pool) clearRegions() {
	clear(p.region[p.lay.headOff:p.lay.bodyOff])
	clear(p.region[p.lay.bodyOff : p.lay.bodyOff+p.lay.chunkCount*format.WordSize])
	clear(p.region[p.lay.dataOff : p.lay.dataOff+p.lay.dataSize()])
}

// Align returns the pool's alignment in bytes.
func (p *Pool) Align() int { return p.lay.align }

// Step returns the allocation granularity in bytes. Every request is
// rounded up to a multiple of this.
func (p *Pool) Step() int { return p.lay.step }

// ChunkCount returns the number of chunks the region hosts.
func (p *Pool) ChunkCount() int { return p.lay.chunkCount }

// DataSize returns the byte size of the data area.
func (p *Pool) DataSize() int { return p.lay.dataSize() }

// MaxAlloc returns the largest size a single Malloc can serve.
func (p *Pool) MaxAlloc() int { return p.lay.maxAlloc() }

// Full reports whether the last scan found no room. Cleared by Free and
// Clear.
func (p *Pool) Full() bool { return p.full }

// Bitmap word accessors. Index i addresses chunk i.

func (p *Pool) headWord(i int) uint {
	return format.ReadWord(p.region, p.lay.headOff+i*format.WordSize)
}

func (p *Pool) setHeadWord(i int, w uint) {
	format.PutWord(p.region, p.lay.headOff+i*format.WordSize, w)
}

func (p *Pool) bodyWord(i int) uint {
	return format.ReadWord(p.region, p.lay.bodyOff+i*format.WordSize)
}

func (p *Pool) setBodyWord(i int, w uint) {
	format.PutWord(p.region, p.lay.bodyOff+i*format.WordSize, w)
}

// data returns the data area.
func (p *Pool) data() []byte {
	return p.region[p.lay.dataOff : p.lay.dataOff+p.lay.dataSize()]
}
