package pool

import (
	"errors"
	"testing"
	"unsafe"

	"github.com/joshuapare/tinypool/internal/format"
)

func TestMallocSizeEnvelope(t *testing.T) {
	p := newTestPool(t, 1<<16, 16, nil)

	// Size zero succeeds without touching the pool.
	headBefore, bodyBefore := bitmapWords(p)
	ref, b, err := p.Malloc(0)
	if err != nil {
		t.Fatalf("Malloc(0): %v", err)
	}
	if ref != 0 || b != nil {
		t.Fatalf("Malloc(0) = (%d, %v), want (0, nil)", ref, b)
	}
	headAfter, bodyAfter := bitmapWords(p)
	for i := range headBefore {
		if headBefore[i] != headAfter[i] || bodyBefore[i] != bodyAfter[i] {
			t.Fatalf("Malloc(0) mutated chunk %d", i)
		}
	}

	if _, _, err := p.Malloc(-1); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("Malloc(-1): got %v", err)
	}

	// The largest single allocation is one full chunk.
	if _, _, err := p.Malloc(p.MaxAlloc()); err != nil {
		t.Fatalf("Malloc(MaxAlloc): %v", err)
	}
	if _, _, err := p.Malloc(p.MaxAlloc() + 1); !errors.Is(err, ErrTooLarge) {
		t.Fatalf("Malloc(MaxAlloc+1): got %v", err)
	}
}

func TestMallocPayloadLenAndAlignment(t *testing.T) {
	p := newTestPool(t, 1<<16, 32, nil)

	for _, size := range []int{1, 15, 16, 17, 31, 32, 33, 100, 1000} {
		ref, b, err := p.Malloc(size)
		if err != nil {
			t.Fatalf("Malloc(%d): %v", size, err)
		}
		if len(b) != size {
			t.Fatalf("Malloc(%d): payload length %d", size, len(b))
		}
		if ref%p.Step() != 0 {
			t.Fatalf("Malloc(%d): ref %d not step-aligned", size, ref)
		}
		if addr := uintptr(unsafe.Pointer(&b[0])); addr%uintptr(p.Align()) != 0 {
			t.Fatalf("Malloc(%d): payload address %#x not %d-aligned", size, addr, p.Align())
		}
	}
	requireInvariants(t, p)
}

func TestMallocFirstFit(t *testing.T) {
	p := newTestPool(t, 1<<16, 16, nil)

	a, _, err := p.Malloc(p.Step())
	if err != nil {
		t.Fatal(err)
	}
	b, _, err := p.Malloc(p.Step())
	if err != nil {
		t.Fatal(err)
	}
	if a != 0 || b != p.Step() {
		t.Fatalf("sequential refs %d, %d; want 0, %d", a, b, p.Step())
	}

	// The lowest freed slot is reused first even when later slots are
	// also free.
	c, _, err := p.Malloc(p.Step())
	if err != nil {
		t.Fatal(err)
	}
	if err := p.Free(a); err != nil {
		t.Fatal(err)
	}
	if err := p.Free(c); err != nil {
		t.Fatal(err)
	}
	got, _, err := p.Malloc(p.Step())
	if err != nil {
		t.Fatal(err)
	}
	if got != a {
		t.Fatalf("reuse picked ref %d, want lowest free ref %d", got, a)
	}
}

func TestMallocDisjointRuns(t *testing.T) {
	p := newTestPool(t, 1<<16, 16, nil)

	type span struct{ lo, hi int }
	var spans []span
	for _, size := range []int{16, 48, 7, 200, 64, 1} {
		ref, _, err := p.Malloc(size)
		if err != nil {
			t.Fatalf("Malloc(%d): %v", size, err)
		}
		blocks := (size + p.Step() - 1) / p.Step()
		s := span{ref, ref + blocks*p.Step()}
		for _, o := range spans {
			if s.lo < o.hi && o.lo < s.hi {
				t.Fatalf("span [%d,%d) overlaps [%d,%d)", s.lo, s.hi, o.lo, o.hi)
			}
		}
		spans = append(spans, s)
	}
	requireInvariants(t, p)
}

// TestMallocMaxPerChunk exercises the property that a maximal allocation
// succeeds exactly once per chunk before the pool reports exhaustion.
func TestMallocMaxPerChunk(t *testing.T) {
	p := newTestPool(t, 1<<16, 16, nil)

	for i := 0; i < p.ChunkCount(); i++ {
		ref, _, err := p.Malloc(p.MaxAlloc())
		if err != nil {
			t.Fatalf("maximal alloc %d: %v", i, err)
		}
		if ref != i*format.ChunkBlocks*p.Step() {
			t.Fatalf("maximal alloc %d: ref %d, want chunk base %d",
				i, ref, i*format.ChunkBlocks*p.Step())
		}
	}
	if _, _, err := p.Malloc(p.MaxAlloc()); !errors.Is(err, ErrExhausted) {
		t.Fatalf("alloc past capacity: got %v", err)
	}
	// Even the smallest request fails now.
	if _, _, err := p.Malloc(1); !errors.Is(err, ErrExhausted) {
		t.Fatalf("small alloc on full pool: got %v", err)
	}
}

func TestMallocZeroed(t *testing.T) {
	p := newTestPool(t, 1<<16, 16, nil)

	// Dirty a run, free it, then reallocate it zeroed.
	ref, b, err := p.Malloc(100)
	if err != nil {
		t.Fatal(err)
	}
	for i := range b {
		b[i] = 0xff
	}
	if err := p.Free(ref); err != nil {
		t.Fatal(err)
	}

	ref2, b2, err := p.MallocZeroed(60)
	if err != nil {
		t.Fatal(err)
	}
	if ref2 != ref {
		t.Fatalf("expected reuse of ref %d, got %d", ref, ref2)
	}
	for i, v := range b2 {
		if v != 0 {
			t.Fatalf("byte %d not zeroed: %#x", i, v)
		}
	}
}

func TestMallocCounted(t *testing.T) {
	p := newTestPool(t, 1<<16, 16, nil)

	_, b, err := p.MallocCounted(10, 12)
	if err != nil {
		t.Fatal(err)
	}
	if len(b) != 120 {
		t.Fatalf("payload length %d, want 120", len(b))
	}

	if _, _, err := p.MallocCounted(maxInt, 2); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("overflowing count: got %v", err)
	}
	if _, _, err := p.MallocCounted(-1, 8); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("negative count: got %v", err)
	}
	if _, _, err := p.MallocCountedZeroed(maxInt/2+1, 2); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("overflowing zeroed count: got %v", err)
	}

	// Zero items is the size-zero envelope.
	ref, b, err := p.MallocCounted(0, 8)
	if err != nil || ref != 0 || b != nil {
		t.Fatalf("MallocCounted(0, 8) = (%d, %v, %v)", ref, b, err)
	}
}

func TestMallocStats(t *testing.T) {
	p := newTestPool(t, 1<<16, 16, &Config{TrackStats: true})

	if _, _, err := p.Malloc(10); err != nil {
		t.Fatal(err)
	}
	ref, _, err := p.Malloc(30)
	if err != nil {
		t.Fatal(err)
	}

	s := p.Stats()
	if s.Allocs != 2 {
		t.Fatalf("allocs = %d, want 2", s.Allocs)
	}
	if s.Need != 40 {
		t.Fatalf("need = %d, want 40", s.Need)
	}
	// 10 rounds to one block, 30 to two.
	if s.Real != 3*p.Step() {
		t.Fatalf("real = %d, want %d", s.Real, 3*p.Step())
	}
	if s.Used != s.Real || s.Peak != s.Used {
		t.Fatalf("used/peak mismatch: %+v", s)
	}

	if err := p.Free(ref); err != nil {
		t.Fatal(err)
	}
	s = p.Stats()
	if s.Used != p.Step() {
		t.Fatalf("used after free = %d, want %d", s.Used, p.Step())
	}
	if s.Peak != 3*p.Step() {
		t.Fatalf("peak after free = %d, want %d", s.Peak, 3*p.Step())
	}

	if _, _, err := p.Malloc(p.MaxAlloc() + 1); err == nil {
		t.Fatal("expected failure")
	}
	if got := p.Stats().Fails; got != 1 {
		t.Fatalf("fails = %d, want 1", got)
	}
}

func TestStatsDisabledByDefault(t *testing.T) {
	p := newTestPool(t, 1<<16, 16, nil)
	if _, _, err := p.Malloc(100); err != nil {
		t.Fatal(err)
	}
	if p.Stats() != (Stats{}) {
		t.Fatalf("stats tracked without opt-in: %+v", p.Stats())
	}
}
