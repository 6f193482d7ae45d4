package pool

import (
	"errors"
	"testing"
)

func TestReallocInPlace(t *testing.T) {
	p := newTestPool(t, 1<<16, 16, nil)

	ref, b, err := p.Malloc(4 * p.Step())
	if err != nil {
		t.Fatal(err)
	}
	for i := range b {
		b[i] = byte(i)
	}

	// Same block count keeps the ref.
	ref2, b2, err := p.Realloc(ref, 4*p.Step()-5)
	if err != nil {
		t.Fatal(err)
	}
	if ref2 != ref {
		t.Fatalf("same-size realloc moved: %d -> %d", ref, ref2)
	}
	if len(b2) != 4*p.Step()-5 {
		t.Fatalf("payload length %d", len(b2))
	}

	// Shrink keeps the ref and releases the tail blocks.
	ref3, _, err := p.Realloc(ref, 2*p.Step())
	if err != nil {
		t.Fatal(err)
	}
	if ref3 != ref {
		t.Fatalf("shrink moved: %d -> %d", ref, ref3)
	}
	requireInvariants(t, p)

	// The released tail is allocatable again at its old position.
	tail, _, err := p.Malloc(2 * p.Step())
	if err != nil {
		t.Fatal(err)
	}
	if tail != ref+2*p.Step() {
		t.Fatalf("tail alloc ref %d, want %d", tail, ref+2*p.Step())
	}

	// Grow back in place after the tail is released again.
	if err := p.Free(tail); err != nil {
		t.Fatal(err)
	}
	ref4, b4, err := p.Realloc(ref, 4*p.Step())
	if err != nil {
		t.Fatal(err)
	}
	if ref4 != ref {
		t.Fatalf("in-place grow moved: %d -> %d", ref, ref4)
	}
	// Bytes of the surviving prefix are untouched.
	for i := 0; i < 2*p.Step(); i++ {
		if b4[i] != byte(i) {
			t.Fatalf("byte %d = %#x after in-place grow, want %#x", i, b4[i], byte(i))
		}
	}
	requireInvariants(t, p)
}

func TestReallocMove(t *testing.T) {
	p := newTestPool(t, 1<<16, 16, nil)

	ref, b, err := p.Malloc(2 * p.Step())
	if err != nil {
		t.Fatal(err)
	}
	for i := range b {
		b[i] = byte(0xc0 | i&0xf)
	}

	// Block the in-place grow path.
	blocker, _, err := p.Malloc(p.Step())
	if err != nil {
		t.Fatal(err)
	}
	if blocker != ref+2*p.Step() {
		t.Fatalf("blocker not adjacent: %d", blocker)
	}

	ref2, b2, err := p.Realloc(ref, 4*p.Step())
	if err != nil {
		t.Fatal(err)
	}
	if ref2 == ref {
		t.Fatal("collided grow did not move")
	}
	// Old contents survived the copy.
	for i := 0; i < 2*p.Step(); i++ {
		if b2[i] != byte(0xc0|i&0xf) {
			t.Fatalf("byte %d lost in move: %#x", i, b2[i])
		}
	}
	// The old run is free again.
	reuse, _, err := p.Malloc(2 * p.Step())
	if err != nil {
		t.Fatal(err)
	}
	if reuse != ref {
		t.Fatalf("old run not released: alloc got %d, want %d", reuse, ref)
	}
	requireInvariants(t, p)
}

func TestReallocFailureKeepsOriginal(t *testing.T) {
	p := newTestPool(t, 4096, 16, nil)

	ref, b, err := p.Malloc(2 * p.Step())
	if err != nil {
		t.Fatal(err)
	}
	b[0] = 0x5a

	// Exhaust the rest of the pool.
	for {
		if _, _, err := p.Malloc(p.Step()); err != nil {
			break
		}
	}

	if _, _, err := p.Realloc(ref, p.MaxAlloc()); !errors.Is(err, ErrExhausted) {
		t.Fatalf("realloc on full pool: got %v", err)
	}

	// Original allocation is untouched and still freeable.
	if b[0] != 0x5a {
		t.Fatalf("original payload clobbered: %#x", b[0])
	}
	if err := p.Free(ref); err != nil {
		t.Fatalf("free after failed realloc: %v", err)
	}
}

func TestReallocEnvelope(t *testing.T) {
	p := newTestPool(t, 1<<16, 16, nil)

	ref, _, err := p.Malloc(100)
	if err != nil {
		t.Fatal(err)
	}

	// Size zero frees.
	if _, _, err := p.Realloc(ref, 0); err != nil {
		t.Fatalf("Realloc to 0: %v", err)
	}
	if err := p.Free(ref); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("free after realloc-to-zero: got %v", err)
	}

	ref, _, err = p.Malloc(100)
	if err != nil {
		t.Fatal(err)
	}
	if _, _, err := p.Realloc(ref, -1); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("negative size: got %v", err)
	}
	if _, _, err := p.Realloc(ref, p.MaxAlloc()+1); !errors.Is(err, ErrTooLarge) {
		t.Fatalf("oversized: got %v", err)
	}
	if _, _, err := p.Realloc(ref+p.Step(), 16); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("interior ref: got %v", err)
	}
}
