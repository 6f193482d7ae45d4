package pool

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/tinypool/internal/format"
)

// alignedBuf returns a buffer whose first byte sits on an align boundary
// and is exactly size bytes long, so layout math in tests is
// deterministic (New consumes zero padding).
func alignedBuf(t testing.TB, size, align int) []byte {
	t.Helper()
	raw := make([]byte, size+align)
	base := uintptr(unsafe.Pointer(&raw[0]))
	pad := int((uintptr(align) - base%uintptr(align)) % uintptr(align))
	return raw[pad : pad+size]
}

// newTestPool builds a pool over an aligned buffer of exactly size bytes.
func newTestPool(t testing.TB, size, align int, cfg *Config) *Pool {
	t.Helper()
	bufAlign := align
	if bufAlign < format.WordSize {
		bufAlign = format.WordSize
	}
	p, err := New(alignedBuf(t, size, bufAlign), align, cfg)
	require.NoError(t, err)
	return p
}

// requireInvariants validates the bitmap invariants: every head bit has
// its body bit set, and the head bits partition the body bits into
// disjoint contiguous runs with no orphaned occupied blocks.
func requireInvariants(t testing.TB, p *Pool) {
	t.Helper()
	for i := 0; i < p.lay.chunkCount; i++ {
		head := p.headWord(i)
		body := p.bodyWord(i)
		require.Zero(t, head&^body, "chunk %d: head bit without body bit", i)

		inRun := false
		for b := 0; b < format.ChunkBlocks; b++ {
			bit := uint(1) << uint(b)
			switch {
			case head&bit != 0:
				inRun = true
			case body&bit != 0:
				require.True(t, inRun, "chunk %d: occupied block %d has no run start", i, b)
			default:
				inRun = false
			}
		}
	}
}

// bitmapWords captures every head and body word for before/after
// comparisons in misuse tests.
func bitmapWords(p *Pool) ([]uint, []uint) {
	head := make([]uint, p.lay.chunkCount)
	body := make([]uint, p.lay.chunkCount)
	for i := 0; i < p.lay.chunkCount; i++ {
		head[i] = p.headWord(i)
		body[i] = p.bodyWord(i)
	}
	return head, body
}
