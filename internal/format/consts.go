// Package format houses the low-level word and alignment primitives the
// pool layout is built on. The goal is to keep the bit-level plumbing
// focused and allocation-free so the higher-level pool package can
// concentrate on policy rather than byte arithmetic.
package format

import "math/bits"

const (
	// WordBits is the width of the native machine word in bits (32 or 64).
	// One occupancy bitmap word tracks exactly WordBits blocks, so this is
	// also the number of blocks per chunk.
	WordBits = bits.UintSize

	// WordSize is the width of the native machine word in bytes.
	WordSize = WordBits / 8

	// ChunkBlocks is the number of blocks tracked by a single chunk.
	ChunkBlocks = WordBits

	// MinStep is the minimum allocation granularity in bytes. The step is
	// max(alignment, MinStep), so a single chunk covers at least
	// ChunkBlocks * 16 bytes.
	MinStep = 16

	// MaxAlign is the largest supported alignment in bytes.
	MaxAlign = 64

	// FullWord is a bitmap word with every block marked occupied. Used for
	// the O(1) full-chunk skip in the scanner.
	FullWord = ^uint(0)
)

// Header word indexes. The header is written into the buffer itself so a
// pool can be told apart from an uninitialized or foreign region.
const (
	// HdrMagic is the sentinel tag word.
	HdrMagic = 0

	// HdrAlign is the alignment word.
	HdrAlign = 1

	// HdrStep is the step (granularity) word.
	HdrStep = 2

	// HdrChunks is the chunk count word.
	HdrChunks = 3

	// HeaderWords is the number of header words at the buffer start.
	HeaderWords = 4

	// HeaderSize is the header size in bytes.
	HeaderSize = HeaderWords * WordSize
)

// PoolMagic is the sentinel tag identifying an initialized pool header.
// Reads as "pool" in little-endian byte order.
const PoolMagic uint = 0x6c6f6f70
