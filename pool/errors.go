package pool

import "errors"

var (
	// ErrInvalidArgument indicates a nil or undersized buffer, an alignment
	// above the supported maximum, a zero-length region after alignment
	// padding, or misuse such as freeing a pointer that does not start an
	// allocation.
	ErrInvalidArgument = errors.New("pool: invalid argument")

	// ErrCapacityExceeded indicates the buffer is too small to host even a
	// single chunk after header and bitmap overhead.
	ErrCapacityExceeded = errors.New("pool: buffer too small for one chunk")

	// ErrTooLarge indicates a single allocation request exceeding one
	// chunk's byte capacity (step * ChunkBlocks).
	ErrTooLarge = errors.New("pool: request exceeds chunk capacity")

	// ErrExhausted indicates no contiguous free run is currently available.
	ErrExhausted = errors.New("pool: no contiguous free run available")

	// ErrCorrupted indicates a sentinel tag mismatch: the handle was never
	// initialized, the buffer was modified by foreign code, or the pool was
	// already closed.
	ErrCorrupted = errors.New("pool: invalid or closed pool")
)
