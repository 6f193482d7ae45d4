package format

import "math/bits"

// Alignment utilities for the pool layout. Sub-region boundaries (header,
// bitmaps, data) must each land on specific byte boundaries.

// AlignUp returns n aligned up to the next multiple of align.
// align must be a power of two.
//
// Example:
//
//	AlignUp(1, 16)  = 16
//	AlignUp(16, 16) = 16
//	AlignUp(17, 16) = 32
func AlignUp(n, align int) int {
	return (n + align - 1) &^ (align - 1)
}

// IsPow2 reports whether n is a power of two.
func IsPow2(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// NextPow2 returns the smallest power of two >= n. n must be >= 1.
//
// Example:
//
//	NextPow2(1)  = 1
//	NextPow2(3)  = 4
//	NextPow2(16) = 16
func NextPow2(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}
