//go:build !unix

package memregion

import "fmt"

// Alloc falls back to a heap-backed region when mmap is not available.
func Alloc(size int) ([]byte, func() error, error) {
	if size <= 0 {
		return nil, nil, fmt.Errorf("memregion: invalid region size %d", size)
	}
	return make([]byte, size), func() error { return nil }, nil
}
