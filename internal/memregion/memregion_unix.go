//go:build unix

package memregion

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"
)

// Alloc maps size bytes of zeroed, page-aligned anonymous memory. The
// returned cleanup unmaps the region; payloads carved from it must not be
// used afterwards.
func Alloc(size int) ([]byte, func() error, error) {
	if size <= 0 {
		return nil, nil, fmt.Errorf("memregion: invalid region size %d", size)
	}
	data, err := unix.Mmap(-1, 0, size,
		unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, nil, fmt.Errorf("memregion: mmap: %w", err)
	}
	cleanup := func() error {
		if data == nil {
			return nil
		}
		err := unix.Munmap(data)
		data = nil
		if errors.Is(err, unix.EINVAL) {
			// Treat double-unmap as no-op for callers.
			return nil
		}
		return err
	}
	return data, cleanup, nil
}
