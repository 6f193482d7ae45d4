// Package memregion provisions raw byte regions for pools. On unix the
// regions come from anonymous mmap, so they are page-aligned and stay off
// the Go heap; elsewhere a plain slice is used.
package memregion
