package format

import "encoding/binary"

// Word read/write over the pool buffer, little-endian.
//
// Implementation: encoding/binary.LittleEndian. The compiler inlines and
// optimizes these calls well; unsafe pointer variants provide no
// measurable benefit on this access pattern.

// PutWord writes a native word to the buffer at the specified byte offset.
func PutWord(b []byte, off int, v uint) {
	if WordSize == 8 {
		binary.LittleEndian.PutUint64(b[off:off+8], uint64(v))
		return
	}
	binary.LittleEndian.PutUint32(b[off:off+4], uint32(v))
}

// ReadWord reads a native word from the buffer at the specified byte offset.
func ReadWord(b []byte, off int) uint {
	if WordSize == 8 {
		return uint(binary.LittleEndian.Uint64(b[off : off+8]))
	}
	return uint(binary.LittleEndian.Uint32(b[off : off+4]))
}
