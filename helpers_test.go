package rainbow_test

import "encoding/binary"

// pattern returns n bytes of a fixed position-dependent sequence.
func pattern(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(i*7 + 3)
	}
	return b
}

// le64 returns the canonical (little-endian) byte encoding of a 64-bit digest
// word.
func le64(v uint64) [8]byte {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	return b
}
