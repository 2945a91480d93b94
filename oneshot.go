package rainbow

import "encoding/binary"

// Sum appends the digest of data under the given seed to dst and returns the
// extended slice. Output is in the canonical little-endian encoding.
func Sum(dst, data []byte, seed uint64, size Size) []byte {
	s := NewKnownLength(seed, uint64(len(data)), size)
	s.absorb(data)
	return s.finalize(dst)
}

// Sum64 returns the 64-bit digest of data under the given seed. The canonical
// byte encoding of the digest is the little-endian encoding of the returned
// word.
func Sum64(data []byte, seed uint64) uint64 {
	var d [8]byte
	Sum(d[:0], data, seed, Size64)
	return binary.LittleEndian.Uint64(d[:])
}

// Sum128 returns the 128-bit digest of data under the given seed in the
// canonical encoding.
func Sum128(data []byte, seed uint64) [16]byte {
	var d [16]byte
	Sum(d[:0], data, seed, Size128)
	return d
}

// Sum256 returns the 256-bit digest of data under the given seed in the
// canonical encoding.
func Sum256(data []byte, seed uint64) [32]byte {
	var d [32]byte
	Sum(d[:0], data, seed, Size256)
	return d
}
