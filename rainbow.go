// Package rainbow implements the rainbow hash family: a keyed, non-cryptographic
// hash producing 64-, 128-, or 256-bit digests, usable one-shot or incrementally.
// The state is four 64-bit words mixed with multiply-rotate-multiply rounds; a
// 64-bit seed keys both the initial state and every light round, so digests
// under different seeds are unrelated without any key schedule. The 64-bit
// digest is a prefix of the 128-bit digest, which is a prefix of the 256-bit
// digest.
//
// Rainbow is not a cryptographic hash. It offers no collision resistance
// against adversarial inputs and must not be used for fingerprinting untrusted
// data, MACs, or anything security-sensitive. It is built for hash tables,
// checksums, and deduplication, where speed and distribution quality matter.
//
// Digests are defined in little-endian byte order; big-endian output is
// available via [WithByteOrder] for interoperability experiments.
//
// Ported from the C++ implementation at [rain].
//
// [rain]: https://github.com/dosyago/rain
package rainbow

import (
	"encoding/binary"
	"errors"
)

// BlockSize is the number of input bytes absorbed per round.
const BlockSize = 16

// ErrFinalized is returned by Absorb and Finalize once a state has produced
// its digest.
var ErrFinalized = errors.New("rainbow: state already finalized")

// Size is a digest size in bits.
type Size int

// The three digest sizes.
const (
	Size64  Size = 64
	Size128 Size = 128
	Size256 Size = 256
)

// Bytes returns the size in bytes.
func (s Size) Bytes() int {
	return int(s) / 8
}

func (s Size) check() {
	switch s {
	case Size64, Size128, Size256:
	default:
		panic("rainbow: invalid digest size")
	}
}

// An Option configures a State.
type Option func(*State)

// WithByteOrder sets the byte order used to load input words and store digest
// words. It must be binary.LittleEndian (the default, and the canonical digest
// encoding) or binary.BigEndian.
func WithByteOrder(order binary.ByteOrder) Option {
	if order != binary.ByteOrder(binary.LittleEndian) && order != binary.ByteOrder(binary.BigEndian) {
		panic("rainbow: byte order must be little- or big-endian")
	}
	return func(s *State) {
		s.order = order
	}
}
