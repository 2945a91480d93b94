package rainbow

import (
	"encoding"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/codahale/rainbow/internal/mem"
)

const (
	stateMagic    = "rbw\x01"
	marshaledSize = len(stateMagic) + 1 + 1 + 1 + BlockSize + 32 + 8

	flagOdd       = 1 << 0
	flagFinalized = 1 << 1
	flagBigEndian = 1 << 2
)

// AppendBinary implements encoding.BinaryAppender. The format is versioned and
// carries the whole state: a restored State continues to the same digest.
func (s *State) AppendBinary(b []byte) ([]byte, error) {
	ret, out := mem.SliceForAppend(b, marshaledSize)

	n := copy(out, stateMagic)
	var flags byte
	if s.odd {
		flags |= flagOdd
	}
	if s.finalized {
		flags |= flagFinalized
	}
	if s.order == binary.ByteOrder(binary.BigEndian) {
		flags |= flagBigEndian
	}
	out[n] = flags
	out[n+1] = byte(s.size.Bytes())
	out[n+2] = byte(s.n)
	n += 3
	n += copy(out[n:], s.buf[:])
	for _, w := range s.h {
		binary.LittleEndian.PutUint64(out[n:], w)
		n += 8
	}
	binary.LittleEndian.PutUint64(out[n:], s.seed)

	return ret, nil
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (s *State) MarshalBinary() ([]byte, error) {
	return s.AppendBinary(make([]byte, 0, marshaledSize))
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (s *State) UnmarshalBinary(data []byte) error {
	if len(data) < len(stateMagic) || string(data[:len(stateMagic)]) != stateMagic {
		return errors.New("rainbow: invalid hash state identifier")
	}
	if len(data) != marshaledSize {
		return errors.New("rainbow: invalid hash state size")
	}

	flags := data[4]
	size := Size(data[5]) * 8
	n := int(data[6])
	switch size {
	case Size64, Size128, Size256:
	default:
		return errors.New("rainbow: invalid hash state")
	}
	if n >= BlockSize {
		return errors.New("rainbow: invalid hash state")
	}

	s.odd = flags&flagOdd != 0
	s.finalized = flags&flagFinalized != 0
	s.order = binary.LittleEndian
	if flags&flagBigEndian != 0 {
		s.order = binary.BigEndian
	}
	s.size = size
	s.n = n
	copy(s.buf[:], data[7:7+BlockSize])
	for i := range s.h {
		s.h[i] = binary.LittleEndian.Uint64(data[7+BlockSize+8*i:])
	}
	s.seed = binary.LittleEndian.Uint64(data[7+BlockSize+32:])

	return nil
}

// String returns the state words as hex, for debugging.
func (s *State) String() string {
	return fmt.Sprintf("%016x%016x%016x%016x", s.h[0], s.h[1], s.h[2], s.h[3])
}

var (
	_ fmt.Stringer               = (*State)(nil)
	_ encoding.BinaryAppender    = (*State)(nil)
	_ encoding.BinaryMarshaler   = (*State)(nil)
	_ encoding.BinaryUnmarshaler = (*State)(nil)
)
