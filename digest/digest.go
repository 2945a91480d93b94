// Package digest provides standard library hash.Hash adapters for the rainbow
// hash family.
package digest

import (
	"encoding"
	"encoding/binary"
	"errors"
	"hash"

	"github.com/codahale/rainbow"
)

// New returns a hash.Hash computing a rainbow digest of the given size under
// the given seed. The total input length is not known until Sum, so the
// length-independent initializer is used; digests differ from the one-shot
// functions, which bind the input length up front.
func New(seed uint64, size rainbow.Size) hash.Hash {
	d := &digest{seed: seed, size: size}
	d.Reset()
	return d
}

// New128 returns a hash.Hash computing a 128-bit rainbow digest.
func New128(seed uint64) hash.Hash {
	return New(seed, rainbow.Size128)
}

// New256 returns a hash.Hash computing a 256-bit rainbow digest.
func New256(seed uint64) hash.Hash {
	return New(seed, rainbow.Size256)
}

// New64 returns a hash.Hash64 computing a 64-bit rainbow digest.
func New64(seed uint64) hash.Hash64 {
	d := &digest64{digest{seed: seed, size: rainbow.Size64}}
	d.Reset()
	return d
}

type digest struct {
	s    *rainbow.State
	seed uint64
	size rainbow.Size
}

func (d *digest) Write(p []byte) (n int, err error) {
	if err := d.s.Absorb(p); err != nil {
		return 0, err
	}
	return len(p), nil
}

func (d *digest) Sum(b []byte) []byte {
	sum, _ := d.s.Clone().Finalize(b) // the clone is never finalized before this
	return sum
}

func (d *digest) Reset() {
	d.s = rainbow.NewUnknownLength(d.seed, d.size)
}

func (d *digest) Size() int {
	return d.size.Bytes()
}

func (d *digest) BlockSize() int {
	return rainbow.BlockSize
}

func (d *digest) AppendBinary(b []byte) ([]byte, error) {
	return d.s.AppendBinary(b)
}

func (d *digest) MarshalBinary() ([]byte, error) {
	return d.s.MarshalBinary()
}

func (d *digest) UnmarshalBinary(data []byte) error {
	s := new(rainbow.State)
	if err := s.UnmarshalBinary(data); err != nil {
		return err
	}
	d.s = s
	d.seed = s.Seed()
	d.size = s.Size()
	return nil
}

type digest64 struct {
	digest
}

func (d *digest64) Sum64() uint64 {
	var buf [8]byte
	d.Sum(buf[:0])
	return binary.LittleEndian.Uint64(buf[:])
}

func (d *digest64) UnmarshalBinary(data []byte) error {
	s := new(rainbow.State)
	if err := s.UnmarshalBinary(data); err != nil {
		return err
	}
	if s.Size() != rainbow.Size64 {
		return errors.New("rainbow: invalid hash state size")
	}
	d.s = s
	d.seed = s.Seed()
	d.size = s.Size()
	return nil
}

var (
	_ hash.Hash                  = (*digest)(nil)
	_ hash.Hash64                = (*digest64)(nil)
	_ encoding.BinaryAppender    = (*digest)(nil)
	_ encoding.BinaryMarshaler   = (*digest)(nil)
	_ encoding.BinaryUnmarshaler = (*digest)(nil)
)
