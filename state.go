package rainbow

import (
	"encoding/binary"

	"github.com/codahale/rainbow/internal/mem"
	"github.com/codahale/rainbow/internal/mix"
)

// A State is an incremental rainbow hash. States are cheap to create and copy
// and are not safe for concurrent use; hash inputs in parallel by giving each
// its own State.
type State struct {
	h         [4]uint64
	seed      uint64
	buf       [BlockSize]byte
	n         int
	size      Size
	order     binary.ByteOrder
	odd       bool
	finalized bool
}

// NewKnownLength returns a State for an input whose total length in bytes is
// known up front. The length is bound into the initial state, so the digest of
// the absorbed bytes equals the one-shot digest of the same bytes. Absorbing a
// different number of bytes than declared is not detected and yields a digest
// of nothing in particular.
func NewKnownLength(seed, length uint64, size Size, opts ...Option) *State {
	size.check()
	s := &State{
		h:     [4]uint64{seed + length + 1, seed + length + 3, seed + length + 5, seed + length + 7},
		seed:  seed,
		size:  size,
		order: binary.LittleEndian,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewUnknownLength returns a State for an input whose total length is not
// known until the final byte arrives. Its digests are fully defined but
// intentionally differ from known-length and one-shot digests of the same
// bytes.
func NewUnknownLength(seed uint64, size Size, opts ...Option) *State {
	size.check()
	s := &State{
		h:     [4]uint64{seed + 1002, seed + 1000, seed + 988, seed + 984},
		seed:  seed,
		size:  size,
		order: binary.LittleEndian,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Absorb adds p to the hashed input. Chunk boundaries never affect the digest;
// any sequence of Absorb calls whose concatenation is the same yields the same
// digest. Returns ErrFinalized if Finalize has been called.
func (s *State) Absorb(p []byte) error {
	if s.finalized {
		return ErrFinalized
	}
	s.absorb(p)
	return nil
}

// Finalize appends the digest to dst and returns the extended slice. The state
// can produce exactly one digest; all later Absorb and Finalize calls return
// ErrFinalized.
func (s *State) Finalize(dst []byte) ([]byte, error) {
	if s.finalized {
		return nil, ErrFinalized
	}
	s.finalized = true
	return s.finalize(dst), nil
}

// Size returns the digest size.
func (s *State) Size() Size {
	return s.size
}

// Seed returns the seed the state was created with.
func (s *State) Seed() uint64 {
	return s.seed
}

// Clone returns a copy of the state which can absorb and finalize
// independently of the original.
func (s *State) Clone() *State {
	c := *s
	return &c
}

func (s *State) absorb(p []byte) {
	if s.n > 0 {
		c := copy(s.buf[s.n:], p)
		s.n += c
		p = p[c:]
		if s.n < BlockSize {
			return
		}
		s.block(s.buf[:])
		s.n = 0
	}

	for len(p) >= BlockSize {
		s.block(p[:BlockSize])
		p = p[BlockSize:]
	}

	s.n = copy(s.buf[:], p)
}

// block injects one full 16-byte block and applies the alternating round.
// Blocks at even positions (starting from zero) get the full round, odd
// positions the light round.
func (s *State) block(b []byte) {
	w0 := s.order.Uint64(b[0:8])
	w1 := s.order.Uint64(b[8:16])

	s.h[0] -= w0
	s.h[1] += w0
	s.h[2] += w1
	s.h[3] -= w1

	if s.odd {
		mix.B(&s.h, s.seed)
	} else {
		mix.A(&s.h)
	}
	s.odd = !s.odd
}

// tailFold maps a byte position within the final partial block to the state
// word and left shift it is added at.
var tailFold = [BlockSize - 1]struct {
	word  int
	shift uint
}{
	{2, 0}, {1, 8}, {0, 16}, {3, 24}, {2, 32}, {1, 40}, {0, 48},
	{3, 0}, {2, 8}, {1, 16}, {0, 24}, {3, 32}, {2, 40}, {1, 48},
	{0, 56},
}

func (s *State) finalize(dst []byte) []byte {
	// The closing sequence runs even with an empty remainder, so the empty
	// input still gets mixed.
	mix.B(&s.h, s.seed)
	for i := s.n - 1; i >= 0; i-- {
		f := tailFold[i]
		s.h[f.word] += uint64(s.buf[i]) << f.shift
	}
	mix.A(&s.h)
	mix.B(&s.h, s.seed)
	mix.A(&s.h)

	ret, out := mem.SliceForAppend(dst, s.size.Bytes())
	s.squeeze(out)
	return ret
}

// squeeze extracts the digest. Each output word is the negated sum of the two
// upper state words; the state advances between extractions so that shorter
// digests are prefixes of longer ones.
func (s *State) squeeze(out []byte) {
	s.order.PutUint64(out[0:8], -(s.h[2] + s.h[3]))
	if s.size == Size64 {
		return
	}

	mix.A(&s.h)
	s.order.PutUint64(out[8:16], -(s.h[2] + s.h[3]))
	if s.size == Size128 {
		return
	}

	mix.A(&s.h)
	mix.B(&s.h, s.seed)
	mix.A(&s.h)
	s.order.PutUint64(out[16:24], -(s.h[2] + s.h[3]))

	mix.A(&s.h)
	s.order.PutUint64(out[24:32], -(s.h[2] + s.h[3]))
}
