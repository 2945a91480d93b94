package rainbow

import "io"

// A Stream is an unbounded keystream derived from an input by iterated
// re-hashing: the first block is the digest of the input, and every following
// block is the digest of the previous block under the same seed and size. Read
// always fills p and never returns an error.
//
// The keystream is deterministic in (seed, size, data) and independent of how
// it is read.
type Stream struct {
	seed uint64
	size Size
	buf  [32]byte
	off  int
}

// NewStream returns a Stream seeded with the digest of data.
func NewStream(seed uint64, size Size, data []byte) *Stream {
	size.check()
	s := &Stream{seed: seed, size: size}
	Sum(s.buf[:0], data, seed, size)
	return s
}

// Read fills p with the next len(p) bytes of the keystream.
func (s *Stream) Read(p []byte) (int, error) {
	bs := s.size.Bytes()
	for n := 0; n < len(p); {
		if s.off == bs {
			var d [32]byte
			Sum(d[:0], s.buf[:bs], s.seed, s.size)
			s.buf = d
			s.off = 0
		}
		c := copy(p[n:], s.buf[s.off:bs])
		s.off += c
		n += c
	}
	return len(p), nil
}

var _ io.Reader = (*Stream)(nil)
