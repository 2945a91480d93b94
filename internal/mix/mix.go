// Package mix implements the rainbow mixing kernel: two rounds over a 4x64-bit
// state built from multiply-rotate-multiply chains with cross-word feedback.
package mix

import "math/bits"

// Round constants. P is 2^64-59, the largest 64-bit prime; the rest are the
// odd multipliers fixed by the rainbow family.
const (
	P uint64 = 0xFFFFFFFFFFFFFFC5
	Q uint64 = 13166748625691186689
	R uint64 = 1573836600196043749
	S uint64 = 1478582680485693857
	T uint64 = 1584163446043636637
	U uint64 = 1358537349836140151
	V uint64 = 2849285319520710901
	W uint64 = 2366157163652459183
)

// A applies the full round to all four state words. h[1] folds in the mixed
// h[0], and h[3] folds in the mixed h[2], before their own chains run.
func A(h *[4]uint64) {
	a := h[0] * P
	a = bits.RotateLeft64(a, -23)
	a *= Q

	b := h[1] ^ a
	b *= R
	b = bits.RotateLeft64(b, -29)
	b *= S

	c := h[2] * T
	c = bits.RotateLeft64(c, -31)
	c *= U

	d := h[3] ^ c
	d *= V
	d = bits.RotateLeft64(d, -37)
	d *= W

	h[0], h[1], h[2], h[3] = a, b, c, d
}

// B applies the light round, touching only h[1] and h[2]. The iv (the hash
// seed) is folded into h[2] on every application, keying the whole stream.
func B(h *[4]uint64, iv uint64) {
	a := h[1] * V
	a = bits.RotateLeft64(a, -23)
	a *= W

	b := h[2] ^ (a + iv)
	b *= R
	b = bits.RotateLeft64(b, -23)
	b *= S

	h[1], h[2] = a, b
}
