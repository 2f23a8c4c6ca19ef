package ckks

import (
	"math/bits"

	"github.com/holiman/uint256"
)

// Modulus bundles a prime with its precomputed Barrett reduction
// constant. The spec's (ratio_hi, ratio_lo) pair models a two-word
// Barrett ratio; this package's BarrettReduce works on one 64-bit word
// and uses mu=floor(2^64/q), which fits in a single 64-bit word for any
// q > 1, so NewModulus always sets RatioHi to zero. The field is kept as a pair (rather
// than collapsed to one uint64) to match that contract and leave room
// for a modulus wide enough to need it.
type Modulus struct {
	Value   uint64
	RatioHi uint64
	RatioLo uint64
}

// NewModulus computes the Barrett ratio for q and returns the Modulus.
// q must be a positive prime; this package's own tables keep q <= 30
// bits, but NewModulus itself works for any q < 2^63.
func NewModulus(q uint64) Modulus {
	one := uint256.NewInt(1)
	r := new(uint256.Int).Lsh(one, 64)
	qBig := uint256.NewInt(q)
	r.Div(r, qBig)
	return Modulus{Value: q, RatioHi: 0, RatioLo: r.Uint64()}
}

// BarrettReduce returns x mod q for any 64-bit x.
func (m Modulus) BarrettReduce(x uint64) uint64 {
	// Quotient estimate q_est = floor(x * mu / 2^64), mu = RatioLo (the
	// RatioHi*x term only matters for a modulus wide enough to need the
	// split ratio; NewModulus never produces a nonzero RatioHi today).
	qEst, _ := bits.Mul64(x, m.RatioLo)
	if m.RatioHi != 0 {
		qEst += x * m.RatioHi
	}

	r := x - qEst*m.Value
	// At most two correction subtractions are needed for this mu.
	if r >= m.Value {
		r -= m.Value
	}
	if r >= m.Value {
		r -= m.Value
	}
	return r
}

// AddMod returns (a+b) mod q. a and b must already be residues (< q).
func (m Modulus) AddMod(a, b uint64) uint64 {
	s := a + b
	if s >= m.Value {
		s -= m.Value
	}
	return s
}

// SubMod returns (a-b) mod q. a and b must already be residues (< q).
func (m Modulus) SubMod(a, b uint64) uint64 {
	if a >= b {
		return a - b
	}
	return m.Value - (b - a)
}

// NegMod returns -x mod q: q-x when x != 0, else 0.
func (m Modulus) NegMod(x uint64) uint64 {
	if x == 0 {
		return 0
	}
	return m.Value - x
}

// MulMod returns (a*b) mod q via a double-word intermediate and Barrett
// reduction. a and b must already be residues (< q). Every prime this
// package ships is <= 30 bits, so the product never exceeds 60 bits and
// the high word of the product is always zero; BarrettReduce handles
// that case directly. The wide path below only engages for a modulus
// wider than 32 bits, kept for the same forward-compatibility reason as
// Modulus.RatioHi.
func (m Modulus) MulMod(a, b uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	if hi == 0 {
		return m.BarrettReduce(lo)
	}
	return m.barrettReduceWide(hi, lo)
}

// barrettReduceWide reduces a genuine double-word product (hi<<64 | lo)
// mod q for the case hi != 0 — only reachable for a modulus wider than
// 32 bits, which none of this package's shipped prime tables use. It
// falls back to an exact 256-bit-capable division via uint256 rather
// than a second hand-rolled Barrett fold, since this path is never hot.
func (m Modulus) barrettReduceWide(hi, lo uint64) uint64 {
	prod := new(uint256.Int).Lsh(uint256.NewInt(hi), 64)
	prod.Or(prod, uint256.NewInt(lo))
	q := uint256.NewInt(m.Value)
	r := new(uint256.Int).Mod(prod, q)
	return r.Uint64()
}

// Poly operations, operating on RNS polynomials (one residue per
// coefficient, all reduced mod the same prime).

// RNSPoly is a polynomial in Z_q[X]/(X^n+1) represented as n residues.
type RNSPoly []uint64

// NewRNSPoly allocates a zeroed RNS polynomial of degree n.
func NewRNSPoly(n int) RNSPoly { return make(RNSPoly, n) }

// Clone returns a copy.
func (p RNSPoly) Clone() RNSPoly {
	c := make(RNSPoly, len(p))
	copy(c, p)
	return c
}

// PolyAddModInpl adds b into a in place, mod q.
func PolyAddModInpl(a, b RNSPoly, q Modulus) {
	for i := range a {
		a[i] = q.AddMod(a[i], b[i])
	}
}

// PolySubModInpl subtracts b from a in place, mod q.
func PolySubModInpl(a, b RNSPoly, q Modulus) {
	for i := range a {
		a[i] = q.SubMod(a[i], b[i])
	}
}

// PolyMulModNTTInpl performs pointwise multiplication of two NTT-form
// polynomials into a in place, mod q. Both operands must already be in
// NTT form.
func PolyMulModNTTInpl(a, b RNSPoly, q Modulus) {
	for i := range a {
		a[i] = q.MulMod(a[i], b[i])
	}
}

// ReduceFromInt64 reduces each signed int64 coefficient of src into a
// residue mod q, writing into dst. Negative values are folded into
// [0, q) before reduction since BarrettReduce expects an unsigned word.
func ReduceFromInt64(dst RNSPoly, src []int64, q Modulus) {
	qv := int64(q.Value)
	for i, v := range src {
		v %= qv
		if v < 0 {
			v += qv
		}
		dst[i] = q.BarrettReduce(uint64(v))
	}
}
