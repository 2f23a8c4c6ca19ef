package ckks

import (
	"math"
	"math/bits"
	"math/cmplx"
)

// imagTolerance bounds |Im(conj_vals[k])| after the inverse FFT before
// an encode is rejected as EncodeOverflow (spec section 4.D step 3).
const imagTolerance = 0.5

// maxSafeScaled bounds |scale * Re(conj_vals[k])| before rounding,
// leaving headroom for a centered error term to be added afterward
// (sym_init / asym_init) without leaving int64 range. This is a hard
// ceiling independent of any modulus chain; scaleBudgetMarginBits below
// is almost always the tighter of the two in practice.
const maxSafeScaled = float64(1 << 61)

// scaleBudgetMarginBits translates spec section 8's round-trip bound —
// "||v||_inf <= 2^(bits(q_0) - bits(Delta) - 5)" — into a check on the
// scaled coefficient itself: multiplying both sides by Delta gives
// "Delta*||v||_inf <= 2^(bits(q_0) - 5) = q_0 / 32". A scaled value
// above that budget means the scale dominates the first prime's
// precision (the scenario in spec section 8, test 6: scale 2^60 on a
// 30-bit prime chain), which is an encode-time overflow even when the
// raw value is nowhere near overflowing int64.
const scaleBudgetMarginBits = 5

// BuildIndexMap computes pi: slot index j in [0,n) -> conj_vals array
// position, composing the CKKS canonical-embedding slot map (the
// order-2n rotation group generated by 5 mod 2n) with FFT bit-reversal
// (spec section 4.D, GLOSSARY "pi (index map)"). Slots [0,n/2) carry the
// embedded values; slots [n/2,n) carry their conjugates.
func BuildIndexMap(n int) []uint16 {
	logN := bits.Len(uint(n)) - 1
	half := n / 2
	m := 2 * n
	pi := make([]uint16, n)

	exp := 1
	for j := 0; j < half; j++ {
		// 5^j mod 2n is always odd since 5 and 2n share no odd factor
		// beyond 1 (n is a power of two), so (exp-1)/2 is an integer
		// in [0,n).
		pos := (exp - 1) / 2
		pi[j] = uint16(bitrev(pos, logN))
		pi[j+half] = uint16(bitrev(n-1-pos, logN))
		exp = (exp * 5) % m
	}
	return pi
}

// Embed writes values (len <= n/2, the rest implicitly zero) into view
// under pi and their complex conjugates into the paired slot, per spec
// section 4.D step 1. view must have length n (Arena.ComplexView()).
func Embed(view []complex128, pi []uint16, values []float64) error {
	n := len(view)
	half := n / 2
	if len(values) > half {
		return invalidConfig("encode: vlen %d exceeds n/2 (%d)", len(values), half)
	}
	for i := range view {
		view[i] = 0
	}
	for j, v := range values {
		c := complex(v, 0)
		view[pi[j]] = c
		view[pi[j+half]] = cmplx.Conj(c)
	}
	return nil
}

// IFFTTables holds the inverse-FFT twiddle factors for degree n. Like
// NTTTables, OnTheFly recomputes each root from scratch per call while
// LoadFull keeps a persisted table; both evaluate the identical root
// values, so they agree bit-for-bit modulo floating-point rounding.
type IFFTTables struct {
	n        int
	variant  IFFTVariant
	invRoots []complex128 // populated only for IFFTLoadFull
}

// NewIFFTTables builds the table set for degree n under variant.
func NewIFFTTables(n int, variant IFFTVariant) *IFFTTables {
	t := &IFFTTables{n: n, variant: variant}
	if variant == IFFTLoadFull {
		t.invRoots = make([]complex128, n)
		for i := 0; i < n; i++ {
			t.invRoots[i] = t.computeRoot(i)
		}
	}
	return t
}

func (t *IFFTTables) computeRoot(idx int) complex128 {
	logN := bits.Len(uint(t.n)) - 1
	br := bitrev(idx, logN)
	angle := -math.Pi * float64(br) / float64(t.n)
	return cmplx.Rect(1, angle)
}

func (t *IFFTTables) rootAt(idx int) complex128 {
	if t.variant == IFFTLoadFull {
		return t.invRoots[idx]
	}
	return t.computeRoot(idx)
}

// Inverse runs the in-place negacyclic inverse FFT on a (length n,
// bit-reversed input order — the order Embed's pi already produces —
// natural output order), the same Gentleman-Sande stage structure as
// NTTTables.Inverse but over complex128 with no modular reduction,
// followed by the 1/n scaling the spec's step 2 calls for.
func (t *IFFTTables) Inverse(a []complex128) {
	n := t.n
	tt := 1
	for m := n; m > 1; m >>= 1 {
		j1 := 0
		h := m >> 1
		for i := 0; i < h; i++ {
			j2 := j1 + tt - 1
			root := t.rootAt(h + i)
			for j := j1; j <= j2; j++ {
				u := a[j]
				v := a[j+tt]
				a[j] = u + v
				a[j+tt] = (u - v) * root
			}
			j1 += 2 * tt
		}
		tt <<= 1
	}
	inv := complex(1/float64(n), 0)
	for i := range a {
		a[i] *= inv
	}
}

// Forward runs the complex forward FFT (natural input -> bit-reversed
// output), the Cooley-Tukey mirror of Inverse and its exact undo modulo
// floating-point rounding. Production encode never calls this — it
// exists for this package's decrypt-for-test helper, which must invert
// the encode pipeline to check round-trip correctness (decryption
// itself is out of the production API's scope, spec section 1).
func (t *IFFTTables) Forward(a []complex128) {
	n := t.n
	tt := n
	for m := 1; m < n; m <<= 1 {
		tt >>= 1
		for i := 0; i < m; i++ {
			j1 := 2 * i * tt
			j2 := j1 + tt - 1
			root := cmplx.Conj(t.rootAt(m + i))
			for j := j1; j <= j2; j++ {
				u := a[j]
				v := a[j+tt] * root
				a[j] = u + v
				a[j+tt] = u - v
			}
		}
	}
}

// ScaleAndRound implements spec section 4.D step 3: for each slot,
// check the imaginary residual is within tolerance, then round
// scale*Re(c) to the nearest integer (ties to even) into intView.
//
// q0 is the first prime in the caller's modulus chain (spec section 3's
// "q_0"), used to bound the scaled value against the chain's own
// precision budget rather than only int64's range — see
// scaleBudgetMarginBits. q0 == 0 means "no modulus chain in scope" (as
// in a standalone unit test exercising only the rounding/imaginary
// checks) and skips that check, falling back to maxSafeScaled alone.
func ScaleAndRound(intView []int64, complexView []complex128, scale float64, q0 uint64) error {
	budget := maxSafeScaled
	if q0 != 0 {
		if chainBudget := float64(q0) / float64(uint64(1)<<scaleBudgetMarginBits); chainBudget < budget {
			budget = chainBudget
		}
	}

	for k, c := range complexView {
		if math.Abs(imag(c)) > imagTolerance {
			return encodeOverflow("encode: imaginary residual %.6g at slot %d exceeds tolerance", imag(c), k)
		}
		scaled := scale * real(c)
		if math.Abs(scaled) >= budget {
			return encodeOverflow("encode: scaled value %.6g at slot %d exceeds the precision budget (q0=%d, limit=%.6g)", scaled, k, q0, budget)
		}
		intView[k] = int64(math.RoundToEven(scaled))
	}
	return nil
}

// EncodeBase is encode_base: embeds values into the arena's scratch
// region, runs the inverse FFT, and scales+rounds into conj_vals_int.
// It returns ErrInvalidConfiguration (wrapped in a *CkksError) when
// values has more than n/2 entries, and ErrEncodeOverflow (likewise
// wrapped) when scale-and-round rejects a coefficient. q0 is forwarded
// to ScaleAndRound (see its doc comment).
func EncodeBase(arena *Arena, ifft *IFFTTables, pi []uint16, scale float64, q0 uint64, values []float64) error {
	cview := arena.ComplexView()
	if err := Embed(cview, pi, values); err != nil {
		return err
	}
	ifft.Inverse(cview)
	iview := arena.Int64View()
	return ScaleAndRound(iview, cview, scale, q0)
}
