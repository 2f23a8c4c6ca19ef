package ckks

import (
	"math/big"
	"math/bits"
)

// NTTTables holds everything one prime's negacyclic NTT needs: the
// bit-reversed forward-root table and, for the NTTFast variant, a
// matching precomputed Shoup quotient per root enabling a one-multiply
// lazy reduction in the butterfly (the "Harvey-style" fast path the
// spec calls out in section 4.E). All three NTTVariant code paths
// derive their roots from the same primitive 2n-th root, so they
// produce bit-identical output.
type NTTTables struct {
	n      int
	q      Modulus
	psi    uint64 // primitive 2n-th root of unity mod q
	psiInv uint64 // psi^-1 mod q
	nInv   uint64 // n^-1 mod q, the final inverse-NTT scaling factor

	roots    []uint64
	quots    []uint64 // roots[i] * 2^64 / q, floor; only populated for NTTFast
	invRoots []uint64
	invQuots []uint64

	variant NTTVariant
}

// NewNTTTables derives the primitive 2n-th root for q and builds the
// root table (and Shoup quotients, for NTTFast) for degree n.
func NewNTTTables(n int, q Modulus, variant NTTVariant) (*NTTTables, error) {
	psi, err := findPrimitive2NthRoot(n, q.Value)
	if err != nil {
		return nil, err
	}
	psiInv := powModBig(psi, q.Value-2, q.Value) // q prime: psi^-1 = psi^(q-2)
	nInv := powModBig(uint64(n)%q.Value, q.Value-2, q.Value)

	t := &NTTTables{n: n, q: q, psi: psi, psiInv: psiInv, nInv: nInv, variant: variant}
	if variant != NTTOnTheFly {
		logN := t.logN()
		t.roots = make([]uint64, n)
		t.invRoots = make([]uint64, n)
		for i := 0; i < n; i++ {
			br := uint64(bitrev(i, logN))
			t.roots[i] = powModBig(psi, br, q.Value)
			t.invRoots[i] = powModBig(psiInv, br, q.Value)
		}
		if variant == NTTFast {
			t.quots = make([]uint64, n)
			t.invQuots = make([]uint64, n)
			for i, r := range t.roots {
				t.quots[i] = shoupQuotient(r, q.Value)
			}
			for i, r := range t.invRoots {
				t.invQuots[i] = shoupQuotient(r, q.Value)
			}
		}
	}
	return t, nil
}

func (t *NTTTables) logN() int {
	l := 0
	for (1 << uint(l)) < t.n {
		l++
	}
	return l
}

// rootAt returns roots[m+i] regardless of variant: from the table for
// OneShot/Fast, or recomputed from psi for OnTheFly. All three paths
// evaluate the identical power of psi, so outputs agree bit-for-bit.
func (t *NTTTables) rootAt(idx int) uint64 {
	if t.variant != NTTOnTheFly {
		return t.roots[idx]
	}
	return powModBig(t.psi, uint64(bitrev(idx, t.logN())), t.q.Value)
}

func (t *NTTTables) invRootAt(idx int) uint64 {
	if t.variant != NTTOnTheFly {
		return t.invRoots[idx]
	}
	return powModBig(t.psiInv, uint64(bitrev(idx, t.logN())), t.q.Value)
}

// Forward runs the in-place negacyclic forward NTT on a (length n,
// residues mod t.q), natural input order to bit-reversed output order,
// logN Cooley-Tukey stages.
func (t *NTTTables) Forward(a RNSPoly) {
	n := t.n
	q := t.q
	tt := n
	for m := 1; m < n; m <<= 1 {
		tt >>= 1
		for i := 0; i < m; i++ {
			j1 := 2 * i * tt
			j2 := j1 + tt - 1
			root := t.rootAt(m + i)

			if t.variant == NTTFast {
				qInv := t.quots[m+i]
				for j := j1; j <= j2; j++ {
					u := a[j]
					v := shoupMulMod(a[j+tt], root, qInv, q)
					a[j] = q.AddMod(u, v)
					a[j+tt] = q.SubMod(u, v)
				}
				continue
			}

			for j := j1; j <= j2; j++ {
				u := a[j]
				v := q.MulMod(a[j+tt], root)
				a[j] = q.AddMod(u, v)
				a[j+tt] = q.SubMod(u, v)
			}
		}
	}
}

// Inverse runs the in-place negacyclic inverse NTT on a (bit-reversed
// input order, natural output order), Gentleman-Sande decimation-in-
// frequency stages followed by the final n^-1 scaling.
func (t *NTTTables) Inverse(a RNSPoly) {
	n := t.n
	q := t.q
	tt := 1
	for m := n; m > 1; m >>= 1 {
		j1 := 0
		h := m >> 1
		for i := 0; i < h; i++ {
			j2 := j1 + tt - 1
			root := t.invRootAt(h + i)

			if t.variant == NTTFast {
				qInv := t.invQuots[h+i]
				for j := j1; j <= j2; j++ {
					u := a[j]
					v := a[j+tt]
					a[j] = q.AddMod(u, v)
					a[j+tt] = shoupMulMod(q.SubMod(u, v), root, qInv, q)
				}
			} else {
				for j := j1; j <= j2; j++ {
					u := a[j]
					v := a[j+tt]
					a[j] = q.AddMod(u, v)
					a[j+tt] = q.MulMod(q.SubMod(u, v), root)
				}
			}
			j1 += 2 * tt
		}
		tt <<= 1
	}
	for i := range a {
		a[i] = q.MulMod(a[i], t.nInv)
	}
}

// shoupMulMod computes (x*root) mod q using root's precomputed Shoup
// quotient qInv = floor(root * 2^64 / q.Value), collapsing the usual
// double-word Barrett reduction to a single mulhi plus a bounded
// multiply-and-correct, the "lazy reduction" the spec's Fast variant
// is named for.
func shoupMulMod(x, root, qInv uint64, q Modulus) uint64 {
	hi, _ := bits.Mul64(x, qInv)
	t := x*root - hi*q.Value
	if t >= q.Value {
		t -= q.Value
	}
	return t
}

// shoupQuotient precomputes floor(w * 2^64 / q) for Shoup's lazy
// multiplication trick.
func shoupQuotient(w, q uint64) uint64 {
	num := new(big.Int).Lsh(big.NewInt(0).SetUint64(w), 64)
	num.Div(num, big.NewInt(0).SetUint64(q))
	return num.Uint64()
}

// findPrimitive2NthRoot finds psi such that psi^(2n) = 1 mod q and
// psi^n = q-1 mod q (i.e. psi has order exactly 2n), by testing small
// generators raised to the (q-1)/(2n) power. q must already satisfy
// 2n | (q-1) (checked by NewParms before tables are ever built).
func findPrimitive2NthRoot(n int, q uint64) (uint64, error) {
	qBig := big.NewInt(0).SetUint64(q)
	exp := big.NewInt(0).Sub(qBig, big.NewInt(1))
	exp.Div(exp, big.NewInt(int64(2*n)))

	for g := uint64(2); g < q; g++ {
		gBig := big.NewInt(0).SetUint64(g)
		psi := big.NewInt(0).Exp(gBig, exp, qBig)
		psiV := psi.Uint64()
		if psiV == 0 || psiV == 1 {
			continue
		}
		// Confirm order exactly 2n: psi^n == q-1 (the unique sqrt of 1
		// other than 1 itself, since q is prime).
		nBig := big.NewInt(int64(n))
		check := big.NewInt(0).Exp(psi, nBig, qBig)
		if check.Uint64() == q-1 {
			return psiV, nil
		}
	}
	return 0, invariant("no primitive 2n-th root of unity found for q=%d, n=%d", q, n)
}

// powModBig computes base^exp mod q via math/big; used only at
// table-build time (NewNTTTables), never inside a hot butterfly loop.
func powModBig(base, exp, q uint64) uint64 {
	b := big.NewInt(0).SetUint64(base)
	e := big.NewInt(0).SetUint64(exp)
	m := big.NewInt(0).SetUint64(q)
	return big.NewInt(0).Exp(b, e, m).Uint64()
}

// bitrev reverses the low logN bits of x.
func bitrev(x, logN int) int {
	r := 0
	for i := 0; i < logN; i++ {
		r = (r << 1) | (x & 1)
		x >>= 1
	}
	return r
}
