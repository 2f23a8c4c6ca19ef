package ckks

import "math/big"

// decryptForTest reconstructs plaintext slots from a ciphertext by
// multiplying s back in, CRT-combining the per-prime residues, and
// running the encoder's embed/IFFT pipeline in reverse. Confined to
// tests: the production API has no decrypt path (spec section 1 lists
// decryption as a non-goal; this exists solely to verify the
// encode-encrypt pipeline end to end).
func decryptForTest(h *Handle, sSmall []byte, c0s, c1s []RNSPoly) []float64 {
	n := h.Parms.N
	moduli := h.Parms.Moduli

	coeffResidues := make([]RNSPoly, len(moduli))
	for idx, q := range moduli {
		nttTables := h.nttTables[idx]

		sNTT := ExpandTernary(sSmall, n, q)
		nttTables.Forward(sNTT)

		pte := c1s[idx].Clone()
		PolyMulModNTTInpl(pte, sNTT, q)
		PolyAddModInpl(pte, c0s[idx], q)

		nttTables.Inverse(pte)
		coeffResidues[idx] = pte
	}

	coeffs := make([]float64, n)
	residues := make([]uint64, len(moduli))
	for k := 0; k < n; k++ {
		for idx := range moduli {
			residues[idx] = coeffResidues[idx][k]
		}
		coeffs[k] = crtCombineCentered(residues, moduli) / h.Parms.Scale()
	}

	complexView := make([]complex128, n)
	for k, c := range coeffs {
		complexView[k] = complex(c, 0)
	}
	h.ifft.Forward(complexView)

	half := n / 2
	out := make([]float64, half)
	for j := 0; j < half; j++ {
		out[j] = real(complexView[h.indexMap[j]])
	}
	return out
}

// crtCombineCentered reconstructs, via Garner's algorithm, the integer
// represented by residues mod each prime in moduli, centered by
// subtracting Q from every value >= floor(Q/2), where Q is the product
// of all moduli (for odd Q the result lies in [-(Q+1)/2, (Q-1)/2)),
// returned as a
// float64 (exact for the coefficient magnitudes this package's test
// scenarios exercise).
func crtCombineCentered(residues []uint64, moduli []Modulus) float64 {
	x := new(big.Int).SetUint64(residues[0])
	mProd := new(big.Int).SetUint64(moduli[0].Value)

	for i := 1; i < len(moduli); i++ {
		qi := new(big.Int).SetUint64(moduli[i].Value)

		diff := new(big.Int).Sub(new(big.Int).SetUint64(residues[i]), x)
		diff.Mod(diff, qi)

		inv := new(big.Int).ModInverse(mProd, qi)
		t := new(big.Int).Mul(diff, inv)
		t.Mod(t, qi)

		x.Add(x, new(big.Int).Mul(t, mProd))
		mProd.Mul(mProd, qi)
	}

	half := new(big.Int).Rsh(mProd, 1)
	if x.Cmp(half) >= 0 {
		x.Sub(x, mProd)
	}

	f := new(big.Float).SetInt(x)
	out, _ := f.Float64()
	return out
}
