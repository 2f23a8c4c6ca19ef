package ckks

import "math/big"

// DefaultModuli returns nprimes NTT-friendly primes for degree n,
// matching the bit-lengths in the spec's default table (section 6),
// each satisfying 2n | (p-1). Searches downward from the top of the
// target bit-length so repeated calls are deterministic.
func DefaultModuli(n, nprimes int) ([]Modulus, error) {
	bitLens, ok := defaultPrimeBits[n]
	if !ok {
		return nil, invalidConfig("degree %d has no default prime table", n)
	}
	if nprimes <= 0 {
		return nil, invalidConfig("nprimes must be positive, got %d", nprimes)
	}

	out := make([]Modulus, 0, nprimes)
	used := map[uint64]bool{}
	for i := 0; i < nprimes; i++ {
		bl := bitLens[i%len(bitLens)]
		p, err := findNTTPrime(n, bl, used)
		if err != nil {
			return nil, err
		}
		used[p] = true
		out = append(out, NewModulus(p))
	}
	return out, nil
}

// findNTTPrime searches for a prime p of exactly bitLen bits with
// p ≡ 1 (mod 2n), starting from the largest such candidate and working
// down, skipping any value already present in used.
func findNTTPrime(n, bitLen int, used map[uint64]bool) (uint64, error) {
	twoN := uint64(2 * n)
	top := (uint64(1) << uint(bitLen)) - 1
	// Largest candidate <= top congruent to 1 mod twoN.
	candidate := top - (top-1)%twoN

	floor := uint64(1) << uint(bitLen-1)
	for candidate >= floor {
		if !used[candidate] && big.NewInt(0).SetUint64(candidate).ProbablyPrime(32) {
			return candidate, nil
		}
		if candidate < twoN {
			break
		}
		candidate -= twoN
	}
	return 0, invalidConfig("no %d-bit NTT-friendly prime found for degree %d", bitLen, n)
}
