package ckks

import "encoding/binary"

// Samplers draw from a PRNG byte stream without ever branching on a
// sampled coefficient's value — only on loop indices and byte
// positions, which are public. This keeps secret-dependent timing out
// of the sampling step.
//
// Each sampler takes an optional dst: callers that need the result to
// land in an Arena pool region (spec section 4.H's s / u / e1_small /
// pk_c0 / pk_c1) pass the arena's view directly; a nil dst allocates,
// for the standalone callers that have no arena in scope (tests,
// key-generation scratch that never needs to persist).

// SampleUniformMod draws n residues uniform in [0, q.Value) from prng,
// Barrett-reducing one PRNG word per coefficient, into dst (or a fresh
// RNSPoly if dst is nil).
func SampleUniformMod(prng *PRNG, q Modulus, n int, dst RNSPoly) (RNSPoly, error) {
	buf := make([]byte, n*8)
	if err := prng.Fill(buf); err != nil {
		return nil, err
	}
	if dst == nil {
		dst = NewRNSPoly(n)
	}
	for i := 0; i < n; i++ {
		w := binary.LittleEndian.Uint64(buf[i*8 : i*8+8])
		dst[i] = q.BarrettReduce(w)
	}
	return dst[:n], nil
}

// SampleTernarySmall draws a length-n ternary polynomial with
// P(0)=1/2, P(+1)=P(-1)=1/4, packed 2 bits/coefficient in small form
// (encoding: 00 -> 0, 01 -> +1, 10 -> -1, 11 -> 0, matching the spec's
// "implementer may choose a mapping" clause), into dst (or a fresh
// slice if dst is nil).
func SampleTernarySmall(prng *PRNG, n int, dst []byte) ([]byte, error) {
	nBytes := (n + 3) / 4 // 2 bits per coefficient
	if dst == nil {
		dst = make([]byte, nBytes)
	}
	if err := prng.Fill(dst[:nBytes]); err != nil {
		return nil, err
	}
	return dst[:nBytes], nil
}

// TernaryCoeffAt returns the signed value (-1, 0, or +1) of coefficient
// i from a small-form ternary polynomial, without any data-dependent
// branch on the coefficient's value: the two-bit field is mapped to
// {-1,0,0,1} via arithmetic, not a switch/if on its decoded meaning.
func TernaryCoeffAt(small []byte, i int) int8 {
	byteIdx := i / 4
	shift := uint((i % 4) * 2)
	bitsField := (small[byteIdx] >> shift) & 0x3
	b0 := int8(bitsField & 1)
	b1 := int8((bitsField >> 1) & 1)
	// 00 -> 0, 01 -> +1, 10 -> -1, 11 -> 0, computed arithmetically so
	// no branch depends on the decoded coefficient value.
	return b0*(1-b1) - b1*(1-b0)
}

// ExpandTernary converts a small-form ternary polynomial to expanded
// form modulo q: -1 becomes q-1.
func ExpandTernary(small []byte, n int, q Modulus) RNSPoly {
	out := NewRNSPoly(n)
	for i := 0; i < n; i++ {
		c := TernaryCoeffAt(small, i)
		switch {
		case c > 0:
			out[i] = 1
		case c < 0:
			out[i] = q.NegMod(1)
		default:
			out[i] = 0
		}
	}
	return out
}

// SampleCBD draws a length-n centered-binomial (eta=1) error
// polynomial: for each coefficient, draw two independent bits a, b and
// set the coefficient to a-b, in {-1, 0, +1}. Stored as signed bytes
// ("small form" for error polynomials), into dst (or a fresh slice if
// dst is nil).
func SampleCBD(prng *PRNG, n int, dst []int8) ([]int8, error) {
	nBytes := (n + 3) / 4 // 2 bits per coefficient (1 for a, 1 for b)
	buf := make([]byte, nBytes)
	if err := prng.Fill(buf); err != nil {
		return nil, err
	}
	if dst == nil {
		dst = make([]int8, n)
	}
	for i := 0; i < n; i++ {
		byteIdx := i / 4
		shift := uint((i % 4) * 2)
		a := int8((buf[byteIdx] >> shift) & 1)
		b := int8((buf[byteIdx] >> (shift + 1)) & 1)
		dst[i] = a - b
	}
	return dst[:n], nil
}

// ExpandSmallError reduces a signed-byte error polynomial into residues
// mod q (expanded form), for use in NTT-domain pointwise arithmetic.
func ExpandSmallError(small []int8, q Modulus) RNSPoly {
	out := NewRNSPoly(len(small))
	for i, c := range small {
		switch {
		case c > 0:
			out[i] = uint64(c)
		case c < 0:
			out[i] = q.NegMod(uint64(-c))
		default:
			out[i] = 0
		}
	}
	return out
}
