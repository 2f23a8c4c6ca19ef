package ckks

import (
	"math"
	"testing"
)

func newAsymmetricHandle(t *testing.T, n, nprimes int, scale float64) *Handle {
	t.Helper()
	h, err := Setup(n, nprimes, scale, Asymmetric)
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	return h
}

func encryptAndCaptureAsym(t *testing.T, h *Handle, shareable, private *PRNG, values []float64) ([]RNSPoly, []RNSPoly) {
	t.Helper()
	c0s := make([]RNSPoly, h.Parms.NPrimes())
	c1s := make([]RNSPoly, h.Parms.NPrimes())
	sink := func(prime int, which Component, buf []Residue) (int, error) {
		switch which {
		case ComponentC0:
			c0s[prime] = append(RNSPoly(nil), RNSPoly(buf)...)
		case ComponentC1:
			c1s[prime] = append(RNSPoly(nil), RNSPoly(buf)...)
		}
		return len(buf), nil
	}
	if err := h.AsymmetricEncrypt(shareable, private, values, sink); err != nil {
		t.Fatalf("AsymmetricEncrypt: %v", err)
	}
	return c0s, c1s
}

func TestAsymmetric_RoundTripSmallVector(t *testing.T) {
	h := newAsymmetricHandle(t, 4096, 3, 1<<25)
	var seedA, seedB [64]byte
	seedA[0], seedB[0] = 5, 6
	private := NewPRNG(seedB)

	// Keep the secret cached on the Handle so it's available for
	// decryptForTest once key generation samples it.
	h.Config.PersistentSecret = true

	if err := h.generateKeyPair(NewPRNG(seedA), private); err != nil {
		t.Fatalf("generateKeyPair: %v", err)
	}
	sSmall := h.cachedSecret

	values := []float64{1.0, 2.0, 3.0}
	c0s, c1s := encryptAndCaptureAsym(t, h, NewPRNG(seedA), private, values)

	decoded := decryptForTest(h, sSmall, c0s, c1s)
	for i, want := range values {
		if math.Abs(decoded[i]-want) > math.Pow(2, -14) {
			t.Fatalf("slot %d: decoded %v, want %v", i, decoded[i], want)
		}
	}
}

func TestAsymmetric_RejectsMissingKeyWhenPkFromFile(t *testing.T) {
	h := newAsymmetricHandle(t, 4096, 3, 1<<25)
	h.Parms.PkFromFile = true
	var seedA, seedB [64]byte
	sink := func(prime int, which Component, buf []Residue) (int, error) { return len(buf), nil }
	err := h.AsymmetricEncrypt(NewPRNG(seedA), NewPRNG(seedB), []float64{1}, sink)
	if err == nil {
		t.Fatal("expected an error when pk_from_file is set and no key has been loaded")
	}
}

func TestAsymmetric_AllCiphertextResiduesBelowPrime(t *testing.T) {
	h := newAsymmetricHandle(t, 4096, 3, 1<<25)
	var seedA, seedB [64]byte
	seedA[0], seedB[0] = 7, 8

	c0s, c1s := encryptAndCaptureAsym(t, h, NewPRNG(seedA), NewPRNG(seedB), []float64{1, 2, 3})
	for idx, q := range h.Parms.Moduli {
		for j, v := range c0s[idx] {
			if v >= q.Value {
				t.Fatalf("prime %d: c0[%d] = %d >= q", idx, j, v)
			}
		}
		for j, v := range c1s[idx] {
			if v >= q.Value {
				t.Fatalf("prime %d: c1[%d] = %d >= q", idx, j, v)
			}
		}
	}
}
