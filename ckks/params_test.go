package ckks

import (
	"errors"
	"testing"
)

func TestNewParms_RejectsUnsupportedDegree(t *testing.T) {
	moduli, err := DefaultModuli(4096, 1)
	if err != nil {
		t.Fatalf("DefaultModuli: %v", err)
	}
	_, err = NewParms(3000, moduli, 1<<25, Symmetric)
	if !errors.Is(err, ErrInvalidConfiguration) {
		t.Fatalf("expected ErrInvalidConfiguration, got %v", err)
	}
}

func TestNewParms_RejectsNonPositiveScale(t *testing.T) {
	moduli, _ := DefaultModuli(4096, 1)
	_, err := NewParms(4096, moduli, 0, Symmetric)
	if !errors.Is(err, ErrInvalidConfiguration) {
		t.Fatalf("expected ErrInvalidConfiguration, got %v", err)
	}
}

func TestNewParms_RejectsPrimeNotAdmissibleForNTT(t *testing.T) {
	bad := NewModulus(7) // 7-1=6, 2*4096=8192 does not divide 6
	_, err := NewParms(4096, []Modulus{bad}, 1<<25, Symmetric)
	if !errors.Is(err, ErrInvalidConfiguration) {
		t.Fatalf("expected ErrInvalidConfiguration, got %v", err)
	}
}

func TestParms_PrimeChainCursor(t *testing.T) {
	moduli, err := DefaultModuli(4096, 3)
	if err != nil {
		t.Fatalf("DefaultModuli: %v", err)
	}
	p, err := NewParms(4096, moduli, 1<<25, Symmetric)
	if err != nil {
		t.Fatalf("NewParms: %v", err)
	}

	if p.NPrimes() != 3 {
		t.Fatalf("NPrimes() = %d, want 3", p.NPrimes())
	}
	if p.CurrModulusIdx() != 0 {
		t.Fatalf("initial CurrModulusIdx() = %d, want 0", p.CurrModulusIdx())
	}
	if !p.NextModulus() {
		t.Fatal("NextModulus() returned false after prime 0")
	}
	if p.CurrModulusIdx() != 1 {
		t.Fatalf("CurrModulusIdx() = %d, want 1", p.CurrModulusIdx())
	}
	p.NextModulus()
	if p.NextModulus() {
		t.Fatal("NextModulus() returned true past the end of the chain")
	}

	p.ResetPrimes()
	if p.CurrModulusIdx() != 0 {
		t.Fatalf("ResetPrimes did not rewind to 0, got %d", p.CurrModulusIdx())
	}
}

func TestDefaultModuli_AllSatisfyNTTAdmissibility(t *testing.T) {
	for n, bitLens := range defaultPrimeBits {
		moduli, err := DefaultModuli(n, len(bitLens))
		if err != nil {
			t.Fatalf("DefaultModuli(%d): %v", n, err)
		}
		seen := map[uint64]bool{}
		for _, m := range moduli {
			if (m.Value-1)%uint64(2*n) != 0 {
				t.Fatalf("degree %d: prime %d does not satisfy 2n | p-1", n, m.Value)
			}
			if seen[m.Value] {
				t.Fatalf("degree %d: duplicate prime %d", n, m.Value)
			}
			seen[m.Value] = true
		}
	}
}
