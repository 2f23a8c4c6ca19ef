package ckks

import "testing"

func TestNTT_ForwardThenInverseIsIdentity(t *testing.T) {
	const n = 64
	q := NewModulus(257) // 257 = 2^8+1, an NTT-friendly prime for n=64: 2n=128 | 256

	tbl, err := NewNTTTables(n, q, NTTOneShot)
	if err != nil {
		t.Fatalf("NewNTTTables: %v", err)
	}

	original := NewRNSPoly(n)
	for i := range original {
		original[i] = uint64(i) % q.Value
	}

	work := original.Clone()
	tbl.Forward(work)
	tbl.Inverse(work)

	for i := range original {
		if work[i] != original[i] {
			t.Fatalf("coefficient %d: got %d, want %d after forward+inverse", i, work[i], original[i])
		}
	}
}

func TestNTT_VariantsAgreeBitForBit(t *testing.T) {
	const n = 64
	q := NewModulus(257)

	input := NewRNSPoly(n)
	for i := range input {
		input[i] = uint64(3*i+1) % q.Value
	}

	variants := []NTTVariant{NTTOnTheFly, NTTOneShot, NTTFast}
	var results []RNSPoly
	for _, v := range variants {
		tbl, err := NewNTTTables(n, q, v)
		if err != nil {
			t.Fatalf("NewNTTTables(%v): %v", v, err)
		}
		work := input.Clone()
		tbl.Forward(work)
		results = append(results, work)
	}

	for i := 1; i < len(results); i++ {
		for j := range results[0] {
			if results[0][j] != results[i][j] {
				t.Fatalf("variant %v disagrees with %v at index %d: %d vs %d",
					variants[i], variants[0], j, results[i][j], results[0][j])
			}
		}
	}
}

func TestNTT_ResultsAreResiduesBelowQ(t *testing.T) {
	const n = 64
	q := NewModulus(257)
	tbl, err := NewNTTTables(n, q, NTTFast)
	if err != nil {
		t.Fatalf("NewNTTTables: %v", err)
	}

	work := NewRNSPoly(n)
	for i := range work {
		work[i] = uint64(i*i) % q.Value
	}
	tbl.Forward(work)
	for i, v := range work {
		if v >= q.Value {
			t.Fatalf("NTT output %d at index %d >= q (%d)", v, i, q.Value)
		}
	}
}

func TestPolyMulModNTTInpl_PointwiseProduct(t *testing.T) {
	q := NewModulus(1073479681)
	a := RNSPoly{2, 3, 4}
	b := RNSPoly{5, 6, 7}
	PolyMulModNTTInpl(a, b, q)
	want := RNSPoly{10, 18, 28}
	for i := range want {
		if a[i] != want[i] {
			t.Fatalf("index %d: got %d, want %d", i, a[i], want[i])
		}
	}
}
