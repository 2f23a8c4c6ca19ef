package ckks

import "testing"

func TestPRNG_FillIsDeterministic(t *testing.T) {
	var seed [64]byte
	for i := range seed {
		seed[i] = byte(i)
	}

	p1 := NewPRNG(seed)
	p2 := NewPRNG(seed)

	buf1 := make([]byte, 256)
	buf2 := make([]byte, 256)
	if err := p1.Fill(buf1); err != nil {
		t.Fatalf("Fill: %v", err)
	}
	if err := p2.Fill(buf2); err != nil {
		t.Fatalf("Fill: %v", err)
	}

	for i := range buf1 {
		if buf1[i] != buf2[i] {
			t.Fatalf("byte %d differs: %x vs %x", i, buf1[i], buf2[i])
		}
	}
}

func TestPRNG_CounterAdvancesOutput(t *testing.T) {
	var seed [64]byte
	p := NewPRNG(seed)

	buf1 := make([]byte, 32)
	buf2 := make([]byte, 32)
	if err := p.Fill(buf1); err != nil {
		t.Fatalf("Fill: %v", err)
	}
	if err := p.Fill(buf2); err != nil {
		t.Fatalf("Fill: %v", err)
	}

	same := true
	for i := range buf1 {
		if buf1[i] != buf2[i] {
			same = false
			break
		}
	}
	if same {
		t.Fatal("successive Fill calls with the same seed produced identical output")
	}
}

func TestPRNG_FillPureMatchesStatefulFill(t *testing.T) {
	var seed [64]byte
	for i := range seed {
		seed[i] = byte(2 * i)
	}

	p := NewPRNG(seed)
	buf := make([]byte, 40)
	if err := p.Fill(buf); err != nil {
		t.Fatalf("Fill: %v", err)
	}

	pure := FillPure(seed, 0, 40)
	for i := range buf {
		if buf[i] != pure[i] {
			t.Fatalf("byte %d differs between Fill and FillPure: %x vs %x", i, buf[i], pure[i])
		}
	}
}

func TestPRNG_Reset(t *testing.T) {
	var seedA, seedB [64]byte
	seedB[0] = 0xff

	p := NewPRNG(seedA)
	buf := make([]byte, 16)
	if err := p.Fill(buf); err != nil {
		t.Fatalf("Fill: %v", err)
	}
	if p.Seed() != seedA {
		t.Fatal("seed changed without Reset")
	}

	p.Reset(seedB)
	if p.Seed() != seedB {
		t.Fatal("Reset did not replace the seed")
	}
	if p.counter != 0 {
		t.Fatalf("Reset did not zero the counter, got %d", p.counter)
	}
}
