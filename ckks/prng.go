package ckks

import (
	"crypto/rand"
	"encoding/binary"

	"golang.org/x/crypto/sha3"
)

// reseedInterval bounds how many Fill calls a single seed may serve
// before the core forces a reseed (spec: "counter wrap triggers a
// reseed"). 2^48 keeps the counter comfortably inside its 64-bit field
// while still being larger than any single encrypt call could reach.
const reseedInterval = uint64(1) << 48

// PRNG deterministically expands a 64-byte seed into an arbitrary-length
// byte stream via SHAKE256, using a monotonically increasing counter so
// repeated Fill calls never reuse the same XOF input. Fill(seed,
// counter, n) is a pure function of its inputs: two PRNGs seeded
// identically produce byte-identical output.
type PRNG struct {
	seed    [64]byte
	counter uint64
}

// NewPRNG builds a PRNG from an explicit 64-byte seed, counter at zero.
func NewPRNG(seed [64]byte) *PRNG {
	return &PRNG{seed: seed}
}

// NewPRNGFromEntropy draws a fresh 64-byte seed from the platform
// entropy source. Returns ErrEntropyUnavailable if that source fails.
func NewPRNGFromEntropy() (*PRNG, error) {
	p := &PRNG{}
	if _, err := rand.Read(p.seed[:]); err != nil {
		return nil, entropyUnavailable("reading platform entropy: %v", err)
	}
	return p, nil
}

// Reset replaces the seed and resets the counter to zero.
func (p *PRNG) Reset(seed [64]byte) {
	p.seed = seed
	p.counter = 0
}

// RandomizeReset draws a fresh seed from the platform entropy source and
// resets the counter, in place.
func (p *PRNG) RandomizeReset() error {
	var seed [64]byte
	if _, err := rand.Read(seed[:]); err != nil {
		return entropyUnavailable("reseeding from platform entropy: %v", err)
	}
	p.Reset(seed)
	return nil
}

// Seed returns a copy of the current 64-byte seed. Used to publish a
// shareable PRNG's seed as a compact ciphertext alias for c1.
func (p *PRNG) Seed() [64]byte { return p.seed }

// Fill expands SHAKE256(seed || counter_le8) into buf, then advances the
// counter. Once the counter reaches reseedInterval, Fill reseeds from
// platform entropy (resetting the counter) before filling, so the
// counter never wraps.
func (p *PRNG) Fill(buf []byte) error {
	if p.counter >= reseedInterval {
		if err := p.RandomizeReset(); err != nil {
			return err
		}
	}

	var input [72]byte // 64-byte seed + 8-byte little-endian counter
	copy(input[:64], p.seed[:])
	binary.LittleEndian.PutUint64(input[64:], p.counter)

	xof := sha3.NewShake256()
	xof.Write(input[:])
	if _, err := xof.Read(buf); err != nil {
		// sha3's Shake.Read never errors in practice, but the spec's
		// PRNG contract only ever fails via entropy, so surface it the
		// same way rather than inventing a new failure mode.
		return entropyUnavailable("shake256 squeeze: %v", err)
	}

	p.counter++
	return nil
}

// FillPure is a free function form of Fill, useful for tests that want
// to check the "pure function of (seed, counter, n)" property without
// mutating a PRNG's internal counter.
func FillPure(seed [64]byte, counter uint64, n int) []byte {
	var input [72]byte
	copy(input[:64], seed[:])
	binary.LittleEndian.PutUint64(input[64:], counter)

	out := make([]byte, n)
	xof := sha3.NewShake256()
	xof.Write(input[:])
	xof.Read(out)
	return out
}
