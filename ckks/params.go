package ckks

import "math/bits"

// EncType selects the encryption scheme.
type EncType int

const (
	Symmetric EncType = iota
	Asymmetric
)

// Parms carries the ring degree, the ordered RNS modulus chain, the
// current-prime cursor, the scale, and the scheme-selection booleans
// from the spec's compile-time feature matrix. curr_modulus_idx
// replaces the source's back-pointer into the chain (spec section 9,
// "cyclic ownership").
type Parms struct {
	N    int // ring degree, power of two
	LogN int

	Moduli []Modulus
	scale  float64

	currIdx int

	IsAsymmetric bool
	PkFromFile   bool
	SampleS      bool
	SmallS       bool
	SmallU       bool
}

// supportedDegrees enumerates the ring degrees the spec's data model
// allows (section 3: "Power of two in {1024, 2048, 4096, 8192, 16384}").
var supportedDegrees = map[int]bool{
	1024: true, 2048: true, 4096: true, 8192: true, 16384: true,
}

// defaultPrimeBits gives the default device prime bit-lengths per
// degree (spec section 6's table). These are illustrative bit-lengths;
// DefaultModuli (moduli_gen.go) picks concrete NTT-friendly primes of that
// width satisfying 2n | (p-1).
var defaultPrimeBits = map[int][]int{
	1024:  {27},
	2048:  {27},
	4096:  {30, 30, 30},
	8192:  {30, 30, 30, 30, 30, 30},
	16384: {30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30},
}

// defaultScale gives the default scale Delta per degree (spec section 6).
var defaultScale = map[int]float64{
	1024:  1 << 20,
	2048:  1 << 25,
	4096:  1 << 25,
	8192:  1 << 25,
	16384: 1 << 25,
}

// NewParms validates degree/prime-chain invariants and builds a Parms.
// Every prime must satisfy 2n | (p-1) (negacyclic NTT admissible) and
// fit in 30 bits (spec section 3's modulus-chain invariant).
func NewParms(n int, moduli []Modulus, scale float64, enc EncType) (*Parms, error) {
	if !supportedDegrees[n] {
		return nil, invalidConfig("degree %d is not a supported power of two", n)
	}
	if scale <= 0 {
		return nil, invalidConfig("scale must be positive, got %v", scale)
	}
	if len(moduli) == 0 {
		return nil, invalidConfig("modulus chain must have at least one prime")
	}
	for _, m := range moduli {
		if bits.Len64(m.Value) > 30 {
			return nil, invalidConfig("prime %d exceeds the 30-bit machine-word invariant", m.Value)
		}
		if (m.Value-1)%uint64(2*n) != 0 {
			return nil, invalidConfig("prime %d does not satisfy 2n | (p-1) for n=%d", m.Value, n)
		}
	}

	p := &Parms{
		N:            n,
		LogN:         bits.Len(uint(n)) - 1,
		Moduli:       moduli,
		scale:        scale,
		IsAsymmetric: enc == Asymmetric,
		SampleS:      true,
		SmallS:       true,
		SmallU:       true,
	}
	return p, nil
}

// Scale returns the configured scaling factor Delta.
func (p *Parms) Scale() float64 { return p.scale }

// CurrModulusIdx returns the index of the prime currently being
// processed.
func (p *Parms) CurrModulusIdx() int { return p.currIdx }

// CurrModulus returns the Modulus at the current cursor.
func (p *Parms) CurrModulus() Modulus { return p.Moduli[p.currIdx] }

// NextModulus advances the cursor and reports whether a prime remains.
func (p *Parms) NextModulus() bool {
	p.currIdx++
	return p.currIdx < len(p.Moduli)
}

// ResetPrimes rewinds the cursor to the first prime.
func (p *Parms) ResetPrimes() { p.currIdx = 0 }

// NPrimes returns the number of primes in the chain.
func (p *Parms) NPrimes() int { return len(p.Moduli) }
