package ckks

import (
	"encoding/binary"
	"fmt"
)

// Residue is a single RNS coefficient, one machine word.
type Residue = uint64

// Component names what a Sink call is delivering: one prime's c0, one
// prime's c1, or — when Config.CompressC1 is set and the encryption is
// symmetric — the 64-byte shareable seed sent in lieu of c1 (spec
// section 6).
type Component int

const (
	ComponentC0 Component = iota
	ComponentC1
	ComponentShareableSeed
)

// Sink is the external output callback: synchronous, invoked once per
// component per prime, returning how many Residue words it accepted.
// Fewer than len(buf) is a SinkShortWrite (spec section 7).
type Sink func(prime int, which Component, buf []Residue) (accepted int, err error)

// Handle bundles everything one SE_PARMS-equivalent instance owns:
// parameters, configuration, the memory-pool arena, the per-prime NTT
// tables, the index map, and whatever key material has been generated
// or cached across calls (spec section 9, "bundle these into a handle
// owned by the caller").
type Handle struct {
	Parms  *Parms
	Config Config
	Arena  *Arena

	indexMap  []uint16
	ifft      *IFFTTables
	nttTables []*NTTTables

	cachedSecret []byte // small-form s, kept only if Config.PersistentSecret

	pk0, pk1 []RNSPoly // per-prime public key, NTT form (asymmetric only)
	testEp   []int8    // secret-key error from key generation; test-only (spec section 9)
}

// SetupCustom is setup_custom: builds a Handle from an explicit
// modulus chain.
func SetupCustom(n, nprimes int, moduli []Modulus, scale float64, enc EncType, opts ...Option) (*Handle, error) {
	if len(moduli) != nprimes {
		return nil, invalidConfig("setup_custom: nprimes %d does not match %d supplied moduli", nprimes, len(moduli))
	}
	parms, err := NewParms(n, moduli, scale, enc)
	if err != nil {
		return nil, err
	}
	return newHandle(parms, applyOptions(opts))
}

// Setup is setup: builds a Handle using this package's default
// NTT-friendly moduli for the requested degree and prime count.
func Setup(n, nprimes int, scale float64, enc EncType, opts ...Option) (*Handle, error) {
	moduli, err := DefaultModuli(n, nprimes)
	if err != nil {
		return nil, err
	}
	return SetupCustom(n, nprimes, moduli, scale, enc, opts...)
}

// SetupDefault is setup_default: degree=4096, nprimes=3, scale=2^25.
func SetupDefault(enc EncType, opts ...Option) (*Handle, error) {
	return Setup(4096, 3, defaultScale[4096], enc, opts...)
}

func applyOptions(opts []Option) Config {
	cfg := DefaultConfig()
	for _, o := range opts {
		o(&cfg)
	}
	return cfg
}

func newHandle(parms *Parms, cfg Config) (*Handle, error) {
	h := &Handle{
		Parms:  parms,
		Config: cfg,
		Arena:  NewArena(parms.N, encTypeOf(parms)),
	}

	switch h.Config.IndexMap {
	case IndexMapOnDemand, IndexMapPersisted:
		h.indexMap = BuildIndexMap(parms.N)
	default:
		return nil, invalidConfig("setup: unrecognized index-map policy %v", h.Config.IndexMap)
	}

	h.ifft = NewIFFTTables(parms.N, h.Config.IFFT)

	h.nttTables = make([]*NTTTables, parms.NPrimes())
	for i, q := range parms.Moduli {
		t, err := NewNTTTables(parms.N, q, h.Config.NTT)
		if err != nil {
			return nil, err
		}
		h.nttTables[i] = t
	}

	h.Config.Logger.Log(LevelInfo, "ckks: handle ready", map[string]any{
		"degree": parms.N, "nprimes": parms.NPrimes(), "asymmetric": parms.IsAsymmetric,
	})
	return h, nil
}

func encTypeOf(p *Parms) EncType {
	if p.IsAsymmetric {
		return Asymmetric
	}
	return Symmetric
}

// EncryptSeeded is encrypt_seeded: like Encrypt, but the caller
// supplies the shareable and/or private PRNG seeds instead of drawing
// them from platform entropy (useful for the byte-exact reproducible
// scenario in spec section 8's test table, scenario 5).
func (h *Handle) EncryptSeeded(shareableSeed, privateSeed *[64]byte, values []float64, sink Sink) error {
	shareable, err := seededOrFresh(shareableSeed)
	if err != nil {
		return err
	}
	private, err := seededOrFresh(privateSeed)
	if err != nil {
		return err
	}
	return h.encrypt(shareable, private, values, sink)
}

// Encrypt is encrypt: draws both PRNG seeds from platform entropy.
func (h *Handle) Encrypt(values []float64, sink Sink) error {
	return h.EncryptSeeded(nil, nil, values, sink)
}

// BatchSink is EncryptBatch's output callback: Sink with an added
// message index, so a caller driving several plaintext vectors through
// one Handle can tell which message a given prime's component belongs
// to.
type BatchSink func(msgIdx, prime int, which Component, buf []Residue) (accepted int, err error)

// EncryptBatch encodes and encrypts several plaintext slot vectors
// back-to-back against the same Handle: same modulus chain, same
// arena (the pool is never reallocated between messages), and, when
// Config.PersistentSecret is set, the same cached secret key. Each
// message draws its own fresh shareable/private PRNG seeds from
// platform entropy, so distinct messages never share an `a` or error
// polynomial. Grounded on the teacher's batch-processing shape in
// pkg/crypto/pqc/batch_blob_verify.go, which rejects an empty or
// malformed batch before doing any per-item work rather than silently
// no-op'ing.
func (h *Handle) EncryptBatch(values [][]float64, sink BatchSink) error {
	if len(values) == 0 {
		return invalidConfig("encrypt_batch: empty batch")
	}
	for i, v := range values {
		wrapped := func(prime int, which Component, buf []Residue) (int, error) {
			if sink == nil {
				return len(buf), nil
			}
			return sink(i, prime, which, buf)
		}
		if err := h.Encrypt(v, wrapped); err != nil {
			return fmt.Errorf("encrypt_batch: message %d: %w", i, err)
		}
	}
	return nil
}

func seededOrFresh(seed *[64]byte) (*PRNG, error) {
	if seed != nil {
		return NewPRNG(*seed), nil
	}
	return NewPRNGFromEntropy()
}

func (h *Handle) encrypt(shareable, private *PRNG, values []float64, sink Sink) error {
	if h.Parms.IsAsymmetric {
		return h.AsymmetricEncrypt(shareable, private, values, sink)
	}
	return h.SymmetricEncrypt(shareable, private, values, sink)
}

// Cleanup releases whatever this Handle holds. The arena and tables are
// ordinary Go heap values, so Cleanup's job under garbage collection is
// to zero the arena, the cached secret and the public key, and to drop
// the Handle's references to them (and to testEp and the NTT tables) so
// they can be collected promptly rather than lingering until the next
// GC cycle notices the Handle is unreachable. Parms, Config, the index
// map and the IFFT tables stay referenced.
func (h *Handle) Cleanup() {
	zeroBytes(h.Arena.buf)
	zeroBytes(h.cachedSecret)
	for _, p := range h.pk0 {
		zeroUint64s(p)
	}
	for _, p := range h.pk1 {
		zeroUint64s(p)
	}
	h.Arena = nil
	h.cachedSecret = nil
	h.pk0 = nil
	h.pk1 = nil
	h.testEp = nil
	h.nttTables = nil
}

func zeroBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

func zeroUint64s(s []uint64) {
	for i := range s {
		s[i] = 0
	}
}

// emitCiphertext invokes sink once for c0 and once for either c1 or,
// when Config.CompressC1 is set, the shareable seed in its place (spec
// section 6's send-callback contract, GLOSSARY "Shareable seed").
func emitCiphertext(sink Sink, prime int, cfg Config, shareable *PRNG, c0, c1 RNSPoly) error {
	if sink == nil {
		return nil
	}
	if err := sendComponent(sink, prime, ComponentC0, c0); err != nil {
		return err
	}
	if cfg.CompressC1 {
		seed := shareable.Seed()
		return sendComponent(sink, prime, ComponentShareableSeed, seedWords(seed))
	}
	return sendComponent(sink, prime, ComponentC1, c1)
}

func sendComponent(sink Sink, prime int, which Component, buf []Residue) error {
	n, err := sink(prime, which, buf)
	if err != nil {
		return err
	}
	if n != len(buf) {
		return sinkShortWrite("sink accepted %d of %d words for prime %d, component %v", n, len(buf), prime, which)
	}
	return nil
}

// seedWords reinterprets a 64-byte seed as 8 little-endian machine
// words, matching the wire byte order the rest of this package's
// persisted artefacts use (spec section 6).
func seedWords(seed [64]byte) []Residue {
	out := make([]Residue, 8)
	for i := range out {
		out[i] = binary.LittleEndian.Uint64(seed[i*8 : i*8+8])
	}
	return out
}
