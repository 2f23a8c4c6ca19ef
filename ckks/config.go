package ckks

// IFFTVariant selects where the encoder's inverse-FFT roots come from.
type IFFTVariant int

const (
	IFFTOnTheFly IFFTVariant = iota
	IFFTLoadFull
)

// NTTVariant selects the NTT root-supply strategy (spec section 4.E).
// All three must (and do) produce bit-identical outputs.
type NTTVariant int

const (
	NTTOnTheFly NTTVariant = iota
	NTTOneShot
	NTTFast
)

// PoolAlloc names the pool-allocation policy (heap vs static buffer).
// The value is recorded on Config only: every Handle allocates its own
// heap-backed Arena in Setup regardless of it, no Arena is shared
// between Handles, and Cleanup treats PoolHeap and PoolStatic alike.
type PoolAlloc int

const (
	PoolHeap PoolAlloc = iota
	PoolStatic
)

// IndexMapPolicy selects how pi (the slot-to-coefficient permutation
// composed with FFT bit-reversal) is produced.
type IndexMapPolicy int

const (
	IndexMapOnDemand IndexMapPolicy = iota
	IndexMapPersisted
)

// Config is the single configuration struct enumerating the compile-time
// feature matrix from spec section 9, applied at runtime rather than via
// preprocessor branches.
type Config struct {
	IFFT       IFFTVariant
	NTT        NTTVariant
	IndexMap   IndexMapPolicy
	Pool       PoolAlloc
	Logger     Logger
	CompressC1 bool // symmetric-seed-compression: send seed instead of c1 (asymmetric encryption ignores it)

	// PersistentSecret keeps the small-form s alive across Encrypt
	// calls on the same Handle instead of resampling it each time. The
	// expanded (NTT-form) s is not cached; it is recomputed for every
	// prime on every call.
	PersistentSecret bool
}

// DefaultConfig returns the configuration this package uses unless a
// caller overrides it with Options: on-the-fly roots for both IFFT and
// NTT (no persisted tables, suited to a memory-constrained device), an
// on-demand index map, a heap-backed pool, no logging, and a fresh
// secret key per call.
func DefaultConfig() Config {
	return Config{
		IFFT:     IFFTOnTheFly,
		NTT:      NTTOnTheFly,
		IndexMap: IndexMapOnDemand,
		Pool:     PoolHeap,
		Logger:   NopLogger{},
	}
}

// Option mutates a Config during Setup.
type Option func(*Config)

func WithIFFTVariant(v IFFTVariant) Option { return func(c *Config) { c.IFFT = v } }
func WithNTTVariant(v NTTVariant) Option   { return func(c *Config) { c.NTT = v } }
func WithIndexMapPolicy(v IndexMapPolicy) Option {
	return func(c *Config) { c.IndexMap = v }
}
func WithPoolAlloc(v PoolAlloc) Option { return func(c *Config) { c.Pool = v } }
func WithLogger(l Logger) Option       { return func(c *Config) { c.Logger = l } }
func WithPersistentSecret(v bool) Option {
	return func(c *Config) { c.PersistentSecret = v }
}
func WithSeedCompression(v bool) Option { return func(c *Config) { c.CompressC1 = v } }
