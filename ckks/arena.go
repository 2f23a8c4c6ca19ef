package ckks

import "unsafe"

// Phase marks which aliased view of the arena's scratch region is
// currently live. The encode step writes complex128 values into the
// scratch region, then overwrites the same bytes with int64 values in
// place (spec section 9's "encode overwriting complex values as it
// produces integer values"); Phase lets debug builds assert that only
// one view is read at a time.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseEmbed
	PhaseScale
	PhaseReduce
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseEmbed:
		return "embed"
	case PhaseScale:
		return "scale"
	case PhaseReduce:
		return "reduce"
	default:
		return "unknown"
	}
}

// Arena is a single contiguous byte buffer partitioned into named,
// possibly-overlapping regions, mirroring the spec's single-pool
// design. Regions are computed once from (n, Config) at setup time;
// within one Encrypt call the producer of a region always completes
// before its consumer begins, so overlap across phases is safe.
type Arena struct {
	buf   []byte
	n     int
	phase Phase

	scratchOff int // conj_vals / conj_vals_int region, 16*n bytes
	c0Off      int // n * 8 bytes
	c1Off      int // n * 8 bytes
	nttPteOff  int // n * 8 bytes
	sSmallOff  int // n/4 bytes (packed ternary, small form)
	pk0Off     int // asymmetric only: n * 8 bytes
	pk1Off     int // asymmetric only: n * 8 bytes
	uSmallOff  int // asymmetric only: n/4 bytes
	e1Off      int // asymmetric only: n bytes (signed small form)

	size int
}

// NewArena computes region extents for degree n under the given
// EncType and allocates one backing buffer sized to fit them all.
func NewArena(n int, enc EncType) *Arena {
	a := &Arena{n: n}
	off := 0

	a.scratchOff = off
	off += 16 * n // complex128 view; its first 8*n bytes are read back as n int64s

	a.c0Off = off
	off += 8 * n
	a.c1Off = off
	off += 8 * n
	a.nttPteOff = off
	off += 8 * n
	a.sSmallOff = off
	off += (n + 3) / 4

	if enc == Asymmetric {
		a.pk0Off = off
		off += 8 * n
		a.pk1Off = off
		off += 8 * n
		a.uSmallOff = off
		off += (n + 3) / 4
		a.e1Off = off
		off += n
	}

	a.size = off
	a.buf = make([]byte, off)
	return a
}

// ComplexView returns the scratch region reinterpreted as n complex128
// values (conj_vals). Must be called during PhaseEmbed.
func (a *Arena) ComplexView() []complex128 {
	a.setPhase(PhaseEmbed)
	ptr := unsafe.Pointer(&a.buf[a.scratchOff])
	return unsafe.Slice((*complex128)(ptr), a.n)
}

// Int64View returns the scratch region's leading n*8 bytes reinterpreted
// as n int64 values (conj_vals_int), aliasing ComplexView's backing
// bytes (the complex view needs all 16n bytes; the int64 view only
// needs the first 8n, per the spec's "length n" data model — the
// trailing 8n bytes of scratch go unused for the rest of this encode).
// Must be called during PhaseScale, after the complex view has produced
// its final values; ScaleAndRound computes each entry fresh rather than
// reinterpreting the complex bit pattern.
func (a *Arena) Int64View() []int64 {
	a.setPhase(PhaseScale)
	ptr := unsafe.Pointer(&a.buf[a.scratchOff])
	return unsafe.Slice((*int64)(ptr), a.n)
}

// MarkReduced transitions the arena into PhaseReduce, recording that
// the scratch region's int64 view holds its final values (noise
// already added); from here on it is only read, once per prime, as it
// is reduced into an RNS residue region.
func (a *Arena) MarkReduced() { a.setPhase(PhaseReduce) }

// Reset transitions the arena back to PhaseIdle, ready for the next
// Encrypt call to reuse the scratch region from scratch.
func (a *Arena) Reset() { a.setPhase(PhaseIdle) }

// C0 returns the c0 ciphertext region as residues.
func (a *Arena) C0() RNSPoly { return a.residueView(a.c0Off) }

// C1 returns the c1 ciphertext region as residues.
func (a *Arena) C1() RNSPoly { return a.residueView(a.c1Off) }

// NTTPte returns the scratch region used for the "Delta*m + e" residue
// polynomial before and after NTT.
func (a *Arena) NTTPte() RNSPoly { return a.residueView(a.nttPteOff) }

// PK0 / PK1 return the asymmetric public-key scratch regions.
func (a *Arena) PK0() RNSPoly { return a.residueView(a.pk0Off) }
func (a *Arena) PK1() RNSPoly { return a.residueView(a.pk1Off) }

// SSmall returns the packed small-form secret key view.
func (a *Arena) SSmall() []byte {
	l := (a.n + 3) / 4
	return a.buf[a.sSmallOff : a.sSmallOff+l]
}

// USmall returns the packed small-form u (asymmetric masking) view.
func (a *Arena) USmall() []byte {
	l := (a.n + 3) / 4
	return a.buf[a.uSmallOff : a.uSmallOff+l]
}

// E1Small returns the signed small-form e1 error view (asymmetric).
func (a *Arena) E1Small() []int8 {
	ptr := unsafe.Pointer(&a.buf[a.e1Off])
	return unsafe.Slice((*int8)(ptr), a.n)
}

func (a *Arena) residueView(off int) RNSPoly {
	ptr := unsafe.Pointer(&a.buf[off])
	return unsafe.Slice((*uint64)(ptr), a.n)
}

// Size reports the total number of bytes the arena allocated.
func (a *Arena) Size() int { return a.size }
