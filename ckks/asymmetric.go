package ckks

// AsymmetricEncrypt runs spec section 4.G's encode_base + asym_init +
// per-prime loop: it samples u (ternary), e0 and e1 (CBD), folds e0
// into conj_vals_int, and for each prime computes
// c1 = pk1*u + e1, c0 = pk0*u + (Delta*m+e0), all pointwise in NTT
// form, emitting (c0, c1) to sink once per prime. When the Handle has
// no public key yet and Parms.PkFromFile is false, it generates one
// first by mirroring the symmetric path once (spec section 4.G,
// "Key generation path").
func (h *Handle) AsymmetricEncrypt(shareable, private *PRNG, values []float64, sink Sink) error {
	if h.pk0 == nil {
		if h.Parms.PkFromFile {
			return invalidConfig("asymmetric encrypt: no public key loaded and pk_from_file is set")
		}
		// Key generation mirrors the symmetric path's PRNG roles: the
		// shareable PRNG draws the public "a", the private PRNG draws
		// the secret and error material.
		if err := h.generateKeyPair(shareable, private); err != nil {
			return err
		}
	}

	parms := h.Parms
	arena := h.Arena

	if err := EncodeBase(arena, h.ifft, h.indexMap, parms.Scale(), parms.Moduli[0].Value, values); err != nil {
		return err
	}

	e0, err := SampleCBD(private, parms.N, nil)
	if err != nil {
		return err
	}
	iview := arena.Int64View()
	for i, v := range e0 {
		iview[i] += int64(v)
	}
	arena.MarkReduced()

	uSmall, err := SampleTernarySmall(private, parms.N, arena.USmall())
	if err != nil {
		return err
	}
	e1, err := SampleCBD(private, parms.N, arena.E1Small())
	if err != nil {
		return err
	}

	// Seed compression is symmetric-only: here c1 = pk1*u + e1 cannot be
	// rebuilt from the shareable seed, so c1 is always sent in full.
	emitCfg := h.Config
	emitCfg.CompressC1 = false

	parms.ResetPrimes()
	for {
		idx := parms.CurrModulusIdx()
		q := parms.CurrModulus()
		nttTables := h.nttTables[idx]
		h.Config.Logger.Log(LevelDebug, "asymmetric encrypt: processing prime", map[string]any{"prime_idx": idx, "prime": q.Value})

		uNTT := ExpandTernary(uSmall, parms.N, q)
		nttTables.Forward(uNTT)

		e1NTT := ExpandSmallError(e1, q)
		nttTables.Forward(e1NTT)

		c1 := arena.C1()
		copy(c1, h.pk1[idx])
		PolyMulModNTTInpl(c1, uNTT, q)
		PolyAddModInpl(c1, e1NTT, q)

		pte := arena.NTTPte()
		ReduceFromInt64(pte, iview, q)
		nttTables.Forward(pte)

		c0 := arena.C0()
		copy(c0, h.pk0[idx])
		PolyMulModNTTInpl(c0, uNTT, q)
		PolyAddModInpl(c0, pte, q)

		if err := emitCiphertext(sink, idx, emitCfg, shareable, c0, c1); err != nil {
			return err
		}

		if !parms.NextModulus() {
			break
		}
	}
	arena.Reset()
	return nil
}

// generateKeyPair mirrors the symmetric path once to build
// (pk0, pk1) per prime: pk1 = a (uniform), pk0 = -(a*s) + ep, both in
// NTT form. ep is kept on the Handle for test-only decryption
// verification (spec section 9's open question marks it test-only;
// production code never emits it).
//
// Each prime's a and p0 are computed in the arena's pk1/pk0 regions
// (spec section 4.H) rather than freshly heap-allocated RNSPolys: the
// pool is reused one prime at a time exactly like C0()/C1() are in the
// encrypt loop above. Only the finished per-prime value is copied out
// to pk0/pk1, which must hold every prime's key simultaneously and
// outlive this call across the Handle's whole lifetime — a span the
// single-prime-sized pool region cannot itself cover.
func (h *Handle) generateKeyPair(shareable, private *PRNG) error {
	parms := h.Parms
	n := parms.N
	arena := h.Arena

	sSmall, err := h.secretSmall(private)
	if err != nil {
		return err
	}
	ep, err := SampleCBD(private, n, nil)
	if err != nil {
		return err
	}

	pk0 := make([]RNSPoly, parms.NPrimes())
	pk1 := make([]RNSPoly, parms.NPrimes())

	for idx, q := range parms.Moduli {
		nttTables := h.nttTables[idx]

		a := arena.PK1()
		if _, err := SampleUniformMod(shareable, q, n, a); err != nil {
			return err
		}

		sNTT := ExpandTernary(sSmall, n, q)
		nttTables.Forward(sNTT)

		epNTT := ExpandSmallError(ep, q)
		nttTables.Forward(epNTT)

		p0 := arena.PK0()
		copy(p0, a)
		PolyMulModNTTInpl(p0, sNTT, q)
		for i := range p0 {
			p0[i] = q.NegMod(p0[i])
		}
		PolyAddModInpl(p0, epNTT, q)

		pk0[idx] = p0.Clone()
		pk1[idx] = a.Clone()
	}

	h.pk0 = pk0
	h.pk1 = pk1
	h.testEp = ep
	return nil
}
