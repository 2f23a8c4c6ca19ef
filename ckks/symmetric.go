package ckks

// SymmetricEncrypt runs spec section 4.F's encode_base + sym_init +
// per-prime loop: it samples the error polynomial e, folds it into
// conj_vals_int, then for each prime draws a=c1 from the shareable
// PRNG, expands s into NTT form, and computes
// c0 = (Delta*m+e) - a*s pointwise in NTT form, emitting (c0, c1) to
// sink once per prime.
func (h *Handle) SymmetricEncrypt(shareable, private *PRNG, values []float64, sink Sink) error {
	parms := h.Parms
	arena := h.Arena

	if err := EncodeBase(arena, h.ifft, h.indexMap, parms.Scale(), parms.Moduli[0].Value, values); err != nil {
		return err
	}

	e, err := SampleCBD(private, parms.N, nil)
	if err != nil {
		return err
	}
	iview := arena.Int64View()
	for i, ei := range e {
		iview[i] += int64(ei)
	}
	arena.MarkReduced()

	sSmall, err := h.secretSmall(private)
	if err != nil {
		return err
	}

	parms.ResetPrimes()
	for {
		idx := parms.CurrModulusIdx()
		q := parms.CurrModulus()
		nttTables := h.nttTables[idx]
		h.Config.Logger.Log(LevelDebug, "symmetric encrypt: processing prime", map[string]any{"prime_idx": idx, "prime": q.Value})

		pte := arena.NTTPte()
		ReduceFromInt64(pte, iview, q)
		nttTables.Forward(pte)

		c1 := arena.C1()
		if _, err := SampleUniformMod(shareable, q, parms.N, c1); err != nil {
			return err
		}

		sNTT := ExpandTernary(sSmall, parms.N, q)
		nttTables.Forward(sNTT)
		PolyMulModNTTInpl(sNTT, c1, q)

		c0 := arena.C0()
		copy(c0, pte)
		PolySubModInpl(c0, sNTT, q)

		if err := emitCiphertext(sink, idx, h.Config, shareable, c0, c1); err != nil {
			return err
		}

		if !parms.NextModulus() {
			break
		}
	}
	arena.Reset()
	return nil
}

// secretSmall returns the packed small-form secret key, sampling a
// fresh one from private unless Config.PersistentSecret asks to reuse
// whatever is cached on the Handle from a prior call. The sample lands
// directly in the arena's dedicated s region (spec section 4.H): that
// region is never touched by anything else, so it survives Reset()
// between calls and doubles as the persistence storage Config.
// PersistentSecret asks for, with no separate heap copy.
func (h *Handle) secretSmall(private *PRNG) ([]byte, error) {
	if h.Config.PersistentSecret && h.cachedSecret != nil {
		return h.cachedSecret, nil
	}
	s, err := SampleTernarySmall(private, h.Parms.N, h.Arena.SSmall())
	if err != nil {
		return nil, err
	}
	if h.Config.PersistentSecret {
		h.cachedSecret = s
	}
	return s, nil
}
