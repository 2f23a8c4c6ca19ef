//go:build !ckksdebug

package ckks

// setPhase just records the phase in a release build; the overlap-order
// assertion in arena_debug.go only runs under -tags ckksdebug.
func (a *Arena) setPhase(p Phase) { a.phase = p }
