//go:build ckksdebug

package ckks

// validPhaseTransition enforces the overlap order the spec's single-pool
// design depends on: embed must precede scale, which must precede
// reduce, and idle can move to embed to start a fresh encode. Any other
// transition means a caller read a view out of order against an aliased
// region that's still live under its previous interpretation.
func validPhaseTransition(from, to Phase) bool {
	switch from {
	case PhaseIdle:
		return to == PhaseEmbed || to == PhaseIdle
	case PhaseEmbed:
		return to == PhaseScale || to == PhaseEmbed
	case PhaseScale:
		return to == PhaseReduce || to == PhaseScale
	case PhaseReduce:
		return to == PhaseIdle || to == PhaseReduce
	default:
		return false
	}
}

// setPhase panics on an out-of-order transition in debug builds, since
// it means two aliased views of the scratch region were about to be
// read and written out of sequence.
func (a *Arena) setPhase(p Phase) {
	if !validPhaseTransition(a.phase, p) {
		invariant("arena phase transition %v -> %v violates scratch-region overlap order", a.phase, p)
	}
	a.phase = p
}
