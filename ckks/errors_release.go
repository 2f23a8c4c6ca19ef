//go:build !ckksdebug

package ckks

// invariantTrap converts an invariant violation into a normal error in
// release builds rather than panicking.
func invariantTrap(format string, args ...any) *CkksError {
	return newErr(CodeUnknown, ErrInvariantViolation, format, args...)
}
