//go:build ckksdebug

package ckks

import "fmt"

// invariantTrap panics in debug builds: an invariant violation is a bug,
// not a recoverable condition, and we want it loud under test.
func invariantTrap(format string, args ...any) *CkksError {
	err := newErr(CodeUnknown, ErrInvariantViolation, format, args...)
	panic(fmt.Sprintf("ckks: invariant violation: %s", err.Msg))
}
