package ckks

import (
	"errors"
	"fmt"
)

// ErrorCode classifies a failure returned by the core. Negative values
// mirror the wire-level error codes a caller on the other side of a
// C ABI would see.
type ErrorCode int16

const (
	CodeOK              ErrorCode = 0
	CodeNoMemory        ErrorCode = -12
	CodeInvalidArgument ErrorCode = -22
	CodeUnknown         ErrorCode = -1000
	CodeMinReserved     ErrorCode = -9999
)

// Sentinel errors for errors.Is comparisons. These classify *why* an
// operation failed, independent of the wire-level ErrorCode above.
var (
	// ErrInvalidConfiguration: degree not a supported power of two, a
	// prime fails 2n | p-1, a non-positive scale, or mutually exclusive
	// feature flags were requested. Surfaced from Setup*.
	ErrInvalidConfiguration = errors.New("ckks: invalid configuration")

	// ErrEncodeOverflow: the IFFT left a non-negligible imaginary part,
	// or |Delta*Re(conj_vals[k])| reaches the encoder's bound (2^61, or
	// q_0/32 when the first prime of the chain is known, whichever is
	// smaller). Recoverable:
	// retry with a smaller scale or message magnitude.
	ErrEncodeOverflow = errors.New("ckks: encode overflow")

	// ErrEntropyUnavailable: the platform entropy source failed. Fatal:
	// the core cannot proceed without randomness for errors/u/a.
	ErrEntropyUnavailable = errors.New("ckks: entropy source unavailable")

	// ErrSinkShortWrite: the caller's Sink reported a different number
	// of accepted Residue words than it was given. Fatal to the current
	// call; the pool is left consistent.
	ErrSinkShortWrite = errors.New("ckks: sink short write")

	// ErrInvariantViolation: no primitive 2n-th root of unity exists for
	// a prime, or (debug builds only) the arena's scratch-region phases
	// were entered out of order. Indicates a bug. Residues are not
	// checked against their modulus at run time. Panics in debug builds
	// (-tags ckksdebug); returned as a normal error otherwise.
	ErrInvariantViolation = errors.New("ckks: invariant violation")
)

// CkksError wraps a sentinel error with a wire-level code and optional
// context, satisfying errors.Unwrap so callers can still use errors.Is
// against the sentinels above.
type CkksError struct {
	Code ErrorCode
	Err  error
	Msg  string
}

func (e *CkksError) Error() string {
	if e.Msg == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %s", e.Err.Error(), e.Msg)
}

func (e *CkksError) Unwrap() error { return e.Err }

func newErr(code ErrorCode, sentinel error, format string, args ...any) *CkksError {
	return &CkksError{Code: code, Err: sentinel, Msg: fmt.Sprintf(format, args...)}
}

func invalidConfig(format string, args ...any) *CkksError {
	return newErr(CodeInvalidArgument, ErrInvalidConfiguration, format, args...)
}

func encodeOverflow(format string, args ...any) *CkksError {
	return newErr(CodeInvalidArgument, ErrEncodeOverflow, format, args...)
}

func entropyUnavailable(format string, args ...any) *CkksError {
	return newErr(CodeUnknown, ErrEntropyUnavailable, format, args...)
}

func sinkShortWrite(format string, args ...any) *CkksError {
	return newErr(CodeUnknown, ErrSinkShortWrite, format, args...)
}

// invariant traps in debug builds (see errors_debug.go / errors_release.go)
// and otherwise returns a *CkksError wrapping ErrInvariantViolation.
func invariant(format string, args ...any) *CkksError {
	return invariantTrap(format, args...)
}
