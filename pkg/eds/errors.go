package eds

import "fmt"

// ErrorKind identifies a kind of error. It satisfies the error interface so
// it can be used with errors.Is.
type ErrorKind string

// These constants are used to identify a specific Error.
const (
	// ErrSingularInverse is returned when an inverse of a value congruent to
	// zero is requested. It arises from psi_2 ≡ 0 in the even recurrence and
	// from a vertical chord in point addition.
	ErrSingularInverse = ErrorKind("ErrSingularInverse")

	// ErrInvalidIndex is returned for a negative division polynomial index
	// or one that overflows int64.
	ErrInvalidIndex = ErrorKind("ErrInvalidIndex")

	// ErrInvalidCurve is returned when the modulus is not usable (p <= 3 or
	// even) or curve coefficients are missing.
	ErrInvalidCurve = ErrorKind("ErrInvalidCurve")

	// ErrPointNotOnCurve is returned when a point that must satisfy the curve
	// equation does not.
	ErrPointNotOnCurve = ErrorKind("ErrPointNotOnCurve")

	// ErrPointAtInfinity is returned when an affine point is required but the
	// point at infinity was supplied.
	ErrPointAtInfinity = ErrorKind("ErrPointAtInfinity")

	// ErrInvalidScalar is returned for a negative scalar multiplier.
	ErrInvalidScalar = ErrorKind("ErrInvalidScalar")
)

// Error satisfies the error interface and prints human-readable errors.
func (e ErrorKind) Error() string {
	return string(e)
}

// Error identifies an error related to field, curve or division polynomial
// evaluation. It has full support for errors.Is and errors.As, so the caller
// can ascertain the specific reason for the error by checking the underlying
// error.
type Error struct {
	Err         error
	Description string
}

// Error satisfies the error interface and prints human-readable errors.
func (e Error) Error() string {
	return e.Description
}

// Unwrap returns the underlying wrapped error.
func (e Error) Unwrap() error {
	return e.Err
}

// NewError creates an Error given a set of arguments.
func NewError(kind ErrorKind, desc string) Error {
	return Error{Err: kind, Description: desc}
}

// Errorf creates an Error with a formatted description.
func Errorf(kind ErrorKind, format string, args ...interface{}) Error {
	return Error{Err: kind, Description: fmt.Sprintf(format, args...)}
}

// EvalError reports a failed evaluation together with the index and point
// that triggered it, so drivers can surface the offending input instead of a
// placeholder value.
type EvalError struct {
	Index int64
	X, Y  string
	Err   error
}

func (e *EvalError) Error() string {
	if e.X == "" && e.Y == "" {
		return fmt.Sprintf("psi_%d at O: %v", e.Index, e.Err)
	}
	return fmt.Sprintf("psi_%d at (%s, %s): %v", e.Index, e.X, e.Y, e.Err)
}

func (e *EvalError) Unwrap() error {
	return e.Err
}

// NewEvalError creates a new EvalError.
func NewEvalError(index int64, x, y string, err error) *EvalError {
	return &EvalError{
		Index: index,
		X:     x,
		Y:     y,
		Err:   err,
	}
}
