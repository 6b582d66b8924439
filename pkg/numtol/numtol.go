// Package numtol provides numeric closeness helpers for external tools
// integrating with numdoc, and for the output checker itself.
//
// The closeness predicate is the additive two-term form
// |a-b| <= atol + rtol*|b|, which treats rtol as relative to the actual
// value. ULP distance is available for bit-level comparisons.
package numtol

import (
	"fmt"
	"math"
	"math/cmplx"
)

// Options configures closeness checks.
type Options struct {
	// Atol is the absolute tolerance term.
	Atol float64

	// Rtol is the relative tolerance term, scaled by |b|.
	Rtol float64

	// EqualNaN treats NaN values as equal when true.
	EqualNaN bool
}

// DefaultOptions returns the default closeness options.
func DefaultOptions() Options {
	return Options{
		Atol:     1e-8,
		Rtol:     1e-5,
		EqualNaN: false,
	}
}

// ValidateOptions validates that Options holds usable tolerances.
func ValidateOptions(opts Options) error {
	if opts.Atol < 0 {
		return fmt.Errorf("invalid Atol: %v (must be >= 0)", opts.Atol)
	}
	if opts.Rtol < 0 {
		return fmt.Errorf("invalid Rtol: %v (must be >= 0)", opts.Rtol)
	}
	return nil
}

// Close reports whether a is within tolerance of b.
func Close(a, b float64, opts Options) bool {
	if math.IsNaN(a) && math.IsNaN(b) {
		return opts.EqualNaN
	}
	if math.IsInf(a, 0) || math.IsInf(b, 0) {
		return a == b
	}
	return math.Abs(a-b) <= opts.Atol+opts.Rtol*math.Abs(b)
}

// CloseComplex reports whether complex a is within tolerance of b.
// NaN in either component makes the value NaN-like for EqualNaN purposes.
func CloseComplex(a, b complex128, opts Options) bool {
	if isNaNComplex(a) && isNaNComplex(b) {
		return opts.EqualNaN
	}
	if cmplx.IsInf(a) || cmplx.IsInf(b) {
		return a == b
	}
	return cmplx.Abs(a-b) <= opts.Atol+opts.Rtol*cmplx.Abs(b)
}

// AllClose reports whether every corresponding pair of elements is close.
// Slices of different lengths are never close.
func AllClose(a, b []float64, opts Options) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Close(a[i], b[i], opts) {
			return false
		}
	}
	return true
}

// ULPDiff returns the distance between two floats in units in the last
// place, using the IEEE 754 bit representation. The sign-magnitude bit
// patterns are mapped onto a monotonic integer line first so that values
// straddling zero measure correctly.
func ULPDiff(a, b float64) int64 {
	ai := int64(math.Float64bits(a))
	bi := int64(math.Float64bits(b))
	if ai < 0 {
		ai = math.MinInt64 - ai
	}
	if bi < 0 {
		bi = math.MinInt64 - bi
	}
	diff := ai - bi
	if diff < 0 {
		return -diff
	}
	return diff
}

func isNaNComplex(c complex128) bool {
	return math.IsNaN(real(c)) || math.IsNaN(imag(c))
}
