package checker

import (
	"errors"

	"github.com/numdoc/numdoc/internal/eval"
	"github.com/numdoc/numdoc/pkg/numtol"
)

var errNotNumeric = errors.New("value is not numeric")
var errShapeMismatch = errors.New("shapes do not match")

// compareValues compares two evaluated values: exact equality first,
// numeric closeness under the configured tolerances second. The error
// return signals values this comparison cannot handle at all, e.g.
// heterogeneous tuples; the caller then falls back to elementwise
// comparison.
func (c *Checker) compareValues(want, got eval.Value) (bool, error) {
	// 3 equals float64(3.0) but their dtypes differ
	if c.cfg.StrictCheck && eval.DTypeOf(want) != eval.DTypeOf(got) {
		return false, nil
	}

	if maskW, maskG, masked := masks(want, got); masked {
		if !valueEqual(maskW, maskG) {
			return false, nil
		}
		// masked positions hold nan after the repr repair, so the data
		// comparison treats nans as equal
	}

	if valueEqual(want, got) {
		return true, nil
	}

	return c.allclose(want, got)
}

// compareElementwise is the fallback for heterogeneous sequences like
// (1, array([1., 2.])): each position compares on its own. Length
// mismatches fail outright.
func (c *Checker) compareElementwise(want, got eval.Value) bool {
	wantElems, okW := eval.Elems(want)
	gotElems, okG := eval.Elems(got)
	if !okW || !okG || len(wantElems) != len(gotElems) {
		return false
	}
	for i := range wantElems {
		ok, err := c.compareValues(wantElems[i], gotElems[i])
		if err != nil || !ok {
			return false
		}
	}
	return true
}

// masks extracts the mask values when either side is a masked array.
// A plain array counts as having an all-false mask.
func masks(want, got eval.Value) (eval.Value, eval.Value, bool) {
	maskOf := func(v eval.Value) eval.Value {
		if a, ok := v.(*eval.Array); ok && a.Mask != nil {
			return a.Mask
		}
		return eval.Bool(false)
	}
	mw, mg := maskOf(want), maskOf(got)
	if valueEqual(mw, eval.Bool(false)) && valueEqual(mg, eval.Bool(false)) {
		return nil, nil, false
	}
	return mw, mg, true
}

// valueEqual is exact structural equality with numeric cross-kind
// equality, so 3 equals 3.0 and True equals 1.
func valueEqual(a, b eval.Value) bool {
	if ca, okA := asComplexValue(a); okA {
		cb, okB := asComplexValue(b)
		return okB && ca == cb
	}

	aElems, aSeq := eval.Elems(a)
	bElems, bSeq := eval.Elems(b)
	if aSeq || bSeq {
		if !aSeq || !bSeq || len(aElems) != len(bElems) {
			return false
		}
		// a list never equals a tuple
		if kind(a) != kind(b) && kind(a) != eval.KindArray && kind(b) != eval.KindArray {
			return false
		}
		for i := range aElems {
			if !valueEqual(aElems[i], bElems[i]) {
				return false
			}
		}
		return true
	}

	switch x := a.(type) {
	case eval.Str:
		y, ok := b.(eval.Str)
		return ok && x == y
	case *eval.DType:
		y, ok := b.(*eval.DType)
		return ok && x.Name == y.Name
	}
	return a.Kind() == eval.KindNone && b.Kind() == eval.KindNone
}

// kind unwraps typed-scalar arrays so their payload decides.
func kind(v eval.Value) eval.Kind {
	if a, ok := v.(*eval.Array); ok {
		if _, seq := eval.Elems(a.Data); !seq {
			return a.Data.Kind()
		}
	}
	return v.Kind()
}

// asComplexValue converts numeric scalars, including typed scalars and
// bools, to a complex number for exact comparison.
func asComplexValue(v eval.Value) (complex128, bool) {
	switch x := v.(type) {
	case eval.Bool:
		if x {
			return 1, true
		}
		return 0, true
	case eval.Int:
		return complex(float64(x), 0), true
	case eval.Float:
		return complex128(complex(float64(x), 0)), true
	case eval.Complex:
		return complex128(x), true
	case *eval.Array:
		if _, seq := eval.Elems(x.Data); !seq {
			return asComplexValue(x.Data)
		}
	}
	return 0, false
}

// allclose flattens both values to numeric vectors, broadcasting
// scalars, and compares position by position under the configured
// tolerances. Nans compare equal so that masked or undefined entries
// do not fail the example.
func (c *Checker) allclose(want, got eval.Value) (bool, error) {
	wantNums, errW := flatten(want)
	if errW != nil {
		return false, errW
	}
	gotNums, errG := flatten(got)
	if errG != nil {
		return false, errG
	}

	if len(wantNums) == 1 && len(gotNums) > 1 {
		wantNums = broadcast(wantNums[0], len(gotNums))
	}
	if len(gotNums) == 1 && len(wantNums) > 1 {
		gotNums = broadcast(gotNums[0], len(wantNums))
	}
	if len(wantNums) != len(gotNums) {
		return false, errShapeMismatch
	}

	opts := numtol.Options{Atol: c.cfg.Atol, Rtol: c.cfg.Rtol, EqualNaN: true}
	for i := range wantNums {
		if !numtol.CloseComplex(wantNums[i], gotNums[i], opts) {
			return false, nil
		}
	}
	return true, nil
}

func broadcast(v complex128, n int) []complex128 {
	out := make([]complex128, n)
	for i := range out {
		out[i] = v
	}
	return out
}

// flatten collects every numeric scalar in v in element order. A
// non-numeric element makes the whole value non-flattenable.
func flatten(v eval.Value) ([]complex128, error) {
	if cv, ok := asComplexValue(v); ok {
		return []complex128{cv}, nil
	}
	elems, ok := eval.Elems(v)
	if !ok {
		return nil, errNotNumeric
	}
	var out []complex128
	for _, e := range elems {
		nested, err := flatten(e)
		if err != nil {
			return nil, err
		}
		out = append(out, nested...)
	}
	return out, nil
}
