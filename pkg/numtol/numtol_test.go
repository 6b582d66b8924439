package numtol

import (
	"math"
	"testing"
)

func TestClose(t *testing.T) {
	t.Parallel()
	opts := DefaultOptions()

	tests := []struct {
		name string
		a, b float64
		pass bool
	}{
		{"equal", 1.0, 1.0, true},
		{"within rtol", 1.0, 1.0 + 1e-6, true},
		{"outside rtol", 1.0, 1.1, false},
		{"near zero atol", 0.0, 1e-9, true},
		{"zero vs large", 0.0, 1.0, false},
		{"both inf", math.Inf(1), math.Inf(1), true},
		{"inf vs finite", math.Inf(1), 1e300, false},
		{"opposite inf", math.Inf(1), math.Inf(-1), false},
		{"nan not equal by default", math.NaN(), math.NaN(), false},
		{"negative values", -2.0, -2.0000001, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Close(tt.a, tt.b, opts); got != tt.pass {
				t.Errorf("Close(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.pass)
			}
		})
	}
}

func TestClose_EqualNaN(t *testing.T) {
	t.Parallel()

	opts := DefaultOptions()
	opts.EqualNaN = true
	if !Close(math.NaN(), math.NaN(), opts) {
		t.Error("EqualNaN did not equate NaNs")
	}
	if Close(math.NaN(), 1.0, opts) {
		t.Error("NaN equaled a number")
	}
}

// The relative term scales with the second argument, so the predicate
// is not symmetric for large tolerances.
func TestClose_RelativeToActual(t *testing.T) {
	t.Parallel()

	opts := Options{Atol: 0, Rtol: 0.1}
	if !Close(95, 100, opts) {
		t.Error("95 should be within 10% of 100")
	}
	if Close(100, 85, opts) {
		t.Error("100 is not within 10% of 85 plus nothing absolute")
	}
}

func TestCloseComplex(t *testing.T) {
	t.Parallel()
	opts := DefaultOptions()

	if !CloseComplex(complex(1, 2), complex(1+1e-9, 2), opts) {
		t.Error("nearby complex values not close")
	}
	if CloseComplex(complex(1, 2), complex(1, 3), opts) {
		t.Error("distant complex values close")
	}

	opts.EqualNaN = true
	nan := math.NaN()
	if !CloseComplex(complex(nan, 0), complex(0, nan), opts) {
		t.Error("NaN-like complex values not equal under EqualNaN")
	}
}

func TestAllClose(t *testing.T) {
	t.Parallel()
	opts := DefaultOptions()

	if !AllClose([]float64{1, 2, 3}, []float64{1, 2, 3 + 1e-9}, opts) {
		t.Error("close slices rejected")
	}
	if AllClose([]float64{1, 2}, []float64{1, 2, 3}, opts) {
		t.Error("length mismatch accepted")
	}
	if AllClose([]float64{1, 2}, []float64{1, 3}, opts) {
		t.Error("distant slices accepted")
	}
}

func TestValidateOptions(t *testing.T) {
	t.Parallel()

	if err := ValidateOptions(DefaultOptions()); err != nil {
		t.Errorf("default options invalid: %v", err)
	}
	if err := ValidateOptions(Options{Atol: -1}); err == nil {
		t.Error("negative Atol accepted")
	}
	if err := ValidateOptions(Options{Rtol: -1}); err == nil {
		t.Error("negative Rtol accepted")
	}
}

func TestULPDiff(t *testing.T) {
	t.Parallel()

	if got := ULPDiff(1.0, 1.0); got != 0 {
		t.Errorf("ULPDiff(1, 1) = %d, want 0", got)
	}
	next := math.Nextafter(1.0, 2.0)
	if got := ULPDiff(1.0, next); got != 1 {
		t.Errorf("ULPDiff to the next float = %d, want 1", got)
	}
	if got := ULPDiff(next, 1.0); got != 1 {
		t.Errorf("ULPDiff is not symmetric: %d", got)
	}
	// straddling zero counts through both sides
	if got := ULPDiff(math.Copysign(0, -1), 0); got != 0 {
		t.Errorf("ULPDiff(-0, +0) = %d, want 0", got)
	}
}
