package eval

import (
	"math"
	"strings"
	"testing"
)

func mustEval(t *testing.T, src string) Value {
	t.Helper()
	v, err := EvalExpr(src, CheckNamespace())
	if err != nil {
		t.Fatalf("EvalExpr(%q) returned error: %v", src, err)
	}
	return v
}

func TestEvalExpr_Literals(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		repr string
	}{
		{"int", "42", "42"},
		{"negative int", "-7", "-7"},
		{"float", "3.14", "3.14"},
		{"trailing dot", "1.", "1.0"},
		{"leading dot", ".5", "0.5"},
		{"exponent", "1e3", "1000.0"},
		{"imaginary", "2j", "2.0j"},
		{"complex sum", "1+2j", "(1.0+2.0j)"},
		{"string single", "'abc'", "'abc'"},
		{"string double", `"abc"`, "'abc'"},
		{"true", "True", "True"},
		{"false", "False", "False"},
		{"none", "None", "None"},
		{"list", "[1, 2, 3]", "[1, 2, 3]"},
		{"nested list", "[[1, 2], [3, 4]]", "[[1, 2], [3, 4]]"},
		{"tuple", "(1, 2)", "(1, 2)"},
		{"one tuple", "(1,)", "(1,)"},
		{"bare tuple", "1, 2, 3", "(1, 2, 3)"},
		{"empty tuple", "()", "()"},
		{"empty list", "[]", "[]"},
		{"grouping", "(3)", "3"},
		{"comment", "42  # the answer", "42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := mustEval(t, tt.src).Repr(); got != tt.repr {
				t.Errorf("EvalExpr(%q).Repr() = %q, want %q", tt.src, got, tt.repr)
			}
		})
	}
}

func TestEvalExpr_Arithmetic(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		repr string
	}{
		{"int sum", "2 + 3", "5"},
		{"precedence", "2 + 3 * 4", "14"},
		{"true division", "7 / 2", "3.5"},
		{"float product", "0.5 * 4", "2.0"},
		{"unary minus", "-(2 + 3)", "-5"},
		{"string concat", "'ab' + 'cd'", "'abcd'"},
		{"list concat", "[1] + [2, 3]", "[1, 2, 3]"},
		{"complex product", "2j * 2j", "(-4.0+0.0j)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := mustEval(t, tt.src).Repr(); got != tt.repr {
				t.Errorf("EvalExpr(%q).Repr() = %q, want %q", tt.src, got, tt.repr)
			}
		})
	}
}

func TestEvalExpr_Constructors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		repr string
	}{
		{"array", "array([1, 2, 3])", "array([1, 2, 3])"},
		{"array dtype kwarg", "array([1, 2], dtype=uint8)", "array([1, 2], dtype=uint8)"},
		{"array shape ignored", "array([1, 2], shape=(2,))", "array([1, 2])"},
		{"typed scalar", "float32(1.5)", "float32(1.5)"},
		{"dtype", "dtype('float64')", "dtype('float64')"},
		{"masked", "masked_array(data=[1, 2], mask=[False, True])",
			"masked_array(data=[1, 2], mask=[False, True])"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := mustEval(t, tt.src).Repr(); got != tt.repr {
				t.Errorf("EvalExpr(%q).Repr() = %q, want %q", tt.src, got, tt.repr)
			}
		})
	}
}

// Reprs must parse back to an equal value through the same namespace.
func TestEvalExpr_ReprRoundTrip(t *testing.T) {
	t.Parallel()

	for _, src := range []string{
		"42", "3.14", "(1, 2, 3)", "[1.5, 2.5]", "'text'",
		"array([1., 2.])", "float32(2.5)", "(1+2j)",
	} {
		first := mustEval(t, src).Repr()
		second := mustEval(t, first).Repr()
		if first != second {
			t.Errorf("repr of %q did not round-trip: %q then %q", src, first, second)
		}
	}
}

func TestEvalExpr_Specials(t *testing.T) {
	t.Parallel()

	if v := mustEval(t, "nan"); !math.IsNaN(float64(v.(Float))) {
		t.Error("nan did not evaluate to NaN")
	}
	if v := mustEval(t, "inf"); !math.IsInf(float64(v.(Float)), 1) {
		t.Error("inf did not evaluate to +Inf")
	}
	if got := mustEval(t, "-inf").Repr(); got != "-inf" {
		t.Errorf("-inf reprs as %q", got)
	}
	if got := mustEval(t, "array([1., nan])").Repr(); got != "array([1.0, nan])" {
		t.Errorf("nan in array reprs as %q", got)
	}
}

func TestEvalExpr_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		kind string
	}{
		{"undefined name", "no_such_thing", "name"},
		{"bad syntax", "1 +", "syntax"},
		{"lone ellipsis", "array([1, ..., 9])", "syntax"},
		{"not callable", "3(4)", "type"},
		{"division by zero", "1 / 0", "type"},
		{"positional after keyword", "array(dtype=uint8, [1])", "syntax"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := EvalExpr(tt.src, CheckNamespace())
			if err == nil {
				t.Fatalf("EvalExpr(%q) succeeded, want error", tt.src)
			}
			switch tt.kind {
			case "name":
				if _, ok := err.(*NameError); !ok {
					t.Errorf("EvalExpr(%q) error = %T, want *NameError", tt.src, err)
				}
			case "syntax":
				if _, ok := err.(*SyntaxError); !ok {
					t.Errorf("EvalExpr(%q) error = %T, want *SyntaxError", tt.src, err)
				}
			case "type":
				if _, ok := err.(*TypeError); !ok {
					t.Errorf("EvalExpr(%q) error = %T, want *TypeError", tt.src, err)
				}
			}
		})
	}
}

func TestStatement_Assignment(t *testing.T) {
	t.Parallel()

	ns := ExecNamespace()

	st, err := Parse("x = 2 + 3")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	v, err := st.Eval(ns)
	if err != nil {
		t.Fatalf("Eval returned error: %v", err)
	}
	if v.Kind() != KindNone {
		t.Errorf("assignment evaluated to %s, want None", v.Repr())
	}
	if got := ns["x"].Repr(); got != "5" {
		t.Errorf("x bound to %s, want 5", got)
	}

	st, err = Parse("x * 2")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	v, err = st.Eval(ns)
	if err != nil {
		t.Fatalf("Eval returned error: %v", err)
	}
	if got := v.Repr(); got != "10" {
		t.Errorf("x * 2 = %s, want 10", got)
	}
}

func TestFormatOptions_Precision(t *testing.T) {
	prev := SetFormatOptions(FormatOptions{Precision: 3})
	defer SetFormatOptions(prev)

	if got := Float(1.0 / 3.0).Repr(); got != "0.333" {
		t.Errorf("Repr at precision 3 = %q, want %q", got, "0.333")
	}
	if !strings.HasPrefix(Float(2.0).Repr(), "2") {
		t.Errorf("whole float repr = %q", Float(2.0).Repr())
	}
}
