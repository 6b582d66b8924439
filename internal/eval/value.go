// Package eval implements the bounded expression language used to
// reconstruct values from printed example output. It recognizes numbers,
// strings, lists, tuples, and the array/masked-array/dtype constructor
// idioms of scientific reprs. It is not a general-purpose interpreter:
// the grammar is intentionally limited to what documented output can
// plausibly contain.
package eval

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind identifies the runtime type of a Value.
type Kind int

const (
	KindNone Kind = iota
	KindBool
	KindInt
	KindFloat
	KindComplex
	KindString
	KindList
	KindTuple
	KindArray
	KindDType
	KindBuiltin
)

// Value is a runtime value produced by evaluating example text.
type Value interface {
	Kind() Kind
	// Repr renders the value the way an interactive session would echo it.
	Repr() string
	// Str renders the value the way print() would, i.e. strings unquoted.
	Str() string
}

// None is the null value.
var None Value = noneValue{}

type noneValue struct{}

func (noneValue) Kind() Kind   { return KindNone }
func (noneValue) Repr() string { return "None" }
func (noneValue) Str() string  { return "None" }

// Bool is a boolean value.
type Bool bool

func (Bool) Kind() Kind { return KindBool }
func (b Bool) Repr() string {
	if b {
		return "True"
	}
	return "False"
}
func (b Bool) Str() string { return b.Repr() }

// Int is an integer value.
type Int int64

func (Int) Kind() Kind     { return KindInt }
func (i Int) Repr() string { return strconv.FormatInt(int64(i), 10) }
func (i Int) Str() string  { return i.Repr() }

// Float is a floating-point value.
type Float float64

func (Float) Kind() Kind { return KindFloat }
func (f Float) Repr() string {
	return formatFloat(float64(f))
}
func (f Float) Str() string { return f.Repr() }

// Complex is a complex value.
type Complex complex128

func (Complex) Kind() Kind { return KindComplex }
func (c Complex) Repr() string {
	re, im := real(complex128(c)), imag(complex128(c))
	if re == 0 && !math.Signbit(re) {
		return formatFloat(im) + "j"
	}
	sign := "+"
	if math.Signbit(im) && !math.IsNaN(im) {
		sign = "-"
		im = -im
	}
	return "(" + formatFloat(re) + sign + formatFloat(im) + "j)"
}
func (c Complex) Str() string { return c.Repr() }

// Str is a string value.
type Str string

func (Str) Kind() Kind     { return KindString }
func (s Str) Repr() string { return quote(string(s)) }
func (s Str) Str() string  { return string(s) }

// List is a variable-length ordered sequence.
type List struct {
	Elems []Value
}

func (*List) Kind() Kind { return KindList }
func (l *List) Repr() string {
	return "[" + joinReprs(l.Elems) + "]"
}
func (l *List) Str() string { return l.Repr() }

// Tuple is a fixed-length ordered sequence.
type Tuple struct {
	Elems []Value
}

func (*Tuple) Kind() Kind { return KindTuple }
func (t *Tuple) Repr() string {
	if len(t.Elems) == 1 {
		return "(" + t.Elems[0].Repr() + ",)"
	}
	return "(" + joinReprs(t.Elems) + ")"
}
func (t *Tuple) Str() string { return t.Repr() }

// Array is a dtype-carrying array, possibly masked. Data holds the nested
// element container exactly as constructed (a List, Tuple, or scalar).
// Mask and Fill are non-nil only for masked arrays.
type Array struct {
	Data  Value
	DType string
	Mask  Value
	Fill  Value
}

func (*Array) Kind() Kind { return KindArray }
func (a *Array) Repr() string {
	if a.Mask != nil {
		s := "masked_array(data=" + a.Data.Repr() + ", mask=" + a.Mask.Repr()
		if a.Fill != nil {
			s += ", fill_value=" + a.Fill.Repr()
		}
		return s + ")"
	}
	if _, listlike := Elems(a.Data); !listlike {
		// Typed scalars echo as their constructor call so the repr
		// round-trips through the reconstruction grammar.
		return a.DType + "(" + a.Data.Repr() + ")"
	}
	if a.DType != "" && !isDefaultDType(a.DType) {
		return "array(" + a.Data.Repr() + ", dtype=" + a.DType + ")"
	}
	return "array(" + a.Data.Repr() + ")"
}
func (a *Array) Str() string { return a.Repr() }

// DType is a named element type, e.g. dtype('float64').
type DType struct {
	Name string
}

func (*DType) Kind() Kind     { return KindDType }
func (d *DType) Repr() string { return "dtype('" + d.Name + "')" }
func (d *DType) Str() string  { return d.Name }

// Kwarg is a keyword argument in a call.
type Kwarg struct {
	Name  string
	Value Value
}

// Builtin is a callable installed into a namespace.
type Builtin struct {
	Name string
	Call func(args []Value, kwargs []Kwarg) (Value, error)
}

func (*Builtin) Kind() Kind     { return KindBuiltin }
func (b *Builtin) Repr() string { return "<built-in function " + b.Name + ">" }
func (b *Builtin) Str() string  { return b.Repr() }

// Namespace maps names to runtime values.
type Namespace map[string]Value

// Clone returns a shallow copy of the namespace. Each test-group runs in
// its own copy so that bindings do not leak across groups.
func (ns Namespace) Clone() Namespace {
	out := make(Namespace, len(ns))
	for k, v := range ns {
		out[k] = v
	}
	return out
}

// Elems returns the ordered elements of a list-like value, unwrapping
// arrays to their data container. ok is false for scalars.
func Elems(v Value) (elems []Value, ok bool) {
	switch x := v.(type) {
	case *List:
		return x.Elems, true
	case *Tuple:
		return x.Elems, true
	case *Array:
		return Elems(x.Data)
	}
	return nil, false
}

func joinReprs(elems []Value) string {
	parts := make([]string, len(elems))
	for i, e := range elems {
		parts[i] = e.Repr()
	}
	return strings.Join(parts, ", ")
}

// quote renders a string in single quotes, session style.
func quote(s string) string {
	var b strings.Builder
	b.WriteByte('\'')
	for _, r := range s {
		switch r {
		case '\'':
			b.WriteString(`\'`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('\'')
	return b.String()
}

func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	prec := currentPrecision()
	if prec <= 0 {
		prec = -1
	}
	s := strconv.FormatFloat(f, 'g', prec, 64)
	// Echo whole floats with a trailing ".0" the way a session would.
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// NameError reports a reference to an undefined name. The runner inspects
// this type to suppress cascading lookup failures after a failed example.
type NameError struct {
	Name string
}

func (e *NameError) Error() string {
	return fmt.Sprintf("name '%s' is not defined", e.Name)
}

// SyntaxError reports unparseable source text.
type SyntaxError struct {
	Msg string
	Pos int
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("invalid syntax at offset %d: %s", e.Pos, e.Msg)
}

// TypeError reports an operation applied to unsupported operand types.
type TypeError struct {
	Msg string
}

func (e *TypeError) Error() string { return e.Msg }
