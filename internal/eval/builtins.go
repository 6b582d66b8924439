package eval

import (
	"math"
)

// Numeric element types recognized in reprs and cast constructors.
var numericDTypes = []string{
	"int8", "int16", "int32", "int64",
	"uint8", "uint16", "uint32", "uint64",
	"float32", "float64",
}

func isDefaultDType(name string) bool {
	return name == "" || name == "int64" || name == "float64"
}

// CheckNamespace returns the curated namespace the output checker
// reconstructs values in. It is deliberately smaller than the execution
// namespace: constructors and sentinels only, no helpers.
func CheckNamespace() Namespace {
	ns := Namespace{
		"array":        arrayBuiltin("array"),
		"matrix":       arrayBuiltin("matrix"),
		"masked_array": maskedArrayBuiltin(),
		"dtype":        dtypeBuiltin(),
		"nan":          Float(math.NaN()),
		"NaN":          Float(math.NaN()),
		"inf":          Float(math.Inf(1)),
		"Inf":          Float(math.Inf(1)),
		"nanj":         Complex(complex(math.NaN(), math.NaN())),
		"infj":         Complex(complex(0, math.Inf(1))),
		"True":         Bool(true),
		"False":        Bool(false),
		"None":         None,
	}
	for _, name := range numericDTypes {
		ns[name] = castBuiltin(name)
	}
	return ns
}

// ExecNamespace returns the default namespace example source runs in:
// everything the checker knows, plus a few numeric helpers that make
// documentation examples self-contained.
func ExecNamespace() Namespace {
	ns := CheckNamespace()
	ns["abs"] = scalarBuiltin("abs", math.Abs)
	ns["sqrt"] = scalarBuiltin("sqrt", math.Sqrt)
	ns["round"] = roundBuiltin()
	ns["len"] = lenBuiltin()
	ns["sum"] = reduceBuiltin("sum", func(acc, x float64) float64 { return acc + x }, 0, false)
	ns["min"] = reduceBuiltin("min", math.Min, math.Inf(1), false)
	ns["max"] = reduceBuiltin("max", math.Max, math.Inf(-1), false)
	ns["mean"] = reduceBuiltin("mean", func(acc, x float64) float64 { return acc + x }, 0, true)
	ns["arange"] = arangeBuiltin()
	ns["linspace"] = linspaceBuiltin()
	return ns
}

func arrayBuiltin(name string) *Builtin {
	return &Builtin{
		Name: name,
		Call: func(args []Value, kwargs []Kwarg) (Value, error) {
			if len(args) != 1 {
				return nil, &TypeError{Msg: name + "() takes exactly one positional argument"}
			}
			a := &Array{Data: args[0]}
			for _, kw := range kwargs {
				switch kw.Name {
				case "dtype":
					dt, err := dtypeName(kw.Value)
					if err != nil {
						return nil, err
					}
					a.DType = dt
				case "shape":
					// Shape annotations from abbreviated reprs are accepted
					// and ignored; the checker compares them separately.
				default:
					return nil, &TypeError{Msg: name + "() got an unexpected keyword argument '" + kw.Name + "'"}
				}
			}
			if a.DType == "" {
				a.DType = inferDType(a.Data)
			}
			return a, nil
		},
	}
}

func maskedArrayBuiltin() *Builtin {
	return &Builtin{
		Name: "masked_array",
		Call: func(args []Value, kwargs []Kwarg) (Value, error) {
			a := &Array{}
			if len(args) > 0 {
				a.Data = args[0]
			}
			if len(args) > 1 {
				a.Mask = args[1]
			}
			if len(args) > 2 {
				a.Fill = args[2]
			}
			for _, kw := range kwargs {
				switch kw.Name {
				case "data":
					a.Data = kw.Value
				case "mask":
					a.Mask = kw.Value
				case "fill_value":
					a.Fill = kw.Value
				case "dtype":
					dt, err := dtypeName(kw.Value)
					if err != nil {
						return nil, err
					}
					a.DType = dt
				default:
					return nil, &TypeError{Msg: "masked_array() got an unexpected keyword argument '" + kw.Name + "'"}
				}
			}
			if a.Data == nil {
				return nil, &TypeError{Msg: "masked_array() missing data"}
			}
			if a.Mask == nil {
				a.Mask = Bool(false)
			}
			if a.DType == "" {
				a.DType = inferDType(a.Data)
			}
			return a, nil
		},
	}
}

func dtypeBuiltin() *Builtin {
	return &Builtin{
		Name: "dtype",
		Call: func(args []Value, kwargs []Kwarg) (Value, error) {
			if len(args) != 1 || len(kwargs) != 0 {
				return nil, &TypeError{Msg: "dtype() takes exactly one argument"}
			}
			name, err := dtypeName(args[0])
			if err != nil {
				return nil, err
			}
			return &DType{Name: name}, nil
		},
	}
}

func dtypeName(v Value) (string, error) {
	switch x := v.(type) {
	case Str:
		return string(x), nil
	case *DType:
		return x.Name, nil
	case *Builtin:
		// dtype=float64 where float64 is the cast constructor
		return x.Name, nil
	}
	return "", &TypeError{Msg: "cannot interpret " + v.Repr() + " as a dtype"}
}

// castBuiltin returns the constructor for a fixed-width numeric type,
// e.g. float32(1.5) or int64([1, 2, 3]).
func castBuiltin(name string) *Builtin {
	return &Builtin{
		Name: name,
		Call: func(args []Value, kwargs []Kwarg) (Value, error) {
			if len(args) != 1 || len(kwargs) != 0 {
				return nil, &TypeError{Msg: name + "() takes exactly one argument"}
			}
			return castTo(name, args[0])
		},
	}
}

func castTo(name string, v Value) (Value, error) {
	if elems, ok := Elems(v); ok {
		out := make([]Value, len(elems))
		for i, e := range elems {
			c, err := castTo(name, e)
			if err != nil {
				return nil, err
			}
			out[i] = c
		}
		return &Array{Data: &List{Elems: out}, DType: name}, nil
	}
	f, ok := AsFloat(v)
	if !ok {
		return nil, &TypeError{Msg: "cannot cast " + v.Repr() + " to " + name}
	}
	switch name {
	case "float32":
		return TypedScalar(Float(float64(float32(f))), name), nil
	case "float64":
		return TypedScalar(Float(f), name), nil
	default:
		return TypedScalar(Int(int64(f)), name), nil
	}
}

// TypedScalar wraps a scalar so it carries an explicit dtype. A zero-dim
// array is the natural carrier: it reprs like a scalar constructor call
// and compares like a scalar.
func TypedScalar(v Value, dtype string) Value {
	return &Array{Data: v, DType: dtype}
}

// DTypeOf reports the dtype a value would carry as an array element.
// Explicitly typed arrays keep their declared dtype; everything else
// is inferred by promotion.
func DTypeOf(v Value) string {
	return inferDType(v)
}

// inferDType promotes element types the way numeric arrays do:
// bool < int64 < float64 < complex128; any string makes the array
// non-numeric ("str").
func inferDType(v Value) string {
	switch x := v.(type) {
	case Bool:
		return "bool"
	case Int:
		return "int64"
	case Float:
		return "float64"
	case Complex:
		return "complex128"
	case Str:
		return "str"
	case *DType:
		return "object"
	case *Array:
		if x.DType != "" {
			return x.DType
		}
		return inferDType(x.Data)
	case *List:
		return promoteAll(x.Elems)
	case *Tuple:
		return promoteAll(x.Elems)
	}
	return "object"
}

func promoteAll(elems []Value) string {
	if len(elems) == 0 {
		return "float64"
	}
	result := ""
	for _, e := range elems {
		result = promote(result, inferDType(e))
	}
	return result
}

var dtypeRank = map[string]int{
	"bool": 1, "int64": 2, "float64": 3, "complex128": 4,
}

func promote(a, b string) string {
	if a == "" {
		return b
	}
	ra, aok := dtypeRank[canonicalDType(a)]
	rb, bok := dtypeRank[canonicalDType(b)]
	if !aok || !bok {
		if a == b {
			return a
		}
		return "object"
	}
	if ra >= rb {
		return canonicalDType(a)
	}
	return canonicalDType(b)
}

// canonicalDType widens fixed-width names to their comparison class.
func canonicalDType(name string) string {
	switch name {
	case "int8", "int16", "int32", "int64", "uint8", "uint16", "uint32", "uint64":
		return "int64"
	case "float32", "float64":
		return "float64"
	}
	return name
}

func scalarBuiltin(name string, fn func(float64) float64) *Builtin {
	return &Builtin{
		Name: name,
		Call: func(args []Value, kwargs []Kwarg) (Value, error) {
			if len(args) != 1 || len(kwargs) != 0 {
				return nil, &TypeError{Msg: name + "() takes exactly one argument"}
			}
			f, ok := AsFloat(args[0])
			if !ok {
				return nil, &TypeError{Msg: name + "() requires a number"}
			}
			return Float(fn(f)), nil
		},
	}
}

func roundBuiltin() *Builtin {
	return &Builtin{
		Name: "round",
		Call: func(args []Value, kwargs []Kwarg) (Value, error) {
			if len(args) < 1 || len(args) > 2 || len(kwargs) != 0 {
				return nil, &TypeError{Msg: "round() takes one or two arguments"}
			}
			f, ok := AsFloat(args[0])
			if !ok {
				return nil, &TypeError{Msg: "round() requires a number"}
			}
			if len(args) == 1 {
				return Int(int64(math.RoundToEven(f))), nil
			}
			nd, ok := asInt(args[1])
			if !ok {
				return nil, &TypeError{Msg: "round() digits must be an integer"}
			}
			scale := math.Pow(10, float64(nd))
			return Float(math.RoundToEven(f*scale) / scale), nil
		},
	}
}

func lenBuiltin() *Builtin {
	return &Builtin{
		Name: "len",
		Call: func(args []Value, kwargs []Kwarg) (Value, error) {
			if len(args) != 1 || len(kwargs) != 0 {
				return nil, &TypeError{Msg: "len() takes exactly one argument"}
			}
			if s, ok := args[0].(Str); ok {
				return Int(len(s)), nil
			}
			elems, ok := Elems(args[0])
			if !ok {
				return nil, &TypeError{Msg: "object of type " + args[0].Repr() + " has no len()"}
			}
			return Int(len(elems)), nil
		},
	}
}

func reduceBuiltin(name string, fn func(acc, x float64) float64, init float64, average bool) *Builtin {
	return &Builtin{
		Name: name,
		Call: func(args []Value, kwargs []Kwarg) (Value, error) {
			if len(args) != 1 || len(kwargs) != 0 {
				return nil, &TypeError{Msg: name + "() takes exactly one argument"}
			}
			elems, ok := Elems(args[0])
			if !ok {
				return nil, &TypeError{Msg: name + "() requires a sequence"}
			}
			if len(elems) == 0 {
				return nil, &TypeError{Msg: name + "() of an empty sequence"}
			}
			acc := init
			for _, e := range elems {
				f, ok := AsFloat(e)
				if !ok {
					return nil, &TypeError{Msg: name + "() requires numeric elements"}
				}
				acc = fn(acc, f)
			}
			if average {
				return Float(acc / float64(len(elems))), nil
			}
			return Float(acc), nil
		},
	}
}

func arangeBuiltin() *Builtin {
	return &Builtin{
		Name: "arange",
		Call: func(args []Value, kwargs []Kwarg) (Value, error) {
			if len(args) < 1 || len(args) > 3 || len(kwargs) != 0 {
				return nil, &TypeError{Msg: "arange() takes one to three arguments"}
			}
			start, stop, step := 0.0, 0.0, 1.0
			allInt := true
			get := func(v Value) (float64, error) {
				if v.Kind() != KindInt && v.Kind() != KindBool {
					allInt = false
				}
				f, ok := AsFloat(v)
				if !ok {
					return 0, &TypeError{Msg: "arange() requires numbers"}
				}
				return f, nil
			}
			var err error
			switch len(args) {
			case 1:
				stop, err = get(args[0])
			case 2:
				if start, err = get(args[0]); err == nil {
					stop, err = get(args[1])
				}
			case 3:
				if start, err = get(args[0]); err == nil {
					if stop, err = get(args[1]); err == nil {
						step, err = get(args[2])
					}
				}
			}
			if err != nil {
				return nil, err
			}
			if step == 0 {
				return nil, &TypeError{Msg: "arange() step must not be zero"}
			}
			var elems []Value
			for x := start; (step > 0 && x < stop) || (step < 0 && x > stop); x += step {
				if allInt {
					elems = append(elems, Int(int64(x)))
				} else {
					elems = append(elems, Float(x))
				}
			}
			dt := "float64"
			if allInt {
				dt = "int64"
			}
			return &Array{Data: &List{Elems: elems}, DType: dt}, nil
		},
	}
}

func linspaceBuiltin() *Builtin {
	return &Builtin{
		Name: "linspace",
		Call: func(args []Value, kwargs []Kwarg) (Value, error) {
			if len(args) != 3 || len(kwargs) != 0 {
				return nil, &TypeError{Msg: "linspace() takes exactly three arguments"}
			}
			start, ok1 := AsFloat(args[0])
			stop, ok2 := AsFloat(args[1])
			num, ok3 := asInt(args[2])
			if !ok1 || !ok2 || !ok3 || num < 1 {
				return nil, &TypeError{Msg: "linspace() requires (start, stop, num>=1)"}
			}
			elems := make([]Value, num)
			if num == 1 {
				elems[0] = Float(start)
			} else {
				step := (stop - start) / float64(num-1)
				for i := int64(0); i < num; i++ {
					elems[i] = Float(start + float64(i)*step)
				}
			}
			return &Array{Data: &List{Elems: elems}, DType: "float64"}, nil
		},
	}
}

// PrintBuiltin returns a print() implementation writing through sink.
// The executor installs one per run so that captured output lands in the
// example's transcript buffer.
func PrintBuiltin(sink func(string)) *Builtin {
	return &Builtin{
		Name: "print",
		Call: func(args []Value, kwargs []Kwarg) (Value, error) {
			if len(kwargs) != 0 {
				return nil, &TypeError{Msg: "print() keyword arguments are not supported"}
			}
			line := ""
			for i, a := range args {
				if i > 0 {
					line += " "
				}
				line += a.Str()
			}
			sink(line + "\n")
			return None, nil
		},
	}
}

// RandBuiltin returns a rand() source over a deterministic generator.
// Examples that use it are expected to carry a random-output marker.
func RandBuiltin(next func() float64) *Builtin {
	return &Builtin{
		Name: "rand",
		Call: func(args []Value, kwargs []Kwarg) (Value, error) {
			if len(args) != 0 || len(kwargs) != 0 {
				return nil, &TypeError{Msg: "rand() takes no arguments"}
			}
			return Float(next()), nil
		},
	}
}
