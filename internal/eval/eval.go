package eval

import (
	"fmt"
)

// EvalExpr evaluates expression text in the given namespace. This is the
// entry point used by the output checker to reconstruct values from
// printed reprs.
func EvalExpr(src string, ns Namespace) (Value, error) {
	n, err := parseExpression(src)
	if err != nil {
		return nil, err
	}
	return evalNode(n, ns)
}

// Eval evaluates a parsed statement in the namespace. Assignments bind
// into ns and return None; bare expressions return their value.
func (st *Statement) Eval(ns Namespace) (Value, error) {
	v, err := evalNode(st.expr, ns)
	if err != nil {
		return nil, err
	}
	if st.Assign != "" {
		ns[st.Assign] = v
		return None, nil
	}
	return v, nil
}

func evalNode(n node, ns Namespace) (Value, error) {
	switch x := n.(type) {
	case *litNode:
		return x.v, nil

	case *nameNode:
		v, ok := ns[x.name]
		if !ok {
			return nil, &NameError{Name: x.name}
		}
		return v, nil

	case *listNode:
		elems, err := evalNodes(x.elems, ns)
		if err != nil {
			return nil, err
		}
		return &List{Elems: elems}, nil

	case *tupleNode:
		elems, err := evalNodes(x.elems, ns)
		if err != nil {
			return nil, err
		}
		return &Tuple{Elems: elems}, nil

	case *unaryNode:
		v, err := evalNode(x.x, ns)
		if err != nil {
			return nil, err
		}
		return negate(v)

	case *binaryNode:
		l, err := evalNode(x.l, ns)
		if err != nil {
			return nil, err
		}
		r, err := evalNode(x.r, ns)
		if err != nil {
			return nil, err
		}
		return binaryOp(x.op, l, r)

	case *callNode:
		fn, err := evalNode(x.fn, ns)
		if err != nil {
			return nil, err
		}
		b, ok := fn.(*Builtin)
		if !ok {
			return nil, &TypeError{Msg: fmt.Sprintf("%s is not callable", fn.Repr())}
		}
		args, err := evalNodes(x.args, ns)
		if err != nil {
			return nil, err
		}
		var kwargs []Kwarg
		for _, kw := range x.kwargs {
			v, err := evalNode(kw.x, ns)
			if err != nil {
				return nil, err
			}
			kwargs = append(kwargs, Kwarg{Name: kw.name, Value: v})
		}
		return b.Call(args, kwargs)
	}
	return nil, &TypeError{Msg: "unsupported expression"}
}

func evalNodes(nodes []node, ns Namespace) ([]Value, error) {
	out := make([]Value, 0, len(nodes))
	for _, n := range nodes {
		v, err := evalNode(n, ns)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func negate(v Value) (Value, error) {
	switch x := v.(type) {
	case Int:
		return Int(-x), nil
	case Float:
		return Float(-x), nil
	case Complex:
		return Complex(-complex128(x)), nil
	case Bool:
		if x {
			return Int(-1), nil
		}
		return Int(0), nil
	}
	return nil, &TypeError{Msg: "bad operand type for unary -: " + v.Repr()}
}

func binaryOp(op rune, l, r Value) (Value, error) {
	// String and list concatenation.
	if op == '+' {
		if ls, ok := l.(Str); ok {
			if rs, ok := r.(Str); ok {
				return Str(string(ls) + string(rs)), nil
			}
		}
		if ll, ok := l.(*List); ok {
			if rl, ok := r.(*List); ok {
				elems := make([]Value, 0, len(ll.Elems)+len(rl.Elems))
				elems = append(elems, ll.Elems...)
				elems = append(elems, rl.Elems...)
				return &List{Elems: elems}, nil
			}
		}
	}

	// Complex arithmetic.
	lc, lok := asComplex(l)
	rc, rok := asComplex(r)
	if lok && rok && (l.Kind() == KindComplex || r.Kind() == KindComplex) {
		switch op {
		case '+':
			return Complex(lc + rc), nil
		case '-':
			return Complex(lc - rc), nil
		case '*':
			return Complex(lc * rc), nil
		case '/':
			return Complex(lc / rc), nil
		}
	}

	// Integer arithmetic stays integral, except for true division.
	if li, ok := asInt(l); ok {
		if ri, ok := asInt(r); ok {
			switch op {
			case '+':
				return Int(li + ri), nil
			case '-':
				return Int(li - ri), nil
			case '*':
				return Int(li * ri), nil
			case '/':
				if ri == 0 {
					return nil, &TypeError{Msg: "division by zero"}
				}
				return Float(float64(li) / float64(ri)), nil
			}
		}
	}

	lf, lok := AsFloat(l)
	rf, rok := AsFloat(r)
	if !lok || !rok {
		return nil, &TypeError{
			Msg: fmt.Sprintf("unsupported operand types for %c: %s and %s", op, l.Repr(), r.Repr()),
		}
	}
	switch op {
	case '+':
		return Float(lf + rf), nil
	case '-':
		return Float(lf - rf), nil
	case '*':
		return Float(lf * rf), nil
	case '/':
		if rf == 0 {
			return nil, &TypeError{Msg: "division by zero"}
		}
		return Float(lf / rf), nil
	}
	return nil, &TypeError{Msg: "unsupported operator"}
}

func asInt(v Value) (int64, bool) {
	switch x := v.(type) {
	case Int:
		return int64(x), true
	case Bool:
		if x {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}

// AsFloat converts a numeric scalar to float64.
func AsFloat(v Value) (float64, bool) {
	switch x := v.(type) {
	case Int:
		return float64(x), true
	case Float:
		return float64(x), true
	case Bool:
		if x {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}

func asComplex(v Value) (complex128, bool) {
	if c, ok := v.(Complex); ok {
		return complex128(c), true
	}
	if f, ok := AsFloat(v); ok {
		return complex(f, 0), true
	}
	return 0, false
}
