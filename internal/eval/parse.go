package eval

import "strconv"

// AST nodes. The grammar is small enough that a hand-rolled recursive
// descent parser stays readable:
//
//	stmt     := NAME '=' exprList | exprList
//	exprList := expr (',' expr)* [',']      (two or more → tuple)
//	expr     := term (('+'|'-') term)*
//	term     := unary (('*'|'/') unary)*
//	unary    := ('-'|'+') unary | primary
//	primary  := atom ( '(' args ')' )*
//	atom     := NUMBER | STRING | NAME | '(' exprList? ')' | '[' exprList? ']'
type node interface{}

type litNode struct{ v Value }
type nameNode struct{ name string }
type listNode struct{ elems []node }
type tupleNode struct{ elems []node }
type unaryNode struct {
	op rune
	x  node
}
type binaryNode struct {
	op   rune
	l, r node
}
type kwNode struct {
	name string
	x    node
}
type callNode struct {
	fn     node
	args   []node
	kwargs []kwNode
}

type parser struct {
	sc  *scanner
	tok token
}

func newParser(src string) (*parser, error) {
	p := &parser{sc: newScanner(src)}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *parser) advance() error {
	tok, err := p.sc.next()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

func (p *parser) expect(kind tokKind, what string) error {
	if p.tok.kind != kind {
		return &SyntaxError{Msg: "expected " + what, Pos: p.tok.pos}
	}
	return p.advance()
}

// Statement is one parsed line of example source: either an assignment
// or a bare expression.
type Statement struct {
	// Assign is the target variable name for assignments, "" otherwise.
	Assign string
	expr   node
}

// Parse parses a single statement.
func Parse(src string) (*Statement, error) {
	p, err := newParser(src)
	if err != nil {
		return nil, err
	}
	st := &Statement{}

	// Lookahead for "NAME = expr". A '=' can only follow a bare name at
	// statement level; inside expressions it only appears in call kwargs.
	if p.tok.kind == tokName {
		name := p.tok.text
		save := *p.sc
		savedTok := p.tok
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.tok.kind == tokAssign {
			if err := p.advance(); err != nil {
				return nil, err
			}
			st.Assign = name
		} else {
			*p.sc = save
			p.tok = savedTok
		}
	}

	expr, err := p.parseExprList()
	if err != nil {
		return nil, err
	}
	if p.tok.kind != tokEOF {
		return nil, &SyntaxError{Msg: "unexpected trailing input", Pos: p.tok.pos}
	}
	st.expr = expr
	return st, nil
}

// parseExpression parses a full expression (with top-level commas forming
// a tuple) and requires the input to be fully consumed.
func parseExpression(src string) (node, error) {
	p, err := newParser(src)
	if err != nil {
		return nil, err
	}
	n, err := p.parseExprList()
	if err != nil {
		return nil, err
	}
	if p.tok.kind != tokEOF {
		return nil, &SyntaxError{Msg: "unexpected trailing input", Pos: p.tok.pos}
	}
	return n, nil
}

// parseExprList parses "expr, expr, ..." where a bare comma-joined list
// forms a tuple, session style.
func (p *parser) parseExprList() (node, error) {
	first, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.tok.kind != tokComma {
		return first, nil
	}
	elems := []node{first}
	for p.tok.kind == tokComma {
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.endsSequence() {
			break
		}
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		elems = append(elems, e)
	}
	return &tupleNode{elems: elems}, nil
}

func (p *parser) endsSequence() bool {
	switch p.tok.kind {
	case tokEOF, tokRParen, tokRBracket:
		return true
	}
	return false
}

func (p *parser) parseExpr() (node, error) {
	l, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for p.tok.kind == tokPlus || p.tok.kind == tokMinus {
		op := '+'
		if p.tok.kind == tokMinus {
			op = '-'
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		r, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		l = &binaryNode{op: op, l: l, r: r}
	}
	return l, nil
}

func (p *parser) parseTerm() (node, error) {
	l, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.tok.kind == tokStar || p.tok.kind == tokSlash {
		op := '*'
		if p.tok.kind == tokSlash {
			op = '/'
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		r, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		l = &binaryNode{op: op, l: l, r: r}
	}
	return l, nil
}

func (p *parser) parseUnary() (node, error) {
	switch p.tok.kind {
	case tokMinus:
		if err := p.advance(); err != nil {
			return nil, err
		}
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &unaryNode{op: '-', x: x}, nil
	case tokPlus:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return p.parseUnary()
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (node, error) {
	atom, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	for p.tok.kind == tokLParen {
		call, err := p.parseCall(atom)
		if err != nil {
			return nil, err
		}
		atom = call
	}
	return atom, nil
}

func (p *parser) parseCall(fn node) (node, error) {
	if err := p.advance(); err != nil { // consume '('
		return nil, err
	}
	call := &callNode{fn: fn}
	for p.tok.kind != tokRParen {
		if p.tok.kind == tokEOF {
			return nil, &SyntaxError{Msg: "unterminated call", Pos: p.tok.pos}
		}
		// kwarg lookahead: NAME '='
		if p.tok.kind == tokName {
			name := p.tok.text
			save := *p.sc
			savedTok := p.tok
			if err := p.advance(); err != nil {
				return nil, err
			}
			if p.tok.kind == tokAssign {
				if err := p.advance(); err != nil {
					return nil, err
				}
				x, err := p.parseExpr()
				if err != nil {
					return nil, err
				}
				call.kwargs = append(call.kwargs, kwNode{name: name, x: x})
				if p.tok.kind == tokComma {
					if err := p.advance(); err != nil {
						return nil, err
					}
				}
				continue
			}
			*p.sc = save
			p.tok = savedTok
		}
		if len(call.kwargs) > 0 {
			return nil, &SyntaxError{Msg: "positional argument after keyword argument", Pos: p.tok.pos}
		}
		x, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		call.args = append(call.args, x)
		if p.tok.kind == tokComma {
			if err := p.advance(); err != nil {
				return nil, err
			}
		}
	}
	if err := p.advance(); err != nil { // consume ')'
		return nil, err
	}
	return call, nil
}

func (p *parser) parseAtom() (node, error) {
	switch p.tok.kind {
	case tokInt:
		i, err := strconv.ParseInt(p.tok.text, 10, 64)
		if err != nil {
			// Out-of-range integer literals degrade to floats.
			f, ferr := strconv.ParseFloat(p.tok.text, 64)
			if ferr != nil {
				return nil, &SyntaxError{Msg: "bad number literal", Pos: p.tok.pos}
			}
			if err := p.advance(); err != nil {
				return nil, err
			}
			return &litNode{v: Float(f)}, nil
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &litNode{v: Int(i)}, nil

	case tokFloat:
		f, err := strconv.ParseFloat(p.tok.text, 64)
		if err != nil {
			return nil, &SyntaxError{Msg: "bad number literal", Pos: p.tok.pos}
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &litNode{v: Float(f)}, nil

	case tokImag:
		f, err := strconv.ParseFloat(p.tok.text, 64)
		if err != nil {
			return nil, &SyntaxError{Msg: "bad number literal", Pos: p.tok.pos}
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &litNode{v: Complex(complex(0, f))}, nil

	case tokString:
		s := p.tok.text
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &litNode{v: Str(s)}, nil

	case tokName:
		name := p.tok.text
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &nameNode{name: name}, nil

	case tokLParen:
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.tok.kind == tokRParen {
			if err := p.advance(); err != nil {
				return nil, err
			}
			return &tupleNode{}, nil
		}
		inner, err := p.parseExprList()
		if err != nil {
			return nil, err
		}
		if err := p.expect(tokRParen, ")"); err != nil {
			return nil, err
		}
		return inner, nil

	case tokLBracket:
		if err := p.advance(); err != nil {
			return nil, err
		}
		l := &listNode{}
		for p.tok.kind != tokRBracket {
			if p.tok.kind == tokEOF {
				return nil, &SyntaxError{Msg: "unterminated list", Pos: p.tok.pos}
			}
			e, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			l.elems = append(l.elems, e)
			if p.tok.kind == tokComma {
				if err := p.advance(); err != nil {
					return nil, err
				}
			} else if p.tok.kind != tokRBracket {
				return nil, &SyntaxError{Msg: "expected , or ]", Pos: p.tok.pos}
			}
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		return l, nil
	}
	return nil, &SyntaxError{Msg: "unexpected token", Pos: p.tok.pos}
}
