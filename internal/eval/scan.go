package eval

import (
	"strings"
	"unicode"
)

type tokKind int

const (
	tokEOF tokKind = iota
	tokName
	tokInt
	tokFloat
	tokImag
	tokString
	tokLParen
	tokRParen
	tokLBracket
	tokRBracket
	tokComma
	tokAssign
	tokPlus
	tokMinus
	tokStar
	tokSlash
)

type token struct {
	kind tokKind
	text string
	pos  int
}

type scanner struct {
	src string
	pos int
}

func newScanner(src string) *scanner {
	return &scanner{src: src}
}

func (s *scanner) errorf(pos int, msg string) error {
	return &SyntaxError{Msg: msg, Pos: pos}
}

// next returns the next token, skipping whitespace and # comments.
func (s *scanner) next() (token, error) {
	for s.pos < len(s.src) {
		c := s.src[s.pos]
		if c == ' ' || c == '\t' || c == '\n' || c == '\r' {
			s.pos++
			continue
		}
		if c == '#' {
			for s.pos < len(s.src) && s.src[s.pos] != '\n' {
				s.pos++
			}
			continue
		}
		break
	}
	if s.pos >= len(s.src) {
		return token{kind: tokEOF, pos: s.pos}, nil
	}

	start := s.pos
	c := s.src[s.pos]
	switch {
	case c == '(':
		s.pos++
		return token{tokLParen, "(", start}, nil
	case c == ')':
		s.pos++
		return token{tokRParen, ")", start}, nil
	case c == '[':
		s.pos++
		return token{tokLBracket, "[", start}, nil
	case c == ']':
		s.pos++
		return token{tokRBracket, "]", start}, nil
	case c == ',':
		s.pos++
		return token{tokComma, ",", start}, nil
	case c == '=':
		s.pos++
		return token{tokAssign, "=", start}, nil
	case c == '+':
		s.pos++
		return token{tokPlus, "+", start}, nil
	case c == '-':
		s.pos++
		return token{tokMinus, "-", start}, nil
	case c == '*':
		s.pos++
		return token{tokStar, "*", start}, nil
	case c == '/':
		s.pos++
		return token{tokSlash, "/", start}, nil
	case c == '\'' || c == '"':
		return s.scanString()
	case c >= '0' && c <= '9', c == '.':
		return s.scanNumber()
	case c == '_' || unicode.IsLetter(rune(c)):
		return s.scanName()
	}
	return token{}, s.errorf(start, "unexpected character "+string(c))
}

func (s *scanner) scanString() (token, error) {
	start := s.pos
	delim := s.src[s.pos]
	s.pos++
	var b strings.Builder
	for s.pos < len(s.src) {
		c := s.src[s.pos]
		if c == '\\' && s.pos+1 < len(s.src) {
			s.pos++
			switch s.src[s.pos] {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			default:
				b.WriteByte(s.src[s.pos])
			}
			s.pos++
			continue
		}
		if c == delim {
			s.pos++
			return token{tokString, b.String(), start}, nil
		}
		b.WriteByte(c)
		s.pos++
	}
	return token{}, s.errorf(start, "unterminated string")
}

// scanNumber accepts integer, float (including "1.", ".5", "1e-3") and
// imaginary ("2j") literals.
func (s *scanner) scanNumber() (token, error) {
	start := s.pos
	isFloat := false

	digits := func() int {
		n := 0
		for s.pos < len(s.src) && s.src[s.pos] >= '0' && s.src[s.pos] <= '9' {
			s.pos++
			n++
		}
		return n
	}

	intDigits := digits()
	fracDigits := 0
	if s.pos < len(s.src) && s.src[s.pos] == '.' {
		isFloat = true
		s.pos++
		fracDigits = digits()
	}
	if intDigits == 0 && fracDigits == 0 {
		return token{}, s.errorf(start, "unexpected character .")
	}
	if s.pos < len(s.src) && (s.src[s.pos] == 'e' || s.src[s.pos] == 'E') {
		save := s.pos
		s.pos++
		if s.pos < len(s.src) && (s.src[s.pos] == '+' || s.src[s.pos] == '-') {
			s.pos++
		}
		if digits() == 0 {
			// not an exponent after all
			s.pos = save
		} else {
			isFloat = true
		}
	}
	text := s.src[start:s.pos]
	if s.pos < len(s.src) && (s.src[s.pos] == 'j' || s.src[s.pos] == 'J') {
		s.pos++
		return token{tokImag, text, start}, nil
	}
	if isFloat {
		return token{tokFloat, text, start}, nil
	}
	return token{tokInt, text, start}, nil
}

func (s *scanner) scanName() (token, error) {
	start := s.pos
	for s.pos < len(s.src) {
		c := rune(s.src[s.pos])
		if c == '_' || unicode.IsLetter(c) || unicode.IsDigit(c) {
			s.pos++
			continue
		}
		break
	}
	return token{tokName, s.src[start:s.pos], start}, nil
}
