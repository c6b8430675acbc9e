package expression

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/width"
	"golang.org/x/xerrors"
)

// Parse builds an expression over T from text.
//
// The grammar is a single left-to-right pass without operator precedence:
//
//   - "+" takes everything up to the end of the enclosing group as its right
//     operand, so "a * b + c * d" is (a * b) + (c * d) and "a + b * c" is
//     a + (b * c);
//   - "-", "*", "/" and "^" take only the next space-delimited token, so
//     "a - b + c" is (a - b) + c while "a-b+c" is a - (b + c);
//   - an operand directly followed by another operand is replaced by it.
//
// In the complex domain "i" is the imaginary unit and "a + bi" is a single
// literal. Fullwidth ASCII (U+FF01 to U+FF5E) and no-break spaces read as
// their ASCII forms; any other non-ASCII character is a ParseError.
// Error positions are byte offsets into text.
func Parse[T Number](text string) (*Expression[T], error) {
	src, offsets := narrow(text)
	p := &parser[T]{
		src:     src,
		offsets: offsets,
		dom:     DomainOf[T](),
		vars:    map[string]struct{}{},
	}
	root, err := p.parse(len(p.src))
	if err != nil {
		return nil, err
	}
	if root == nil {
		return nil, p.errorf(p.pos, "empty expression")
	}
	if rest := strings.Trim(p.src[min(p.pos, len(p.src)):], ") "); rest != "" {
		return nil, p.errorf(p.pos, "unexpected %q after closing parenthesis", rest)
	}
	return &Expression[T]{root: root, vars: p.vars}, nil
}

// ParseReal parses text over float64.
func ParseReal(text string) (*Expression[float64], error) { return Parse[float64](text) }

// ParseComplex parses text over complex128.
func ParseComplex(text string) (*Expression[complex128], error) { return Parse[complex128](text) }

// MustParse is like Parse but panics on error.
func MustParse[T Number](text string) *Expression[T] {
	e, err := Parse[T](text)
	if err != nil {
		panic("expression: Parse(" + strconv.Quote(text) + "): " + err.Error())
	}
	return e
}

type parser[T Number] struct {
	src     string
	offsets []int // offsets[i] is the byte in the input that src[i] came from
	pos     int
	dom     Domain[T]
	vars    map[string]struct{}
}

// narrow folds fullwidth ASCII and no-break spaces to ASCII and maps every
// byte of the result back to its offset in text.
func narrow(text string) (string, []int) {
	var sb strings.Builder
	offsets := make([]int, 0, len(text)+1)
	for i, r := range text {
		switch {
		case r == '\u00a0' || r == '\u3000':
			r = ' '
		case r >= '\uff01' && r <= '\uff5e':
			if n := width.LookupRune(r).Narrow(); n != 0 {
				r = n
			}
		}
		n := sb.Len()
		sb.WriteRune(r)
		for ; n < sb.Len(); n++ {
			offsets = append(offsets, i)
		}
	}
	return sb.String(), append(offsets, len(text))
}

func (p *parser[T]) errorf(pos int, format string, args ...interface{}) *ParseError {
	return &ParseError{
		Position: p.offsets[min(pos, len(p.src))],
		Message:  fmt.Sprintf(format, args...),
		frame:    xerrors.Caller(1),
	}
}

func isDigit(c byte) bool  { return c >= '0' && c <= '9' }
func isLetter(c byte) bool { return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '_' }

// parse reads operands and operators until end or an unmatched ')'.
// It never consumes the ')'.
func (p *parser[T]) parse(end int) (Node[T], error) {
	var cur Node[T]
	for p.pos < end && p.src[p.pos] != ')' {
		c := p.src[p.pos]
		switch {
		case c == ' ':
			p.skipSpaces(end)
		case c == '(':
			open := p.pos
			p.pos++
			sub, err := p.parse(end)
			if err != nil {
				return nil, err
			}
			if sub == nil {
				return nil, p.errorf(open, "empty parentheses")
			}
			cur = sub
			p.pos++
		case isDigit(c):
			v, err := p.number(end)
			if err != nil {
				return nil, err
			}
			cur = v
		case isLetter(c):
			n, err := p.word(end)
			if err != nil {
				return nil, err
			}
			cur = n
		case c == '+':
			op := p.pos
			p.pos++
			p.skipSpaces(end)
			right, err := p.parse(end)
			if err != nil {
				return nil, err
			}
			if cur, err = p.binary(OpAdd, op, cur, right); err != nil {
				return nil, err
			}
		case c == '-' || c == '*' || c == '/' || c == '^':
			op := p.pos
			p.pos++
			p.skipSpaces(end)
			right, err := p.parse(p.operandEnd(p.pos, end))
			if err != nil {
				return nil, err
			}
			if cur, err = p.binary(opForByte(c), op, cur, right); err != nil {
				return nil, err
			}
		default:
			r, _ := utf8.DecodeRuneInString(p.src[p.pos:])
			return nil, p.errorf(p.pos, "unexpected character %q", r)
		}
	}
	return cur, nil
}

func opForByte(c byte) OpKind {
	switch c {
	case '-':
		return OpSub
	case '*':
		return OpMul
	case '/':
		return OpDiv
	}
	return OpPow
}

func (p *parser[T]) binary(kind OpKind, at int, left, right Node[T]) (Node[T], error) {
	if left == nil {
		return nil, p.errorf(at, "operator %q has no left operand", strings.TrimSpace(opSymbols[kind]))
	}
	if right == nil {
		return nil, p.errorf(at, "operator %q has no right operand", strings.TrimSpace(opSymbols[kind]))
	}
	return newOp(kind, left, right), nil
}

func (p *parser[T]) skipSpaces(end int) {
	for p.pos < end && p.src[p.pos] == ' ' {
		p.pos++
	}
}

// operandEnd returns where the right operand of a non-additive operator
// stops: at the first space outside a group. A group is skipped up to the
// first ')' that follows it, nested or not.
func (p *parser[T]) operandEnd(i, end int) int {
	for i < end && p.src[i] != ' ' {
		if p.src[i] == '(' {
			i = p.skipGroup(i, end)
		}
		i++
	}
	return min(i, end)
}

func (p *parser[T]) skipGroup(i, end int) int {
	for i < end && p.src[i] != ')' {
		i++
		if i < end && p.src[i] == '(' {
			i = p.skipGroup(i, end)
		}
	}
	return i
}

// digits scans a digit run with an optional fractional part starting at i.
func (p *parser[T]) digits(i, end int) int {
	for i < end && isDigit(p.src[i]) {
		i++
	}
	if i+1 < end && p.src[i] == '.' && isDigit(p.src[i+1]) {
		i++
		for i < end && isDigit(p.src[i]) {
			i++
		}
	}
	return i
}

func (p *parser[T]) number(end int) (Node[T], error) {
	start := p.pos
	p.pos = p.digits(p.pos, end)
	re, err := strconv.ParseFloat(p.src[start:p.pos], 64)
	if err != nil {
		return nil, p.errorf(start, "invalid number %q", p.src[start:p.pos])
	}
	if p.dom.IsComplex() {
		if v, ok, err := p.imaginaryTail(re, end); err != nil || ok {
			return v, err
		}
	}
	v, _ := p.dom.FromParts(re, 0)
	return &Value[T]{v: v}, nil
}

// imaginaryTail recognizes the " + bi" continuation of a complex literal.
// The position only moves when the whole continuation is present.
func (p *parser[T]) imaginaryTail(re float64, end int) (Node[T], bool, error) {
	i := p.pos
	for i < end && p.src[i] == ' ' {
		i++
	}
	if i >= end || p.src[i] != '+' {
		return nil, false, nil
	}
	i++
	for i < end && p.src[i] == ' ' {
		i++
	}
	if i >= end || !isDigit(p.src[i]) {
		return nil, false, nil
	}
	start := i
	i = p.digits(i, end)
	if i >= end || p.src[i] != 'i' {
		return nil, false, nil
	}
	im, err := strconv.ParseFloat(p.src[start:i], 64)
	if err != nil {
		return nil, false, p.errorf(start, "invalid number %q", p.src[start:i])
	}
	i++
	if i < end && isLetter(p.src[i]) {
		return nil, false, p.errorf(i, "expected a complex number")
	}
	p.pos = i
	v, _ := p.dom.FromParts(re, im)
	return &Value[T]{v: v}, true, nil
}

func (p *parser[T]) word(end int) (Node[T], error) {
	start := p.pos
	for p.pos < end && (isLetter(p.src[p.pos]) || isDigit(p.src[p.pos])) {
		p.pos++
	}
	w := p.src[start:p.pos]
	if kind, ok := lookupFunc(w); ok {
		if p.pos >= end || p.src[p.pos] != '(' {
			return nil, p.errorf(p.pos, "function %s has no argument", w)
		}
		p.pos++
		arg, err := p.parse(end)
		if err != nil {
			return nil, err
		}
		if arg == nil {
			return nil, p.errorf(p.pos, "function %s has an empty argument", w)
		}
		p.pos++
		return newFunc(kind, arg), nil
	}
	if w == "i" && p.dom.IsComplex() {
		v, _ := p.dom.FromParts(0, 1)
		return &Value[T]{v: v}, nil
	}
	p.vars[w] = struct{}{}
	return &Variable[T]{name: w}, nil
}
