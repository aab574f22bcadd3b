package script

import (
	"fmt"
	"strconv"
	"strings"
)

// ReadError reports malformed source at a byte offset.
type ReadError struct {
	Offset int
	Msg    string
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("script: read error at offset %d: %s", e.Offset, e.Msg)
}

var (
	symQuote           = Intern("quote")
	symQuasiquote      = Intern("quasiquote")
	symUnquote         = Intern("unquote")
	symUnquoteSplicing = Intern("unquote-splicing")
)

// Read parses every form in src.
func Read(src string) ([]Value, error) {
	r := &reader{src: src}
	var forms []Value
	for {
		r.skip()
		if r.eof() {
			return forms, nil
		}
		v, err := r.form()
		if err != nil {
			return nil, err
		}
		forms = append(forms, v)
	}
}

type reader struct {
	src string
	pos int
}

func (r *reader) eof() bool { return r.pos >= len(r.src) }

func (r *reader) errorf(off int, format string, args ...any) error {
	return &ReadError{Offset: off, Msg: fmt.Sprintf(format, args...)}
}

// skip consumes whitespace and line comments.
func (r *reader) skip() {
	for !r.eof() {
		switch c := r.src[r.pos]; {
		case c == ';':
			for !r.eof() && r.src[r.pos] != '\n' {
				r.pos++
			}
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			r.pos++
		default:
			return
		}
	}
}

func (r *reader) form() (Value, error) {
	start := r.pos
	switch c := r.src[r.pos]; c {
	case '(':
		r.pos++
		xs, err := r.seq(')')
		if err != nil {
			return Nil, err
		}
		return List(xs...).withSpan(Span{start, r.pos}), nil
	case '[':
		r.pos++
		xs, err := r.seq(']')
		if err != nil {
			return Nil, err
		}
		return Vector(xs...).withSpan(Span{start, r.pos}), nil
	case ')', ']':
		return Nil, r.errorf(start, "unexpected %q", c)
	case '\'':
		return r.prefixed(symQuote, 1)
	case '`':
		return r.prefixed(symQuasiquote, 1)
	case ',':
		if r.pos+1 < len(r.src) && r.src[r.pos+1] == '@' {
			return r.prefixed(symUnquoteSplicing, 2)
		}
		return r.prefixed(symUnquote, 1)
	case '"':
		return r.str()
	case '#':
		return r.raw()
	}
	return r.atom()
}

func (r *reader) seq(end byte) ([]Value, error) {
	open := r.pos - 1
	var xs []Value
	for {
		r.skip()
		if r.eof() {
			return nil, r.errorf(open, "unbalanced %q", r.src[open])
		}
		if c := r.src[r.pos]; c == end {
			r.pos++
			return xs, nil
		} else if c == ')' || c == ']' {
			return nil, r.errorf(r.pos, "mismatched %q", c)
		}
		x, err := r.form()
		if err != nil {
			return nil, err
		}
		xs = append(xs, x)
	}
}

func (r *reader) prefixed(head *Symbol, n int) (Value, error) {
	start := r.pos
	r.pos += n
	r.skip()
	if r.eof() {
		return Nil, r.errorf(start, "%s of nothing", head.Name)
	}
	x, err := r.form()
	if err != nil {
		return Nil, err
	}
	sp := Span{start, r.pos}
	return List(SymbolValue(head).withSpan(Span{start, start + n}), x).withSpan(sp), nil
}

func (r *reader) str() (Value, error) {
	start := r.pos
	r.pos++
	var b strings.Builder
	for {
		if r.eof() {
			return Nil, r.errorf(start, "unterminated string")
		}
		c := r.src[r.pos]
		r.pos++
		switch c {
		case '"':
			return String(b.String()).withSpan(Span{start, r.pos}), nil
		case '\\':
			if r.eof() {
				return Nil, r.errorf(start, "unterminated string")
			}
			e := r.src[r.pos]
			r.pos++
			switch e {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case 'r':
				b.WriteByte('\r')
			case '"', '\\':
				b.WriteByte(e)
			default:
				return Nil, r.errorf(r.pos-2, "unknown escape \\%c", e)
			}
		default:
			b.WriteByte(c)
		}
	}
}

// raw reads #"..."#, ##"..."## and so on. The body ends at the first quote
// followed by as many hashes as opened the literal.
func (r *reader) raw() (Value, error) {
	start := r.pos
	n := 0
	for !r.eof() && r.src[r.pos] == '#' {
		n++
		r.pos++
	}
	if r.eof() || r.src[r.pos] != '"' {
		return Nil, r.errorf(start, "expected '\"' after '#'")
	}
	r.pos++
	end := "\"" + strings.Repeat("#", n)
	i := strings.Index(r.src[r.pos:], end)
	if i < 0 {
		return Nil, r.errorf(start, "unterminated raw string")
	}
	body := r.src[r.pos : r.pos+i]
	r.pos += i + len(end)
	return String(body).withSpan(Span{start, r.pos}), nil
}

func isDelimiter(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '(', ')', '[', ']', '"', ';':
		return true
	}
	return false
}

func (r *reader) atom() (Value, error) {
	start := r.pos
	for !r.eof() && !isDelimiter(r.src[r.pos]) {
		r.pos++
	}
	tok := r.src[start:r.pos]
	sp := Span{start, r.pos}
	switch tok {
	case "true":
		return Bool(true).withSpan(sp), nil
	case "false":
		return Bool(false).withSpan(sp), nil
	case "nil":
		return Nil.withSpan(sp), nil
	}
	if looksNumeric(tok) {
		if n, err := strconv.ParseInt(tok, 10, 64); err == nil {
			return Int(n).withSpan(sp), nil
		}
		f, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return Nil, r.errorf(start, "bad number %q", tok)
		}
		return Float(f).withSpan(sp), nil
	}
	return Sym(tok).withSpan(sp), nil
}

// looksNumeric reports whether tok starts like a number: a digit, or a sign
// or dot followed by a digit. Symbols such as - and inf stay symbols.
func looksNumeric(tok string) bool {
	i := 0
	if i < len(tok) && (tok[i] == '-' || tok[i] == '+') {
		i++
	}
	if i < len(tok) && tok[i] == '.' {
		i++
	}
	return i < len(tok) && tok[i] >= '0' && tok[i] <= '9'
}
