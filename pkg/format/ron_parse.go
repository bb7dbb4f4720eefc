//go:build !confit_no_ron

package format

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

type ronParser struct {
	data []byte
	pos  int
}

// parseRON parses a complete RON document. Anything after the top-level
// value other than whitespace and comments is an error.
func parseRON(data []byte) (node, error) {
	p := &ronParser{data: data}
	if err := p.skipSpace(); err != nil {
		return nil, err
	}
	if err := p.skipAttributes(); err != nil {
		return nil, err
	}
	v, err := p.value()
	if err != nil {
		return nil, err
	}
	if err := p.skipSpace(); err != nil {
		return nil, err
	}
	if !p.eof() {
		return nil, p.errorf("unexpected %q after value", p.peek())
	}
	return v, nil
}

func (p *ronParser) errorf(format string, args ...any) error {
	end := min(p.pos, len(p.data))
	line, col := 1, 1
	for _, b := range p.data[:end] {
		if b == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return &SyntaxError{Line: line, Column: col, Msg: fmt.Sprintf(format, args...)}
}

func (p *ronParser) eof() bool {
	return p.pos >= len(p.data)
}

func (p *ronParser) peek() byte {
	if p.eof() {
		return 0
	}
	return p.data[p.pos]
}

func (p *ronParser) peekAt(off int) byte {
	if p.pos+off >= len(p.data) {
		return 0
	}
	return p.data[p.pos+off]
}

func (p *ronParser) expect(c byte) error {
	if p.eof() {
		return p.errorf("expected %q, got end of input", c)
	}
	if p.data[p.pos] != c {
		return p.errorf("expected %q, got %q", c, p.data[p.pos])
	}
	p.pos++
	return nil
}

// skipSpace skips whitespace, line comments and (nested) block comments.
func (p *ronParser) skipSpace() error {
	for !p.eof() {
		switch c := p.peek(); {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			p.pos++
		case c == '/' && p.peekAt(1) == '/':
			for !p.eof() && p.peek() != '\n' {
				p.pos++
			}
		case c == '/' && p.peekAt(1) == '*':
			start := p.pos
			p.pos += 2
			depth := 1
			for depth > 0 {
				if p.eof() {
					p.pos = start
					return p.errorf("unterminated block comment")
				}
				switch {
				case p.peek() == '/' && p.peekAt(1) == '*':
					depth++
					p.pos += 2
				case p.peek() == '*' && p.peekAt(1) == '/':
					depth--
					p.pos += 2
				default:
					p.pos++
				}
			}
		default:
			return nil
		}
	}
	return nil
}

// skipAttributes skips inner attributes such as #![enable(implicit_some)].
func (p *ronParser) skipAttributes() error {
	for p.peek() == '#' && p.peekAt(1) == '!' {
		p.pos += 2
		if err := p.expect('['); err != nil {
			return err
		}
		depth := 1
		for depth > 0 {
			if p.eof() {
				return p.errorf("unterminated attribute")
			}
			switch p.peek() {
			case '[':
				depth++
			case ']':
				depth--
			}
			p.pos++
		}
		if err := p.skipSpace(); err != nil {
			return err
		}
	}
	return nil
}

func (p *ronParser) value() (node, error) {
	if err := p.skipSpace(); err != nil {
		return nil, err
	}
	if p.eof() {
		return nil, p.errorf("unexpected end of input")
	}

	switch c := p.peek(); {
	case c == '"':
		return p.str()
	case c == 'r' && (p.peekAt(1) == '"' || (p.peekAt(1) == '#' && !isIdentStart(p.peekAt(2)))):
		return p.rawStr()
	case c == '\'':
		return p.char()
	case c == '[':
		return p.list()
	case c == '{':
		return p.mapValue()
	case c == '(':
		return p.paren()
	case c == '-' || c == '+' || c == '.' || isDigit(c):
		return p.number()
	case isIdentStart(c):
		return p.identValue()
	default:
		return nil, p.errorf("unexpected %q", c)
	}
}

func (p *ronParser) identValue() (node, error) {
	start := p.pos
	name, err := p.ident()
	if err != nil {
		return nil, err
	}
	switch name {
	case "true":
		return true, nil
	case "false":
		return false, nil
	case "None":
		return nil, nil
	case "inf", "NaN":
		p.pos = start
		return nil, p.errorf("%s cannot be represented", name)
	case "Some":
		if err := p.skipSpace(); err != nil {
			return nil, err
		}
		if err := p.expect('('); err != nil {
			return nil, err
		}
		v, err := p.value()
		if err != nil {
			return nil, err
		}
		if err := p.skipSpace(); err != nil {
			return nil, err
		}
		if p.peek() == ',' {
			p.pos++
			if err := p.skipSpace(); err != nil {
				return nil, err
			}
		}
		if err := p.expect(')'); err != nil {
			return nil, err
		}
		return v, nil
	}

	// Named struct, tuple struct or newtype: Name(...).
	if err := p.skipSpace(); err != nil {
		return nil, err
	}
	if p.peek() == '(' {
		return p.paren()
	}
	// Unit struct or enum variant.
	return name, nil
}

func (p *ronParser) ident() (string, error) {
	if p.peek() == 'r' && p.peekAt(1) == '#' {
		p.pos += 2
	}
	if !isIdentStart(p.peek()) {
		return "", p.errorf("expected identifier")
	}
	start := p.pos
	for !p.eof() && isIdentChar(p.peek()) {
		p.pos++
	}
	return string(p.data[start:p.pos]), nil
}

// paren parses (), (field: v, ...) or (v, ...).
func (p *ronParser) paren() (node, error) {
	if err := p.expect('('); err != nil {
		return nil, err
	}
	if err := p.skipSpace(); err != nil {
		return nil, err
	}
	if p.peek() == ')' {
		p.pos++
		return object{}, nil
	}

	if p.isFieldAhead() {
		return p.structBody()
	}
	return p.tupleBody()
}

// isFieldAhead reports whether the input continues with `ident :`.
func (p *ronParser) isFieldAhead() bool {
	save := p.pos
	defer func() { p.pos = save }()

	if !isIdentStart(p.peek()) {
		return false
	}
	if _, err := p.ident(); err != nil {
		return false
	}
	if err := p.skipSpace(); err != nil {
		return false
	}
	return p.peek() == ':'
}

func (p *ronParser) structBody() (node, error) {
	obj := object{}
	seen := make(map[string]bool)
	for {
		if err := p.skipSpace(); err != nil {
			return nil, err
		}
		if p.peek() == ')' {
			p.pos++
			return obj, nil
		}
		keyPos := p.pos
		key, err := p.ident()
		if err != nil {
			return nil, err
		}
		if seen[key] {
			p.pos = keyPos
			return nil, p.errorf("duplicate field %q", key)
		}
		seen[key] = true
		if err := p.skipSpace(); err != nil {
			return nil, err
		}
		if err := p.expect(':'); err != nil {
			return nil, err
		}
		val, err := p.value()
		if err != nil {
			return nil, err
		}
		obj = append(obj, member{key: key, val: val})
		if err := p.separator(')'); err != nil {
			return nil, err
		}
	}
}

func (p *ronParser) tupleBody() (node, error) {
	items := list{}
	trailingComma := false
	for {
		if err := p.skipSpace(); err != nil {
			return nil, err
		}
		if p.peek() == ')' {
			p.pos++
			break
		}
		val, err := p.value()
		if err != nil {
			return nil, err
		}
		items = append(items, val)
		if err := p.skipSpace(); err != nil {
			return nil, err
		}
		trailingComma = p.peek() == ','
		if err := p.separator(')'); err != nil {
			return nil, err
		}
	}
	// A single element without a trailing comma is a newtype wrapper.
	if len(items) == 1 && !trailingComma {
		return items[0], nil
	}
	return items, nil
}

func (p *ronParser) list() (node, error) {
	if err := p.expect('['); err != nil {
		return nil, err
	}
	items := list{}
	for {
		if err := p.skipSpace(); err != nil {
			return nil, err
		}
		if p.peek() == ']' {
			p.pos++
			return items, nil
		}
		val, err := p.value()
		if err != nil {
			return nil, err
		}
		items = append(items, val)
		if err := p.separator(']'); err != nil {
			return nil, err
		}
	}
}

func (p *ronParser) mapValue() (node, error) {
	if err := p.expect('{'); err != nil {
		return nil, err
	}
	obj := object{}
	for {
		if err := p.skipSpace(); err != nil {
			return nil, err
		}
		if p.peek() == '}' {
			p.pos++
			return obj, nil
		}
		keyPos := p.pos
		k, err := p.value()
		if err != nil {
			return nil, err
		}
		var key string
		switch kv := k.(type) {
		case string:
			key = kv
		case json.Number:
			key = kv.String()
		case bool:
			key = strconv.FormatBool(kv)
		default:
			p.pos = keyPos
			return nil, p.errorf("map keys must be strings, numbers or booleans")
		}
		if err := p.skipSpace(); err != nil {
			return nil, err
		}
		if err := p.expect(':'); err != nil {
			return nil, err
		}
		val, err := p.value()
		if err != nil {
			return nil, err
		}
		obj = append(obj, member{key: key, val: val})
		if err := p.separator('}'); err != nil {
			return nil, err
		}
	}
}

// separator consumes a comma, or leaves the closing delimiter for the caller.
func (p *ronParser) separator(closing byte) error {
	if err := p.skipSpace(); err != nil {
		return err
	}
	switch p.peek() {
	case ',':
		p.pos++
		return nil
	case closing:
		return nil
	}
	if p.eof() {
		return p.errorf("expected ',' or %q, got end of input", closing)
	}
	return p.errorf("expected ',' or %q, got %q", closing, p.peek())
}

func (p *ronParser) str() (node, error) {
	start := p.pos
	p.pos++ // opening quote
	var sb strings.Builder
	for {
		if p.eof() {
			p.pos = start
			return nil, p.errorf("unterminated string")
		}
		c := p.data[p.pos]
		switch c {
		case '"':
			p.pos++
			return sb.String(), nil
		case '\\':
			r, err := p.escape()
			if err != nil {
				return nil, err
			}
			sb.WriteRune(r)
		default:
			sb.WriteByte(c)
			p.pos++
		}
	}
}

func (p *ronParser) rawStr() (node, error) {
	start := p.pos
	p.pos++ // r
	hashes := 0
	for p.peek() == '#' {
		hashes++
		p.pos++
	}
	if err := p.expect('"'); err != nil {
		return nil, err
	}
	closing := "\"" + strings.Repeat("#", hashes)
	end := strings.Index(string(p.data[p.pos:]), closing)
	if end < 0 {
		p.pos = start
		return nil, p.errorf("unterminated raw string")
	}
	s := string(p.data[p.pos : p.pos+end])
	p.pos += end + len(closing)
	return s, nil
}

func (p *ronParser) char() (node, error) {
	p.pos++ // opening quote
	var r rune
	if p.peek() == '\\' {
		var err error
		if r, err = p.escape(); err != nil {
			return nil, err
		}
	} else {
		var size int
		r, size = utf8.DecodeRune(p.data[p.pos:])
		if r == utf8.RuneError && size <= 1 {
			return nil, p.errorf("invalid character literal")
		}
		p.pos += size
	}
	if err := p.expect('\''); err != nil {
		return nil, err
	}
	return string(r), nil
}

// escape decodes one backslash escape; p.pos is at the backslash.
func (p *ronParser) escape() (rune, error) {
	p.pos++
	if p.eof() {
		return 0, p.errorf("unterminated escape")
	}
	c := p.data[p.pos]
	p.pos++
	switch c {
	case 'n':
		return '\n', nil
	case 'r':
		return '\r', nil
	case 't':
		return '\t', nil
	case '0':
		return 0, nil
	case '\\', '"', '\'', '/':
		return rune(c), nil
	case 'x':
		return p.hexRune(2)
	case 'u':
		if p.peek() != '{' {
			return p.hexRune(4)
		}
		p.pos++
		end := strings.IndexByte(string(p.data[p.pos:]), '}')
		if end < 1 || end > 6 {
			return 0, p.errorf("invalid unicode escape")
		}
		n, err := strconv.ParseUint(string(p.data[p.pos:p.pos+end]), 16, 32)
		if err != nil || !utf8.ValidRune(rune(n)) {
			return 0, p.errorf("invalid unicode escape")
		}
		p.pos += end + 1
		return rune(n), nil
	}
	return 0, p.errorf("unknown escape \\%c", c)
}

func (p *ronParser) hexRune(digits int) (rune, error) {
	if p.pos+digits > len(p.data) {
		return 0, p.errorf("short hex escape")
	}
	n, err := strconv.ParseUint(string(p.data[p.pos:p.pos+digits]), 16, 32)
	if err != nil {
		return 0, p.errorf("invalid hex escape")
	}
	p.pos += digits
	return rune(n), nil
}

func (p *ronParser) number() (node, error) {
	start := p.pos
	if c := p.peek(); c == '-' || c == '+' {
		p.pos++
	}
	if p.peek() == 'i' || p.peek() == 'N' {
		p.pos = start
		return nil, p.errorf("non-finite numbers cannot be represented")
	}

	if p.peek() == '0' && (p.peekAt(1) == 'x' || p.peekAt(1) == 'o' || p.peekAt(1) == 'b') {
		p.pos += 2
		for !p.eof() && (isHexDigit(p.peek()) || p.peek() == '_') {
			p.pos++
		}
		text := strings.TrimPrefix(string(p.data[start:p.pos]), "+")
		if n, err := strconv.ParseInt(text, 0, 64); err == nil {
			return json.Number(strconv.FormatInt(n, 10)), nil
		}
		if n, err := strconv.ParseUint(text, 0, 64); err == nil {
			return json.Number(strconv.FormatUint(n, 10)), nil
		}
		p.pos = start
		return nil, p.errorf("invalid integer %q", text)
	}

	isFloat := false
scan:
	for !p.eof() {
		c := p.peek()
		switch {
		case isDigit(c) || c == '_':
		case c == '.' || c == 'e' || c == 'E':
			isFloat = true
		case (c == '+' || c == '-') && (p.data[p.pos-1] == 'e' || p.data[p.pos-1] == 'E'):
		default:
			break scan
		}
		p.pos++
	}
	text := strings.ReplaceAll(strings.TrimPrefix(string(p.data[start:p.pos]), "+"), "_", "")
	if !isFloat {
		if n, err := strconv.ParseInt(text, 10, 64); err == nil {
			return json.Number(strconv.FormatInt(n, 10)), nil
		}
		if n, err := strconv.ParseUint(text, 10, 64); err == nil {
			return json.Number(strconv.FormatUint(n, 10)), nil
		}
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		p.pos = start
		return nil, p.errorf("invalid number %q", text)
	}
	return json.Number(strconv.FormatFloat(f, 'g', -1, 64)), nil
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isHexDigit(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentChar(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}
