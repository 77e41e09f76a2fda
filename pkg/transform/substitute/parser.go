package substitute

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/arthur-debert/sedit/pkg/errors"
)

// expression is one parsed edit expression: an optional address
// followed by a single command.
type expression struct {
	addr *address // nil = unaddressed
	cmd  byte     // 's', 'd', 'a', 'i'
	sub  *substitution
	text string // for 'a' and 'i'
}

// address restricts a command to a line, a range, the last line, or
// lines matching a regex.
type address struct {
	start int // 1-based, 0 when not a numeric address
	end   int // 0 when single line
	last  bool
	regex *regexp.Regexp
}

// substitution holds the compiled s command.
type substitution struct {
	regex   *regexp.Regexp
	replace string // already converted to Go replacement syntax
	global  bool
	nth     int // replace Nth match only, 0 = first
	icase   bool
}

// parse compiles an expression string. Every failure carries
// MALFORMED_PATTERN.
func parse(raw string) (*expression, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, errors.New(errors.ErrMalformedPattern, "empty expression")
	}

	p := &parser{expr: trimmed}

	addr, err := p.parseAddress()
	if err != nil {
		return nil, err
	}
	p.skipSpaces()

	if p.pos >= len(p.expr) {
		return nil, errors.New(errors.ErrMalformedPattern, "expected command after address")
	}

	expr := &expression{addr: addr}
	c := p.next()
	expr.cmd = c

	switch c {
	case 's':
		sub, err := p.parseSubstitution()
		if err != nil {
			return nil, err
		}
		expr.sub = sub
	case 'd':
		if rest := strings.TrimSpace(p.expr[p.pos:]); rest != "" {
			return nil, errors.Newf(errors.ErrMalformedPattern,
				"unexpected text after 'd' command: %q", rest)
		}
	case 'a', 'i':
		expr.text = p.parseText()
	default:
		return nil, errors.Newf(errors.ErrMalformedPattern, "unknown command '%c'", c)
	}

	return expr, nil
}

type parser struct {
	expr string
	pos  int
}

func (p *parser) peek() byte {
	if p.pos >= len(p.expr) {
		return 0
	}
	return p.expr[p.pos]
}

func (p *parser) next() byte {
	if p.pos >= len(p.expr) {
		return 0
	}
	b := p.expr[p.pos]
	p.pos++
	return b
}

func (p *parser) skipSpaces() {
	for p.pos < len(p.expr) && (p.expr[p.pos] == ' ' || p.expr[p.pos] == '\t') {
		p.pos++
	}
}

// parseAddress parses a leading address: N, N,M, $, or /regex/.
// Returns nil when the expression starts with the command directly.
func (p *parser) parseAddress() (*address, error) {
	if p.pos >= len(p.expr) {
		return nil, nil
	}

	c := p.peek()
	switch {
	case c == '$':
		p.next()
		return &address{last: true}, nil

	case c == '/':
		p.next()
		re, err := p.parseRegexUntil('/')
		if err != nil {
			return nil, err
		}
		return &address{regex: re}, nil

	case c >= '0' && c <= '9':
		start := p.parseNumber()
		if start == 0 {
			return nil, errors.New(errors.ErrMalformedPattern, "line addresses are 1-based")
		}
		addr := &address{start: start}

		if p.peek() == ',' {
			p.next()
			p.skipSpaces()
			if c := p.peek(); c < '0' || c > '9' {
				return nil, errors.New(errors.ErrMalformedPattern, "expected line number after ','")
			}
			end := p.parseNumber()
			if end == 0 {
				return nil, errors.New(errors.ErrMalformedPattern, "line addresses are 1-based")
			}
			if end < start {
				return nil, errors.Newf(errors.ErrMalformedPattern,
					"address range %d,%d is inverted", start, end)
			}
			addr.end = end
		}
		return addr, nil

	default:
		return nil, nil
	}
}

func (p *parser) parseNumber() int {
	start := p.pos
	for p.pos < len(p.expr) && p.expr[p.pos] >= '0' && p.expr[p.pos] <= '9' {
		p.pos++
	}
	if p.pos == start {
		return 0
	}
	n, _ := strconv.Atoi(p.expr[start:p.pos])
	return n
}

// parseRegexUntil consumes up to the closing delimiter and compiles
// the pattern. \<delim> escapes the delimiter inside the pattern.
func (p *parser) parseRegexUntil(delim byte) (*regexp.Regexp, error) {
	var pattern strings.Builder
	for p.pos < len(p.expr) {
		c := p.expr[p.pos]
		if c == '\\' && p.pos+1 < len(p.expr) {
			next := p.expr[p.pos+1]
			if next == delim {
				pattern.WriteByte(delim)
				p.pos += 2
				continue
			}
			pattern.WriteByte(c)
			pattern.WriteByte(next)
			p.pos += 2
			continue
		}
		if c == delim {
			p.pos++
			re, err := regexp.Compile(pattern.String())
			if err != nil {
				return nil, errors.Wrapf(err, errors.ErrMalformedPattern,
					"invalid regex %q", pattern.String())
			}
			return re, nil
		}
		pattern.WriteByte(c)
		p.pos++
	}
	return nil, errors.New(errors.ErrMalformedPattern, "unterminated address regex")
}

// parseSubstitution parses s<delim>pattern<delim>replacement<delim>[flags].
// The closing delimiter is required; flags are g, i, and a match ordinal.
func (p *parser) parseSubstitution() (*substitution, error) {
	if p.pos >= len(p.expr) {
		return nil, errors.New(errors.ErrMalformedPattern, "unterminated 's' command")
	}

	delim := p.next()
	if delim == '\\' || delim == '\n' {
		return nil, errors.New(errors.ErrMalformedPattern, "invalid delimiter for 's' command")
	}

	pattern, ok := p.readSection(delim)
	if !ok {
		return nil, errors.New(errors.ErrMalformedPattern, "unterminated 's' command: missing delimiter after pattern")
	}
	replacement, ok := p.readSection(delim)
	if !ok {
		return nil, errors.New(errors.ErrMalformedPattern, "unterminated 's' command: missing closing delimiter")
	}

	sub := &substitution{replace: goReplacement(replacement)}

	for p.pos < len(p.expr) {
		c := p.next()
		switch {
		case c == 'g':
			sub.global = true
		case c == 'i' || c == 'I':
			sub.icase = true
		case c >= '1' && c <= '9':
			num := string(c)
			for p.pos < len(p.expr) && p.peek() >= '0' && p.peek() <= '9' {
				num += string(p.next())
			}
			n, err := strconv.Atoi(num)
			if err != nil || n <= 0 {
				return nil, errors.Newf(errors.ErrMalformedPattern, "invalid match ordinal %q", num)
			}
			sub.nth = n
		case c == ' ' || c == '\t':
			if rest := strings.TrimSpace(p.expr[p.pos:]); rest != "" {
				return nil, errors.Newf(errors.ErrMalformedPattern,
					"unexpected text after flags: %q", rest)
			}
			p.pos = len(p.expr)
		default:
			return nil, errors.Newf(errors.ErrMalformedPattern, "unknown flag '%c'", c)
		}
	}

	if sub.icase {
		pattern = "(?i)" + pattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrMalformedPattern, "invalid regex in substitution")
	}
	sub.regex = re

	return sub, nil
}

// readSection consumes bytes up to the next unescaped delimiter.
// ok is false when the expression ends before the delimiter appears.
func (p *parser) readSection(delim byte) (string, bool) {
	var buf strings.Builder
	for p.pos < len(p.expr) {
		c := p.expr[p.pos]
		if c == '\\' && p.pos+1 < len(p.expr) {
			next := p.expr[p.pos+1]
			if next == delim {
				buf.WriteByte(delim)
				p.pos += 2
				continue
			}
			buf.WriteByte(c)
			buf.WriteByte(next)
			p.pos += 2
			continue
		}
		if c == delim {
			p.pos++
			return buf.String(), true
		}
		buf.WriteByte(c)
		p.pos++
	}
	return "", false
}

// parseText reads the text argument of 'a' and 'i'. A leading
// backslash and surrounding spaces are stripped, matching the usual
// sed spelling "2a\ text".
func (p *parser) parseText() string {
	if p.peek() == '\\' {
		p.next()
	}
	p.skipSpaces()
	return p.expr[p.pos:]
}

// goReplacement converts sed replacement syntax to Go regexp
// replacement syntax: \1..\9 become $1..$9, & becomes ${0}, \n and \t
// become real characters, and literal $ is doubled so Go does not
// treat it as a group reference.
func goReplacement(sedRepl string) string {
	var b strings.Builder
	b.Grow(len(sedRepl))
	for i := 0; i < len(sedRepl); i++ {
		ch := sedRepl[i]
		switch ch {
		case '\\':
			if i+1 < len(sedRepl) {
				next := sedRepl[i+1]
				switch {
				case next >= '1' && next <= '9':
					b.WriteByte('$')
					b.WriteByte(next)
				case next == 'n':
					b.WriteByte('\n')
				case next == 't':
					b.WriteByte('\t')
				case next == '\\':
					b.WriteByte('\\')
				case next == '&':
					b.WriteByte('&')
				default:
					b.WriteByte(next)
				}
				i++
			} else {
				b.WriteByte('\\')
			}
		case '&':
			b.WriteString("${0}")
		case '$':
			b.WriteString("$$")
		default:
			b.WriteByte(ch)
		}
	}
	return b.String()
}
