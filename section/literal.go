package section

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/arloliu/npyz/errs"
)

// literalParser scans the restricted Python literal syntax used by NPY header
// dictionaries: quoted strings, True/False and tuples of integers.
type literalParser struct {
	s   string
	pos int
}

func (p *literalParser) errorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s at offset %d", errs.ErrInvalidHeader, fmt.Sprintf(format, args...), p.pos)
}

func (p *literalParser) skipSpace() {
	for p.pos < len(p.s) {
		switch p.s[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

func (p *literalParser) peek() byte {
	p.skipSpace()
	if p.pos >= len(p.s) {
		return 0
	}

	return p.s[p.pos]
}

func (p *literalParser) expect(c byte) error {
	if p.peek() != c {
		return p.errorf("expected %q", c)
	}
	p.pos++

	return nil
}

func (p *literalParser) str() (string, error) {
	q := p.peek()
	if q != '\'' && q != '"' {
		return "", p.errorf("expected string")
	}
	p.pos++

	end := strings.IndexByte(p.s[p.pos:], q)
	if end < 0 {
		return "", p.errorf("unterminated string")
	}
	v := p.s[p.pos : p.pos+end]
	p.pos += end + 1

	return v, nil
}

func (p *literalParser) boolean() (bool, error) {
	p.skipSpace()
	switch {
	case strings.HasPrefix(p.s[p.pos:], "True"):
		p.pos += len("True")
		return true, nil
	case strings.HasPrefix(p.s[p.pos:], "False"):
		p.pos += len("False")
		return false, nil
	default:
		return false, p.errorf("expected True or False")
	}
}

func (p *literalParser) integer() (int, error) {
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.s) && p.s[p.pos] >= '0' && p.s[p.pos] <= '9' {
		p.pos++
	}
	if start == p.pos {
		return 0, p.errorf("expected integer")
	}

	n, err := strconv.Atoi(p.s[start:p.pos])
	if err != nil {
		return 0, p.errorf("integer out of range")
	}

	// Python 2 long suffix, found in files written by old numpy versions.
	if p.pos < len(p.s) && p.s[p.pos] == 'L' {
		p.pos++
	}

	return n, nil
}

func (p *literalParser) tuple() ([]int, error) {
	if err := p.expect('('); err != nil {
		return nil, err
	}

	shape := []int{}
	for {
		if p.peek() == ')' {
			p.pos++
			return shape, nil
		}

		n, err := p.integer()
		if err != nil {
			return nil, err
		}
		shape = append(shape, n)

		switch p.peek() {
		case ',':
			p.pos++
		case ')':
			p.pos++
			return shape, nil
		default:
			return nil, p.errorf("expected ',' or ')'")
		}
	}
}

// parseDict parses a header dictionary such as
// "{'descr': '<f8', 'fortran_order': False, 'shape': (3,), }".
func parseDict(s string) (*Header, error) {
	p := &literalParser{s: s}
	if err := p.expect('{'); err != nil {
		return nil, err
	}

	h := &Header{}
	seen := make(map[string]bool, 3)
	for p.peek() != '}' {
		key, err := p.str()
		if err != nil {
			return nil, err
		}
		if err := p.expect(':'); err != nil {
			return nil, err
		}

		switch key {
		case "descr":
			if p.peek() == '[' {
				return nil, fmt.Errorf("%w: structured descriptors", errs.ErrUnsupportedType)
			}
			h.Descr, err = p.str()
		case "fortran_order":
			h.FortranOrder, err = p.boolean()
		case "shape":
			h.Shape, err = p.tuple()
		default:
			return nil, p.errorf("unexpected key %q", key)
		}
		if err != nil {
			return nil, err
		}
		seen[key] = true

		if p.peek() == ',' {
			p.pos++
			continue
		}
		if p.peek() != '}' {
			return nil, p.errorf("expected ',' or '}'")
		}
	}

	for _, key := range []string{"descr", "fortran_order", "shape"} {
		if !seen[key] {
			return nil, fmt.Errorf("%w: missing key %q", errs.ErrInvalidHeader, key)
		}
	}

	return h, nil
}
