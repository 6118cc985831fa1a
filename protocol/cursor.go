package protocol

import (
	"fmt"
)

// ParseError reports a failed match at a byte offset in the input.
// Every grammar rule fails with this one error kind; the offset reflects
// the innermost failure point, not the rule that surfaced it.
type ParseError struct {
	Offset  int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("spamc: parse error at offset %d: %s", e.Offset, e.Message)
}

// cursor is a position-tracked view over an immutable byte buffer.
// It is owned by exactly one parse attempt and never shared.
type cursor struct {
	buf []byte
	pos int
}

func newCursor(data []byte) *cursor {
	return &cursor{buf: data}
}

// remainder returns the unparsed tail of the buffer. It reslices, no copy.
func (c *cursor) remainder() []byte {
	return c.buf[c.pos:]
}

func (c *cursor) atEnd() bool {
	return c.pos >= len(c.buf)
}

// advance moves the cursor forward. Callers only advance by a verified
// match length, so there is no bounds check beyond the buffer invariant.
func (c *cursor) advance(n int) {
	c.pos += n
}

func (c *cursor) errorf(format string, args ...any) *ParseError {
	return &ParseError{Offset: c.pos, Message: fmt.Sprintf(format, args...)}
}

// hasPrefix reports whether the remainder starts with lit, without consuming.
func (c *cursor) hasPrefix(lit string) bool {
	rem := c.remainder()
	return len(rem) >= len(lit) && string(rem[:len(lit)]) == lit
}

// literal consumes lit anchored at the current position.
func (c *cursor) literal(lit string) error {
	if !c.hasPrefix(lit) {
		return c.errorf("no match for %q", lit)
	}
	c.advance(len(lit))
	return nil
}

// tryLiteral consumes lit if it matches, reporting whether it did.
func (c *cursor) tryLiteral(lit string) bool {
	if !c.hasPrefix(lit) {
		return false
	}
	c.advance(len(lit))
	return true
}

// takeWhile1 consumes one or more leading bytes satisfying class.
// It fails without consuming when the first byte does not match.
func (c *cursor) takeWhile1(class func(byte) bool, what string) ([]byte, error) {
	rem := c.remainder()
	n := 0
	for n < len(rem) && class(rem[n]) {
		n++
	}
	if n == 0 {
		return nil, c.errorf("no match for %s", what)
	}
	c.advance(n)
	return rem[:n], nil
}

// takeUntilCRLF consumes bytes up to, not including, the next CRLF.
// The terminator must be present ahead; min is the smallest acceptable
// number of consumed bytes.
func (c *cursor) takeUntilCRLF(min int, what string) ([]byte, error) {
	rem := c.remainder()
	for i := 0; i+1 < len(rem); i++ {
		if rem[i] == '\r' && rem[i+1] == '\n' {
			if i < min {
				return nil, c.errorf("no match for %s", what)
			}
			c.advance(i)
			return rem[:i], nil
		}
	}
	return nil, c.errorf("no match for %s", what)
}

// checkpoint runs rule and rewinds the cursor to its pre-call offset if the
// rule fails. This is the sole backtracking primitive: every rule that
// participates in an alternation goes through it, so a failed attempt leaves
// the cursor untouched for the sibling attempt.
func checkpoint[T any](c *cursor, rule func() (T, error)) (T, error) {
	mark := c.pos
	v, err := rule()
	if err != nil {
		c.pos = mark
		var zero T
		return zero, err
	}
	return v, nil
}

// skip runs rule purely for its side effect and swallows failure. Used for
// optional constructs such as surrounding whitespace, where failure means
// the rule did not apply.
func skip(rule func() error) {
	_ = rule()
}

func isSpaceTab(b byte) bool {
	return b == ' ' || b == '\t'
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// isNameByte matches header-name and user-name token bytes.
func isNameByte(b byte) bool {
	switch {
	case b >= 'a' && b <= 'z':
		return true
	case b >= 'A' && b <= 'Z':
		return true
	case b >= '0' && b <= '9':
		return true
	case b == '-' || b == '_':
		return true
	}
	return false
}
