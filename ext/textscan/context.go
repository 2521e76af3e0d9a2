package textscan

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Position locates a rune within the scanned text.
type Position struct {
	Offset int // rune offset from the start of the input
	Line   int // 1-based
	Column int // 1-based, in runes
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Context is a rune-cursor over an io.RuneScanner. It is the Context
// type axioms built against this package's operators are parameterized
// on: flowexpr operators are func(*Context, *core.ValueSlot) bool, and a
// Sequence/OneOf/Repeat tree built over them consumes runes from pos as
// it runs.
//
// Context is not safe for concurrent use; a single Context is meant to
// back a single axiom run, matching spec.md's "never share a context
// across concurrent runs" discipline.
type Context struct {
	src  io.RuneScanner
	pos  Position
	errs []error

	peeked   rune
	peekSize int
	hasPeek  bool
	atEOF    bool
}

// New wraps src as a Context. src is read lazily, one rune at a time.
func New(src io.RuneScanner) *Context {
	return &Context{src: src, pos: Position{Line: 1, Column: 1}}
}

// NewFromString returns a Context scanning s.
func NewFromString(s string) *Context {
	return New(strings.NewReader(s))
}

// NewFromReader returns a Context scanning r, buffering it if r does not
// already implement io.RuneScanner.
func NewFromReader(r io.Reader) *Context {
	if rs, ok := r.(io.RuneScanner); ok {
		return New(rs)
	}
	return New(bufio.NewReader(r))
}

// Position returns the cursor's current position.
func (c *Context) Position() Position {
	return c.pos
}

// Errors returns every error accumulated by Fail/Errorf, in report order.
func (c *Context) Errors() []error {
	return c.errs
}

// Fail appends err to the Context's error log. It never affects the
// run/check_run outcome by itself; a predicate must still return false
// for the failure to be visible to the node model.
func (c *Context) Fail(err error) {
	c.errs = append(c.errs, err)
}

// Errorf formats and appends an error prefixed with the current position.
func (c *Context) Errorf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	c.Fail(fmt.Errorf("%s: %s", c.pos, msg))
}

// Peek returns the next rune without consuming it, and whether one was
// available. It is safe to call repeatedly; the scanner only reads
// ahead once per position.
func (c *Context) Peek() (rune, bool) {
	if c.atEOF {
		return 0, false
	}
	if c.hasPeek {
		return c.peeked, true
	}
	r, size, err := c.src.ReadRune()
	if err != nil {
		c.atEOF = true
		return 0, false
	}
	c.peeked, c.peekSize, c.hasPeek = r, size, true
	return r, true
}

// Next consumes and returns the next rune, advancing position. It
// reports false at end of input.
func (c *Context) Next() (rune, bool) {
	r, ok := c.Peek()
	if !ok {
		return 0, false
	}
	c.hasPeek = false
	c.advance(r)
	return r, true
}

// IsEOF reports whether the cursor has reached the end of input.
func (c *Context) IsEOF() bool {
	_, ok := c.Peek()
	return !ok
}

func (c *Context) advance(r rune) {
	c.pos.Offset++
	if r == '\n' {
		c.pos.Line++
		c.pos.Column = 1
		return
	}
	c.pos.Column++
}
