package textscan

import (
	"strings"
	"unicode"

	"github.com/flowexpr-go/flowexpr/pkg/core"
)

// Ch matches and consumes a single literal rune.
func Ch(want rune) func(*Context, *core.ValueSlot) bool {
	return func(c *Context, slot *core.ValueSlot) bool {
		r, ok := c.Peek()
		if !ok || r != want {
			return false
		}
		c.Next()
		slot.Set(true, r)
		return true
	}
}

// AnyCh matches and consumes a single rune from the given set.
func AnyCh(set string) func(*Context, *core.ValueSlot) bool {
	return func(c *Context, slot *core.ValueSlot) bool {
		r, ok := c.Peek()
		if !ok || !strings.ContainsRune(set, r) {
			return false
		}
		c.Next()
		slot.Set(true, r)
		return true
	}
}

// Digit matches and consumes a single decimal digit, storing it as an
// int 0-9.
func Digit(c *Context, slot *core.ValueSlot) bool {
	r, ok := c.Peek()
	if !ok || !unicode.IsDigit(r) {
		return false
	}
	c.Next()
	slot.Set(true, int(r-'0'))
	return true
}

// Sp matches and consumes zero or more spaces/tabs. It always succeeds,
// since "zero or more" never declines; callers who need "at least one
// space" should wrap a single Ch(' ') in a Rep1N instead.
func Sp(c *Context, slot *core.ValueSlot) bool {
	for {
		r, ok := c.Peek()
		if !ok || (r != ' ' && r != '\t') {
			break
		}
		c.Next()
	}
	slot.Set(true, nil)
	return true
}

// IsEos is a non-consuming predicate reporting whether the cursor has
// reached end of input. It never advances the cursor, matching the
// discipline a lookahead predicate used with NotOneOf/BreakOn must
// follow (checkRun performs real side effects, so anything meant as a
// peek must not consume).
func IsEos(c *Context, slot *core.ValueSlot) bool {
	eof := c.IsEOF()
	slot.Set(true, eof)
	return eof
}

// NumDecimal matches and consumes one or more decimal digits, optionally
// preceded by a '-', and stores the parsed value as an int.
func NumDecimal(c *Context, slot *core.ValueSlot) bool {
	start := c.pos
	neg := false
	if r, ok := c.Peek(); ok && r == '-' {
		neg = true
		c.Next()
	}

	var digits []rune
	for {
		r, ok := c.Peek()
		if !ok || !unicode.IsDigit(r) {
			break
		}
		digits = append(digits, r)
		c.Next()
	}
	if len(digits) == 0 {
		// No digits consumed: decline. A '-' read above stays consumed,
		// because there is nothing to "un-consume"
		// on a RuneScanner once advanced, so NumDecimal is only safe to
		// use where a lone unmatched '-' is acceptable to have been
		// swallowed by a failing branch of a larger OneOf; callers
		// needing strict backtracking should peek for a digit first.
		_ = start
		return false
	}

	n := 0
	for _, d := range digits {
		n = n*10 + int(d-'0')
	}
	if neg {
		n = -n
	}
	slot.Set(true, n)
	return true
}
