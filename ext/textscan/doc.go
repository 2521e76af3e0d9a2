// Package textscan provides a concrete Context implementation for
// pkg/core axioms whose underlying state is a rune-oriented text cursor,
// plus the small family of Operator/Assert predicates that bind to it.
//
// A Context wraps an io.RuneScanner and tracks its rune position (rune
// offset, line and column) and an error log so a flow expression can report where and why it failed.
// Predicates built with Ch, AnyCh, NumDecimal, Sp, Digit and IsEos are
// ordinary func(*Context, *core.ValueSlot) bool values and compose with
// pkg/core's Builder exactly like any other operator predicate.
package textscan
