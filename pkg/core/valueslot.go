package core

// ValueSlot is the type-erased channel through which an Operator's
// predicate hands a captured value to a bound value-action. A fresh
// ValueSlot is created for every invocation of an operator's predicate.
//
// A nil value stored with ok=true is treated as "no value" — the matching
// source behavior this library preserves, see DESIGN.md.
type ValueSlot struct {
	ok bool
	v  any
}

// Set records whether the predicate produced a value and, if so, what it
// was. It returns ok unchanged, mirroring the predicate's own verdict.
func (s *ValueSlot) Set(ok bool, v any) bool {
	s.ok = ok
	if ok {
		s.v = v
	} else {
		s.v = nil
	}
	return ok
}

// Filled reports whether the slot holds a usable, non-nil value.
func (s *ValueSlot) Filled() bool {
	return s.ok && s.v != nil
}

// Value returns the captured value, or nil if the slot was never filled.
func (s *ValueSlot) Value() any {
	return s.v
}
