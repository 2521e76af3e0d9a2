// Package core implements the flowexpr node model: a sealed tree of
// control-flow nodes (sequence, optional, one-of, not-one-of, repeat,
// operator, assert, action, rep-action, fail, named-reference) built with a
// fluent Builder and driven to completion by Run.
//
// A flow expression is constructed once, ahead of time, with a Factory and
// never mutated by execution. Running it drives a caller-supplied context of
// type T through the tree; the context itself is where all state and side
// effects live — nodes only decide whether to proceed, which branch to take,
// and how many times to repeat.
//
// The node types are intentionally unexported: the only way to obtain a
// Node[T] is through a Factory or a Builder. This keeps the variant set
// closed the way a sum type would in a language that has one.
package core
