package core

import (
	"strings"
	"sync"
)

// inertNode is the default target of an unresolved reference cell: it
// always declines. In a correctly built flow expression every link is
// resolved before execution, so this is reached only by a dangling ref.
type inertNode[T any] struct{}

func (inertNode[T]) isOptional() bool          { return false }
func (inertNode[T]) run(ctx T) bool            { return false }
func (inertNode[T]) checkRun(ctx T) checkResult { return failFirst }

// refCell is a rebindable pointer to a Node[T], shared between every
// namedRefNode created for the same registered name.
type refCell[T any] struct {
	mu     sync.RWMutex
	target Node[T]
}

func newRefCell[T any]() *refCell[T] {
	return &refCell[T]{target: inertNode[T]{}}
}

func (c *refCell[T]) get() Node[T] {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.target
}

func (c *refCell[T]) set(n Node[T]) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.target = n
}

// namedRefNode delegates to whatever node its cell currently points at.
type namedRefNode[T any] struct {
	cell *refCell[T]
}

func (n *namedRefNode[T]) isOptional() bool           { return n.cell.get().isOptional() }
func (n *namedRefNode[T]) run(ctx T) bool             { return n.cell.get().run(ctx) }
func (n *namedRefNode[T]) checkRun(ctx T) checkResult { return n.cell.get().checkRun(ctx) }

// ReferenceRegistry maps case-insensitive names to forward-reference
// cells, so a production can be referenced (ref) before it is defined
// (ref_name), and rebound later — a second ref_name for the same name
// silently overwrites the earlier binding, matching the source behavior
// this library preserves (see DESIGN.md).
type ReferenceRegistry[T any] struct {
	mu    sync.Mutex
	cells map[string]*refCell[T]
}

func newReferenceRegistry[T any]() *ReferenceRegistry[T] {
	return &ReferenceRegistry[T]{cells: make(map[string]*refCell[T])}
}

func (r *ReferenceRegistry[T]) cellFor(name string) *refCell[T] {
	key := strings.ToLower(name)
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.cells[key]
	if !ok {
		c = newRefCell[T]()
		r.cells[key] = c
	}
	return c
}

// record binds name to n, overwriting any earlier binding.
func (r *ReferenceRegistry[T]) record(name string, n Node[T]) {
	r.cellFor(name).set(n)
}

// link returns a Node[T] that forwards to whatever is (or will be) bound
// to name.
func (r *ReferenceRegistry[T]) link(name string) Node[T] {
	return &namedRefNode[T]{cell: r.cellFor(name)}
}
