package batch

import (
	"fmt"
	"sync"

	"github.com/flowexpr-go/flowexpr/pkg/core"
)

// AxiomRegistry maps axiom names to built axioms, so a Runner can
// look one up by the name carried on a dequeued Job. It is the batch
// analogue of the teacher's workflowRegistry: a simple, case-sensitive,
// mutex-protected map with an explicit "already registered" error
// instead of core.ReferenceRegistry's silent overwrite, since accidentally
// re-registering a production axiom under the same name is a
// configuration bug worth surfacing, not a forward-reference pattern to
// support.
type AxiomRegistry[T any] struct {
	mu     sync.RWMutex
	axioms map[string]core.Node[T]
}

// NewAxiomRegistry returns an empty AxiomRegistry.
func NewAxiomRegistry[T any]() *AxiomRegistry[T] {
	return &AxiomRegistry[T]{axioms: make(map[string]core.Node[T])}
}

// Register binds name to axiom. It returns an error if name is already
// registered.
func (r *AxiomRegistry[T]) Register(name string, axiom core.Node[T]) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.axioms[name]; exists {
		return fmt.Errorf("flowexpr: axiom %q already registered", name)
	}
	r.axioms[name] = axiom
	return nil
}

// MustRegister is Register, panicking on error.
func (r *AxiomRegistry[T]) MustRegister(name string, axiom core.Node[T]) {
	if err := r.Register(name, axiom); err != nil {
		panic(err)
	}
}

// Lookup returns the axiom bound to name, if any.
func (r *AxiomRegistry[T]) Lookup(name string) (core.Node[T], bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	axiom, ok := r.axioms[name]
	return axiom, ok
}
