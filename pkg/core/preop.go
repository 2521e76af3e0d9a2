package core

// PreOp is a one-shot action attached to an Operator: it runs at most once
// per commit cycle, the first time the operator's predicate is evaluated,
// and is reset (armed again) the next time that predicate succeeds. It
// exists for work that should happen "just before" a production is
// attempted but must not repeat on every backtracking retry of the same
// operator — skipping leading whitespace ahead of a token is the canonical
// use.
type PreOp[T any] struct {
	action func(T)
	hasRun bool
}

// NewPreOp wraps action in a fresh PreOp. A nil action is a valid no-op
// PreOp.
func NewPreOp[T any](action func(T)) *PreOp[T] {
	return &PreOp[T]{action: action}
}

// Run invokes the action if it has not already run since the last Reset.
// Run is nil-receiver safe so that operators with no pre-op can call it
// unconditionally.
func (p *PreOp[T]) Run(ctx T) {
	if p == nil || p.action == nil || p.hasRun {
		return
	}
	p.action(ctx)
	p.hasRun = true
}

// Reset re-arms the pre-op so its next Run call will fire again.
func (p *PreOp[T]) Reset() {
	if p == nil {
		return
	}
	p.hasRun = false
}
