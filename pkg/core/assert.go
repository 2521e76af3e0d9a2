package core

// assertNode behaves exactly like Operator except it never has a pre-op:
// it is meant for hard conditions whose predicate has no "just before"
// setup step to run.
type assertNode[T any] struct {
	pred        func(T, *ValueSlot) bool
	valueAction func(any)
	traceAction func(T, *ValueSlot, bool)
	failAction  func(T)
}

func (n *assertNode[T]) isOptional() bool { return false }

func (n *assertNode[T]) run(ctx T) bool {
	return runLeaf[T](ctx, n.pred, nil, n.valueAction, n.traceAction, n.failAction, false) == passed
}

func (n *assertNode[T]) checkRun(ctx T) checkResult {
	return runLeaf[T](ctx, n.pred, nil, n.valueAction, n.traceAction, n.failAction, true)
}
