package core

// operatorNode is the leaf that does the actual work of consuming input
// or otherwise testing the context: a predicate, an optional pre-op run
// just before it, an optional value-action fed from the predicate's
// ValueSlot, an optional trace-action observing every attempt, and a
// fail-action fired only on a true (non-lookahead) failure.
type operatorNode[T any] struct {
	pred        func(T, *ValueSlot) bool
	preOp       *PreOp[T]
	valueAction func(any)
	traceAction func(T, *ValueSlot, bool)
	failAction  func(T)
}

func (n *operatorNode[T]) isOptional() bool { return false }

func (n *operatorNode[T]) run(ctx T) bool {
	return runLeaf(ctx, n.pred, n.preOp, n.valueAction, n.traceAction, n.failAction, false) == passed
}

func (n *operatorNode[T]) checkRun(ctx T) checkResult {
	return runLeaf(ctx, n.pred, n.preOp, n.valueAction, n.traceAction, n.failAction, true)
}

// runLeaf implements the shared five-step evaluation order used by both
// Operator and Assert:
//  1. run the pre-op (a no-op for Assert, which never has one),
//  2. evaluate the predicate against a fresh ValueSlot,
//  3. invoke the trace-action, if any, with the outcome,
//  4. on success, reset the pre-op and invoke the value-action if the
//     slot was filled,
//  5. on failure, invoke the fail-action unless this is a lookahead call.
func runLeaf[T any](
	ctx T,
	pred func(T, *ValueSlot) bool,
	preOp *PreOp[T],
	valueAction func(any),
	traceAction func(T, *ValueSlot, bool),
	failAction func(T),
	checkMode bool,
) checkResult {
	preOp.Run(ctx)
	var slot ValueSlot
	ok := false
	if pred != nil {
		ok = pred(ctx, &slot)
	}
	if traceAction != nil {
		traceAction(ctx, &slot, ok)
	}
	if ok {
		preOp.Reset()
		if slot.Filled() && valueAction != nil {
			valueAction(slot.Value())
		}
		return passed
	}
	if !checkMode && failAction != nil {
		failAction(ctx)
	}
	return failFirst
}
