package core

// Builder is the fluent, stateful surface used inside a Factory's
// construction closures. A Builder is only ever handed to a closure by
// this package; it is never constructed directly by callers.
type Builder[T any] struct {
	st *buildState[T]
}

// --- containers -------------------------------------------------------

// Seq appends a Sequence built by build. A following OnFail is ignored:
// OnFail does not bind to a Sequence.
func (b *Builder[T]) Seq(build func(*Builder[T])) *Builder[T] {
	host := &sequenceNode[T]{}
	b.buildChild(host, build)
	return b
}

// Opt appends an Optional built by build.
func (b *Builder[T]) Opt(build func(*Builder[T])) *Builder[T] {
	host := &optionalNode[T]{}
	b.buildChild(host, build)
	return b
}

// OneOf appends a OneOf whose alternatives are every top-level node the
// closure adds.
func (b *Builder[T]) OneOf(build func(*Builder[T])) *Builder[T] {
	host := &oneOfNode[T]{}
	b.buildChild(host, build)
	return b
}

// NotOneOf appends a NotOneOf whose alternatives are every top-level node
// the closure adds.
func (b *Builder[T]) NotOneOf(build func(*Builder[T])) *Builder[T] {
	host := &notOneOfNode[T]{}
	b.buildChild(host, build)
	return b
}

// BreakOn is an alias for NotOneOf, named for its common use: detecting a
// forbidden lookahead token and breaking out of a repeat.
func (b *Builder[T]) BreakOn(build func(*Builder[T])) *Builder[T] {
	return b.NotOneOf(build)
}

// OptOneOf appends an Optional wrapping a OneOf.
func (b *Builder[T]) OptOneOf(build func(*Builder[T])) *Builder[T] {
	oneOf := &oneOfNode[T]{}
	nb := newNestedBuilder[T](oneOf, b.st)
	if build != nil {
		build(nb)
	}
	b.st.absorbGlobals(nb.st)
	opt := &optionalNode[T]{}
	opt.appendChild(oneOf)
	b.st.host.appendChild(opt)
	b.st.lastAdded = opt
	b.st.lastOperator = nil
	return b
}

// Rep appends a Repeat running its body at least min and at most max
// times; max<0 means unbounded.
func (b *Builder[T]) Rep(min, max int, build func(*Builder[T])) *Builder[T] {
	normMin, maxExtra := normalizeRepeat(min, max)
	bodySeq := &sequenceNode[T]{}
	nb := newNestedBuilder[T](bodySeq, b.st)
	if build != nil {
		build(nb)
	}
	b.st.absorbGlobals(nb.st)
	rep := &repeatNode[T]{body: bodySeq, min: normMin, maxExtra: maxExtra}
	b.st.host.appendChild(rep)
	b.st.lastAdded = rep
	b.st.lastOperator = nil
	return b
}

// RepN appends a Repeat running its body exactly n times.
func (b *Builder[T]) RepN(n int, build func(*Builder[T])) *Builder[T] {
	return b.Rep(n, n, build)
}

// Rep0N appends a Repeat running its body zero or more times.
func (b *Builder[T]) Rep0N(build func(*Builder[T])) *Builder[T] {
	return b.Rep(0, -1, build)
}

// Rep1N appends a Repeat running its body one or more times.
func (b *Builder[T]) Rep1N(build func(*Builder[T])) *Builder[T] {
	return b.Rep(1, -1, build)
}

// RepOneOf appends a Repeat whose body is a OneOf, running it at least
// min and at most max times; max<0 means unbounded.
func (b *Builder[T]) RepOneOf(min, max int, build func(*Builder[T])) *Builder[T] {
	normMin, maxExtra := normalizeRepeat(min, max)
	oneOf := &oneOfNode[T]{}
	nb := newNestedBuilder[T](oneOf, b.st)
	if build != nil {
		build(nb)
	}
	b.st.absorbGlobals(nb.st)
	bodySeq := &sequenceNode[T]{children: []Node[T]{oneOf}}
	rep := &repeatNode[T]{body: bodySeq, min: normMin, maxExtra: maxExtra}
	b.st.host.appendChild(rep)
	b.st.lastAdded = rep
	b.st.lastOperator = nil
	return b
}

func (b *Builder[T]) buildChild(host hostNode[T], build func(*Builder[T])) {
	nb := newNestedBuilder[T](host, b.st)
	if build != nil {
		build(nb)
	}
	b.st.absorbGlobals(nb.st)
	b.st.host.appendChild(host)
	b.st.lastAdded = host
	b.st.lastOperator = nil
}

// --- leaves -------------------------------------------------------------

// Op appends an Operator whose predicate receives a ValueSlot it may fill
// with a captured value.
func (b *Builder[T]) Op(pred func(ctx T, slot *ValueSlot) bool) *Builder[T] {
	op := &operatorNode[T]{pred: pred, preOp: b.st.globalPreOp}
	b.st.host.appendChild(op)
	b.st.lastAdded = op
	b.st.lastOperator = op
	return b
}

// OpBool appends an Operator around a predicate that never captures a
// value.
func (b *Builder[T]) OpBool(pred func(ctx T) bool) *Builder[T] {
	return b.Op(func(ctx T, _ *ValueSlot) bool {
		if pred == nil {
			return false
		}
		return pred(ctx)
	})
}

// ValidOp appends an Operator that always succeeds, running act purely
// for its side effect — useful as an unconditional committing step.
func (b *Builder[T]) ValidOp(act func(ctx T)) *Builder[T] {
	return b.Op(func(ctx T, _ *ValueSlot) bool {
		if act != nil {
			act(ctx)
		}
		return true
	})
}

// Assert appends an Assert around pred, with an optional fail callback.
func (b *Builder[T]) Assert(pred func(ctx T, slot *ValueSlot) bool, fail func(T)) *Builder[T] {
	a := &assertNode[T]{pred: pred, failAction: fail}
	b.st.host.appendChild(a)
	b.st.lastAdded = a
	b.st.lastOperator = nil
	return b
}

// AssertBool appends an Assert around a predicate that never captures a
// value.
func (b *Builder[T]) AssertBool(pred func(ctx T) bool, fail func(T)) *Builder[T] {
	return b.Assert(func(ctx T, _ *ValueSlot) bool {
		if pred == nil {
			return false
		}
		return pred(ctx)
	}, fail)
}

// Act appends a non-committing Action.
func (b *Builder[T]) Act(callback func(T)) *Builder[T] {
	b.st.host.appendChild(&actionNode[T]{callback: callback})
	return b
}

// DefaultAct appends a committing Action: at the head of a sequence it
// commits the sequence on its own.
func (b *Builder[T]) DefaultAct(callback func(T)) *Builder[T] {
	b.st.host.appendChild(&actionNode[T]{callback: callback, committing: true})
	return b
}

// ValidAct is an alias for DefaultAct.
func (b *Builder[T]) ValidAct(callback func(T)) *Builder[T] {
	return b.DefaultAct(callback)
}

// RepAct appends a RepAction invoking callback count times.
func (b *Builder[T]) RepAct(count int, callback func(T, int)) *Builder[T] {
	b.st.host.appendChild(&repActionNode[T]{count: count, callback: callback})
	return b
}

// Fail appends a Fail node, always failing and always running callback.
func (b *Builder[T]) Fail(callback func(T)) *Builder[T] {
	b.st.host.appendChild(&failNode[T]{callback: callback})
	return b
}

// --- sugar ---------------------------------------------------------------

// OnFail binds callback as the fail-action of the most recently added
// first-class node (Operator, Repeat, OneOf, NotOneOf or Assert). It is
// silently ignored if the last node added was not one of those kinds, or
// if nothing has been added yet.
func (b *Builder[T]) OnFail(callback func(T)) *Builder[T] {
	switch n := b.st.lastAdded.(type) {
	case *operatorNode[T]:
		n.failAction = callback
	case *repeatNode[T]:
		n.failAction = callback
	case *oneOfNode[T]:
		n.failAction = callback
	case *notOneOfNode[T]:
		n.failAction = callback
	case *assertNode[T]:
		n.failAction = callback
	}
	return b
}

// RefName binds name (case-insensitive) to the current host, the
// production currently being built. A second RefName for the same name
// silently overwrites the first.
func (b *Builder[T]) RefName(name string) *Builder[T] {
	b.st.registry.record(name, b.st.host)
	return b
}

// Ref appends a forward (or backward) reference to whatever is bound to
// name.
func (b *Builder[T]) Ref(name string) *Builder[T] {
	b.st.host.appendChild(b.st.registry.link(name))
	return b
}

// OptSelf appends an Optional wrapping a reference back to the current
// host, the idiom for "recursively match more of the same production".
func (b *Builder[T]) OptSelf() *Builder[T] {
	cell := &refCell[T]{target: b.st.host}
	opt := &optionalNode[T]{}
	opt.appendChild(&namedRefNode[T]{cell: cell})
	b.st.host.appendChild(opt)
	return b
}

// Fex splices already-built nodes into the current host as children.
func (b *Builder[T]) Fex(nodes ...Node[T]) *Builder[T] {
	for _, n := range nodes {
		if n != nil {
			b.st.host.appendChild(n)
		}
	}
	return b
}

// GlobalPreOp sets the PreOp assigned to every Operator created from now
// on (within this build scope and any nested one); a nil action clears
// it. Operators already created keep the PreOp they were given at
// creation time.
func (b *Builder[T]) GlobalPreOp(action func(T)) *Builder[T] {
	if action == nil {
		b.st.globalPreOp = nil
	} else {
		b.st.globalPreOp = NewPreOp(action)
	}
	return b
}

// PreOp replaces the most recently added Operator's own PreOp. It is
// silently ignored if no Operator has been added in the current build
// scope since the last container or Assert.
func (b *Builder[T]) PreOp(action func(T)) *Builder[T] {
	if b.st.lastOperator != nil {
		b.st.lastOperator.preOp = NewPreOp(action)
	}
	return b
}

// GlobalSkip binds the factory's configured default-skip callback as the
// global pre-op.
func (b *Builder[T]) GlobalSkip() *Builder[T] {
	return b.GlobalPreOp(b.st.defaultSkip)
}

// Skip binds the factory's configured default-skip callback as the most
// recently added Operator's own pre-op.
func (b *Builder[T]) Skip() *Builder[T] {
	return b.PreOp(b.st.defaultSkip)
}

// Trace appends a plain Action that emits a TraceEvent built from fmt,
// when tracing was enabled at the time of this call and a Tracer is
// configured.
func (b *Builder[T]) Trace(fmt func(ctx T) string, level int) *Builder[T] {
	st := b.st
	enabled := st.tracingEnabled
	b.st.host.appendChild(&actionNode[T]{callback: func(ctx T) {
		if enabled && st.tracer != nil && fmt != nil {
			st.tracer.Trace(TraceEvent{Level: level, Message: fmt(ctx)})
		}
	}})
	return b
}

// TraceOp binds a trace-action to the most recently added Operator that
// emits a TraceEvent (with Passed set) on every attempt, regardless of
// outcome, provided tracing was enabled at the time of this call. It is
// silently ignored if no Operator has been added in the current build
// scope since the last container or Assert.
func (b *Builder[T]) TraceOp(fmt func(ctx T) string, level int) *Builder[T] {
	if b.st.lastOperator == nil {
		return b
	}
	st := b.st
	enabled := st.tracingEnabled
	b.st.lastOperator.traceAction = func(ctx T, _ *ValueSlot, ok bool) {
		if enabled && st.tracer != nil && fmt != nil {
			p := ok
			st.tracer.Trace(TraceEvent{Level: level, Message: fmt(ctx), Passed: &p})
		}
	}
	return b
}

// TraceOpWithValue is TraceOp, but fmt also sees the value in the
// operator's ValueSlot (nil if the predicate stored none).
func (b *Builder[T]) TraceOpWithValue(fmt func(ctx T, value any) string, level int) *Builder[T] {
	if b.st.lastOperator == nil {
		return b
	}
	st := b.st
	enabled := st.tracingEnabled
	b.st.lastOperator.traceAction = func(ctx T, slot *ValueSlot, ok bool) {
		if enabled && st.tracer != nil && fmt != nil {
			p := ok
			st.tracer.Trace(TraceEvent{Level: level, Message: fmt(ctx, slot.Value()), Passed: &p})
		}
	}
	return b
}

// TraceOn toggles whether Trace/TraceOp/TraceOpWithValue calls made after
// it emit; bindings made earlier keep the setting they were made under.
func (b *Builder[T]) TraceOn(enabled bool) *Builder[T] {
	b.st.tracingEnabled = enabled
	return b
}

// ActValue binds handler as the value-action of the most recently added
// Operator: handler runs whenever that operator succeeds with a non-nil
// value assignable to V in its ValueSlot. It is a free function, not a
// method, because Go methods cannot introduce their own type parameters.
func ActValue[T, V any](b *Builder[T], handler func(V)) *Builder[T] {
	if b.st.lastOperator != nil && handler != nil {
		b.st.lastOperator.valueAction = func(v any) {
			if typed, ok := v.(V); ok {
				handler(typed)
			}
		}
	}
	return b
}
