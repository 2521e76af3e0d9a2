package core

// Factory is the top-level entry point: it owns the ReferenceRegistry and
// the ambient builder globals (tracer, tracing toggle, default skip,
// global pre-op) shared by every axiom built from it, and exposes a
// top-level constructor for each composite node kind. Each constructor
// returns a handle the caller can run directly, splice into another
// build with Fex, or bind to a name with RefName.
type Factory[T any] struct {
	base *buildState[T]
}

// Option configures a Factory at construction time.
type Option[T any] func(*Factory[T])

// WithTracer sets the Tracer every trace/trace_op binding reports to.
func WithTracer[T any](t Tracer) Option[T] {
	return func(f *Factory[T]) { f.base.tracer = t }
}

// WithTracingEnabled sets the initial tracing-enabled state.
func WithTracingEnabled[T any](enabled bool) Option[T] {
	return func(f *Factory[T]) { f.base.tracingEnabled = enabled }
}

// WithDefaultSkip sets the callback GlobalSkip/Skip bind.
func WithDefaultSkip[T any](skip func(T)) Option[T] {
	return func(f *Factory[T]) { f.base.defaultSkip = skip }
}

// WithGlobalPreOp sets the PreOp every Operator is given at creation,
// until a nested GlobalPreOp call changes it.
func WithGlobalPreOp[T any](action func(T)) Option[T] {
	return func(f *Factory[T]) { f.base.globalPreOp = NewPreOp(action) }
}

// New creates a Factory with NoopTracer and tracing disabled by default.
func New[T any](opts ...Option[T]) *Factory[T] {
	f := &Factory[T]{base: &buildState[T]{
		registry: newReferenceRegistry[T](),
		tracer:   NoopTracer{},
	}}
	for _, o := range opts {
		o(f)
	}
	return f
}

func (f *Factory[T]) build(host hostNode[T], build func(*Builder[T])) Node[T] {
	nb := newNestedBuilder[T](host, f.base)
	if build != nil {
		build(nb)
	}
	f.base.absorbGlobals(nb.st)
	return host
}

// Seq builds a top-level Sequence.
func (f *Factory[T]) Seq(build func(*Builder[T])) Node[T] {
	return f.build(&sequenceNode[T]{}, build)
}

// Opt builds a top-level Optional.
func (f *Factory[T]) Opt(build func(*Builder[T])) Node[T] {
	return f.build(&optionalNode[T]{}, build)
}

// OneOf builds a top-level OneOf.
func (f *Factory[T]) OneOf(build func(*Builder[T])) Node[T] {
	return f.build(&oneOfNode[T]{}, build)
}

// NotOneOf builds a top-level NotOneOf.
func (f *Factory[T]) NotOneOf(build func(*Builder[T])) Node[T] {
	return f.build(&notOneOfNode[T]{}, build)
}

// BreakOn is an alias for NotOneOf.
func (f *Factory[T]) BreakOn(build func(*Builder[T])) Node[T] {
	return f.NotOneOf(build)
}

// OptOneOf builds a top-level Optional wrapping a OneOf.
func (f *Factory[T]) OptOneOf(build func(*Builder[T])) Node[T] {
	oneOf := &oneOfNode[T]{}
	f.build(oneOf, build)
	opt := &optionalNode[T]{}
	opt.appendChild(oneOf)
	return opt
}

// Rep builds a top-level Repeat running its body at least min and at
// most max times; max<0 means unbounded.
func (f *Factory[T]) Rep(min, max int, build func(*Builder[T])) Node[T] {
	normMin, maxExtra := normalizeRepeat(min, max)
	bodySeq := &sequenceNode[T]{}
	f.build(bodySeq, build)
	return &repeatNode[T]{body: bodySeq, min: normMin, maxExtra: maxExtra}
}

// RepN builds a top-level Repeat running its body exactly n times.
func (f *Factory[T]) RepN(n int, build func(*Builder[T])) Node[T] {
	return f.Rep(n, n, build)
}

// Rep0N builds a top-level Repeat running its body zero or more times.
func (f *Factory[T]) Rep0N(build func(*Builder[T])) Node[T] {
	return f.Rep(0, -1, build)
}

// Rep1N builds a top-level Repeat running its body one or more times.
func (f *Factory[T]) Rep1N(build func(*Builder[T])) Node[T] {
	return f.Rep(1, -1, build)
}

// RepOneOf builds a top-level Repeat whose body is a OneOf.
func (f *Factory[T]) RepOneOf(min, max int, build func(*Builder[T])) Node[T] {
	normMin, maxExtra := normalizeRepeat(min, max)
	oneOf := &oneOfNode[T]{}
	f.build(oneOf, build)
	bodySeq := &sequenceNode[T]{children: []Node[T]{oneOf}}
	return &repeatNode[T]{body: bodySeq, min: normMin, maxExtra: maxExtra}
}

// RefName binds name (case-insensitive) to n, overwriting any earlier
// binding for the same name.
func (f *Factory[T]) RefName(name string, n Node[T]) *Factory[T] {
	f.base.registry.record(name, n)
	return f
}

// Ref returns a node forwarding to whatever is (or will be) bound to
// name.
func (f *Factory[T]) Ref(name string) Node[T] {
	return f.base.registry.link(name)
}
