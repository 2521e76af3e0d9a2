package core

// buildState carries the mutable state threaded through a single build:
// the current host accepting new children, the most recently added
// first-class node (the target of on_fail), the most recently added
// Operator (the target of act_value/trace_op/pre_op), the shared globals
// (registry, tracer, tracing toggle, global pre-op, default skip), all of
// which outlive any one nested build.
type buildState[T any] struct {
	host         hostNode[T]
	lastAdded    Node[T]
	lastOperator *operatorNode[T]

	registry       *ReferenceRegistry[T]
	tracer         Tracer
	tracingEnabled bool
	globalPreOp    *PreOp[T]
	defaultSkip    func(T)
}

// absorbGlobals pulls the (possibly updated) global settings out of a
// nested build back into the parent scope, so a global_pre_op, trace_on
// or equivalent change made inside a nested closure is visible to
// siblings built afterward at the outer level.
func (st *buildState[T]) absorbGlobals(from *buildState[T]) {
	st.globalPreOp = from.globalPreOp
	st.tracingEnabled = from.tracingEnabled
	st.defaultSkip = from.defaultSkip
}

func newNestedBuilder[T any](host hostNode[T], parent *buildState[T]) *Builder[T] {
	return &Builder[T]{st: &buildState[T]{
		host:           host,
		registry:       parent.registry,
		tracer:         parent.tracer,
		tracingEnabled: parent.tracingEnabled,
		globalPreOp:    parent.globalPreOp,
		defaultSkip:    parent.defaultSkip,
	}}
}
