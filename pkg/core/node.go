package core

// checkResult is the three-valued outcome of a lookahead check.
type checkResult int

const (
	// passed means the node succeeded outright.
	passed checkResult = iota
	// failFirst means the node declined before committing to anything; a
	// container that marks the node optional may silently skip it.
	failFirst
	// failRemainder means the node committed and then broke partway
	// through; this is a hard failure that must not be swallowed.
	failRemainder
)

// Node is a built flow-expression node. The interface is sealed: both of
// its methods are unexported, so only types defined in this package can
// implement it. Callers obtain Node[T] values from a Factory or a Builder
// and pass them to Run, Builder.Fex, or Factory.RefName — never construct
// one directly.
type Node[T any] interface {
	// run executes the node against ctx, performing any side effects along
	// the way, and reports overall success.
	run(ctx T) bool
	// checkRun is the lookahead form of run: it still performs side
	// effects (it is not a dry run) but reports the tri-state result and
	// suppresses fail-actions on the node's own first, undecided step.
	checkRun(ctx T) checkResult
	// isOptional reports whether a container is allowed to silently skip
	// this node on a failFirst result.
	isOptional() bool
}

// hostNode is a Node that accepts children during construction. Sequence,
// Optional, OneOf, NotOneOf and Repeat implement it; the leaf kinds do not.
type hostNode[T any] interface {
	Node[T]
	appendChild(c Node[T])
}
