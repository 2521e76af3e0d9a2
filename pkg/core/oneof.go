package core

// oneOfNode tries each alternative in order via checkRun and commits to
// the first one that passes. A FailRemainder from a committed-then-broken
// alternative is fatal immediately: later alternatives are never tried.
// If every alternative declines (FailFirst), the fail-action fires.
type oneOfNode[T any] struct {
	alternatives []Node[T]
	failAction   func(T)
}

func (n *oneOfNode[T]) appendChild(c Node[T]) { n.alternatives = append(n.alternatives, c) }
func (n *oneOfNode[T]) isOptional() bool      { return false }

func (n *oneOfNode[T]) run(ctx T) bool {
	switch oneOfRaw(ctx, n.alternatives) {
	case passed:
		return true
	case failRemainder:
		return false
	default:
		if n.failAction != nil {
			n.failAction(ctx)
		}
		return false
	}
}

func (n *oneOfNode[T]) checkRun(ctx T) checkResult {
	return oneOfRaw(ctx, n.alternatives)
}

// oneOfRaw never touches a fail-action; it is shared by OneOf's own
// checkRun and by NotOneOf, which negates the non-hard outcomes.
func oneOfRaw[T any](ctx T, alternatives []Node[T]) checkResult {
	for _, alt := range alternatives {
		switch r := alt.checkRun(ctx); r {
		case passed:
			return passed
		case failRemainder:
			return failRemainder
		case failFirst:
			continue
		}
	}
	return failFirst
}
