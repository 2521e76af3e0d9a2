package core

// Run drives axiom to completion against ctx and reports whether it
// succeeded. An axiom may be run any number of times, but never by more
// than one goroutine against the same context concurrently — the node
// model is not synchronized for that, by design: a single run is always
// single-threaded.
func Run[T any](axiom Node[T], ctx T) bool {
	if axiom == nil {
		return false
	}
	return axiom.run(ctx)
}

// CheckRun drives axiom to completion against ctx exactly like Run, but
// returns the tri-state lookahead result instead of collapsing it to a
// bool. It is mostly useful to implementers composing further node kinds
// on top of this package's Factory/Builder, or to tests asserting on the
// FailFirst/FailRemainder distinction directly.
func CheckRun[T any](axiom Node[T], ctx T) (passedRun, committed bool) {
	if axiom == nil {
		return false, false
	}
	switch axiom.checkRun(ctx) {
	case passed:
		return true, true
	case failRemainder:
		return false, true
	default:
		return false, false
	}
}
