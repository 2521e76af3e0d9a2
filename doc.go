// Package flowexpr is a library for constructing and executing flow
// expressions: declaratively built, tree-structured programs that drive
// a user-supplied context through operations, decisions, repetitions
// and side effects. The canonical use is recursive-descent parsing, but
// any state machine driven step by step against a context fits.
//
// The node model, fluent builder, factory and execution driver live in
// pkg/core and are re-exported here so callers need only
// import "github.com/flowexpr-go/flowexpr". This package additionally
// provides the ambient/domain stack a production release of this kind
// of library carries: retry sugar for flaky operator predicates
// (Retry/RetryOp), and LocalRunner/NewSQLiteBundle convenience
// constructors bundling a run-recording Store, a job Queue and a
// batch.Runner.
//
// A worked Context implementation and scanner-bound operators live in
// ext/textscan.
package flowexpr
