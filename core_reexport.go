package flowexpr

import (
	"log/slog"

	"github.com/flowexpr-go/flowexpr/pkg/core"
)

// Node, Builder and Factory are the pkg/core types re-exported here so
// that a caller only needs to import this package for the common case.
// Implementers building their own node kinds on top of the sealed model
// still import pkg/core directly.
type (
	Node[T any]    = core.Node[T]
	Builder[T any] = core.Builder[T]
	Factory[T any] = core.Factory[T]
	Option[T any]  = core.Option[T]
	ValueSlot      = core.ValueSlot
	PreOp[T any]   = core.PreOp[T]

	TraceEvent           = core.TraceEvent
	Tracer               = core.Tracer
	NoopTracer           = core.NoopTracer
	CompositeTracer      = core.CompositeTracer
	LoggingTracer        = core.LoggingTracer
	BasicMetrics         = core.BasicMetrics
	BasicMetricsSnapshot = core.BasicMetricsSnapshot
)

// New re-exports core.New.
func New[T any](opts ...Option[T]) *Factory[T] { return core.New(opts...) }

// WithTracer re-exports core.WithTracer.
func WithTracer[T any](t Tracer) Option[T] { return core.WithTracer[T](t) }

// WithTracingEnabled re-exports core.WithTracingEnabled.
func WithTracingEnabled[T any](enabled bool) Option[T] { return core.WithTracingEnabled[T](enabled) }

// WithDefaultSkip re-exports core.WithDefaultSkip.
func WithDefaultSkip[T any](skip func(T)) Option[T] { return core.WithDefaultSkip(skip) }

// WithGlobalPreOp re-exports core.WithGlobalPreOp.
func WithGlobalPreOp[T any](action func(T)) Option[T] { return core.WithGlobalPreOp(action) }

// Run re-exports core.Run.
func Run[T any](axiom Node[T], ctx T) bool { return core.Run(axiom, ctx) }

// CheckRun re-exports core.CheckRun.
func CheckRun[T any](axiom Node[T], ctx T) (passedRun, committed bool) {
	return core.CheckRun(axiom, ctx)
}

// ActValue re-exports core.ActValue. It must stay a free function, not a
// method, for the same reason core.ActValue does: a Go method cannot
// introduce a type parameter beyond its receiver's.
func ActValue[T, V any](b *Builder[T], handler func(V)) *Builder[T] {
	return core.ActValue(b, handler)
}

// NewCompositeTracer re-exports core.NewCompositeTracer.
func NewCompositeTracer(tracers ...Tracer) *CompositeTracer {
	return core.NewCompositeTracer(tracers...)
}

// NewLoggingTracer re-exports core.NewLoggingTracer.
func NewLoggingTracer(logger *slog.Logger) *LoggingTracer {
	return core.NewLoggingTracer(logger)
}
