package core

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// TraceEvent is a single notification handed to a Tracer, either from a
// plain trace() action or from a trace-action bound to an operator (in
// which case Passed is non-nil and reports that attempt's outcome).
type TraceEvent struct {
	Level   int
	Message string
	Passed  *bool
}

// Tracer receives trace events emitted by a built flow expression. It is
// the only way the core observes its own execution from the outside;
// nothing about it is required for correctness.
type Tracer interface {
	Trace(ev TraceEvent)
}

// NoopTracer discards every event. It is the Factory's default.
type NoopTracer struct{}

// Trace implements Tracer.
func (NoopTracer) Trace(TraceEvent) {}

// CompositeTracer fans a single event out to every tracer in Tracers, in
// order.
type CompositeTracer struct {
	Tracers []Tracer
}

// NewCompositeTracer returns a CompositeTracer fanning out to tracers.
func NewCompositeTracer(tracers ...Tracer) *CompositeTracer {
	return &CompositeTracer{Tracers: tracers}
}

// Trace implements Tracer.
func (c *CompositeTracer) Trace(ev TraceEvent) {
	for _, t := range c.Tracers {
		if t != nil {
			t.Trace(ev)
		}
	}
}

// LoggingTracer writes every TraceEvent through log/slog.
type LoggingTracer struct {
	Logger *slog.Logger
}

// NewLoggingTracer returns a LoggingTracer writing through logger, or
// slog.Default() if logger is nil.
func NewLoggingTracer(logger *slog.Logger) *LoggingTracer {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingTracer{Logger: logger}
}

// Trace implements Tracer.
func (t *LoggingTracer) Trace(ev TraceEvent) {
	level := slog.LevelInfo
	if ev.Passed != nil && !*ev.Passed {
		level = slog.LevelWarn
	}
	attrs := []any{slog.Int("level", ev.Level), slog.String("message", ev.Message)}
	if ev.Passed != nil {
		attrs = append(attrs, slog.Bool("passed", *ev.Passed))
	}
	t.Logger.Log(context.Background(), level, "flowexpr_trace", attrs...)
}

// BasicMetrics counts trace events with atomic counters: every event as a
// "trace", and every event carrying an operator pass/fail signal (Passed
// non-nil) additionally as an "attempt", split into passes and fails.
type BasicMetrics struct {
	traces atomic.Int64
	passes atomic.Int64
	fails  atomic.Int64
}

// BasicMetricsSnapshot is an immutable snapshot of BasicMetrics.
type BasicMetricsSnapshot struct {
	Traces   int64
	Attempts int64
	Passes   int64
	Fails    int64
}

// Trace implements Tracer.
func (m *BasicMetrics) Trace(ev TraceEvent) {
	m.traces.Add(1)
	if ev.Passed == nil {
		return
	}
	if *ev.Passed {
		m.passes.Add(1)
	} else {
		m.fails.Add(1)
	}
}

// Snapshot returns the current counter values.
func (m *BasicMetrics) Snapshot() BasicMetricsSnapshot {
	passes := m.passes.Load()
	fails := m.fails.Load()
	return BasicMetricsSnapshot{
		Traces:   m.traces.Load(),
		Attempts: passes + fails,
		Passes:   passes,
		Fails:    fails,
	}
}
