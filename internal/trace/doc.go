// Package trace is the structured event log of sjavac.
//
// Enable it from the command line:
//
//	sjavac check --trace=- --trace-level=detail src/
//
// # Tracers
//
//   - Nop: discards everything, used when tracing is off
//   - StreamTracer: writes every event to a file or stderr
//   - RingTracer: keeps the last N events, dumped when a run fails
//   - MultiTracer: fan-out to several tracers
//
// # Levels and scopes
//
// LevelPhase emits ScopeDriver and ScopePass events (the whole run and the
// scan/replay/calls passes). LevelDetail adds ScopeModule (one event pair per
// checked file). LevelDebug adds ScopeNode points, one per lexical scope the
// scanner creates.
//
// # Context propagation
//
// The context carries the tracer, the innermost open span and the file
// being checked. Begin reads all three and returns a context in which the
// new span is the parent:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span, ctx := trace.Begin(trace.WithFile(ctx, path), trace.ScopeModule, "check-file")
//	defer span.End("")
package trace
