// Package trace provides span tracing for testgen runs.
//
// A run opens a driver span; each pipeline stage opens a stage span and every
// file gets file-scoped events under it. Tracing is off by default and costs
// nothing when disabled.
//
// # Usage
//
//	testgen --trace=- --trace-level=detail src/*.cs
//
// # Tracers
//
//   - Nop: zero-overhead no-op tracer
//   - StreamTracer: immediate write to a file or stderr
//   - RingTracer: last N events in memory, dumped at exit
//   - MultiTracer: fan-out to several tracers
//
// # Levels
//
//   - LevelOff: no tracing
//   - LevelError: reserved; emits no spans
//   - LevelPhase: driver and stage boundaries
//   - LevelDetail: per-file events
//   - LevelDebug: everything
//
// # Context Propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//
//	ctx, run := trace.StartSpan(ctx, trace.ScopeDriver, "pipeline")
//	read := run.Child(trace.ScopeStage, "read")
//	read.Child(trace.ScopeFile, "read:Order.cs").Attr("bytes", "812").End("")
//	read.End("")
package trace
