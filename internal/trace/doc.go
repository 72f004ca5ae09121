// Package trace records what the renderer and the CLI are doing.
//
// Tracing is off by default and costs a nil check when disabled. The CLI
// enables it with flags:
//
//	symname check --trace=- --trace-level=query graph.toml
//
// # Tracers
//
//   - Nop: disabled tracing
//   - StreamTracer: writes every event immediately (text or NDJSON)
//   - RingTracer: keeps the last N events for a dump after a fatal panic
//   - MultiTracer: fans out to several tracers
//
// # Levels and scopes
//
// Every event carries a Scope. A Level admits scopes up to a bound:
// LevelStage admits command and stage events, LevelQuery adds one event per
// query, LevelDebug adds one span per top-level render and per formatted
// diagnostic argument.
//
// # Context propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopeStage, "load", 0)
//	defer span.End("")
package trace
