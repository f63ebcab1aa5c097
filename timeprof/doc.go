// Package timeprof provides a hierarchical execution-time tracer for
// toolchain pipelines.
//
// Arbitrary code regions are timestamped with a single-branch cost when the
// profiler is disabled, and exported as a Trace Event Format JSON timeline
// plus per-name "Total" aggregates.
//
// # Usage
//
// The primary API is a scope guard:
//
//	defer timeprof.Scope("parse", file)()
//
// Regions without a natural lexical scope use the implicit per-goroutine
// stack:
//
//	timeprof.Begin("codegen", module)
//	...
//	timeprof.End() // must run on every control path
//
// Finally, an entry can be created in one place, stored, and completed
// elsewhere, possibly on another goroutine:
//
//	h := timeprof.BeginEntry("link", target)
//	...
//	h.Begin() // optional: decouple measurement start from creation
//	...
//	timeprof.EndEntry(h) // records on the completing goroutine
//
// # Lifecycle
//
// The process calls Initialize once before recording and Cleanup once after
// the final Write. Worker goroutines get their profiler on first use and
// must call FinishThread before exiting, or their entries are lost.
//
// Detail strings may be expensive to build; the *Func variants take a
// producer that is invoked at most once and never when the profiler is
// disabled:
//
//	defer timeprof.ScopeFunc("sema", func() string {
//		return fmt.Sprintf("decls=%d", n)
//	})()
//
// # Output
//
// Write emits a single JSON document in the Trace Event Format, viewable in
// Perfetto, chrome://tracing and speedscope. Each completed region becomes a
// complete ("X") event; per-name totals are appended as synthetic rows above
// the real goroutines.
package timeprof
