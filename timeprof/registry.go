package timeprof

import (
	"math"
	"sync"
	"sync/atomic"
	"time"

	"fortio.org/safecast"
)

// state is the process-wide profiler created by Initialize and destroyed by
// Cleanup. The lock guards only goroutine registration, deregistration and
// the write-time enumeration; the recording fast path never takes it.
type state struct {
	mu      sync.RWMutex
	threads map[uint64]*threadProfiler
	retired []*threadProfiler

	epoch         time.Time
	granularityUs int64
	procName      string
}

// instance is the single process-wide profiler. Every public operation
// checks it first: when nil the call is a no-op, no clock is read and no
// strings are built.
var instance atomic.Pointer[state]

// Initialize sets up the process-wide profiler and registers the calling
// goroutine. granularityUs is the minimum duration, in microseconds, for an
// entry to appear in the emitted timeline; shorter entries still count
// toward their name's total. Calling Initialize again without an
// intervening Cleanup is a no-op.
func Initialize(granularityUs uint64, procName string) {
	gran, err := safecast.Conv[int64](granularityUs)
	if err != nil {
		gran = math.MaxInt64
	}
	st := &state{
		threads:       make(map[uint64]*threadProfiler),
		epoch:         timeNow(),
		granularityUs: gran,
		procName:      procName,
	}
	tid := goroutineID()
	st.threads[tid] = newThreadProfiler(tid)
	instance.CompareAndSwap(nil, st)
}

// Cleanup tears down the profiler. It must only run after any pending
// Write; every profiling call afterwards is a cheap no-op until the next
// Initialize, which starts from a clean state.
func Cleanup() {
	instance.Store(nil)
}

// Enabled reports whether the profiler is initialized. The check is a
// single atomic load.
func Enabled() bool {
	return instance.Load() != nil
}

// FinishThread merges the calling goroutine's recorded entries into the
// registry and discards its profiler. Worker goroutines must call it before
// exiting or their entries are lost; there is no automatic detection of
// goroutine termination.
func FinishThread() {
	st := instance.Load()
	if st == nil {
		return
	}
	tid := goroutineID()

	st.mu.Lock()
	defer st.mu.Unlock()
	if tp, ok := st.threads[tid]; ok {
		st.retired = append(st.retired, tp)
		delete(st.threads, tid)
	}
}

// profilerFor returns the profiler owned by goroutine tid, registering one
// on first use.
func (st *state) profilerFor(tid uint64) *threadProfiler {
	st.mu.RLock()
	tp := st.threads[tid]
	st.mu.RUnlock()
	if tp != nil {
		return tp
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	if tp = st.threads[tid]; tp == nil {
		tp = newThreadProfiler(tid)
		st.threads[tid] = tp
	}
	return tp
}

// lookup returns the profiler owned by goroutine tid, or nil.
func (st *state) lookup(tid uint64) *threadProfiler {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.threads[tid]
}

// Begin opens a region with the given name and detail on the calling
// goroutine. Regions nest; every Begin needs a matching End on every
// control path.
func Begin(name, detail string) {
	st := instance.Load()
	if st == nil {
		return
	}
	st.profilerFor(goroutineID()).begin(name, detail)
}

// BeginFunc is Begin with a lazily produced detail string. The producer
// runs at most once and never when the profiler is disabled.
func BeginFunc(name string, detail func() string) {
	st := instance.Load()
	if st == nil {
		return
	}
	d := ""
	if detail != nil {
		d = detail()
	}
	st.profilerFor(goroutineID()).begin(name, d)
}

// End closes the most recently opened region on the calling goroutine.
// An End with no open region is silently ignored.
func End() {
	st := instance.Load()
	if st == nil {
		return
	}
	tp := st.lookup(goroutineID())
	if tp == nil {
		return
	}
	tp.end(st.granularityUs)
}

// Scope opens a region and returns the matching close, for use with defer:
//
//	defer timeprof.Scope("parse", path)()
func Scope(name, detail string) func() {
	if instance.Load() == nil {
		return func() {}
	}
	Begin(name, detail)
	return End
}

// ScopeFunc is Scope with a lazily produced detail string.
func ScopeFunc(name string, detail func() string) func() {
	if instance.Load() == nil {
		return func() {}
	}
	BeginFunc(name, detail)
	return End
}
