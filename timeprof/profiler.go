package timeprof

import "time"

// nameTotal accumulates the aggregate for one region name on one goroutine.
type nameTotal struct {
	count uint64
	total time.Duration
}

// threadProfiler owns one goroutine's open-entry stack and completed-entry
// list. It is mutated only by its owning goroutine, so the recording path
// needs no locking; ownership moves to the registry's retired list when the
// goroutine calls FinishThread.
type threadProfiler struct {
	tid       uint64
	stack     []Entry
	completed []Entry
	totals    map[string]nameTotal
}

func newThreadProfiler(tid uint64) *threadProfiler {
	return &threadProfiler{
		tid:    tid,
		stack:  make([]Entry, 0, 8),
		totals: make(map[string]nameTotal),
	}
}

// begin pushes a new open entry with a start time of now.
func (tp *threadProfiler) begin(name, detail string) {
	tp.stack = append(tp.stack, Entry{Start: timeNow(), Name: name, Detail: detail})
}

// end pops the top of the stack, stamps its end time and records it.
// An end with no matching begin is a caller contract violation; it is
// silently ignored so instrumentation can never take down the host.
func (tp *threadProfiler) end(granularityUs int64) {
	if len(tp.stack) == 0 {
		return
	}
	e := tp.stack[len(tp.stack)-1]
	tp.stack = tp.stack[:len(tp.stack)-1]
	e.End = timeNow()
	tp.record(e, granularityUs)
}

// record files a completed entry. Entries with a negative duration (the
// clock moved backwards across the interval) are dropped entirely. Entries
// shorter than the granularity threshold are elided from the timeline but
// still count toward their name's total. A total contribution is suppressed
// when an open ancestor on this goroutine's stack carries the same name, so
// recursive and repeatedly nested regions are not double counted.
func (tp *threadProfiler) record(e Entry, granularityUs int64) {
	dur := e.End.Sub(e.Start)
	if dur < 0 || e.durationUs() < 0 {
		return
	}

	if e.durationUs() >= granularityUs {
		tp.completed = append(tp.completed, e)
	}

	for i := range tp.stack {
		if tp.stack[i].Name == e.Name {
			return
		}
	}
	nt := tp.totals[e.Name]
	nt.count++
	nt.total += dur
	tp.totals[e.Name] = nt
}
