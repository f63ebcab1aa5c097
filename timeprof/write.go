package timeprof

import (
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"time"

	"fortio.org/safecast"

	"timetrace/tef"
)

// The profiler is one process from the viewer's point of view.
const tracePid = 1

// fallbackSuffix is appended to the fallback base name when the preferred
// output path cannot be opened.
const fallbackSuffix = ".time-trace"

// Write aggregates everything recorded so far and emits one Trace Event
// Format JSON document. Entries are grouped by originating goroutine in
// completion order; per-name totals follow as synthetic rows sorted by
// descending duration (ties by name); metadata events name the process and
// each goroutine. When the profiler was never initialized the document is
// still valid, with an empty traceEvents array.
func Write(w io.Writer) error {
	return tef.Encode(w, buildDocument(instance.Load()))
}

// WriteToFile writes the trace to preferred. If preferred is empty or
// cannot be opened, it writes to fallback ("-" means "out") with a
// ".time-trace" suffix appended instead. The returned error is recoverable;
// recording state is unaffected.
func WriteToFile(preferred, fallback string) error {
	var f *os.File
	var err error
	if preferred != "" {
		f, err = os.Create(preferred)
	}
	if f == nil {
		base := fallback
		if base == "-" {
			base = "out"
		}
		path := base + fallbackSuffix
		f, err = os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to open trace output %q: %w", path, err)
		}
	}
	if err = Write(f); err != nil {
		_ = f.Close()
		return err
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("failed to close trace output %q: %w", f.Name(), err)
	}
	return nil
}

// buildDocument merges all profilers into a trace document. It holds the
// registry lock only while enumerating profilers; retired goroutines come
// first in finish order, live ones follow by ascending id.
func buildDocument(st *state) *tef.File {
	doc := &tef.File{TraceEvents: []tef.Event{}, DisplayTimeUnit: "ns"}
	if st == nil {
		return doc
	}

	st.mu.RLock()
	profilers := make([]*threadProfiler, 0, len(st.retired)+len(st.threads))
	profilers = append(profilers, st.retired...)
	live := make([]*threadProfiler, 0, len(st.threads))
	for _, tp := range st.threads {
		live = append(live, tp)
	}
	st.mu.RUnlock()

	sort.Slice(live, func(i, j int) bool { return live[i].tid < live[j].tid })
	profilers = append(profilers, live...)

	doc.BeginningOfTime = st.epoch.UnixMicro()

	var maxTid int64
	totals := make(map[string]nameTotal)
	for _, tp := range profilers {
		tid := asTid(tp.tid)
		if tid > maxTid {
			maxTid = tid
		}
		for i := range tp.completed {
			e := &tp.completed[i]
			doc.TraceEvents = append(doc.TraceEvents, completeEvent(e, tid, st.epoch))
		}
		for name, nt := range tp.totals {
			merged := totals[name]
			merged.count += nt.count
			merged.total += nt.total
			totals[name] = merged
		}
	}

	appendTotals(doc, totals, maxTid+1)
	appendMetadata(doc, st.procName, profilers)
	return doc
}

func completeEvent(e *Entry, tid int64, epoch time.Time) tef.Event {
	ev := tef.Event{
		Ph:   tef.PhaseComplete,
		Pid:  tracePid,
		Tid:  tid,
		Ts:   e.startUs(epoch),
		Dur:  e.durationUs(),
		Name: e.Name,
	}
	if e.Detail != "" {
		ev.Args = map[string]any{"detail": e.Detail}
	}
	return ev
}

// appendTotals emits one synthetic row per distinct name, each on its own
// tid above the real goroutines so viewers group them apart from the
// timeline.
func appendTotals(doc *tef.File, totals map[string]nameTotal, firstTid int64) {
	type namedTotal struct {
		name string
		nameTotal
	}
	sorted := make([]namedTotal, 0, len(totals))
	for name, nt := range totals {
		sorted = append(sorted, namedTotal{name: name, nameTotal: nt})
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].total != sorted[j].total {
			return sorted[i].total > sorted[j].total
		}
		return sorted[i].name < sorted[j].name
	})

	tid := firstTid
	for _, nt := range sorted {
		durUs := nt.total.Microseconds()
		count, err := safecast.Conv[int64](nt.count)
		if err != nil {
			count = math.MaxInt64
		}
		doc.TraceEvents = append(doc.TraceEvents, tef.Event{
			Ph:   tef.PhaseComplete,
			Pid:  tracePid,
			Tid:  tid,
			Ts:   0,
			Dur:  durUs,
			Name: "Total " + nt.name,
			Args: map[string]any{
				"count":  count,
				"avg ms": (durUs/count + 500) / 1000, // round to nearest ms
			},
		})
		tid++
	}
}

func appendMetadata(doc *tef.File, procName string, profilers []*threadProfiler) {
	metadata := func(name string, tid int64, arg string) tef.Event {
		return tef.Event{
			Ph:   tef.PhaseMetadata,
			Pid:  tracePid,
			Tid:  tid,
			Ts:   0,
			Name: name,
			Args: map[string]any{"name": arg},
		}
	}
	doc.TraceEvents = append(doc.TraceEvents, metadata(tef.NameProcessName, 0, procName))
	for _, tp := range profilers {
		tid := asTid(tp.tid)
		doc.TraceEvents = append(doc.TraceEvents, metadata(tef.NameThreadName, tid, fmt.Sprintf("goroutine %d", tp.tid)))
	}
}

func asTid(tid uint64) int64 {
	v, err := safecast.Conv[int64](tid)
	if err != nil {
		return math.MaxInt64
	}
	return v
}
