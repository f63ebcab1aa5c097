package timeprof

import "time"

// Entry is one recorded timed interval. Name and Detail are copied at
// creation time so callers can pass temporaries; keep their construction
// cheap, or use the *Func variants to defer it.
type Entry struct {
	Start  time.Time
	End    time.Time
	Name   string
	Detail string
}

// startUs returns the entry's start offset in microseconds relative to epoch.
func (e *Entry) startUs(epoch time.Time) int64 {
	return microsBetween(epoch, e.Start)
}

// durationUs returns the entry's duration in microseconds.
func (e *Entry) durationUs() int64 {
	return microsBetween(e.Start, e.End)
}

// EntryHandle is a created-but-not-yet-recorded entry. It has no goroutine
// affinity: it may be created in one place, carried across goroutines, and
// handed to EndEntry wherever the measured work completes. A handle has
// exactly one logical owner; EndEntry consumes it, and a consumed or
// disabled handle is inert.
type EntryHandle struct {
	name   string
	detail string
	start  time.Time
	live   bool
}

// BeginEntry returns a handle with a start time of now. Record it later with
// EndEntry once the tracked work has completed. When the profiler is
// disabled the returned handle is inert and no clock is read.
func BeginEntry(name, detail string) *EntryHandle {
	if instance.Load() == nil {
		return &EntryHandle{}
	}
	return &EntryHandle{name: name, detail: detail, start: timeNow(), live: true}
}

// BeginEntryFunc is BeginEntry with a lazily produced detail string. The
// producer runs at most once and never when the profiler is disabled.
func BeginEntryFunc(name string, detail func() string) *EntryHandle {
	if instance.Load() == nil {
		return &EntryHandle{}
	}
	d := ""
	if detail != nil {
		d = detail()
	}
	return &EntryHandle{name: name, detail: d, start: timeNow(), live: true}
}

// Begin resets the handle's start time to now. By default a handle takes its
// start time from its creation; when the handle was constructed early to
// keep detail building out of the measured section, call Begin to mark where
// measurement should really start.
func (h *EntryHandle) Begin() {
	if h == nil || !h.live {
		return
	}
	h.start = timeNow()
}

// EndEntry stamps the handle's end time and records it on the calling
// goroutine's profiler, which need not be the goroutine that created it.
// The handle is consumed; further use is a no-op.
func EndEntry(h *EntryHandle) {
	st := instance.Load()
	if st == nil || h == nil || !h.live {
		return
	}
	h.live = false
	e := Entry{Start: h.start, End: timeNow(), Name: h.name, Detail: h.detail}
	st.profilerFor(goroutineID()).record(e, st.granularityUs)
}
