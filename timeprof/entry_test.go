package timeprof

import (
	"testing"
	"time"

	"timetrace/tef"
)

func TestCrossGoroutineHandoff(t *testing.T) {
	Initialize(0, "test")
	defer Cleanup()

	creatorTid := goroutineID()
	h := BeginEntry("handoff", "moved")

	var workerTid uint64
	done := make(chan struct{})
	go func() {
		defer close(done)
		workerTid = goroutineID()
		h.Begin()
		EndEntry(h)
		FinishThread()
	}()
	<-done

	doc := writeDoc(t)
	events := eventsNamed(doc, "handoff")
	if len(events) != 1 {
		t.Fatalf("expected one handoff entry, got %d", len(events))
	}
	if got := uint64(events[0].Tid); got != workerTid {
		t.Fatalf("handoff entry grouped under tid %d, want completing goroutine %d", got, workerTid)
	}
	if uint64(events[0].Tid) == creatorTid {
		t.Fatalf("handoff entry must not be grouped under the creating goroutine")
	}
}

func TestHandleBeginReArmsStart(t *testing.T) {
	Initialize(0, "test")
	defer Cleanup()

	h := BeginEntry("rearm", "")
	time.Sleep(20 * time.Millisecond)
	h.Begin()
	EndEntry(h)

	doc := writeDoc(t)
	events := eventsNamed(doc, "rearm")
	if len(events) != 1 {
		t.Fatalf("expected one rearm entry, got %d", len(events))
	}
	if events[0].Dur >= 15_000 {
		t.Fatalf("Begin must reset the start time past the 20ms gap, duration = %dµs", events[0].Dur)
	}
}

func TestEndEntryConsumesHandle(t *testing.T) {
	Initialize(0, "test")
	defer Cleanup()

	h := BeginEntry("once", "")
	EndEntry(h)
	EndEntry(h)
	h.Begin() // inert after consumption
	EndEntry(nil)

	doc := writeDoc(t)
	if got := len(eventsNamed(doc, "once")); got != 1 {
		t.Fatalf("a handle must record at most one entry, got %d", got)
	}
}

func TestBeginEntryFuncEvaluatesDetailOnce(t *testing.T) {
	Initialize(0, "test")
	defer Cleanup()

	calls := 0
	h := BeginEntryFunc("lazy", func() string {
		calls++
		return "built"
	})
	h.Begin()
	EndEntry(h)

	if calls != 1 {
		t.Fatalf("detail producer ran %d times, want 1", calls)
	}
	doc := writeDoc(t)
	events := eventsNamed(doc, "lazy")
	if len(events) != 1 || events[0].Detail() != "built" {
		t.Fatalf("lazy detail not recorded: %+v", events)
	}
}

func TestFinishThreadPreservesEntries(t *testing.T) {
	Initialize(0, "test")
	defer Cleanup()

	var workerTid uint64
	done := make(chan struct{})
	go func() {
		defer close(done)
		workerTid = goroutineID()
		Begin("worker", "")
		End()
		FinishThread()
	}()
	<-done

	doc := writeDoc(t)
	events := eventsNamed(doc, "worker")
	if len(events) != 1 {
		t.Fatalf("finished goroutine's entries lost, got %d", len(events))
	}
	if uint64(events[0].Tid) != workerTid {
		t.Fatalf("entry grouped under tid %d, want %d", events[0].Tid, workerTid)
	}

	named := false
	for _, ev := range doc.TraceEvents {
		if ev.Ph == tef.PhaseMetadata && ev.Name == tef.NameThreadName && uint64(ev.Tid) == workerTid {
			named = true
		}
	}
	if !named {
		t.Fatalf("missing thread_name metadata for finished goroutine %d", workerTid)
	}
}
