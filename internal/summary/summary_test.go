package summary

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"timetrace/tef"
)

func sampleDoc() *tef.File {
	return &tef.File{TraceEvents: []tef.Event{
		{Name: "parse", Ph: tef.PhaseComplete, Ts: 0, Dur: 1000, Pid: 1, Tid: 1},
		{Name: "parse", Ph: tef.PhaseComplete, Ts: 1000, Dur: 3000, Pid: 1, Tid: 1},
		{Name: "sema", Ph: tef.PhaseComplete, Ts: 4000, Dur: 9000, Pid: 1, Tid: 2},
		{Name: "Total parse", Ph: tef.PhaseComplete, Ts: 0, Dur: 4000, Pid: 1, Tid: 3},
		{Name: tef.NameProcessName, Ph: tef.PhaseMetadata, Pid: 1,
			Args: map[string]any{"name": "test"}},
	}}
}

func TestComputeFoldsAndSorts(t *testing.T) {
	rows := Compute(sampleDoc())
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d (total rows and metadata must be skipped)", len(rows))
	}
	if rows[0].Name != "sema" || rows[1].Name != "parse" {
		t.Fatalf("rows not sorted by descending total: %q, %q", rows[0].Name, rows[1].Name)
	}
	parse := rows[1]
	if parse.Count != 2 {
		t.Fatalf("parse count = %d, want 2", parse.Count)
	}
	if parse.Total != 4*time.Millisecond {
		t.Fatalf("parse total = %v, want 4ms", parse.Total)
	}
	if parse.Min != 1*time.Millisecond || parse.Max != 3*time.Millisecond {
		t.Fatalf("parse min/max = %v/%v", parse.Min, parse.Max)
	}
	if parse.MeanMs != 2 {
		t.Fatalf("parse mean = %v, want 2ms", parse.MeanMs)
	}
	if sema := rows[0]; sema.StddevMs != 0 {
		t.Fatalf("single-sample stddev must be 0, got %v", sema.StddevMs)
	}
}

func TestRenderAlignsAndLimits(t *testing.T) {
	rows := Compute(sampleDoc())
	var buf bytes.Buffer
	Render(&buf, rows, RenderOpts{Top: 1})
	out := buf.String()
	if !strings.Contains(out, "sema") {
		t.Fatalf("top row missing: %s", out)
	}
	if strings.Contains(out, "parse") {
		t.Fatalf("Top=1 must drop remaining rows: %s", out)
	}
	if lines := strings.Count(out, "\n"); lines != 2 {
		t.Fatalf("expected header plus one row, got %d lines", lines)
	}
}
