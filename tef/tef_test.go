package tef

import (
	"bytes"
	"strings"
	"testing"
)

func TestEncodeEmptyDocumentIsValid(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, &File{}); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if !strings.Contains(buf.String(), `"traceEvents":[]`) {
		t.Fatalf("empty document must carry an empty traceEvents array: %s", buf.String())
	}
	if _, err := Decode(&buf); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
}

func TestBinarySnapshotRoundTrip(t *testing.T) {
	doc := &File{
		BeginningOfTime: 1234567,
		TraceEvents: []Event{
			{Name: "parse", Ph: PhaseComplete, Ts: 10, Dur: 42, Pid: 1, Tid: 7,
				Args: map[string]any{"detail": "main.go"}},
			{Name: NameProcessName, Ph: PhaseMetadata, Pid: 1,
				Args: map[string]any{"name": "test"}},
		},
	}

	var buf bytes.Buffer
	if err := EncodeBinary(&buf, doc); err != nil {
		t.Fatalf("EncodeBinary failed: %v", err)
	}
	got, err := DecodeBinary(&buf)
	if err != nil {
		t.Fatalf("DecodeBinary failed: %v", err)
	}
	if len(got.TraceEvents) != 2 || got.BeginningOfTime != doc.BeginningOfTime {
		t.Fatalf("snapshot did not round trip: %+v", got)
	}
	if got.TraceEvents[0].Detail() != "main.go" {
		t.Fatalf("detail lost in snapshot: %+v", got.TraceEvents[0])
	}
}

func TestBinarySnapshotRejectsUnknownSchema(t *testing.T) {
	var buf bytes.Buffer
	env := snapshot{Schema: snapshotSchemaVersion + 1}
	if err := encodeSnapshot(&buf, &env); err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	if _, err := DecodeBinary(&buf); err == nil {
		t.Fatalf("expected schema mismatch error")
	}
}
