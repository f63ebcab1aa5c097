// Package tef models the Trace Event Format consumed by Perfetto,
// chrome://tracing and compatible viewers, see
// https://docs.google.com/document/d/1CvAClvFfyA5R-PhYUmn5OOQtYMH4h6I0nSsKchNAySU/preview
package tef

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"
)

// Phase values used by this module. The format defines more; these are the
// ones a profiler emits.
const (
	PhaseComplete = "X" // complete event: ts + dur
	PhaseMetadata = "M" // metadata event: process_name, thread_name
)

// Metadata event names.
const (
	NameProcessName = "process_name"
	NameThreadName  = "thread_name"
)

// Event is a single trace event.
type Event struct {
	Name string         `json:"name,omitempty" msgpack:"name"`
	Cat  string         `json:"cat,omitempty" msgpack:"cat,omitempty"`
	Ph   string         `json:"ph" msgpack:"ph"`
	Ts   int64          `json:"ts" msgpack:"ts"`
	Dur  int64          `json:"dur,omitempty" msgpack:"dur,omitempty"`
	Pid  int64          `json:"pid" msgpack:"pid"`
	Tid  int64          `json:"tid" msgpack:"tid"`
	Args map[string]any `json:"args,omitempty" msgpack:"args,omitempty"`
}

// Detail returns args.detail if present.
func (e *Event) Detail() string {
	if e.Args == nil {
		return ""
	}
	if d, ok := e.Args["detail"].(string); ok {
		return d
	}
	return ""
}

// File is a whole trace document in the JSON object form.
type File struct {
	TraceEvents     []Event `json:"traceEvents" msgpack:"traceEvents"`
	DisplayTimeUnit string  `json:"displayTimeUnit,omitempty" msgpack:"displayTimeUnit,omitempty"`
	BeginningOfTime int64   `json:"beginningOfTime,omitempty" msgpack:"beginningOfTime,omitempty"`
}

// Encode writes the document as a single JSON object. The output is valid
// even when the document holds no events.
func Encode(w io.Writer, f *File) error {
	if f.TraceEvents == nil {
		f.TraceEvents = []Event{}
	}
	enc := json.NewEncoder(w)
	if err := enc.Encode(f); err != nil {
		return fmt.Errorf("encode trace: %w", err)
	}
	return nil
}

// Decode reads a JSON trace document.
func Decode(r io.Reader) (*File, error) {
	var f File
	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("decode trace: %w", err)
	}
	return &f, nil
}

// Current schema version - increment when the binary envelope changes.
const snapshotSchemaVersion uint16 = 1

// snapshot is the envelope for the binary form, so stale files are rejected
// instead of misread when the layout changes.
type snapshot struct {
	Schema uint16 `msgpack:"schema"`
	File   File   `msgpack:"file"`
}

// EncodeBinary writes the document in the compact msgpack snapshot form.
func EncodeBinary(w io.Writer, f *File) error {
	if f.TraceEvents == nil {
		f.TraceEvents = []Event{}
	}
	env := snapshot{Schema: snapshotSchemaVersion, File: *f}
	return encodeSnapshot(w, &env)
}

func encodeSnapshot(w io.Writer, env *snapshot) error {
	if err := msgpack.NewEncoder(w).Encode(env); err != nil {
		return fmt.Errorf("encode trace snapshot: %w", err)
	}
	return nil
}

// DecodeBinary reads a msgpack snapshot document.
func DecodeBinary(r io.Reader) (*File, error) {
	var env snapshot
	if err := msgpack.NewDecoder(r).Decode(&env); err != nil {
		return nil, fmt.Errorf("decode trace snapshot: %w", err)
	}
	if env.Schema != snapshotSchemaVersion {
		return nil, fmt.Errorf("trace snapshot schema %d not supported (want %d)", env.Schema, snapshotSchemaVersion)
	}
	return &env.File, nil
}
