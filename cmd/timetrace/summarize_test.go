package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"timetrace/tef"
)

func newTestRoot(t *testing.T, dir string) *cobra.Command {
	t.Helper()
	root := &cobra.Command{Use: "timetrace"}
	root.PersistentFlags().String("color", "off", "")
	root.PersistentFlags().Bool("quiet", false, "")
	root.PersistentFlags().String("config", filepath.Join(dir, "none.toml"), "")
	return root
}

func TestSummarizeWritesToCommandOut(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "run.json")
	doc := &tef.File{TraceEvents: []tef.Event{
		{Name: "parse", Ph: tef.PhaseComplete, Ts: 0, Dur: 1500, Pid: 1, Tid: 1},
	}}
	if err := writeTrace(path, doc); err != nil {
		t.Fatalf("write trace: %v", err)
	}

	root := newTestRoot(t, dir)
	root.AddCommand(summarizeCmd)
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetArgs([]string{"summarize", path})
	if err := root.Execute(); err != nil {
		t.Fatalf("summarize failed: %v", err)
	}
	if !strings.Contains(buf.String(), "parse") {
		t.Fatalf("summary table must go to the command's out writer, got: %q", buf.String())
	}
}

func TestSummarizeEmptyTrace(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.json")
	if err := writeTrace(path, &tef.File{}); err != nil {
		t.Fatalf("write trace: %v", err)
	}

	root := newTestRoot(t, dir)
	root.AddCommand(summarizeCmd)
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetArgs([]string{"summarize", path})
	if err := root.Execute(); err != nil {
		t.Fatalf("summarize failed: %v", err)
	}
	if !strings.Contains(buf.String(), "no timeline events") {
		t.Fatalf("empty-trace notice must go to the command's out writer, got: %q", buf.String())
	}
}
