// Package prof wires the runtime profilers around CLI commands, so the
// tool's own cost can be inspected with the standard pprof toolchain.
package prof

import (
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
	"runtime/trace"
)

// Session holds the profilers started for one command invocation.
type Session struct {
	cpu *os.File
	rt  *os.File
}

// Start enables the requested profilers. Empty paths disable the
// corresponding profiler. On error nothing is left running.
func Start(cpuPath, runtimeTracePath string) (*Session, error) {
	s := &Session{}
	if cpuPath != "" {
		f, err := os.Create(cpuPath)
		if err != nil {
			return nil, fmt.Errorf("failed to create cpu profile: %w", err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("failed to start cpu profile: %w", err)
		}
		s.cpu = f
	}
	if runtimeTracePath != "" {
		f, err := os.Create(runtimeTracePath)
		if err != nil {
			s.Stop()
			return nil, fmt.Errorf("failed to create runtime trace: %w", err)
		}
		if err := trace.Start(f); err != nil {
			_ = f.Close()
			s.Stop()
			return nil, fmt.Errorf("failed to start runtime trace: %w", err)
		}
		s.rt = f
	}
	return s, nil
}

// Stop shuts down whatever Start enabled. Safe to call more than once.
func (s *Session) Stop() {
	if s == nil {
		return
	}
	if s.rt != nil {
		trace.Stop()
		_ = s.rt.Close()
		s.rt = nil
	}
	if s.cpu != nil {
		pprof.StopCPUProfile()
		_ = s.cpu.Close()
		s.cpu = nil
	}
}

// WriteHeap captures a heap profile to path.
func WriteHeap(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create heap profile: %w", err)
	}
	runtime.GC()
	if err := pprof.WriteHeapProfile(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write heap profile: %w", err)
	}
	return f.Close()
}
