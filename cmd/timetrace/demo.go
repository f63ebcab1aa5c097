package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"timetrace/timeprof"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Record an instrumented synthetic workload",
	Long: `Demo runs a small pipeline-shaped workload through the timeprof library
and writes the resulting trace, exercising nested scopes, parallel workers
and a cross-goroutine entry handoff`,
	Args: cobra.NoArgs,
	RunE: runDemo,
}

func init() {
	demoCmd.Flags().String("out", "", "trace output path (defaults to the config output path)")
	demoCmd.Flags().Uint64("granularity", 0, "minimum duration in µs for a timeline entry")
	demoCmd.Flags().Int("workers", 4, "number of parallel workers")
}

func runDemo(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	out, err := cmd.Flags().GetString("out")
	if err != nil {
		return fmt.Errorf("failed to get out flag: %w", err)
	}
	if out == "" {
		out = cfg.Output.Path
	}
	granularity, err := cmd.Flags().GetUint64("granularity")
	if err != nil {
		return fmt.Errorf("failed to get granularity flag: %w", err)
	}
	if !cmd.Flags().Changed("granularity") {
		granularity = cfg.Profile.GranularityUs
	}
	workers, err := cmd.Flags().GetInt("workers")
	if err != nil {
		return fmt.Errorf("failed to get workers flag: %w", err)
	}
	if workers < 1 {
		workers = 1
	}

	stopProfiling, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	defer stopProfiling()

	procName := cfg.Profile.ProcessName
	if procName == "" {
		procName = "timetrace-demo"
	}

	timeprof.Initialize(granularity, procName)
	defer timeprof.Cleanup()

	pipeline := timeprof.BeginEntryFunc("pipeline", func() string {
		return fmt.Sprintf("workers=%d", workers)
	})
	pipeline.Begin()

	func() {
		defer timeprof.Scope("load", "prelude")()
		time.Sleep(2 * time.Millisecond)
	}()

	var g errgroup.Group
	for w := 0; w < workers; w++ {
		w := w
		g.Go(func() error {
			defer timeprof.FinishThread()
			done := timeprof.Scope("compile", fmt.Sprintf("unit-%d", w))
			for pass := 0; pass < 3; pass++ {
				// Recursive-looking same-name nesting: only the outer
				// interval counts toward the "optimize" total.
				timeprof.Begin("optimize", "pipeline")
				timeprof.Begin("optimize", "inliner")
				time.Sleep(time.Millisecond)
				timeprof.End()
				timeprof.End()
			}
			done()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	// The pipeline entry was created here but completes on the linker
	// goroutine, which owns the record.
	linked := make(chan struct{})
	go func() {
		defer close(linked)
		defer timeprof.FinishThread()
		defer timeprof.EndEntry(pipeline)
		defer timeprof.Scope("link", "demo binary")()
		time.Sleep(3 * time.Millisecond)
	}()
	<-linked

	if err := timeprof.WriteToFile(out, "timetrace-demo"); err != nil {
		return err
	}

	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	if !quiet {
		if out == "" {
			out = "timetrace-demo.time-trace"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "trace written to %s\n", out)
	}
	return nil
}
