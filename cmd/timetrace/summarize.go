package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"timetrace/internal/summary"
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize [flags] trace.json",
	Short: "Print per-name statistics for a trace",
	Long: `Summarize recomputes count, total, min, max, mean and standard deviation
per region name from the timeline events of a trace file`,
	Args: cobra.ExactArgs(1),
	RunE: runSummarize,
}

func init() {
	summarizeCmd.Flags().Int("top", 0, "show only the N largest totals (0 = all)")
}

func runSummarize(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	top, err := cmd.Flags().GetInt("top")
	if err != nil {
		return fmt.Errorf("failed to get top flag: %w", err)
	}
	if !cmd.Flags().Changed("top") {
		top = cfg.Summary.Top
	}

	doc, err := readTrace(args[0])
	if err != nil {
		return err
	}

	rows := summary.Compute(doc)
	out := cmd.OutOrStdout()
	if len(rows) == 0 {
		quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")
		if !quiet {
			fmt.Fprintln(out, "trace holds no timeline events")
		}
		return nil
	}

	colorize := false
	if f, ok := out.(*os.File); ok {
		colorize = useColor(cmd, f)
	}
	summary.Render(out, rows, summary.RenderOpts{
		Color: colorize,
		Top:   top,
	})
	return nil
}
