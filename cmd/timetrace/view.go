package main

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"timetrace/internal/summary"
	"timetrace/internal/ui"
)

var viewCmd = &cobra.Command{
	Use:   "view trace.json",
	Short: "Browse per-name statistics in an interactive table",
	Args:  cobra.ExactArgs(1),
	RunE:  runView,
}

func runView(cmd *cobra.Command, args []string) error {
	doc, err := readTrace(args[0])
	if err != nil {
		return err
	}
	rows := summary.Compute(doc)
	if len(rows) == 0 {
		return fmt.Errorf("trace %q holds no timeline events", args[0])
	}

	model := ui.NewViewerModel(filepath.Base(args[0]), rows)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("viewer failed: %w", err)
	}
	return nil
}
