package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"timetrace/internal/config"
	"timetrace/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "timetrace",
	Short: "Record and inspect hierarchical time-trace profiles",
	Long:  `timetrace works with Trace Event Format profiles produced by the timeprof library`,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(demoCmd)
	rootCmd.AddCommand(summarizeCmd)
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(viewCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().String("config", config.DefaultFile, "path to the settings file")
	rootCmd.PersistentFlags().String("cpu-profile", "", "write a cpu profile of this tool to the given path")
	rootCmd.PersistentFlags().String("mem-profile", "", "write a heap profile of this tool to the given path")
	rootCmd.PersistentFlags().String("runtime-trace", "", "write a Go runtime trace of this tool to the given path")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// isTerminal checks whether the file is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// useColor resolves the --color flag against the output destination.
func useColor(cmd *cobra.Command, f *os.File) bool {
	colorFlag, _ := cmd.Root().PersistentFlags().GetString("color")
	return colorFlag == "on" || (colorFlag == "auto" && isTerminal(f))
}

// loadConfig reads the settings file named by --config. A missing file
// yields the zero config.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return config.Config{}, err
	}
	return config.Load(path)
}
