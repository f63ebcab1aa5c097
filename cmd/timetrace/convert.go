package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var convertCmd = &cobra.Command{
	Use:   "convert in.json out.mpack",
	Short: "Convert a trace between JSON and the binary snapshot form",
	Long: `Convert reads a trace in either codec and writes it in the codec implied
by the output extension (.mpack/.msgpack for binary, anything else JSON)`,
	Args: cobra.ExactArgs(2),
	RunE: runConvert,
}

func runConvert(cmd *cobra.Command, args []string) error {
	in, out := args[0], args[1]
	doc, err := readTrace(in)
	if err != nil {
		return err
	}
	if err := writeTrace(out, doc); err != nil {
		return err
	}

	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s (%d events)\n", in, out, len(doc.TraceEvents))
	}
	return nil
}
