package summary

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// RenderOpts controls table rendering.
type RenderOpts struct {
	Color bool // colorize the header and name column
	Top   int  // limit to the first N rows (0 = all)
}

var (
	headerColor = color.New(color.FgCyan, color.Bold)
	nameColor   = color.New(color.FgYellow)
)

// Render prints the rows as an aligned table.
func Render(w io.Writer, rows []Row, opts RenderOpts) {
	if opts.Top > 0 && opts.Top < len(rows) {
		rows = rows[:opts.Top]
	}

	nameWidth := runewidth.StringWidth("name")
	for _, row := range rows {
		if width := runewidth.StringWidth(row.Name); width > nameWidth {
			nameWidth = width
		}
	}

	header := fmt.Sprintf("%s  %10s  %12s  %12s  %12s  %12s  %10s",
		runewidth.FillRight("name", nameWidth),
		"count", "total ms", "min ms", "max ms", "mean ms", "stddev")
	if opts.Color {
		header = headerColor.Sprint(header)
	}
	fmt.Fprintln(w, header)

	printer := message.NewPrinter(language.English)
	for _, row := range rows {
		name := runewidth.FillRight(row.Name, nameWidth)
		if opts.Color {
			name = nameColor.Sprint(name)
		}
		fmt.Fprintf(w, "%s  %10s  %12.2f  %12.2f  %12.2f  %12.2f  %10.2f\n",
			name,
			printer.Sprintf("%d", row.Count),
			toMillis(row.Total),
			toMillis(row.Min),
			toMillis(row.Max),
			row.MeanMs,
			row.StddevMs)
	}
}

func toMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
